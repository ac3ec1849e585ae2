package skill

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// StatusSuccess is the only status a settled skill result carries
const StatusSuccess = "success"

var (
	ErrSkillNotFound = errors.New("skill not found")
	ErrSkillDisabled = errors.New("skill disabled")
)

// ExecuteFunc is the single operation a skill exposes
type ExecuteFunc func(ctx context.Context, input any) (*Result, error)

// Skill is a named, versioned unit with one invocable operation
type Skill struct {
	Name        string
	Version     string
	Description string
	Execute     ExecuteFunc
}

// Result is the record returned by a skill's Execute
type Result struct {
	Message   string `json:"message" yaml:"message"`
	Timestamp int64  `json:"timestamp" yaml:"timestamp"` // milliseconds since the epoch
	Status    string `json:"status" yaml:"status"`
}

// Outcome is what a started invocation settles to
type Outcome struct {
	Result *Result
	Err    error
}

// Start runs Execute on its own goroutine. The returned channel receives
// exactly one Outcome and is then closed.
func (s *Skill) Start(ctx context.Context, input any) <-chan Outcome {
	done := make(chan Outcome, 1)
	go func() {
		defer close(done)
		result, err := s.Execute(ctx, input)
		done <- Outcome{Result: result, Err: err}
	}()
	return done
}

// Invocation is one routed call to a skill
type Invocation struct {
	ID        string        `json:"id" yaml:"id"`
	Skill     string        `json:"skill" yaml:"skill"`
	Version   string        `json:"version" yaml:"version"`
	Input     string        `json:"input" yaml:"input"`
	Result    *Result       `json:"result,omitempty" yaml:"result,omitempty"`
	StartedAt time.Time     `json:"started_at" yaml:"started_at"`
	Duration  Duration      `json:"duration" yaml:"duration"`
}

// Duration encodes as a duration string such as "1.5ms"
type Duration time.Duration

func (d Duration) String() string { return time.Duration(d).String() }

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// Descriptor is the serializable identity of a skill
type Descriptor struct {
	Name        string `json:"name" yaml:"name"`
	Version     string `json:"version" yaml:"version"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Describe returns the skill's descriptor
func (s *Skill) Describe() Descriptor {
	return Descriptor{
		Name:        s.Name,
		Version:     s.Version,
		Description: s.Description,
	}
}
