package skill

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/hb-chen/safeskill/internal/tracer"
	"github.com/hb-chen/safeskill/pkg/logger"
)

// Router routes invocations to registered skills
type Router struct {
	registry *Registry
	config   atomic.Pointer[Config]
	tracer   tracer.ExecutionTracer
	timeout  time.Duration
}

// RouterOption configures a Router
type RouterOption func(*Router)

// WithTracer sets the tracer notified around every invocation
func WithTracer(t tracer.ExecutionTracer) RouterOption {
	return func(r *Router) {
		if t != nil {
			r.tracer = t
		}
	}
}

// WithTimeout bounds how long the router waits for a skill to settle.
// Zero means wait until the caller's context is done.
func WithTimeout(timeout time.Duration) RouterOption {
	return func(r *Router) {
		r.timeout = timeout
	}
}

// NewRouter creates a new skill router. A nil config enables every skill.
func NewRouter(registry *Registry, config *Config, opts ...RouterOption) *Router {
	r := &Router{
		registry: registry,
		tracer:   tracer.NopTracer{},
	}
	r.config.Store(config)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Execute invokes the named skill and waits for it to settle. If ctx is
// done or the router timeout elapses first, Execute stops waiting and
// returns the context error.
func (r *Router) Execute(ctx context.Context, skillName string, input any) (*Invocation, error) {
	s, err := r.registry.Get(skillName)
	if err != nil {
		return nil, err
	}
	if !r.IsEnabled(skillName) {
		return nil, fmt.Errorf("%w: %s", ErrSkillDisabled, skillName)
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	inv := &Invocation{
		ID:        uuid.New().String(),
		Skill:     s.Name,
		Version:   s.Version,
		Input:     FormatInput(input),
		StartedAt: time.Now(),
	}
	span := tracer.Span{
		InvocationID: inv.ID,
		Skill:        inv.Skill,
		Version:      inv.Version,
		Input:        inv.Input,
	}
	_ = r.tracer.TraceStart(ctx, span)

	var outcome Outcome
	select {
	case outcome = <-s.Start(ctx, input):
	case <-ctx.Done():
		outcome.Err = ctx.Err()
	}
	elapsed := time.Since(inv.StartedAt)
	inv.Duration = Duration(elapsed)

	if outcome.Err != nil {
		_ = r.tracer.TraceEnd(ctx, span, "", elapsed, outcome.Err)
		return inv, fmt.Errorf("skill %s execution failed: %w", skillName, outcome.Err)
	}

	inv.Result = outcome.Result
	status := ""
	if outcome.Result != nil {
		status = outcome.Result.Status
	}
	_ = r.tracer.TraceEnd(ctx, span, status, elapsed, nil)
	logger.Debugf("Skill %s settled: id=%s, status=%s", skillName, inv.ID, status)

	return inv, nil
}

// GetRegistry returns the skill registry
func (r *Router) GetRegistry() *Registry {
	return r.registry
}

// IsEnabled reports whether the router's skills config allows name
func (r *Router) IsEnabled(name string) bool {
	return r.config.Load().IsEnabled(name)
}

// SetConfig swaps the skills config used by subsequent invocations
func (r *Router) SetConfig(config *Config) {
	r.config.Store(config)
}
