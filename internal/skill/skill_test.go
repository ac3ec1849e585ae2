package skill

import (
	"context"
	"time"
)

func echoSkill(name string) Skill {
	return Skill{
		Name:        name,
		Version:     "1.0.0",
		Description: "echoes its input",
		Execute: func(_ context.Context, input any) (*Result, error) {
			return &Result{
				Message:   "echo: " + FormatInput(input),
				Timestamp: time.Now().UnixMilli(),
				Status:    StatusSuccess,
			}, nil
		},
	}
}

// blockingSkill settles only when release is closed
func blockingSkill(name string, release <-chan struct{}) Skill {
	s := echoSkill(name)
	s.Execute = func(_ context.Context, input any) (*Result, error) {
		<-release
		return &Result{Message: FormatInput(input), Status: StatusSuccess}, nil
	}
	return s
}

func newTestRegistry(skills ...Skill) *Registry {
	r := NewRegistry()
	for _, s := range skills {
		if err := r.Register(s); err != nil {
			panic(err)
		}
	}
	return r
}
