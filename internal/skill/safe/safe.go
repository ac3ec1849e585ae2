// Package safe provides test-safe-skill, a minimal skill that echoes its
// input with a timestamp and always succeeds.
package safe

import (
	"context"
	"time"

	"github.com/hb-chen/safeskill/internal/skill"
)

const (
	Name        = "test-safe-skill"
	Version     = "1.0.0"
	Description = "A minimal, completely safe skill for testing"

	MessagePrefix = "Hello from safe skill! Input: "
)

var descriptor = skill.Skill{
	Name:        Name,
	Version:     Version,
	Description: Description,
	Execute:     execute,
}

// Descriptor returns a copy of the skill descriptor
func Descriptor() skill.Skill {
	return descriptor
}

// execute never fails and never blocks, so ctx is not consulted
func execute(_ context.Context, input any) (*skill.Result, error) {
	return &skill.Result{
		Message:   MessagePrefix + skill.FormatInput(input),
		Timestamp: time.Now().UnixMilli(),
		Status:    skill.StatusSuccess,
	}, nil
}
