// Package generator turns a workout request and its context bundle into
// session text using a hosted language model.
package generator

import (
	"context"
	"errors"
	"time"

	"functionallab/coach-os/internal/domain"
)

// Typed generation failures. Every error returned by a Generator matches
// exactly one of these with errors.Is.
var (
	ErrAuth          = errors.New("generator rejected credentials")
	ErrNetwork       = errors.New("generator unreachable")
	ErrQuota         = errors.New("generator quota exhausted")
	ErrEmptyResponse = errors.New("generator returned no text")
)

// GenerationError wraps the underlying cause with its kind.
type GenerationError struct {
	Kind error
	Err  error
}

func (e *GenerationError) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Err.Error()
}

func (e *GenerationError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// ContextBundle is the studio state handed to the generator for one request.
type ContextBundle struct {
	RecentHistory []domain.Workout
	Cycle         *domain.TrainingCycle
	Plan          *domain.AnnualPlan
	Phase         *domain.AnnualPhase // phase for the target month
	Equipment     []domain.Equipment
	Benchmarks    []domain.Benchmark
}

// Request is a fully resolved generation request.
type Request struct {
	ClassType  domain.ClassType
	Focus      string
	TargetDate time.Time
	Context    ContextBundle
}

// ChatRole is the author of a chat message.
type ChatRole string

const (
	RoleUser  ChatRole = "user"
	RoleModel ChatRole = "model"
)

// ChatMessage is one turn of the coach assistant conversation.
type ChatMessage struct {
	Role ChatRole `json:"role"`
	Text string   `json:"text"`
}

// Generator produces workout text and assistant replies.
type Generator interface {
	GenerateWorkout(ctx context.Context, req Request) (string, error)
	Chat(ctx context.Context, history []ChatMessage, message string) (string, error)
}
