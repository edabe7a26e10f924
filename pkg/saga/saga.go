// Package saga runs a sequence of steps and undoes the completed ones, in
// reverse order, when a later step fails.
//
// It gives all-or-nothing behavior to stores without transactions:
//
//	s := saga.New(0)
//	s.AddStep("create "+title,
//	    func(ctx context.Context) error { return repo.Create(ctx, b) },
//	    func(ctx context.Context) error { return repo.Delete(ctx, b.ID) },
//	)
//	if err := s.Execute(ctx); err != nil { ... }
package saga

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Step is one action and the compensation that reverts it.
// Compensate may be nil for steps with nothing to undo.
type Step struct {
	Name       string
	Action     func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

// Saga is single use and not safe for concurrent use.
type Saga struct {
	steps    []Step
	executed []Step
	timeout  time.Duration
}

// New creates an empty saga. A positive timeout bounds the whole run.
func New(timeout time.Duration) *Saga {
	return &Saga{timeout: timeout}
}

// AddStep appends a step.
func (s *Saga) AddStep(name string, action, compensate func(ctx context.Context) error) {
	s.steps = append(s.steps, Step{
		Name:       name,
		Action:     action,
		Compensate: compensate,
	})
}

// Execute runs the steps in order. When one fails, or ctx ends between
// steps, the executed steps are compensated and the error is returned
// joined with any compensation failures.
//
// Compensations run on a context detached from ctx's cancellation so a
// timeout does not also abort the cleanup.
func (s *Saga) Execute(ctx context.Context) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	for i, step := range s.steps {
		if err := ctx.Err(); err != nil {
			return errors.Join(
				fmt.Errorf("saga interrupted before step %d (%s): %w", i, step.Name, err),
				s.compensate(context.WithoutCancel(ctx)),
			)
		}

		if step.Action != nil {
			if err := step.Action(ctx); err != nil {
				return errors.Join(
					fmt.Errorf("step %d (%s): %w", i, step.Name, err),
					s.compensate(context.WithoutCancel(ctx)),
				)
			}
		}
		s.executed = append(s.executed, step)
	}
	return nil
}

// compensate undoes executed steps last to first. Every compensation runs
// even when an earlier one fails.
func (s *Saga) compensate(ctx context.Context) error {
	var errs []error
	for i := len(s.executed) - 1; i >= 0; i-- {
		step := s.executed[i]
		if step.Compensate == nil {
			continue
		}
		if err := step.Compensate(ctx); err != nil {
			errs = append(errs, fmt.Errorf("compensate %s: %w", step.Name, err))
		}
	}
	s.executed = nil
	return errors.Join(errs...)
}
