// internal/profile/assembler.go
//
// The assembler owns submission: validate the draft, route to create or
// update per the resolver's decision, and manage the draft afterwards.
// A failed submission keeps the draft and its uploaded URLs intact so the
// user never re-uploads anything.

package profile

import (
	"context"
	"fmt"
)

// ValidationError names the first missing required field. It is raised
// locally, before any network call.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("profile: required field %q is missing", e.Field)
}

// Submitter is the write side of the profile service.
type Submitter interface {
	Create(ctx context.Context, d Draft) error
	Update(ctx context.Context, d Draft) error
}

// Assembler validates and submits profile drafts.
type Assembler struct {
	svc Submitter
}

// NewAssembler creates an assembler over the profile service.
func NewAssembler(svc Submitter) *Assembler {
	return &Assembler{svc: svc}
}

// Validate checks the draft's required fields in a fixed order: name,
// phone, then at least one government ID upload. The first failure wins.
func (a *Assembler) Validate(d Draft) error {
	if !RealString(d.Name) {
		return &ValidationError{Field: "name"}
	}
	if !RealString(d.PhoneNumber) {
		return &ValidationError{Field: "phoneNumber"}
	}
	if d.GovernmentIDCount() == 0 {
		return &ValidationError{Field: "governmentID"}
	}
	return nil
}

// Submit validates the draft and dispatches exactly one create or update
// per the lifecycle decision. On success the draft is cleared and the
// caller re-resolves the lifecycle state. On failure the draft survives
// untouched.
func (a *Assembler) Submit(ctx context.Context, draft *Draft, state LifecycleState) (Decision, error) {
	if err := a.Validate(*draft); err != nil {
		return "", err
	}

	decision := state.Decision()
	var err error
	if decision == DecisionCreate {
		err = a.svc.Create(ctx, *draft)
	} else {
		err = a.svc.Update(ctx, *draft)
	}
	if err != nil {
		return decision, err
	}
	*draft = Draft{}
	return decision, nil
}
