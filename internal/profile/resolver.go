// internal/profile/resolver.go
//
// Lifecycle classification decides whether a submission creates or
// updates. A deleted record routes to create: the server refuses updates
// against a tombstone. Classification always works from a fresh fetch,
// never a cached one, because the record can change server-side between
// screen activations.

package profile

import "context"

// LifecycleState classifies a remote profile record.
type LifecycleState string

const (
	StateAbsent     LifecycleState = "absent"
	StateDeleted    LifecycleState = "deleted"
	StateIncomplete LifecycleState = "incomplete"
	StateComplete   LifecycleState = "complete"
)

// Decision is the submission route a lifecycle state implies.
type Decision string

const (
	DecisionCreate Decision = "create"
	DecisionUpdate Decision = "update"
)

// Decision maps the state to its submission route. Absent and Deleted
// create; Incomplete and Complete update.
func (s LifecycleState) Decision() Decision {
	if s == StateAbsent || s == StateDeleted {
		return DecisionCreate
	}
	return DecisionUpdate
}

// Classify determines the lifecycle state of a fetch result. It is total:
// every input maps to exactly one state.
func Classify(res FetchResult) LifecycleState {
	if !res.Exists {
		return StateAbsent
	}
	if res.Record.Deleted() {
		return StateDeleted
	}
	if !substantive(res.Record) && !res.Record.Completed {
		return StateIncomplete
	}
	return StateComplete
}

// substantive reports whether any of the fields that make a profile worth
// updating holds a real value.
func substantive(r Record) bool {
	return RealString(r.Name) ||
		RealString(r.PhoneNumber) ||
		RealString(r.BusinessName) ||
		RealSlice(r.ServingStates) ||
		RealNumber(r.NoOfYears)
}

// Fetcher is the read side of the profile service.
type Fetcher interface {
	Get(ctx context.Context) (FetchResult, error)
}

// Resolver produces a fresh lifecycle state on demand.
type Resolver struct {
	fetch Fetcher
}

// NewResolver creates a resolver over the profile service.
func NewResolver(fetch Fetcher) *Resolver {
	return &Resolver{fetch: fetch}
}

// Resolve fetches the record and classifies it. Each call hits the
// network; callers re-resolve on every screen activation and after every
// successful submission.
func (r *Resolver) Resolve(ctx context.Context) (LifecycleState, FetchResult, error) {
	res, err := r.fetch.Get(ctx)
	if err != nil {
		return "", FetchResult{}, err
	}
	return Classify(res), res, nil
}
