package profile

import (
	"context"
	"errors"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		res  FetchResult
		want LifecycleState
	}{
		{"absent", FetchResult{}, StateAbsent},
		{
			"deleted tombstone",
			FetchResult{Exists: true, Record: Record{Status: "Deleted", Name: "Jane"}},
			StateDeleted,
		},
		{
			"placeholder-only record",
			FetchResult{Exists: true, Record: Record{Name: "string", PhoneNumber: "", NoOfYears: 0}},
			StateIncomplete,
		},
		{
			"empty but explicitly completed",
			FetchResult{Exists: true, Record: Record{Completed: true}},
			StateComplete,
		},
		{
			"real name",
			FetchResult{Exists: true, Record: Record{Name: "Jane Doe"}},
			StateComplete,
		},
		{
			"real serving states only",
			FetchResult{Exists: true, Record: Record{ServingStates: StringList{"Texas"}}},
			StateComplete,
		},
		{
			"real years only",
			FetchResult{Exists: true, Record: Record{NoOfYears: 4}},
			StateComplete,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.res); got != tc.want {
				t.Fatalf("classify = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestDecisionRouting(t *testing.T) {
	routes := map[LifecycleState]Decision{
		StateAbsent:     DecisionCreate,
		StateDeleted:    DecisionCreate,
		StateIncomplete: DecisionUpdate,
		StateComplete:   DecisionUpdate,
	}
	for state, want := range routes {
		if got := state.Decision(); got != want {
			t.Fatalf("%s routes to %s, want %s", state, got, want)
		}
	}
}

type fakeFetcher struct {
	res   FetchResult
	err   error
	calls int
}

func (f *fakeFetcher) Get(context.Context) (FetchResult, error) {
	f.calls++
	return f.res, f.err
}

func TestResolverFetchesFreshEveryCall(t *testing.T) {
	fetch := &fakeFetcher{res: FetchResult{Exists: true, Record: Record{Name: "Jane"}}}
	r := NewResolver(fetch)

	for i := 0; i < 3; i++ {
		state, res, err := r.Resolve(context.Background())
		if err != nil {
			t.Fatalf("resolve %d: %v", i, err)
		}
		if state != StateComplete || !res.Exists {
			t.Fatalf("resolve %d: state=%s exists=%v", i, state, res.Exists)
		}
	}
	if fetch.calls != 3 {
		t.Fatalf("fetch calls = %d, want one per resolve", fetch.calls)
	}
}

func TestResolverPropagatesFetchErrors(t *testing.T) {
	fetch := &fakeFetcher{err: errors.New("network down")}
	r := NewResolver(fetch)
	if _, _, err := r.Resolve(context.Background()); err == nil {
		t.Fatal("expected fetch error to propagate")
	}
}
