package health

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"
)

func staticChecker(name string, r Result) Checker {
	return NewCheckerFunc(name, func(context.Context) Result { return r })
}

func TestAggregator_Register(t *testing.T) {
	agg := NewAggregator()
	agg.Register(staticChecker("b", Healthy("")), staticChecker("a", Healthy("")))
	agg.Register(staticChecker("b", Degraded("")))

	if got := agg.CheckerNames(); !slices.Equal(got, []string{"b", "a"}) {
		t.Errorf("CheckerNames() = %v, want [b a]", got)
	}
	r, err := agg.Check(context.Background(), "b")
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if r.Status != StatusDegraded {
		t.Errorf("replaced checker Status = %v, want degraded", r.Status)
	}
	if _, err := agg.Check(context.Background(), "missing"); !errors.Is(err, ErrCheckerNotFound) {
		t.Errorf("Check(missing) error = %v, want ErrCheckerNotFound", err)
	}
}

func TestOverallStatus(t *testing.T) {
	tests := []struct {
		name    string
		results map[string]Result
		want    Status
	}{
		{name: "empty", results: nil, want: StatusHealthy},
		{name: "all healthy", results: map[string]Result{"a": Healthy(""), "b": Healthy("")}, want: StatusHealthy},
		{name: "one degraded", results: map[string]Result{"a": Healthy(""), "b": Degraded("")}, want: StatusDegraded},
		{name: "one unhealthy", results: map[string]Result{"a": Degraded(""), "b": Unhealthy("", nil)}, want: StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OverallStatus(tt.results); got != tt.want {
				t.Errorf("OverallStatus() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAggregator_CheckAllTimeout(t *testing.T) {
	agg := NewAggregator(AggregatorConfig{Timeout: 20 * time.Millisecond})
	release := make(chan struct{})
	defer close(release)

	agg.Register(
		staticChecker("fast", Healthy("ok")),
		NewCheckerFunc("slow", func(context.Context) Result {
			<-release
			return Healthy("late")
		}),
	)

	results := agg.CheckAll(context.Background())
	if results["fast"].Status != StatusHealthy {
		t.Errorf("fast Status = %v, want healthy", results["fast"].Status)
	}
	slow := results["slow"]
	if slow.Status != StatusUnhealthy || !errors.Is(slow.Error, ErrCheckTimeout) {
		t.Errorf("slow = %+v, want timeout", slow)
	}
	if results["fast"].Timestamp.IsZero() {
		t.Error("fast result missing timestamp")
	}
}
