package capacity

import (
	"testing"

	"github.com/alexanderramin/releaseplan/internal/domain"
	"github.com/alexanderramin/releaseplan/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestResolveEffortDays_Policy(t *testing.T) {
	start, end := testutil.Date(2026, 2, 9), testutil.Date(2026, 2, 13)
	mapping := domain.StoryPointMapping{5: 3, 8: 5}

	effort := testutil.NewTestTicket("effort", start, end, testutil.WithEffort(2.5))
	mapped := testutil.NewTestTicket("mapped", start, end, testutil.WithStoryPoints(5))
	unmapped := testutil.NewTestTicket("unmapped", start, end, testutil.WithStoryPoints(13))
	fractional := testutil.NewTestTicket("fractional", start, end, testutil.WithStoryPoints(2.5))
	empty := testutil.NewTestTicket("empty", start, end)
	empty.EffortDays = nil

	assert.Equal(t, 2.5, ResolveEffortDays(&effort, mapping))
	assert.Equal(t, 3.0, ResolveEffortDays(&mapped, mapping))
	assert.Equal(t, 5.0, ResolveEffortDays(&mapped, nil), "raw story points read as days without a mapping")
	assert.Equal(t, 13.0, ResolveEffortDays(&unmapped, mapping))
	assert.Equal(t, 2.5, ResolveEffortDays(&fractional, mapping))
	assert.Equal(t, 0.0, ResolveEffortDays(&empty, mapping))
}

func TestResolveEffortDays_EffortWinsOverStoryPoints(t *testing.T) {
	tk := testutil.NewTestTicket("both", testutil.Date(2026, 2, 9), testutil.Date(2026, 2, 9), testutil.WithEffort(4))
	sp := 8.0
	tk.StoryPoints = &sp
	assert.Equal(t, 4.0, ResolveEffortDays(&tk, domain.StoryPointMapping{8: 5}))
}

func TestAdjustedDuration(t *testing.T) {
	cases := []struct {
		base, velocity float64
		want           int
	}{
		{5, 1, 5},
		{5, 2, 3},
		{1, 2, 1},
		{0.2, 1, 1},
		{0, 1, 1},
		{6, 0.5, 12},
		{4, 0, 4},
		{4, -1, 4},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, AdjustedDuration(tc.base, tc.velocity), "base=%v velocity=%v", tc.base, tc.velocity)
	}
}

func TestAdjustedEffort_TracesVelocityAdjustment(t *testing.T) {
	var events []TraceEvent
	opts := Options{Tracer: TraceFunc(func(e TraceEvent) { events = append(events, e) })}

	fast := testutil.NewTestMember("Ana", testutil.WithVelocity(2))
	base := testutil.NewTestMember("Ben")
	tk := testutil.NewTestTicket("t", testutil.Date(2026, 2, 9), testutil.Date(2026, 2, 13), testutil.WithEffort(5))

	assert.Equal(t, 3, AdjustedEffort(&tk, &fast, opts))
	assert.Equal(t, 5, AdjustedEffort(&tk, &base, opts))
	assert.Equal(t, 5, AdjustedEffort(&tk, nil, opts))

	if assert.Len(t, events, 1, "only non-baseline velocity is traced") {
		assert.Equal(t, "velocity_adjusted", events[0].Name)
		assert.Equal(t, 3, events[0].Fields["adjusted_days"])
		assert.Equal(t, "Ana", events[0].Fields["member"])
	}
}

func TestClassifyUtilization_Boundaries(t *testing.T) {
	assert.Equal(t, StatusOverCapacity, ClassifyUtilization(100.01))
	assert.Equal(t, StatusNearCapacity, ClassifyUtilization(100))
	assert.Equal(t, StatusNearCapacity, ClassifyUtilization(90.5))
	assert.Equal(t, StatusGood, ClassifyUtilization(90))
	assert.Equal(t, StatusGood, ClassifyUtilization(70.1))
	assert.Equal(t, StatusUnder, ClassifyUtilization(70))
	assert.Equal(t, StatusUnder, ClassifyUtilization(0))
}
