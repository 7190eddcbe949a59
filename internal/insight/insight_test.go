package insight

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/alexanderramin/releaseplan/internal/conflict"
	"github.com/alexanderramin/releaseplan/internal/domain"
	"github.com/alexanderramin/releaseplan/internal/testutil"
	"github.com/alexanderramin/releaseplan/internal/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var date = testutil.Date

func baseInput() Input {
	return Input{
		Release: *testutil.NewTestRelease("R1", date(2026, 2, 2)),
		Tickets: []domain.Ticket{
			testutil.NewTestTicket("a", date(2026, 2, 2), date(2026, 2, 4), testutil.WithAssignee("Alice")),
		},
		Sprints:     []domain.Sprint{testutil.NewTestSprint("S1", date(2026, 2, 2), date(2026, 2, 13))},
		Members:     []domain.TeamMember{testutil.NewTestMember("Alice")},
		Metrics:     conflict.Summarize(nil),
		Utilization: 75,
		Now:         date(2026, 3, 1),
	}
}

func rulesOf(ins []Insight) []string {
	out := make([]string, 0, len(ins))
	for _, i := range ins {
		out = append(out, i.Rule)
	}
	return out
}

func TestGenerateInsights_Healthy(t *testing.T) {
	got := GenerateInsights(baseInput())

	require.Len(t, got, 1)
	assert.Equal(t, "healthy", got[0].Rule)
	assert.Equal(t, 3, got[0].Priority)
	assert.Contains(t, got[0].Message, "75%")
}

func TestGenerateInsights_Rules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Input)
		want   string
	}{
		{"no sprints", func(in *Input) { in.Sprints = nil }, "no_sprints"},
		{"no developers", func(in *Input) {
			in.Members = []domain.TeamMember{testutil.NewTestMember("Quinn", testutil.WithRole(domain.RoleQA))}
		}, "no_developers"},
		{"severely over", func(in *Input) { in.Utilization = 151 }, "severely_over_capacity"},
		{"critical conflicts", func(in *Input) { in.Metrics.Critical, in.Metrics.Total = 4, 4 }, "many_critical_conflicts"},
		{"unscheduled", func(in *Input) {
			for i := 0; i < 6; i++ {
				in.Tickets = append(in.Tickets, testutil.NewTestTicket("u", date(2026, 2, 2), date(2026, 2, 3)))
			}
		}, "unscheduled_with_capacity"},
		{"low utilization", func(in *Input) { in.Utilization = 49.9 }, "low_utilization"},
		{"behind", func(in *Input) { in.Timeline = timeline.Status{State: timeline.StateBehind} }, "timeline_behind"},
		{"reassignable", func(in *Input) { in.Metrics.Reassignable, in.Metrics.Total, in.Metrics.Critical = 3, 3, 1 }, "reassignable_conflicts"},
		{"empty backlog", func(in *Input) { in.Tickets = nil }, "empty_backlog"},
		{"minor only", func(in *Input) { in.Metrics.Total, in.Metrics.Warning = 2, 2 }, "minor_conflicts_only"},
		{"starting soon", func(in *Input) { in.Now = date(2026, 1, 28) }, "release_starting_soon"},
		{"junior heavy", func(in *Input) {
			in.Members = []domain.TeamMember{
				testutil.NewTestMember("J1", testutil.WithVelocity(0.7)),
				testutil.NewTestMember("J2", testutil.WithVelocity(0.8)),
				testutil.NewTestMember("S1", testutil.WithVelocity(1.3)),
			}
			for i := 0; i < 21; i++ {
				in.Tickets = append(in.Tickets, testutil.NewTestTicket("j", date(2026, 2, 2), date(2026, 2, 3),
					testutil.WithAssignee("J1")))
			}
		}, "junior_heavy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := baseInput()
			tt.mutate(&in)
			assert.Contains(t, rulesOf(GenerateInsights(in)), tt.want)
		})
	}
}

func TestGenerateInsights_ThresholdsAreStrict(t *testing.T) {
	in := baseInput()
	in.Utilization = 150
	in.Metrics.Critical, in.Metrics.Total, in.Metrics.Reassignable = 3, 3, 2
	got := rulesOf(GenerateInsights(in))
	assert.NotContains(t, got, "severely_over_capacity")
	assert.NotContains(t, got, "many_critical_conflicts")
	assert.NotContains(t, got, "reassignable_conflicts")

	in = baseInput()
	in.Now = date(2026, 1, 25) // 8 days out
	assert.NotContains(t, rulesOf(GenerateInsights(in)), "release_starting_soon")
}

func TestGenerateInsights_TopThreeByPriorityThenDeclaration(t *testing.T) {
	in := baseInput()
	in.Sprints = nil
	in.Members = nil
	in.Utilization = 200
	in.Metrics = conflict.Metrics{Total: 5, Critical: 5}

	got := GenerateInsights(in)

	assert.Equal(t, []string{"no_sprints", "no_developers", "severely_over_capacity"}, rulesOf(got))
}

func TestGenerateInsights_LowerPriorityFillsRemainingSlots(t *testing.T) {
	in := baseInput()
	in.Utilization = 30
	in.Timeline = timeline.Status{State: timeline.StateBehind, ProgressPct: 10, ElapsedPct: 60}
	in.TeamVelocity = 4.5
	in.Metrics = conflict.Metrics{Total: 1, Warning: 1}

	got := GenerateInsights(in)

	assert.Equal(t, []string{"low_utilization", "timeline_behind", "minor_conflicts_only"}, rulesOf(got))
	assert.Contains(t, got[1].Message, "4.5 effort-days")
}

func TestGenerateInsights_Limit(t *testing.T) {
	in := baseInput()
	in.Sprints = nil
	in.Members = nil
	in.Utilization = 200

	in.Limit = 1
	assert.Len(t, GenerateInsights(in), 1)
	in.Limit = 10
	assert.Len(t, GenerateInsights(in), MaxInsights)
}

func TestGenerateInsights_CriticalMessageNamesDevelopers(t *testing.T) {
	in := baseInput()
	in.Conflicts = []conflict.Conflict{
		{Severity: conflict.SeverityCritical, Developer: "Bob"},
		{Severity: conflict.SeverityCritical, Developer: "Alice"},
		{Severity: conflict.SeverityCritical, Developer: "Bob"},
		{Severity: conflict.SeverityCritical, Developer: "Cara"},
		{Severity: conflict.SeverityWarning, Developer: "Dan"},
	}
	in.Metrics = conflict.Summarize(in.Conflicts)

	got := GenerateInsights(in)

	require.NotEmpty(t, got)
	assert.Equal(t, "many_critical_conflicts", got[0].Rule)
	assert.Contains(t, got[0].Message, "Bob, Alice, Cara")
}

func TestGenerateInsights_PropertyBoundedAndSorted(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for iter := 0; iter < 500; iter++ {
		in := baseInput()
		if rng.Intn(3) == 0 {
			in.Sprints = nil
		}
		if rng.Intn(4) == 0 {
			in.Members = nil
		}
		if rng.Intn(4) == 0 {
			in.Tickets = nil
		}
		for i := 0; i < rng.Intn(30); i++ {
			in.Tickets = append(in.Tickets, testutil.NewTestTicket(fmt.Sprint(i), date(2026, 2, 2), date(2026, 2, 3)))
		}
		in.Utilization = rng.Float64() * 250
		crit := rng.Intn(6)
		in.Metrics = conflict.Metrics{Critical: crit, Total: crit + rng.Intn(4), Reassignable: rng.Intn(5)}
		if rng.Intn(2) == 0 {
			in.Timeline.State = timeline.StateBehind
		}
		in.Now = date(2026, 1, 20+rng.Intn(20))

		got := GenerateInsights(in)

		assert.LessOrEqual(t, len(got), MaxInsights)
		for i := 1; i < len(got); i++ {
			assert.LessOrEqual(t, got[i-1].Priority, got[i].Priority, "iter %d", iter)
		}
	}
}

func TestTeamVelocity(t *testing.T) {
	sprints := []domain.Sprint{
		testutil.NewTestSprint("S1", date(2026, 2, 2), date(2026, 2, 13)),
		testutil.NewTestSprint("S2", date(2026, 2, 16), date(2026, 2, 27)),
		testutil.NewTestSprint("S3", date(2026, 3, 2), date(2026, 3, 13)), // not finished
	}
	tickets := []domain.Ticket{
		testutil.NewTestTicket("a", date(2026, 2, 2), date(2026, 2, 6),
			testutil.WithEffort(4), testutil.WithStatus(domain.TicketCompleted)),
		testutil.NewTestTicket("b", date(2026, 2, 16), date(2026, 2, 20),
			testutil.WithEffort(5), testutil.WithStatus(domain.TicketCompleted)),
		testutil.NewTestTicket("c", date(2026, 2, 23), date(2026, 2, 25),
			testutil.WithStoryPoints(5), testutil.WithStatus(domain.TicketCompleted)),
		testutil.NewTestTicket("open", date(2026, 2, 2), date(2026, 2, 6), testutil.WithEffort(10)),
		testutil.NewTestTicket("current", date(2026, 3, 2), date(2026, 3, 3),
			testutil.WithEffort(7), testutil.WithStatus(domain.TicketCompleted)),
	}
	mapping := domain.StoryPointMapping{5: 3}
	now := date(2026, 3, 4)

	v := TeamVelocityStats(sprints, tickets, mapping, now)

	assert.Equal(t, 2, v.Sprints)
	assert.InDelta(t, 6.0, v.Mean, 1e-9)
	assert.InDelta(t, math.Sqrt(8), v.StdDev, 1e-9)
	assert.InDelta(t, 6.0, TeamVelocity(sprints, tickets, mapping, now), 1e-9)
}

func TestTeamVelocity_NoFinishedSprints(t *testing.T) {
	sprints := []domain.Sprint{testutil.NewTestSprint("S1", date(2026, 2, 2), date(2026, 2, 13))}

	assert.Zero(t, TeamVelocity(sprints, nil, nil, date(2026, 2, 10)))
	assert.Zero(t, TeamVelocity(nil, nil, nil, date(2026, 2, 10)))
}

func TestTeamVelocity_SingleSprint(t *testing.T) {
	sprints := []domain.Sprint{testutil.NewTestSprint("S1", date(2026, 2, 2), date(2026, 2, 13))}
	tickets := []domain.Ticket{
		testutil.NewTestTicket("a", date(2026, 2, 2), date(2026, 2, 6),
			testutil.WithEffort(4), testutil.WithStatus(domain.TicketCompleted)),
	}

	v := TeamVelocityStats(sprints, tickets, nil, date(2026, 3, 1))

	assert.Equal(t, Velocity{Mean: 4, Sprints: 1}, v)
}
