package capacity

import (
	"testing"

	"github.com/alexanderramin/releaseplan/internal/domain"
	"github.com/alexanderramin/releaseplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateTeamMemberCapacity_VelocityAdjusted(t *testing.T) {
	sprint, tickets, _, holidays := scenarioA()
	alice := testutil.NewTestMember("Alice", testutil.WithVelocity(2))

	var traced int
	opts := Options{Tracer: TraceFunc(func(TraceEvent) { traced++ })}
	tc := CalculateTeamMemberCapacity(alice, []domain.Sprint{sprint}, tickets, holidays, opts)

	require.Len(t, tc.Sprints, 1)
	load := tc.Sprints[0].Load
	assert.Equal(t, 9, load.AvailableDays)
	// 5/2 rounds to 3, 3/2 rounds to 2.
	assert.Equal(t, 5, load.AssignedDays)
	assert.Len(t, load.TicketIDs, 2)
	assert.Equal(t, 2, traced)
	assert.Equal(t, 2.0, tc.Velocity)
	assert.Equal(t, StatusUnder, tc.Status)
}

func TestCalculateTeamMemberCapacity_PTOReducesAvailability(t *testing.T) {
	sprint, tickets, members, holidays := scenarioA()
	tc := CalculateTeamMemberCapacity(members[1], []domain.Sprint{sprint}, tickets, holidays, Options{})

	load := tc.Sprints[0].Load
	assert.Equal(t, 3, load.PTODays)
	assert.Equal(t, 6, load.AvailableDays)
	assert.Equal(t, 4, load.AssignedDays)
}

func TestCalculateTeamMemberCapacity_AggregateStatusDiffersFromSprints(t *testing.T) {
	s1 := testutil.NewTestSprint("S1", testutil.Date(2026, 2, 9), testutil.Date(2026, 2, 20))
	s2 := testutil.NewTestSprint("S2", testutil.Date(2026, 2, 23), testutil.Date(2026, 3, 6))
	holidays := []domain.Holiday{testutil.NewTestHoliday("H", testutil.Date(2026, 2, 16), testutil.Date(2026, 2, 16))}
	dev := testutil.NewTestMember("Dana")
	tickets := []domain.Ticket{
		testutil.NewTestTicket("Big", testutil.Date(2026, 2, 9), testutil.Date(2026, 2, 19),
			testutil.WithAssignee("Dana"), testutil.WithEffort(10)),
		testutil.NewTestTicket("Small", testutil.Date(2026, 2, 23), testutil.Date(2026, 2, 24),
			testutil.WithAssignee("Dana"), testutil.WithEffort(2)),
	}

	// Sprints passed out of order; output is chronological.
	tc := CalculateTeamMemberCapacity(dev, []domain.Sprint{s2, s1}, tickets, holidays, Options{})

	require.Len(t, tc.Sprints, 2)
	assert.Equal(t, "S1", tc.Sprints[0].SprintName)
	assert.True(t, tc.Sprints[0].OverCapacity)
	assert.Equal(t, StatusOverCapacity, tc.Sprints[0].Status)
	assert.Equal(t, StatusUnder, tc.Sprints[1].Status)

	assert.Equal(t, 19, tc.TotalAvailableDays)
	assert.Equal(t, 12, tc.TotalAssignedDays)
	assert.InDelta(t, 63.16, tc.Utilization, 0.01)
	assert.Equal(t, StatusUnder, tc.Status)
	assert.False(t, tc.OverCapacity)
}

func TestCalculateTeamMemberCapacity_FullPTOIsNoCapacity(t *testing.T) {
	sprint := testutil.NewTestSprint("S1", testutil.Date(2026, 2, 9), testutil.Date(2026, 2, 20))
	dev := testutil.NewTestMember("Eve", testutil.WithPTO(testutil.Date(2026, 2, 9), testutil.Date(2026, 2, 20)))

	tc := CalculateTeamMemberCapacity(dev, []domain.Sprint{sprint}, nil, nil, Options{})
	assert.Equal(t, 0, tc.TotalAvailableDays)
	assert.Equal(t, 0.0, tc.Utilization)
	assert.Equal(t, StatusNoCapacity, tc.Status)
}

func TestCalculateAllTeamMemberCapacities_SortedByName(t *testing.T) {
	sprint, tickets, members, holidays := scenarioA()
	reversed := []domain.TeamMember{members[2], members[1], members[0]}

	all := CalculateAllTeamMemberCapacities(reversed, []domain.Sprint{sprint}, tickets, holidays, Options{})

	require.Len(t, all, 3)
	assert.Equal(t, "Alice", all[0].Name)
	assert.Equal(t, "Bob", all[1].Name)
	assert.Equal(t, "Carol", all[2].Name)
	assert.Equal(t, 8, all[0].TotalAssignedDays)
	assert.Equal(t, 0, all[2].TotalAssignedDays)
}

func TestCalculateMemberLoad_ExcludesTicket(t *testing.T) {
	sprint, tickets, members, holidays := scenarioA()
	load := CalculateMemberLoad(&members[0], sprint.StartDate, sprint.EndDate, tickets, HolidaySet(holidays), Options{}, tickets[0].ID)
	assert.Equal(t, 3, load.AssignedDays)
	assert.Equal(t, []string{tickets[2].ID}, load.TicketIDs)
}
