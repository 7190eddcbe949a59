package recommend

import (
	"testing"

	"github.com/alexanderramin/releaseplan/internal/capacity"
	"github.com/alexanderramin/releaseplan/internal/domain"
	"github.com/alexanderramin/releaseplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var date = testutil.Date

// devWindow is Feb 9-20 2026: two full working weeks.
func devWindow() []domain.Phase {
	return []domain.Phase{
		testutil.NewTestPhase("Dev", 1, date(2026, 2, 9), date(2026, 2, 20)),
		testutil.NewTestPhase("QA", 2, date(2026, 2, 21), date(2026, 3, 6), testutil.WithPhaseType(domain.PhaseTesting)),
	}
}

func lateTicket(owner string, effort float64) domain.Ticket {
	return testutil.NewTestTicket("Late", date(2026, 3, 2), date(2026, 3, 4),
		testutil.WithAssignee(owner), testutil.WithEffort(effort))
}

func fullSprint(owner string) domain.Ticket {
	return testutil.NewTestTicket("Full "+owner, date(2026, 2, 9), date(2026, 2, 20),
		testutil.WithAssignee(owner), testutil.WithEffort(10))
}

func TestBestDevWindowFix_ReschedulesForFreeOwner(t *testing.T) {
	members := []domain.TeamMember{testutil.NewTestMember("Alice"), testutil.NewTestMember("Bob")}
	ticket := lateTicket("Alice", 3)
	tickets := []domain.Ticket{ticket}

	fix := BestDevWindowFix(ticket, devWindow(), tickets, members, nil, Options{})

	r, ok := fix.(Reschedule)
	require.True(t, ok, "got %T", fix)
	assert.Equal(t, KindReschedule, r.Kind())
	assert.Equal(t, "Alice", r.Developer)
	assert.Equal(t, date(2026, 2, 9), r.StartDate)
	assert.Equal(t, date(2026, 2, 11), r.EndDate)
	assert.Equal(t, 3, r.DurationDays)
	assert.InDelta(t, 30.0, r.UtilizationAfter, 1e-9)
	assert.Equal(t, 56, r.Confidence())
	assert.Contains(t, r.Description(), "Reschedule")
}

func TestBestDevWindowFix_ReassignsWhenOwnerIsFull(t *testing.T) {
	members := []domain.TeamMember{testutil.NewTestMember("Alice"), testutil.NewTestMember("Bob")}
	ticket := lateTicket("Alice", 3)
	tickets := []domain.Ticket{ticket, fullSprint("Alice")}

	fix := BestDevWindowFix(ticket, devWindow(), tickets, members, nil, Options{})

	r, ok := fix.(Reassign)
	require.True(t, ok, "got %T", fix)
	assert.Equal(t, "Bob", r.Developer)
	assert.Equal(t, "Alice", r.From)
	assert.Equal(t, date(2026, 2, 9), r.StartDate)
	assert.Equal(t, date(2026, 2, 11), r.EndDate)
}

func TestBestDevWindowFix_PrefersGoodUtilizationBand(t *testing.T) {
	members := []domain.TeamMember{testutil.NewTestMember("Alice"), testutil.NewTestMember("Bob")}
	ticket := lateTicket("Alice", 3)
	tickets := []domain.Ticket{
		ticket,
		testutil.NewTestTicket("Bob work", date(2026, 2, 16), date(2026, 2, 19),
			testutil.WithAssignee("Bob"), testutil.WithEffort(4)),
	}

	fix := BestDevWindowFix(ticket, devWindow(), tickets, members, nil, Options{})

	r, ok := fix.(Reassign)
	require.True(t, ok, "got %T", fix)
	assert.Equal(t, "Bob", r.Developer)
	assert.InDelta(t, 70.0, r.UtilizationAfter, 1e-9)
	assert.Equal(t, 70, r.Confidence())
}

func TestBestDevWindowFix_SkipsClashingSlots(t *testing.T) {
	members := []domain.TeamMember{testutil.NewTestMember("Alice"), testutil.NewTestMember("Bob")}
	ticket := lateTicket("Alice", 3)
	tickets := []domain.Ticket{
		ticket,
		fullSprint("Alice"),
		testutil.NewTestTicket("Bob early", date(2026, 2, 9), date(2026, 2, 11),
			testutil.WithAssignee("Bob"), testutil.WithEffort(3)),
	}

	fix := BestDevWindowFix(ticket, devWindow(), tickets, members, nil, Options{})

	r, ok := fix.(Reassign)
	require.True(t, ok, "got %T", fix)
	assert.Equal(t, date(2026, 2, 12), r.StartDate)
	assert.Equal(t, date(2026, 2, 16), r.EndDate, "Thu, Fri, Mon")
}

func TestBestDevWindowFix_AvoidsPTO(t *testing.T) {
	members := []domain.TeamMember{
		testutil.NewTestMember("Alice"),
		testutil.NewTestMember("Bob", testutil.WithPTO(date(2026, 2, 9), date(2026, 2, 10))),
	}
	ticket := lateTicket("Alice", 3)
	tickets := []domain.Ticket{ticket, fullSprint("Alice")}

	fix := BestDevWindowFix(ticket, devWindow(), tickets, members, nil, Options{})

	r, ok := fix.(Reassign)
	require.True(t, ok, "got %T", fix)
	assert.Equal(t, date(2026, 2, 11), r.StartDate)
	assert.Equal(t, date(2026, 2, 13), r.EndDate)
	assert.InDelta(t, 37.5, r.UtilizationAfter, 1e-9)
}

func TestBestDevWindowFix_SkipsHolidays(t *testing.T) {
	members := []domain.TeamMember{testutil.NewTestMember("Alice"), testutil.NewTestMember("Bob")}
	holidays := []domain.Holiday{testutil.NewTestHoliday("Offsite", date(2026, 2, 10), date(2026, 2, 10))}
	ticket := lateTicket("Alice", 3)
	tickets := []domain.Ticket{ticket, fullSprint("Alice")}

	fix := BestDevWindowFix(ticket, devWindow(), tickets, members, holidays, Options{})

	r, ok := fix.(Reassign)
	require.True(t, ok, "got %T", fix)
	assert.Equal(t, date(2026, 2, 9), r.StartDate)
	assert.Equal(t, date(2026, 2, 12), r.EndDate)
}

func TestBestDevWindowFix_TieBrokenByName(t *testing.T) {
	members := []domain.TeamMember{testutil.NewTestMember("Zed"), testutil.NewTestMember("Amy")}
	ticket := lateTicket("", 2)

	fix := BestDevWindowFix(ticket, devWindow(), []domain.Ticket{ticket}, members, nil, Options{})

	r, ok := fix.(Reassign)
	require.True(t, ok, "got %T", fix)
	assert.Equal(t, "Amy", r.Developer)
	assert.Empty(t, r.From)
}

func TestBestDevWindowFix_VelocityShortensDuration(t *testing.T) {
	members := []domain.TeamMember{
		testutil.NewTestMember("Alice"),
		testutil.NewTestMember("Bob", testutil.WithVelocity(2)),
	}
	ticket := lateTicket("Alice", 4)
	tickets := []domain.Ticket{ticket, fullSprint("Alice")}

	fix := BestDevWindowFix(ticket, devWindow(), tickets, members, nil, Options{})

	r, ok := fix.(Reassign)
	require.True(t, ok, "got %T", fix)
	assert.Equal(t, 2, r.DurationDays)
	assert.Equal(t, date(2026, 2, 10), r.EndDate)
}

func TestBestDevWindowFix_OnlySameRole(t *testing.T) {
	members := []domain.TeamMember{
		testutil.NewTestMember("Alice"),
		testutil.NewTestMember("Quinn", testutil.WithRole(domain.RoleQA)),
	}
	ticket := lateTicket("Alice", 3)
	tickets := []domain.Ticket{ticket, fullSprint("Alice")}

	fix := BestDevWindowFix(ticket, devWindow(), tickets, members, nil, Options{})

	ce, ok := fix.(CapacityExhausted)
	require.True(t, ok, "got %T", fix)
	require.Len(t, ce.Breakdown, 1)
	assert.Equal(t, "Alice", ce.Breakdown[0].Developer)
}

func TestBestDevWindowFix_ScenarioD_CapacityExhausted(t *testing.T) {
	members := []domain.TeamMember{testutil.NewTestMember("Alice"), testutil.NewTestMember("Bob")}
	ticket := lateTicket("Alice", 3)
	tickets := []domain.Ticket{ticket, fullSprint("Alice"), fullSprint("Bob")}

	fix := BestDevWindowFix(ticket, devWindow(), tickets, members, nil, Options{})

	ce, ok := fix.(CapacityExhausted)
	require.True(t, ok, "got %T", fix)
	assert.Equal(t, KindCapacityExhausted, ce.Kind())
	assert.Equal(t, 0, ce.Confidence())
	assert.Equal(t, 3, ce.NeededDays)
	assert.Equal(t, 3, ce.ShortfallDays)

	require.Len(t, ce.Breakdown, 2)
	for _, b := range ce.Breakdown {
		assert.Equal(t, 10, b.AvailableDays)
		assert.Equal(t, 10, b.AssignedDays)
		assert.InDelta(t, 100.0, b.Utilization, 1e-9)
	}

	require.NotEmpty(t, ce.Alternatives)
	ext := ce.Alternatives[0]
	assert.Equal(t, AltExtendWindow, ext.Kind)
	assert.Equal(t, 3, ext.Days)
	require.NotNil(t, ext.NewEndDate)
	assert.Equal(t, date(2026, 2, 25), *ext.NewEndDate)
	assert.NotEmpty(t, ext.Impact)
	assert.Equal(t, AltMoveBacklog, ce.Alternatives[1].Kind)

	require.Len(t, ce.Alternatives, 3)
	reduce := ce.Alternatives[2]
	assert.Equal(t, AltReduceScope, reduce.Kind)
	assert.Equal(t, 0, reduce.Days)
	assert.Contains(t, reduce.Impact, "No smaller version fits")
}

func TestBestDevWindowFix_FragmentedCalendarAlternativesPlace(t *testing.T) {
	members := []domain.TeamMember{testutil.NewTestMember("Alice")}
	ticket := lateTicket("Alice", 4)
	tickets := []domain.Ticket{ticket}
	for _, d := range []int{11, 16, 19} {
		tickets = append(tickets, testutil.NewTestTicket("Busy", date(2026, 2, d), date(2026, 2, d),
			testutil.WithAssignee("Alice"), testutil.WithEffort(1)))
	}
	phases := devWindow()

	fix := BestDevWindowFix(ticket, phases, tickets, members, nil, Options{})

	ce, ok := fix.(CapacityExhausted)
	require.True(t, ok, "got %T", fix)
	require.Len(t, ce.Breakdown, 1)
	assert.InDelta(t, 30.0, ce.Breakdown[0].Utilization, 1e-9)
	assert.Equal(t, 4, ce.NeededDays)
	assert.Equal(t, 3, ce.ShortfallDays)
	require.Len(t, ce.Alternatives, 3)

	ext := ce.Alternatives[0]
	require.Equal(t, AltExtendWindow, ext.Kind)
	assert.Equal(t, 3, ext.Days)
	require.NotNil(t, ext.NewEndDate)
	assert.Equal(t, date(2026, 2, 25), *ext.NewEndDate)

	extended := append([]domain.Phase(nil), phases...)
	for i := range extended {
		if extended[i].ID == ext.PhaseID {
			extended[i].EndDate = *ext.NewEndDate
		}
	}
	r, ok := BestDevWindowFix(ticket, extended, tickets, members, nil, Options{}).(Reschedule)
	require.True(t, ok, "extended window should fit the ticket")
	assert.Equal(t, date(2026, 2, 20), r.StartDate)
	assert.Equal(t, date(2026, 2, 25), r.EndDate)

	reduce := ce.Alternatives[2]
	require.Equal(t, AltReduceScope, reduce.Kind)
	assert.Equal(t, 2, reduce.Days)
	assert.Contains(t, reduce.Impact, "from 4 to 2")

	smaller := ticket.Clone()
	effort := 4.0 - float64(reduce.Days)
	smaller.EffortDays = &effort
	r, ok = BestDevWindowFix(smaller, phases, tickets, members, nil, Options{}).(Reschedule)
	require.True(t, ok, "reduced scope should fit the ticket")
	assert.Equal(t, date(2026, 2, 9), r.StartDate)
	assert.Equal(t, date(2026, 2, 10), r.EndDate)
}

func TestBestDevWindowFix_ReduceScopeWhenPartlySpare(t *testing.T) {
	members := []domain.TeamMember{testutil.NewTestMember("Alice"), testutil.NewTestMember("Bob")}
	ticket := lateTicket("Alice", 3)
	tickets := []domain.Ticket{
		ticket,
		testutil.NewTestTicket("Most", date(2026, 2, 9), date(2026, 2, 18),
			testutil.WithAssignee("Alice"), testutil.WithEffort(8)),
		fullSprint("Bob"),
	}

	fix := BestDevWindowFix(ticket, devWindow(), tickets, members, nil, Options{})

	ce, ok := fix.(CapacityExhausted)
	require.True(t, ok, "got %T", fix)
	assert.Equal(t, 1, ce.ShortfallDays)
	require.Len(t, ce.Alternatives, 3)
	reduce := ce.Alternatives[2]
	assert.Equal(t, AltReduceScope, reduce.Kind)
	assert.Equal(t, 1, reduce.Days)
	assert.Contains(t, reduce.Impact, "from 3 to 2")
}

func TestBestDevWindowFix_NoDevWindowIsDistinct(t *testing.T) {
	members := []domain.TeamMember{testutil.NewTestMember("Alice")}
	ticket := lateTicket("Alice", 3)
	phases := []domain.Phase{
		testutil.NewTestPhase("QA", 1, date(2026, 2, 9), date(2026, 2, 20), testutil.WithPhaseType(domain.PhaseTesting)),
	}

	fix := BestDevWindowFix(ticket, phases, []domain.Ticket{ticket}, members, nil, Options{})

	assert.Equal(t, KindNoDevWindow, fix.Kind())
	assert.IsType(t, NoDevWindow{}, fix)
	assert.Contains(t, fix.Description(), "No dev window")
}

func TestBestDevWindowFix_PicksLaterWindowWhenFirstIsFull(t *testing.T) {
	members := []domain.TeamMember{testutil.NewTestMember("Alice")}
	phases := append(devWindow(),
		testutil.NewTestPhase("Dev 2", 3, date(2026, 3, 9), date(2026, 3, 20)))
	ticket := testutil.NewTestTicket("Late", date(2026, 3, 23), date(2026, 3, 25),
		testutil.WithAssignee("Alice"), testutil.WithEffort(3))
	tickets := []domain.Ticket{ticket, fullSprint("Alice")}

	fix := BestDevWindowFix(ticket, phases, tickets, members, nil, Options{})

	r, ok := fix.(Reschedule)
	require.True(t, ok, "got %T", fix)
	assert.Equal(t, "Dev 2", r.PhaseName)
	assert.Equal(t, date(2026, 3, 9), r.StartDate)
}

func TestBestDevWindowFix_TracesCandidates(t *testing.T) {
	members := []domain.TeamMember{testutil.NewTestMember("Alice"), testutil.NewTestMember("Bob")}
	ticket := lateTicket("Alice", 3)
	tickets := []domain.Ticket{ticket, fullSprint("Alice")}

	var names []string
	opts := Options{Capacity: capacity.Options{Tracer: capacity.TraceFunc(func(e capacity.TraceEvent) {
		names = append(names, e.Name)
	})}}
	BestDevWindowFix(ticket, devWindow(), tickets, members, nil, opts)

	assert.Contains(t, names, "fix_candidate_rejected")
	assert.Contains(t, names, "fix_candidate_scored")
}

func TestBestDevWindowFix_DoesNotMutateInputs(t *testing.T) {
	members := []domain.TeamMember{testutil.NewTestMember("Alice"), testutil.NewTestMember("Bob")}
	ticket := lateTicket("Alice", 3)
	tickets := []domain.Ticket{fullSprint("Alice"), ticket}
	phases := devWindow()
	before := append([]domain.Ticket(nil), tickets...)
	phasesBefore := append([]domain.Phase(nil), phases...)

	BestDevWindowFix(ticket, phases, tickets, members, nil, Options{})

	assert.Equal(t, before, tickets)
	assert.Equal(t, phasesBefore, phases)
}

func TestApplyFix(t *testing.T) {
	ticket := lateTicket("Alice", 3)
	now := date(2026, 1, 5)

	moved, ok := ApplyFix(ticket, Reassign{
		Placement: Placement{Developer: "Bob", StartDate: date(2026, 2, 9), EndDate: date(2026, 2, 11)},
	}, now)
	require.True(t, ok)
	assert.Equal(t, "Bob", moved.AssignedTo)
	assert.Equal(t, date(2026, 2, 9), moved.StartDate)
	assert.Equal(t, now, moved.UpdatedAt)
	assert.Equal(t, "Alice", ticket.AssignedTo, "input untouched")

	moved, ok = ApplyFix(ticket, Reschedule{
		Placement: Placement{Developer: "Alice", StartDate: date(2026, 2, 12), EndDate: date(2026, 2, 16)},
	}, now)
	require.True(t, ok)
	assert.Equal(t, "Alice", moved.AssignedTo)
	assert.Equal(t, date(2026, 2, 16), moved.EndDate)

	same, ok := ApplyFix(ticket, CapacityExhausted{}, now)
	assert.False(t, ok)
	assert.Equal(t, ticket, same)
}

func TestWeights_ZeroFallsBackToDefaults(t *testing.T) {
	assert.Equal(t, DefaultWeights(), Options{}.weights())
	custom := Weights{UtilizationFit: 1}
	assert.Equal(t, custom, Options{Weights: custom}.weights())
}
