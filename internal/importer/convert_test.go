package importer

import (
	"testing"

	"github.com/alexanderramin/releaseplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_MinimalRelease(t *testing.T) {
	snap, err := Convert(validMinimalSchema())
	require.NoError(t, err)

	assert.NotEmpty(t, snap.Release.ID)
	assert.Equal(t, "Q1 Release", snap.Release.Name)
	assert.Equal(t, "2026-02-02", snap.Release.StartDate.Format(dateLayout))
	assert.Nil(t, snap.Release.TargetDate)
	assert.Nil(t, snap.Release.StoryPointMapping)

	require.Len(t, snap.Team, 1)
	assert.Equal(t, domain.RoleDeveloper, snap.Team[0].Role)
	assert.Equal(t, snap.Release.ID, snap.Team[0].ReleaseID)

	require.Len(t, snap.Phases, 1)
	assert.True(t, snap.Phases[0].AllowsWork)
	assert.Equal(t, 1, snap.Phases[0].Order)

	require.Len(t, snap.Tickets, 1)
	tk := snap.Tickets[0]
	assert.Equal(t, "PAY-1", tk.ID)
	assert.Equal(t, domain.TicketPlanned, tk.Status)
	assert.Equal(t, snap.Release.ID, tk.ReleaseID)
	assert.Equal(t, "Sarah Chen", tk.AssignedTo)
}

func TestConvert_FullRelease(t *testing.T) {
	schema := validMinimalSchema()
	schema.Release.TargetDate = ptrStr("2026-03-31")
	schema.Release.StoryPointMapping = map[int]float64{3: 2}
	schema.Team[0].VelocityMultiplier = ptrFloat(1.5)
	schema.Team[0].PTO = []PTOImport{{StartDate: "2026-02-16", EndDate: "2026-02-18"}}
	schema.Holidays = []HolidayImport{{Name: "Presidents Day", StartDate: "2026-02-16"}}
	schema.Sprints = []SprintImport{{Name: "S1", StartDate: "2026-02-02", EndDate: "2026-02-13"}}
	schema.Phases = append(schema.Phases,
		PhaseImport{Name: "QA", Type: "Testing", StartDate: "2026-02-28", EndDate: "2026-03-13"},
		PhaseImport{Name: "Hardening", Type: "Custom", StartDate: "2026-03-14", EndDate: "2026-03-20", AllowsWork: ptrBool(true), Order: 7},
	)
	schema.Tickets = append(schema.Tickets, TicketImport{
		Title: "Refunds", StartDate: "2026-02-09", EndDate: "2026-02-10", AssignedTo: "Unassigned",
		StoryPoints: ptrFloat(3), RequiredSkills: []string{"go"},
	})

	snap, err := Convert(schema)
	require.NoError(t, err)

	require.NotNil(t, snap.Release.TargetDate)
	assert.Equal(t, domain.StoryPointMapping{3: 2}, snap.Release.StoryPointMapping)

	member := snap.Team[0]
	assert.Equal(t, 1.5, member.Velocity())
	require.Len(t, member.PTO, 1)
	assert.Equal(t, "PTO", member.PTO[0].Name)
	assert.Equal(t, member.ID, member.PTO[0].MemberID)

	require.Len(t, snap.Holidays, 1)
	assert.Equal(t, snap.Holidays[0].StartDate, snap.Holidays[0].EndDate, "single-day holiday")

	require.Len(t, snap.Phases, 3)
	assert.False(t, snap.Phases[1].AllowsWork)
	assert.Equal(t, 2, snap.Phases[1].Order)
	assert.True(t, snap.Phases[2].AllowsWork)
	assert.Equal(t, 7, snap.Phases[2].Order)

	refunds := snap.Tickets[1]
	assert.NotEmpty(t, refunds.ID)
	assert.Equal(t, "", refunds.AssignedTo)
	assert.False(t, refunds.IsAssigned())
	require.NotNil(t, refunds.StoryPoints)
	assert.Nil(t, refunds.EffortDays)
	assert.Equal(t, []string{"go"}, refunds.RequiredSkills)
}

func TestConvert_UniqueIDs(t *testing.T) {
	schema := validMinimalSchema()
	schema.Team = append(schema.Team, MemberImport{Name: "Dev Patel"})

	a, err := Convert(schema)
	require.NoError(t, err)
	b, err := Convert(schema)
	require.NoError(t, err)

	assert.NotEqual(t, a.Release.ID, b.Release.ID)
	assert.NotEqual(t, a.Team[0].ID, a.Team[1].ID)
}
