package timeline

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/alexanderramin/releaseplan/internal/calendar"
	"github.com/alexanderramin/releaseplan/internal/domain"
	"github.com/alexanderramin/releaseplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var date = testutil.Date

func releasePhases() []domain.Phase {
	return []domain.Phase{
		testutil.NewTestPhase("Dev", 1, date(2026, 2, 2), date(2026, 2, 27)),
		testutil.NewTestPhase("Testing", 2, date(2026, 2, 28), date(2026, 3, 13), testutil.WithPhaseType(domain.PhaseTesting)),
		testutil.NewTestPhase("Deploy", 3, date(2026, 3, 14), date(2026, 3, 16), testutil.WithPhaseType(domain.PhaseDeployment)),
		testutil.NewTestPhase("Launch", 4, date(2026, 3, 17), date(2026, 3, 17), testutil.WithPhaseType(domain.PhaseLaunch)),
	}
}

func TestRecalculateCascadingDates_ExtendShiftsLaterPhases(t *testing.T) {
	phases := releasePhases()

	got, err := RecalculateCascadingDates(phases, 0, date(2026, 3, 6))
	require.NoError(t, err)

	require.Len(t, got, 4)
	assert.Equal(t, date(2026, 2, 2), got[0].StartDate)
	assert.Equal(t, date(2026, 3, 6), got[0].EndDate)
	assert.Equal(t, date(2026, 3, 7), got[1].StartDate)
	assert.Equal(t, date(2026, 3, 20), got[1].EndDate)
	assert.Equal(t, date(2026, 3, 21), got[2].StartDate)
	assert.Equal(t, date(2026, 3, 23), got[2].EndDate)
	assert.Equal(t, date(2026, 3, 24), got[3].StartDate)
	assert.Equal(t, date(2026, 3, 24), got[3].EndDate)
	assert.NoError(t, domain.CheckPhaseContiguity(got))
}

func TestRecalculateCascadingDates_ShrinkPullsLaterPhasesIn(t *testing.T) {
	got, err := RecalculateCascadingDates(releasePhases(), 1, date(2026, 3, 6))
	require.NoError(t, err)

	assert.Equal(t, date(2026, 2, 28), got[1].StartDate)
	assert.Equal(t, date(2026, 3, 6), got[1].EndDate)
	assert.Equal(t, date(2026, 3, 7), got[2].StartDate)
	assert.Equal(t, date(2026, 3, 10), got[3].StartDate)
}

func TestRecalculateCascadingDates_PrefixUntouched(t *testing.T) {
	phases := releasePhases()
	// Break contiguity before the edit point; the cascade must not repair it.
	phases[1].StartDate = date(2026, 3, 2)

	got, err := RecalculateCascadingDates(phases, 2, date(2026, 3, 18))
	require.NoError(t, err)

	assert.Equal(t, phases[0], got[0])
	assert.Equal(t, phases[1], got[1])
	assert.Equal(t, date(2026, 3, 14), got[2].StartDate)
	assert.Equal(t, date(2026, 3, 19), got[3].StartDate)
}

func TestRecalculateCascadingDates_ClampsEndBeforeStart(t *testing.T) {
	got, err := RecalculateCascadingDates(releasePhases(), 1, date(2026, 1, 1))
	require.NoError(t, err)

	assert.Equal(t, got[1].StartDate, got[1].EndDate)
	assert.Equal(t, date(2026, 3, 1), got[2].StartDate)
}

func TestRecalculateCascadingDates_SortsByOrder(t *testing.T) {
	phases := releasePhases()
	shuffled := []domain.Phase{phases[2], phases[0], phases[3], phases[1]}

	got, err := RecalculateCascadingDates(shuffled, 0, date(2026, 2, 27))
	require.NoError(t, err)

	for i, p := range got {
		assert.Equal(t, i+1, p.Order)
	}
	assert.Equal(t, phases[0].ID, got[0].ID)
}

func TestRecalculateCascadingDates_IndexOutOfRange(t *testing.T) {
	for _, idx := range []int{-1, 4} {
		_, err := RecalculateCascadingDates(releasePhases(), idx, date(2026, 3, 1))
		assert.True(t, errors.Is(err, ErrPhaseIndexOutOfRange), "index %d", idx)
	}
	_, err := RecalculateCascadingDates(nil, 0, date(2026, 3, 1))
	assert.ErrorIs(t, err, ErrPhaseIndexOutOfRange)
}

func TestRecalculateCascadingDates_DoesNotMutateInput(t *testing.T) {
	phases := releasePhases()
	before := append([]domain.Phase(nil), phases...)

	_, err := RecalculateCascadingDates(phases, 0, date(2026, 3, 20))
	require.NoError(t, err)

	assert.Equal(t, before, phases)
}

func TestRecalculateCascadingDates_IdempotentProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for iter := 0; iter < 200; iter++ {
		n := 1 + rng.Intn(6)
		var phases []domain.Phase
		start := date(2026, 1, 5)
		for i := 0; i < n; i++ {
			end := calendar.AddDays(start, rng.Intn(20))
			phases = append(phases, testutil.NewTestPhase("p", i+1, start, end))
			start = calendar.AddDays(end, 1+rng.Intn(3)) // gaps are allowed in the input
		}
		idx := rng.Intn(n)
		newEnd := calendar.AddDays(phases[idx].StartDate, rng.Intn(40)-5)

		once, err := RecalculateCascadingDates(phases, idx, newEnd)
		require.NoError(t, err)
		twice, err := RecalculateCascadingDates(once, idx, newEnd)
		require.NoError(t, err)

		assert.Equal(t, once, twice, "iter %d", iter)
		for i := 0; i < idx; i++ {
			assert.Equal(t, phases[i], once[i], "iter %d: phase %d moved", iter, i)
		}
		for i := idx + 1; i < n; i++ {
			assert.Equal(t, phases[i].DurationDays(), once[i].DurationDays(), "iter %d: duration of %d", iter, i)
			assert.Equal(t, calendar.AddDays(once[i-1].EndDate, 1), once[i].StartDate)
		}
	}
}

func TestIndexOfPhase(t *testing.T) {
	phases := releasePhases()
	assert.Equal(t, 2, IndexOfPhase([]domain.Phase{phases[3], phases[2], phases[1], phases[0]}, phases[2].ID))
	assert.Equal(t, -1, IndexOfPhase(phases, "missing"))
}
