package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/releaseplan/internal/app"
	"github.com/alexanderramin/releaseplan/internal/domain"
	"github.com/alexanderramin/releaseplan/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditPhaseEnd_CascadesAndPersists(t *testing.T) {
	env := setupEnv(t)
	res := importQ1(t, env)
	ctx := context.Background()

	resp, err := NewPhaseService(env.uow, env.observer).EditPhaseEnd(ctx, app.PhaseEditRequest{
		ReleaseRef: "Q1",
		PhaseRef:   "development",
		NewEnd:     date(2026, 2, 24),
	})
	require.NoError(t, err)

	assert.Len(t, resp.Changed, 3)
	assert.True(t, resp.Saved)
	assert.False(t, resp.Repaired)
	assert.Equal(t, date(2026, 2, 20), resp.Before[0].EndDate)

	phases, err := env.store.Phases.ListByRelease(ctx, res.Release.ID)
	require.NoError(t, err)
	require.Len(t, phases, 3)
	assert.Equal(t, date(2026, 2, 24), phases[0].EndDate)
	assert.Equal(t, date(2026, 2, 25), phases[1].StartDate)
	assert.Equal(t, date(2026, 3, 10), phases[1].EndDate)
	assert.Equal(t, date(2026, 3, 11), phases[2].StartDate)
	assert.Equal(t, date(2026, 3, 17), phases[2].EndDate)
	assert.NoError(t, domain.CheckPhaseContiguity(phases))

	assert.Equal(t, 3, env.observer.last().Fields["changed"])
}

func TestEditPhaseEnd_LastPhaseOnlyChangesItself(t *testing.T) {
	env := setupEnv(t)
	importQ1(t, env)

	resp, err := NewPhaseService(env.uow).EditPhaseEnd(context.Background(), app.PhaseEditRequest{
		ReleaseRef: "Q1", PhaseRef: "Launch", NewEnd: date(2026, 3, 20),
	})
	require.NoError(t, err)
	require.Len(t, resp.Changed, 1)
	assert.Equal(t, resp.After[2].ID, resp.Changed[0])
}

func TestEditPhaseEnd_DryRunLeavesStore(t *testing.T) {
	env := setupEnv(t)
	res := importQ1(t, env)
	ctx := context.Background()

	resp, err := NewPhaseService(env.uow).EditPhaseEnd(ctx, app.PhaseEditRequest{
		ReleaseRef: "Q1", PhaseRef: "QA", NewEnd: date(2026, 3, 3), DryRun: true,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Changed, 2)
	assert.False(t, resp.Saved)

	phases, err := env.store.Phases.ListByRelease(ctx, res.Release.ID)
	require.NoError(t, err)
	assert.Equal(t, date(2026, 3, 6), phases[1].EndDate)
}

func TestEditPhaseEnd_NonContiguousNeedsRepair(t *testing.T) {
	env := setupEnv(t)
	res := importQ1(t, env)
	ctx := context.Background()

	phases, err := env.store.Phases.ListByRelease(ctx, res.Release.ID)
	require.NoError(t, err)
	qa := phases[1]
	qa.StartDate = date(2026, 2, 23)
	require.NoError(t, env.store.Phases.UpdateDates(ctx, &qa))

	svc := NewPhaseService(env.uow)
	req := app.PhaseEditRequest{ReleaseRef: "Q1", PhaseRef: "Development", NewEnd: date(2026, 2, 20)}

	_, err = svc.EditPhaseEnd(ctx, req)
	assert.ErrorIs(t, err, domain.ErrPhasesNotContiguous)

	req.Repair = true
	resp, err := svc.EditPhaseEnd(ctx, req)
	require.NoError(t, err)
	assert.True(t, resp.Repaired)
	assert.Equal(t, date(2026, 2, 21), resp.After[1].StartDate)
	assert.Contains(t, resp.Changed, qa.ID)
}

func TestEditPhaseEnd_UnknownPhase(t *testing.T) {
	env := setupEnv(t)
	importQ1(t, env)

	_, err := NewPhaseService(env.uow).EditPhaseEnd(context.Background(), app.PhaseEditRequest{
		ReleaseRef: "Q1", PhaseRef: "Party", NewEnd: date(2026, 3, 1),
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
