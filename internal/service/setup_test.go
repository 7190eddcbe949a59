package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/releaseplan/internal/app"
	"github.com/alexanderramin/releaseplan/internal/db"
	"github.com/alexanderramin/releaseplan/internal/importer"
	"github.com/alexanderramin/releaseplan/internal/repository"
	"github.com/alexanderramin/releaseplan/internal/testutil"
	"github.com/stretchr/testify/require"
)

func ptrStr(s string) *string     { return &s }
func ptrFloat(f float64) *float64 { return &f }

func date(y int, m time.Month, d int) time.Time { return testutil.Date(y, m, d) }

type testEnv struct {
	database *sql.DB
	store    *repository.SQLiteSnapshotStore
	uow      db.UnitOfWork
	observer *recordingObserver
}

func setupEnv(t *testing.T) testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	return testEnv{
		database: database,
		store:    repository.NewSQLiteSnapshotStore(database),
		uow:      testutil.NewTestUoW(database),
		observer: &recordingObserver{},
	}
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}

// q1Schema is a three-phase release in February 2026 with one assignee
// overlap (B-1/B-2, Sarah Chen) and one dev-window spillover (C-1).
func q1Schema() *importer.ImportSchema {
	return &importer.ImportSchema{
		Release: importer.ReleaseImport{
			Name:       "Q1",
			StartDate:  "2026-02-02",
			TargetDate: ptrStr("2026-03-13"),
		},
		Team: []importer.MemberImport{
			{Name: "Sarah Chen"},
			{Name: "Dev Patel"},
			{Name: "Quinn", Role: "QA", PTO: []importer.PTOImport{{StartDate: "2026-02-23", EndDate: "2026-02-24"}}},
		},
		Sprints: []importer.SprintImport{
			{Name: "Sprint 2", StartDate: "2026-02-16", EndDate: "2026-02-27"},
			{Name: "Sprint 1", StartDate: "2026-02-02", EndDate: "2026-02-13"},
		},
		Phases: []importer.PhaseImport{
			{Name: "Development", Type: "DevWindow", StartDate: "2026-02-02", EndDate: "2026-02-20"},
			{Name: "QA", Type: "Testing", StartDate: "2026-02-21", EndDate: "2026-03-06"},
			{Name: "Launch", Type: "Launch", StartDate: "2026-03-07", EndDate: "2026-03-13"},
		},
		Tickets: []importer.TicketImport{
			{ID: "B-1", Title: "Payments API", StartDate: "2026-02-10", EndDate: "2026-02-14", AssignedTo: "Sarah Chen", EffortDays: ptrFloat(3)},
			{ID: "B-2", Title: "Refund flow", StartDate: "2026-02-12", EndDate: "2026-02-17", AssignedTo: "Sarah Chen", EffortDays: ptrFloat(2)},
			{ID: "C-1", Title: "Reporting", StartDate: "2026-02-18", EndDate: "2026-02-24", AssignedTo: "Dev Patel", EffortDays: ptrFloat(2)},
		},
	}
}

func writeImportJSON(t *testing.T, schema *importer.ImportSchema) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "release.json")
	data, err := json.MarshalIndent(schema, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

// importQ1 loads q1Schema into env and returns the release.
func importQ1(t *testing.T, env testEnv) *app.ImportResult {
	t.Helper()
	res, err := NewImportService(env.uow).ImportSnapshot(context.Background(), app.ImportRequest{
		FilePath: writeImportJSON(t, q1Schema()),
	})
	require.NoError(t, err)
	return res
}
