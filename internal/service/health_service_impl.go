package service

import (
	"context"
	"sort"
	"time"

	"github.com/alexanderramin/releaseplan/internal/app"
	"github.com/alexanderramin/releaseplan/internal/capacity"
	"github.com/alexanderramin/releaseplan/internal/conflict"
	"github.com/alexanderramin/releaseplan/internal/domain"
	"github.com/alexanderramin/releaseplan/internal/insight"
	"github.com/alexanderramin/releaseplan/internal/repository"
	"github.com/alexanderramin/releaseplan/internal/timeline"
)

type healthService struct {
	store    *repository.SQLiteSnapshotStore
	settings EngineSettings
	observer UseCaseObserver
}

func NewHealthService(store *repository.SQLiteSnapshotStore, settings EngineSettings, observers ...UseCaseObserver) HealthService {
	return &healthService{store: store, settings: settings, observer: useCaseObserverOrNoop(observers)}
}

func (s *healthService) HealthReport(ctx context.Context, req app.HealthRequest) (report *app.HealthReport, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"release": req.ReleaseRef}
	defer func() { observe(ctx, s.observer, "health-report", startedAt, fields, err) }()

	snap, err := loadSnapshot(ctx, s.store, req.ReleaseRef)
	if err != nil {
		return nil, err
	}
	report = BuildHealthReport(snap, s.settings, app.ResolveNow(req.Now))

	fields["conflicts"] = report.Metrics.Total
	fields["critical"] = report.Metrics.Critical
	fields["insights"] = len(report.Insights)
	return report, nil
}

// BuildHealthReport runs every engine calculation over one snapshot.
func BuildHealthReport(snap *domain.Snapshot, settings EngineSettings, now time.Time) *app.HealthReport {
	rel := snap.Release
	opts := settings.capacityOptions(rel)

	sprints := make([]domain.Sprint, len(snap.Sprints))
	copy(sprints, snap.Sprints)
	sort.SliceStable(sprints, func(i, j int) bool { return sprints[i].StartDate.Before(sprints[j].StartDate) })

	bySprint := capacity.CalculateAllSprintCapacities(sprints, snap.Tickets, snap.Team, snap.Holidays, opts)
	report := &app.HealthReport{
		Release:     rel,
		GeneratedAt: now,
		Capacity:    capacity.CalculateReleaseCapacity(snap.Phases, snap.Tickets, snap.Team, snap.Holidays, opts),
		Team:        capacity.CalculateAllTeamMemberCapacities(snap.Team, sprints, snap.Tickets, snap.Holidays, opts),
	}
	for _, sp := range sprints {
		report.Sprints = append(report.Sprints, bySprint[sp.ID])
	}
	if len(sprints) > 0 {
		_, _, report.Utilization = capacity.OverallUtilization(bySprint)
	} else {
		report.Utilization = report.Capacity.Utilization
	}

	report.Conflicts = conflict.DetectConflicts(snap.Tickets, snap.Team, snap.Phases)
	report.Metrics = conflict.Summarize(report.Conflicts)
	report.Timeline = timeline.EvaluateTimeline(rel, snap.Tickets, rel.StoryPointMapping, now)
	report.Velocity = insight.TeamVelocityStats(sprints, snap.Tickets, rel.StoryPointMapping, now)

	report.Insights = insight.GenerateInsights(insight.Input{
		Release:      rel,
		Tickets:      snap.Tickets,
		Sprints:      sprints,
		Members:      snap.Team,
		Conflicts:    report.Conflicts,
		Metrics:      report.Metrics,
		Timeline:     report.Timeline,
		Utilization:  report.Utilization,
		TeamVelocity: report.Velocity.Mean,
		Now:          now,
		Limit:        settings.InsightLimit,
	})

	report.Warnings = contiguityWarnings(domain.CheckPhaseContiguity(snap.Phases))
	return report
}
