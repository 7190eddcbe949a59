package app

import (
	"time"

	"github.com/alexanderramin/releaseplan/internal/capacity"
	"github.com/alexanderramin/releaseplan/internal/conflict"
	"github.com/alexanderramin/releaseplan/internal/domain"
	"github.com/alexanderramin/releaseplan/internal/insight"
	"github.com/alexanderramin/releaseplan/internal/timeline"
)

// HealthRequest selects a release by ID or name.
type HealthRequest struct {
	ReleaseRef string
	Now        *time.Time
}

// HealthReport is the full evaluation of one release snapshot.
type HealthReport struct {
	Release     domain.Release
	GeneratedAt time.Time

	// Sprints are ordered by start date.
	Sprints     []capacity.CapacityResult
	Utilization float64
	Capacity    capacity.ReleaseCapacity
	Team        []capacity.TeamMemberCapacity

	Conflicts []conflict.Conflict
	Metrics   conflict.Metrics

	Timeline timeline.Status
	Velocity insight.Velocity
	Insights []insight.Insight

	// Warnings are data problems that do not stop the report, such as
	// phases that are not contiguous.
	Warnings []string
}
