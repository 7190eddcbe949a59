package app

import (
	"time"

	"github.com/alexanderramin/releaseplan/internal/conflict"
	"github.com/alexanderramin/releaseplan/internal/domain"
	"github.com/alexanderramin/releaseplan/internal/recommend"
)

// FixRequest asks for the best dev-window fix for one ticket. With Apply
// set, a reassign or reschedule is persisted.
type FixRequest struct {
	ReleaseRef string
	TicketID   string
	Apply      bool
	Now        *time.Time
}

type FixResponse struct {
	Release domain.Release
	Ticket  domain.Ticket
	Fix     recommend.Fix
	// Ranked lists every feasible placement, best first.
	Ranked []recommend.Placement
	// Conflicts are the ticket's conflicts before any change.
	Conflicts []conflict.Conflict

	Applied bool
	Updated *domain.Ticket
	// Remaining are the ticket's conflicts after the fix was applied.
	Remaining []conflict.Conflict
}

// PhaseEditRequest changes one phase's end date and cascades the shift to
// every later phase. PhaseRef is a phase ID or name.
type PhaseEditRequest struct {
	ReleaseRef string
	PhaseRef   string
	NewEnd     time.Time
	// Repair makes stored phases contiguous before the edit is applied.
	Repair bool
	DryRun bool
}

type PhaseEditResponse struct {
	Release  domain.Release
	Before   []domain.Phase
	After    []domain.Phase
	Changed  []string
	Repaired bool
	Saved    bool
}
