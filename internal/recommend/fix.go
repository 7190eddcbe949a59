// Package recommend ranks remediations for a ticket that does not fit inside
// a dev window. Every result is one variant of Fix.
package recommend

import "time"

type Kind string

const (
	KindReassign          Kind = "reassign"
	KindReschedule        Kind = "reschedule"
	KindCapacityExhausted Kind = "capacity-exhausted"
	KindNoDevWindow       Kind = "no-dev-window"
)

// Fix is the sum type returned by BestDevWindowFix. Each variant carries
// only the fields that make sense for it.
type Fix interface {
	Kind() Kind
	// Confidence is 0-100. Only placements score above zero.
	Confidence() int
	Description() string
	isFix()
}

// Placement is a concrete slot for the ticket inside one dev window.
type Placement struct {
	Developer    string
	StartDate    time.Time
	EndDate      time.Time
	PhaseID      string
	PhaseName    string
	DurationDays int

	// Utilization of the developer inside the phase, without and with the ticket.
	UtilizationBefore float64
	UtilizationAfter  float64

	Score   float64
	Reasons []Reason
}

type Reassign struct {
	Placement
	TicketID string
	From     string
	Summary  string
}

func (r Reassign) Kind() Kind          { return KindReassign }
func (r Reassign) Confidence() int     { return confidence(r.Score) }
func (r Reassign) Description() string { return r.Summary }
func (Reassign) isFix()                {}

type Reschedule struct {
	Placement
	TicketID string
	Summary  string
}

func (r Reschedule) Kind() Kind          { return KindReschedule }
func (r Reschedule) Confidence() int     { return confidence(r.Score) }
func (r Reschedule) Description() string { return r.Summary }
func (Reschedule) isFix()                {}

// DeveloperCapacity is one eligible developer's standing across all dev windows.
type DeveloperCapacity struct {
	Developer     string
	AvailableDays int
	AssignedDays  int
	Utilization   float64
}

// SpareDays is available minus assigned, floored at zero.
func (d DeveloperCapacity) SpareDays() int {
	return max(0, d.AvailableDays-d.AssignedDays)
}

type AlternativeKind string

const (
	AltExtendWindow AlternativeKind = "extend-window"
	AltMoveBacklog  AlternativeKind = "move-to-backlog"
	AltReduceScope  AlternativeKind = "reduce-scope"
)

// Alternative is a remediation that changes the plan rather than the ticket placement.
type Alternative struct {
	Kind        AlternativeKind
	Description string
	Impact      string
	Days        int
	// PhaseID and NewEndDate are set for AltExtendWindow.
	PhaseID    string
	NewEndDate *time.Time
}

type CapacityExhausted struct {
	TicketID      string
	NeededDays    int
	ShortfallDays int
	Breakdown     []DeveloperCapacity
	Alternatives  []Alternative
	Summary       string
}

func (c CapacityExhausted) Kind() Kind          { return KindCapacityExhausted }
func (c CapacityExhausted) Confidence() int     { return 0 }
func (c CapacityExhausted) Description() string { return c.Summary }
func (CapacityExhausted) isFix()                {}

// NoDevWindow means the release has no work-allowing phase at all. It is a
// configuration problem, not a capacity one.
type NoDevWindow struct {
	TicketID string
}

func (NoDevWindow) Kind() Kind      { return KindNoDevWindow }
func (NoDevWindow) Confidence() int { return 0 }
func (NoDevWindow) Description() string {
	return "No dev window configured: add a phase that allows work before scheduling tickets"
}
func (NoDevWindow) isFix() {}
