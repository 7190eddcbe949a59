package conflict

import "time"

type Kind string

const (
	KindAssigneeOverlap Kind = "assignee_overlap"
	KindPTOOverlap      Kind = "pto_overlap"
	KindSpillover       Kind = "dev_window_spillover"
)

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// SeverityRank returns a sort priority (lower = more severe).
func SeverityRank(s Severity) int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityWarning:
		return 1
	default:
		return 2
	}
}

func kindRank(k Kind) int {
	switch k {
	case KindAssigneeOverlap:
		return 0
	case KindPTOOverlap:
		return 1
	default:
		return 2
	}
}

// Suggestion names a developer who could take the ticket without a clash.
type Suggestion struct {
	Developer string
	Reason    string
}

// Conflict is one detected scheduling problem.
type Conflict struct {
	ID        string
	Kind      Kind
	Severity  Severity
	TicketIDs []string
	Developer string
	Message   string

	OverlapStart time.Time
	OverlapEnd   time.Time
	// OverlapWorkingDays is the shared working days for overlaps, the PTO
	// delay risk for PTO conflicts, and the out-of-window working days for spillover.
	OverlapWorkingDays int
	PTOName            string

	// MoveTicketID is the ticket suggestions apply to.
	MoveTicketID string
	Suggestions  []Suggestion
}

// Reassignable reports whether at least one developer could absorb the moved ticket.
func (c *Conflict) Reassignable() bool {
	return len(c.Suggestions) > 0
}

// Touches reports whether the conflict implicates ticketID.
func (c *Conflict) Touches(ticketID string) bool {
	for _, id := range c.TicketIDs {
		if id == ticketID {
			return true
		}
	}
	return false
}
