package domain

import (
	"strings"
	"time"

	"github.com/alexanderramin/releaseplan/internal/calendar"
)

type Ticket struct {
	ID         string
	ReleaseID  string
	Title      string
	StartDate  time.Time
	EndDate    time.Time
	AssignedTo string
	Status     TicketStatus

	// Effort. EffortDays wins; StoryPoints is the legacy fallback.
	EffortDays  *float64
	StoryPoints *float64

	RequiredSkills []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAssigned reports whether the ticket names a real owner.
func (t *Ticket) IsAssigned() bool {
	name := strings.TrimSpace(t.AssignedTo)
	return name != "" && !strings.EqualFold(name, UnassignedName)
}

// IsActive reports whether the ticket still occupies its assignee's calendar.
func (t *Ticket) IsActive() bool {
	return t.Status != TicketCompleted
}

// Overlaps reports whether the inclusive day range of t shares a day with [start, end].
func (t *Ticket) Overlaps(start, end time.Time) bool {
	return calendar.RangesOverlap(t.StartDate, t.EndDate, start, end)
}

// Reschedule moves the ticket to a new inclusive date range.
func (t *Ticket) Reschedule(start, end time.Time, now time.Time) {
	t.StartDate = start
	t.EndDate = end
	t.UpdatedAt = now
}

// Reassign hands the ticket to a different owner.
func (t *Ticket) Reassign(name string, now time.Time) {
	t.AssignedTo = name
	t.UpdatedAt = now
}

// Clone returns a deep copy so callers can modify it without touching snapshots.
func (t Ticket) Clone() Ticket {
	c := t
	if t.EffortDays != nil {
		v := *t.EffortDays
		c.EffortDays = &v
	}
	if t.StoryPoints != nil {
		v := *t.StoryPoints
		c.StoryPoints = &v
	}
	if t.RequiredSkills != nil {
		c.RequiredSkills = append([]string(nil), t.RequiredSkills...)
	}
	return c
}
