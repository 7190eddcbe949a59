package domain

import (
	"strings"
	"time"
)

// PTOEntry is a block of paid time off for one team member. Dates are inclusive.
type PTOEntry struct {
	ID        string
	MemberID  string
	Name      string
	StartDate time.Time
	EndDate   time.Time
}

// Holiday is a release-wide non-working period. Dates are inclusive.
type Holiday struct {
	ID        string
	ReleaseID string
	Name      string
	StartDate time.Time
	EndDate   time.Time
}

type TeamMember struct {
	ID        string
	ReleaseID string
	// Name joins against Ticket.AssignedTo and must be unique within a release.
	Name string
	Role Role
	PTO  []PTOEntry

	// VelocityMultiplier > 1 is faster than baseline, < 1 slower. Nil means 1.0.
	VelocityMultiplier *float64
	Skills             []string
}

// Velocity returns the effective velocity multiplier, defaulting to 1.0.
// Non-positive values are treated as unset.
func (m *TeamMember) Velocity() float64 {
	if m.VelocityMultiplier == nil || *m.VelocityMultiplier <= 0 {
		return 1.0
	}
	return *m.VelocityMultiplier
}

// HasSkill reports whether the member lists the given skill (case-insensitive).
func (m *TeamMember) HasSkill(skill string) bool {
	for _, s := range m.Skills {
		if strings.EqualFold(strings.TrimSpace(s), strings.TrimSpace(skill)) {
			return true
		}
	}
	return false
}

// FindMember returns the member whose name matches, or nil.
func FindMember(members []TeamMember, name string) *TeamMember {
	for i := range members {
		if members[i].Name == name {
			return &members[i]
		}
	}
	return nil
}
