package domain

import "time"

// StoryPointMapping converts legacy story-point estimates to effort days.
type StoryPointMapping map[int]float64

type Release struct {
	ID                string
	Name              string
	StartDate         time.Time
	TargetDate        *time.Time
	StoryPointMapping StoryPointMapping
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Snapshot is everything the engine needs to evaluate one release.
type Snapshot struct {
	Release  Release
	Team     []TeamMember
	Holidays []Holiday
	Sprints  []Sprint
	Phases   []Phase
	Tickets  []Ticket
}

// DevWindows returns the phases that allow work, in their original order.
func (s *Snapshot) DevWindows() []Phase {
	var out []Phase
	for _, p := range s.Phases {
		if p.AllowsWork {
			out = append(out, p)
		}
	}
	return out
}

// FindTicket returns the ticket with the given ID, or nil.
func (s *Snapshot) FindTicket(id string) *Ticket {
	for i := range s.Tickets {
		if s.Tickets[i].ID == id {
			return &s.Tickets[i]
		}
	}
	return nil
}
