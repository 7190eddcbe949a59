// Package insight turns capacity, conflict and timeline metrics into a short
// prioritized list of recommendations.
package insight

import (
	"sort"
	"time"

	"github.com/alexanderramin/releaseplan/internal/calendar"
	"github.com/alexanderramin/releaseplan/internal/conflict"
	"github.com/alexanderramin/releaseplan/internal/domain"
	"github.com/alexanderramin/releaseplan/internal/timeline"
)

// MaxInsights is the hard cap on returned insights.
const MaxInsights = 3

type Insight struct {
	Rule     string
	Priority int
	Title    string
	Message  string
	Action   string
}

// Input is everything the decision table looks at.
type Input struct {
	Release   domain.Release
	Tickets   []domain.Ticket
	Sprints   []domain.Sprint
	Members   []domain.TeamMember
	Conflicts []conflict.Conflict
	Metrics   conflict.Metrics
	Timeline  timeline.Status

	// Utilization is overall sprint capacity utilization in percent.
	Utilization float64
	// TeamVelocity is mean completed effort-days per finished sprint.
	TeamVelocity float64
	Now          time.Time

	// Limit caps the result; zero or anything above MaxInsights means MaxInsights.
	Limit int
}

func (in Input) limit() int {
	if in.Limit <= 0 || in.Limit > MaxInsights {
		return MaxInsights
	}
	return in.Limit
}

// GenerateInsights evaluates every rule and returns the matching insights
// ordered by priority, ties kept in rule declaration order.
func GenerateInsights(in Input) []Insight {
	f := deriveFacts(in)
	var out []Insight
	for _, r := range rules {
		if !r.when(in, f) {
			continue
		}
		ins := r.render(in, f)
		ins.Rule = r.id
		ins.Priority = r.priority
		out = append(out, ins)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	if n := in.limit(); len(out) > n {
		out = out[:n]
	}
	return out
}

// facts are values several rules share.
type facts struct {
	developers  []domain.TeamMember
	juniors     int
	unscheduled int
	daysToStart int
}

func deriveFacts(in Input) facts {
	var f facts
	for _, m := range in.Members {
		if m.Role != domain.RoleDeveloper {
			continue
		}
		f.developers = append(f.developers, m)
		if m.Velocity() < 1 {
			f.juniors++
		}
	}
	for i := range in.Tickets {
		t := &in.Tickets[i]
		if !t.IsAssigned() && t.IsActive() {
			f.unscheduled++
		}
	}
	f.daysToStart = calendar.DaysBetween(in.Now, in.Release.StartDate)
	return f
}
