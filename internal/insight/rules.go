package insight

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/releaseplan/internal/conflict"
	"github.com/alexanderramin/releaseplan/internal/timeline"
)

type rule struct {
	id       string
	priority int
	when     func(Input, facts) bool
	render   func(Input, facts) Insight
}

// rules is the decision table. Declaration order breaks priority ties.
var rules = []rule{
	{
		id: "no_sprints", priority: 1,
		when: func(in Input, _ facts) bool { return len(in.Sprints) == 0 && len(in.Tickets) > 0 },
		render: func(in Input, _ facts) Insight {
			return Insight{
				Title:   "No sprints defined",
				Message: fmt.Sprintf("%d ticket(s) exist but there are no sprints to measure capacity against.", len(in.Tickets)),
				Action:  "Create sprints covering the release dev windows.",
			}
		},
	},
	{
		id: "no_developers", priority: 1,
		when: func(_ Input, f facts) bool { return len(f.developers) == 0 },
		render: func(Input, facts) Insight {
			return Insight{
				Title:   "No developers on the team",
				Message: "Capacity is zero because the team has no developers.",
				Action:  "Add team members with the Developer role.",
			}
		},
	},
	{
		id: "severely_over_capacity", priority: 1,
		when: func(in Input, _ facts) bool { return in.Utilization > 150 },
		render: func(in Input, _ facts) Insight {
			return Insight{
				Title:   "Severely over capacity",
				Message: fmt.Sprintf("Sprints are at %.0f%% utilization; the plan cannot be delivered as scheduled.", in.Utilization),
				Action:  "Cut scope or add capacity before the next sprint starts.",
			}
		},
	},
	{
		id: "many_critical_conflicts", priority: 1,
		when: func(in Input, _ facts) bool { return in.Metrics.Critical > 3 },
		render: func(in Input, _ facts) Insight {
			msg := fmt.Sprintf("%d critical conflicts need attention.", in.Metrics.Critical)
			if devs := criticalDevelopers(in.Conflicts); len(devs) > 0 {
				msg += " Most affected: " + strings.Join(devs, ", ") + "."
			}
			return Insight{
				Title:   "Critical scheduling conflicts",
				Message: msg,
				Action:  "Resolve critical conflicts first; run `releaseplan fix` on each ticket.",
			}
		},
	},
	{
		id: "unscheduled_with_capacity", priority: 2,
		when: func(in Input, f facts) bool { return f.unscheduled > 5 && in.Utilization < 100 },
		render: func(in Input, f facts) Insight {
			return Insight{
				Title:   "Unassigned work with spare capacity",
				Message: fmt.Sprintf("%d ticket(s) are unassigned while the team is at %.0f%% utilization.", f.unscheduled, in.Utilization),
				Action:  "Assign the unscheduled tickets to developers with room.",
			}
		},
	},
	{
		id: "low_utilization", priority: 2,
		when: func(in Input, _ facts) bool {
			return in.Utilization < 50 && len(in.Sprints) > 0 && len(in.Tickets) > 0
		},
		render: func(in Input, _ facts) Insight {
			return Insight{
				Title:   "Team is under-utilized",
				Message: fmt.Sprintf("Sprints are only %.0f%% utilized.", in.Utilization),
				Action:  "Pull work forward from the backlog or shorten the release.",
			}
		},
	},
	{
		id: "timeline_behind", priority: 2,
		when: func(in Input, _ facts) bool { return in.Timeline.State == timeline.StateBehind },
		render: func(in Input, _ facts) Insight {
			msg := fmt.Sprintf("Progress is %.0f%% with %.0f%% of the timeline elapsed.",
				in.Timeline.ProgressPct, in.Timeline.ElapsedPct)
			if in.TeamVelocity > 0 {
				msg += fmt.Sprintf(" Recent velocity is %.1f effort-days per sprint.", in.TeamVelocity)
			}
			return Insight{
				Title:   "Release is behind schedule",
				Message: msg,
				Action:  "Re-plan remaining scope or move the target date.",
			}
		},
	},
	{
		id: "reassignable_conflicts", priority: 3,
		when: func(in Input, _ facts) bool { return in.Metrics.Reassignable > 2 },
		render: func(in Input, _ facts) Insight {
			return Insight{
				Title:   "Conflicts can be reassigned",
				Message: fmt.Sprintf("%d conflict(s) have a free developer who could take the work.", in.Metrics.Reassignable),
				Action:  "Review the suggested reassignments in `releaseplan conflicts`.",
			}
		},
	},
	{
		id: "healthy", priority: 3,
		when: func(in Input, _ facts) bool {
			return in.Metrics.Total == 0 && len(in.Tickets) > 0 && in.Utilization >= 50 && in.Utilization <= 100
		},
		render: func(in Input, _ facts) Insight {
			return Insight{
				Title:   "Release looks healthy",
				Message: fmt.Sprintf("No conflicts and %.0f%% utilization.", in.Utilization),
				Action:  "Keep the plan; re-check after the next import.",
			}
		},
	},
	{
		id: "junior_heavy", priority: 3,
		when: func(in Input, f facts) bool {
			return len(f.developers) > 0 && f.juniors*2 > len(f.developers) && len(in.Tickets) > 20
		},
		render: func(in Input, f facts) Insight {
			return Insight{
				Title:   "Junior-heavy team",
				Message: fmt.Sprintf("%d of %d developers work below baseline velocity across %d tickets.", f.juniors, len(f.developers), len(in.Tickets)),
				Action:  "Pair juniors with seniors on complex tickets and pad estimates.",
			}
		},
	},
	{
		id: "empty_backlog", priority: 4,
		when: func(in Input, _ facts) bool { return len(in.Tickets) == 0 },
		render: func(Input, facts) Insight {
			return Insight{
				Title:   "No tickets yet",
				Message: "The release has no tickets.",
				Action:  "Import tickets with `releaseplan import-csv`.",
			}
		},
	},
	{
		id: "minor_conflicts_only", priority: 4,
		when: func(in Input, _ facts) bool { return in.Metrics.Total > 0 && in.Metrics.Critical == 0 },
		render: func(in Input, _ facts) Insight {
			return Insight{
				Title:   "Only minor conflicts",
				Message: fmt.Sprintf("%d non-critical conflict(s) remain.", in.Metrics.Total),
				Action:  "Tidy these up when convenient.",
			}
		},
	},
	{
		id: "release_starting_soon", priority: 4,
		when: func(_ Input, f facts) bool { return f.daysToStart >= 0 && f.daysToStart <= 7 },
		render: func(in Input, f facts) Insight {
			return Insight{
				Title:   "Release starts soon",
				Message: fmt.Sprintf("%s starts in %d day(s) on %s.", in.Release.Name, f.daysToStart, in.Release.StartDate.Format("Jan 2")),
				Action:  "Confirm assignments and PTO before kickoff.",
			}
		},
	},
}

// criticalDevelopers returns up to three developers with the most critical
// conflicts, most affected first.
func criticalDevelopers(conflicts []conflict.Conflict) []string {
	counts := make(map[string]int)
	for _, c := range conflicts {
		if c.Severity == conflict.SeverityCritical && c.Developer != "" {
			counts[c.Developer]++
		}
	}
	names := make([]string, 0, len(counts))
	for n := range counts {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	if len(names) > 3 {
		names = names[:3]
	}
	return names
}
