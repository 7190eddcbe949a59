package capacity

import (
	"math"

	"github.com/alexanderramin/releaseplan/internal/domain"
)

// ResolveEffortDays is the single effort-resolution policy:
// EffortDays if set, else StoryPoints mapped through mapping, else the raw
// story-point number read as days. A ticket with neither resolves to 0.
func ResolveEffortDays(t *domain.Ticket, mapping domain.StoryPointMapping) float64 {
	if t.EffortDays != nil {
		return math.Max(0, *t.EffortDays)
	}
	if t.StoryPoints == nil {
		return 0
	}
	sp := *t.StoryPoints
	if mapping != nil && sp == math.Trunc(sp) {
		if days, ok := mapping[int(sp)]; ok {
			return math.Max(0, days)
		}
	}
	return math.Max(0, sp)
}

// AdjustedDuration converts a base effort into whole working days for a
// developer with the given velocity multiplier: max(1, round(base / velocity)).
func AdjustedDuration(baseEffortDays, velocity float64) int {
	if velocity <= 0 {
		velocity = 1.0
	}
	adjusted := int(math.Round(baseEffortDays / velocity))
	if adjusted < 1 {
		return 1
	}
	return adjusted
}

// AdjustedEffort resolves t's effort and adjusts it for member's velocity.
// Every per-developer calculation goes through here so rounding is identical
// across the aggregator and the fix engine. A nil member means baseline velocity.
func AdjustedEffort(t *domain.Ticket, member *domain.TeamMember, opts Options) int {
	base := ResolveEffortDays(t, opts.Mapping)
	velocity := 1.0
	if member != nil {
		velocity = member.Velocity()
	}
	adjusted := AdjustedDuration(base, velocity)
	if velocity != 1.0 {
		opts.tracer().Trace(TraceEvent{
			Name: "velocity_adjusted",
			Fields: map[string]any{
				"ticket_id":     t.ID,
				"member":        memberName(member),
				"base_days":     base,
				"velocity":      velocity,
				"adjusted_days": adjusted,
			},
		})
	}
	return adjusted
}

func memberName(m *domain.TeamMember) string {
	if m == nil {
		return ""
	}
	return m.Name
}
