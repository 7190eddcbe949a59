package recommend

import (
	"fmt"
	"math"

	"github.com/alexanderramin/releaseplan/internal/calendar"
	"github.com/alexanderramin/releaseplan/internal/domain"
)

const (
	goodBandLow  = 70.0
	goodBandHigh = 90.0
)

type ReasonCode string

const (
	ReasonUtilizationFit ReasonCode = "utilization_fit"
	ReasonSkillMatch     ReasonCode = "skill_match"
	ReasonContinuity     ReasonCode = "continuity"
	ReasonProximity      ReasonCode = "proximity"
)

// Reason explains one factor's contribution to a placement score.
type Reason struct {
	Code        ReasonCode
	Message     string
	WeightDelta float64
}

type scoringInput struct {
	ticket    *domain.Ticket
	member    *domain.TeamMember
	phase     domain.Phase
	placement Placement
	weights   Weights
}

// scorePlacement returns a 0-100 score. Each factor yields a 0-1 fit that is
// scaled by its weight; the sum is normalized by the total weight.
func scorePlacement(in scoringInput) (float64, []Reason) {
	factors := []func(scoringInput) (float64, float64, Reason){
		scoreUtilizationFit,
		scoreSkillMatch,
		scoreContinuity,
		scoreProximity,
	}
	var sum float64
	var reasons []Reason
	for _, f := range factors {
		fit, weight, reason := f(in)
		delta := fit * weight
		sum += delta
		reason.WeightDelta = delta
		reasons = append(reasons, reason)
	}
	total := in.weights.total()
	if total <= 0 {
		return 0, reasons
	}
	return sum / total * 100, reasons
}

func scoreUtilizationFit(in scoringInput) (float64, float64, Reason) {
	after := in.placement.UtilizationAfter
	var dist float64
	switch {
	case after < goodBandLow:
		dist = goodBandLow - after
	case after > goodBandHigh:
		dist = after - goodBandHigh
	}
	fit := math.Max(0, 1-dist/goodBandLow)
	msg := fmt.Sprintf("Utilization after move %.0f%%", after)
	if dist == 0 {
		msg += " (within the 70-90% band)"
	}
	return fit, in.weights.UtilizationFit, Reason{Code: ReasonUtilizationFit, Message: msg}
}

func scoreSkillMatch(in scoringInput) (float64, float64, Reason) {
	required := in.ticket.RequiredSkills
	if len(required) == 0 {
		return 1, in.weights.SkillMatch, Reason{Code: ReasonSkillMatch, Message: "No specific skills required"}
	}
	matched := 0
	for _, s := range required {
		if in.member.HasSkill(s) {
			matched++
		}
	}
	fit := float64(matched) / float64(len(required))
	return fit, in.weights.SkillMatch, Reason{
		Code:    ReasonSkillMatch,
		Message: fmt.Sprintf("Covers %d of %d required skills", matched, len(required)),
	}
}

func scoreContinuity(in scoringInput) (float64, float64, Reason) {
	if in.ticket.AssignedTo == in.member.Name {
		return 1, in.weights.Continuity, Reason{Code: ReasonContinuity, Message: "Keeps the current assignee"}
	}
	return 0, in.weights.Continuity, Reason{Code: ReasonContinuity, Message: "Hands off to a new assignee"}
}

func scoreProximity(in scoringInput) (float64, float64, Reason) {
	shift := calendar.DaysBetween(in.ticket.StartDate, in.placement.StartDate)
	if shift < 0 {
		shift = -shift
	}
	span := in.phase.DurationDays() + 1
	fit := math.Max(0, 1-float64(shift)/float64(span))
	return fit, in.weights.Proximity, Reason{
		Code:    ReasonProximity,
		Message: fmt.Sprintf("Moves the start by %d day(s)", shift),
	}
}

func confidence(score float64) int {
	return int(math.Round(math.Max(0, math.Min(100, score))))
}
