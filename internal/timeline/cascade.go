// Package timeline keeps release phases contiguous after edits and judges
// whether delivery is keeping pace with the calendar.
package timeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/releaseplan/internal/calendar"
	"github.com/alexanderramin/releaseplan/internal/domain"
)

var ErrPhaseIndexOutOfRange = errors.New("phase index out of range")

// RecalculateCascadingDates sets the end of the phase at editedIndex (in
// Order sequence) to newEnd and shifts every later phase so each starts the
// day after its predecessor ends, keeping its original duration. Phases
// before editedIndex and the edited phase's start never move. An end before
// the phase start is clamped to the start. The input is not modified.
func RecalculateCascadingDates(phases []domain.Phase, editedIndex int, newEnd time.Time) ([]domain.Phase, error) {
	out := domain.SortPhases(phases)
	if editedIndex < 0 || editedIndex >= len(out) {
		return nil, fmt.Errorf("cascade from index %d of %d phases: %w", editedIndex, len(out), ErrPhaseIndexOutOfRange)
	}

	edited := &out[editedIndex]
	edited.StartDate = calendar.Day(edited.StartDate)
	end := calendar.Day(newEnd)
	if end.Before(edited.StartDate) {
		end = edited.StartDate
	}
	edited.EndDate = end

	for i := editedIndex + 1; i < len(out); i++ {
		duration := out[i].DurationDays()
		out[i].StartDate = calendar.AddDays(out[i-1].EndDate, 1)
		out[i].EndDate = calendar.AddDays(out[i].StartDate, duration)
	}
	return out, nil
}

// IndexOfPhase returns the position of phaseID in Order sequence, or -1.
func IndexOfPhase(phases []domain.Phase, phaseID string) int {
	for i, p := range domain.SortPhases(phases) {
		if p.ID == phaseID {
			return i
		}
	}
	return -1
}
