package insight

import (
	"time"

	"github.com/alexanderramin/releaseplan/internal/calendar"
	"github.com/alexanderramin/releaseplan/internal/capacity"
	"github.com/alexanderramin/releaseplan/internal/domain"
	"gonum.org/v1/gonum/stat"
)

// Velocity summarizes completed effort per finished sprint.
type Velocity struct {
	Mean    float64
	StdDev  float64
	Sprints int
}

// TeamVelocity returns the mean completed effort-days across sprints that
// ended before now. A completed ticket counts toward the sprint containing
// its end date. Without finished sprints it is zero.
func TeamVelocity(sprints []domain.Sprint, tickets []domain.Ticket, mapping domain.StoryPointMapping, now time.Time) float64 {
	return TeamVelocityStats(sprints, tickets, mapping, now).Mean
}

// TeamVelocityStats is TeamVelocity with the spread between sprints.
func TeamVelocityStats(sprints []domain.Sprint, tickets []domain.Ticket, mapping domain.StoryPointMapping, now time.Time) Velocity {
	today := calendar.Day(now)
	var per []float64
	for _, s := range sprints {
		if !calendar.Day(s.EndDate).Before(today) {
			continue
		}
		var done float64
		for i := range tickets {
			t := &tickets[i]
			if t.Status != domain.TicketCompleted {
				continue
			}
			if calendar.Contains(s.StartDate, s.EndDate, t.EndDate, t.EndDate) {
				done += capacity.ResolveEffortDays(t, mapping)
			}
		}
		per = append(per, done)
	}
	if len(per) == 0 {
		return Velocity{}
	}
	v := Velocity{Sprints: len(per)}
	if len(per) == 1 {
		v.Mean = per[0]
		return v
	}
	v.Mean, v.StdDev = stat.MeanStdDev(per, nil)
	return v
}
