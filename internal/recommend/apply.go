package recommend

import (
	"time"

	"github.com/alexanderramin/releaseplan/internal/domain"
)

// ApplyFix returns a copy of ticket with the fix applied. It reports false
// for variants that do not move the ticket.
func ApplyFix(ticket domain.Ticket, fix Fix, now time.Time) (domain.Ticket, bool) {
	out := ticket.Clone()
	switch f := fix.(type) {
	case Reassign:
		out.Reassign(f.Developer, now)
		out.Reschedule(f.StartDate, f.EndDate, now)
	case Reschedule:
		out.Reschedule(f.StartDate, f.EndDate, now)
	default:
		return ticket, false
	}
	return out, true
}
