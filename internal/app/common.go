package app

import (
	"time"

	"github.com/alexanderramin/releaseplan/internal/domain"
)

// ImportRequest names a JSON or YAML snapshot file. RepairPhases moves
// non-contiguous phases into sequence instead of rejecting the file.
type ImportRequest struct {
	FilePath     string
	RepairPhases bool
}

type ImportResult struct {
	Release        *domain.Release
	MemberCount    int
	PTOCount       int
	HolidayCount   int
	SprintCount    int
	PhaseCount     int
	TicketCount    int
	PhasesRepaired bool
	// Replaced is set when an existing release with the same name was
	// deleted before the import.
	Replaced bool
}

// TicketImportResult counts CSV rows that created new tickets versus rows
// that updated an existing ticket with the same ID.
type TicketImportResult struct {
	Release *domain.Release
	Created int
	Updated int
}

type ReleaseSummary struct {
	Release     domain.Release
	MemberCount int
	TicketCount int
	PhaseCount  int
}

// ResolveNow returns *now when set, otherwise the current UTC time.
func ResolveNow(now *time.Time) time.Time {
	if now != nil {
		return *now
	}
	return time.Now().UTC()
}
