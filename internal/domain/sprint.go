package domain

import "time"

// Sprint is a fixed-length time-box. Dates are inclusive.
type Sprint struct {
	ID        string
	ReleaseID string
	Name      string
	StartDate time.Time
	EndDate   time.Time
}
