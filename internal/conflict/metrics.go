package conflict

// Metrics summarizes a conflict list for dashboards and insights.
type Metrics struct {
	Total        int
	Critical     int
	Warning      int
	Info         int
	Reassignable int
	ByKind       map[Kind]int
	// AffectedTickets counts distinct tickets implicated in any conflict.
	AffectedTickets int
	// PTODelayRiskDays sums overlapping working days across PTO conflicts.
	PTODelayRiskDays int
}

// Summarize counts conflicts by severity and kind.
func Summarize(conflicts []Conflict) Metrics {
	m := Metrics{ByKind: make(map[Kind]int)}
	tickets := make(map[string]bool)
	for i := range conflicts {
		c := &conflicts[i]
		m.Total++
		m.ByKind[c.Kind]++
		switch c.Severity {
		case SeverityCritical:
			m.Critical++
		case SeverityWarning:
			m.Warning++
		default:
			m.Info++
		}
		if c.Reassignable() {
			m.Reassignable++
		}
		if c.Kind == KindPTOOverlap {
			m.PTODelayRiskDays += c.OverlapWorkingDays
		}
		for _, id := range c.TicketIDs {
			tickets[id] = true
		}
	}
	m.AffectedTickets = len(tickets)
	return m
}
