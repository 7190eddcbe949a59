package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// csvColumns maps accepted header spellings to TicketImport fields.
var csvColumns = map[string]string{
	"id":              "id",
	"key":             "id",
	"title":           "title",
	"summary":         "title",
	"start_date":      "start_date",
	"start":           "start_date",
	"end_date":        "end_date",
	"end":             "end_date",
	"due":             "end_date",
	"assigned_to":     "assigned_to",
	"assignee":        "assigned_to",
	"status":          "status",
	"effort_days":     "effort_days",
	"effort":          "effort_days",
	"story_points":    "story_points",
	"points":          "story_points",
	"required_skills": "required_skills",
	"skills":          "required_skills",
}

var requiredCSVColumns = []string{"title", "start_date", "end_date"}

// LoadTicketsCSV reads a ticket CSV file.
func LoadTicketsCSV(path string) ([]TicketImport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseTicketsCSV(f)
}

// ParseTicketsCSV reads tickets from CSV with a header row. Headers are
// matched case-insensitively; skills are separated by ';'. Blank numeric
// cells leave the field unset.
func ParseTicketsCSV(r io.Reader) ([]TicketImport, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("csv: missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("csv: reading header: %w", err)
	}

	index := make(map[string]int)
	for i, h := range header {
		key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(h)), " ", "_")
		if field, ok := csvColumns[key]; ok {
			if _, seen := index[field]; !seen {
				index[field] = i
			}
		}
	}
	var missing []string
	for _, col := range requiredCSVColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("csv: missing required columns: %s", strings.Join(missing, ", "))
	}

	var tickets []TicketImport
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("csv: line %d: %w", line, err)
		}
		if blankRecord(record) {
			continue
		}

		cell := func(field string) string {
			i, ok := index[field]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		t := TicketImport{
			ID:         cell("id"),
			Title:      cell("title"),
			StartDate:  cell("start_date"),
			EndDate:    cell("end_date"),
			AssignedTo: cell("assigned_to"),
			Status:     strings.ToLower(cell("status")),
		}
		if t.EffortDays, err = parseOptionalFloat(cell("effort_days")); err != nil {
			return nil, fmt.Errorf("csv: line %d: effort_days: %w", line, err)
		}
		if t.StoryPoints, err = parseOptionalFloat(cell("story_points")); err != nil {
			return nil, fmt.Errorf("csv: line %d: story_points: %w", line, err)
		}
		t.RequiredSkills = splitSkills(cell("required_skills"))
		tickets = append(tickets, t)
	}
	return tickets, nil
}

func parseOptionalFloat(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q", s)
	}
	return &v, nil
}

func splitSkills(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ";") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func blankRecord(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
