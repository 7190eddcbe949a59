package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

// ImportSchema is the top-level structure of a release snapshot file.
// The same tags serve JSON and YAML.
type ImportSchema struct {
	Release  ReleaseImport   `json:"release" yaml:"release"`
	Team     []MemberImport  `json:"team" yaml:"team"`
	Holidays []HolidayImport `json:"holidays,omitempty" yaml:"holidays,omitempty"`
	Sprints  []SprintImport  `json:"sprints,omitempty" yaml:"sprints,omitempty"`
	Phases   []PhaseImport   `json:"phases" yaml:"phases"`
	Tickets  []TicketImport  `json:"tickets" yaml:"tickets"`
}

type ReleaseImport struct {
	Name              string          `json:"name" yaml:"name"`
	StartDate         string          `json:"start_date" yaml:"start_date"`
	TargetDate        *string         `json:"target_date,omitempty" yaml:"target_date,omitempty"`
	StoryPointMapping map[int]float64 `json:"story_point_mapping,omitempty" yaml:"story_point_mapping,omitempty"`
}

type MemberImport struct {
	Name               string      `json:"name" yaml:"name"`
	Role               string      `json:"role,omitempty" yaml:"role,omitempty"`
	VelocityMultiplier *float64    `json:"velocity_multiplier,omitempty" yaml:"velocity_multiplier,omitempty"`
	Skills             []string    `json:"skills,omitempty" yaml:"skills,omitempty"`
	PTO                []PTOImport `json:"pto,omitempty" yaml:"pto,omitempty"`
}

type PTOImport struct {
	Name      string `json:"name,omitempty" yaml:"name,omitempty"`
	StartDate string `json:"start_date" yaml:"start_date"`
	EndDate   string `json:"end_date" yaml:"end_date"`
}

type HolidayImport struct {
	Name      string `json:"name" yaml:"name"`
	StartDate string `json:"start_date" yaml:"start_date"`
	EndDate   string `json:"end_date,omitempty" yaml:"end_date,omitempty"`
}

type SprintImport struct {
	Name      string `json:"name" yaml:"name"`
	StartDate string `json:"start_date" yaml:"start_date"`
	EndDate   string `json:"end_date" yaml:"end_date"`
}

// PhaseImport defines a release phase. AllowsWork defaults to true for
// DevWindow phases and false otherwise; Order defaults to list position.
type PhaseImport struct {
	Name       string `json:"name" yaml:"name"`
	Type       string `json:"type" yaml:"type"`
	StartDate  string `json:"start_date" yaml:"start_date"`
	EndDate    string `json:"end_date" yaml:"end_date"`
	AllowsWork *bool  `json:"allows_work,omitempty" yaml:"allows_work,omitempty"`
	Order      int    `json:"order,omitempty" yaml:"order,omitempty"`
}

// TicketImport defines one ticket. ID is the tracker key (e.g. "PAY-101");
// a fresh UUID is used when it is empty.
type TicketImport struct {
	ID             string   `json:"id,omitempty" yaml:"id,omitempty"`
	Title          string   `json:"title" yaml:"title"`
	StartDate      string   `json:"start_date" yaml:"start_date"`
	EndDate        string   `json:"end_date" yaml:"end_date"`
	AssignedTo     string   `json:"assigned_to,omitempty" yaml:"assigned_to,omitempty"`
	Status         string   `json:"status,omitempty" yaml:"status,omitempty"`
	EffortDays     *float64 `json:"effort_days,omitempty" yaml:"effort_days,omitempty"`
	StoryPoints    *float64 `json:"story_points,omitempty" yaml:"story_points,omitempty"`
	RequiredSkills []string `json:"required_skills,omitempty" yaml:"required_skills,omitempty"`
}

// Format names the encoding of a snapshot file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the format from the file extension; anything that is
// not .yaml or .yml is read as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// LoadImportSchema reads and parses a release snapshot file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseImportSchema(data, FormatForPath(path))
}

// ParseImportSchema decodes a snapshot document in the given format.
func ParseImportSchema(data []byte, format Format) (*ImportSchema, error) {
	var schema ImportSchema
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &schema); err != nil {
			return nil, fmt.Errorf("parsing import file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &schema); err != nil {
			return nil, fmt.Errorf("parsing import file: %w", err)
		}
	}
	return &schema, nil
}
