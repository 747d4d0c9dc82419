package model

import "strings"

// Record is one row of the merit dataset: the admission merit range for a
// (university, campus, department, program, year) combination. Records are
// immutable once loaded; the catalog treats the full sequence as read-only
// for the lifetime of the process.
type Record struct {
	University string  `json:"university"`
	Campus     string  `json:"campus"`
	Department string  `json:"department"`
	Program    string  `json:"program"`
	Year       int     `json:"year"`
	MinMerit   float64 `json:"min_merit"`
	MaxMerit   float64 `json:"max_merit"`
}

// Valid reports whether the record satisfies the dataset invariants:
// non-empty trimmed text fields and a 4-digit-range year. Malformed source
// rows are skipped at ingestion rather than rejected with an error.
func (r Record) Valid() bool {
	if strings.TrimSpace(r.University) == "" ||
		strings.TrimSpace(r.Department) == "" ||
		strings.TrimSpace(r.Program) == "" ||
		strings.TrimSpace(r.Campus) == "" {
		return false
	}
	return r.Year >= 1000 && r.Year <= 9999
}

// Trimmed returns a copy with all text fields whitespace-trimmed.
func (r Record) Trimmed() Record {
	r.University = strings.TrimSpace(r.University)
	r.Campus = strings.TrimSpace(r.Campus)
	r.Department = strings.TrimSpace(r.Department)
	r.Program = strings.TrimSpace(r.Program)
	return r
}

// Slot identifies one of the five query dimensions.
type Slot string

const (
	SlotUniversity Slot = "university"
	SlotCampus     Slot = "campus"
	SlotDepartment Slot = "department"
	SlotProgram    Slot = "program"
	SlotYear       Slot = "year"
)

// RequiredSlots lists the slots that block a lookup, in the fixed priority
// order the dialogue asks for them. Campus is optional and year always has
// a default, so neither appears here.
var RequiredSlots = []Slot{SlotUniversity, SlotDepartment, SlotProgram}

// ResolvedQuery is a fully or partially normalized lookup request.
// Campuses empty means "any campus"; more than one entry means the caller
// asked about several campuses in a single turn.
type ResolvedQuery struct {
	University string   `json:"university"`
	Department string   `json:"department"`
	Program    string   `json:"program"`
	Campuses   []string `json:"campuses,omitempty"`
	Year       int      `json:"year"`
}
