// Package catalog holds the immutable reference data derived from the merit
// dataset: the record table itself plus the controlled vocabularies the
// normalizer and extractor match against. Built once at startup, read-only
// afterwards, so concurrent readers need no synchronization.
package catalog

import (
	"sort"
	"strings"

	"github.com/Waseem-Khan-Dawar/University-ChatBot/internal/model"
)

// Catalog is the load-time-built reference data.
type Catalog struct {
	records []model.Record

	universities []string
	campuses     []string
	departments  []string
	programs     []string
	years        []int

	// campusesByUniversity maps lowercase university name to its sorted
	// campus list.
	campusesByUniversity map[string][]string
}

// New builds a Catalog from the full record sequence. Records failing the
// dataset invariants are dropped.
func New(records []model.Record) *Catalog {
	c := &Catalog{
		campusesByUniversity: make(map[string][]string),
	}

	uniSet := map[string]struct{}{}
	campSet := map[string]struct{}{}
	deptSet := map[string]struct{}{}
	progSet := map[string]struct{}{}
	yearSet := map[int]struct{}{}
	uniCamps := map[string]map[string]struct{}{}

	for _, r := range records {
		r = r.Trimmed()
		if !r.Valid() {
			continue
		}
		c.records = append(c.records, r)

		uniSet[r.University] = struct{}{}
		campSet[r.Campus] = struct{}{}
		deptSet[r.Department] = struct{}{}
		progSet[r.Program] = struct{}{}
		yearSet[r.Year] = struct{}{}

		key := strings.ToLower(r.University)
		if uniCamps[key] == nil {
			uniCamps[key] = map[string]struct{}{}
		}
		uniCamps[key][r.Campus] = struct{}{}
	}

	c.universities = sortedKeys(uniSet)
	c.campuses = sortedKeys(campSet)
	c.departments = sortedKeys(deptSet)
	c.programs = sortedKeys(progSet)
	for y := range yearSet {
		c.years = append(c.years, y)
	}
	sort.Ints(c.years)

	for uni, camps := range uniCamps {
		c.campusesByUniversity[uni] = sortedKeys(camps)
	}

	return c
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Records returns the full record sequence. Callers must not mutate it.
func (c *Catalog) Records() []model.Record { return c.records }

// Universities returns the sorted distinct university names.
func (c *Catalog) Universities() []string { return c.universities }

// Years returns every year present in the dataset, ascending.
func (c *Catalog) Years() []int { return c.years }

// Campuses returns the sorted distinct campus names across all universities.
func (c *Catalog) Campuses() []string { return c.campuses }

// Departments returns the sorted distinct department names.
func (c *Catalog) Departments() []string { return c.departments }

// Programs returns the sorted distinct program names.
func (c *Catalog) Programs() []string { return c.programs }

// Vocabulary returns the controlled vocabulary for a slot, or nil for year.
func (c *Catalog) Vocabulary(slot model.Slot) []string {
	switch slot {
	case model.SlotUniversity:
		return c.universities
	case model.SlotCampus:
		return c.campuses
	case model.SlotDepartment:
		return c.departments
	case model.SlotProgram:
		return c.programs
	}
	return nil
}

// CampusesOf returns the campuses a university offers, sorted; nil if the
// university is unknown.
func (c *Catalog) CampusesOf(university string) []string {
	return c.campusesByUniversity[strings.ToLower(university)]
}

// HasUniversity reports whether the university appears in the dataset.
func (c *Catalog) HasUniversity(university string) bool {
	_, ok := c.campusesByUniversity[strings.ToLower(university)]
	return ok
}

// CampusMatches reports whether a record's campus satisfies a campus filter.
// An empty filter matches any campus. A non-empty filter may be a comma
// list; each part matches by case-insensitive equality or as a substring of
// the record's campus, so partial campus names still hit.
func CampusMatches(recordCampus, filter string) bool {
	if strings.TrimSpace(filter) == "" {
		return true
	}
	rc := strings.ToLower(strings.TrimSpace(recordCampus))
	for _, part := range strings.Split(filter, ",") {
		p := strings.ToLower(strings.TrimSpace(part))
		if p == "" {
			continue
		}
		if p == rc || strings.Contains(rc, p) {
			return true
		}
	}
	return false
}

// Lookup returns every record matching university, department, program and
// year exactly (case-insensitive) and satisfying the campus filter.
func (c *Catalog) Lookup(university, campusFilter, department, program string, year int) []model.Record {
	var hits []model.Record
	for _, r := range c.records {
		if !strings.EqualFold(r.University, university) {
			continue
		}
		if !strings.EqualFold(r.Department, department) {
			continue
		}
		if !strings.EqualFold(r.Program, program) {
			continue
		}
		if r.Year != year {
			continue
		}
		if !CampusMatches(r.Campus, campusFilter) {
			continue
		}
		hits = append(hits, r)
	}
	return hits
}

// AvailableYears returns the sorted years with data for the combination.
// An empty campus filter means any campus.
func (c *Catalog) AvailableYears(university, department, program, campusFilter string) []int {
	set := map[int]struct{}{}
	for _, r := range c.records {
		if !strings.EqualFold(r.University, university) ||
			!strings.EqualFold(r.Department, department) ||
			!strings.EqualFold(r.Program, program) {
			continue
		}
		if !CampusMatches(r.Campus, campusFilter) {
			continue
		}
		set[r.Year] = struct{}{}
	}
	years := make([]int, 0, len(set))
	for y := range set {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// ClosestYear returns the available year nearest to the requested one.
// Equidistant candidates resolve to the earlier year, which keeps the
// selection deterministic. The second return is false when no year has data.
func (c *Catalog) ClosestYear(university, department, program, campusFilter string, year int) (int, bool) {
	years := c.AvailableYears(university, department, program, campusFilter)
	if len(years) == 0 {
		return 0, false
	}
	best := years[0]
	for _, y := range years[1:] {
		if abs(y-year) < abs(best-year) {
			best = y
		}
	}
	return best, true
}

// CampusesOffering returns the sorted campuses at the university with any
// data for (department, program), regardless of year.
func (c *Catalog) CampusesOffering(university, department, program string) []string {
	set := map[string]struct{}{}
	for _, r := range c.records {
		if strings.EqualFold(r.University, university) &&
			strings.EqualFold(r.Department, department) &&
			strings.EqualFold(r.Program, program) {
			set[r.Campus] = struct{}{}
		}
	}
	return sortedKeys(set)
}

// DepartmentsAt returns the sorted departments offered at the university.
func (c *Catalog) DepartmentsAt(university string) []string {
	set := map[string]struct{}{}
	for _, r := range c.records {
		if strings.EqualFold(r.University, university) {
			set[r.Department] = struct{}{}
		}
	}
	return sortedKeys(set)
}

// ProgramsFor returns the sorted programs offered for a department at the
// university.
func (c *Catalog) ProgramsFor(university, department string) []string {
	set := map[string]struct{}{}
	for _, r := range c.records {
		if strings.EqualFold(r.University, university) &&
			strings.EqualFold(r.Department, department) {
			set[r.Program] = struct{}{}
		}
	}
	return sortedKeys(set)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
