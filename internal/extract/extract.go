// Package extract pulls best-effort raw slot candidates out of free text
// using substring and alias detection. It is pure and deterministic: no
// external calls, and every input maps to a defined output.
package extract

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/Waseem-Khan-Dawar/University-ChatBot/internal/catalog"
	"github.com/Waseem-Khan-Dawar/University-ChatBot/internal/model"
	"github.com/Waseem-Khan-Dawar/University-ChatBot/internal/normalize"
)

// Candidate is a raw extracted slot value. Found distinguishes "no value"
// from an empty string, which callers must never conflate.
type Candidate struct {
	Value string
	Found bool
}

// Slots is the extractor's output for one message. Year always resolves:
// explicit 4-digit year, "last year", or the current year. YearExplicit
// distinguishes a year the message actually mentioned from the default, so
// later turns do not clobber a stored year with the current one.
type Slots struct {
	University   Candidate
	Campus       Candidate
	Department   Candidate
	Program      Candidate
	Year         int
	YearExplicit bool
}

// Extractor detects slot candidates against the catalog vocabularies and
// alias tables.
type Extractor struct {
	catalog *catalog.Catalog
	aliases *normalize.Aliases
	now     func() time.Time

	// alias keys sorted longest-first so more specific aliases win.
	deptAliasKeys   []string
	progAliasKeys   []string
	campusAliasKeys []string

	// whole-word matchers precompiled per alias key; the extractor runs on
	// concurrent request goroutines, so no lazy compilation.
	wordRes map[string]*regexp.Regexp
}

// Option configures the extractor.
type Option func(*Extractor)

// WithClock overrides the time source; tests pin the current year with it.
func WithClock(now func() time.Time) Option {
	return func(e *Extractor) { e.now = now }
}

// New builds an extractor over the catalog and alias tables.
func New(cat *catalog.Catalog, aliases *normalize.Aliases, opts ...Option) *Extractor {
	e := &Extractor{
		catalog:         cat,
		aliases:         aliases,
		now:             time.Now,
		deptAliasKeys:   sortedAliasKeys(aliases.Department),
		progAliasKeys:   sortedAliasKeys(aliases.Program),
		campusAliasKeys: sortedAliasKeys(aliases.Campus),
		wordRes:         map[string]*regexp.Regexp{},
	}
	for _, keys := range [][]string{e.deptAliasKeys, e.progAliasKeys, e.campusAliasKeys} {
		for _, k := range keys {
			if _, ok := e.wordRes[k]; !ok {
				e.wordRes[k] = regexp.MustCompile(`\b` + regexp.QuoteMeta(k) + `\b`)
			}
		}
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

func sortedAliasKeys(t normalize.AliasTable) []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}

var (
	yearRe     = regexp.MustCompile(`\b(20\d{2}|19\d{2})\b`)
	lastYearRe = regexp.MustCompile(`\blast\s+year\b`)
	tokenRe    = regexp.MustCompile(`[A-Za-z0-9']{3,}`)
	shortTokRe = regexp.MustCompile(`[A-Za-z0-9']{2,}`)
	policyRe   = regexp.MustCompile(`\b(vacant seats?|vacancies|merit\s*lists?|policy|how many lists?)\b`)
)

// IsPolicyQuestion reports whether the message asks about merit-list policy
// (vacant seats, number of lists) rather than a merit score.
func IsPolicyQuestion(message string) bool {
	return policyRe.MatchString(strings.ToLower(message))
}

// Year resolves the year mentioned in the message: an explicit 4-digit year
// wins, "last year" means the current year minus one, and the current year
// is the default. The second return reports whether the message named a
// year at all.
func (e *Extractor) Year(message string) (int, bool) {
	lower := strings.ToLower(message)
	nowYear := e.now().Year()
	if lastYearRe.MatchString(lower) {
		return nowYear - 1, true
	}
	if m := yearRe.FindString(lower); m != "" {
		y := 0
		for _, c := range m {
			y = y*10 + int(c-'0')
		}
		return y, true
	}
	return nowYear, false
}

// Extract pulls candidates for every slot out of the message. It never
// fails; absent fields carry Found=false.
func (e *Extractor) Extract(message string) Slots {
	lower := strings.ToLower(message)
	year, explicit := e.Year(message)

	return Slots{
		University:   e.extractUniversity(lower),
		Department:   e.extractDepartment(lower),
		Program:      e.extractProgram(lower),
		Campus:       e.extractCampuses(lower),
		Year:         year,
		YearExplicit: explicit,
	}
}

// extractUniversity tries each vocabulary entry as a literal substring,
// then fuzzy-matches individual tokens.
func (e *Extractor) extractUniversity(lower string) Candidate {
	for _, u := range e.catalog.Universities() {
		if strings.Contains(lower, strings.ToLower(u)) {
			return Candidate{Value: u, Found: true}
		}
	}
	for _, tok := range tokenRe.FindAllString(lower, -1) {
		if v, ok := normalize.FuzzyPick(tok, e.catalog.Universities(), 0.80); ok {
			return Candidate{Value: v, Found: true}
		}
	}
	return Candidate{}
}

func (e *Extractor) extractDepartment(lower string) Candidate {
	if v, ok := e.matchAliasWord(lower, e.deptAliasKeys, e.aliases.Department); ok {
		return Candidate{Value: v, Found: true}
	}
	for _, d := range e.catalog.Departments() {
		if strings.Contains(lower, strings.ToLower(d)) {
			return Candidate{Value: d, Found: true}
		}
	}
	for _, tok := range shortTokRe.FindAllString(lower, -1) {
		if v, ok := normalize.FuzzyPick(tok, e.catalog.Departments(), normalize.CutoffDepartment); ok {
			return Candidate{Value: v, Found: true}
		}
	}
	return Candidate{}
}

// extractProgram falls back to "BS" when the message names no program. The
// bulk of merit questions are about bachelor programs, so the bias is
// deliberate rather than a failure to extract.
func (e *Extractor) extractProgram(lower string) Candidate {
	if v, ok := e.matchAliasWord(lower, e.progAliasKeys, e.aliases.Program); ok {
		return Candidate{Value: v, Found: true}
	}
	for _, p := range e.catalog.Programs() {
		if strings.Contains(lower, strings.ToLower(p)) {
			return Candidate{Value: p, Found: true}
		}
	}
	return Candidate{Value: "BS", Found: true}
}

// extractCampuses unions alias short-form whole-word hits with vocabulary
// substrings, deduplicated in first-seen order and joined with ", " exactly
// as the normalizer formats multi-campus values.
func (e *Extractor) extractCampuses(lower string) Candidate {
	var detected []string
	for _, key := range e.campusAliasKeys {
		if e.wordRes[key].MatchString(lower) {
			detected = append(detected, e.aliases.Campus[key])
		}
	}
	for _, c := range e.catalog.Campuses() {
		if strings.Contains(lower, strings.ToLower(c)) {
			detected = append(detected, c)
		}
	}
	if len(detected) == 0 {
		return Candidate{}
	}

	seen := map[string]struct{}{}
	var ordered []string
	for _, c := range detected {
		key := strings.ToLower(c)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		ordered = append(ordered, c)
	}
	return Candidate{Value: strings.Join(ordered, ", "), Found: true}
}

// Get returns the candidate for a slot; year is excluded since it always
// resolves.
func (s Slots) Get(slot model.Slot) Candidate {
	switch slot {
	case model.SlotUniversity:
		return s.University
	case model.SlotCampus:
		return s.Campus
	case model.SlotDepartment:
		return s.Department
	case model.SlotProgram:
		return s.Program
	}
	return Candidate{}
}

func (e *Extractor) matchAliasWord(lower string, keys []string, table normalize.AliasTable) (string, bool) {
	for _, key := range keys {
		if e.wordRes[key].MatchString(lower) {
			return table[key], true
		}
	}
	return "", false
}
