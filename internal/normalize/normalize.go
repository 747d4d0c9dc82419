// Package normalize canonicalizes extracted slot values against the
// catalog's controlled vocabularies: alias table first, then exact
// case-insensitive match, then similarity matching with per-field cutoffs.
package normalize

import (
	"regexp"
	"strings"

	"github.com/agext/levenshtein"

	"github.com/Waseem-Khan-Dawar/University-ChatBot/internal/catalog"
	"github.com/Waseem-Khan-Dawar/University-ChatBot/internal/model"
)

// Per-field similarity cutoffs. The program vocabulary is small, so it gets
// the strictest cutoff to avoid false positives.
const (
	CutoffUniversity = 0.78
	CutoffDepartment = 0.83
	CutoffProgram    = 0.90
	CutoffCampus     = 0.80
)

// Cutoff returns the similarity cutoff for a slot.
func Cutoff(slot model.Slot) float64 {
	switch slot {
	case model.SlotUniversity:
		return CutoffUniversity
	case model.SlotDepartment:
		return CutoffDepartment
	case model.SlotProgram:
		return CutoffProgram
	case model.SlotCampus:
		return CutoffCampus
	}
	return 1.0
}

// Result is a tagged normalization outcome. Canonical means the value came
// from an alias, exact or similarity match against the vocabulary;
// otherwise the trimmed original input passed through unrecognized.
type Result struct {
	Value     string
	Canonical bool
}

// Empty reports whether normalization produced no value at all.
func (r Result) Empty() bool { return r.Value == "" }

var similarityParams = levenshtein.NewParams()

// Similarity returns a normalized edit-distance score in [0,1], computed
// case-insensitively.
func Similarity(a, b string) float64 {
	return levenshtein.Similarity(strings.ToLower(a), strings.ToLower(b), similarityParams)
}

// FuzzyPick returns the vocabulary entry most similar to the candidate,
// if its score meets the cutoff. Ties keep the first (lexicographically
// earliest) entry.
func FuzzyPick(candidate string, vocabulary []string, cutoff float64) (string, bool) {
	if strings.TrimSpace(candidate) == "" || len(vocabulary) == 0 {
		return "", false
	}
	best := ""
	bestScore := 0.0
	for _, v := range vocabulary {
		if s := Similarity(candidate, v); s > bestScore {
			bestScore = s
			best = v
		}
	}
	if bestScore >= cutoff {
		return best, true
	}
	return "", false
}

// Normalizer canonicalizes per-field free text against the catalog.
type Normalizer struct {
	catalog *catalog.Catalog
	aliases *Aliases
}

// New builds a Normalizer over the catalog's vocabularies and the embedded
// alias tables.
func New(cat *catalog.Catalog) (*Normalizer, error) {
	aliases, err := LoadAliases()
	if err != nil {
		return nil, err
	}
	return &Normalizer{catalog: cat, aliases: aliases}, nil
}

// Aliases exposes the loaded alias tables for the extractor.
func (n *Normalizer) Aliases() *Aliases { return n.aliases }

// University canonicalizes a university value. Universities have no alias
// table, so matching is exact then fuzzy.
func (n *Normalizer) University(raw string) Result {
	return n.normalizeField(raw, nil, n.catalog.Universities(), CutoffUniversity)
}

// Department canonicalizes a department value.
func (n *Normalizer) Department(raw string) Result {
	return n.normalizeField(raw, n.aliases.Department, n.catalog.Departments(), CutoffDepartment)
}

// Program canonicalizes a program value.
func (n *Normalizer) Program(raw string) Result {
	return n.normalizeField(raw, n.aliases.Program, n.catalog.Programs(), CutoffProgram)
}

var campusSeparatorRe = regexp.MustCompile(`(?i)\s*(?:,|&|\band\b)\s*`)

// Campus canonicalizes a campus value. The raw string may name several
// campuses joined by comma, "and" or "&"; each part is normalized
// independently, deduplicated case-insensitively in first-seen order and
// rejoined with ", ". Canonical is true only when every part matched.
func (n *Normalizer) Campus(raw string) Result {
	if strings.TrimSpace(raw) == "" {
		return Result{}
	}

	var out []string
	seen := map[string]struct{}{}
	allCanonical := true

	for _, part := range campusSeparatorRe.Split(raw, -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		r := n.normalizeField(part, n.aliases.Campus, n.catalog.Campuses(), CutoffCampus)
		if !r.Canonical {
			allCanonical = false
		}
		key := strings.ToLower(r.Value)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r.Value)
	}

	if len(out) == 0 {
		return Result{}
	}
	return Result{Value: strings.Join(out, ", "), Canonical: allCanonical}
}

// Slot canonicalizes raw text as a value for the named slot; used when a
// turn answers a pending clarification question.
func (n *Normalizer) Slot(slot model.Slot, raw string) Result {
	switch slot {
	case model.SlotUniversity:
		return n.University(raw)
	case model.SlotDepartment:
		return n.Department(raw)
	case model.SlotProgram:
		return n.Program(raw)
	case model.SlotCampus:
		return n.Campus(raw)
	}
	return Result{}
}

// umbrellaDepartments are the specific labels that collapse into the
// umbrella "Computing" at institutions that only report the umbrella.
var umbrellaDepartments = map[string]struct{}{
	"computer science":     {},
	"software engineering": {},
	"cyber security":       {},
}

// AdjustDepartment remaps a normalized department to "Computing" when the
// target university's offered departments lack "Computer Science" but carry
// the umbrella term. Institutions like FAST report only the umbrella label
// in the dataset.
func (n *Normalizer) AdjustDepartment(university, department string) string {
	if university == "" || department == "" {
		return department
	}
	if _, ok := umbrellaDepartments[strings.ToLower(department)]; !ok {
		return department
	}

	hasCS := false
	hasUmbrella := false
	for _, d := range n.catalog.DepartmentsAt(university) {
		switch strings.ToLower(d) {
		case "computer science":
			hasCS = true
		case "computing":
			hasUmbrella = true
		}
	}
	if !hasCS && hasUmbrella {
		return "Computing"
	}
	return department
}

// normalizeField applies the three-step contract: alias lookup, exact
// vocabulary match, then similarity match. When nothing clears the cutoff
// the trimmed original passes through untagged.
func (n *Normalizer) normalizeField(raw string, aliases AliasTable, vocabulary []string, cutoff float64) Result {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Result{}
	}

	if aliases != nil {
		if v, ok := aliases.Lookup(trimmed); ok {
			return Result{Value: v, Canonical: true}
		}
	}

	for _, v := range vocabulary {
		if strings.EqualFold(v, trimmed) {
			return Result{Value: v, Canonical: true}
		}
	}

	if v, ok := FuzzyPick(trimmed, vocabulary, cutoff); ok {
		return Result{Value: v, Canonical: true}
	}

	return Result{Value: trimmed, Canonical: false}
}
