package normalize

import (
	_ "embed"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/Waseem-Khan-Dawar/University-ChatBot/internal/model"
)

//go:embed aliases.yaml
var aliasesYAML []byte

// AliasTable maps normalized alias keys to canonical vocabulary strings.
type AliasTable map[string]string

// Aliases holds the static, hand-curated alias tables. They are loaded at
// startup and never derived from data.
type Aliases struct {
	Department AliasTable `yaml:"department"`
	Program    AliasTable `yaml:"program"`
	Campus     AliasTable `yaml:"campus"`
}

// LoadAliases parses the embedded alias tables, re-keying every entry
// through the same key normalization used at lookup time.
func LoadAliases() (*Aliases, error) {
	var raw Aliases
	if err := yaml.Unmarshal(aliasesYAML, &raw); err != nil {
		return nil, eris.Wrap(err, "normalize: parse aliases")
	}

	a := &Aliases{
		Department: rekey(raw.Department),
		Program:    rekey(raw.Program),
		Campus:     rekey(raw.Campus),
	}
	return a, nil
}

// Table returns the alias table for a slot, or nil when the slot has none
// (universities have no alias table).
func (a *Aliases) Table(slot model.Slot) AliasTable {
	switch slot {
	case model.SlotDepartment:
		return a.Department
	case model.SlotProgram:
		return a.Program
	case model.SlotCampus:
		return a.Campus
	}
	return nil
}

func rekey(t AliasTable) AliasTable {
	out := make(AliasTable, len(t))
	for k, v := range t {
		out[AliasKey(k)] = v
	}
	return out
}

var spaceRunRe = regexp.MustCompile(`\s+`)

// AliasKey normalizes free text into an alias-table key: lowercase, trim,
// treat '-' and '_' as word separators, collapse space runs. Hyphenated
// input ("comp-science") keys the same as its spaced form.
func AliasKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("-", " ", "_", " ").Replace(s)
	s = spaceRunRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Lookup resolves an alias key, returning the canonical value and whether
// the key was present.
func (t AliasTable) Lookup(raw string) (string, bool) {
	v, ok := t[AliasKey(raw)]
	return v, ok
}
