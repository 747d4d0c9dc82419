// Package hint consumes an optional LLM-supplied slot extraction and merges
// it with the deterministic extractor's output. Hint data is untrusted,
// best-effort structured input: any field may be absent, empty or wrong,
// and provider failures degrade to extractor-only behavior without
// surfacing an error to the caller.
package hint

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/Waseem-Khan-Dawar/University-ChatBot/internal/extract"
)

// Hint is the per-field extraction a provider returned. Year stays raw
// until the merge parses it; a non-integer year is discarded, not an error.
type Hint struct {
	University flexString `json:"university"`
	Campus     flexString `json:"campus"`
	Department flexString `json:"department"`
	Program    flexString `json:"program"`
	Year       flexString `json:"year"`
}

// Provider extracts a Hint from a free-text message. Implementations own
// their timeout; a nil hint with an error means the provider was
// unavailable or returned garbage.
type Provider interface {
	ExtractHint(ctx context.Context, message string) (*Hint, error)
}

// Merge applies the priority rule per field: a non-empty, well-formed hint
// value wins; otherwise the extractor's candidate stands. A nil hint leaves
// the extraction untouched.
func Merge(slots extract.Slots, h *Hint) extract.Slots {
	if h == nil {
		return slots
	}

	if v := h.University.trimmed(); v != "" {
		slots.University = extract.Candidate{Value: v, Found: true}
	}
	if v := h.Campus.trimmed(); v != "" {
		slots.Campus = extract.Candidate{Value: v, Found: true}
	}
	if v := h.Department.trimmed(); v != "" {
		slots.Department = extract.Candidate{Value: v, Found: true}
	}
	if v := h.Program.trimmed(); v != "" {
		slots.Program = extract.Candidate{Value: v, Found: true}
	}
	if v := h.Year.trimmed(); v != "" {
		if y, err := strconv.Atoi(v); err == nil && y >= 1000 && y <= 9999 {
			slots.Year = y
			slots.YearExplicit = true
		}
	}
	return slots
}

// flexString tolerates JSON strings, numbers and null so a model answering
// `"year": 2023` parses the same as `"year": "2023"`.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*f = ""
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*f = flexString(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		*f = flexString(num.String())
		return nil
	}
	// Unusable shape (object, array, bool): drop the field rather than
	// failing the whole hint.
	*f = ""
	return nil
}

func (f flexString) trimmed() string {
	return strings.TrimSpace(string(f))
}
