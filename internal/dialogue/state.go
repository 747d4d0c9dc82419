package dialogue

import (
	"strings"

	"github.com/Waseem-Khan-Dawar/University-ChatBot/internal/model"
	"github.com/Waseem-Khan-Dawar/University-ChatBot/internal/normalize"
)

// TurnSlots are the normalized slot values produced for the current turn.
// Empty strings mean the turn did not supply the slot.
type TurnSlots struct {
	University string
	Department string
	Program    string
	Campus     string
	// Year is always resolved; YearExplicit marks a year the user actually
	// named, which may overwrite a stored one.
	Year         int
	YearExplicit bool
}

// SlotNormalizer canonicalizes raw text as a value for one named slot; the
// normalize package implements it.
type SlotNormalizer interface {
	Slot(slot model.Slot, raw string) normalize.Result
}

// Advance runs the per-turn transition of the dialogue state machine and
// returns either a ready query or the slot to ask for next.
//
// The rules, in order:
//  1. If the session was awaiting a slot and the generic extraction did not
//     fill it, the raw message normalized as that slot's type is taken as
//     the answer.
//  2. Known session values merge with the turn; a blank turn value never
//     overwrites a known one.
//  3. The first missing required slot (university, department, program, in
//     that order) turns into a question; all known values persist into the
//     session so the same slot is never asked twice.
//  4. With every required slot present the session is cleared and the
//     merged query returned.
type Advance struct {
	store SessionStore
	norm  SlotNormalizer
}

// NewAdvance builds the state machine over a session store and normalizer.
func NewAdvance(store SessionStore, norm SlotNormalizer) *Advance {
	return &Advance{store: store, norm: norm}
}

// Outcome of one turn: Ready is true with Query set, or Ask names the slot
// to request.
type Outcome struct {
	Ready bool
	Query model.ResolvedQuery
	Ask   model.Slot
	// Known carries the merged values at the time of the ask, for building
	// context-aware suggestions.
	Known Session
}

// Turn advances the session identified by sessionID with the current turn's
// slots and raw message.
func (a *Advance) Turn(sessionID, rawMessage string, turn TurnSlots) Outcome {
	known, existed := a.store.Get(sessionID)

	// A pending question's answer may be the whole message ("Computer
	// Science"), which the generic extractor can miss. Normalize the raw
	// text against the awaited slot's type before deciding anything else.
	if existed && known.Awaiting != "" && turnValue(turn, known.Awaiting) == "" {
		if r := a.norm.Slot(known.Awaiting, rawMessage); !r.Empty() {
			setTurnValue(&turn, known.Awaiting, r.Value)
		}
	}

	merged := mergeSession(known, turn)

	for _, slot := range model.RequiredSlots {
		if sessionValue(merged, slot) == "" {
			merged.Awaiting = slot
			a.store.Put(sessionID, merged)
			return Outcome{Ask: slot, Known: merged}
		}
	}

	if existed {
		a.store.Delete(sessionID)
	}

	return Outcome{
		Ready: true,
		Known: merged,
		Query: model.ResolvedQuery{
			University: merged.University,
			Department: merged.Department,
			Program:    merged.Program,
			Campuses:   SplitCampuses(merged.Campus),
			Year:       merged.Year,
		},
	}
}

// SplitCampuses splits a normalized ", "-joined campus value into its
// canonical names; empty input yields nil ("any campus").
func SplitCampuses(campus string) []string {
	if strings.TrimSpace(campus) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(campus, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func mergeSession(known Session, turn TurnSlots) Session {
	merged := Session{
		University: firstNonEmpty(turn.University, known.University),
		Department: firstNonEmpty(turn.Department, known.Department),
		Program:    firstNonEmpty(turn.Program, known.Program),
		Campus:     firstNonEmpty(turn.Campus, known.Campus),
		Year:       known.Year,
	}
	if turn.YearExplicit || known.Year == 0 {
		merged.Year = turn.Year
	}
	return merged
}

func firstNonEmpty(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	return b
}

func sessionValue(s Session, slot model.Slot) string {
	switch slot {
	case model.SlotUniversity:
		return s.University
	case model.SlotDepartment:
		return s.Department
	case model.SlotProgram:
		return s.Program
	case model.SlotCampus:
		return s.Campus
	}
	return ""
}

func turnValue(t TurnSlots, slot model.Slot) string {
	switch slot {
	case model.SlotUniversity:
		return t.University
	case model.SlotDepartment:
		return t.Department
	case model.SlotProgram:
		return t.Program
	case model.SlotCampus:
		return t.Campus
	}
	return ""
}

func setTurnValue(t *TurnSlots, slot model.Slot, value string) {
	switch slot {
	case model.SlotUniversity:
		t.University = value
	case model.SlotDepartment:
		t.Department = value
	case model.SlotProgram:
		t.Program = value
	case model.SlotCampus:
		t.Campus = value
	}
}
