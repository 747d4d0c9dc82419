// Package engine wires one chat turn end to end: policy shortcut, slot
// extraction, optional model hints, normalization, dialogue advance and
// query resolution.
package engine

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Waseem-Khan-Dawar/University-ChatBot/internal/catalog"
	"github.com/Waseem-Khan-Dawar/University-ChatBot/internal/dialogue"
	"github.com/Waseem-Khan-Dawar/University-ChatBot/internal/extract"
	"github.com/Waseem-Khan-Dawar/University-ChatBot/internal/hint"
	"github.com/Waseem-Khan-Dawar/University-ChatBot/internal/model"
	"github.com/Waseem-Khan-Dawar/University-ChatBot/internal/normalize"
	"github.com/Waseem-Khan-Dawar/University-ChatBot/internal/reply"
	"github.com/Waseem-Khan-Dawar/University-ChatBot/internal/resolver"
)

// maxSuggestions caps the examples offered when asking for a slot.
const maxSuggestions = 8

// defaultPrograms is offered when the catalog has no program data to draw
// suggestions from.
var defaultPrograms = []string{"BS", "MS", "MPhil", "PhD"}

// Engine answers chat turns over a fixed catalog.
type Engine struct {
	catalog   *catalog.Catalog
	extractor *extract.Extractor
	norm      *normalize.Normalizer
	advance   *dialogue.Advance
	resolver  *resolver.Resolver
	hints     hint.Provider
}

// New builds an Engine. hints may be nil, in which case extraction relies on
// the rule-based pass alone.
func New(cat *catalog.Catalog, sessions dialogue.SessionStore, hints hint.Provider) (*Engine, error) {
	norm, err := normalize.New(cat)
	if err != nil {
		return nil, err
	}
	return &Engine{
		catalog:   cat,
		extractor: extract.New(cat, norm.Aliases()),
		norm:      norm,
		advance:   dialogue.NewAdvance(sessions, norm),
		resolver:  resolver.New(cat),
		hints:     hints,
	}, nil
}

// Turn processes one message and returns the rendered reply plus the
// structured outcomes behind it. A blank session id gets a fresh one, echoed
// back so the client can continue the conversation.
func (e *Engine) Turn(ctx context.Context, req model.TurnRequest) model.TurnReply {
	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	if extract.IsPolicyQuestion(req.Message) {
		out := model.Outcome{Kind: model.OutcomePolicyAnswer}
		return model.TurnReply{
			SessionID: sessionID,
			Reply:     reply.Compose([]model.Outcome{out}),
			Outcomes:  []model.Outcome{out},
		}
	}

	slots := e.extractor.Extract(req.Message)
	if e.hints != nil {
		h, err := e.hints.ExtractHint(ctx, req.Message)
		if err != nil {
			// Hints are best effort; the rule-based pass already ran.
			zap.L().Warn("hint extraction failed", zap.String("session", sessionID), zap.Error(err))
		} else if h != nil {
			slots = hint.Merge(slots, h)
		}
	}

	turn := e.normalizeTurn(slots)
	out := e.advance.Turn(sessionID, req.Message, turn)

	var outcomes []model.Outcome
	if out.Ready {
		q := out.Query
		q.Department = e.norm.AdjustDepartment(q.University, q.Department)
		outcomes = e.resolver.Resolve(q)
	} else {
		outcomes = []model.Outcome{e.askOutcome(out)}
	}

	return model.TurnReply{
		SessionID: sessionID,
		Reply:     reply.Compose(outcomes),
		Outcomes:  outcomes,
	}
}

// normalizeTurn canonicalizes the extracted candidates for this turn.
// Non-canonical values pass through so the dialogue can still ask about
// them instead of silently dropping the user's words.
func (e *Engine) normalizeTurn(slots extract.Slots) dialogue.TurnSlots {
	turn := dialogue.TurnSlots{
		Year:         slots.Year,
		YearExplicit: slots.YearExplicit,
	}
	if slots.University.Found {
		turn.University = e.norm.University(slots.University.Value).Value
	}
	if slots.Department.Found {
		turn.Department = e.norm.Department(slots.Department.Value).Value
	}
	if slots.Program.Found {
		turn.Program = e.norm.Program(slots.Program.Value).Value
	}
	if slots.Campus.Found {
		turn.Campus = e.norm.Campus(slots.Campus.Value).Value
	}
	return turn
}

// askOutcome turns a dialogue ask into a structured outcome with
// context-aware suggestions.
func (e *Engine) askOutcome(out dialogue.Outcome) model.Outcome {
	known := out.Known
	ask := model.Outcome{
		Kind: model.OutcomeAskSlot,
		Slot: out.Ask,
		Query: model.ResolvedQuery{
			University: known.University,
			Department: known.Department,
			Program:    known.Program,
			Campuses:   dialogue.SplitCampuses(known.Campus),
			Year:       known.Year,
		},
	}
	switch out.Ask {
	case model.SlotUniversity:
		ask.Suggestions = capSuggestions(e.catalog.Universities())
	case model.SlotDepartment:
		if deps := e.catalog.DepartmentsAt(known.University); len(deps) > 0 {
			ask.Suggestions = capSuggestions(deps)
		} else {
			ask.Suggestions = capSuggestions(e.catalog.Departments())
		}
	case model.SlotProgram:
		if progs := e.catalog.ProgramsFor(known.University, known.Department); len(progs) > 0 {
			ask.Suggestions = capSuggestions(progs)
		} else {
			ask.Suggestions = defaultPrograms
		}
	}
	return ask
}

func capSuggestions(values []string) []string {
	if len(values) > maxSuggestions {
		return values[:maxSuggestions]
	}
	return values
}
