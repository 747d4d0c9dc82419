package model

// OutcomeKind discriminates the structured result of one resolution turn.
type OutcomeKind string

const (
	// OutcomeAnswerSingle carries the single record that matched exactly.
	OutcomeAnswerSingle OutcomeKind = "answer_single"
	// OutcomeAnswerMultiCampus carries matches across several campuses when
	// the caller named none.
	OutcomeAnswerMultiCampus OutcomeKind = "answer_multi_campus"
	// OutcomeFallbackYear carries a match at the nearest year with data,
	// substituted for a requested year that has none.
	OutcomeFallbackYear OutcomeKind = "fallback_year"
	// OutcomeAlternateCampuses lists campuses that do offer the requested
	// program when the requested campus does not.
	OutcomeAlternateCampuses OutcomeKind = "alternate_campuses"
	// OutcomeAlternateDepartments lists departments actually offered at the
	// university when the requested one does not exist there.
	OutcomeAlternateDepartments OutcomeKind = "alternate_departments"
	// OutcomeNoMatch reports an exhausted search, with whatever context is
	// available to guide the next turn.
	OutcomeNoMatch OutcomeKind = "no_match"
	// OutcomeAskSlot asks the user for a missing required slot.
	OutcomeAskSlot OutcomeKind = "ask_slot"
	// OutcomePolicyAnswer answers a merit-list policy question without a
	// dataset lookup.
	OutcomePolicyAnswer OutcomeKind = "policy_answer"
)

// Outcome is the structured result the resolver or dialogue produces for one
// campus (or for the whole turn when no campus iteration applies). The reply
// composer renders it; tests assert on it directly.
type Outcome struct {
	Kind  OutcomeKind   `json:"kind"`
	Query ResolvedQuery `json:"query"`

	// Campus is the single campus this outcome addresses, when the turn
	// asked about more than one.
	Campus string `json:"campus,omitempty"`

	// Record is set for answer_single and fallback_year.
	Record *Record `json:"record,omitempty"`
	// Records is set for answer_multi_campus, one per matching campus.
	Records []Record `json:"records,omitempty"`
	// Year is the substituted year for fallback_year.
	Year int `json:"year,omitempty"`

	// Slot and Suggestions are set for ask_slot.
	Slot        Slot     `json:"slot,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`

	// Guidance context for alternate_* and no_match.
	Campuses    []string `json:"campuses,omitempty"`
	Departments []string `json:"departments,omitempty"`
	Programs    []string `json:"programs,omitempty"`
}

// TurnRequest is one inbound chat turn.
type TurnRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// TurnReply is the rendered reply plus the structured outcomes behind it.
type TurnReply struct {
	SessionID string    `json:"session_id"`
	Reply     string    `json:"reply"`
	Outcomes  []Outcome `json:"outcomes"`
}
