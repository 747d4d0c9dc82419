// Package reply renders structured resolution outcomes into user-facing
// text. It holds no logic beyond formatting.
package reply

import (
	"fmt"
	"strings"

	"github.com/Waseem-Khan-Dawar/University-ChatBot/internal/model"
)

// PolicyText is the canned answer for merit-list policy questions.
const PolicyText = "Policy question detected.\n" +
	"Typically, universities issue 2-3 merit lists and may extend if seats remain vacant. " +
	"For a specific campus, ask e.g. 'Vacant-seats policy at FAST Islamabad'."

// Compose renders a turn's outcomes. More than one outcome means the turn
// asked about several campuses, which get a shared heading and one line per
// campus.
func Compose(outcomes []model.Outcome) string {
	if len(outcomes) == 0 {
		return "Sorry, nothing matched."
	}
	if len(outcomes) == 1 {
		return composeSingle(outcomes[0])
	}

	q := outcomes[0].Query
	lines := make([]string, 0, len(outcomes))
	for _, out := range outcomes {
		lines = append(lines, campusLine(out))
	}
	return fmt.Sprintf("Merits for %s %s at %s in %d:\n%s",
		q.Program, q.Department, q.University, q.Year, strings.Join(lines, "\n"))
}

func composeSingle(out model.Outcome) string {
	q := out.Query
	switch out.Kind {
	case model.OutcomePolicyAnswer:
		return PolicyText

	case model.OutcomeAskSlot:
		return askPrompt(out)

	case model.OutcomeAnswerSingle:
		r := out.Record
		campus := ""
		if r.Campus != "" {
			campus = fmt.Sprintf(" (%s)", r.Campus)
		}
		return fmt.Sprintf("The merit for %s %s at %s%s in %d is: %s.",
			r.Program, r.Department, r.University, campus, r.Year, meritLine(*r))

	case model.OutcomeAnswerMultiCampus:
		lines := make([]string, 0, len(out.Records))
		for _, r := range out.Records {
			lines = append(lines, fmt.Sprintf("- %s: %s", r.Campus, meritLine(r)))
		}
		return fmt.Sprintf("Multiple campuses found for %s %s at %s in %d:\n%s\nIf you want one campus, say e.g. 'FAST Islamabad'.",
			q.Program, q.Department, q.University, q.Year, strings.Join(lines, "\n"))

	case model.OutcomeFallbackYear:
		r := out.Record
		campus := ""
		if r.Campus != "" {
			campus = fmt.Sprintf(" (%s)", r.Campus)
		}
		return fmt.Sprintf("No data for %d. Showing closest available year (%d) for %s %s at %s%s: %s.",
			q.Year, out.Year, q.Program, q.Department, q.University, campus, meritLine(*r))

	case model.OutcomeAlternateCampuses:
		return fmt.Sprintf("%s %s is not offered at %s (%s). It is available at: %s.",
			q.Program, q.Department, q.University, out.Campus, strings.Join(out.Campuses, ", "))

	case model.OutcomeAlternateDepartments:
		return fmt.Sprintf("%s %s is not available at %s. Departments at %s: %s.",
			q.Program, q.Department, q.University, q.University, strings.Join(out.Departments, ", "))

	case model.OutcomeNoMatch:
		return noMatchText(out)
	}
	return "Sorry, nothing matched."
}

func noMatchText(out model.Outcome) string {
	q := out.Query
	switch {
	case len(out.Programs) > 0 && out.Campus != "":
		return fmt.Sprintf("%s is not offered for %s at %s (%s). Available programs here: %s.",
			q.Program, q.Department, q.University, out.Campus, strings.Join(out.Programs, ", "))
	case len(out.Programs) > 0:
		return fmt.Sprintf("No %s data found for %s at %s in %d. Available programs for this department: %s.",
			q.Program, q.Department, q.University, q.Year, strings.Join(out.Programs, ", "))
	case len(out.Campuses) > 0 || len(out.Departments) > 0:
		return fmt.Sprintf("No match found. %s campuses: %s. Departments: %s",
			q.University, strings.Join(out.Campuses, ", "), strings.Join(out.Departments, ", "))
	}
	return "Sorry, nothing matched."
}

func askPrompt(out model.Outcome) string {
	q := out.Query
	suggestions := strings.Join(out.Suggestions, ", ")
	switch out.Slot {
	case model.SlotUniversity:
		return fmt.Sprintf("Which university? For example: %s.", suggestions)
	case model.SlotDepartment:
		if q.University != "" {
			return fmt.Sprintf("Which department at %s? Examples: %s.", q.University, suggestions)
		}
		return fmt.Sprintf("Which department? Examples: %s.", suggestions)
	case model.SlotProgram:
		if q.University != "" && q.Department != "" {
			return fmt.Sprintf("Which program for %s at %s? Options: %s.", q.Department, q.University, suggestions)
		}
		return "Which program (BS/MS/MPhil/PhD)?"
	}
	return fmt.Sprintf("Please tell me the %s.", out.Slot)
}

// campusLine renders one outcome inside a multi-campus reply.
func campusLine(out model.Outcome) string {
	q := out.Query
	switch out.Kind {
	case model.OutcomeAnswerSingle:
		return fmt.Sprintf("%s: %s", out.Campus, meritLine(*out.Record))
	case model.OutcomeFallbackYear:
		return fmt.Sprintf("%s (showing %d): %s", out.Campus, out.Year, meritLine(*out.Record))
	case model.OutcomeAlternateCampuses:
		return fmt.Sprintf("%s: %s %s is not offered here. Try: %s.",
			out.Campus, q.Program, q.Department, strings.Join(out.Campuses, ", "))
	default:
		return fmt.Sprintf("%s: No data for %d.", out.Campus, q.Year)
	}
}

func meritLine(r model.Record) string {
	return fmt.Sprintf("min %g%% / max %g%%", r.MinMerit, r.MaxMerit)
}
