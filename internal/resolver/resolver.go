// Package resolver runs the lookup policy over the catalog: exact match
// first, then a fixed fallback order of nearest available year, alternate
// campuses and alternate departments. It produces structured outcomes
// only; rendering is the reply composer's job.
package resolver

import (
	"github.com/Waseem-Khan-Dawar/University-ChatBot/internal/catalog"
	"github.com/Waseem-Khan-Dawar/University-ChatBot/internal/model"
)

// Resolver resolves queries against the catalog.
type Resolver struct {
	catalog *catalog.Catalog
}

// New builds a Resolver.
func New(cat *catalog.Catalog) *Resolver {
	return &Resolver{catalog: cat}
}

// Resolve executes the policy once per requested campus and returns one
// outcome per campus, all under the same university/department/program/year
// framing. An empty campus list is a single "any campus" iteration.
func (r *Resolver) Resolve(q model.ResolvedQuery) []model.Outcome {
	if len(q.Campuses) == 0 {
		return []model.Outcome{r.resolveCampus(q, "")}
	}
	outcomes := make([]model.Outcome, 0, len(q.Campuses))
	for _, campus := range q.Campuses {
		out := r.resolveCampus(q, campus)
		out.Campus = campus
		outcomes = append(outcomes, out)
	}
	return outcomes
}

// resolveCampus runs steps 1-6 of the policy for a single campus filter
// (empty meaning any campus).
func (r *Resolver) resolveCampus(q model.ResolvedQuery, campus string) model.Outcome {
	hits := r.catalog.Lookup(q.University, campus, q.Department, q.Program, q.Year)
	if len(hits) > 0 {
		if campus != "" || singleCampus(hits) {
			return model.Outcome{
				Kind:   model.OutcomeAnswerSingle,
				Query:  q,
				Record: &hits[0],
			}
		}
		// Several campuses matched and none was requested: report all of
		// them rather than aggregating.
		return model.Outcome{
			Kind:    model.OutcomeAnswerMultiCampus,
			Query:   q,
			Records: hits,
		}
	}

	// Nearest year with data for the same combination.
	if year, ok := r.catalog.ClosestYear(q.University, q.Department, q.Program, campus, q.Year); ok {
		fallback := r.catalog.Lookup(q.University, campus, q.Department, q.Program, year)
		if len(fallback) > 0 {
			return model.Outcome{
				Kind:   model.OutcomeFallbackYear,
				Query:  q,
				Record: &fallback[0],
				Year:   year,
			}
		}
	}

	if campus != "" {
		return r.campusMiss(q)
	}
	return r.anyCampusMiss(q)
}

// campusMiss handles a requested campus with no data: suggest campuses that
// do offer the program, or explain what the university actually offers.
func (r *Resolver) campusMiss(q model.ResolvedQuery) model.Outcome {
	if offered := r.catalog.CampusesOffering(q.University, q.Department, q.Program); len(offered) > 0 {
		return model.Outcome{
			Kind:     model.OutcomeAlternateCampuses,
			Query:    q,
			Campuses: offered,
		}
	}
	if programs := r.catalog.ProgramsFor(q.University, q.Department); len(programs) > 0 {
		// The department exists here, just not with this program.
		return model.Outcome{
			Kind:     model.OutcomeNoMatch,
			Query:    q,
			Programs: programs,
		}
	}
	if departments := r.catalog.DepartmentsAt(q.University); len(departments) > 0 {
		return model.Outcome{
			Kind:        model.OutcomeAlternateDepartments,
			Query:       q,
			Departments: departments,
		}
	}
	return model.Outcome{Kind: model.OutcomeNoMatch, Query: q}
}

// anyCampusMiss handles the no-campus case with nothing found anywhere:
// carry whatever context exists to guide the next turn.
func (r *Resolver) anyCampusMiss(q model.ResolvedQuery) model.Outcome {
	if programs := r.catalog.ProgramsFor(q.University, q.Department); len(programs) > 0 {
		return model.Outcome{
			Kind:     model.OutcomeNoMatch,
			Query:    q,
			Programs: programs,
		}
	}
	if r.catalog.HasUniversity(q.University) {
		return model.Outcome{
			Kind:        model.OutcomeNoMatch,
			Query:       q,
			Campuses:    r.catalog.CampusesOf(q.University),
			Departments: r.catalog.DepartmentsAt(q.University),
		}
	}
	return model.Outcome{Kind: model.OutcomeNoMatch, Query: q}
}

func singleCampus(records []model.Record) bool {
	if len(records) <= 1 {
		return true
	}
	first := records[0].Campus
	for _, r := range records[1:] {
		if r.Campus != first {
			return false
		}
	}
	return true
}
