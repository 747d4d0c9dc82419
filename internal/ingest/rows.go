// Package ingest loads merit records from CSV and XLSX files. Header names
// are matched tolerantly and malformed rows are skipped with a log line
// rather than failing the whole file.
package ingest

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/Waseem-Khan-Dawar/University-ChatBot/internal/model"
)

// headerAliases maps canonicalized header names to record fields. Exports
// from different universities disagree on naming, so several variants map
// to each field.
var headerAliases = map[string]string{
	"university":     "university",
	"uni":            "university",
	"institute":      "university",
	"institution":    "university",
	"campus":         "campus",
	"campusname":     "campus",
	"city":           "campus",
	"department":     "department",
	"dept":           "department",
	"discipline":     "department",
	"field":          "department",
	"program":        "program",
	"programme":      "program",
	"degree":         "program",
	"level":          "program",
	"year":           "year",
	"session":        "year",
	"admissionyear":  "year",
	"minmerit":       "min_merit",
	"minimummerit":   "min_merit",
	"min":            "min_merit",
	"closingmerit":   "min_merit",
	"maxmerit":       "max_merit",
	"maximummerit":   "max_merit",
	"max":            "max_merit",
	"openingmerit":   "max_merit",
	"meritmin":       "min_merit",
	"meritmax":       "max_merit",
	"minmeritpct":    "min_merit",
	"maxmeritpct":    "max_merit",
	"minpercentage":  "min_merit",
	"maxpercentage":  "max_merit",
	"aggregatemin":   "min_merit",
	"aggregatemax":   "max_merit",
	"closingaggpct":  "min_merit",
	"openingaggpct":  "max_merit",
	"minmeritscore":  "min_merit",
	"maxmeritscore":  "max_merit",
	"meritlow":       "min_merit",
	"merithigh":      "max_merit",
	"lowestmerit":    "min_merit",
	"highestmerit":   "max_merit",
	"minimummeritpc": "min_merit",
	"maximummeritpc": "max_merit",
}

// canonicalHeader lowercases a header and strips spaces, underscores,
// dashes and percent signs so "Min Merit (%)" and "min_merit" collide.
func canonicalHeader(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(h)) {
		switch r {
		case ' ', '_', '-', '%', '(', ')', '.':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// columnIndex maps record fields to column positions for one file.
type columnIndex map[string]int

// mapHeaders resolves a header row into a column index. All fields except
// max_merit are required; a missing max column falls back to the min value
// per row.
func mapHeaders(headers []string) (columnIndex, error) {
	idx := make(columnIndex)
	for i, h := range headers {
		field, ok := headerAliases[canonicalHeader(h)]
		if !ok {
			continue
		}
		if _, dup := idx[field]; !dup {
			idx[field] = i
		}
	}
	for _, required := range []string{"university", "campus", "department", "program", "year", "min_merit"} {
		if _, ok := idx[required]; !ok {
			return nil, eris.Errorf("ingest: missing required column %q", required)
		}
	}
	return idx, nil
}

func (c columnIndex) cell(row []string, field string) string {
	i, ok := c[field]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// ParseRows converts data rows into records using a resolved column index.
// Rows that fail validation are counted and skipped.
func ParseRows(idx columnIndex, rows [][]string) ([]model.Record, int) {
	records := make([]model.Record, 0, len(rows))
	skipped := 0
	for n, row := range rows {
		rec, err := parseRow(idx, row)
		if err != nil {
			skipped++
			zap.L().Debug("skipping malformed row", zap.Int("row", n+1), zap.Error(err))
			continue
		}
		records = append(records, rec)
	}
	return records, skipped
}

func parseRow(idx columnIndex, row []string) (model.Record, error) {
	year, err := strconv.Atoi(idx.cell(row, "year"))
	if err != nil {
		return model.Record{}, eris.Wrap(err, "ingest: parse year")
	}

	minMerit, err := parsePercent(idx.cell(row, "min_merit"))
	if err != nil {
		return model.Record{}, eris.Wrap(err, "ingest: parse min merit")
	}

	maxMerit := minMerit
	if raw := idx.cell(row, "max_merit"); raw != "" {
		maxMerit, err = parsePercent(raw)
		if err != nil {
			return model.Record{}, eris.Wrap(err, "ingest: parse max merit")
		}
	}

	rec := model.Record{
		University: idx.cell(row, "university"),
		Campus:     idx.cell(row, "campus"),
		Department: idx.cell(row, "department"),
		Program:    idx.cell(row, "program"),
		Year:       year,
		MinMerit:   minMerit,
		MaxMerit:   maxMerit,
	}
	rec = rec.Trimmed()
	if !rec.Valid() {
		return model.Record{}, eris.New("ingest: incomplete record")
	}
	return rec, nil
}

func parsePercent(raw string) (float64, error) {
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "%")
	return strconv.ParseFloat(strings.TrimSpace(raw), 64)
}
