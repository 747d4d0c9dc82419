package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/Waseem-Khan-Dawar/University-ChatBot/internal/model"
)

// CSVOptions configures CSV parsing.
type CSVOptions struct {
	// Charset names a source encoding ("windows-1252", "latin1"). Empty
	// means UTF-8.
	Charset string
	// Comma overrides the field separator. Zero means ','.
	Comma rune
}

// ReadCSV loads merit records from a CSV file. The first row must be a
// header; malformed data rows are skipped and counted.
func ReadCSV(path string, opts CSVOptions) ([]model.Record, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, eris.Wrap(err, fmt.Sprintf("ingest: open csv %s", path))
	}
	defer f.Close() //nolint:errcheck

	return readCSV(f, opts)
}

func readCSV(r io.Reader, opts CSVOptions) ([]model.Record, int, error) {
	if opts.Charset != "" {
		enc, err := htmlindex.Get(opts.Charset)
		if err != nil {
			return nil, 0, eris.Wrapf(err, "ingest: unsupported charset %q", opts.Charset)
		}
		r = enc.NewDecoder().Reader(r)
	}

	reader := csv.NewReader(r)
	if opts.Comma != 0 {
		reader.Comma = opts.Comma
	}
	// Exports sometimes have ragged rows; length checks happen per field.
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, 0, eris.Wrap(err, "ingest: read csv")
	}
	if len(rows) < 2 {
		return nil, 0, nil // header only or empty
	}

	idx, err := mapHeaders(rows[0])
	if err != nil {
		return nil, 0, err
	}

	records, skipped := ParseRows(idx, rows[1:])
	return records, skipped, nil
}
