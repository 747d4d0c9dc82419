package main

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Waseem-Khan-Dawar/University-ChatBot/internal/ingest"
	"github.com/Waseem-Khan-Dawar/University-ChatBot/internal/model"
)

var (
	importTruncate bool
	importCharset  string
	importSheet    string
)

var importCmd = &cobra.Command{
	Use:   "import file...",
	Short: "Import merit records from CSV or XLSX files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		// Parse files concurrently; the store write stays single-stream.
		var mu sync.Mutex
		var records []model.Record
		totalSkipped := 0

		g, _ := errgroup.WithContext(ctx)
		g.SetLimit(4)
		for _, path := range args {
			g.Go(func() error {
				recs, skipped, err := readFile(path)
				if err != nil {
					return err
				}
				mu.Lock()
				records = append(records, recs...)
				totalSkipped += skipped
				mu.Unlock()
				if skipped > 0 {
					zap.L().Warn("skipped malformed rows", zap.String("file", path), zap.Int("skipped", skipped))
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		if importTruncate {
			if err := st.Truncate(ctx); err != nil {
				return eris.Wrap(err, "truncate store")
			}
		}

		inserted, err := st.InsertRecords(ctx, records)
		if err != nil {
			return eris.Wrap(err, "insert records")
		}

		zap.L().Info("import complete",
			zap.Int64("inserted", inserted),
			zap.Int("skipped", totalSkipped),
			zap.Int("files", len(args)),
		)
		return nil
	},
}

// readFile dispatches on extension.
func readFile(path string) ([]model.Record, int, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ingest.ReadCSV(path, ingest.CSVOptions{Charset: importCharset})
	case ".xlsx":
		return ingest.ReadXLSX(path, ingest.XLSXOptions{SheetName: importSheet})
	default:
		return nil, 0, eris.Errorf("unsupported file type %q", filepath.Ext(path))
	}
}

func init() {
	importCmd.Flags().BoolVar(&importTruncate, "truncate", false, "replace the existing dataset")
	importCmd.Flags().StringVar(&importCharset, "charset", "", "CSV source encoding (default UTF-8)")
	importCmd.Flags().StringVar(&importSheet, "sheet", "", "XLSX sheet name (default first sheet)")
	rootCmd.AddCommand(importCmd)
}
