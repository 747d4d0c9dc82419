package store

import (
	"context"

	"github.com/Waseem-Khan-Dawar/University-ChatBot/internal/model"
)

// RecordStore defines the persistence interface for the merit dataset.
// The catalog loads the full record sequence once at startup; the import
// command writes it. Nothing in the resolution core touches the store.
type RecordStore interface {
	// Migrate creates the merit_records table if missing.
	Migrate(ctx context.Context) error
	// InsertRecords appends validated records, returning the count inserted.
	InsertRecords(ctx context.Context, records []model.Record) (int64, error)
	// ListRecords returns every record in insertion order.
	ListRecords(ctx context.Context) ([]model.Record, error)
	// Count returns the number of stored records.
	Count(ctx context.Context) (int64, error)
	// Truncate removes all records, for a full re-import.
	Truncate(ctx context.Context) error
	Close() error
}
