package archivecrypt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Row is one storage row handed to a rotation sweep: its primary key and the
// current stored values of the encrypted columns. The sweep never learns
// table or column semantics beyond the whitelist it was given.
type Row struct {
	ID     string
	Values map[string]string
}

// RowStore is implemented by the repository layer to feed a rotation sweep.
// FetchBatch returns up to limit rows with IDs strictly after afterID, in a
// stable ID order; an empty slice ends the sweep. SaveValues persists the
// re-encrypted values for one row.
type RowStore interface {
	FetchBatch(ctx context.Context, afterID string, limit int) ([]Row, error)
	SaveValues(ctx context.Context, id string, values map[string]string) error
}

// SweepReport summarizes a completed sweep.
type SweepReport struct {
	Rows    int  `json:"rows"`
	Values  int  `json:"values"`
	Resumed bool `json:"resumed"`
}

// sweepJournal is the on-disk progress record. It is written after every
// persisted row so that a crashed or cancelled sweep can resume after the
// last committed row instead of re-applying ReEncryptValue to rows that are
// already under the new key.
type sweepJournal struct {
	LastRowID string `json:"last_row_id"`
	Rows      int    `json:"rows"`
	Values    int    `json:"values"`
}

const defaultBatchSize = 100

// Sweeper migrates every encrypted column of every row from an old master
// key to a new one. It only rewrites rows; committing the new key into the
// live Session (and persisting the new salt) is the caller's final step,
// taken only after Run returns without error. A sweep that fails partway
// leaves the old session active so reads keep working.
type Sweeper struct {
	store       RowStore
	fields      []string
	oldKey      []byte
	newKey      []byte
	batchSize   int
	journalPath string
	logger      *slog.Logger
}

// SweeperOption configures a Sweeper.
type SweeperOption func(*Sweeper)

// WithBatchSize sets how many rows are fetched per store round-trip.
func WithBatchSize(n int) SweeperOption {
	return func(sw *Sweeper) {
		if n > 0 {
			sw.batchSize = n
		}
	}
}

// WithJournal sets the progress-journal path. Without a journal the sweep
// still works but always restarts from the first row.
func WithJournal(path string) SweeperOption {
	return func(sw *Sweeper) {
		sw.journalPath = path
	}
}

// WithSweeperLogger sets the progress logger. Nil loggers are ignored.
func WithSweeperLogger(logger *slog.Logger) SweeperOption {
	return func(sw *Sweeper) {
		if logger != nil {
			sw.logger = logger
		}
	}
}

// NewSweeper creates a rotation sweep over the named columns.
func NewSweeper(store RowStore, fields []string, oldKey, newKey []byte, opts ...SweeperOption) (*Sweeper, error) {
	if store == nil {
		return nil, errors.New("archivecrypt: nil row store")
	}
	if len(oldKey) != KeySize || len(newKey) != KeySize {
		return nil, ErrInvalidKeySize
	}
	sw := &Sweeper{
		store:     store,
		fields:    fields,
		oldKey:    oldKey,
		newKey:    newKey,
		batchSize: defaultBatchSize,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(sw)
	}
	return sw, nil
}

// Run executes the sweep. It is safe to call again after a failure: progress
// resumes from the journal, so already-migrated rows are not touched again.
// On success the journal is removed.
func (sw *Sweeper) Run(ctx context.Context) (SweepReport, error) {
	var report SweepReport

	journal, err := sw.loadJournal()
	if err != nil {
		return report, err
	}
	if journal.LastRowID != "" {
		report.Resumed = true
		report.Rows = journal.Rows
		report.Values = journal.Values
		sw.logger.Info("resuming rotation sweep",
			"after_row", journal.LastRowID,
			"rows_done", journal.Rows,
		)
	}

	afterID := journal.LastRowID
	for {
		if err := ctx.Err(); err != nil {
			return report, errors.Join(ErrSweepIncomplete, err)
		}

		batch, err := sw.store.FetchBatch(ctx, afterID, sw.batchSize)
		if err != nil {
			return report, errors.Join(ErrSweepIncomplete, err)
		}
		if len(batch) == 0 {
			break
		}

		for _, row := range batch {
			migrated, n, err := sw.migrateRow(row)
			if err != nil {
				return report, errors.Join(ErrSweepIncomplete,
					fmt.Errorf("row %s: %w", row.ID, err))
			}
			if n > 0 {
				if err := sw.store.SaveValues(ctx, row.ID, migrated); err != nil {
					return report, errors.Join(ErrSweepIncomplete,
						fmt.Errorf("row %s: %w", row.ID, err))
				}
			}

			report.Rows++
			report.Values += n
			journal.LastRowID = row.ID
			journal.Rows = report.Rows
			journal.Values = report.Values
			if err := sw.saveJournal(journal); err != nil {
				return report, errors.Join(ErrSweepIncomplete, err)
			}
			afterID = row.ID
		}

		sw.logger.Info("rotation sweep progress",
			"rows", report.Rows,
			"values", report.Values,
		)
	}

	sw.removeJournal()
	sw.logger.Info("rotation sweep complete",
		"rows", report.Rows,
		"values", report.Values,
	)
	return report, nil
}

// migrateRow re-encrypts the whitelisted columns of one row. Columns absent
// from the row or holding the empty value are skipped. Returns the changed
// values and how many were migrated.
func (sw *Sweeper) migrateRow(row Row) (map[string]string, int, error) {
	migrated := make(map[string]string, len(sw.fields))
	count := 0
	for _, name := range sw.fields {
		value, ok := row.Values[name]
		if !ok || value == "" {
			continue
		}
		next, err := ReEncryptValue(value, sw.oldKey, sw.newKey)
		if err != nil {
			return nil, 0, fmt.Errorf("field %s: %w", name, err)
		}
		migrated[name] = next
		count++
	}
	return migrated, count, nil
}

func (sw *Sweeper) loadJournal() (sweepJournal, error) {
	var journal sweepJournal
	if sw.journalPath == "" {
		return journal, nil
	}
	data, err := os.ReadFile(sw.journalPath)
	if errors.Is(err, os.ErrNotExist) {
		return journal, nil
	}
	if err != nil {
		return journal, err
	}
	if err := json.Unmarshal(data, &journal); err != nil {
		return sweepJournal{}, fmt.Errorf("archivecrypt: corrupt sweep journal %s: %w", sw.journalPath, err)
	}
	return journal, nil
}

// saveJournal writes the journal atomically via rename so a crash mid-write
// cannot leave a torn progress record.
func (sw *Sweeper) saveJournal(journal sweepJournal) error {
	if sw.journalPath == "" {
		return nil
	}
	data, err := json.Marshal(journal)
	if err != nil {
		return err
	}
	tmp := sw.journalPath + ".tmp"
	if err := os.MkdirAll(filepath.Dir(sw.journalPath), 0o700); err != nil {
		return err
	}
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, sw.journalPath)
}

func (sw *Sweeper) removeJournal() {
	if sw.journalPath == "" {
		return
	}
	if err := os.Remove(sw.journalPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		sw.logger.Warn("failed to remove sweep journal", "path", sw.journalPath, "error", err)
	}
}
