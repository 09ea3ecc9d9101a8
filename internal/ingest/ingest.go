// Package ingest drives a raw sheet through field resolution,
// normalization, and validation, producing the canonical record set the
// rest of the system trusts. Malformed rows are dropped and reported
// individually; only structural problems (missing required columns, zero
// usable rows) fail the run as a whole.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vbastos/deskparse/internal/fields"
	"github.com/vbastos/deskparse/internal/logging"
	"github.com/vbastos/deskparse/internal/normalize"
	"github.com/vbastos/deskparse/internal/sheet"
	"github.com/vbastos/deskparse/pkg/models"
)

var (
	// ErrNoRows means the sheet had a header but zero data rows. Kept
	// distinct from ErrNoValidRows so the user is pointed at an empty
	// file rather than a column-mapping problem.
	ErrNoRows = errors.New("sheet has no data rows")

	// ErrNoValidRows means every data row failed validation.
	ErrNoValidRows = errors.New("no valid rows")
)

// defaultProgressInterval is how many rows are processed between progress
// callbacks and cancellation checks. A tuning knob, not a correctness
// requirement.
const defaultProgressInterval = 100

// ProgressFunc receives a monotonically increasing completion percentage
// (0-100). It is a side channel for UI feedback and may be nil.
type ProgressFunc func(percent int)

// Options tunes an ingestion run.
type Options struct {
	// Progress, when non-nil, is invoked periodically with the completion
	// percentage.
	Progress ProgressFunc

	// ProgressInterval overrides how many rows are processed between
	// progress callbacks. Zero means the default.
	ProgressInterval int
}

// Result is the published outcome of a completed run. Nothing is visible
// to callers until the whole run finishes, so an abandoned ingestion
// leaves no partial state behind.
type Result struct {
	// Records holds the validated rows in input order.
	Records []models.CanonicalRecord

	// Errors holds one entry per row-level violation.
	Errors []models.ValidationError

	// TotalRows is the number of data rows examined.
	TotalRows int
}

// Ingest validates and normalizes every data row of the table for the
// given record kind. The header row must contain, under some alias, every
// required column; otherwise the run fails before any row work with an
// error naming the missing canonical fields.
func Ingest(ctx context.Context, table *sheet.Table, kind models.RecordKind, opts Options) (*Result, error) {
	if table == nil {
		return nil, errors.New("table is required")
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown record kind %q", kind)
	}

	if missing := fields.MissingColumns(table.Headers, kind); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, field := range missing {
			names[i] = string(field)
		}
		return nil, fmt.Errorf("sheet is missing required columns: %s", strings.Join(names, ", "))
	}

	if len(table.Rows) == 0 {
		return nil, ErrNoRows
	}

	interval := opts.ProgressInterval
	if interval <= 0 {
		interval = defaultProgressInterval
	}

	logging.Info("starting ingestion",
		"kind", kind,
		"rows", len(table.Rows))

	result := &Result{TotalRows: len(table.Rows)}
	lastPercent := -1

	for i, cells := range table.Rows {
		// Rows are numbered as the spreadsheet shows them: 1-based with
		// the header on row 1.
		rowNumber := i + 2

		if i%interval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			lastPercent = reportProgress(opts.Progress, i, len(table.Rows), lastPercent)
		}

		raw := rawRow(table.Headers, cells)
		if len(raw) == 0 {
			result.Errors = append(result.Errors, models.ValidationError{
				Row:    rowNumber,
				Field:  fields.FieldAll,
				Reason: "row is empty",
			})
			continue
		}

		record, rowErrors := buildRecord(raw, rowNumber, kind)
		if len(rowErrors) > 0 {
			result.Errors = append(result.Errors, rowErrors...)
			continue
		}

		result.Records = append(result.Records, record)
	}

	reportProgress(opts.Progress, len(table.Rows), len(table.Rows), lastPercent)

	if len(result.Records) == 0 {
		return nil, fmt.Errorf("%w: all %d rows failed validation", ErrNoValidRows, result.TotalRows)
	}

	logging.Info("ingestion complete",
		"kind", kind,
		"valid_rows", len(result.Records),
		"invalid_rows", result.TotalRows-len(result.Records))

	return result, nil
}

// rawRow builds the header-to-value mapping for one row, dropping blank
// cells so a structurally empty row resolves to an empty map.
func rawRow(headers []string, cells []string) map[string]string {
	row := make(map[string]string, len(headers))
	for i, header := range headers {
		if header == "" || i >= len(cells) {
			continue
		}
		if value := strings.TrimSpace(cells[i]); value != "" {
			row[header] = value
		}
	}
	return row
}

// buildRecord resolves, normalizes, and validates a single row. It always
// returns the best-effort record; the row is only emitted by the caller
// when rowErrors is empty.
func buildRecord(raw map[string]string, rowNumber int, kind models.RecordKind) (models.CanonicalRecord, []models.ValidationError) {
	var rowErrors []models.ValidationError

	addError := func(field fields.Field, value, reason string) {
		rowErrors = append(rowErrors, models.ValidationError{
			Row:    rowNumber,
			Field:  string(field),
			Value:  value,
			Reason: reason,
		})
	}

	record := models.CanonicalRecord{
		Number:           fields.Resolve(raw, fields.FieldNumber),
		ShortDescription: fields.Resolve(raw, fields.FieldShortDescription),
		Description:      fields.Resolve(raw, fields.FieldDescription),
		AssignmentGroup:  normalize.CanonicalLocation(fields.Resolve(raw, fields.FieldAssignmentGroup)),
		AssignedTo:       fields.Resolve(raw, fields.FieldAssignedTo),
		RequestedFor:     fields.Resolve(raw, fields.FieldRequestedFor),
		Notes:            fields.Resolve(raw, fields.FieldNotes),
	}

	if record.Number == "" {
		addError(fields.FieldNumber, "", "missing required field")
	}
	if record.ShortDescription == "" {
		addError(fields.FieldShortDescription, "", "missing required field")
	}
	if kind == models.KindRequests && record.RequestedFor == "" {
		addError(fields.FieldRequestedFor, "", "missing required field")
	}

	rawOpened := fields.Resolve(raw, fields.FieldOpened)
	if rawOpened == "" {
		addError(fields.FieldOpened, "", "missing required field")
	} else if opened, ok := normalize.ParseDate(rawOpened); ok {
		record.Opened = opened
	} else {
		addError(fields.FieldOpened, rawOpened, "unparseable date")
	}

	// Updated is optional; an unparseable value stays zero rather than
	// failing the row.
	if rawUpdated := fields.Resolve(raw, fields.FieldUpdated); rawUpdated != "" {
		if updated, ok := normalize.ParseDate(rawUpdated); ok {
			record.Updated = updated
		} else {
			logging.Debug("ignoring unparseable updated value",
				"row", rowNumber,
				"value", rawUpdated)
		}
	}

	// State is strict: the export always labels lifecycle, so a value
	// outside every known keyword set points at a mapping problem.
	rawState := fields.Resolve(raw, fields.FieldState)
	if rawState == "" {
		addError(fields.FieldState, "", "missing required field")
	} else if state, ok := normalize.MatchState(rawState); ok {
		record.State = state
	} else {
		addError(fields.FieldState, rawState, "unrecognized state")
	}

	// Priority is soft: a best-effort tier beats rejecting the row.
	record.Priority, _ = normalize.MatchPriority(fields.Resolve(raw, fields.FieldPriority), kind)

	return record, rowErrors
}

// reportProgress fires the callback with the current percentage, keeping
// the reported value monotone. Returns the last reported percentage.
func reportProgress(fn ProgressFunc, done, total, lastPercent int) int {
	if fn == nil || total == 0 {
		return lastPercent
	}
	percent := done * 100 / total
	if percent <= lastPercent {
		return lastPercent
	}
	fn(percent)
	return percent
}

// IngestFile is a convenience wrapper reading and ingesting a spreadsheet
// in one call, timing the run.
func IngestFile(ctx context.Context, filename string, kind models.RecordKind, opts Options) (*Result, error) {
	start := time.Now()

	table, err := sheet.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}

	result, err := Ingest(ctx, table, kind, opts)
	if err != nil {
		return nil, err
	}

	logging.Debug("ingested file",
		"file", filename,
		"duration", time.Since(start))

	return result, nil
}
