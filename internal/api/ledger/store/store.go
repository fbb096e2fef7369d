// Package store provides the tabular grid backing the order ledger.
// The contract is the spreadsheet surface itself (range read, range append,
// range update), so a keyed store can replace the sheet later without
// touching the ledger service.
package store

import "context"

// SheetStore is the addressable-grid contract of the tabular store.
// Ranges use A1 notation including the sheet title, e.g. "Orders!A2:J".
// All cells are strings; the ledger owns the row encoding.
type SheetStore interface {
	// ReadRange returns the populated rows of the range. Trailing empty
	// rows are omitted, matching spreadsheet value-range semantics.
	ReadRange(ctx context.Context, rangeA1 string) ([][]string, error)

	// AppendRow appends one row after the last populated row of the
	// range's table. The store serializes concurrent appends.
	AppendRow(ctx context.Context, rangeA1 string, row []string) error

	// UpdateRange overwrites the cells of the range with the given rows.
	UpdateRange(ctx context.Context, rangeA1 string, rows [][]string) error

	// EnsureSheet creates the named sheet with a header row when it does
	// not exist yet. Called once at startup.
	EnsureSheet(ctx context.Context, title string, headers []string) error
}
