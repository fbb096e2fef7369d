package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// MemoryStore is an in-memory SheetStore. It backs tests and
// credential-less development runs; the grid semantics mirror the
// spreadsheet surface, including append serialization.
type MemoryStore struct {
	mu     sync.Mutex
	sheets map[string][][]string
}

// NewMemoryStore creates an empty in-memory grid.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sheets: make(map[string][][]string)}
}

// gridRange is a parsed A1 range. Rows and columns are 1-based;
// zero means unbounded.
type gridRange struct {
	sheet    string
	startCol int
	startRow int
	endCol   int
	endRow   int
}

// parseA1 parses ranges of the shapes used by the ledger:
// "Sheet!A1", "Sheet!A2:J", "Sheet!A2:A", "Sheet!A5:J5", "Sheet!A:J".
func parseA1(rangeA1 string) (gridRange, error) {
	parts := strings.SplitN(rangeA1, "!", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return gridRange{}, fmt.Errorf("invalid range %q", rangeA1)
	}
	r := gridRange{sheet: parts[0]}

	cells := strings.SplitN(parts[1], ":", 2)
	var err error
	r.startCol, r.startRow, err = parseCell(cells[0])
	if err != nil {
		return gridRange{}, fmt.Errorf("invalid range %q: %w", rangeA1, err)
	}
	if len(cells) == 1 {
		r.endCol, r.endRow = r.startCol, r.startRow
		return r, nil
	}
	r.endCol, r.endRow, err = parseCell(cells[1])
	if err != nil {
		return gridRange{}, fmt.Errorf("invalid range %q: %w", rangeA1, err)
	}
	return r, nil
}

// parseCell splits a cell reference into column and row parts,
// either of which may be absent.
func parseCell(cell string) (col int, row int, err error) {
	i := 0
	for i < len(cell) && cell[i] >= 'A' && cell[i] <= 'Z' {
		col = col*26 + int(cell[i]-'A'+1)
		i++
	}
	if i < len(cell) {
		row, err = strconv.Atoi(cell[i:])
		if err != nil || row < 1 {
			return 0, 0, fmt.Errorf("invalid cell %q", cell)
		}
	}
	if col == 0 && row == 0 {
		return 0, 0, fmt.Errorf("invalid cell %q", cell)
	}
	return col, row, nil
}

// ReadRange returns the populated rows of the range.
func (m *MemoryStore) ReadRange(ctx context.Context, rangeA1 string) ([][]string, error) {
	r, err := parseA1(rangeA1)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	grid, ok := m.sheets[r.sheet]
	if !ok {
		return nil, fmt.Errorf("sheet %q not found", r.sheet)
	}

	startRow := r.startRow
	if startRow == 0 {
		startRow = 1
	}
	endRow := r.endRow
	if endRow == 0 || endRow > len(grid) {
		endRow = len(grid)
	}

	var out [][]string
	for rowIdx := startRow; rowIdx <= endRow; rowIdx++ {
		row := grid[rowIdx-1]
		out = append(out, sliceCols(row, r.startCol, r.endCol))
	}
	// Trim trailing empty rows, matching value-range semantics.
	for len(out) > 0 && rowEmpty(out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	return out, nil
}

// AppendRow appends one row to the sheet under the lock, so concurrent
// appends never interleave.
func (m *MemoryStore) AppendRow(ctx context.Context, rangeA1 string, row []string) error {
	r, err := parseA1(rangeA1)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	grid, ok := m.sheets[r.sheet]
	if !ok {
		return fmt.Errorf("sheet %q not found", r.sheet)
	}
	m.sheets[r.sheet] = append(grid, append([]string(nil), row...))
	return nil
}

// UpdateRange overwrites the cells of the range.
func (m *MemoryStore) UpdateRange(ctx context.Context, rangeA1 string, rows [][]string) error {
	r, err := parseA1(rangeA1)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	grid, ok := m.sheets[r.sheet]
	if !ok {
		return fmt.Errorf("sheet %q not found", r.sheet)
	}

	for i, row := range rows {
		rowIdx := r.startRow + i
		for rowIdx > len(grid) {
			grid = append(grid, nil)
		}
		target := grid[rowIdx-1]
		for j, cell := range row {
			colIdx := r.startCol + j
			for colIdx > len(target) {
				target = append(target, "")
			}
			target[colIdx-1] = cell
		}
		grid[rowIdx-1] = target
	}
	m.sheets[r.sheet] = grid
	return nil
}

// EnsureSheet creates the sheet with its header row when absent.
func (m *MemoryStore) EnsureSheet(ctx context.Context, title string, headers []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sheets[title]; ok {
		return nil
	}
	m.sheets[title] = [][]string{append([]string(nil), headers...)}
	return nil
}

func sliceCols(row []string, startCol, endCol int) []string {
	if startCol == 0 {
		startCol = 1
	}
	if endCol == 0 || endCol > len(row) {
		endCol = len(row)
	}
	if startCol > len(row) {
		return nil
	}
	return append([]string(nil), row[startCol-1:endCol]...)
}

func rowEmpty(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
