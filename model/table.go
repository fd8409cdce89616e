package model

// CellSpan is a table cell placeholder indicating merge-with-neighbor. A
// span marker never produces an output cell of its own.
type CellSpan int

const (
	// ColumnSpan merges the slot with the nearest non-marker cell to its
	// left in the same row.
	ColumnSpan CellSpan = iota
	// RowSpan merges the slot with the nearest non-marker cell above it in
	// the same column.
	RowSpan
)

func (s CellSpan) cellElement() {}

func (s CellSpan) String() string {
	switch s {
	case ColumnSpan:
		return "ColumnSpan"
	case RowSpan:
		return "RowSpan"
	default:
		return "CellSpan"
	}
}

// ElementaryTable is a rectangular grid of cells. The header and body of a
// [Table] are each one elementary table so they can be rendered and styled
// independently.
type ElementaryTable struct {
	Rows [][]Cell
}

// CellAt returns the cell at the given position (0-indexed), or nil when
// the position is out of bounds. An absent cell is never an error.
func (t ElementaryTable) CellAt(row, col int) Cell {
	if row < 0 || row >= len(t.Rows) {
		return nil
	}
	if col < 0 || col >= len(t.Rows[row]) {
		return nil
	}
	return t.Rows[row][col]
}

// ColumnSpanAt returns the number of columns the cell at (row, col)
// occupies: one plus the count of consecutive [ColumnSpan] markers
// immediately to its right.
func (t ElementaryTable) ColumnSpanAt(row, col int) int {
	span := 1
	for {
		s, ok := t.CellAt(row, col+span).(CellSpan)
		if !ok || s != ColumnSpan {
			return span
		}
		span++
	}
}

// RowSpanAt returns the number of rows the cell at (row, col) occupies:
// one plus the count of consecutive [RowSpan] markers immediately below it.
func (t ElementaryTable) RowSpanAt(row, col int) int {
	span := 1
	for {
		s, ok := t.CellAt(row+span, col).(CellSpan)
		if !ok || s != RowSpan {
			return span
		}
		span++
	}
}

// ColumnCount returns the width of the widest row.
func (t ElementaryTable) ColumnCount() int {
	max := 0
	for _, row := range t.Rows {
		if len(row) > max {
			max = len(row)
		}
	}
	return max
}

// Table is a grid with separately rendered header and body rows.
type Table struct {
	Head ElementaryTable
	Body ElementaryTable
}

func (t Table) blockElement() {}

// FlatTable builds a [Table] from one row of headings and plain data rows,
// for callers that need no span machinery.
func FlatTable(headings []Cell, rows [][]Cell) Table {
	var head ElementaryTable
	if len(headings) > 0 {
		head.Rows = [][]Cell{headings}
	}
	return Table{
		Head: head,
		Body: ElementaryTable{Rows: rows},
	}
}
