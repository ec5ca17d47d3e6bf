package cavern

import (
	"github.com/bodgit/minerdata/attribute"
	"github.com/bodgit/minerdata/record"
)

const (
	// Columns is the width of the layout in cells
	Columns = 32
	// Rows is the height of the layout in cells
	Rows = 16
	// Cells is the total number of cells
	Cells = Columns * Rows
	// LayoutSizeBytes is the size of the layout field, one byte per cell
	LayoutSizeBytes = Cells
)

// Layout is the grid of background cell attributes in row-major order.
type Layout [Cells]attribute.Attribute

// DecodeLayout decodes a layout from b which must be exactly
// LayoutSizeBytes long.
func DecodeLayout(b []byte) (Layout, error) {
	var l Layout
	if err := record.CheckSize("layout", LayoutSizeBytes, b); err != nil {
		return l, err
	}
	for i, v := range b {
		l[i] = attribute.Decode(v)
	}
	return l, nil
}

// At returns the attribute of the cell at the given column and row.
func (l *Layout) At(col, row int) attribute.Attribute {
	return l[row*Columns+col]
}

// Bytes re-encodes the layout.
func (l *Layout) Bytes() []byte {
	b := make([]byte, len(l))
	for i, a := range l {
		b[i] = a.Byte()
	}
	return b
}
