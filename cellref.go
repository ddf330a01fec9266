package xl2html

import (
	"fmt"
	"strings"
)

// CellRef identifies a single grid cell. Rows and columns are 1-based,
// matching the coordinate model used throughout the render pipeline.
type CellRef struct {
	Sheet string // sheet name (empty = current sheet)
	Row   int
	Col   int
}

// NewCellRef creates a CellRef with explicit sheet, column and row.
func NewCellRef(sheet string, col, row int) CellRef {
	return CellRef{Sheet: sheet, Col: col, Row: row}
}

// ParseCellRef parses a cell reference string like "A1", "Sheet1!B5", or "$A$1".
func ParseCellRef(s string) (CellRef, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return CellRef{}, fmt.Errorf("empty cell reference")
	}

	var sheet string
	cellPart := s

	if idx := strings.LastIndex(s, "!"); idx >= 0 {
		sheet = strings.Trim(s[:idx], "'")
		cellPart = s[idx+1:]
	}

	cellPart = strings.ReplaceAll(cellPart, "$", "")
	if cellPart == "" {
		return CellRef{}, fmt.Errorf("invalid cell reference: %q", s)
	}

	col, row, err := parseCellName(cellPart)
	if err != nil {
		return CellRef{}, fmt.Errorf("invalid cell reference %q: %w", s, err)
	}

	return CellRef{Sheet: sheet, Col: col, Row: row}, nil
}

// parseCellName parses "A1" into col=1, row=1.
func parseCellName(name string) (col, row int, err error) {
	if len(name) == 0 {
		return 0, 0, fmt.Errorf("empty cell name")
	}

	i := 0
	for i < len(name) && isAlpha(name[i]) {
		i++
	}
	if i == 0 || i == len(name) {
		return 0, 0, fmt.Errorf("invalid cell name: %q", name)
	}

	col, err = NameToCol(name[:i])
	if err != nil {
		return 0, 0, err
	}

	rowNum := 0
	for _, ch := range name[i:] {
		if ch < '0' || ch > '9' {
			return 0, 0, fmt.Errorf("invalid row in cell name: %q", name)
		}
		rowNum = rowNum*10 + int(ch-'0')
	}
	if rowNum < 1 {
		return 0, 0, fmt.Errorf("invalid row number in cell name: %q", name)
	}

	return col, rowNum, nil
}

func isAlpha(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

// String formats the CellRef as "Sheet1!A1" or "A1" if no sheet.
func (c CellRef) String() string {
	name := c.CellName()
	if c.Sheet != "" {
		return c.Sheet + "!" + name
	}
	return name
}

// CellName returns just the cell part like "A1" without the sheet name.
func (c CellRef) CellName() string {
	return ColToName(c.Col) + fmt.Sprintf("%d", c.Row)
}

// Key returns the "col:row" form used to index image and cell lookups.
func (c CellRef) Key() string {
	return fmt.Sprintf("%d:%d", c.Col, c.Row)
}

// ColToName converts a 1-based column index to a column name.
// 1→"A", 26→"Z", 27→"AA"
func ColToName(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}

// NameToCol converts a column name to a 1-based column index.
// "A"→1, "Z"→26, "AA"→27
func NameToCol(name string) (int, error) {
	name = strings.ToUpper(name)
	if name == "" {
		return 0, fmt.Errorf("empty column name")
	}
	col := 0
	for _, ch := range name {
		if ch < 'A' || ch > 'Z' {
			return 0, fmt.Errorf("invalid column name: %q", name)
		}
		col = col*26 + int(ch-'A') + 1
	}
	return col, nil
}

// AreaRef is a rectangular cell range defined by two corner references.
type AreaRef struct {
	First CellRef
	Last  CellRef
}

// ParseAreaRef parses an area reference string like "A1:C5" or "Sheet1!A1:C5".
// A single cell reference is accepted as a 1x1 area.
func ParseAreaRef(s string) (AreaRef, error) {
	s = strings.TrimSpace(s)
	parts := strings.SplitN(s, ":", 2)

	first, err := ParseCellRef(parts[0])
	if err != nil {
		return AreaRef{}, fmt.Errorf("invalid area reference %q: %w", s, err)
	}
	if len(parts) == 1 {
		return AreaRef{First: first, Last: first}, nil
	}

	last, err := ParseCellRef(parts[1])
	if err != nil {
		return AreaRef{}, fmt.Errorf("invalid area reference %q: %w", s, err)
	}
	// Inherit sheet name from the first cell if the last doesn't carry one.
	if last.Sheet == "" && first.Sheet != "" {
		last.Sheet = first.Sheet
	}

	return AreaRef{First: first, Last: last}, nil
}

// ParseSqref parses a space-separated list of ranges, the form used by
// worksheet sqref attributes ("A1:A5 C2:C4").
func ParseSqref(s string) ([]AreaRef, error) {
	var areas []AreaRef
	for _, part := range strings.Fields(s) {
		area, err := ParseAreaRef(part)
		if err != nil {
			return nil, err
		}
		areas = append(areas, area)
	}
	return areas, nil
}

// String formats the AreaRef as "Sheet1!A1:C5" or "A1:C5".
func (a AreaRef) String() string {
	if a.First.Sheet != "" && a.First.Sheet == a.Last.Sheet {
		return a.First.Sheet + "!" + a.First.CellName() + ":" + a.Last.CellName()
	}
	return a.First.String() + ":" + a.Last.String()
}

// Width returns the number of columns covered by the area.
func (a AreaRef) Width() int { return a.Last.Col - a.First.Col + 1 }

// Height returns the number of rows covered by the area.
func (a AreaRef) Height() int { return a.Last.Row - a.First.Row + 1 }

// Contains reports whether the cell lies within this area.
func (a AreaRef) Contains(ref CellRef) bool {
	if a.First.Sheet != "" && ref.Sheet != "" && a.First.Sheet != ref.Sheet {
		return false
	}
	return ref.Row >= a.First.Row && ref.Row <= a.Last.Row &&
		ref.Col >= a.First.Col && ref.Col <= a.Last.Col
}

// Cells returns every member cell of the area in row-major order.
func (a AreaRef) Cells() []CellRef {
	cells := make([]CellRef, 0, a.Width()*a.Height())
	for row := a.First.Row; row <= a.Last.Row; row++ {
		for col := a.First.Col; col <= a.Last.Col; col++ {
			cells = append(cells, CellRef{Sheet: a.First.Sheet, Row: row, Col: col})
		}
	}
	return cells
}

// ParseCellLocation parses an in-document cell link of the forms
// "#Sheet1.C1", "#Sheet1!C1" or "#C1". The sheet part is optional.
func ParseCellLocation(s string) (CellRef, error) {
	if !strings.HasPrefix(s, "#") {
		return CellRef{}, fmt.Errorf("invalid cell location %q: missing '#'", s)
	}
	body := strings.ReplaceAll(s[1:], ".", "!")
	return ParseCellRef(body)
}
