package xl2html

import (
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Workbook wraps an excelize file and exposes the document model the render
// pipeline consumes: sheets of cells with resolved formatting primitives,
// dimension records, merge ranges, floating images, data validations and the
// theme palette.
type Workbook struct {
	File *excelize.File

	// ShowFormulas renders "=FORMULA" text for formula cells instead of
	// their computed value.
	ShowFormulas bool

	palette     []string
	formatCache map[int]*CellFormat
}

// NewWorkbook wraps an already opened excelize file.
func NewWorkbook(f *excelize.File) *Workbook {
	return &Workbook{
		File:        f,
		palette:     themePalette(f),
		formatCache: make(map[int]*CellFormat),
	}
}

// Close releases the underlying file.
func (wb *Workbook) Close() error { return wb.File.Close() }

// ThemePalette returns the workbook's canonical theme colors as hex strings,
// one per slot (lt1, dk1, lt2, dk2, accent1..accent6).
func (wb *Workbook) ThemePalette() []string { return wb.palette }

// Cell is one document cell: raw value, display text and formatting.
type Cell struct {
	Row    int // 1-based
	Col    int // 1-based
	Value  string
	Text   string // display text, HTML-escaped, newlines as <br/>
	Format *CellFormat
}

// CellFormat carries the styling primitives of a cell.
type CellFormat struct {
	Border BorderSet
	Fill   FillSpec
	Font   *FontSpec
	Align  AlignSpec
}

// FillSpec is a cell's pattern fill.
type FillSpec struct {
	Pattern    string
	Foreground ColorRef
}

// FontSpec is a cell's font.
type FontSpec struct {
	Size      float64
	Name      string
	Color     ColorRef
	Bold      bool
	Italic    bool
	Underline bool
}

// AlignSpec is a cell's alignment. Empty strings mean default alignment.
type AlignSpec struct {
	Horizontal string
	Vertical   string
}

// RowDim is a row dimension record.
type RowDim struct {
	Height       float64
	CustomHeight bool
	Hidden       bool
}

// ColDim is a column dimension record.
type ColDim struct {
	Width       float64
	CustomWidth bool
	Hidden      bool
}

// FloatingImage is a picture anchored to a cell.
type FloatingImage struct {
	AnchorCol int // 1-based
	AnchorRow int // 1-based
	OffsetX   int // px
	OffsetY   int // px
	ScaleX    float64
	ScaleY    float64
	Data      []byte
	Extension string // ".png", ".jpg", ...
}

// ListValidation is a list-type data validation and the ranges it covers.
type ListValidation struct {
	Areas   []AreaRef
	Formula string
}

// Sheet is the per-sheet document model handed to the grid builder.
type Sheet struct {
	Name        string
	Index       int // 0-based worksheet index
	Palette     []string
	Rows        [][]*Cell // dense grid, row-major
	RowDims     map[int]RowDim
	ColDims     map[int]ColDim
	Merges      []AreaRef
	Images      []FloatingImage
	Validations []ListValidation
	Columns     int

	wb *Workbook
}

// CellAt returns the cell at a 1-based coordinate, or nil when outside the
// populated grid.
func (s *Sheet) CellAt(col, row int) *Cell {
	if row < 1 || row > len(s.Rows) {
		return nil
	}
	cells := s.Rows[row-1]
	if col < 1 || col > len(cells) {
		return nil
	}
	return cells[col-1]
}

// RowDim returns the dimension record for a row, zero-valued when the row
// declares nothing.
func (s *Sheet) RowDim(row int) RowDim { return s.RowDims[row] }

// ColDim returns the dimension record for a column, zero-valued when the
// column declares nothing.
func (s *Sheet) ColDim(col int) ColDim { return s.ColDims[col] }

// MaxCol returns the width of the grid in columns.
func (s *Sheet) MaxCol() int {
	if s.Columns > 0 {
		return s.Columns
	}
	max := 0
	for _, row := range s.Rows {
		if len(row) > max {
			max = len(row)
		}
	}
	return max
}

// HasListValidation reports whether the cell is covered by a list-type data
// validation.
func (s *Sheet) HasListValidation(ref CellRef) bool {
	for _, v := range s.Validations {
		for _, area := range v.Areas {
			if area.Contains(ref) {
				return true
			}
		}
	}
	return false
}

// SheetByName reads the named worksheet. An unknown name is a fatal input
// error.
func (wb *Workbook) SheetByName(name string) (*Sheet, error) {
	idx, err := wb.File.GetSheetIndex(name)
	if err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %q not found", name)
	}
	return wb.readSheet(name, idx)
}

// SheetByIndex reads the worksheet at a 0-based index. An index outside the
// sheet list is a fatal input error.
func (wb *Workbook) SheetByIndex(idx int) (*Sheet, error) {
	sheets := wb.File.GetSheetList()
	if idx < 0 || idx >= len(sheets) {
		return nil, fmt.Errorf("sheet index %d out of range (%d sheets)", idx, len(sheets))
	}
	return wb.readSheet(sheets[idx], idx)
}

// ActiveSheet reads the workbook's active worksheet.
func (wb *Workbook) ActiveSheet() (*Sheet, error) {
	idx := wb.File.GetActiveSheetIndex()
	name := wb.File.GetSheetName(idx)
	if name == "" {
		return nil, fmt.Errorf("workbook has no active sheet")
	}
	for i, s := range wb.File.GetSheetList() {
		if s == name {
			return wb.readSheet(name, i)
		}
	}
	return nil, fmt.Errorf("sheet %q not found", name)
}

const (
	fallbackRowHeight = 15.0
	fallbackColWidth  = 9.140625
)

// readSheet loads the whole worksheet into the document model.
func (wb *Workbook) readSheet(name string, idx int) (*Sheet, error) {
	f := wb.File

	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("read rows from sheet %q: %w", name, err)
	}

	maxRow := len(rows)
	maxCol := 0
	for _, row := range rows {
		if len(row) > maxCol {
			maxCol = len(row)
		}
	}
	// The declared dimension may extend past the populated cells (styled but
	// empty trailing rows/columns).
	if dim, err := f.GetSheetDimension(name); err == nil && dim != "" {
		if area, err := ParseAreaRef(dim); err == nil {
			if area.Last.Row > maxRow {
				maxRow = area.Last.Row
			}
			if area.Last.Col > maxCol {
				maxCol = area.Last.Col
			}
		}
	}
	// Images may be anchored past the populated cells too; their anchor
	// cells must exist in the grid for the images to render.
	if cells, err := f.GetPictureCells(name); err == nil {
		for _, cellName := range cells {
			col, row, err := excelize.CellNameToCoordinates(cellName)
			if err != nil {
				continue
			}
			if row > maxRow {
				maxRow = row
			}
			if col > maxCol {
				maxCol = col
			}
		}
	}

	sheet := &Sheet{
		Name:    name,
		Index:   idx,
		Palette: wb.palette,
		RowDims: make(map[int]RowDim),
		ColDims: make(map[int]ColDim),
		Columns: maxCol,
		wb:      wb,
	}

	defRowHeight := fallbackRowHeight
	defColWidth := fallbackColWidth
	if props, err := f.GetSheetProps(name); err == nil {
		// sheetFormatPr may omit either attribute; excelize then reports a
		// pointer to zero, which is not a usable default.
		if props.DefaultRowHeight != nil && *props.DefaultRowHeight > 0 {
			defRowHeight = *props.DefaultRowHeight
		}
		if props.DefaultColWidth != nil && *props.DefaultColWidth > 0 {
			defColWidth = *props.DefaultColWidth
		}
	}

	for r := 1; r <= maxRow; r++ {
		cells := make([]*Cell, maxCol)
		for c := 1; c <= maxCol; c++ {
			cells[c-1] = wb.readCell(name, rows, c, r)
		}
		sheet.Rows = append(sheet.Rows, cells)

		height, _ := f.GetRowHeight(name, r)
		visible, err := f.GetRowVisible(name, r)
		sheet.RowDims[r] = RowDim{
			Height:       height,
			CustomHeight: math.Abs(height-defRowHeight) > 1e-9,
			Hidden:       err == nil && !visible,
		}
	}

	for c := 1; c <= maxCol; c++ {
		col := ColToName(c)
		width, _ := f.GetColWidth(name, col)
		visible, err := f.GetColVisible(name, col)
		sheet.ColDims[c] = ColDim{
			Width:       width,
			CustomWidth: math.Abs(width-defColWidth) > 1e-9,
			Hidden:      err == nil && !visible,
		}
	}

	merges, err := f.GetMergeCells(name)
	if err != nil {
		return nil, fmt.Errorf("read merge cells from sheet %q: %w", name, err)
	}
	for _, m := range merges {
		area, err := ParseAreaRef(m.GetStartAxis() + ":" + m.GetEndAxis())
		if err != nil {
			continue
		}
		sheet.Merges = append(sheet.Merges, area)
	}

	if err := wb.readImages(sheet); err != nil {
		return nil, err
	}
	wb.readValidations(sheet)

	return sheet, nil
}

// readCell assembles one document cell from the formatted row data plus the
// per-cell raw value, formula and style lookups.
func (wb *Workbook) readCell(sheetName string, rows [][]string, col, row int) *Cell {
	cellName := ColToName(col) + fmt.Sprintf("%d", row)

	formatted := ""
	if row-1 < len(rows) && col-1 < len(rows[row-1]) {
		formatted = rows[row-1][col-1]
	}
	raw, _ := wb.File.GetCellValue(sheetName, cellName, excelize.Options{RawCellValue: true})

	text := formatText(formatted)
	if wb.ShowFormulas {
		if formula, err := wb.File.GetCellFormula(sheetName, cellName); err == nil && formula != "" {
			text = formatText("=" + formula)
		}
	}

	cell := &Cell{Row: row, Col: col, Value: raw, Text: text}
	if styleID, err := wb.File.GetCellStyle(sheetName, cellName); err == nil {
		cell.Format = wb.cellFormat(styleID)
	}
	return cell
}

// formatText escapes display text and converts embedded newlines to <br/>.
// Escaping happens here, on the formatting side: the renderer emits text
// verbatim.
func formatText(s string) string {
	return strings.ReplaceAll(html.EscapeString(s), "\n", "<br/>")
}

func (wb *Workbook) readImages(sheet *Sheet) error {
	cells, err := wb.File.GetPictureCells(sheet.Name)
	if err != nil {
		return nil // drawings are optional; a sheet without them is fine
	}
	for _, cellName := range cells {
		col, row, err := excelize.CellNameToCoordinates(cellName)
		if err != nil {
			continue
		}
		pics, err := wb.File.GetPictures(sheet.Name, cellName)
		if err != nil {
			continue
		}
		for _, pic := range pics {
			img := FloatingImage{
				AnchorCol: col,
				AnchorRow: row,
				Data:      pic.File,
				Extension: pic.Extension,
			}
			if pic.Format != nil {
				img.OffsetX = pic.Format.OffsetX
				img.OffsetY = pic.Format.OffsetY
				img.ScaleX = pic.Format.ScaleX
				img.ScaleY = pic.Format.ScaleY
			}
			sheet.Images = append(sheet.Images, img)
		}
	}
	return nil
}

func (wb *Workbook) readValidations(sheet *Sheet) {
	dvs, err := wb.File.GetDataValidations(sheet.Name)
	if err != nil {
		return
	}
	for _, dv := range dvs {
		if dv == nil || dv.Type != "list" {
			continue
		}
		areas, err := ParseSqref(dv.Sqref)
		if err != nil {
			continue
		}
		sheet.Validations = append(sheet.Validations, ListValidation{
			Areas:   areas,
			Formula: trimFormulaTag(dv.Formula1),
		})
	}
}

// trimFormulaTag strips the optional <formula1> element wrapper some readers
// leave around a validation formula.
func trimFormulaTag(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "<formula1>")
	s = strings.TrimSuffix(s, "</formula1>")
	return strings.TrimSpace(s)
}

// themePaletteSize is the number of addressable theme color slots:
// lt1, dk1, lt2, dk2, accent1..accent6, in theme-index order.
const themePaletteSize = 10

// themePalette extracts the theme colors from the workbook. Every slot
// defaults to white when the theme omits it entirely.
func themePalette(f *excelize.File) []string {
	palette := make([]string, themePaletteSize)
	for i := range palette {
		palette[i] = "FFFFFF"
	}
	if f.Theme == nil {
		return palette
	}
	cs := f.Theme.ThemeElements.ClrScheme
	for i, c := range sliceOf(cs.Lt1, cs.Dk1, cs.Lt2, cs.Dk2,
		cs.Accent1, cs.Accent2, cs.Accent3, cs.Accent4, cs.Accent5, cs.Accent6) {
		if c.SrgbClr != nil && c.SrgbClr.Val != nil {
			palette[i] = *c.SrgbClr.Val
		} else if c.SysClr != nil {
			// System colors carry the last rendered value; the symbolic
			// name ("window", "windowText") is useless on its own.
			if c.SysClr.LastClr != "" {
				palette[i] = c.SysClr.LastClr
			} else if c.SysClr.Val != "" {
				palette[i] = c.SysClr.Val
			}
		}
	}
	return palette
}

// sliceOf collects same-typed values into a slice. The theme scheme's color
// type is unexported upstream, so it cannot be named in a composite literal;
// inference through a type parameter allows ranging over the slots anyway.
func sliceOf[T any](vs ...T) []T { return vs }

// makeColorRef classifies a raw stylesheet color record.
func makeColorRef(auto bool, rgb string, indexed int, theme *int, tint float64) ColorRef {
	switch {
	case theme != nil:
		return ThemeColor(*theme, tint)
	case rgb != "":
		return RGBColor(rgb)
	case auto:
		return AutoColor
	case indexed != 0:
		return IndexedColor(indexed)
	default:
		return ColorRef{}
	}
}

// cellFormat decodes the stylesheet entry behind a style ID into formatting
// primitives. The stylesheet tree is walked directly so theme and indexed
// color records survive with their variant intact.
func (wb *Workbook) cellFormat(styleID int) *CellFormat {
	if cf, ok := wb.formatCache[styleID]; ok {
		return cf
	}

	ss := wb.File.Styles
	if ss == nil || ss.CellXfs == nil || styleID < 0 || styleID >= len(ss.CellXfs.Xf) {
		return nil
	}
	xf := ss.CellXfs.Xf[styleID]
	cf := &CellFormat{}

	if xf.BorderID != nil && ss.Borders != nil && *xf.BorderID >= 0 && *xf.BorderID < len(ss.Borders.Border) {
		if b := ss.Borders.Border[*xf.BorderID]; b != nil {
			// Undeclared edges are nil lines, not empty ones.
			if e := b.Top; e != nil {
				cf.Border.Top.Style = e.Style
				if c := e.Color; c != nil {
					cf.Border.Top.Color = makeColorRef(c.Auto, c.RGB, c.Indexed, c.Theme, c.Tint)
				}
			}
			if e := b.Right; e != nil {
				cf.Border.Right.Style = e.Style
				if c := e.Color; c != nil {
					cf.Border.Right.Color = makeColorRef(c.Auto, c.RGB, c.Indexed, c.Theme, c.Tint)
				}
			}
			if e := b.Bottom; e != nil {
				cf.Border.Bottom.Style = e.Style
				if c := e.Color; c != nil {
					cf.Border.Bottom.Color = makeColorRef(c.Auto, c.RGB, c.Indexed, c.Theme, c.Tint)
				}
			}
			if e := b.Left; e != nil {
				cf.Border.Left.Style = e.Style
				if c := e.Color; c != nil {
					cf.Border.Left.Color = makeColorRef(c.Auto, c.RGB, c.Indexed, c.Theme, c.Tint)
				}
			}
		}
	}

	if xf.FillID != nil && ss.Fills != nil && *xf.FillID >= 0 && *xf.FillID < len(ss.Fills.Fill) {
		if fl := ss.Fills.Fill[*xf.FillID]; fl != nil && fl.PatternFill != nil {
			cf.Fill.Pattern = fl.PatternFill.PatternType
			if c := fl.PatternFill.FgColor; c != nil {
				cf.Fill.Foreground = makeColorRef(c.Auto, c.RGB, c.Indexed, c.Theme, c.Tint)
			}
		}
	}

	if xf.FontID != nil && ss.Fonts != nil && *xf.FontID >= 0 && *xf.FontID < len(ss.Fonts.Font) {
		if fnt := ss.Fonts.Font[*xf.FontID]; fnt != nil {
			spec := &FontSpec{}
			if fnt.Sz != nil && fnt.Sz.Val != nil {
				spec.Size = *fnt.Sz.Val
			}
			if fnt.Name != nil && fnt.Name.Val != nil {
				spec.Name = *fnt.Name.Val
			}
			if c := fnt.Color; c != nil {
				spec.Color = makeColorRef(c.Auto, c.RGB, c.Indexed, c.Theme, c.Tint)
			}
			// Bare <b/> or <u/> elements mean true/single.
			spec.Bold = fnt.B != nil && (fnt.B.Val == nil || *fnt.B.Val)
			spec.Italic = fnt.I != nil && (fnt.I.Val == nil || *fnt.I.Val)
			if fnt.U != nil {
				underline := "single"
				if fnt.U.Val != nil {
					underline = *fnt.U.Val
				}
				spec.Underline = underline != "none"
			}
			cf.Font = spec
		}
	}

	if xf.Alignment != nil {
		cf.Align.Horizontal = xf.Alignment.Horizontal
		cf.Align.Vertical = xf.Alignment.Vertical
	}

	wb.formatCache[styleID] = cf
	return cf
}
