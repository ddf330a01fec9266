package xl2html

import (
	"math"
	"strconv"
)

// Attrs holds HTML attributes for a rendered element. Empty values are
// dropped at serialization time.
type Attrs map[string]string

// GridCell is one emitted cell of the grid model.
type GridCell struct {
	Row             int // 1-based
	Col             int // 1-based
	Value           string
	Text            string // display text, already escaped, newlines as <br/>
	IsListCandidate bool   // cell carries a list data-validation
	Attrs           Attrs
	Style           StyleSet
}

// ColumnSpec describes one column of the grid.
type ColumnSpec struct {
	Index  int
	Hidden bool
	Width  float64 // px
	Style  StyleSet
}

// MergeRegion is a rectangular block of cells fused into one. Only the
// anchor (top-left) cell is emitted; every other member is suppressed.
type MergeRegion struct {
	Anchor  CellRef
	Colspan int
	Rowspan int
	Cells   []*Cell // member document cells in row-major order
}

// Stylesheet is the deduplicated class→StyleSet mapping, kept in
// first-promotion order so repeated renders serialize identically.
type Stylesheet struct {
	names []string
	rules map[string]StyleSet
}

func newStylesheet() *Stylesheet {
	return &Stylesheet{rules: make(map[string]StyleSet)}
}

func (ss *Stylesheet) add(name string, style StyleSet) {
	if _, ok := ss.rules[name]; !ok {
		ss.names = append(ss.names, name)
	}
	ss.rules[name] = style
}

// Names returns the class names in promotion order.
func (ss *Stylesheet) Names() []string { return ss.names }

// Rule returns the StyleSet registered under a class name.
func (ss *Stylesheet) Rule(name string) StyleSet { return ss.rules[name] }

// Len returns the number of shared rules.
func (ss *Stylesheet) Len() int { return len(ss.names) }

// SheetModel is the aggregate handed from the grid builder to the renderer.
type SheetModel struct {
	Title      string
	SheetIndex int
	Border     int // value of the table's border attribute
	Rows       [][]*GridCell
	Cols       []ColumnSpec
	Images     map[string][]ImagePlacement // "col:row" → placements in source order
	RowHeights map[int]float64             // row number → px
	Styles     *Stylesheet
}

const defaultRowHeightPx = 19.0

// buildGrid walks the sheet and produces the ordered grid model, styles
// still inline (deduplication happens afterwards).
func buildGrid(sheet *Sheet) *SheetModel {
	resolver := newStyleResolver(sheet.Palette)
	anchors, suppressed := buildMergeRegions(sheet)

	model := &SheetModel{
		Title:      sheet.Name,
		SheetIndex: sheet.Index,
		Images:     make(map[string][]ImagePlacement),
		RowHeights: make(map[int]float64),
		Styles:     newStylesheet(),
	}

	maxCol := sheet.MaxCol()
	seenData := false

	for ri, row := range sheet.Rows {
		rowNum := ri + 1
		dim := sheet.RowDim(rowNum)

		empty := true
		for _, cell := range row {
			if cell != nil && cell.Value != "" {
				empty = false
				break
			}
		}
		if !empty {
			seenData = true
		}
		if dim.Hidden {
			continue
		}
		// Rows above the first non-empty row are dropped; blank rows after
		// it keep their slot for layout fidelity.
		if empty && !seenData {
			continue
		}

		height := defaultRowHeightPx
		if dim.CustomHeight {
			height = round2(dim.Height)
		}
		model.RowHeights[rowNum] = height

		dataRow := make([]*GridCell, 0, maxCol)
		for col := 1; col <= maxCol; col++ {
			ref := CellRef{Col: col, Row: rowNum}
			if suppressed[ref.Key()] {
				continue
			}

			cell := sheet.CellAt(col, rowNum)
			attrs := Attrs{"id": ref.CellName()}

			region := anchors[ref.Key()]
			if region != nil {
				if region.Colspan > 1 {
					attrs["colspan"] = strconv.Itoa(region.Colspan)
				}
				if region.Rowspan > 1 {
					attrs["rowspan"] = strconv.Itoa(region.Rowspan)
				}
			}

			gc := &GridCell{
				Row:   rowNum,
				Col:   col,
				Attrs: attrs,
			}
			var format *CellFormat
			if cell != nil {
				gc.Value = cell.Value
				gc.Text = cell.Text
				format = cell.Format
			}
			gc.Style = resolver.CellStyles(format, region)
			gc.IsListCandidate = sheet.HasListValidation(ref)
			dataRow = append(dataRow, gc)
		}
		model.Rows = append(model.Rows, dataRow)
	}

	for col := 1; col <= maxCol; col++ {
		dim := sheet.ColDim(col)
		width := 0.89
		if dim.CustomWidth {
			width = round2(dim.Width / 10.0)
		}
		px := round2(96 * width)

		// Width zero keeps the column's slot but collapses its visual space.
		visibility := "visible"
		if dim.CustomWidth && dim.Width == 0 {
			visibility = "collapse"
		}

		model.Cols = append(model.Cols, ColumnSpec{
			Index:  col,
			Hidden: dim.Hidden,
			Width:  px,
			Style: StyleSet{
				"min-width":  fmtFloat(px) + "px",
				"visibility": visibility,
			},
		})
	}

	for _, img := range sheet.Images {
		placement := newImagePlacement(img)
		key := CellRef{Col: placement.Col, Row: placement.Row}.Key()
		model.Images[key] = append(model.Images[key], placement)
	}

	return model
}

// buildMergeRegions computes the merge regions of a sheet. The returned
// anchors map keys the top-left coordinate of each region; suppressed holds
// every non-anchor member coordinate.
func buildMergeRegions(sheet *Sheet) (anchors map[string]*MergeRegion, suppressed map[string]bool) {
	anchors = make(map[string]*MergeRegion)
	suppressed = make(map[string]bool)

	for _, area := range sheet.Merges {
		region := &MergeRegion{
			Anchor:  CellRef{Col: area.First.Col, Row: area.First.Row},
			Colspan: area.Width(),
			Rowspan: area.Height(),
		}
		for _, ref := range area.Cells() {
			member := sheet.CellAt(ref.Col, ref.Row)
			if member != nil {
				region.Cells = append(region.Cells, member)
			}
			key := CellRef{Col: ref.Col, Row: ref.Row}.Key()
			if ref.Col == area.First.Col && ref.Row == area.First.Row {
				continue
			}
			suppressed[key] = true
		}
		anchors[region.Anchor.Key()] = region
	}
	return anchors, suppressed
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
