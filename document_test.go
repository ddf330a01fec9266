package xl2html

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newTestWorkbook(t *testing.T) *Workbook {
	t.Helper()
	f := excelize.NewFile()
	wb := NewWorkbook(f)
	t.Cleanup(func() { wb.Close() })
	return wb
}

func TestThemePalette(t *testing.T) {
	wb := newTestWorkbook(t)
	palette := wb.ThemePalette()
	// Slot order is the theme color index order: lt1, dk1, lt2, dk2, then
	// the accents. lt1/dk1 are system colors resolved via lastClr.
	assert.Equal(t, []string{
		"FFFFFF", "000000", "E7E6E6", "44546A",
		"5B9BD5", "ED7D31", "A5A5A5", "FFC000", "4472C4", "70AD47",
	}, palette)
}

func TestMakeColorRef(t *testing.T) {
	theme := 4
	// A theme reference wins over a parallel RGB value.
	ref := makeColorRef(false, "FF0000", 0, &theme, 0.25)
	assert.Equal(t, ColorTheme, ref.Kind)
	assert.Equal(t, 4, ref.Theme)
	assert.Equal(t, 0.25, ref.Tint)

	ref = makeColorRef(false, "FF336699", 0, nil, 0)
	assert.Equal(t, ColorRGB, ref.Kind)
	assert.Equal(t, "FF336699", ref.RGB)

	ref = makeColorRef(true, "", 0, nil, 0)
	assert.Equal(t, ColorAuto, ref.Kind)

	ref = makeColorRef(false, "", 5, nil, 0)
	assert.Equal(t, ColorIndexed, ref.Kind)
	assert.Equal(t, 5, ref.Indexed)

	assert.True(t, makeColorRef(false, "", 0, nil, 0).IsZero())
}

func TestFormatText(t *testing.T) {
	assert.Equal(t, "a &amp; b", formatText("a & b"))
	assert.Equal(t, "&lt;x&gt;", formatText("<x>"))
	assert.Equal(t, "line1<br/>line2", formatText("line1\nline2"))
	assert.Empty(t, formatText(""))
}

func TestTrimFormulaTag(t *testing.T) {
	assert.Equal(t, `"a,b"`, trimFormulaTag(`<formula1>"a,b"</formula1>`))
	assert.Equal(t, "Sheet2!$A$1:$A$3", trimFormulaTag(" Sheet2!$A$1:$A$3 "))
	assert.Empty(t, trimFormulaTag(""))
}

func TestCellFormat(t *testing.T) {
	wb := newTestWorkbook(t)
	styleID, err := wb.File.NewStyle(&excelize.Style{
		Border: []excelize.Border{
			{Type: "top", Style: 1, Color: "000000"},
			{Type: "bottom", Style: 2, Color: "336699"},
		},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFFF00"}},
		Font:      &excelize.Font{Bold: true, Size: 14, Family: "Arial", Color: "112233"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "top"},
	})
	require.NoError(t, err)

	cf := wb.cellFormat(styleID)
	require.NotNil(t, cf)

	assert.Equal(t, "thin", cf.Border.Top.Style)
	require.Equal(t, ColorRGB, cf.Border.Top.Color.Kind)
	// Style registration normalizes colors to ARGB.
	assert.Equal(t, "FF000000", cf.Border.Top.Color.RGB)
	assert.Equal(t, "medium", cf.Border.Bottom.Style)
	assert.Equal(t, "FF336699", cf.Border.Bottom.Color.RGB)
	assert.Empty(t, cf.Border.Left.Style)
	assert.Empty(t, cf.Border.Right.Style)

	assert.Equal(t, "solid", cf.Fill.Pattern)
	assert.Equal(t, ColorRGB, cf.Fill.Foreground.Kind)

	require.NotNil(t, cf.Font)
	assert.True(t, cf.Font.Bold)
	assert.False(t, cf.Font.Italic)
	assert.False(t, cf.Font.Underline)
	assert.Equal(t, 14.0, cf.Font.Size)
	assert.Equal(t, "Arial", cf.Font.Name)

	assert.Equal(t, "center", cf.Align.Horizontal)
	assert.Equal(t, "top", cf.Align.Vertical)

	// Repeated lookups hit the cache.
	assert.Same(t, cf, wb.cellFormat(styleID))
}

func TestCellFormat_SingleEdgeBorder(t *testing.T) {
	// A style declaring one edge leaves the other border lines undeclared;
	// decoding must not touch them.
	wb := newTestWorkbook(t)
	styleID, err := wb.File.NewStyle(&excelize.Style{
		Border: []excelize.Border{{Type: "left", Style: 1, Color: "000000"}},
	})
	require.NoError(t, err)

	cf := wb.cellFormat(styleID)
	require.NotNil(t, cf)
	assert.Equal(t, "thin", cf.Border.Left.Style)
	assert.Empty(t, cf.Border.Top.Style)
	assert.Empty(t, cf.Border.Right.Style)
	assert.Empty(t, cf.Border.Bottom.Style)
	assert.True(t, cf.Border.Top.Color.IsZero())
}

func TestCellFormat_OutOfRange(t *testing.T) {
	wb := newTestWorkbook(t)
	assert.Nil(t, wb.cellFormat(-1))
	assert.Nil(t, wb.cellFormat(99999))
}

func TestSheetByName_Unknown(t *testing.T) {
	wb := newTestWorkbook(t)
	_, err := wb.SheetByName("Nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSheetByIndex_OutOfRange(t *testing.T) {
	wb := newTestWorkbook(t)
	_, err := wb.SheetByIndex(5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestReadSheet(t *testing.T) {
	wb := newTestWorkbook(t)
	f := wb.File
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "hello"))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", "world & co"))
	require.NoError(t, f.SetCellValue("Sheet1", "A3", "third"))
	require.NoError(t, f.SetRowHeight("Sheet1", 2, 30))
	require.NoError(t, f.SetRowVisible("Sheet1", 3, false))
	require.NoError(t, f.SetColWidth("Sheet1", "B", "B", 25))
	require.NoError(t, f.MergeCell("Sheet1", "A1", "B1"))

	sheet, err := wb.SheetByName("Sheet1")
	require.NoError(t, err)

	assert.Equal(t, "Sheet1", sheet.Name)
	assert.Equal(t, 0, sheet.Index)
	require.Len(t, sheet.Rows, 3)
	assert.Equal(t, 2, sheet.MaxCol())

	a1 := sheet.CellAt(1, 1)
	require.NotNil(t, a1)
	assert.Equal(t, "hello", a1.Value)
	assert.Equal(t, "hello", a1.Text)

	b2 := sheet.CellAt(2, 2)
	require.NotNil(t, b2)
	assert.Equal(t, "world & co", b2.Value)
	assert.Equal(t, "world &amp; co", b2.Text)

	assert.Nil(t, sheet.CellAt(3, 1))
	assert.Nil(t, sheet.CellAt(1, 9))

	assert.False(t, sheet.RowDim(1).CustomHeight)
	assert.True(t, sheet.RowDim(2).CustomHeight)
	assert.Equal(t, 30.0, sheet.RowDim(2).Height)
	assert.True(t, sheet.RowDim(3).Hidden)

	assert.False(t, sheet.ColDim(1).CustomWidth)
	assert.True(t, sheet.ColDim(2).CustomWidth)
	assert.Equal(t, 25.0, sheet.ColDim(2).Width)

	require.Len(t, sheet.Merges, 1)
	assert.Equal(t, 1, sheet.Merges[0].First.Col)
	assert.Equal(t, 1, sheet.Merges[0].First.Row)
	assert.Equal(t, 2, sheet.Merges[0].Last.Col)
	assert.Equal(t, 1, sheet.Merges[0].Last.Row)
}

func TestReadSheet_ShowFormulas(t *testing.T) {
	wb := newTestWorkbook(t)
	f := wb.File
	require.NoError(t, f.SetCellValue("Sheet1", "A1", 1))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", 2))
	require.NoError(t, f.SetCellFormula("Sheet1", "A3", "SUM(A1:A2)"))

	wb.ShowFormulas = true
	sheet, err := wb.SheetByName("Sheet1")
	require.NoError(t, err)

	a3 := sheet.CellAt(1, 3)
	require.NotNil(t, a3)
	assert.Equal(t, "=SUM(A1:A2)", a3.Text)

	// Non-formula cells keep their display text.
	assert.Equal(t, "1", sheet.CellAt(1, 1).Text)
}

func TestActiveSheet(t *testing.T) {
	wb := newTestWorkbook(t)
	_, err := wb.File.NewSheet("Second")
	require.NoError(t, err)
	idx, err := wb.File.GetSheetIndex("Second")
	require.NoError(t, err)
	wb.File.SetActiveSheet(idx)

	sheet, err := wb.ActiveSheet()
	require.NoError(t, err)
	assert.Equal(t, "Second", sheet.Name)
	assert.Equal(t, 1, sheet.Index)
}
