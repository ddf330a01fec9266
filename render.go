package xl2html

import (
	"fmt"
	"html"
	"sort"
	"strconv"
	"strings"
)

// HeaderHook is invoked after the colgroup and before the table body,
// letting a caller inject extra header rows into the output.
type HeaderHook func(model *SheetModel, out *strings.Builder)

// LineNumberHook is invoked at the start of each table row with the 0-based
// row index, letting a caller prepend a line-number column.
type LineNumberHook func(out *strings.Builder, rowIndex int)

// renderAttrs serializes HTML attributes sorted by name, dropping entries
// with empty values.
func renderAttrs(attrs Attrs) string {
	if len(attrs) == 0 {
		return ""
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if attrs[k] == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%q", k, attrs[k]))
	}
	return strings.Join(parts, " ")
}

// renderInlineStyles serializes a StyleSet sorted by property name, dropping
// properties with empty values. A set holding only empty values serializes
// to "".
func renderInlineStyles(styles StyleSet) string {
	if len(styles) == 0 {
		return ""
	}
	keys := make([]string, 0, len(styles))
	for k := range styles {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if styles[k] == "" {
			continue
		}
		parts = append(parts, k+": "+styles[k])
	}
	return strings.Join(parts, ";")
}

// renderStylesheet serializes the deduplicated class rules in promotion
// order.
func renderStylesheet(model *SheetModel) string {
	var b strings.Builder
	for _, name := range model.Styles.Names() {
		b.WriteString(fmt.Sprintf(" .%s { %s }", name, renderInlineStyles(model.Styles.Rule(name))))
	}
	return b.String()
}

// renderTable serializes the grid model into a <table> element.
func renderTable(model *SheetModel, headers HeaderHook, lineno LineNumberHook, out *strings.Builder) {
	out.WriteString(fmt.Sprintf(`<table style="border-collapse: collapse" border="%d" cellspacing="0" cellpadding="0">`+"\n", model.Border))
	out.WriteString("<colgroup>\n")

	hiddenCols := make(map[int]bool)
	for _, col := range model.Cols {
		if col.Hidden {
			hiddenCols[col.Index] = true
		}
		out.WriteString(fmt.Sprintf("<col style=%q>\n", renderInlineStyles(col.Style)))
	}
	out.WriteString("</colgroup>\n")

	if headers != nil {
		headers(model, out)
	}

	for i, row := range model.Rows {
		out.WriteString("<tr>")
		if lineno != nil {
			lineno(out, i)
		}
		for _, cell := range row {
			if hiddenCols[cell.Col] {
				continue
			}
			out.WriteString("\n")
			renderCell(model, cell, out)
		}
		out.WriteString("\n</tr>\n")
	}
	out.WriteString("</table>")
}

// renderCell serializes one <td>, appending any images anchored within the
// cell's column span.
func renderCell(model *SheetModel, cell *GridCell, out *strings.Builder) {
	out.WriteString("<td")
	if attrs := renderAttrs(cell.Attrs); attrs != "" {
		out.WriteString(" " + attrs)
	}
	out.WriteString(fmt.Sprintf(" style=%q>", renderInlineStyles(cell.Style)))
	out.WriteString(cell.Text)

	colspan := 1
	if v, ok := cell.Attrs["colspan"]; ok {
		if n, err := strconv.Atoi(v); err == nil && n > 1 {
			colspan = n
		}
	}
	for col := cell.Col; col < cell.Col+colspan; col++ {
		key := CellRef{Col: col, Row: cell.Row}.Key()
		for _, img := range model.Images[key] {
			out.WriteString(fmt.Sprintf("\n<img width=\"%d\" height=\"%d\" style=%q src=%q/>",
				img.Width, img.Height, renderInlineStyles(img.Style), img.Src))
		}
	}
	out.WriteString("</td>")
}

// renderDocument wraps the stylesheet and table into a standalone HTML
// document.
func renderDocument(model *SheetModel, headers HeaderHook, lineno LineNumberHook) string {
	var table strings.Builder
	renderTable(model, headers, lineno, &table)

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n")
	b.WriteString("<html lang=\"en\">\n<head>\n")
	b.WriteString("<meta charset=\"UTF-8\">\n")
	b.WriteString(fmt.Sprintf("<title>%s</title>\n", html.EscapeString(model.Title)))
	b.WriteString(fmt.Sprintf("<style>%s</style>\n", renderStylesheet(model)))
	b.WriteString("</head>\n<body>\n")
	b.WriteString(table.String())
	b.WriteString("\n</body>\n</html>\n")
	return b.String()
}
