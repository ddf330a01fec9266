package xl2html

// BorderEdge is one edge of a cell border: a line style name plus an
// optional color. A zero Style means the edge declares no border.
type BorderEdge struct {
	Style string
	Color ColorRef
}

// BorderSet holds the four edges of a cell border, possibly sparse.
type BorderSet struct {
	Top    BorderEdge
	Right  BorderEdge
	Bottom BorderEdge
	Left   BorderEdge
}

// borderEdges is the fixed edge iteration order used when emitting CSS.
var borderEdges = []string{"right", "left", "top", "bottom"}

// Edge returns the named edge of the set.
func (b BorderSet) Edge(name string) BorderEdge {
	switch name {
	case "top":
		return b.Top
	case "right":
		return b.Right
	case "bottom":
		return b.Bottom
	case "left":
		return b.Left
	}
	return BorderEdge{}
}

// borderCSS is the CSS rendering of a spreadsheet border line style.
type borderCSS struct {
	Width string
	Style string
}

// The documented border-style table. Unknown styles map to no border at
// all: drawing a default line would add borders Excel never drew.
var borderStyles = map[string]borderCSS{
	"thin":             {Width: "1px", Style: "solid"},
	"medium":           {Width: "2px", Style: "solid"},
	"thick":            {Width: "3px", Style: "solid"},
	"hair":             {Width: "1px", Style: "solid"},
	"dashed":           {Width: "1px", Style: "dashed"},
	"dotted":           {Width: "1px", Style: "dotted"},
	"double":           {Width: "1px", Style: "double"},
	"dashDot":          {Width: "1px", Style: "dashed"},
	"dashDotDot":       {Width: "1px", Style: "dashed"},
	"slantDashDot":     {Width: "1px", Style: "dashed"},
	"mediumDashed":     {Width: "2px", Style: "dashed"},
	"mediumDashDot":    {Width: "2px", Style: "dashed"},
	"mediumDashDotDot": {Width: "2px", Style: "dashed"},
}

// mapBorderStyle maps a spreadsheet border style name to its CSS
// width/line-style pair. The second return value is false for unknown or
// absent style names.
func mapBorderStyle(name string) (borderCSS, bool) {
	css, ok := borderStyles[name]
	return css, ok
}
