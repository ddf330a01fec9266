package xl2html

import (
	"sort"
	"strings"
)

// StyleSet maps CSS property names to values. A key holding an empty string
// means the property was declared but resolved to nothing; such entries are
// dropped at render time but still participate in structural equality.
type StyleSet map[string]string

// Canonical returns a stable serialization of the set, used as the
// deduplication key. Two sets with identical key/value pairs are
// interchangeable.
func (s StyleSet) Canonical() string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(s[k])
		b.WriteByte('\n')
	}
	return b.String()
}

func (s StyleSet) merge(other StyleSet) {
	for k, v := range other {
		s[k] = v
	}
}

// styleResolver turns a cell's formatting primitives into CSS declarations.
// It carries the workbook's theme palette for color resolution.
type styleResolver struct {
	palette []string
}

func newStyleResolver(palette []string) *styleResolver {
	return &styleResolver{palette: palette}
}

// CellStyles resolves the full CSS property mapping for a cell. When the
// cell anchors a merge region, the borders of every member cell are overlaid
// on top of the cell's own: the visually outer members may be the ones
// carrying the border that should frame the merged box. Later members win on
// key collision.
func (r *styleResolver) CellStyles(format *CellFormat, region *MergeRegion) StyleSet {
	styles := StyleSet{"border-collapse": "collapse"}

	borders := r.borderStyles(format)
	if region != nil {
		for _, member := range region.Cells {
			borders.merge(r.borderStyles(member.Format))
		}
	}
	styles.merge(borders)

	if format == nil {
		return styles
	}

	if format.Align.Horizontal != "" {
		styles["text-align"] = format.Align.Horizontal
	}
	if format.Align.Vertical != "" {
		styles["vertical-align"] = format.Align.Vertical
	}

	switch format.Fill.Pattern {
	case "", "none":
	case "solid":
		bg, _ := resolveColor(format.Fill.Foreground, r.palette)
		styles["background-color"] = bg
	default:
		// Non-solid patterns are mostly gray; approximate with a flat fill.
		styles["background-color"] = "#EEEEEE"
	}

	if f := format.Font; f != nil {
		if f.Size > 0 {
			styles["font-size"] = fmtFloat(f.Size) + "px"
		}
		if f.Name != "" {
			styles["font-family"] = f.Name
		}
		if !f.Color.IsZero() {
			color, _ := resolveColor(f.Color, r.palette)
			styles["color"] = color
		}
		if f.Bold {
			styles["font-weight"] = "bold"
		}
		if f.Italic {
			styles["font-style"] = "italic"
		}
		if f.Underline {
			styles["text-decoration"] = "underline"
		}
	}

	return styles
}

// borderStyles emits the border-* properties for the cell's own four edges.
func (r *styleResolver) borderStyles(format *CellFormat) StyleSet {
	styles := StyleSet{}
	if format == nil {
		return styles
	}
	for _, dir := range borderEdges {
		edge := format.Border.Edge(dir)
		css, ok := mapBorderStyle(edge.Style)
		if !ok {
			continue
		}
		styles["border-"+dir+"-width"] = css.Width
		styles["border-"+dir+"-style"] = css.Style
		if !edge.Color.IsZero() {
			color, _ := resolveColor(edge.Color, r.palette)
			styles["border-"+dir+"-color"] = color
		}
	}
	return styles
}
