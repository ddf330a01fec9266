package xl2html

import "fmt"

// dedupeStyles promotes cell styles shared by two or more cells into the
// model's stylesheet. Two passes: the first tallies occurrences of each
// canonical StyleSet serialization and picks a class name from the first
// occurrence's position, the second rewrites qualifying cells to carry the
// class attribute with an empty inline style. Styles occurring exactly once
// stay inline, so the stylesheet only grows with genuinely shared styles.
func dedupeStyles(model *SheetModel) {
	counts := make(map[string]int)
	classNames := make(map[string]string)

	for ri, row := range model.Rows {
		for ci, cell := range row {
			key := cell.Style.Canonical()
			counts[key]++
			if _, ok := classNames[key]; !ok {
				// Positional, not content-hashed: stable across renders of
				// the same input but not a content fingerprint.
				classNames[key] = fmt.Sprintf("wsid-%d-cellst-%d-%d", model.SheetIndex, ri, ci)
			}
		}
	}

	for _, row := range model.Rows {
		for _, cell := range row {
			key := cell.Style.Canonical()
			if counts[key] < 2 {
				continue
			}
			name := classNames[key]
			model.Styles.add(name, cell.Style)
			cell.Attrs["class"] = name
			cell.Style = StyleSet{}
		}
	}
}
