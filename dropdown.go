package xl2html

import (
	"fmt"
	"strings"
)

// DropdownOptions resolves the option list behind a list-type data
// validation covering the given cell ("C1" or "Sheet1!C1"). The validation
// formula may be an inline quoted list, a sheet-qualified range, or a
// defined name referring to a range. Cells without a list validation, and
// validations without a usable formula, yield a nil slice.
func (s *Sheet) DropdownOptions(cellName string) ([]string, error) {
	ref, err := ParseCellRef(cellName)
	if err != nil {
		return nil, err
	}

	for _, v := range s.Validations {
		covered := false
		for _, area := range v.Areas {
			if area.Contains(CellRef{Col: ref.Col, Row: ref.Row}) {
				covered = true
				break
			}
		}
		if !covered {
			continue
		}
		// A validation can legitimately carry no formula; keep looking.
		if v.Formula == "" {
			continue
		}
		return s.resolveListFormula(v.Formula)
	}
	return nil, nil
}

func (s *Sheet) resolveListFormula(formula string) ([]string, error) {
	if s.wb != nil {
		for _, dn := range s.wb.File.GetDefinedName() {
			if dn.Name == formula {
				formula = dn.RefersTo
				break
			}
		}
		// Only sheet-qualified ranges are range formulas; anything else is
		// an inline literal list.
		if area, err := ParseAreaRef(formula); err == nil && area.First.Sheet != "" {
			return s.wb.valuesForRange(area)
		}
	}

	formula = strings.TrimPrefix(formula, `"`)
	formula = strings.TrimSuffix(formula, `"`)
	return strings.Split(formula, ","), nil
}

// valuesForRange collects the raw values of every cell in a range, row by
// row.
func (wb *Workbook) valuesForRange(area AreaRef) ([]string, error) {
	sheet := area.First.Sheet
	var values []string
	for _, ref := range area.Cells() {
		v, err := wb.File.GetCellValue(sheet, ref.CellName())
		if err != nil {
			return nil, fmt.Errorf("read %s!%s: %w", sheet, ref.CellName(), err)
		}
		values = append(values, v)
	}
	return values, nil
}
