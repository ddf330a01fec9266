// Package xl2html renders a worksheet of an xlsx workbook into a single
// self-contained HTML document: a <table> reproducing the grid with cell
// styling, merged regions and floating images, plus a <style> block holding
// the styles shared across cells.
package xl2html

import (
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"
)

// Convert renders a worksheet of the xlsx file at path and returns the HTML
// document.
func Convert(path string, opts ...Option) (string, error) {
	return NewConverter(opts...).ConvertPath(path)
}

// ConvertFile renders a worksheet of the xlsx file at path and writes the
// HTML document to outputPath.
func ConvertFile(path, outputPath string, opts ...Option) error {
	html, err := Convert(path, opts...)
	if err != nil {
		return err
	}
	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create output file %q: %w", outputPath, err)
	}
	defer out.Close()

	if _, err := io.WriteString(out, html); err != nil {
		os.Remove(outputPath)
		return fmt.Errorf("write output file %q: %w", outputPath, err)
	}
	return nil
}

// ConvertReader renders a worksheet of an xlsx document read from r.
func ConvertReader(r io.Reader, opts ...Option) (string, error) {
	return NewConverter(opts...).ConvertReader(r)
}

// Converter renders worksheets to HTML according to its options.
type Converter struct {
	opts *Options
}

// NewConverter creates a Converter with the given options applied.
func NewConverter(opts ...Option) *Converter {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	return &Converter{opts: options}
}

// ConvertPath opens the xlsx file at path and renders the selected
// worksheet.
func (c *Converter) ConvertPath(path string) (string, error) {
	f, err := excelize.OpenFile(path, c.openOptions())
	if err != nil {
		return "", fmt.Errorf("open workbook %q: %w", path, err)
	}
	defer f.Close()
	return c.ConvertWorkbook(f)
}

// ConvertReader opens an xlsx document from r and renders the selected
// worksheet.
func (c *Converter) ConvertReader(r io.Reader) (string, error) {
	f, err := excelize.OpenReader(r, c.openOptions())
	if err != nil {
		return "", fmt.Errorf("open workbook reader: %w", err)
	}
	defer f.Close()
	return c.ConvertWorkbook(f)
}

// ConvertWorkbook renders the selected worksheet of an already opened
// workbook. The caller keeps ownership of the file; locale options do not
// apply here because number formatting is fixed when the file is opened.
func (c *Converter) ConvertWorkbook(f *excelize.File) (string, error) {
	wb := NewWorkbook(f)
	wb.ShowFormulas = c.opts.showFormulas

	sheet, err := c.selectSheet(wb)
	if err != nil {
		return "", err
	}

	model := buildGrid(sheet)
	model.Border = c.opts.tableBorder
	dedupeStyles(model)
	return renderDocument(model, c.opts.headerHook, c.opts.linenoHook), nil
}

// BuildModel reads and lays out the selected worksheet without rendering
// it, for callers that post-process the grid model themselves.
func (c *Converter) BuildModel(f *excelize.File) (*SheetModel, error) {
	wb := NewWorkbook(f)
	wb.ShowFormulas = c.opts.showFormulas

	sheet, err := c.selectSheet(wb)
	if err != nil {
		return nil, err
	}

	model := buildGrid(sheet)
	model.Border = c.opts.tableBorder
	dedupeStyles(model)
	return model, nil
}

func (c *Converter) selectSheet(wb *Workbook) (*Sheet, error) {
	switch {
	case c.opts.sheetName != "":
		return wb.SheetByName(c.opts.sheetName)
	case c.opts.useIndex:
		return wb.SheetByIndex(c.opts.sheetIndex)
	default:
		return wb.ActiveSheet()
	}
}

func (c *Converter) openOptions() excelize.Options {
	return excelize.Options{CultureInfo: cultureForLocale(c.opts.locale)}
}
