package xl2html

// Options holds configuration for the Converter.
type Options struct {
	locale       string
	sheetName    string
	sheetIndex   int
	useIndex     bool
	showFormulas bool
	tableBorder  int
	headerHook   HeaderHook
	linenoHook   LineNumberHook
}

func defaultOptions() *Options {
	return &Options{
		locale:     "en",
		sheetIndex: -1,
	}
}

// Option configures the Converter.
type Option func(*Options)

// WithLocale sets the locale used for number and date formatting
// (default: "en"). It only affects workbooks the converter opens itself.
func WithLocale(locale string) Option {
	return func(o *Options) { o.locale = locale }
}

// WithSheetName selects the worksheet to render by name. Rendering fails if
// no such sheet exists.
func WithSheetName(name string) Option {
	return func(o *Options) { o.sheetName = name }
}

// WithSheetIndex selects the worksheet to render by 0-based index.
// Rendering fails if the index is out of range.
func WithSheetIndex(index int) Option {
	return func(o *Options) {
		o.sheetIndex = index
		o.useIndex = true
	}
}

// WithFormulaText renders "=FORMULA" for formula cells instead of their
// computed value.
func WithFormulaText(show bool) Option {
	return func(o *Options) { o.showFormulas = show }
}

// WithDefaultBorder sets the table's border attribute (default: 0).
func WithDefaultBorder(width int) Option {
	return func(o *Options) { o.tableBorder = width }
}

// WithHeaderHook injects extra header rows between the colgroup and the
// table body.
func WithHeaderHook(hook HeaderHook) Option {
	return func(o *Options) { o.headerHook = hook }
}

// WithLineNumberHook prepends caller-rendered content (typically a line
// number cell) at the start of every table row.
func WithLineNumberHook(hook LineNumberHook) Option {
	return func(o *Options) { o.linenoHook = hook }
}
