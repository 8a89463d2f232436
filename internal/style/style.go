// Package style holds the theme and template catalog and resolves a
// theme name into one concrete, fully merged style sheet per render.
package style

import "fmt"

// Font describes character formatting. Color is either a literal
// "#RRGGBB" value or a color role name resolved against the theme.
type Font struct {
	Family    string  `yaml:"family" json:"family"`
	Size      float64 `yaml:"size" json:"size"`
	Color     string  `yaml:"color" json:"color"`
	Bold      bool    `yaml:"bold" json:"bold"`
	Italic    bool    `yaml:"italic" json:"italic"`
	Underline bool    `yaml:"underline" json:"underline"`
}

// Paragraph describes paragraph-level formatting. LineSpacing values of
// 20 or more are treated as an exact height in points, smaller values
// as a multiple of the line height. FirstLineIndent is in character
// widths of the paragraph font.
type Paragraph struct {
	Alignment       string  `yaml:"alignment" json:"alignment"`
	LineSpacing     float64 `yaml:"line_spacing" json:"line_spacing"`
	SpaceBefore     float64 `yaml:"space_before" json:"space_before"`
	SpaceAfter      float64 `yaml:"space_after" json:"space_after"`
	FirstLineIndent float64 `yaml:"first_line_indent" json:"first_line_indent"`
}

// Element combines font and paragraph rules for one document element.
type Element struct {
	Font       Font      `yaml:"font" json:"font"`
	Paragraph  Paragraph `yaml:"paragraph" json:"paragraph"`
	Background string    `yaml:"background" json:"background"`
}

// Page describes page geometry. Margins are centimetres.
type Page struct {
	Size           string  `yaml:"size" json:"size"`               // a4, letter, legal
	Orientation    string  `yaml:"orientation" json:"orientation"` // portrait, landscape
	MarginTopCm    float64 `yaml:"margin_top" json:"margin_top"`
	MarginBottomCm float64 `yaml:"margin_bottom" json:"margin_bottom"`
	MarginLeftCm   float64 `yaml:"margin_left" json:"margin_left"`
	MarginRightCm  float64 `yaml:"margin_right" json:"margin_right"`
}

// Table describes table appearance. Border width is points.
type Table struct {
	BorderWidthPt     float64 `yaml:"border_width" json:"border_width"`
	BorderColor       string  `yaml:"border_color" json:"border_color"`
	HeaderBackground  string  `yaml:"header_background" json:"header_background"`
	HeaderColor       string  `yaml:"header_color" json:"header_color"`
	HeaderBold        bool    `yaml:"header_bold" json:"header_bold"`
	AlternateRowColor string  `yaml:"alternate_row_color" json:"alternate_row_color"`
	CellFamily        string  `yaml:"cell_family" json:"cell_family"`
	CellSize          float64 `yaml:"cell_size" json:"cell_size"`
	Alignment         string  `yaml:"alignment" json:"alignment"`
}

// Chart describes chart image defaults. Palette entries are hex colors
// or color role names.
type Chart struct {
	WidthCm float64  `yaml:"width_cm" json:"width_cm"`
	DPI     int      `yaml:"dpi" json:"dpi"`
	Palette []string `yaml:"palette" json:"palette"`
}

// Headings holds the shared heading element plus per-level partials
// layered on top of it.
type Headings struct {
	Default Element          `yaml:"default" json:"default"`
	H1      *ElementOverride `yaml:"h1" json:"h1"`
	H2      *ElementOverride `yaml:"h2" json:"h2"`
	H3      *ElementOverride `yaml:"h3" json:"h3"`
	H4      *ElementOverride `yaml:"h4" json:"h4"`
	H5      *ElementOverride `yaml:"h5" json:"h5"`
	H6      *ElementOverride `yaml:"h6" json:"h6"`
}

// Template is a named base rule set. Themes reference templates by name.
type Template struct {
	Name         string   `yaml:"name" json:"name"`
	Page         Page     `yaml:"page" json:"page"`
	Body         Element  `yaml:"body" json:"body"`
	Headings     Headings `yaml:"headings" json:"headings"`
	CodeBlock    Element  `yaml:"code_block" json:"code_block"`
	CodeInline   Element  `yaml:"code_inline" json:"code_inline"`
	Quote        Element  `yaml:"quote" json:"quote"`
	Caption      Element  `yaml:"caption" json:"caption"`
	Table        Table    `yaml:"table" json:"table"`
	Chart        Chart    `yaml:"chart" json:"chart"`
	ListIndentCm float64  `yaml:"list_indent" json:"list_indent"`
	PageNumbers  bool     `yaml:"page_numbers" json:"page_numbers"`
	CodeStyle    string   `yaml:"code_style" json:"code_style"`
}

// Theme is a named visual identity: a template reference, a color role
// map, and optional partial overrides applied on top of the template.
type Theme struct {
	Name      string            `yaml:"name" json:"name"`
	Template  string            `yaml:"template" json:"template"`
	Colors    map[string]string `yaml:"colors" json:"colors"`
	Overrides *Overrides        `yaml:"overrides" json:"overrides"`
}

// Sheet is the fully resolved rule set consumed by the assembler. All
// color role references have been substituted; it is immutable for the
// duration of a render.
type Sheet struct {
	Theme        string
	Template     string
	Page         Page
	Body         Element
	Heading      [6]Element
	CodeBlock    Element
	CodeInline   Element
	Quote        Element
	Caption      Element
	Table        Table
	Chart        Chart
	ListIndentCm float64
	PageNumbers  bool
	CodeStyle    string
}

// HeadingFor returns the resolved element for a heading level (1-6).
func (s *Sheet) HeadingFor(level int) Element {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return s.Heading[level-1]
}

// ConfigError reports a theme or template authoring problem. It is
// fatal for the render that triggered it.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("style config %s: %s", e.Field, e.Reason)
}
