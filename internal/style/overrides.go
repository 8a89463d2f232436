package style

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Typed partial-update mirrors of the concrete style types. Every field
// is a pointer so an absent key and a zero value stay distinguishable.

type FontOverride struct {
	Family    *string  `yaml:"family" json:"family,omitempty"`
	Size      *float64 `yaml:"size" json:"size,omitempty"`
	Color     *string  `yaml:"color" json:"color,omitempty"`
	Bold      *bool    `yaml:"bold" json:"bold,omitempty"`
	Italic    *bool    `yaml:"italic" json:"italic,omitempty"`
	Underline *bool    `yaml:"underline" json:"underline,omitempty"`
}

type ParagraphOverride struct {
	Alignment       *string  `yaml:"alignment" json:"alignment,omitempty"`
	LineSpacing     *float64 `yaml:"line_spacing" json:"line_spacing,omitempty"`
	SpaceBefore     *float64 `yaml:"space_before" json:"space_before,omitempty"`
	SpaceAfter      *float64 `yaml:"space_after" json:"space_after,omitempty"`
	FirstLineIndent *float64 `yaml:"first_line_indent" json:"first_line_indent,omitempty"`
}

type ElementOverride struct {
	Font       *FontOverride      `yaml:"font" json:"font,omitempty"`
	Paragraph  *ParagraphOverride `yaml:"paragraph" json:"paragraph,omitempty"`
	Background *string            `yaml:"background" json:"background,omitempty"`
}

type PageOverride struct {
	Size           *string  `yaml:"size" json:"size,omitempty"`
	Orientation    *string  `yaml:"orientation" json:"orientation,omitempty"`
	MarginTopCm    *float64 `yaml:"margin_top" json:"margin_top,omitempty"`
	MarginBottomCm *float64 `yaml:"margin_bottom" json:"margin_bottom,omitempty"`
	MarginLeftCm   *float64 `yaml:"margin_left" json:"margin_left,omitempty"`
	MarginRightCm  *float64 `yaml:"margin_right" json:"margin_right,omitempty"`
}

type TableOverride struct {
	BorderWidthPt     *float64 `yaml:"border_width" json:"border_width,omitempty"`
	BorderColor       *string  `yaml:"border_color" json:"border_color,omitempty"`
	HeaderBackground  *string  `yaml:"header_background" json:"header_background,omitempty"`
	HeaderColor       *string  `yaml:"header_color" json:"header_color,omitempty"`
	HeaderBold        *bool    `yaml:"header_bold" json:"header_bold,omitempty"`
	AlternateRowColor *string  `yaml:"alternate_row_color" json:"alternate_row_color,omitempty"`
	CellFamily        *string  `yaml:"cell_family" json:"cell_family,omitempty"`
	CellSize          *float64 `yaml:"cell_size" json:"cell_size,omitempty"`
	Alignment         *string  `yaml:"alignment" json:"alignment,omitempty"`
}

type ChartOverride struct {
	WidthCm *float64 `yaml:"width_cm" json:"width_cm,omitempty"`
	DPI     *int     `yaml:"dpi" json:"dpi,omitempty"`
	Palette []string `yaml:"palette" json:"palette,omitempty"`
}

type HeadingsOverride struct {
	Default *ElementOverride `yaml:"default" json:"default,omitempty"`
	H1      *ElementOverride `yaml:"h1" json:"h1,omitempty"`
	H2      *ElementOverride `yaml:"h2" json:"h2,omitempty"`
	H3      *ElementOverride `yaml:"h3" json:"h3,omitempty"`
	H4      *ElementOverride `yaml:"h4" json:"h4,omitempty"`
	H5      *ElementOverride `yaml:"h5" json:"h5,omitempty"`
	H6      *ElementOverride `yaml:"h6" json:"h6,omitempty"`
}

// Overrides is a partial style sheet. Themes carry one, and callers may
// supply another per request. Field names double as the only accepted
// top-level categories; unknown keys are rejected at decode time.
type Overrides struct {
	Page         *PageOverride     `yaml:"page" json:"page,omitempty"`
	Body         *ElementOverride  `yaml:"body" json:"body,omitempty"`
	Headings     *HeadingsOverride `yaml:"headings" json:"headings,omitempty"`
	CodeBlock    *ElementOverride  `yaml:"code_block" json:"code_block,omitempty"`
	CodeInline   *ElementOverride  `yaml:"code_inline" json:"code_inline,omitempty"`
	Quote        *ElementOverride  `yaml:"quote" json:"quote,omitempty"`
	Caption      *ElementOverride  `yaml:"caption" json:"caption,omitempty"`
	Table        *TableOverride    `yaml:"table" json:"table,omitempty"`
	Chart        *ChartOverride    `yaml:"chart" json:"chart,omitempty"`
	ListIndentCm *float64          `yaml:"list_indent" json:"list_indent,omitempty"`
	PageNumbers  *bool             `yaml:"page_numbers" json:"page_numbers,omitempty"`
	CodeStyle    *string           `yaml:"code_style" json:"code_style,omitempty"`

	// Fonts is an accepted alias so callers can write fonts.body.* the
	// way older configs did. It merges into the same targets as Body
	// and Headings.
	Fonts *FontsOverride `yaml:"fonts" json:"fonts,omitempty"`
}

// FontsOverride is a font-only shorthand addressing elements by role.
type FontsOverride struct {
	Body    *FontOverride `yaml:"body" json:"body,omitempty"`
	Heading *FontOverride `yaml:"heading" json:"heading,omitempty"`
	Code    *FontOverride `yaml:"code" json:"code,omitempty"`
}

// DecodeOverrides parses a JSON override document, rejecting unknown
// keys so typos in style categories fail fast instead of no-opping.
func DecodeOverrides(raw []byte) (*Overrides, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	var o Overrides
	if err := dec.Decode(&o); err != nil {
		return nil, &ConfigError{Field: "overrides", Reason: fmt.Sprintf("invalid override document: %v", err)}
	}
	return &o, nil
}

func applyFont(base *Font, o *FontOverride) {
	if o == nil {
		return
	}
	if o.Family != nil {
		base.Family = *o.Family
	}
	if o.Size != nil {
		base.Size = *o.Size
	}
	if o.Color != nil {
		base.Color = *o.Color
	}
	if o.Bold != nil {
		base.Bold = *o.Bold
	}
	if o.Italic != nil {
		base.Italic = *o.Italic
	}
	if o.Underline != nil {
		base.Underline = *o.Underline
	}
}

func applyParagraph(base *Paragraph, o *ParagraphOverride) {
	if o == nil {
		return
	}
	if o.Alignment != nil {
		base.Alignment = *o.Alignment
	}
	if o.LineSpacing != nil {
		base.LineSpacing = *o.LineSpacing
	}
	if o.SpaceBefore != nil {
		base.SpaceBefore = *o.SpaceBefore
	}
	if o.SpaceAfter != nil {
		base.SpaceAfter = *o.SpaceAfter
	}
	if o.FirstLineIndent != nil {
		base.FirstLineIndent = *o.FirstLineIndent
	}
}

func applyElement(base *Element, o *ElementOverride) {
	if o == nil {
		return
	}
	applyFont(&base.Font, o.Font)
	applyParagraph(&base.Paragraph, o.Paragraph)
	if o.Background != nil {
		base.Background = *o.Background
	}
}

func applyPage(base *Page, o *PageOverride) {
	if o == nil {
		return
	}
	if o.Size != nil {
		base.Size = *o.Size
	}
	if o.Orientation != nil {
		base.Orientation = *o.Orientation
	}
	if o.MarginTopCm != nil {
		base.MarginTopCm = *o.MarginTopCm
	}
	if o.MarginBottomCm != nil {
		base.MarginBottomCm = *o.MarginBottomCm
	}
	if o.MarginLeftCm != nil {
		base.MarginLeftCm = *o.MarginLeftCm
	}
	if o.MarginRightCm != nil {
		base.MarginRightCm = *o.MarginRightCm
	}
}

func applyTable(base *Table, o *TableOverride) {
	if o == nil {
		return
	}
	if o.BorderWidthPt != nil {
		base.BorderWidthPt = *o.BorderWidthPt
	}
	if o.BorderColor != nil {
		base.BorderColor = *o.BorderColor
	}
	if o.HeaderBackground != nil {
		base.HeaderBackground = *o.HeaderBackground
	}
	if o.HeaderColor != nil {
		base.HeaderColor = *o.HeaderColor
	}
	if o.HeaderBold != nil {
		base.HeaderBold = *o.HeaderBold
	}
	if o.AlternateRowColor != nil {
		base.AlternateRowColor = *o.AlternateRowColor
	}
	if o.CellFamily != nil {
		base.CellFamily = *o.CellFamily
	}
	if o.CellSize != nil {
		base.CellSize = *o.CellSize
	}
	if o.Alignment != nil {
		base.Alignment = *o.Alignment
	}
}

func applyChart(base *Chart, o *ChartOverride) {
	if o == nil {
		return
	}
	if o.WidthCm != nil {
		base.WidthCm = *o.WidthCm
	}
	if o.DPI != nil {
		base.DPI = *o.DPI
	}
	if len(o.Palette) > 0 {
		base.Palette = append([]string(nil), o.Palette...)
	}
}

// applyOverrides layers a partial override tree onto a resolved sheet.
// Heading partials in the override apply to the already-expanded
// per-level elements.
func applyOverrides(s *Sheet, o *Overrides) {
	if o == nil {
		return
	}
	applyPage(&s.Page, o.Page)
	applyElement(&s.Body, o.Body)
	if h := o.Headings; h != nil {
		for i := range s.Heading {
			applyElement(&s.Heading[i], h.Default)
		}
		for i, lvl := range []*ElementOverride{h.H1, h.H2, h.H3, h.H4, h.H5, h.H6} {
			applyElement(&s.Heading[i], lvl)
		}
	}
	applyElement(&s.CodeBlock, o.CodeBlock)
	applyElement(&s.CodeInline, o.CodeInline)
	applyElement(&s.Quote, o.Quote)
	applyElement(&s.Caption, o.Caption)
	applyTable(&s.Table, o.Table)
	applyChart(&s.Chart, o.Chart)
	if o.ListIndentCm != nil {
		s.ListIndentCm = *o.ListIndentCm
	}
	if o.PageNumbers != nil {
		s.PageNumbers = *o.PageNumbers
	}
	if o.CodeStyle != nil {
		s.CodeStyle = *o.CodeStyle
	}
	if f := o.Fonts; f != nil {
		applyFont(&s.Body.Font, f.Body)
		if f.Heading != nil {
			for i := range s.Heading {
				applyFont(&s.Heading[i].Font, f.Heading)
			}
		}
		if f.Code != nil {
			applyFont(&s.CodeBlock.Font, f.Code)
			applyFont(&s.CodeInline.Font, f.Code)
		}
	}
}
