package style

import "strings"

// DefaultTheme is used when a requested theme name is empty or unknown.
const DefaultTheme = "default"

// Resolve merges a theme against its template, applies the theme's
// overrides and then the caller's, and substitutes color roles. Unknown
// theme names fall back to the default theme; a theme referencing a
// missing template is a ConfigError.
func (c *Catalog) Resolve(themeName string, extra *Overrides) (*Sheet, error) {
	theme, ok := c.themes[themeName]
	if !ok {
		theme, ok = c.themes[DefaultTheme]
		if !ok {
			return nil, &ConfigError{Field: "theme", Reason: "default theme missing from catalog"}
		}
	}

	tmpl, ok := c.templates[theme.Template]
	if !ok {
		return nil, &ConfigError{
			Field:  "theme " + theme.Name,
			Reason: "references unknown template " + theme.Template,
		}
	}

	s := &Sheet{
		Theme:        theme.Name,
		Template:     tmpl.Name,
		Page:         tmpl.Page,
		Body:         cloneElement(tmpl.Body),
		CodeBlock:    cloneElement(tmpl.CodeBlock),
		CodeInline:   cloneElement(tmpl.CodeInline),
		Quote:        cloneElement(tmpl.Quote),
		Caption:      cloneElement(tmpl.Caption),
		Table:        tmpl.Table,
		Chart:        cloneChart(tmpl.Chart),
		ListIndentCm: tmpl.ListIndentCm,
		PageNumbers:  tmpl.PageNumbers,
		CodeStyle:    tmpl.CodeStyle,
	}

	// Expand per-level headings from the shared default.
	levels := []*ElementOverride{
		tmpl.Headings.H1, tmpl.Headings.H2, tmpl.Headings.H3,
		tmpl.Headings.H4, tmpl.Headings.H5, tmpl.Headings.H6,
	}
	for i := range s.Heading {
		s.Heading[i] = cloneElement(tmpl.Headings.Default)
		applyElement(&s.Heading[i], levels[i])
	}

	applyOverrides(s, theme.Overrides)
	applyOverrides(s, extra)

	if err := substituteColors(s, theme); err != nil {
		return nil, err
	}
	return s, nil
}

func cloneElement(e Element) Element { return e }

func cloneChart(ch Chart) Chart {
	out := ch
	out.Palette = append([]string(nil), ch.Palette...)
	return out
}

// substituteColors replaces color role references with the theme's
// literal values. A color field is a role reference when it is
// non-empty and does not start with '#'.
func substituteColors(s *Sheet, theme *Theme) error {
	resolve := func(field, value string) (string, error) {
		if value == "" || strings.HasPrefix(value, "#") {
			return value, nil
		}
		lit, ok := theme.Colors[value]
		if !ok {
			return "", &ConfigError{
				Field:  field,
				Reason: "unknown color role " + value + " in theme " + theme.Name,
			}
		}
		return lit, nil
	}

	var err error
	set := func(field string, dst *string) {
		if err != nil {
			return
		}
		*dst, err = resolve(field, *dst)
	}

	elems := []struct {
		name string
		el   *Element
	}{
		{"body", &s.Body},
		{"code_block", &s.CodeBlock},
		{"code_inline", &s.CodeInline},
		{"quote", &s.Quote},
		{"caption", &s.Caption},
	}
	for _, e := range elems {
		set(e.name+".font.color", &e.el.Font.Color)
		set(e.name+".background", &e.el.Background)
	}
	for i := range s.Heading {
		set("headings.font.color", &s.Heading[i].Font.Color)
		set("headings.background", &s.Heading[i].Background)
	}
	set("table.border_color", &s.Table.BorderColor)
	set("table.header_background", &s.Table.HeaderBackground)
	set("table.header_color", &s.Table.HeaderColor)
	set("table.alternate_row_color", &s.Table.AlternateRowColor)
	for i := range s.Chart.Palette {
		set("chart.palette", &s.Chart.Palette[i])
	}
	return err
}
