package style

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func mustCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := LoadCatalog("")
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return c
}

func TestResolve_Deterministic(t *testing.T) {
	c := mustCatalog(t)
	a, err := c.Resolve("default", nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	b, err := c.Resolve("default", nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("resolving the same theme twice produced different sheets")
	}
}

func TestResolve_UnknownThemeFallsBack(t *testing.T) {
	c := mustCatalog(t)
	s, err := c.Resolve("no-such-theme", nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if s.Theme != "default" {
		t.Errorf("expected fallback to default theme, got %q", s.Theme)
	}
}

func TestResolve_MissingTemplateFails(t *testing.T) {
	c := mustCatalog(t)
	c.themes["broken"] = &Theme{Name: "broken", Template: "does-not-exist"}

	_, err := c.Resolve("broken", nil)
	var cfg *ConfigError
	if !errors.As(err, &cfg) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
	if !strings.Contains(cfg.Reason, "does-not-exist") {
		t.Errorf("error should name the missing template, got %q", cfg.Reason)
	}
}

func TestResolve_ColorRolesSubstituted(t *testing.T) {
	c := mustCatalog(t)
	s, err := c.Resolve("default", nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if s.Body.Font.Color != "#333333" {
		t.Errorf("body color role not substituted, got %q", s.Body.Font.Color)
	}
	if s.Table.HeaderBackground != "#1F4E79" {
		t.Errorf("table header role not substituted, got %q", s.Table.HeaderBackground)
	}
	for i, p := range s.Chart.Palette {
		if !strings.HasPrefix(p, "#") {
			t.Errorf("palette[%d] not substituted: %q", i, p)
		}
	}
}

func TestResolve_UnknownColorRoleFails(t *testing.T) {
	c := mustCatalog(t)
	c.themes["bad-role"] = &Theme{
		Name:     "bad-role",
		Template: "report",
		Colors:   map[string]string{"primary": "#111111"},
	}

	_, err := c.Resolve("bad-role", nil)
	var cfg *ConfigError
	if !errors.As(err, &cfg) {
		t.Fatalf("expected ConfigError for unresolvable role, got %v", err)
	}
}

func TestResolve_HeadingLevels(t *testing.T) {
	c := mustCatalog(t)
	s, err := c.Resolve("default", nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	h1 := s.HeadingFor(1)
	if h1.Font.Size != 22 {
		t.Errorf("h1 size: expected 22, got %v", h1.Font.Size)
	}
	if h1.Paragraph.Alignment != "center" {
		t.Errorf("h1 alignment: expected center, got %q", h1.Paragraph.Alignment)
	}
	if !h1.Font.Bold {
		t.Error("h1 should inherit bold from the heading default")
	}
	h3 := s.HeadingFor(3)
	if h3.Font.Size != 16 || h3.Paragraph.Alignment != "left" {
		t.Errorf("h3 should keep default alignment with its own size, got %+v", h3)
	}
	// Out-of-range levels clamp.
	if s.HeadingFor(0) != s.HeadingFor(1) || s.HeadingFor(9) != s.HeadingFor(6) {
		t.Error("heading level clamping broken")
	}
}

func TestResolve_CallerOverrideWins(t *testing.T) {
	c := mustCatalog(t)
	size := 11.0
	s, err := c.Resolve("default", &Overrides{
		Fonts: &FontsOverride{Body: &FontOverride{Size: &size}},
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if s.Body.Font.Size != 11 {
		t.Errorf("expected body size 11, got %v", s.Body.Font.Size)
	}

	// Everything else is untouched.
	base, err := c.Resolve("default", nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	s.Body.Font.Size = base.Body.Font.Size
	if !reflect.DeepEqual(s, base) {
		t.Error("override changed fields other than body font size")
	}
}

func TestResolve_OverridePartialElement(t *testing.T) {
	c := mustCatalog(t)
	align := "right"
	s, err := c.Resolve("business", &Overrides{
		Body: &ElementOverride{Paragraph: &ParagraphOverride{Alignment: &align}},
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if s.Body.Paragraph.Alignment != "right" {
		t.Errorf("expected right alignment, got %q", s.Body.Paragraph.Alignment)
	}
	if s.Body.Font.Family != "Calibri" {
		t.Errorf("font family should be untouched, got %q", s.Body.Font.Family)
	}
}

func TestDecodeOverrides_RejectsUnknownCategory(t *testing.T) {
	_, err := DecodeOverrides([]byte(`{"bodyy": {"font": {"size": 10}}}`))
	var cfg *ConfigError
	if !errors.As(err, &cfg) {
		t.Fatalf("expected ConfigError for unknown category, got %v", err)
	}
}

func TestDecodeOverrides_Empty(t *testing.T) {
	o, err := DecodeOverrides(nil)
	if err != nil || o != nil {
		t.Errorf("empty input should yield nil overrides, got %+v, %v", o, err)
	}
}

func TestCatalog_Names(t *testing.T) {
	c := mustCatalog(t)
	themes := c.Themes()
	want := []string{"academic", "business", "default"}
	if !reflect.DeepEqual(themes, want) {
		t.Errorf("themes: expected %v, got %v", want, themes)
	}
	if len(c.Templates()) != 3 {
		t.Errorf("expected 3 templates, got %v", c.Templates())
	}
}
