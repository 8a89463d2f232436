package style

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"
)

//go:embed defaults/templates/*.yaml defaults/themes/*.yaml
var defaultsFS embed.FS

// Catalog holds the loaded templates and themes. It is built once at
// startup and read-only afterwards; renders never mutate it.
type Catalog struct {
	templates map[string]*Template
	themes    map[string]*Theme
}

// LoadCatalog builds the catalog from the embedded defaults, then
// overlays any *.yaml files found under dir/templates and dir/themes.
// Overlay entries with the same name replace the built-ins. Pass an
// empty dir to load only the defaults.
func LoadCatalog(dir string) (*Catalog, error) {
	c := &Catalog{
		templates: make(map[string]*Template),
		themes:    make(map[string]*Theme),
	}

	if err := c.loadEmbedded(); err != nil {
		return nil, err
	}
	if dir != "" {
		if err := c.loadDir(dir); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Catalog) loadEmbedded() error {
	entries, err := defaultsFS.ReadDir("defaults/templates")
	if err != nil {
		return fmt.Errorf("read embedded templates: %w", err)
	}
	for _, e := range entries {
		data, err := defaultsFS.ReadFile("defaults/templates/" + e.Name())
		if err != nil {
			return err
		}
		if err := c.addTemplate(e.Name(), data); err != nil {
			return err
		}
	}

	entries, err = defaultsFS.ReadDir("defaults/themes")
	if err != nil {
		return fmt.Errorf("read embedded themes: %w", err)
	}
	for _, e := range entries {
		data, err := defaultsFS.ReadFile("defaults/themes/" + e.Name())
		if err != nil {
			return err
		}
		if err := c.addTheme(e.Name(), data); err != nil {
			return err
		}
	}
	return nil
}

func (c *Catalog) loadDir(dir string) error {
	for _, sub := range []string{"templates", "themes"} {
		root := filepath.Join(dir, sub)
		entries, err := os.ReadDir(root)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", root, err)
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
				continue
			}
			data, err := os.ReadFile(filepath.Join(root, e.Name()))
			if err != nil {
				return err
			}
			if sub == "templates" {
				err = c.addTemplate(e.Name(), data)
			} else {
				err = c.addTheme(e.Name(), data)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *Catalog) addTemplate(filename string, data []byte) error {
	var t Template
	if err := yaml.UnmarshalWithOptions(data, &t, yaml.Strict()); err != nil {
		return fmt.Errorf("template %s: %w", filename, err)
	}
	if t.Name == "" {
		t.Name = strings.TrimSuffix(filename, ".yaml")
	}
	c.templates[t.Name] = &t
	return nil
}

func (c *Catalog) addTheme(filename string, data []byte) error {
	var t Theme
	if err := yaml.UnmarshalWithOptions(data, &t, yaml.Strict()); err != nil {
		return fmt.Errorf("theme %s: %w", filename, err)
	}
	if t.Name == "" {
		t.Name = strings.TrimSuffix(filename, ".yaml")
	}
	c.themes[t.Name] = &t
	return nil
}

// Themes returns the available theme names, sorted.
func (c *Catalog) Themes() []string {
	names := make([]string, 0, len(c.themes))
	for name := range c.themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Templates returns the available template names, sorted.
func (c *Catalog) Templates() []string {
	names := make([]string, 0, len(c.templates))
	for name := range c.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
