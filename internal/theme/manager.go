package theme

import (
	"errors"
	"fmt"
	"strings"
)

var ErrThemeNotFound = errors.New("theme not found")

// DefaultName is the theme used when the config names none.
const DefaultName = "default"

// Registry holds the selectable themes in display order. Lookups ignore case
// and surrounding whitespace; an empty name means the default theme.
type Registry struct {
	themes map[string]*Theme
	names  []string
}

func NewRegistry() *Registry {
	r := &Registry{themes: make(map[string]*Theme)}
	predefined := GetPredefinedThemes()
	for _, name := range GetThemeNames() {
		if t, ok := predefined[name]; ok {
			r.Register(name, t)
		}
	}
	return r
}

// Register adds or replaces a theme.
func (r *Registry) Register(name string, t *Theme) {
	key := normalizeName(name)
	if _, exists := r.themes[key]; !exists {
		r.names = append(r.names, key)
	}
	r.themes[key] = t
}

func (r *Registry) Get(name string) (*Theme, error) {
	t, ok := r.themes[normalizeName(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrThemeNotFound, name)
	}
	return t, nil
}

// Resolve returns the named theme, or the default theme for unknown names.
func (r *Registry) Resolve(name string) *Theme {
	if t, err := r.Get(name); err == nil {
		return t
	}
	if t, ok := r.themes[DefaultName]; ok {
		return t
	}
	return DefaultTheme()
}

func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

func (r *Registry) Exists(name string) bool {
	_, ok := r.themes[normalizeName(name)]
	return ok
}

func normalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DefaultName
	}
	return name
}

var registry = NewRegistry()

func GetTheme(name string) (*Theme, error) {
	return registry.Get(name)
}

func ListThemes() []string {
	return registry.Names()
}

func ThemeExists(name string) bool {
	return registry.Exists(name)
}

// Resolve looks a configured theme name up in the built-in registry.
func Resolve(name string) *Theme {
	return registry.Resolve(name)
}

func GetDefaultTheme() *Theme {
	return DefaultTheme()
}
