package config

import (
	"empdir/internal/types"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// Prefs are user choices that survive between runs.
type Prefs struct {
	Theme string `yaml:"theme"`
}

// PrefsPath is where prefs live by default.
func PrefsPath() string {
	return defaultPath("prefs.yml")
}

// LoadPrefs reads prefs from path. A missing file yields the light theme.
func LoadPrefs(path string) (Prefs, error) {
	p := Prefs{Theme: types.ThemeLight}
	if path == "" {
		return p, nil
	}
	if err := readYAML(path, &p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Prefs{}, err
	}
	if p.Theme != types.ThemeDark {
		p.Theme = types.ThemeLight
	}
	return p, nil
}

func SavePrefs(path string, p Prefs) error {
	if path == "" {
		return fmt.Errorf("no preferences path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Toggled flips between light and dark.
func (p Prefs) Toggled() Prefs {
	if p.Theme == types.ThemeDark {
		return Prefs{Theme: types.ThemeLight}
	}
	return Prefs{Theme: types.ThemeDark}
}
