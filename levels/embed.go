package levels

import (
	"embed"
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed *.yaml
var LevelsFS embed.FS

// ErrEmptyLevel is returned for a level without rows.
var ErrEmptyLevel = errors.New("levels: level has no rows")

// Dir is checked before the embedded copy so edited levels load without a
// rebuild.
var Dir = "levels"

// Level is a tile grid. Each row is a string; every rune maps to a palette
// entry and runes missing from the palette are empty.
type Level struct {
	Name      string            `yaml:"name"`
	TileSize  float64           `yaml:"tile_size"`
	Rows      []string          `yaml:"rows"`
	Palette   map[string]string `yaml:"palette"`
	Next      string            `yaml:"next"`
	LoadSteps int               `yaml:"load_steps"`
}

// Names lists the embedded levels without extension.
func Names() ([]string, error) {
	entries, err := LevelsFS.ReadDir(".")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".yaml" {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	return names, nil
}

func LoadLevel(name string) (*Level, error) {
	file := filepath.ToSlash(name)
	file = strings.TrimPrefix(file, "levels/")
	if !strings.HasSuffix(file, ".yaml") {
		file += ".yaml"
	}

	data, err := os.ReadFile(filepath.Join(Dir, filepath.FromSlash(file)))
	if err != nil {
		data, err = LevelsFS.ReadFile(file)
	}
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}

	var lvl Level
	if err := yaml.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level %s: %w", name, err)
	}
	if len(lvl.Rows) == 0 {
		return nil, fmt.Errorf("level %s: %w", name, ErrEmptyLevel)
	}
	if lvl.TileSize <= 0 {
		lvl.TileSize = 32
	}
	if lvl.LoadSteps <= 0 {
		lvl.LoadSteps = len(lvl.Rows)
	}
	for key, value := range lvl.Palette {
		if len([]rune(key)) != 1 {
			return nil, fmt.Errorf("level %s: palette key %q must be one character", name, key)
		}
		if _, err := ParseHexColor(value); err != nil {
			return nil, fmt.Errorf("level %s: palette %q: %w", name, key, err)
		}
	}
	return &lvl, nil
}

// Color returns the palette color for a tile rune.
func (l *Level) Color(r rune) (color.RGBA, bool) {
	value, ok := l.Palette[string(r)]
	if !ok {
		return color.RGBA{}, false
	}
	c, err := ParseHexColor(value)
	if err != nil {
		return color.RGBA{}, false
	}
	return c, true
}

// ParseHexColor parses "#rrggbb" or "#rrggbbaa".
func ParseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 && len(s) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	if len(s) == 6 {
		s += "ff"
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
