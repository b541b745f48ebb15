package prefabs

import (
	"fmt"

	"github.com/milk9111/activities/common"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// GameSpec is the top level game configuration.
type GameSpec struct {
	Title             string `yaml:"title"`
	Start             string `yaml:"start"`
	DefaultTransition string `yaml:"default_transition"`
	FadeFrames        int    `yaml:"fade_frames"`
	Width             int    `yaml:"width"`
	Height            int    `yaml:"height"`
}

func LoadGameSpec() (*GameSpec, error) {
	spec, err := LoadSpec[GameSpec]("game.yaml")
	if err != nil {
		return nil, err
	}
	if spec.Start == "" {
		spec.Start = "title"
	}
	if spec.Width <= 0 {
		spec.Width = common.BaseWidth
	}
	if spec.Height <= 0 {
		spec.Height = common.BaseHeight
	}
	return &spec, nil
}

// MenuItemSpec is one title menu entry. Target uses router syntax, e.g.
// "level:meadow" or "playground".
type MenuItemSpec struct {
	Label      string `yaml:"label"`
	Target     string `yaml:"target"`
	Transition string `yaml:"transition"`
}

type TitleSpec struct {
	Heading string         `yaml:"heading"`
	Items   []MenuItemSpec `yaml:"items"`
}

func LoadTitleSpec() (*TitleSpec, error) {
	spec, err := LoadSpec[TitleSpec]("title.yaml")
	if err != nil {
		return nil, err
	}
	if len(spec.Items) == 0 {
		return nil, fmt.Errorf("prefabs: title.yaml has no menu items")
	}
	return &spec, nil
}
