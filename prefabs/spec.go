package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/runrotate/common"
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

// TuningSpec holds the global simulation and presentation constants.
type TuningSpec struct {
	Name            string                `yaml:"name"`
	Gravity         float64               `yaml:"gravity"`
	FPS             int                   `yaml:"fps"`
	TransitionSteps int                   `yaml:"transition_steps"`
	SideMargin      int                   `yaml:"side_margin"`
	Background      *YAMLColor            `yaml:"background"`
	Colors          map[string]*YAMLColor `yaml:"colors"`
	Poses           map[string]*YAMLColor `yaml:"poses"`
}

func LoadTuningSpec() (*TuningSpec, error) {
	spec, err := LoadSpec[TuningSpec]("tuning.yaml")
	if err != nil {
		return nil, err
	}
	if spec.Gravity <= 0 {
		spec.Gravity = common.DefaultGravity
	}
	if spec.FPS <= 0 {
		spec.FPS = common.DefaultFPS
	}
	if spec.TransitionSteps <= 0 {
		spec.TransitionSteps = common.DefaultTransitionSteps
	}
	if spec.SideMargin < 0 {
		spec.SideMargin = common.SideMargin
	}
	return &spec, nil
}

// Color returns the configured colour for key, or fallback.
func (s *TuningSpec) Color(key string, fallback color.Color) color.Color {
	if s != nil {
		if c, ok := s.Colors[key]; ok && c != nil && c.Color != nil {
			return c.Color
		}
	}
	return fallback
}

// AimSpec configures colour-blob tracking. Hue is in degrees, saturation and
// value on a 0-255 scale.
type AimSpec struct {
	Name      string  `yaml:"name"`
	HMin      float64 `yaml:"h_min"`
	HMax      float64 `yaml:"h_max"`
	SMin      int     `yaml:"s_min"`
	SMax      int     `yaml:"s_max"`
	VMin      int     `yaml:"v_min"`
	VMax      int     `yaml:"v_max"`
	MinPixels int     `yaml:"min_pixels"`
	Script    string  `yaml:"script"`
}

func LoadAimSpec() (*AimSpec, error) {
	spec, err := LoadSpec[AimSpec]("aim.yaml")
	if err != nil {
		return nil, err
	}
	if spec.Script == "" {
		spec.Script = "steer.tengo"
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	var rgba [4]uint8
	rgba[3] = 255
	for i := 0; i < len(s)/2; i++ {
		v, err := parse(i * 2)
		if err != nil {
			return fmt.Errorf("invalid color %s: %w", value.Value, err)
		}
		rgba[i] = v
	}

	c.Color = color.NRGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}
	return nil
}
