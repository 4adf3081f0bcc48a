package prefabs

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/milk9111/floorknight/common"
	"github.com/milk9111/floorknight/floor"
	"github.com/milk9111/floorknight/player"
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

// LoadSpecFile decodes a spec from an explicit path, bypassing the embedded set.
func LoadSpecFile[T any](path string) (T, error) {
	var zero T
	data, err := os.ReadFile(path)
	if err != nil {
		return zero, fmt.Errorf("prefabs: read %s: %w", path, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", path, err)
	}

	return spec, nil
}

type TransformSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func (t TransformSpec) Vec3() common.Vec3 {
	return common.Vec3{X: t.X, Y: t.Y, Z: t.Z}
}

type PlayerSpec struct {
	Name             string                      `yaml:"name"`
	Gravity          float64                     `yaml:"gravity"`
	BaseSpeed        float64                     `yaml:"base_speed"`
	RunMultiplier    float64                     `yaml:"run_multiplier"`
	JumpSpeed        float64                     `yaml:"jump_speed"`
	AnimationCadence float64                     `yaml:"animation_cadence"`
	AttackCadence    float64                     `yaml:"attack_cadence"`
	DeathCadence     float64                     `yaml:"death_cadence"`
	Spawn            TransformSpec               `yaml:"spawn"`
	Sprite           SpriteSpec                  `yaml:"sprite"`
	Animation        map[string]AnimationDefSpec `yaml:"animation"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// Tuning converts the spec into controller constants. Zero fields keep the
// built-in defaults so partial files stay usable.
func (s *PlayerSpec) Tuning() (player.Tuning, error) {
	t := player.DefaultTuning()
	setIf(&t.Gravity, s.Gravity)
	setIf(&t.BaseSpeed, s.BaseSpeed)
	setIf(&t.RunMultiplier, s.RunMultiplier)
	setIf(&t.JumpSpeed, s.JumpSpeed)
	setIf(&t.AnimationCadence, s.AnimationCadence)
	setIf(&t.AttackCadence, s.AttackCadence)
	setIf(&t.DeathCadence, s.DeathCadence)
	if s.Spawn != (TransformSpec{}) {
		t.Spawn = s.Spawn.Vec3()
	}
	clips, err := BuildClipSet(s.Animation)
	if err != nil {
		return player.Tuning{}, fmt.Errorf("prefabs: player %q: %w", s.Name, err)
	}
	t.Clips = clips
	return t, nil
}

type SpriteSpec struct {
	Width       float64    `yaml:"width"`
	Height      float64    `yaml:"height"`
	Placeholder *YAMLColor `yaml:"placeholder"`
}

type FloorSpec struct {
	Name          string     `yaml:"name"`
	SegmentWidth  float64    `yaml:"segment_width"`
	SegmentHeight float64    `yaml:"segment_height"`
	Margin        int        `yaml:"margin"`
	BottomInset   float64    `yaml:"bottom_inset"`
	Z             float64    `yaml:"z"`
	Texture       string     `yaml:"texture"`
	Placeholder   *YAMLColor `yaml:"placeholder"`
	OutlineColor  *YAMLColor `yaml:"outline_color"`
	DragTolerance float64    `yaml:"drag_tolerance"`
}

func LoadFloorSpec() (*FloorSpec, error) {
	spec, err := LoadSpec[FloorSpec]("floor.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *FloorSpec) Config() floor.Config {
	cfg := floor.DefaultConfig()
	setIf(&cfg.SegmentWidth, s.SegmentWidth)
	setIf(&cfg.SegmentHeight, s.SegmentHeight)
	setIf(&cfg.BottomInset, s.BottomInset)
	setIf(&cfg.Z, s.Z)
	if s.Margin != 0 {
		cfg.Margin = s.Margin
	}
	return cfg
}

type GameSpec struct {
	Title    string       `yaml:"title"`
	Window   WindowSpec   `yaml:"window"`
	Viewport ViewportSpec `yaml:"viewport"`
	Assets   string       `yaml:"assets"`
	Settings SettingsSpec `yaml:"settings"`
	Debug    bool         `yaml:"debug"`
}

type WindowSpec struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type ViewportSpec struct {
	FOV     float64 `yaml:"fov"`
	CameraZ float64 `yaml:"camera_z"`
}

type SettingsSpec struct {
	Store string `yaml:"store"`
	Path  string `yaml:"path"`
}

func LoadGameSpec() (*GameSpec, error) {
	spec, err := LoadSpec[GameSpec]("game.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// ViewportConfig returns the logical viewport with the spec's camera applied.
func (s *GameSpec) ViewportConfig() common.Viewport {
	vp := common.DefaultViewport()
	setIf(&vp.FOV, s.Viewport.FOV)
	setIf(&vp.CameraZ, s.Viewport.CameraZ)
	return vp
}

func setIf(dst *float64, v float64) {
	if v != 0 {
		*dst = v
	}
}

type YAMLColor struct {
	color.Color
}

// ColorOr returns c, or fallback when c is unset.
func (c *YAMLColor) ColorOr(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
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

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
