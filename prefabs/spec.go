package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"github.com/guilhermepo2/JumpyJump/enemy"
	"github.com/guilhermepo2/JumpyJump/gameplay"
	"github.com/guilhermepo2/JumpyJump/physics"
	"github.com/guilhermepo2/JumpyJump/player"
	"gopkg.in/yaml.v3"
)

const (
	PlayerFile      = "player.yaml"
	GoombaFile      = "goomba.yaml"
	QuestionBoxFile = "question_box.yaml"
)

// LoadSpec decodes a prefab into a zero T.
func LoadSpec[T any](filename string) (T, error) {
	var spec T
	err := LoadSpecInto(filename, &spec)
	return spec, err
}

// LoadSpecInto decodes a prefab over spec. Fields missing from the file keep
// whatever spec already held, so callers can pre-fill defaults.
func LoadSpecInto[T any](filename string, spec *T) error {
	data, err := Load(filename)
	if err != nil {
		return fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	return DecodeInto(filename, data, spec)
}

// DecodeInto is LoadSpecInto for bytes already in hand.
func DecodeInto[T any](filename string, data []byte, spec *T) error {
	if err := yaml.Unmarshal(data, spec); err != nil {
		return fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return nil
}

type TuningSpec struct {
	JumpPeakHeight            float64 `yaml:"jump_peak_height"`
	HorizontalDistanceToPeak  float64 `yaml:"horizontal_distance_to_peak"`
	FootSpeed                 float64 `yaml:"foot_speed"`
	GroundDamping             float64 `yaml:"ground_damping"`
	AirDamping                float64 `yaml:"air_damping"`
	JumpCutValue              float64 `yaml:"jump_cut_value"`
	DescendGravityMultiplier  float64 `yaml:"descend_gravity_multiplier"`
	PressedToJumpRememberTime float64 `yaml:"pressed_to_jump_remember_time"`
	GroundedRememberTime      float64 `yaml:"grounded_remember_time"`
}

func (s TuningSpec) Tuning() player.Tuning {
	return player.Tuning{
		JumpPeakHeight:            s.JumpPeakHeight,
		HorizontalDistanceToPeak:  s.HorizontalDistanceToPeak,
		FootSpeed:                 s.FootSpeed,
		GroundDamping:             s.GroundDamping,
		AirDamping:                s.AirDamping,
		JumpCutValue:              s.JumpCutValue,
		DescendGravityMultiplier:  s.DescendGravityMultiplier,
		PressedToJumpRememberTime: s.PressedToJumpRememberTime,
		GroundedRememberTime:      s.GroundedRememberTime,
	}
}

func tuningSpecFrom(t player.Tuning) TuningSpec {
	return TuningSpec{
		JumpPeakHeight:            t.JumpPeakHeight,
		HorizontalDistanceToPeak:  t.HorizontalDistanceToPeak,
		FootSpeed:                 t.FootSpeed,
		GroundDamping:             t.GroundDamping,
		AirDamping:                t.AirDamping,
		JumpCutValue:              t.JumpCutValue,
		DescendGravityMultiplier:  t.DescendGravityMultiplier,
		PressedToJumpRememberTime: t.PressedToJumpRememberTime,
		GroundedRememberTime:      t.GroundedRememberTime,
	}
}

// ColliderSpec is an actor's collision box and probe counts. Zero ray counts
// fall back to the physics defaults.
type ColliderSpec struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	SkinWidth      float64 `yaml:"skin_width"`
	HorizontalRays int     `yaml:"horizontal_rays"`
	VerticalRays   int     `yaml:"vertical_rays"`
}

func (s ColliderSpec) Volume() physics.Volume {
	return physics.Volume{Width: s.Width, Height: s.Height, SkinWidth: s.SkinWidth}
}

// MaskSpec names layers, e.g. platform: [solid, one_way].
type MaskSpec struct {
	Platform []string `yaml:"platform"`
	Trigger  []string `yaml:"trigger"`
	OneWay   []string `yaml:"one_way"`
}

func (s MaskSpec) LayerMasks() (physics.LayerMasks, error) {
	var (
		m   physics.LayerMasks
		err error
	)
	if m.Platform, err = physics.ParseLayers(s.Platform); err != nil {
		return m, fmt.Errorf("prefabs: platform mask: %w", err)
	}
	if m.Trigger, err = physics.ParseLayers(s.Trigger); err != nil {
		return m, fmt.Errorf("prefabs: trigger mask: %w", err)
	}
	if m.OneWay, err = physics.ParseLayers(s.OneWay); err != nil {
		return m, fmt.Errorf("prefabs: one-way mask: %w", err)
	}
	return m, nil
}

// actorConfig builds the mover configuration shared by every actor prefab.
func actorConfig(c ColliderSpec, masks MaskSpec) (physics.ActorConfig, error) {
	m, err := masks.LayerMasks()
	if err != nil {
		return physics.ActorConfig{}, err
	}
	cfg := physics.ActorConfig{
		Volume:         c.Volume(),
		Masks:          m,
		HorizontalRays: c.HorizontalRays,
		VerticalRays:   c.VerticalRays,
	}
	if err := cfg.Volume.Validate(); err != nil {
		return physics.ActorConfig{}, err
	}
	return cfg, nil
}

type PlayerSpec struct {
	Name     string       `yaml:"name"`
	Tuning   TuningSpec   `yaml:"tuning"`
	Collider ColliderSpec `yaml:"collider"`
	Masks    MaskSpec     `yaml:"masks"`
	Color    *YAMLColor   `yaml:"color"`
}

func DefaultPlayerSpec() PlayerSpec {
	return PlayerSpec{
		Name:   "player",
		Tuning: tuningSpecFrom(player.DefaultTuning()),
		Collider: ColliderSpec{
			Width:     0.75,
			Height:    1,
			SkinWidth: physics.DefaultSkinWidth,
		},
		Masks: MaskSpec{
			Platform: []string{"solid"},
			Trigger:  []string{"hazard", "pickup", "enemy"},
			OneWay:   []string{"one_way"},
		},
	}
}

// LoadPlayerSpec reads player.yaml over DefaultPlayerSpec and validates it.
func LoadPlayerSpec() (PlayerSpec, error) {
	spec := DefaultPlayerSpec()
	if err := LoadSpecInto(PlayerFile, &spec); err != nil {
		return PlayerSpec{}, err
	}
	if err := spec.Validate(); err != nil {
		return PlayerSpec{}, err
	}
	return spec, nil
}

func (s PlayerSpec) Validate() error {
	if err := s.Tuning.Tuning().Validate(); err != nil {
		return fmt.Errorf("prefabs: %s: %w", PlayerFile, err)
	}
	if _, err := s.ActorConfig(); err != nil {
		return fmt.Errorf("prefabs: %s: %w", PlayerFile, err)
	}
	return nil
}

func (s PlayerSpec) ActorConfig() (physics.ActorConfig, error) {
	return actorConfig(s.Collider, s.Masks)
}

type GoombaSpec struct {
	Name      string       `yaml:"name"`
	FootSpeed float64      `yaml:"foot_speed"`
	Gravity   float64      `yaml:"gravity"`
	Collider  ColliderSpec `yaml:"collider"`
	Masks     MaskSpec     `yaml:"masks"`
	Color     *YAMLColor   `yaml:"color"`
}

func DefaultGoombaSpec() GoombaSpec {
	cfg := enemy.DefaultWalkerConfig()
	return GoombaSpec{
		Name:      "goomba",
		FootSpeed: cfg.FootSpeed,
		Gravity:   cfg.Gravity,
		Collider: ColliderSpec{
			Width:     0.8,
			Height:    0.8,
			SkinWidth: physics.DefaultSkinWidth,
		},
		Masks: MaskSpec{Platform: []string{"solid"}, OneWay: []string{"one_way"}},
	}
}

func LoadGoombaSpec() (GoombaSpec, error) {
	spec := DefaultGoombaSpec()
	if err := LoadSpecInto(GoombaFile, &spec); err != nil {
		return GoombaSpec{}, err
	}
	if err := spec.Validate(); err != nil {
		return GoombaSpec{}, err
	}
	return spec, nil
}

func (s GoombaSpec) Validate() error {
	if !(s.FootSpeed > 0) {
		return fmt.Errorf("prefabs: %s: foot speed must be positive, got %g", GoombaFile, s.FootSpeed)
	}
	if _, err := s.ActorConfig(); err != nil {
		return fmt.Errorf("prefabs: %s: %w", GoombaFile, err)
	}
	return nil
}

func (s GoombaSpec) ActorConfig() (physics.ActorConfig, error) {
	return actorConfig(s.Collider, s.Masks)
}

// WalkerConfig sets the walker off in direction (-1 left, +1 right).
func (s GoombaSpec) WalkerConfig(direction float64) enemy.WalkerConfig {
	return enemy.WalkerConfig{FootSpeed: s.FootSpeed, Gravity: s.Gravity, StartDirection: direction}
}

type QuestionBoxSpec struct {
	Name         string        `yaml:"name"`
	BounceHeight float64       `yaml:"bounce_height"`
	BounceTime   time.Duration `yaml:"bounce_time"`
	Color        *YAMLColor    `yaml:"color"`
	UsedColor    *YAMLColor    `yaml:"used_color"`
}

func DefaultQuestionBoxSpec() QuestionBoxSpec {
	cfg := gameplay.DefaultBoxConfig()
	return QuestionBoxSpec{Name: "question_box", BounceHeight: cfg.BounceHeight, BounceTime: cfg.BounceTime}
}

func LoadQuestionBoxSpec() (QuestionBoxSpec, error) {
	spec := DefaultQuestionBoxSpec()
	if err := LoadSpecInto(QuestionBoxFile, &spec); err != nil {
		return QuestionBoxSpec{}, err
	}
	if spec.BounceHeight < 0 || spec.BounceTime < 0 {
		return QuestionBoxSpec{}, fmt.Errorf("prefabs: %s: bounce must not be negative", QuestionBoxFile)
	}
	return spec, nil
}

func (s QuestionBoxSpec) BoxConfig() gameplay.BoxConfig {
	return gameplay.BoxConfig{BounceHeight: s.BounceHeight, BounceTime: s.BounceTime}
}

// ColorOr returns the prefab colour, or def when the file sets none.
func (c *YAMLColor) ColorOr(def color.Color) color.Color {
	if c == nil || c.Color == nil {
		return def
	}
	return c.Color
}

// YAMLColor decodes "#rrggbb" or "#rrggbbaa".
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
