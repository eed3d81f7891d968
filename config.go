package vignette

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable of the engine. The zero value is not useful;
// start from DefaultConfig and override.
type Config struct {
	// InitialScene is the scene mounted on the first tick.
	InitialScene SceneType       `yaml:"initialScene"`
	Animation    AnimationConfig `yaml:"animation"`
	Damage       DamageConfig    `yaml:"damage"`
	Warp         WarpConfig      `yaml:"warp"`
	Battle       BattleConfig    `yaml:"battle"`
	Keys         KeyConfig       `yaml:"keys"`
	// BattlePreset is the context requested by the battle key.
	BattlePreset SceneContext `yaml:"battlePreset"`
}

// AnimationConfig sets channel defaults.
type AnimationConfig struct {
	// DefaultDelta is the timer step for channels that do not set one.
	DefaultDelta float64 `yaml:"defaultDelta"`
	// FadeDelta is the timer step of the scene fade-in channels.
	FadeDelta float64 `yaml:"fadeDelta"`
}

// DamageConfig tunes the hit flash.
type DamageConfig struct {
	FlashDuration time.Duration `yaml:"flashDuration"`
}

// WarpConfig tunes the warp-travel scene.
type WarpConfig struct {
	Speed           float64  `yaml:"speed"`
	SpeedMultiplier float64  `yaml:"speedMultiplier"`
	CorridorStart   float64  `yaml:"corridorStart"`
	CorridorEnd     float64  `yaml:"corridorEnd"`
	StarBrighten    float64  `yaml:"starBrighten"`
	StarEase        EaseKind `yaml:"starEase"`
	SpeedEase       EaseKind `yaml:"speedEase"`
	CorridorEase    EaseKind `yaml:"corridorEase"`
	CameraPosition  Vec3     `yaml:"cameraPosition"`
	ShipPosition    Vec3     `yaml:"shipPosition"`
	FastStars       int      `yaml:"fastStars"`
	SlowStars       int      `yaml:"slowStars"`
	OrbitSpeed      float64  `yaml:"orbitSpeed"`
	OrbitScale      float64  `yaml:"orbitScale"`
	Lighting        string   `yaml:"lighting"`
}

// BattleConfig tunes the battle scene.
type BattleConfig struct {
	StationPosition  Vec3     `yaml:"stationPosition"`
	StartPosition    Vec3     `yaml:"startPosition"`
	EndPosition      Vec3     `yaml:"endPosition"`
	PreJumpDistance  float64  `yaml:"preJumpDistance"`
	JumpDistance     float64  `yaml:"jumpDistance"`
	CorridorDistance float64  `yaml:"corridorDistance"`
	CameraHeight     float64  `yaml:"cameraHeight"`
	CameraDistance   float64  `yaml:"cameraDistance"`
	JumpInEase       EaseKind `yaml:"jumpInEase"`
	OrientEase       EaseKind `yaml:"orientEase"`
	ApertureEase     EaseKind `yaml:"apertureEase"`
	JumpOutEase      EaseKind `yaml:"jumpOutEase"`
	OrbitSpeed       float64  `yaml:"orbitSpeed"`
	BackdropStars    int      `yaml:"backdropStars"`
	BackdropRadius   float64  `yaml:"backdropRadius"`
}

// KeyConfig binds characters to actions.
type KeyConfig struct {
	Warp   string `yaml:"warp"`
	Battle string `yaml:"battle"`
	Damage string `yaml:"damage"`
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		InitialScene: SceneWarp,
		Animation: AnimationConfig{
			DefaultDelta: DefaultDelta,
			FadeDelta:    0.05,
		},
		Damage: DamageConfig{FlashDuration: DefaultFlashDuration},
		Warp: WarpConfig{
			Speed:           10,
			SpeedMultiplier: 5,
			CorridorStart:   500,
			CorridorEnd:     -5,
			StarBrighten:    2,
			CameraPosition:  Vec3{0, 2, -6},
			FastStars:       100,
			SlowStars:       300,
			OrbitSpeed:      2,
			OrbitScale:      0.5,
			Lighting:        "#444",
		},
		Battle: BattleConfig{
			StartPosition:    Vec3{-1000, 500, 2000},
			EndPosition:      Vec3{-10, 10, 20},
			PreJumpDistance:  150,
			JumpDistance:     500,
			CorridorDistance: 500,
			CameraHeight:     2,
			CameraDistance:   6,
			JumpInEase:       EaseOutCubic,
			OrientEase:       EaseOutCubic,
			JumpOutEase:      EaseInCubic,
			OrbitSpeed:       1,
			BackdropStars:    2000,
			BackdropRadius:   8000,
		},
		Keys: KeyConfig{Warp: "w", Battle: "b", Damage: " "},
		BattlePreset: SceneContext{
			Star: &StarSpec{
				Color:     "#f33",
				Direction: Vec3{-1, 1, -2},
				Distance:  1500,
				Size:      3,
			},
			Station: &StationSpec{Shielded: true},
		},
	}
}

// ParseConfig decodes YAML over DefaultConfig, so a file only needs the
// fields it changes, and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first setting that would stall or break a scene.
func (c *Config) Validate() error {
	if c.InitialScene == SceneNone || !c.InitialScene.Valid() {
		return fmt.Errorf("initialScene %q is not a scene", c.InitialScene)
	}
	if c.Animation.DefaultDelta <= 0 {
		return fmt.Errorf("animation.defaultDelta must be positive, got %v", c.Animation.DefaultDelta)
	}
	if c.Animation.FadeDelta <= 0 {
		return fmt.Errorf("animation.fadeDelta must be positive, got %v", c.Animation.FadeDelta)
	}
	if c.Damage.FlashDuration <= 0 {
		return fmt.Errorf("damage.flashDuration must be positive, got %v", c.Damage.FlashDuration)
	}
	if c.Warp.FastStars < 0 || c.Warp.SlowStars < 0 {
		return errors.New("warp star counts must not be negative")
	}
	if c.Battle.BackdropStars < 0 {
		return errors.New("battle.backdropStars must not be negative")
	}
	if c.Keys.Warp == "" || c.Keys.Battle == "" || c.Keys.Damage == "" {
		return errors.New("every key binding must be set")
	}
	if star := c.BattlePreset.Star; star != nil {
		if _, err := ParseColor(star.Color); err != nil {
			return fmt.Errorf("battlePreset.star: %w", err)
		}
	}
	return nil
}
