// Package config provides configuration loading and access for the physics
// sandbox and benchmark.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// MaxNames is the most groups or layers a config may declare (bitset width).
const MaxNames = 32

// Config holds all configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen" toml:"screen"`
	Physics   PhysicsConfig   `yaml:"physics" toml:"physics"`
	Collision CollisionConfig `yaml:"collision" toml:"collision"`
	Border    BorderConfig    `yaml:"border" toml:"border"`
	Player    PlayerConfig    `yaml:"player" toml:"player"`
	Spawn     SpawnConfig     `yaml:"spawn" toml:"spawn"`
	Telemetry TelemetryConfig `yaml:"telemetry" toml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-" toml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width" toml:"width"`
	Height    int `yaml:"height" toml:"height"`
	TargetFPS int `yaml:"target_fps" toml:"target_fps"`
}

// PhysicsConfig holds fixed-step scheduling parameters.
type PhysicsConfig struct {
	FixedDT           float64 `yaml:"fixed_dt" toml:"fixed_dt"`                       // seconds per fixed step
	MaxStepsPerFrame  int     `yaml:"max_steps_per_frame" toml:"max_steps_per_frame"` // excess time is dropped
	ParallelThreshold int     `yaml:"parallel_threshold" toml:"parallel_threshold"`   // min items for the worker pool
	Workers           int     `yaml:"workers" toml:"workers"`                         // 0 = GOMAXPROCS
}

// CollisionConfig declares groups, layers and the pairs to detect.
type CollisionConfig struct {
	ProximityRadius float64            `yaml:"proximity_radius" toml:"proximity_radius"` // 0 disables the pre-filter
	Groups          []string           `yaml:"groups" toml:"groups"`
	Layers          []string           `yaml:"layers" toml:"layers"`
	Pairs           []PairConfig       `yaml:"pairs" toml:"pairs"`
	Bodies          []BodyLayersConfig `yaml:"bodies" toml:"bodies"`
}

// PairConfig is one ordered detection job. Empty layer lists mean all layers.
type PairConfig struct {
	First        string   `yaml:"first" toml:"first"`
	Second       string   `yaml:"second" toml:"second"`
	FirstLayers  []string `yaml:"first_layers" toml:"first_layers"`
	SecondLayers []string `yaml:"second_layers" toml:"second_layers"`
}

// BodyLayersConfig assigns collision layers to entities of a group at spawn.
type BodyLayersConfig struct {
	Group   string   `yaml:"group" toml:"group"`
	Members []string `yaml:"members" toml:"members"`
	Filters []string `yaml:"filters" toml:"filters"`
}

// BorderConfig holds the play area, centered at the origin.
type BorderConfig struct {
	HalfWidth  float64 `yaml:"half_width" toml:"half_width"`   // 0 = half the screen width
	HalfHeight float64 `yaml:"half_height" toml:"half_height"` // 0 = half the screen height
	Margin     float64 `yaml:"margin" toml:"margin"`
}

// PlayerConfig holds player ship handling.
type PlayerConfig struct {
	Thrust        float64 `yaml:"thrust" toml:"thrust"`       // units/s^2
	TurnRate      float64 `yaml:"turn_rate" toml:"turn_rate"` // rad/s
	Friction      float64 `yaml:"friction" toml:"friction"`
	MaxSpeed      float64 `yaml:"max_speed" toml:"max_speed"`
	HalfWidth     float64 `yaml:"half_width" toml:"half_width"`
	HalfHeight    float64 `yaml:"half_height" toml:"half_height"`
	Invincibility float64 `yaml:"invincibility" toml:"invincibility"` // seconds after spawn
	FireCooldown  float64 `yaml:"fire_cooldown" toml:"fire_cooldown"` // seconds
	Lives         int     `yaml:"lives" toml:"lives"`
	RespawnDelay  float64 `yaml:"respawn_delay" toml:"respawn_delay"` // seconds
	Health        int     `yaml:"health" toml:"health"`
}

// SpawnConfig holds enemy and projectile spawning parameters.
type SpawnConfig struct {
	Seed             int64   `yaml:"seed" toml:"seed"`
	EnemyInterval    float64 `yaml:"enemy_interval" toml:"enemy_interval"` // seconds
	MaxEnemies       int     `yaml:"max_enemies" toml:"max_enemies"`
	InitialEnemies   int     `yaml:"initial_enemies" toml:"initial_enemies"`
	EnemySpeed       float64 `yaml:"enemy_speed" toml:"enemy_speed"`
	EnemySpin        float64 `yaml:"enemy_spin" toml:"enemy_spin"` // max |angular velocity|
	EnemyRadius      float64 `yaml:"enemy_radius" toml:"enemy_radius"`
	SizeVariation    float64 `yaml:"size_variation" toml:"size_variation"` // scale in [1-v, 1+v]
	ProjectileSpeed  float64 `yaml:"projectile_speed" toml:"projectile_speed"`
	ProjectileRadius float64 `yaml:"projectile_radius" toml:"projectile_radius"`
	ProjectileDamage int     `yaml:"projectile_damage" toml:"projectile_damage"`
	EnemyHealth      int     `yaml:"enemy_health" toml:"enemy_health"`
	ScorePerKill     int     `yaml:"score_per_kill" toml:"score_per_kill"` // scaled by enemy size
}

// TelemetryConfig holds performance and collision reporting settings.
type TelemetryConfig struct {
	PerfWindow  int `yaml:"perf_window" toml:"perf_window"`   // steps averaged per perf sample
	StatsWindow int `yaml:"stats_window" toml:"stats_window"` // steps per collision CSV row
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	FixedDT32         float32          // Physics.FixedDT as float32
	ProximityRadius32 float32          // Collision.ProximityRadius as float32
	HalfWidth32       float32          // effective border half width
	HalfHeight32      float32          // effective border half height
	GroupIndex        map[string]uint8 // group name -> bit index
	LayerIndex        map[string]uint8 // layer name -> bit index
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: invalid embedded defaults: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML or TOML file, merging with embedded
// defaults. Files ending in .toml are decoded as TOML, anything else as YAML.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file
		if err := decode(path, data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	cfg.computeDerived()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return toml.Unmarshal(data, cfg)
	}
	return yaml.Unmarshal(data, cfg)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.FixedDT32 = float32(c.Physics.FixedDT)
	c.Derived.ProximityRadius32 = float32(c.Collision.ProximityRadius)

	// Border defaults to the visible screen
	halfW := c.Border.HalfWidth
	if halfW == 0 {
		halfW = float64(c.Screen.Width) / 2
	}
	halfH := c.Border.HalfHeight
	if halfH == 0 {
		halfH = float64(c.Screen.Height) / 2
	}
	c.Derived.HalfWidth32 = float32(halfW)
	c.Derived.HalfHeight32 = float32(halfH)

	c.Derived.GroupIndex = indexNames(c.Collision.Groups)
	c.Derived.LayerIndex = indexNames(c.Collision.Layers)
}

func indexNames(names []string) map[string]uint8 {
	index := make(map[string]uint8, len(names))
	for i, name := range names {
		if _, dup := index[name]; !dup && i < MaxNames {
			index[name] = uint8(i)
		}
	}
	return index
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error

	if c.Physics.FixedDT <= 0 {
		errs = append(errs, fmt.Errorf("physics.fixed_dt must be positive, got %v", c.Physics.FixedDT))
	}
	if c.Physics.MaxStepsPerFrame < 1 {
		errs = append(errs, fmt.Errorf("physics.max_steps_per_frame must be at least 1, got %d", c.Physics.MaxStepsPerFrame))
	}
	if c.Collision.ProximityRadius < 0 {
		errs = append(errs, fmt.Errorf("collision.proximity_radius must not be negative, got %v", c.Collision.ProximityRadius))
	}

	errs = append(errs, checkNames("collision.groups", c.Collision.Groups)...)
	errs = append(errs, checkNames("collision.layers", c.Collision.Layers)...)

	for i, p := range c.Collision.Pairs {
		where := fmt.Sprintf("collision.pairs[%d]", i)
		errs = append(errs, c.checkGroup(where+".first", p.First))
		errs = append(errs, c.checkGroup(where+".second", p.Second))
		errs = append(errs, c.checkLayers(where+".first_layers", p.FirstLayers)...)
		errs = append(errs, c.checkLayers(where+".second_layers", p.SecondLayers)...)
	}
	for i, b := range c.Collision.Bodies {
		where := fmt.Sprintf("collision.bodies[%d]", i)
		errs = append(errs, c.checkGroup(where+".group", b.Group))
		errs = append(errs, c.checkLayers(where+".members", b.Members)...)
		errs = append(errs, c.checkLayers(where+".filters", b.Filters)...)
	}

	if c.Player.Lives < 1 {
		errs = append(errs, fmt.Errorf("player.lives must be at least 1, got %d", c.Player.Lives))
	}
	if c.Player.Health < 1 || c.Spawn.EnemyHealth < 1 {
		errs = append(errs, fmt.Errorf("player.health and spawn.enemy_health must be positive"))
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"player.friction", c.Player.Friction},
		{"player.max_speed", c.Player.MaxSpeed},
		{"player.half_width", c.Player.HalfWidth},
		{"player.half_height", c.Player.HalfHeight},
		{"spawn.enemy_radius", c.Spawn.EnemyRadius},
		{"spawn.projectile_radius", c.Spawn.ProjectileRadius},
	} {
		if f.value < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %v", f.name, f.value))
		}
	}
	if c.Spawn.SizeVariation < 0 || c.Spawn.SizeVariation >= 1 {
		errs = append(errs, fmt.Errorf("spawn.size_variation must be in [0, 1), got %v", c.Spawn.SizeVariation))
	}

	return errors.Join(errs...)
}

func checkNames(field string, names []string) []error {
	var errs []error
	if len(names) > MaxNames {
		errs = append(errs, fmt.Errorf("%s: %d names exceed the limit of %d", field, len(names), MaxNames))
	}
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if name == "" {
			errs = append(errs, fmt.Errorf("%s: empty name", field))
			continue
		}
		if seen[name] {
			errs = append(errs, fmt.Errorf("%s: duplicate name %q", field, name))
		}
		seen[name] = true
	}
	return errs
}

func (c *Config) checkGroup(field, name string) error {
	if _, ok := c.Derived.GroupIndex[name]; !ok {
		return fmt.Errorf("%s: unknown group %q", field, name)
	}
	return nil
}

func (c *Config) checkLayers(field string, names []string) []error {
	var errs []error
	for _, name := range names {
		if _, ok := c.Derived.LayerIndex[name]; !ok {
			errs = append(errs, fmt.Errorf("%s: unknown layer %q", field, name))
		}
	}
	return errs
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
