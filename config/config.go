// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/vehicles/kinematics"
	"github.com/pthm-cable/vehicles/motor"
	"github.com/pthm-cable/vehicles/neural"
	"github.com/pthm-cable/vehicles/response"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is returned (wrapped) when a loaded configuration fails validation.
var ErrInvalid = errors.New("invalid config")

// Config holds all simulation configuration parameters.
type Config struct {
	Screen      ScreenConfig      `yaml:"screen"`
	Arena       ArenaConfig       `yaml:"arena"`
	Physics     PhysicsConfig     `yaml:"physics"`
	Vehicle     VehicleConfig     `yaml:"vehicle"`
	Response    response.Config   `yaml:"response"`
	Wiring      motor.Wiring      `yaml:"wiring"`
	Kinds       []KindConfig      `yaml:"kinds"`
	Jitter      JitterConfig      `yaml:"jitter"`
	Recognition RecognitionConfig `yaml:"recognition"`
	Agents      []AgentConfig     `yaml:"agents"`
	Stimuli     []StimulusConfig  `yaml:"stimuli"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds viewer window settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// ArenaConfig holds arena dimensions and the default boundary policy.
type ArenaConfig struct {
	Width    float64 `yaml:"width"`    // 0 = screen width
	Height   float64 `yaml:"height"`   // 0 = screen height
	Boundary string  `yaml:"boundary"` // clamp or wrap
}

// PhysicsConfig holds time stepping parameters.
type PhysicsConfig struct {
	DT             float64 `yaml:"dt"`               // seconds per tick
	DeltaTime      bool    `yaml:"delta_time"`       // scale motion by elapsed seconds instead of ticks
	Collisions     bool    `yaml:"collisions"`       // reflect overlapping vehicles
	StepsPerUpdate int     `yaml:"steps_per_update"` // ticks per rendered frame
	TargetScale    float64 `yaml:"target_scale"`     // target speed to units per second
}

// VehicleConfig holds body and sensor geometry shared by all agents.
type VehicleConfig struct {
	BodyRadius    float64 `yaml:"body_radius"`
	SensorRadius  float64 `yaml:"sensor_radius"`
	SensorSpacing float64 `yaml:"sensor_spacing"`
	RotationGain  float64 `yaml:"rotation_gain"`
	MotorFloor    float64 `yaml:"motor_floor"`
}

// KindConfig wires one stimulus kind on multi-sensory vehicles.
type KindConfig struct {
	Kind       string `yaml:"kind"`
	Crossed    bool   `yaml:"crossed"`
	Inhibitory bool   `yaml:"inhibitory"`
}

// JitterConfig holds heading noise ("friction") parameters.
type JitterConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Mode      string  `yaml:"mode"`      // uniform or simplex
	Amplitude float64 `yaml:"amplitude"` // degrees
	Frequency float64 `yaml:"frequency"` // simplex only, samples per unit noise
	Seed      int64   `yaml:"seed"`
}

// Jitter modes.
const (
	JitterUniform = "uniform"
	JitterSimplex = "simplex"
)

// RecognitionConfig holds the threshold network plus pursuit parameters.
type RecognitionConfig struct {
	neural.Config `yaml:",inline"`
	TurnFraction  float64 `yaml:"turn_fraction"`
	PursuitSpeed  float64 `yaml:"pursuit_speed"`
}

// AgentConfig describes one vehicle. Zero-valued overrides fall back to the
// preset, then to the shared sections.
type AgentConfig struct {
	Name     string           `yaml:"name"`
	Preset   string           `yaml:"preset"`
	Behavior string           `yaml:"behavior"` // used when no preset is given
	X        float64          `yaml:"x"`
	Y        float64          `yaml:"y"`
	Heading  float64          `yaml:"heading"`
	Boundary string           `yaml:"boundary"` // overrides arena.boundary
	Wiring   *motor.Wiring    `yaml:"wiring,omitempty"`
	Response *response.Config `yaml:"response,omitempty"`
	Senses   []string         `yaml:"senses,omitempty"`
}

// StimulusConfig describes one stimulus placed at startup.
type StimulusConfig struct {
	Kind      string  `yaml:"kind"`
	Tag       string  `yaml:"tag"`
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	Radius    float64 `yaml:"radius"`
	Moving    bool    `yaml:"moving"`
	Heading   float64 `yaml:"heading"`
	Speed     float64 `yaml:"speed"`
	Frequency float64 `yaml:"frequency"`
}

// TelemetryConfig holds run recording parameters.
type TelemetryConfig struct {
	StatsWindowSec float64 `yaml:"stats_window_sec"` // aggregation window
	TraceEvery     int     `yaml:"trace_every"`      // write a trace row every N ticks, 0 = off
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ArenaW, ArenaH float64
	Boundary       kinematics.Boundary
	KindWiring     motor.KindWiring
	StatsWindow    int // ticks per telemetry window
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

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Parse(nil)
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	var data []byte
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}
	return Parse(data)
}

// Parse overlays data on the embedded defaults, then derives and validates.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	if len(data) > 0 {
		// Only overwrites fields present in data; lists are replaced whole.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	c.Derived.ArenaW = c.Arena.Width
	if c.Derived.ArenaW == 0 {
		c.Derived.ArenaW = float64(c.Screen.Width)
	}
	c.Derived.ArenaH = c.Arena.Height
	if c.Derived.ArenaH == 0 {
		c.Derived.ArenaH = float64(c.Screen.Height)
	}

	b, err := kinematics.ParseBoundary(c.Arena.Boundary)
	if err != nil {
		return fmt.Errorf("%w: arena: %v", ErrInvalid, err)
	}
	c.Derived.Boundary = b

	if len(c.Kinds) == 0 {
		c.Derived.KindWiring = motor.DefaultKindWiring()
	} else {
		c.Derived.KindWiring = make(motor.KindWiring, len(c.Kinds))
		for _, k := range c.Kinds {
			kind, err := motor.ParseKind(k.Kind)
			if err != nil {
				return fmt.Errorf("%w: kinds: %v", ErrInvalid, err)
			}
			c.Derived.KindWiring[kind] = motor.Wiring{Crossed: k.Crossed, Inhibitory: k.Inhibitory}
		}
	}

	if c.Physics.StepsPerUpdate < 1 {
		c.Physics.StepsPerUpdate = 1
	}
	c.Derived.StatsWindow = 1
	if c.Physics.DT > 0 && c.Telemetry.StatsWindowSec > 0 {
		c.Derived.StatsWindow = max(1, int(math.Round(c.Telemetry.StatsWindowSec/c.Physics.DT)))
	}
	return nil
}

// Validate reports every problem with the configuration, wrapped in ErrInvalid.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...)))
	}

	if !(c.Derived.ArenaW > 0) || !(c.Derived.ArenaH > 0) {
		bad("arena size must be positive, got %vx%v", c.Derived.ArenaW, c.Derived.ArenaH)
	}
	if !(c.Physics.DT > 0) || math.IsInf(c.Physics.DT, 0) {
		bad("physics.dt must be positive, got %v", c.Physics.DT)
	}
	if !(c.Vehicle.BodyRadius > 0) {
		bad("vehicle.body_radius must be positive, got %v", c.Vehicle.BodyRadius)
	}
	if c.Vehicle.SensorRadius < 0 || c.Vehicle.SensorSpacing < 0 {
		bad("vehicle sensor radius and spacing must be >= 0")
	}
	if err := c.Response.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("%w: response: %w", ErrInvalid, err))
	}
	if err := c.Recognition.Config.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("%w: recognition: %w", ErrInvalid, err))
	}
	if c.Recognition.TurnFraction < 0 || c.Recognition.TurnFraction > 1 {
		bad("recognition.turn_fraction must be in [0, 1], got %v", c.Recognition.TurnFraction)
	}
	switch c.Jitter.Mode {
	case "", JitterUniform, JitterSimplex:
	default:
		bad("jitter.mode must be %q or %q, got %q", JitterUniform, JitterSimplex, c.Jitter.Mode)
	}
	if c.Jitter.Amplitude < 0 {
		bad("jitter.amplitude must be >= 0, got %v", c.Jitter.Amplitude)
	}

	names := make(map[string]bool, len(c.Agents))
	for i, a := range c.Agents {
		if a.Name != "" {
			if names[a.Name] {
				bad("agents[%d]: duplicate name %q", i, a.Name)
			}
			names[a.Name] = true
		}
		if _, err := kinematics.ParseBoundary(a.Boundary); a.Boundary != "" && err != nil {
			bad("agents[%d]: %v", i, err)
		}
		if a.Response != nil {
			if err := a.Response.Validate(); err != nil {
				errs = append(errs, fmt.Errorf("%w: agents[%d]: %w", ErrInvalid, i, err))
			}
		}
		for _, k := range a.Senses {
			if _, err := motor.ParseKind(k); err != nil {
				bad("agents[%d]: %v", i, err)
			}
		}
	}
	for i, s := range c.Stimuli {
		if _, err := motor.ParseKind(s.Kind); err != nil {
			bad("stimuli[%d]: %v", i, err)
		}
		if s.Radius < 0 {
			bad("stimuli[%d]: radius must be >= 0, got %v", i, s.Radius)
		}
	}
	return errors.Join(errs...)
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
