// Package scenario describes simulation setups in YAML and populates a
// sim.World from them.
package scenario

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/plus3/kinetic/sim"
	"github.com/plus3/kinetic/vec"
	"github.com/tanema/gween/ease"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultScenario []byte

const (
	defaultWidth  = 640
	defaultHeight = 480
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid scenario")

// Scenario is the root of a scenario file.
type Scenario struct {
	Name     string         `yaml:"name"`
	Width    float64        `yaml:"width,omitempty"`
	Height   float64        `yaml:"height,omitempty"`
	MaxDelta float64        `yaml:"max_delta,omitempty"`
	Entities []EntityConfig `yaml:"entities"`
}

// Point is a 2D coordinate written as {x: 1, y: 2}.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (p Point) Vec() vec.Vec2 {
	return vec.New(p.X, p.Y)
}

// EntityConfig describes one entity, or Count copies of it placed Spread
// apart starting at Position.
type EntityConfig struct {
	Name      string           `yaml:"name"`
	Position  Point            `yaml:"position"`
	Count     int              `yaml:"count,omitempty"`
	Spread    Point            `yaml:"spread,omitempty"`
	Clickable bool             `yaml:"clickable,omitempty"`
	Movement  *MovementConfig  `yaml:"movement,omitempty"`
	Gravity   *Point           `yaml:"gravity,omitempty"`
	Friction  *FrictionConfig  `yaml:"friction,omitempty"`
	Collision *CollisionConfig `yaml:"collision,omitempty"`
	Tween     *TweenConfig     `yaml:"tween,omitempty"`
}

type MovementConfig struct {
	Integrator   string            `yaml:"integrator,omitempty"`
	Velocity     Point             `yaml:"velocity,omitempty"`
	Acceleration Point             `yaml:"acceleration,omitempty"`
	Static       bool              `yaml:"static,omitempty"`
	KeepMomentum bool              `yaml:"keep_momentum,omitempty"`
	Clamp        *float64          `yaml:"clamp,omitempty"`
	Constraint   *ConstraintConfig `yaml:"constraint,omitempty"`
}

type ConstraintConfig struct {
	Kind     string  `yaml:"kind"`
	Position Point   `yaml:"position"`
	Width    float64 `yaml:"width,omitempty"`
	Height   float64 `yaml:"height,omitempty"`
	Radius   float64 `yaml:"radius,omitempty"`
}

type FrictionConfig struct {
	Mode        string  `yaml:"mode"`
	Coefficient float64 `yaml:"coefficient"`
}

type CollisionConfig struct {
	Layers []int         `yaml:"layers,omitempty"`
	Shapes []ShapeConfig `yaml:"shapes"`
	Draw   bool          `yaml:"draw,omitempty"`
}

type ShapeConfig struct {
	Kind    string  `yaml:"kind"`
	Offset  Point   `yaml:"offset,omitempty"`
	Radius  float64 `yaml:"radius,omitempty"`
	Width   float64 `yaml:"width,omitempty"`
	Height  float64 `yaml:"height,omitempty"`
	Trigger *bool   `yaml:"trigger,omitempty"`
}

type TweenConfig struct {
	To       Point   `yaml:"to"`
	Duration float64 `yaml:"duration"`
	Ease     string  `yaml:"ease,omitempty"`
}

var easings = map[string]ease.TweenFunc{
	"linear":     ease.Linear,
	"inOutQuad":  ease.InOutQuad,
	"outCubic":   ease.OutCubic,
	"inOutCubic": ease.InOutCubic,
	"inOutSine":  ease.InOutSine,
	"outBounce":  ease.OutBounce,
	"outElastic": ease.OutElastic,
}

// Load decodes, defaults and validates a scenario.
func Load(r io.Reader) (*Scenario, error) {
	var s Scenario
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFile loads the scenario at path.
func LoadFile(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Default returns the embedded demo scenario.
func Default() *Scenario {
	s, err := Load(bytes.NewReader(defaultScenario))
	if err != nil {
		panic(fmt.Sprintf("embedded scenario: %v", err))
	}
	return s
}

func (s *Scenario) applyDefaults() {
	if s.Width == 0 {
		s.Width = defaultWidth
	}
	if s.Height == 0 {
		s.Height = defaultHeight
	}
	if s.MaxDelta == 0 {
		s.MaxDelta = sim.DefaultMaxDelta
	}
	for i := range s.Entities {
		e := &s.Entities[i]
		if e.Count == 0 {
			e.Count = 1
		}
		if e.Movement != nil && e.Movement.Integrator == "" {
			e.Movement.Integrator = sim.IntegratorEuler.String()
		}
		if e.Tween != nil && e.Tween.Ease == "" {
			e.Tween.Ease = "linear"
		}
	}
}

// Validate reports the first problem found, wrapped in ErrInvalid.
func (s *Scenario) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: size %gx%g", ErrInvalid, s.Width, s.Height)
	}
	if s.MaxDelta < 0 {
		return fmt.Errorf("%w: negative max_delta", ErrInvalid)
	}
	for i, e := range s.Entities {
		if err := e.validate(); err != nil {
			return fmt.Errorf("%w: entity %d (%q): %w", ErrInvalid, i, e.Name, err)
		}
	}
	return nil
}

func (e EntityConfig) validate() error {
	if e.Name == "" {
		return errors.New("missing name")
	}
	if e.Count < 1 {
		return fmt.Errorf("count %d", e.Count)
	}
	if e.Movement != nil {
		if _, err := parseIntegrator(e.Movement.Integrator); err != nil {
			return err
		}
		if c := e.Movement.Constraint; c != nil {
			if err := c.validate(); err != nil {
				return err
			}
		}
	}
	if (e.Gravity != nil || e.Friction != nil) && e.Movement == nil {
		return errors.New("gravity and friction need movement")
	}
	if e.Friction != nil {
		if _, err := sim.ParseFrictionMode(e.Friction.Mode); err != nil {
			return err
		}
		if e.Friction.Coefficient < 0 {
			return fmt.Errorf("negative friction coefficient %g", e.Friction.Coefficient)
		}
	}
	if e.Collision != nil {
		if len(e.Collision.Shapes) == 0 {
			return errors.New("collision without shapes")
		}
		for _, shape := range e.Collision.Shapes {
			if err := shape.validate(); err != nil {
				return err
			}
		}
	}
	if e.Clickable && e.Collision == nil {
		return errors.New("clickable entities need collision shapes")
	}
	if e.Tween != nil {
		if e.Tween.Duration <= 0 {
			return fmt.Errorf("tween duration %g", e.Tween.Duration)
		}
		if _, ok := easings[e.Tween.Ease]; !ok {
			return fmt.Errorf("unknown ease %q", e.Tween.Ease)
		}
	}
	return nil
}

func (c ConstraintConfig) validate() error {
	switch c.Kind {
	case "rect":
		if c.Width <= 0 || c.Height <= 0 {
			return fmt.Errorf("rect constraint size %gx%g", c.Width, c.Height)
		}
	case "circle":
		if c.Radius <= 0 {
			return fmt.Errorf("circle constraint radius %g", c.Radius)
		}
	default:
		return fmt.Errorf("unknown constraint kind %q", c.Kind)
	}
	return nil
}

func (c ShapeConfig) validate() error {
	switch c.Kind {
	case "circle":
		if c.Radius <= 0 {
			return fmt.Errorf("circle radius %g", c.Radius)
		}
	case "rect":
		if c.Width <= 0 || c.Height <= 0 {
			return fmt.Errorf("rect size %gx%g", c.Width, c.Height)
		}
	default:
		return fmt.Errorf("unknown shape kind %q", c.Kind)
	}
	return nil
}

func parseIntegrator(s string) (sim.Integrator, error) {
	switch strings.ToLower(s) {
	case "euler":
		return sim.IntegratorEuler, nil
	case "verlet":
		return sim.IntegratorVerlet, nil
	}
	return 0, fmt.Errorf("unknown integrator %q", s)
}

// Viewport returns the scenario size as a sim.Viewport.
func (s *Scenario) Viewport() sim.Viewport {
	return size{s.Width, s.Height}
}

type size struct{ w, h float64 }

func (s size) ScreenWidth() float64  { return s.w }
func (s size) ScreenHeight() float64 { return s.h }
