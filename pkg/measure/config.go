package measure

import (
	"fmt"
	"image/color"
	"math"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// RGB is a color triple as written in configuration files: [r, g, b].
type RGB struct {
	R, G, B uint8
}

// RGBA converts to an opaque color usable by gocv and fyne.
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

func (c RGB) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.R, c.G, c.B)
}

// UnmarshalYAML accepts a three element sequence of integers in 0..255.
func (c *RGB) UnmarshalYAML(value *yaml.Node) error {
	var parts []int
	if err := value.Decode(&parts); err != nil {
		return errors.Wrapf(err, "line %d: color must be a sequence [r, g, b]", value.Line)
	}
	if len(parts) != 3 {
		return errors.Errorf("line %d: color must have 3 components, got %d", value.Line, len(parts))
	}
	for _, p := range parts {
		if p < 0 || p > 255 {
			return errors.Errorf("line %d: color component %d out of range 0..255", value.Line, p)
		}
	}
	c.R, c.G, c.B = uint8(parts[0]), uint8(parts[1]), uint8(parts[2])
	return nil
}

// MarshalYAML writes the color back as a flow sequence.
func (c RGB) MarshalYAML() (interface{}, error) {
	n := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range []uint8{c.R, c.G, c.B} {
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: fmt.Sprint(v)})
	}
	return n, nil
}

// Config is the immutable measurement configuration supplied once at
// construction.
type Config struct {
	PixelsPerMeter float64        `yaml:"pixels_per_meter"`
	LineThickness  int            `yaml:"line_thickness"`
	LineColor      RGB            `yaml:"line_color"`
	CentroidColor  RGB            `yaml:"centroid_color"`
	ClassNames     map[int]string `yaml:"names"`
	ViewImg        bool           `yaml:"view_img"`
	WindowName     string         `yaml:"window_name"`
}

// DefaultConfig returns the configuration used by the demo entry point.
func DefaultConfig() Config {
	return Config{
		PixelsPerMeter: 10,
		LineThickness:  2,
		LineColor:      RGB{255, 255, 0},
		CentroidColor:  RGB{255, 0, 255},
		ClassNames:     map[int]string{0: "person", 1: "car"},
		ViewImg:        false,
		WindowName:     "Distance Calculation",
	}
}

// ConfigError reports the first invalid configuration field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config %s: %s", e.Field, e.Reason)
}

// Validate checks the configuration contract and returns a *ConfigError
// for the first offending field.
func (c Config) Validate() error {
	if math.IsNaN(c.PixelsPerMeter) || math.IsInf(c.PixelsPerMeter, 0) || c.PixelsPerMeter <= 0 {
		return &ConfigError{Field: "pixels_per_meter", Reason: fmt.Sprintf("must be a positive number, got %v", c.PixelsPerMeter)}
	}
	if c.LineThickness <= 0 {
		return &ConfigError{Field: "line_thickness", Reason: fmt.Sprintf("must be positive, got %d", c.LineThickness)}
	}
	if c.ViewImg && c.WindowName == "" {
		return &ConfigError{Field: "window_name", Reason: "required when view_img is enabled"}
	}
	return nil
}

// Label returns the display name of a class, falling back to its number.
func (c Config) Label(classID int) string {
	if name, ok := c.ClassNames[classID]; ok && name != "" {
		return name
	}
	return fmt.Sprint(classID)
}

// clone copies the class name map so the processor never shares it with
// the caller.
func (c Config) clone() Config {
	names := make(map[int]string, len(c.ClassNames))
	for k, v := range c.ClassNames {
		names[k] = v
	}
	c.ClassNames = names
	return c
}
