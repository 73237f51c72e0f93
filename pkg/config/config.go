package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned by Validate for unusable settings.
var ErrInvalid = errors.New("invalid configuration")

// Sensor kinds.
const (
	SensorMock   = "mock"
	SensorSerial = "serial"
	SensorI2C    = "i2c"
)

// Config represents the application configuration.
type Config struct {
	Display  DisplayConfig  `yaml:"display"`
	Sensor   SensorConfig   `yaml:"sensor"`
	Filter   FilterConfig   `yaml:"filter"`
	Sampling SamplingConfig `yaml:"sampling"`
	Chart    ChartConfig    `yaml:"chart"`
	Mock     MockConfig     `yaml:"mock"`
	Log      LogConfig      `yaml:"log"`
}

// DisplayConfig contains the display surface geometry.
type DisplayConfig struct {
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
	Scale    float32 `yaml:"scale"`    // Window magnification on the host
	Headless bool    `yaml:"headless"` // Render without a window
	Frames   uint64  `yaml:"frames"`   // Exit after this many frames in headless mode (0 = run forever)
	ExitKey  string  `yaml:"exit_key"` // Button that ends the run
}

// SensorConfig selects and configures the pressure sensor.
type SensorConfig struct {
	Kind     string `yaml:"kind"` // mock, serial or i2c
	Port     string `yaml:"port"`
	BaudRate int    `yaml:"baud_rate"`
	I2CBus   string `yaml:"i2c_bus"` // Empty selects the first bus
	Address  uint16 `yaml:"address"`
}

// FilterConfig contains the low-pass filter parameters.
type FilterConfig struct {
	SettlingTime time.Duration `yaml:"settling_time"` // ~97% of a step is reached within this time
}

// SamplingConfig contains pacing and history parameters.
type SamplingConfig struct {
	InitialPeriod    time.Duration `yaml:"initial_period"`
	DecimationFactor float64       `yaml:"decimation_factor"` // History is halved above width/factor samples
}

// ChartConfig contains chart layout and palette. Colours are packed 0xRRGGBB values.
type ChartConfig struct {
	Padding        float64 `yaml:"padding"`
	Grid           bool    `yaml:"grid"`
	GridDensity    int     `yaml:"grid_density"`
	HeightFraction float64 `yaml:"height_fraction"` // Part of the screen used by the chart, the rest holds the readout
	Background     uint32  `yaml:"background"`
	GridColor      uint32  `yaml:"grid_color"`
	LineColor      uint32  `yaml:"line_color"`
	TextColor      uint32  `yaml:"text_color"`
	Font           string  `yaml:"font"`
}

// MockConfig contains simulated sensor parameters.
type MockConfig struct {
	Pressure    float64       `yaml:"pressure"`     // Mean pressure (mbar)
	DriftAmpl   float64       `yaml:"drift_ampl"`   // Slow drift amplitude (mbar)
	DriftPeriod time.Duration `yaml:"drift_period"` // Slow drift period
	NoiseLevel  float64       `yaml:"noise_level"`  // Gaussian noise standard deviation (mbar)
}

// LogConfig contains logging parameters.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns a default configuration with sensible values.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			Width:   320,
			Height:  240,
			Scale:   2,
			ExitKey: "home",
		},
		Sensor: SensorConfig{
			Kind:     SensorMock,
			Port:     "/dev/ttyACM0",
			BaudRate: 115200,
			Address:  0x76,
		},
		Filter: FilterConfig{
			SettlingTime: 5 * time.Second,
		},
		Sampling: SamplingConfig{
			InitialPeriod:    time.Second / 64,
			DecimationFactor: 3,
		},
		Chart: ChartConfig{
			Padding:        0.05,
			Grid:           true,
			GridDensity:    5,
			HeightFraction: 0.8,
			Background:     0x491D88,
			GridColor:      0x331A38,
			LineColor:      0x43B5A0,
			TextColor:      0x43B5A0,
			Font:           "roboto_regular18",
		},
		Mock: MockConfig{
			Pressure:    1013.25,
			DriftAmpl:   0.5,
			DriftPeriod: 2 * time.Minute,
			NoiseLevel:  0.05,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist or
// fields are missing, it uses default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ensureDefaults()

	return cfg, nil
}

// Save saves the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks that the configuration can drive the scope.
func (c *Config) Validate() error {
	switch {
	case c.Display.Width <= 0 || c.Display.Height <= 0:
		return fmt.Errorf("%w: display size %dx%d", ErrInvalid, c.Display.Width, c.Display.Height)
	case c.Filter.SettlingTime <= 0:
		return fmt.Errorf("%w: filter settling time %v", ErrInvalid, c.Filter.SettlingTime)
	case c.Sampling.InitialPeriod <= 0:
		return fmt.Errorf("%w: initial sampling period %v", ErrInvalid, c.Sampling.InitialPeriod)
	case c.Sampling.DecimationFactor <= 0:
		return fmt.Errorf("%w: decimation factor %v", ErrInvalid, c.Sampling.DecimationFactor)
	case c.Chart.Padding < 0 || c.Chart.Padding >= 0.5:
		return fmt.Errorf("%w: chart padding %v", ErrInvalid, c.Chart.Padding)
	case c.Chart.HeightFraction <= 0 || c.Chart.HeightFraction > 1:
		return fmt.Errorf("%w: chart height fraction %v", ErrInvalid, c.Chart.HeightFraction)
	}

	switch c.Sensor.Kind {
	case SensorMock, SensorSerial, SensorI2C:
	default:
		return fmt.Errorf("%w: unknown sensor kind %q", ErrInvalid, c.Sensor.Kind)
	}
	return nil
}

// ensureDefaults ensures that all required fields have default values if missing.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Display.Width == 0 {
		c.Display.Width = def.Display.Width
	}
	if c.Display.Height == 0 {
		c.Display.Height = def.Display.Height
	}
	if c.Display.Scale == 0 {
		c.Display.Scale = def.Display.Scale
	}
	if c.Display.ExitKey == "" {
		c.Display.ExitKey = def.Display.ExitKey
	}

	if c.Sensor.Kind == "" {
		c.Sensor.Kind = def.Sensor.Kind
	}
	if c.Sensor.Port == "" {
		c.Sensor.Port = def.Sensor.Port
	}
	if c.Sensor.BaudRate == 0 {
		c.Sensor.BaudRate = def.Sensor.BaudRate
	}
	if c.Sensor.Address == 0 {
		c.Sensor.Address = def.Sensor.Address
	}

	if c.Filter.SettlingTime == 0 {
		c.Filter.SettlingTime = def.Filter.SettlingTime
	}

	if c.Sampling.InitialPeriod == 0 {
		c.Sampling.InitialPeriod = def.Sampling.InitialPeriod
	}
	if c.Sampling.DecimationFactor == 0 {
		c.Sampling.DecimationFactor = def.Sampling.DecimationFactor
	}

	if c.Chart.GridDensity == 0 {
		c.Chart.GridDensity = def.Chart.GridDensity
	}
	if c.Chart.HeightFraction == 0 {
		c.Chart.HeightFraction = def.Chart.HeightFraction
	}
	if c.Chart.Font == "" {
		c.Chart.Font = def.Chart.Font
	}

	if c.Mock.Pressure == 0 {
		c.Mock.Pressure = def.Mock.Pressure
	}
	if c.Mock.DriftPeriod == 0 {
		c.Mock.DriftPeriod = def.Mock.DriftPeriod
	}

	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
}
