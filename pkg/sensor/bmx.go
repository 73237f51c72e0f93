package sensor

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/bmxx80"
	"periph.io/x/host/v3"
)

// BMX reads a Bosch BMP180/BMP280/BME280 on a local I2C bus.
type BMX struct {
	bus i2c.BusCloser
	dev *bmxx80.Dev
}

// NewBMX opens the I2C bus (empty name selects the first one) and the sensor at addr.
func NewBMX(bus string, addr uint16) (*BMX, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize host drivers: %w", err)
	}

	b, err := i2creg.Open(bus)
	if err != nil {
		return nil, fmt.Errorf("failed to open i2c bus %q: %w", bus, err)
	}

	opts := bmxx80.DefaultOpts
	opts.Pressure = bmxx80.O16x
	opts.Filter = bmxx80.F4

	dev, err := bmxx80.NewI2C(b, addr, &opts)
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("failed to open bmxx80 at 0x%02x: %w", addr, err)
	}

	return &BMX{bus: b, dev: dev}, nil
}

// Read performs a single measurement.
func (s *BMX) Read() (float64, error) {
	var env physic.Env
	if err := s.dev.Sense(&env); err != nil {
		return 0, fmt.Errorf("bmxx80 sense: %w", err)
	}
	return toMbar(env.Pressure), nil
}

// Close halts the sensor and releases the bus.
func (s *BMX) Close() error {
	if err := s.dev.Halt(); err != nil {
		s.bus.Close()
		return fmt.Errorf("bmxx80 halt: %w", err)
	}
	return s.bus.Close()
}

// toMbar converts a pressure to millibar (hPa).
func toMbar(p physic.Pressure) float64 {
	return float64(p) / float64(100*physic.Pascal)
}
