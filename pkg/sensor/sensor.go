// Package sensor provides barometric pressure sources: a simulated sensor,
// an MCU streaming readings over a serial port and a BMP280/BME280 on a local I2C bus.
package sensor

import (
	"errors"
	"fmt"

	"github.com/itohio/baroscope/pkg/config"
	"github.com/sirupsen/logrus"
)

// ErrNotConnected is returned when reading from a sensor that is not connected.
var ErrNotConnected = errors.New("sensor: not connected")

// Sensor is a polled source of pressure readings.
type Sensor interface {
	// Read returns the current pressure in mbar. Errors are I/O failures of the underlying bus.
	Read() (float64, error)
	Close() error
}

var (
	_ Sensor = (*Serial)(nil)
	_ Sensor = (*Mock)(nil)
	_ Sensor = (*BMX)(nil)
)

// Open creates and connects the sensor selected by cfg.Sensor.Kind.
func Open(cfg *config.Config, log logrus.FieldLogger) (Sensor, error) {
	switch cfg.Sensor.Kind {
	case config.SensorMock:
		return NewMock(&cfg.Mock), nil
	case config.SensorSerial:
		dev := NewSerial(cfg.Sensor.Port, cfg.Sensor.BaudRate, log)
		if err := dev.Connect(); err != nil {
			return nil, err
		}
		return dev, nil
	case config.SensorI2C:
		return NewBMX(cfg.Sensor.I2CBus, cfg.Sensor.Address)
	default:
		return nil, fmt.Errorf("unknown sensor kind %q", cfg.Sensor.Kind)
	}
}
