package sensor

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"go.bug.st/serial"
)

// DefaultBaudRate is the baud rate used by the firmware.
const DefaultBaudRate = 115200

// Reading is a single line received from the MCU.
type Reading struct {
	Ticks    int64   // MCU uptime (ms), -1 when the line carries no timestamp
	Pressure float64 // Pressure (mbar)
}

// Serial reads pressure from an MCU streaming text lines over a serial port.
// A background goroutine keeps the latest reading; Read returns it.
type Serial struct {
	port     string
	baudRate int
	log      logrus.FieldLogger

	mu        sync.RWMutex
	conn      io.ReadCloser
	latest    Reading
	received  uint64
	err       error
	connected bool
	ready     chan struct{} // closed on the first reading
	done      chan struct{} // closed when the reader exits
	readyOnce sync.Once
}

// NewSerial creates a serial sensor for the given port.
func NewSerial(port string, baudRate int, log logrus.FieldLogger) *Serial {
	if baudRate == 0 {
		baudRate = DefaultBaudRate
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Serial{
		port:     port,
		baudRate: baudRate,
		log:      log.WithField("port", port),
		ready:    make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Ports returns the names of available serial ports.
func Ports() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}
	return ports, nil
}

// Connect opens the serial port and starts reading lines.
func (d *Serial) Connect() error {
	port, err := serial.Open(d.port, &serial.Mode{BaudRate: d.baudRate})
	if err != nil {
		return fmt.Errorf("failed to open serial port %s: %w", d.port, err)
	}
	return d.attach(port)
}

// attach starts reading from an already opened connection.
func (d *Serial) attach(conn io.ReadCloser) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.connected {
		return fmt.Errorf("already connected")
	}
	d.conn = conn
	d.connected = true

	go d.readLines(conn)
	return nil
}

// Read returns the latest pressure. It blocks until the first line arrives
// and fails once the reader has stopped.
func (d *Serial) Read() (float64, error) {
	d.mu.RLock()
	connected := d.connected
	d.mu.RUnlock()
	if !connected {
		return 0, ErrNotConnected
	}

	select {
	case <-d.ready:
	case <-d.done:
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.err != nil {
		return 0, d.err
	}
	if d.received == 0 {
		return 0, ErrNotConnected
	}
	return d.latest.Pressure, nil
}

// Latest returns the most recent reading and the number of readings received so far.
func (d *Serial) Latest() (Reading, uint64) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.latest, d.received
}

// Close closes the port and stops the reader.
func (d *Serial) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return nil
	}
	d.connected = false

	if err := d.conn.Close(); err != nil {
		return fmt.Errorf("failed to close serial port %s: %w", d.port, err)
	}
	return nil
}

// readLines parses lines until the connection fails or is closed.
func (d *Serial) readLines(r io.Reader) {
	defer close(d.done)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		reading, err := parseLine(line)
		if err != nil {
			d.log.WithError(err).WithField("line", line).Warn("Failed to parse line")
			continue
		}

		d.mu.Lock()
		d.latest = reading
		d.received++
		d.mu.Unlock()
		d.readyOnce.Do(func() { close(d.ready) })
	}

	err := scanner.Err()
	if err == nil || errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}

	d.mu.Lock()
	d.err = fmt.Errorf("serial port %s: %w", d.port, err)
	d.mu.Unlock()
}

// parseLine parses a line from the MCU into a Reading.
// Format: ticks_ms,pressure_mbar or just pressure_mbar
// Example: 123456,1013.25
func parseLine(line string) (Reading, error) {
	parts := strings.Split(line, ",")
	if len(parts) > 2 {
		return Reading{}, fmt.Errorf("invalid line format: expected at most 2 comma-separated values, got %d", len(parts))
	}

	reading := Reading{Ticks: -1}
	if len(parts) == 2 {
		ticks, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
		if err != nil {
			return Reading{}, fmt.Errorf("invalid ticks: %w", err)
		}
		if ticks < 0 {
			return Reading{}, fmt.Errorf("negative ticks: %d", ticks)
		}
		reading.Ticks = ticks
	}

	pressure, err := strconv.ParseFloat(strings.TrimSpace(parts[len(parts)-1]), 64)
	if err != nil {
		return Reading{}, fmt.Errorf("invalid pressure: %w", err)
	}
	if math.IsNaN(pressure) || math.IsInf(pressure, 0) {
		return Reading{}, fmt.Errorf("pressure is not finite: %g", pressure)
	}
	if pressure <= 0 || pressure > 2000 {
		return Reading{}, fmt.Errorf("pressure out of range: %g mbar", pressure)
	}
	reading.Pressure = pressure

	return reading, nil
}
