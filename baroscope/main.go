// baroscope shows a live, auto-scaling chart of barometric pressure.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/theme"
	"github.com/dustin/go-humanize"
	"github.com/itohio/baroscope/pkg/config"
	"github.com/itohio/baroscope/pkg/display"
	"github.com/itohio/baroscope/pkg/input"
	"github.com/itohio/baroscope/pkg/meter"
	"github.com/itohio/baroscope/pkg/sensor"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var version = "dev"

// options holds command line overrides. Zero values leave the configuration untouched.
type options struct {
	configPath string
	sensor     string
	port       string
	headless   bool
	frames     uint64
	logLevel   string
}

func main() {
	var opts options

	cmd := &cobra.Command{
		Use:   "baroscope",
		Short: "Real-time barometric pressure scope",
		Long: `baroscope reads a barometric pressure sensor, smooths the readings and
draws their whole history as an auto-scaling chart. The history is halved and
the sampling period doubled whenever it outgrows the display, so memory and
render cost stay bounded while the chart covers ever longer spans.

Sensors: a simulated one (mock), an MCU streaming "ticks_ms,mbar" lines over
a serial port (serial), or a BMP280/BME280 on a local I2C bus (i2c).`,
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, &opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "config.yaml", "Configuration file path")
	f.StringVarP(&opts.sensor, "sensor", "s", "", "Sensor kind: mock, serial or i2c")
	f.StringVarP(&opts.port, "port", "p", "", "Serial port override (e.g., COM3 or /dev/ttyACM0)")
	f.BoolVar(&opts.headless, "headless", false, "Render without a window")
	f.Uint64Var(&opts.frames, "frames", 0, "Exit after this many frames in headless mode")
	f.StringVar(&opts.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// applyOverrides copies the flags that were set onto cfg.
func applyOverrides(cfg *config.Config, opts *options, changed func(string) bool) {
	if changed("sensor") {
		cfg.Sensor.Kind = opts.sensor
	}
	if changed("port") {
		cfg.Sensor.Port = opts.port
		if !changed("sensor") {
			cfg.Sensor.Kind = config.SensorSerial
		}
	}
	if changed("headless") {
		cfg.Display.Headless = opts.headless
	}
	if changed("frames") {
		cfg.Display.Frames = opts.frames
	}
	if changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
}

func newLogger(level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	log := logrus.New()
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return log, nil
}

func run(cmd *cobra.Command, opts *options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	applyOverrides(cfg, opts, cmd.Flags().Changed)
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := newLogger(cfg.Log.Level)
	if err != nil {
		return err
	}
	exit, err := input.ParseButton(cfg.Display.ExitKey)
	if err != nil {
		return err
	}

	var buttons input.Latch

	// Signals press the exit button; the loop notices it at the start of the next frame.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		for sig := range sigs {
			log.WithField("signal", sig).Info("Stopping")
			buttons.Press(exit)
		}
	}()

	s, err := sensor.Open(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to open %s sensor: %w", cfg.Sensor.Kind, err)
	}
	defer s.Close()
	log.WithField("sensor", cfg.Sensor.Kind).Info("Sensor ready")

	started := time.Now()
	var m *meter.Meter
	if cfg.Display.Headless {
		m, err = runHeadless(cfg, s, &buttons, exit, log)
	} else {
		m, err = runWindow(cfg, opts.configPath, s, &buttons, exit, log)
	}
	if m != nil {
		logSummary(log, m.Stats(), time.Since(started))
	}
	if err != nil {
		log.WithError(err).Error("Stopped")
	}
	return err
}

func runHeadless(cfg *config.Config, s sensor.Sensor, buttons *input.Latch, exit input.Button, log logrus.FieldLogger) (*meter.Meter, error) {
	presenter := &display.Headless{
		Limit:   cfg.Display.Frames,
		Buttons: buttons,
		Exit:    exit,
		Log:     log,
	}
	fb := display.NewFramebuffer(cfg.Display.Width, cfg.Display.Height, presenter, log)

	m, err := meter.New(cfg, meter.Deps{
		Sensor:  s,
		Display: fb,
		Buttons: buttons,
		Log:     log,
	})
	if err != nil {
		return nil, err
	}
	return m, m.Run()
}

func runWindow(cfg *config.Config, configPath string, s sensor.Sensor, buttons *input.Latch, exit input.Button, log logrus.FieldLogger) (*meter.Meter, error) {
	a := app.NewWithID("com.itohio.baroscope")
	win := display.NewWindow(a, "Baroscope", cfg.Display.Width, cfg.Display.Height, cfg.Display.Scale, buttons, exit)
	win.AddAction(theme.SettingsIcon(), func() {
		showSettingsDialog(win.Fyne(), cfg, configPath)
	})
	fb := display.NewFramebuffer(cfg.Display.Width, cfg.Display.Height, win, log)

	m, err := meter.New(cfg, meter.Deps{
		Sensor:   s,
		Display:  fb,
		Buttons:  buttons,
		Shutdown: func() { fyne.Do(a.Quit) },
		Log:      log,
	})
	if err != nil {
		return nil, err
	}

	done := make(chan error, 1)
	go func() {
		err := m.Run()
		if err != nil {
			fyne.Do(a.Quit)
		}
		done <- err
	}()

	win.ShowAndRun()

	buttons.Press(exit)
	select {
	case err = <-done:
	case <-time.After(5 * time.Second):
		err = fmt.Errorf("measurement loop did not stop")
	}
	return m, err
}

func logSummary(log logrus.FieldLogger, st meter.Stats, elapsed time.Duration) {
	log.WithFields(logrus.Fields{
		"frames":      humanize.Comma(int64(st.Frames)),
		"decimations": st.Decimations,
		"period":      st.Period,
		"history":     fmt.Sprintf("%s samples over %s", humanize.Comma(int64(st.Samples)), st.Span.Round(time.Second)),
		"pressure":    fmt.Sprintf("%.2f mbar", st.LastRaw),
		"uptime":      elapsed.Round(time.Second),
	}).Info("Summary")
}
