package main

import (
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/itohio/baroscope/pkg/config"
	"github.com/itohio/baroscope/pkg/display"
	"github.com/itohio/baroscope/pkg/sensor"
)

// settingsEditor edits a copy of the running configuration and saves it.
// The loop keeps its configuration; changes apply on the next start.
type settingsEditor struct {
	window fyne.Window
	path   string
	cfg    config.Config
}

// showSettingsDialog displays a settings dialog with tabs for the configuration sections.
func showSettingsDialog(window fyne.Window, cfg *config.Config, path string) {
	e := &settingsEditor{window: window, path: path, cfg: *cfg}

	tabs := container.NewAppTabs(
		e.sensorTab(),
		e.samplingTab(),
		e.chartTab(),
		e.mockTab(),
	)

	content := container.NewBorder(nil, nil, nil, nil, tabs)
	content.Resize(fyne.NewSize(480, 360))

	d := dialog.NewCustom("Settings", "Close", content, window)
	d.Resize(fyne.NewSize(480, 360))
	d.Show()
}

// save validates and writes the edited configuration.
func (e *settingsEditor) save() {
	if err := e.cfg.Validate(); err != nil {
		dialog.ShowError(err, e.window)
		return
	}
	if err := e.cfg.Save(e.path); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save config: %w", err), e.window)
		return
	}
	dialog.ShowInformation("Settings", fmt.Sprintf("Saved to %s, restart to apply.", e.path), e.window)
}

func (e *settingsEditor) sensorTab() *container.TabItem {
	kindSelect := widget.NewSelect([]string{config.SensorMock, config.SensorSerial, config.SensorI2C}, nil)
	kindSelect.SetSelected(e.cfg.Sensor.Kind)

	// Add current port if not in list
	ports, _ := sensor.Ports()
	found := false
	for _, p := range ports {
		if p == e.cfg.Sensor.Port {
			found = true
			break
		}
	}
	if !found && e.cfg.Sensor.Port != "" {
		ports = append(ports, e.cfg.Sensor.Port)
	}
	portSelect := widget.NewSelect(ports, nil)
	portSelect.SetSelected(e.cfg.Sensor.Port)

	baudEntry := widget.NewEntry()
	baudEntry.SetText(strconv.Itoa(e.cfg.Sensor.BaudRate))

	busEntry := widget.NewEntry()
	busEntry.SetText(e.cfg.Sensor.I2CBus)
	busEntry.SetPlaceHolder("first available")

	addrEntry := widget.NewEntry()
	addrEntry.SetText(fmt.Sprintf("0x%02x", e.cfg.Sensor.Address))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Sensor", Widget: kindSelect},
			{Text: "Serial Port", Widget: portSelect},
			{Text: "Baud Rate", Widget: baudEntry},
			{Text: "I2C Bus", Widget: busEntry},
			{Text: "I2C Address", Widget: addrEntry},
		},
		OnSubmit: func() {
			if kindSelect.Selected != "" {
				e.cfg.Sensor.Kind = kindSelect.Selected
			}
			if portSelect.Selected != "" {
				e.cfg.Sensor.Port = portSelect.Selected
			}
			if baud, err := strconv.Atoi(baudEntry.Text); err == nil {
				e.cfg.Sensor.BaudRate = baud
			}
			e.cfg.Sensor.I2CBus = busEntry.Text
			if addr, err := strconv.ParseUint(addrEntry.Text, 0, 16); err == nil {
				e.cfg.Sensor.Address = uint16(addr)
			}
			e.save()
		},
	}

	return container.NewTabItem("Sensor", form)
}

func (e *settingsEditor) samplingTab() *container.TabItem {
	settlingEntry := widget.NewEntry()
	settlingEntry.SetText(e.cfg.Filter.SettlingTime.String())

	periodEntry := widget.NewEntry()
	periodEntry.SetText(e.cfg.Sampling.InitialPeriod.String())

	factorEntry := widget.NewEntry()
	factorEntry.SetText(strconv.FormatFloat(e.cfg.Sampling.DecimationFactor, 'g', -1, 64))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Settling Time", Widget: settlingEntry},
			{Text: "Initial Period", Widget: periodEntry},
			{Text: "Decimation Factor", Widget: factorEntry},
		},
		OnSubmit: func() {
			if d, err := time.ParseDuration(settlingEntry.Text); err == nil {
				e.cfg.Filter.SettlingTime = d
			}
			if d, err := time.ParseDuration(periodEntry.Text); err == nil {
				e.cfg.Sampling.InitialPeriod = d
			}
			if f, err := strconv.ParseFloat(factorEntry.Text, 64); err == nil {
				e.cfg.Sampling.DecimationFactor = f
			}
			e.save()
		},
	}

	return container.NewTabItem("Sampling", form)
}

func (e *settingsEditor) chartTab() *container.TabItem {
	paddingEntry := widget.NewEntry()
	paddingEntry.SetText(fmt.Sprintf("%.2f", e.cfg.Chart.Padding))

	gridCheck := widget.NewCheck("", nil)
	gridCheck.SetChecked(e.cfg.Chart.Grid)

	densityEntry := widget.NewEntry()
	densityEntry.SetText(strconv.Itoa(e.cfg.Chart.GridDensity))

	heightEntry := widget.NewEntry()
	heightEntry.SetText(fmt.Sprintf("%.2f", e.cfg.Chart.HeightFraction))

	fonts := make([]string, 0, len(display.Fonts()))
	for _, f := range display.Fonts() {
		fonts = append(fonts, string(f))
	}
	fontSelect := widget.NewSelect(fonts, nil)
	fontSelect.SetSelected(e.cfg.Chart.Font)

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Padding", Widget: paddingEntry},
			{Text: "Grid", Widget: gridCheck},
			{Text: "Grid Density", Widget: densityEntry},
			{Text: "Chart Height", Widget: heightEntry},
			{Text: "Font", Widget: fontSelect},
		},
		OnSubmit: func() {
			if p, err := strconv.ParseFloat(paddingEntry.Text, 64); err == nil {
				e.cfg.Chart.Padding = p
			}
			e.cfg.Chart.Grid = gridCheck.Checked
			if n, err := strconv.Atoi(densityEntry.Text); err == nil {
				e.cfg.Chart.GridDensity = n
			}
			if h, err := strconv.ParseFloat(heightEntry.Text, 64); err == nil {
				e.cfg.Chart.HeightFraction = h
			}
			if fontSelect.Selected != "" {
				e.cfg.Chart.Font = fontSelect.Selected
			}
			e.save()
		},
	}

	return container.NewTabItem("Chart", form)
}

func (e *settingsEditor) mockTab() *container.TabItem {
	pressureEntry := widget.NewEntry()
	pressureEntry.SetText(fmt.Sprintf("%.2f", e.cfg.Mock.Pressure))

	driftEntry := widget.NewEntry()
	driftEntry.SetText(fmt.Sprintf("%.3f", e.cfg.Mock.DriftAmpl))

	driftPeriodEntry := widget.NewEntry()
	driftPeriodEntry.SetText(e.cfg.Mock.DriftPeriod.String())

	noiseEntry := widget.NewEntry()
	noiseEntry.SetText(fmt.Sprintf("%.3f", e.cfg.Mock.NoiseLevel))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Pressure (mbar)", Widget: pressureEntry},
			{Text: "Drift Amplitude (mbar)", Widget: driftEntry},
			{Text: "Drift Period", Widget: driftPeriodEntry},
			{Text: "Noise Level (mbar)", Widget: noiseEntry},
		},
		OnSubmit: func() {
			if p, err := strconv.ParseFloat(pressureEntry.Text, 64); err == nil {
				e.cfg.Mock.Pressure = p
			}
			if a, err := strconv.ParseFloat(driftEntry.Text, 64); err == nil {
				e.cfg.Mock.DriftAmpl = a
			}
			if d, err := time.ParseDuration(driftPeriodEntry.Text); err == nil {
				e.cfg.Mock.DriftPeriod = d
			}
			if n, err := strconv.ParseFloat(noiseEntry.Text, 64); err == nil {
				e.cfg.Mock.NoiseLevel = n
			}
			e.save()
		},
	}

	return container.NewTabItem("Mock", form)
}
