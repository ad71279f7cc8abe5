// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Jacob Bramley

package cmd

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jacobbramley/ist-hyt/pkg/hyt"
)

var monitorInterval time.Duration

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Continuously display measurements in a TUI",
	Long: `Continuously request measurements and display them live.

Press q or Ctrl+C to exit.`,
	RunE: runMonitor,
}

func init() {
	rootCmd.AddCommand(monitorCmd)
	monitorCmd.Flags().DurationVarP(&monitorInterval, "interval", "i", time.Second, "Time between measurements")
}

// Styles
var (
	monTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	monLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(14).
			Align(lipgloss.Right)

	monValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	monDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	monErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	monStaleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

// Messages
type monitorTickMsg time.Time
type monitorReadingMsg struct {
	measurement hyt.Measurement
	err         error
	elapsed     time.Duration
}

type monitorModel struct {
	sensor   *hyt.Sensor
	info     string
	interval time.Duration

	reading    hyt.Measurement
	hasReading bool
	lastErr    error
	elapsed    time.Duration
	count      int
	errCount   int
	updated    time.Time
	quitting   bool
}

func newMonitorModel(sensor *hyt.Sensor, info string, interval time.Duration) monitorModel {
	return monitorModel{
		sensor:   sensor,
		info:     info,
		interval: interval,
	}
}

func (m monitorModel) measureCmd() tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		reading, err := takeMeasurement(m.sensor, m.interval)
		return monitorReadingMsg{
			measurement: reading,
			err:         err,
			elapsed:     time.Since(start).Round(time.Millisecond),
		}
	}
}

func (m monitorModel) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return monitorTickMsg(t)
	})
}

func (m monitorModel) Init() tea.Cmd {
	return tea.Batch(
		m.measureCmd(),
		tea.EnterAltScreen,
	)
}

func (m monitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case monitorTickMsg:
		return m, m.measureCmd()

	case monitorReadingMsg:
		m.count++
		m.lastErr = msg.err
		m.elapsed = msg.elapsed
		m.updated = time.Now()
		if msg.err != nil {
			m.errCount++
		} else {
			m.reading = msg.measurement
			m.hasReading = true
		}
		return m, m.tickCmd()
	}

	return m, nil
}

func (m monitorModel) View() string {
	if m.quitting {
		return ""
	}

	var b []string
	b = append(b, monTitleStyle.Render("HYT Sensor Monitor"))
	b = append(b, monDimStyle.Render(m.info))
	b = append(b, "")

	if m.hasReading {
		humidity, herr := m.reading.HumidityScaled(100)
		temperature, terr := m.reading.TemperatureScaled(100)
		if herr == nil && terr == nil {
			b = append(b, fmt.Sprintf("%s %s",
				monLabelStyle.Render("Humidity:"),
				monValueStyle.Render(formatCenti(humidity)+" %RH")))
			b = append(b, fmt.Sprintf("%s %s",
				monLabelStyle.Render("Temperature:"),
				monValueStyle.Render(formatCenti(temperature)+" °C")))
		}
		staleNote := ""
		if m.reading.IsStale() {
			staleNote = " " + monStaleStyle.Render("(stale)")
		}
		b = append(b, fmt.Sprintf("%s %s%s",
			monLabelStyle.Render("Ready in:"),
			monDimStyle.Render(m.elapsed.String()), staleNote))
	} else {
		b = append(b, monDimStyle.Render("Waiting for first measurement..."))
	}

	b = append(b, "")
	if m.lastErr != nil {
		b = append(b, monErrorStyle.Render(fmt.Sprintf("Error: %v", m.lastErr)))
		b = append(b, "")
	}

	b = append(b, monDimStyle.Render(fmt.Sprintf(
		"%d measurements, %d errors - every %v - q to quit",
		m.count, m.errCount, m.interval)))

	out := ""
	for _, line := range b {
		out += line + "\n"
	}
	return out
}

func runMonitor(cmd *cobra.Command, args []string) error {
	sensor, bus, info, err := OpenSensor()
	if err != nil {
		return err
	}
	defer bus.Close()

	p := tea.NewProgram(newMonitorModel(sensor, info, monitorInterval))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %v", err)
	}
	return nil
}
