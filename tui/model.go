// Package tui is the terminal preview: it plays the loaded MIDI file frame
// by frame at the configured fps and shows the live track strengths the way
// a render pipeline would consume them.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"midimix/config"
	"midimix/midifile"
	"midimix/mixer"
	"midimix/theme"
	"midimix/widgets"
)

type Model struct {
	Session *mixer.Session
	Params  config.Params
	Theme   *theme.Theme

	mode      mixer.TriggerMode
	strengths [midifile.MaxTracks]float64
	playing   bool
	quitting  bool
}

// TickMsg advances playback one frame.
type TickMsg time.Time

func NewModel(session *mixer.Session, params config.Params, th *theme.Theme) Model {
	m := Model{
		Session: session,
		Params:  params,
		Theme:   th,
		mode:    params.Mode(),
		playing: true,
	}
	m.evaluate()
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.Params.FPS), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m *Model) evaluate() {
	m.strengths = m.Session.Update(
		m.Params.MidiPath, m.Params.Frame, m.Params.FPS,
		m.mode, m.Params.MixStrength, m.Params.DecayRate,
	)
}

func (m *Model) seek(delta int) {
	m.Params.Frame += delta
	if m.Params.Frame < config.MinFrame {
		m.Params.Frame = config.MinFrame
	}
	if m.Params.Frame > config.MaxFrame {
		m.Params.Frame = config.MaxFrame
	}
	m.evaluate()
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case " ":
			m.playing = !m.playing

		case "left", "h":
			m.seek(-1)

		case "right", "l":
			m.seek(1)

		case "r":
			m.Params.Frame = 0
			m.evaluate()

		case "m":
			m.mode = m.mode.Next()
			m.Params.TriggerMode = m.mode.String()
			m.evaluate()

		case "+", "=":
			m.Params.MixStrength = clamp(m.Params.MixStrength+0.1, config.MinMix, config.MaxMix)
			m.evaluate()

		case "-", "_":
			m.Params.MixStrength = clamp(m.Params.MixStrength-0.1, config.MinMix, config.MaxMix)
			m.evaluate()

		case "]":
			m.Params.DecayRate = clamp(m.Params.DecayRate+0.1, config.MinDecay, config.MaxDecay)
			m.evaluate()

		case "[":
			m.Params.DecayRate = clamp(m.Params.DecayRate-0.1, config.MinDecay, config.MaxDecay)
			m.evaluate()
		}

	case TickMsg:
		if m.playing && m.Params.Frame < config.MaxFrame {
			m.Params.Frame++
			m.evaluate()
		}
		return m, m.tick()
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	warnStyle := lipgloss.NewStyle().Foreground(m.Theme.Warning())

	playState := "PAUSE"
	if m.playing {
		playState = "PLAY"
	}

	header := headerStyle.Render(fmt.Sprintf(
		"midimix  %s  frame:%04d  %dfps  %.1fbpm  %s  mix:%.1f  decay:%.1f",
		playState, m.Params.Frame, m.Params.FPS, m.Session.BPM(), m.mode, m.Params.MixStrength, m.Params.DecayRate,
	))

	var rows []string
	for i, v := range m.strengths {
		norm := clamp(v, 0, 1)
		bar := widgets.StyledBar(m.Theme.Color(norm), v)
		rows = append(rows, fmt.Sprintf("  %d %-5s %s %3.0f%%", i+1, midifile.TrackNames[i], bar, v*100))
	}

	help := dimStyle.Render("space:play/pause  ←/→:seek  r:rewind  m:mode  +/-:mix  [/]:decay  q:quit")

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(strings.Join(rows, "\n"))
	out.WriteString("\n\n")
	if m.Session.File() == nil {
		out.WriteString(warnStyle.Render("  MIDI disabled (no file or parse failed), strengths held at 0"))
		out.WriteString("\n\n")
	}
	out.WriteString(dimStyle.Render("  " + widgets.MixValues(m.strengths)))
	out.WriteString("\n\n")
	out.WriteString(help)

	return out.String()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
