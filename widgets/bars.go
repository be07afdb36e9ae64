package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"midimix/midifile"
)

// barLevels are the six discrete fill states of a strength bar.
var barLevels = [6]string{
	"░░░░░░░░░░",
	"██░░░░░░░░",
	"████░░░░░░",
	"██████░░░░",
	"████████░░",
	"██████████",
}

// StrengthBar renders a strength as a 10-cell bar at one of six levels.
// Values above 1 (mix strength can push past it) clamp to the full bar.
func StrengthBar(v float64) string {
	i := int(v * 5)
	if i < 0 {
		i = 0
	}
	if i > 5 {
		i = 5
	}
	return barLevels[i]
}

// StyledBar renders a strength bar in the given color.
func StyledBar(color lipgloss.Color, v float64) string {
	return lipgloss.NewStyle().Foreground(color).Render(StrengthBar(v))
}

// Header returns the banner atop the status block.
func Header() string {
	return `
╔═══════════════════════════════════════╗
║            MIDIMIX                    ║
║       Audio → Visual Mixing           ║
╚═══════════════════════════════════════╝
`
}

// StatusBlock renders the human-readable per-frame status: frame position,
// tempo, and one bar-graph row per track.
func StatusBlock(frame, fps int, bpm float64, strengths [midifile.MaxTracks]float64) string {
	rule := strings.Repeat("─", 40) + "\n"

	var out strings.Builder
	out.WriteString(Header())
	out.WriteString(fmt.Sprintf("\nFrame: %d | FPS: %d | BPM: %.1f\n", frame, fps, bpm))
	out.WriteString(rule)
	for i, v := range strengths {
		out.WriteString(fmt.Sprintf("Track %d [%-5s]: %s %.0f%%\n", i+1, midifile.TrackNames[i], StrengthBar(v), v*100))
	}
	out.WriteString(rule)
	return out.String()
}

// MixValues renders the four strengths compactly, e.g.
// [0.42, 0.00, 1.00, 0.17].
func MixValues(strengths [midifile.MaxTracks]float64) string {
	parts := make([]string, len(strengths))
	for i, v := range strengths {
		parts[i] = fmt.Sprintf("%.2f", v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
