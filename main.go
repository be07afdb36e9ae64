package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"midimix/config"
	"midimix/debug"
	"midimix/mixer"
	"midimix/node"
	"midimix/theme"
	"midimix/tui"
)

func main() {
	params, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v, using defaults\n", err)
		params = config.DefaultParams()
	}

	midiPath := flag.String("midi", params.MidiPath, "path to MIDI file (empty disables modulation)")
	frame := flag.Int("frame", -1, "evaluate a single frame, print the status block, and exit")
	fps := flag.Int("fps", params.FPS, "frames per second")
	mode := flag.String("mode", params.TriggerMode, "trigger mode: Velocity, Pulse, Hold or Toggle")
	mix := flag.Float64("mix", params.MixStrength, "mix strength multiplier")
	decay := flag.Float64("decay", params.DecayRate, "pulse decay rate in 1/beats")
	palettePath := flag.String("palette", "", "GIMP palette file for the strength color ramp")
	save := flag.Bool("save", false, "save the resulting parameters as the new defaults")
	flag.Parse()

	params.MidiPath = *midiPath
	params.FPS = *fps
	params.TriggerMode = *mode
	params.MixStrength = *mix
	params.DecayRate = *decay
	if *frame >= 0 {
		params.Frame = *frame
	} else {
		params.Frame = 0
	}

	if err := params.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid parameters: %v\n", err)
		os.Exit(1)
	}

	if *save {
		if err := params.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "save config: %v\n", err)
			os.Exit(1)
		}
	}

	// One-shot: run a single update the way a host node would and print
	// its textual outputs.
	if *frame >= 0 {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		mx := node.NewMixer(logger)
		out, err := mx.Mix(node.Inputs{Params: params})
		if err != nil {
			fmt.Fprintf(os.Stderr, "mix: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(out.DebugInfo)
		fmt.Println(out.MixValues)
		return
	}

	pal := theme.Default()
	if *palettePath != "" {
		pal, err = theme.LoadGPL(*palettePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "palette: %v\n", err)
			os.Exit(1)
		}
	}

	// The TUI owns the terminal, so logs go to a file.
	logger, closeLog, err := debug.FileLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "debug log: %v\n", err)
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	} else {
		defer closeLog()
	}

	session := mixer.NewSession(logger)
	m := tui.NewModel(session, params, theme.New(pal))
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
