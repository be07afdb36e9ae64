package mixer

import "midimix/midifile"

// TriggerMode is the policy converting note activity into a modulation
// scalar.
type TriggerMode int

const (
	ModeVelocity TriggerMode = iota // mean velocity of active notes
	ModePulse                       // decay from the most recent trigger
	ModeHold                        // binary while any note sounds
	ModeToggle                      // note-on parity flips state
)

// Modes lists the recognized trigger modes in display order.
var Modes = []TriggerMode{ModeVelocity, ModePulse, ModeHold, ModeToggle}

func (m TriggerMode) String() string {
	switch m {
	case ModeVelocity:
		return "Velocity"
	case ModePulse:
		return "Pulse"
	case ModeHold:
		return "Hold"
	case ModeToggle:
		return "Toggle"
	}
	return "Unknown"
}

// ParseTriggerMode maps a mode name to its TriggerMode. The second return
// is false for unrecognized names.
func ParseTriggerMode(s string) (TriggerMode, bool) {
	for _, m := range Modes {
		if m.String() == s {
			return m, true
		}
	}
	return ModeVelocity, false
}

// Next returns the following mode, wrapping around.
func (m TriggerMode) Next() TriggerMode {
	return Modes[(int(m)+1)%len(Modes)]
}

// Strength reduces the active-note set at tick into a scalar in [0,1].
//
// active must be the result of ActiveNotesAt(seq, tick). All modes except
// Toggle return 0 with no active notes; Toggle depends only on historical
// note-on parity, so a held or released note does not affect it. An
// unrecognized mode returns 0 rather than failing.
func Strength(mode TriggerMode, active []midifile.Event, seq midifile.Track, tick float64, ticksPerBeat int, decayRate float64) float64 {
	if mode == ModeToggle {
		return toggleStrength(seq, tick)
	}
	if len(active) == 0 {
		return 0
	}

	switch mode {
	case ModeVelocity:
		sum := 0.0
		for _, e := range active {
			sum += float64(e.Velocity) / 127
		}
		return sum / float64(len(active))

	case ModePulse:
		latest := active[0]
		for _, e := range active[1:] {
			if e.Tick > latest.Tick {
				latest = e
			}
		}
		beatsSince := (tick - float64(latest.Tick)) / float64(ticksPerBeat)
		decay := 1 - beatsSince*decayRate
		if decay < 0 {
			decay = 0
		}
		return float64(latest.Velocity) / 127 * decay

	case ModeHold:
		return 1
	}

	return 0
}

// toggleStrength counts sounding note-ons at or before tick over the whole
// sequence; an odd count means the toggle is on. Note-offs never affect it.
func toggleStrength(seq midifile.Track, tick float64) float64 {
	count := 0
	for _, e := range seq {
		if float64(e.Tick) > tick {
			break
		}
		if e.Kind == midifile.NoteOn && e.Velocity > 0 {
			count++
		}
	}
	if count%2 == 1 {
		return 1
	}
	return 0
}
