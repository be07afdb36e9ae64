// Package midifile extracts note events from standard MIDI files for the
// mixer engine. Only the first four tracks are read; everything that is not
// a note-on or note-off is dropped.
package midifile

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2/smf"
)

// MaxTracks is the number of track slots the mixer drives.
const MaxTracks = 4

// DefaultTempoMicros is 120 BPM, used when track 0 carries no tempo event.
const DefaultTempoMicros = 500000

// TrackNames documents the conventional role of each track slot. Purely
// informational; nothing keys off these.
var TrackNames = [MaxTracks]string{"Kick", "Snare", "Bass", "Lead"}

// EventKind distinguishes the two event types kept during extraction.
type EventKind uint8

const (
	NoteOn EventKind = iota
	NoteOff
)

func (k EventKind) String() string {
	if k == NoteOff {
		return "note_off"
	}
	return "note_on"
}

// Event is a note event at an absolute tick position. A NoteOn with
// Velocity 0 is semantically a NoteOff (standard MIDI convention); the
// mixer treats it as a terminator everywhere strength is computed.
type Event struct {
	Tick     int
	Kind     EventKind
	Note     uint8
	Velocity uint8
}

// Track is one track's note events in file order, which is time order
// (Tick is non-decreasing). Never mutated after parsing.
type Track []Event

// NoteCount returns the number of sounding note-ons (velocity > 0).
func (t Track) NoteCount() int {
	n := 0
	for _, e := range t {
		if e.Kind == NoteOn && e.Velocity > 0 {
			n++
		}
	}
	return n
}

// File is the parsed result: up to MaxTracks tracks plus the single tempo
// used for the whole file. Tempo-change events after the first are ignored,
// a known simplification.
type File struct {
	Tracks       []Track
	TempoMicros  int // microseconds per beat
	TicksPerBeat int
}

// BPM derives beats per minute from the file tempo.
func (f *File) BPM() float64 {
	return 60_000_000 / float64(f.TempoMicros)
}

// Parse reads an SMF file from disk. Callers treat any error as "MIDI
// disabled" rather than fatal; see the session's soft-failure policy.
func Parse(path string) (*File, error) {
	sm, err := smf.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read midi file %q: %w", path, err)
	}

	metric, ok := sm.TimeFormat.(smf.MetricTicks)
	if !ok {
		// SMPTE time division has no metric resolution, and the
		// frame-to-tick mapping needs one.
		return nil, fmt.Errorf("midi file %q: unsupported time format %v", path, sm.TimeFormat)
	}

	f := &File{
		TempoMicros:  DefaultTempoMicros,
		TicksPerBeat: int(metric.Resolution()),
	}

	// First set-tempo meta event in track 0 wins.
	if len(sm.Tracks) > 0 {
		var bpm float64
		for _, ev := range sm.Tracks[0] {
			if ev.Message.GetMetaTempo(&bpm) && bpm > 0 {
				f.TempoMicros = int(60_000_000/bpm + 0.5)
				break
			}
		}
	}

	for _, tr := range sm.Tracks {
		if len(f.Tracks) == MaxTracks {
			break
		}
		var events Track
		tick := 0
		for _, ev := range tr {
			tick += int(ev.Delta)
			var ch, key, vel uint8
			switch {
			case ev.Message.GetNoteOn(&ch, &key, &vel):
				events = append(events, Event{Tick: tick, Kind: NoteOn, Note: key, Velocity: vel})
			case ev.Message.GetNoteOff(&ch, &key, &vel):
				events = append(events, Event{Tick: tick, Kind: NoteOff, Note: key, Velocity: vel})
			}
		}
		f.Tracks = append(f.Tracks, events)
	}

	return f, nil
}
