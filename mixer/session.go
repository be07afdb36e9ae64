package mixer

import (
	"log/slog"
	"sync"

	"midimix/midifile"
)

// DefaultBPM is reported while no MIDI file is loaded.
const DefaultBPM = 120.0

// Session holds the per-mixing-session state: the single-entry parse cache
// and the current per-track strengths. It is created once and then driven
// once per rendered frame; a broken or missing MIDI path degrades it to a
// constant zero-output generator instead of failing the pipeline.
//
// Update may be called from parallel frame renderers: the mutex makes
// concurrent first parses resolve to a single winner, with the losers
// reading the cached result.
type Session struct {
	mu        sync.Mutex
	logger    *slog.Logger
	path      string
	file      *midifile.File // nil: MIDI disabled (no path, or parse failed)
	strengths [midifile.MaxTracks]float64
	frame     int

	parse func(string) (*midifile.File, error)
}

// NewSession creates a session. A nil logger falls back to slog.Default().
func NewSession(logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		logger: logger,
		parse:  midifile.Parse,
	}
}

// Update computes the four track strengths for one frame and caches them.
//
// The file is re-parsed only when path differs from the cached one, so each
// distinct path (good or bad) is attempted at most once per session. An
// empty path disables MIDI entirely. Each slot holds the raw trigger-mode
// strength scaled by mixStrength; slots without a parsed track are 0.
func (s *Session) Update(path string, frame, fps int, mode TriggerMode, mixStrength, decayRate float64) [midifile.MaxTracks]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if path != s.path {
		s.path = path
		s.file = nil
		if path == "" {
			s.logger.Info("midi: no file, modulation disabled")
		} else if f, err := s.parse(path); err != nil {
			s.logger.Warn("midi: parse failed, modulation disabled", "path", path, "err", err)
		} else {
			s.file = f
			s.logger.Info("midi: file loaded", "path", path, "bpm", f.BPM(), "ticks_per_beat", f.TicksPerBeat, "tracks", len(f.Tracks))
			for i, tr := range f.Tracks {
				s.logger.Info("midi: track", "slot", i+1, "name", midifile.TrackNames[i], "notes", tr.NoteCount())
			}
		}
	}

	s.frame = frame
	s.strengths = [midifile.MaxTracks]float64{}

	if s.file != nil {
		tick := FrameToTicks(frame, fps, s.file.TempoMicros, s.file.TicksPerBeat)
		for i, seq := range s.file.Tracks {
			active := ActiveNotesAt(seq, tick)
			raw := Strength(mode, active, seq, tick, s.file.TicksPerBeat, decayRate)
			s.strengths[i] = raw * mixStrength
		}
	}

	return s.strengths
}

// Strengths returns the track strengths from the last Update.
func (s *Session) Strengths() [midifile.MaxTracks]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.strengths
}

// Frame returns the frame index from the last Update.
func (s *Session) Frame() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame
}

// BPM reports the loaded file's tempo, or DefaultBPM with MIDI disabled.
func (s *Session) BPM() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return DefaultBPM
	}
	return s.file.BPM()
}

// File returns the cached parse result, nil while MIDI is disabled. The
// returned file is immutable after parsing.
func (s *Session) File() *midifile.File {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file
}
