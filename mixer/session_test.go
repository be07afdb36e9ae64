package mixer

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"midimix/midifile"
)

func quietSession() *Session {
	return NewSession(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// testFile: one track holding note 60 for two beats from tick 0, one empty
// track. Defaults of 480 ticks/beat at 120 BPM.
func testFile() *midifile.File {
	return &midifile.File{
		TempoMicros:  500000,
		TicksPerBeat: 480,
		Tracks: []midifile.Track{
			{on(0, 60, 100), off(960, 60)},
			{},
		},
	}
}

func TestSessionCachesParse(t *testing.T) {
	s := quietSession()
	parses := 0
	s.parse = func(string) (*midifile.File, error) {
		parses++
		return testFile(), nil
	}

	for frame := 0; frame < 10; frame++ {
		s.Update("song.mid", frame, 30, ModeHold, 1.0, 2.0)
	}
	if parses != 1 {
		t.Errorf("parsed %d times for one path, want 1", parses)
	}

	s.Update("other.mid", 0, 30, ModeHold, 1.0, 2.0)
	if parses != 2 {
		t.Errorf("parsed %d times after path change, want 2", parses)
	}
}

func TestSessionEmptyPathDisables(t *testing.T) {
	s := quietSession()
	parses := 0
	s.parse = func(string) (*midifile.File, error) {
		parses++
		return testFile(), nil
	}

	got := s.Update("", 15, 30, ModeHold, 1.0, 2.0)
	if got != ([midifile.MaxTracks]float64{}) {
		t.Errorf("strengths = %v, want all zero", got)
	}
	if parses != 0 {
		t.Errorf("parsed %d times for empty path, want 0", parses)
	}
	if bpm := s.BPM(); bpm != DefaultBPM {
		t.Errorf("BPM() = %g, want %g", bpm, DefaultBPM)
	}

	// Switching to empty after a loaded file disables again.
	s.Update("song.mid", 15, 30, ModeHold, 1.0, 2.0)
	got = s.Update("", 15, 30, ModeHold, 1.0, 2.0)
	if got != ([midifile.MaxTracks]float64{}) {
		t.Errorf("strengths after disabling = %v, want all zero", got)
	}
}

func TestSessionParseFailureIsSoft(t *testing.T) {
	s := quietSession()
	parses := 0
	s.parse = func(string) (*midifile.File, error) {
		parses++
		return nil, errors.New("corrupt header")
	}

	for frame := 0; frame < 5; frame++ {
		got := s.Update("bad.mid", frame, 30, ModeHold, 1.0, 2.0)
		if got != ([midifile.MaxTracks]float64{}) {
			t.Errorf("strengths = %v, want all zero", got)
		}
	}
	if parses != 1 {
		t.Errorf("parsed %d times for one bad path, want 1 (no per-frame retry)", parses)
	}
	if bpm := s.BPM(); bpm != DefaultBPM {
		t.Errorf("BPM() = %g, want %g", bpm, DefaultBPM)
	}
}

func TestSessionStrengths(t *testing.T) {
	s := quietSession()
	s.parse = func(string) (*midifile.File, error) { return testFile(), nil }

	// Frame 15 at 30fps is tick 480: note held.
	got := s.Update("song.mid", 15, 30, ModeHold, 1.0, 2.0)
	want := [midifile.MaxTracks]float64{1, 0, 0, 0}
	if got != want {
		t.Errorf("strengths = %v, want %v", got, want)
	}

	// Frame 60 is tick 1920: past the note-off.
	got = s.Update("song.mid", 60, 30, ModeHold, 1.0, 2.0)
	if got != ([midifile.MaxTracks]float64{}) {
		t.Errorf("strengths = %v, want all zero", got)
	}
}

func TestSessionMixStrengthScaling(t *testing.T) {
	s := quietSession()
	s.parse = func(string) (*midifile.File, error) { return testFile(), nil }

	got := s.Update("song.mid", 15, 30, ModeHold, 1.5, 2.0)
	if got[0] != 1.5 {
		t.Errorf("slot 0 = %g, want raw strength scaled to 1.5", got[0])
	}
}

func TestSessionAbsentTracksZero(t *testing.T) {
	s := quietSession()
	s.parse = func(string) (*midifile.File, error) { return testFile(), nil }

	got := s.Update("song.mid", 15, 30, ModeHold, 1.0, 2.0)
	for i := 1; i < midifile.MaxTracks; i++ {
		if got[i] != 0 {
			t.Errorf("slot %d = %g, want 0 (empty or absent track)", i, got[i])
		}
	}
}

func TestSessionConcurrentFirstParse(t *testing.T) {
	s := quietSession()
	parses := 0
	s.parse = func(string) (*midifile.File, error) {
		parses++
		return testFile(), nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Update("song.mid", 15, 30, ModeHold, 1.0, 2.0)
		}()
	}
	wg.Wait()

	if parses != 1 {
		t.Errorf("concurrent first parse ran %d times, want a single winner", parses)
	}
}
