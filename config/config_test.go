package config

import (
	"testing"

	"midimix/mixer"
)

func TestDefaultParamsValid(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestValidateBounds(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"negative frame", func(p *Params) { p.Frame = -1 }},
		{"frame too large", func(p *Params) { p.Frame = MaxFrame + 1 }},
		{"fps zero", func(p *Params) { p.FPS = 0 }},
		{"fps too large", func(p *Params) { p.FPS = MaxFPS + 1 }},
		{"unknown mode", func(p *Params) { p.TriggerMode = "Strobe" }},
		{"mix negative", func(p *Params) { p.MixStrength = -0.1 }},
		{"mix too large", func(p *Params) { p.MixStrength = MaxMix + 0.1 }},
		{"decay too small", func(p *Params) { p.DecayRate = 0.05 }},
		{"decay too large", func(p *Params) { p.DecayRate = MaxDecay + 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			if err := p.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestParamsMode(t *testing.T) {
	p := DefaultParams()
	p.TriggerMode = "Toggle"
	if p.Mode() != mixer.ModeToggle {
		t.Errorf("Mode() = %v, want Toggle", p.Mode())
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	// Nothing saved yet: defaults.
	p, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if p != DefaultParams() {
		t.Errorf("Load with no file = %+v, want defaults", p)
	}

	p.MidiPath = "song.mid"
	p.TriggerMode = "Pulse"
	p.MixStrength = 1.5
	if err := p.Save(); err != nil {
		t.Fatal(err)
	}

	got, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if got != p {
		t.Errorf("round trip = %+v, want %+v", got, p)
	}
}
