package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"midimix/mixer"
)

// Parameter bounds enforced at the boundary. Values outside them are
// rejected before they reach the engine.
const (
	MinFrame = 0
	MaxFrame = 9999
	MinFPS   = 1
	MaxFPS   = 120
	MinMix   = 0.0
	MaxMix   = 2.0
	MinDecay = 0.1
	MaxDecay = 10.0
)

// Params is the node's parameter schema: everything the per-frame update
// needs, validated before use.
type Params struct {
	MidiPath    string  `json:"midiPath,omitempty"`
	Frame       int     `json:"frame"`
	FPS         int     `json:"fps"`
	TriggerMode string  `json:"triggerMode"`
	MixStrength float64 `json:"mixStrength"`
	DecayRate   float64 `json:"decayRate"`
}

// DefaultParams returns the schema defaults.
func DefaultParams() Params {
	return Params{
		Frame:       0,
		FPS:         30,
		TriggerMode: mixer.ModeVelocity.String(),
		MixStrength: 1.0,
		DecayRate:   2.0,
	}
}

// Validate checks every parameter against its declared bounds.
func (p Params) Validate() error {
	if p.Frame < MinFrame || p.Frame > MaxFrame {
		return fmt.Errorf("frame %d out of range [%d, %d]", p.Frame, MinFrame, MaxFrame)
	}
	if p.FPS < MinFPS || p.FPS > MaxFPS {
		return fmt.Errorf("fps %d out of range [%d, %d]", p.FPS, MinFPS, MaxFPS)
	}
	if _, ok := mixer.ParseTriggerMode(p.TriggerMode); !ok {
		return fmt.Errorf("unknown trigger mode %q", p.TriggerMode)
	}
	if p.MixStrength < MinMix || p.MixStrength > MaxMix {
		return fmt.Errorf("mix strength %g out of range [%g, %g]", p.MixStrength, MinMix, MaxMix)
	}
	if p.DecayRate < MinDecay || p.DecayRate > MaxDecay {
		return fmt.Errorf("decay rate %g out of range [%g, %g]", p.DecayRate, MinDecay, MaxDecay)
	}
	return nil
}

// Mode returns the parsed trigger mode. Unrecognized names fall back to
// Velocity; Validate catches them first on the normal path.
func (p Params) Mode() mixer.TriggerMode {
	m, _ := mixer.ParseTriggerMode(p.TriggerMode)
	return m
}

// ConfigDir returns the config directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "midimix"), nil
}

// ConfigPath returns the full path to params.json.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "params.json"), nil
}

// Load reads saved params from disk, or returns defaults if not found.
func Load() (Params, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultParams(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultParams(), nil
		}
		return Params{}, err
	}

	p := DefaultParams()
	if err := json.Unmarshal(data, &p); err != nil {
		return Params{}, err
	}

	return p, nil
}

// Save writes the params to disk.
func (p Params) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
