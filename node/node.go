// Package node is the host-facing surface of the mixer: it takes the host's
// opaque model/conditioning handles plus up to four adapter and four control
// slots, drives the per-frame strength computation, and hands back decorated
// handles together with the textual status outputs.
package node

import (
	"log/slog"

	"midimix/config"
	"midimix/midifile"
	"midimix/mixer"
	"midimix/widgets"
)

// NumSlots is the number of adapter/control channels, one per MIDI track.
const NumSlots = midifile.MaxTracks

// AdapterSlot is one (adapter, image, weight) triple. A slot participates
// only when both Adapter and Image are present; a nil Weight defaults to 1.
type AdapterSlot struct {
	Adapter any
	Image   *Tensor
	Weight  *float64
}

// ControlSlot is one (net, image, strength) triple. A slot participates
// only when both Net and Image are present; a nil Strength defaults to 1.
type ControlSlot struct {
	Net      any
	Image    *Tensor
	Strength *float64
}

// Inputs bundles everything one Mix call consumes. Model and Latent are
// opaque host handles passed through untouched.
type Inputs struct {
	Model    any
	Positive Conditioning
	Negative Conditioning
	Latent   any
	Params   config.Params
	Adapters [NumSlots]AdapterSlot
	Controls [NumSlots]ControlSlot
}

// Outputs is the result of one Mix call.
type Outputs struct {
	Model     any
	Positive  Conditioning
	Negative  Conditioning
	DebugInfo string
	MixValues string
}

// Mixer owns the session state across per-frame invocations.
type Mixer struct {
	session *mixer.Session
	logger  *slog.Logger
}

// NewMixer creates a mixer with a fresh session. A nil logger falls back to
// slog.Default().
func NewMixer(logger *slog.Logger) *Mixer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mixer{
		session: mixer.NewSession(logger),
		logger:  logger,
	}
}

// Session exposes the underlying session, mainly for preview frontends that
// drive it directly.
func (m *Mixer) Session() *mixer.Session {
	return m.session
}

// Mix runs one per-frame update: computes the four track strengths and
// applies every populated adapter and control slot scaled by them. The only
// error is invalid params; a missing or broken MIDI file is not an error,
// it just collapses all strengths to zero.
func (m *Mixer) Mix(in Inputs) (Outputs, error) {
	if err := in.Params.Validate(); err != nil {
		return Outputs{}, err
	}

	strengths := m.session.Update(
		in.Params.MidiPath, in.Params.Frame, in.Params.FPS,
		in.Params.Mode(), in.Params.MixStrength, in.Params.DecayRate,
	)

	out := Outputs{
		Model:    in.Model,
		Positive: in.Positive,
		Negative: in.Negative,
	}

	for i := 0; i < NumSlots; i++ {
		out.Model = m.applyAdapter(out.Model, in.Adapters[i], strengths[i])
		out.Positive, out.Negative = m.applyControl(out.Positive, out.Negative, in.Controls[i], strengths[i])
	}

	out.DebugInfo = widgets.StatusBlock(in.Params.Frame, in.Params.FPS, m.session.BPM(), strengths)
	out.MixValues = widgets.MixValues(strengths)
	return out, nil
}

// applyAdapter computes the final weight for one adapter slot. Actual model
// patching is the host's responsibility; the model passes through unchanged
// here and the activity is only logged.
func (m *Mixer) applyAdapter(model any, slot AdapterSlot, trackStrength float64) any {
	weight := 1.0
	if slot.Weight != nil {
		weight = *slot.Weight
	}
	if slot.Adapter == nil || slot.Image == nil || weight <= 0 || trackStrength <= 0 {
		return model
	}
	m.logger.Info("adapter slot active", "weight", weight*trackStrength)
	return model
}

// applyControl extends both conditionings with one control entry, strength
// scaled by the track strength. The hint image is brought to channels-first
// layout before insertion.
func (m *Mixer) applyControl(positive, negative Conditioning, slot ControlSlot, trackStrength float64) (Conditioning, Conditioning) {
	strength := 1.0
	if slot.Strength != nil {
		strength = *slot.Strength
	}
	if slot.Net == nil || slot.Image == nil || strength <= 0 || trackStrength <= 0 {
		return positive, negative
	}

	hint, err := slot.Image.ChannelsFirst()
	if err != nil {
		m.logger.Warn("control slot skipped", "err", err)
		return positive, negative
	}

	ctl := Control{
		Net:      slot.Net,
		Hint:     hint,
		Strength: strength * trackStrength,
		Start:    0.0,
		End:      1.0,
	}
	m.logger.Info("control slot active", "strength", ctl.Strength)
	return positive.withControl(ctl), negative.withControl(ctl)
}
