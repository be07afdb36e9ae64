package mixer

// FrameToTicks converts a video frame index into an absolute MIDI tick
// position. fps, tempoMicros and ticksPerBeat must be positive; the
// parameter validation at the config boundary guarantees fps >= 1.
func FrameToTicks(frame, fps, tempoMicros, ticksPerBeat int) float64 {
	seconds := float64(frame) / float64(fps)
	return seconds * 1_000_000 / float64(tempoMicros) * float64(ticksPerBeat)
}
