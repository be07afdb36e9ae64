package mixer

import "midimix/midifile"

// ActiveNotesAt returns the note-on events sounding at the given tick
// position: started at or before it, and not yet terminated.
//
// Each candidate note-on is paired with the next event in sequence order on
// the same note that is an explicit note-off or has velocity 0. With no such
// event the note sustains past the end of the track. Overlapping note-ons on
// the same pitch therefore all terminate at the next terminator rather than
// nesting; a known limitation kept for compatibility with existing material.
func ActiveNotesAt(seq midifile.Track, tick float64) []midifile.Event {
	var active []midifile.Event
	for i, e := range seq {
		if float64(e.Tick) > tick {
			break
		}
		if e.Kind != midifile.NoteOn || e.Velocity == 0 {
			continue
		}
		offTick, ok := nextTerminator(seq, i+1, e.Note)
		if !ok || tick < float64(offTick) {
			active = append(active, e)
		}
	}
	return active
}

// nextTerminator scans forward from index from for the first event that ends
// a note: a note-off, or any event on that note with velocity 0.
func nextTerminator(seq midifile.Track, from int, note uint8) (int, bool) {
	for _, e := range seq[from:] {
		if e.Note == note && (e.Kind == midifile.NoteOff || e.Velocity == 0) {
			return e.Tick, true
		}
	}
	return 0, false
}
