// Package player maps a continuous, seek-able playback position onto the
// active transcript segment and emits de-duplicated transition events.
package player

import (
	"math"

	"scriptplay/internal/transcript"
)

// None marks the cursor position when no segment is active.
const None = -1

// Transition reports a change of active segment. Either field may be None.
type Transition struct {
	Previous int
	Next     int
}

// Tracker owns the active-segment cursor for one loaded transcript. It is
// not safe for concurrent use; the player loop is single-threaded.
type Tracker struct {
	segments []transcript.Segment
	cursor   int
}

// NewTracker returns a tracker with no segments and no active cursor.
func NewTracker() *Tracker {
	return &Tracker{cursor: None}
}

// SetSegments installs a new document's segments and resets the cursor to
// none, so a stale highlight from a previous document can never survive a
// reload regardless of the current playback position.
func (t *Tracker) SetSegments(segments []transcript.Segment) {
	t.segments = segments
	t.cursor = None
}

// Reset clears the cursor without touching the segments.
func (t *Tracker) Reset() {
	t.cursor = None
}

// Cursor returns the active segment index, or None.
func (t *Tracker) Cursor() int { return t.cursor }

// Len returns the number of tracked segments.
func (t *Tracker) Len() int { return len(t.segments) }

// Sample feeds one playback position in seconds. It recomputes the active
// segment from the full sequence — the position may have jumped backwards
// through a seek, so the previous cursor is never used as a hint — and
// reports a transition only when the active segment changed. Repeated
// samples mapping to the same segment are side-effect-free.
func (t *Tracker) Sample(seconds float64) (Transition, bool) {
	next := t.activeAt(int64(math.Round(seconds * 1000)))
	if next == t.cursor {
		return Transition{}, false
	}
	tr := Transition{Previous: t.cursor, Next: next}
	t.cursor = next
	return tr, true
}

// activeAt returns the lowest-index segment containing the position.
// Segments may overlap; the index order is the tie-break.
func (t *Tracker) activeAt(ms int64) int {
	for i, seg := range t.segments {
		if seg.Contains(ms) {
			return i
		}
	}
	return None
}
