package entity

import (
	"github.com/tickblend/tickblend/pose"
)

// Slot tracks one animated entity: the two most recent simulation-tick poses and
// the last interpolated output computed from them.
type Slot struct {
	// ID is the opaque handle the host uses to refer to the tracked entity. It is
	// only meaningful while Active is true.
	ID uint32
	// Active reports whether the slot is in use.
	Active bool
	// Valid reports whether the slot has received at least two captures, making
	// interpolation between Prev and Curr meaningful.
	Valid bool
	// TickCaptured is the logic tick at which Curr was captured.
	TickCaptured int64

	// Prev and Curr are the two most recent captured poses. Rendered is only ever
	// written by the interpolator, never by capture.
	Prev     pose.Snapshot
	Curr     pose.Snapshot
	Rendered pose.Snapshot

	// captures counts captures received since the slot was claimed, saturating at 2.
	captures uint8
}

// Shift rotates the capture buffer: Curr becomes Prev and the supplied snapshot
// becomes Curr, stamped with the given tick. The slot turns valid on the second
// shift.
func (s *Slot) Shift(next *pose.Snapshot, tick int64) {
	s.Prev = s.Curr
	s.Curr = *next
	s.TickCaptured = tick

	if s.captures < 2 {
		s.captures++
	}
	s.Valid = s.captures >= 2
}

// reset returns the slot to the unused state. Snapshot contents are left as-is;
// they are fully rewritten before the slot can turn valid again.
func (s *Slot) reset() {
	s.ID = 0
	s.Active = false
	s.Valid = false
	s.TickCaptured = 0
	s.captures = 0
}
