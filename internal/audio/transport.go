package audio

import "time"

// Transport controls the playback position the tracker samples. Seeks are
// discontinuous by design: clicking a segment jumps the position and the
// tracker re-derives the active segment from scratch.
type Transport interface {
	Play()
	Pause()
	SeekTo(seconds float64)
	Position() float64
	Playing() bool
}

// Clock is a wall-clock transport: the position advances in real time
// while playing and freezes while paused. It backs the process player's
// bookkeeping and stands alone when no player binary is available.
type Clock struct {
	now       func() time.Time
	playing   bool
	base      float64
	startedAt time.Time
}

// NewClock returns a stopped clock at position zero.
func NewClock() *Clock {
	return NewClockAt(time.Now)
}

// NewClockAt returns a clock reading time from now. Tests inject a
// deterministic source here.
func NewClockAt(now func() time.Time) *Clock {
	return &Clock{now: now}
}

func (c *Clock) Play() {
	if c.playing {
		return
	}
	c.startedAt = c.now()
	c.playing = true
}

func (c *Clock) Pause() {
	if !c.playing {
		return
	}
	c.base = c.Position()
	c.playing = false
}

func (c *Clock) SeekTo(seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	c.base = seconds
	c.startedAt = c.now()
}

func (c *Clock) Position() float64 {
	if !c.playing {
		return c.base
	}
	return c.base + c.now().Sub(c.startedAt).Seconds()
}

func (c *Clock) Playing() bool { return c.playing }
