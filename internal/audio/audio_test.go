package audio

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestPrepare(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lesson.mp3")
	if err := os.WriteFile(path, []byte("not really mp3 data"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	ref, err := Prepare(path)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}

	if ref.Name != "lesson.mp3" {
		t.Errorf("Name = %q", ref.Name)
	}
	if ref.Size != int64(len("not really mp3 data")) {
		t.Errorf("Size = %d", ref.Size)
	}
	if len(ref.Hash) != 64 {
		t.Errorf("Hash length = %d, want 64 hex chars", len(ref.Hash))
	}

	// Same content, same identity.
	again, err := Prepare(path)
	if err != nil {
		t.Fatalf("Prepare again: %v", err)
	}
	if again.Hash != ref.Hash {
		t.Error("fingerprint not stable across reads")
	}
}

func TestPrepareMissingFile(t *testing.T) {
	if _, err := Prepare(filepath.Join(t.TempDir(), "nope.mp3")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestShortHash(t *testing.T) {
	ref := &Reference{Hash: "0123456789abcdef0123"}
	if got := ref.ShortHash(); got != "0123456789ab" {
		t.Errorf("ShortHash = %q", got)
	}
}

// fakeNow steps a clock deterministically.
type fakeNow struct {
	t time.Time
}

func (f *fakeNow) now() time.Time { return f.t }

func (f *fakeNow) advance(d time.Duration) { f.t = f.t.Add(d) }

func TestClockAdvancesWhilePlaying(t *testing.T) {
	fn := &fakeNow{t: time.Unix(1000, 0)}
	c := NewClockAt(fn.now)

	if c.Playing() {
		t.Error("new clock should be paused")
	}
	if c.Position() != 0 {
		t.Errorf("Position = %v, want 0", c.Position())
	}

	c.Play()
	fn.advance(2 * time.Second)
	if got := c.Position(); got != 2.0 {
		t.Errorf("Position = %v, want 2.0", got)
	}

	c.Pause()
	fn.advance(5 * time.Second)
	if got := c.Position(); got != 2.0 {
		t.Errorf("Position = %v after pause, want 2.0", got)
	}
}

func TestClockSeek(t *testing.T) {
	fn := &fakeNow{t: time.Unix(1000, 0)}
	c := NewClockAt(fn.now)

	c.SeekTo(42.5)
	if got := c.Position(); got != 42.5 {
		t.Errorf("Position = %v, want 42.5", got)
	}

	// Seeking while playing re-anchors the clock.
	c.Play()
	fn.advance(1 * time.Second)
	c.SeekTo(10)
	fn.advance(1 * time.Second)
	if got := c.Position(); got != 11.0 {
		t.Errorf("Position = %v, want 11.0", got)
	}
}

func TestClockSeekClampsNegative(t *testing.T) {
	c := NewClock()
	c.SeekTo(-3)
	if got := c.Position(); got != 0 {
		t.Errorf("Position = %v, want 0", got)
	}
}

func TestClockPlayIsIdempotent(t *testing.T) {
	fn := &fakeNow{t: time.Unix(1000, 0)}
	c := NewClockAt(fn.now)

	c.Play()
	fn.advance(3 * time.Second)
	c.Play() // must not re-anchor
	if got := c.Position(); got != 3.0 {
		t.Errorf("Position = %v, want 3.0", got)
	}
}
