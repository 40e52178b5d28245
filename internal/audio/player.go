package audio

import (
	"fmt"
	"os/exec"
)

// Player is a Transport backed by an ffplay process. ffplay has no seek
// protocol, so pause kills the process and play/seek respawn it at the
// clock position; the clock remains the source of truth for Position.
// When spawning fails the clock keeps running so the transcript still
// advances silently.
type Player struct {
	clock *Clock
	path  string
	cmd   *exec.Cmd
}

// NewPlayer returns a stopped player for the given audio file.
func NewPlayer(path string) *Player {
	return &Player{clock: NewClock(), path: path}
}

func (p *Player) Play() {
	if p.clock.Playing() {
		return
	}
	p.clock.Play()
	p.spawn()
}

func (p *Player) Pause() {
	if !p.clock.Playing() {
		return
	}
	p.clock.Pause()
	p.stop()
}

func (p *Player) SeekTo(seconds float64) {
	wasPlaying := p.clock.Playing()
	if wasPlaying {
		p.stop()
		p.clock.Pause()
	}
	p.clock.SeekTo(seconds)
	if wasPlaying {
		p.clock.Play()
		p.spawn()
	}
}

func (p *Player) Position() float64 { return p.clock.Position() }

func (p *Player) Playing() bool { return p.clock.Playing() }

func (p *Player) spawn() {
	cmd := exec.Command("ffplay",
		"-nodisp", "-autoexit",
		"-loglevel", "quiet",
		"-ss", fmt.Sprintf("%.3f", p.clock.Position()),
		p.path,
	)
	if err := cmd.Start(); err != nil {
		// No ffplay on this machine; silent clock playback.
		p.cmd = nil
		return
	}
	p.cmd = cmd
	go cmd.Wait()
}

func (p *Player) stop() {
	if p.cmd != nil && p.cmd.Process != nil {
		p.cmd.Process.Kill()
	}
	p.cmd = nil
}
