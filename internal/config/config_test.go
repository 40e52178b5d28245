package config

import (
	"io/fs"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Loader{}.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TickMs != DefaultTickMs {
		t.Errorf("TickMs = %d, want %d", cfg.TickMs, DefaultTickMs)
	}
	if cfg.Transport != TransportAuto {
		t.Errorf("Transport = %q, want %q", cfg.Transport, TransportAuto)
	}
	if cfg.Autoplay {
		t.Error("Autoplay should default to false")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	l := Loader{ReadFile: func(string) ([]byte, error) {
		return nil, fs.ErrNotExist
	}}
	cfg, err := l.Load("scriptplay.yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TickMs != DefaultTickMs {
		t.Errorf("TickMs = %d, want default", cfg.TickMs)
	}
}

func TestLoadYAML(t *testing.T) {
	l := Loader{ReadFile: func(path string) ([]byte, error) {
		return []byte("tick_ms: 50\nautoplay: true\ntransport: clock\n"), nil
	}}
	cfg, err := l.Load("scriptplay.yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TickMs != 50 {
		t.Errorf("TickMs = %d, want 50", cfg.TickMs)
	}
	if !cfg.Autoplay {
		t.Error("Autoplay should be true")
	}
	if cfg.Transport != TransportClock {
		t.Errorf("Transport = %q, want clock", cfg.Transport)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := []string{
		"tick_ms: 5\n",
		"tick_ms: 5000\n",
		"transport: tape\n",
		"tick_ms: [\n",
	}
	for _, content := range cases {
		l := Loader{ReadFile: func(string) ([]byte, error) {
			return []byte(content), nil
		}}
		if _, err := l.Load("scriptplay.yaml"); err == nil {
			t.Errorf("Load accepted %q", content)
		}
	}
}

func TestTickInterval(t *testing.T) {
	cfg := Config{TickMs: 100}
	if cfg.TickInterval().Milliseconds() != 100 {
		t.Errorf("TickInterval = %v", cfg.TickInterval())
	}
}
