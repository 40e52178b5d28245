// Package audio prepares playable references to audio files and drives
// playback position for the player.
package audio

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"lukechampine.com/blake3"
)

// Reference is a playable handle on an audio file. Hash is a blake3
// fingerprint of the content and serves as the stable identity of the
// source within a session; nothing decodes the audio itself.
type Reference struct {
	Path string
	Name string
	Size int64
	Hash string
}

// ShortHash returns a display-length prefix of the fingerprint.
func (r *Reference) ShortHash() string {
	if len(r.Hash) < 12 {
		return r.Hash
	}
	return r.Hash[:12]
}

// Prepare opens and fingerprints an audio file, producing its Reference.
func Prepare(path string) (*Reference, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open audio: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat audio: %w", err)
	}

	h := blake3.New(32, nil)
	if _, err := io.Copy(h, f); err != nil {
		return nil, fmt.Errorf("fingerprint audio: %w", err)
	}

	return &Reference{
		Path: path,
		Name: filepath.Base(path),
		Size: info.Size(),
		Hash: hex.EncodeToString(h.Sum(nil)),
	}, nil
}
