package app

import (
	"time"

	"scriptplay/internal/audio"
	"scriptplay/internal/loader"
	"scriptplay/internal/transcript"
)

// SubmitBatchMsg asks the session to load a new batch of inputs,
// superseding any batch still in flight.
type SubmitBatchMsg struct {
	Inputs []loader.Input
}

// ScriptResolvedMsg carries the outcome of parsing the batch's transcript.
type ScriptResolvedMsg struct {
	Generation int
	Doc        *transcript.Document
	Err        error
}

// AudioResolvedMsg carries the outcome of preparing the batch's audio file.
type AudioResolvedMsg struct {
	Generation int
	Ref        *audio.Reference
	Err        error
}

// TickMsg delivers one playback time sample.
type TickMsg struct {
	At time.Time
}
