// Package loader reconciles one batch of file inputs — a transcript
// document and an audio source, each resolved asynchronously and in no
// guaranteed order — into exactly one finalization decision.
package loader

import (
	"fmt"
	"os"
	"path/filepath"

	"scriptplay/internal/audio"
	"scriptplay/internal/transcript"
)

// Input is a named, readable file-like input.
type Input struct {
	Name string                 // basename, used for classification
	Path string                 // on-disk location, used for audio preparation
	Read func() ([]byte, error) // script content
}

// FileInput builds an Input backed by a file on disk.
func FileInput(path string) Input {
	return Input{
		Name: filepath.Base(path),
		Path: path,
		Read: func() ([]byte, error) { return os.ReadFile(path) },
	}
}

// LoadState is the per-category resolution state within one batch.
type LoadState int

const (
	StatePending LoadState = iota
	StateSucceeded
	StateFailed
	StateAbsent
)

// Terminal reports whether the state counts toward finalization.
func (s LoadState) Terminal() bool { return s != StatePending }

func (s LoadState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "absent"
	}
}

// Severity distinguishes recoverable warnings from category-fatal errors.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

// NoticeKind names the condition a notice reports.
type NoticeKind string

const (
	NoticeUnsupportedFile NoticeKind = "unsupported_file"
	NoticeSupersededInput NoticeKind = "superseded_input"
	NoticeParseError      NoticeKind = "parse_error"
	NoticeMissingScript   NoticeKind = "missing_script"
	NoticeMissingAudio    NoticeKind = "missing_audio"
	NoticeAudioLoad       NoticeKind = "audio_load"
)

// Notice is a user-facing warning or error produced while reconciling a
// batch. All load failures surface as notices; none propagate.
type Notice struct {
	Kind     NoticeKind
	Severity Severity
	Message  string
}

// Finalization is the single per-batch decision handed to the player.
// Doc is nil when no transcript was installed, Audio nil when no audio
// source is available.
type Finalization struct {
	Generation int
	Doc        *transcript.Document
	Audio      *audio.Reference
	Notices    []Notice
}

// Submission describes what Submit decided for a batch: which inputs need
// asynchronous resolution and the warnings raised during classification.
// When both fields are nil the batch was a no-op and finalized in place,
// emitting nothing per the decision table.
type Submission struct {
	Generation int
	Script     *Input
	Audio      *Input
	Notices    []Notice
}

// Reconciler tracks the load state of the current batch. It owns that
// state for the lifetime of one batch only: a new Submit discards all
// prior state, and resolutions carrying a stale generation are ignored.
type Reconciler struct {
	generation int
	script     LoadState
	audio      LoadState
	doc        *transcript.Document
	ref        *audio.Reference
	scriptErr  error
	audioErr   error
	finalized  bool
}

// Generation returns the current batch generation.
func (r *Reconciler) Generation() int { return r.generation }

// ScriptState returns the current script-category load state.
func (r *Reconciler) ScriptState() LoadState { return r.script }

// AudioState returns the current audio-category load state.
func (r *Reconciler) AudioState() LoadState { return r.audio }

// Submit classifies a batch and starts a new reconciliation, superseding
// any batch still in flight. Unknown files are excluded from completion
// tracking; when a category has several inputs the last one wins. A batch
// with nothing to resolve finalizes synchronously as a no-op.
func (r *Reconciler) Submit(batch []Input) Submission {
	r.generation++
	r.script = StateAbsent
	r.audio = StateAbsent
	r.doc = nil
	r.ref = nil
	r.scriptErr = nil
	r.audioErr = nil
	r.finalized = false

	sub := Submission{Generation: r.generation}

	for i := range batch {
		in := batch[i]
		switch Classify(in.Name) {
		case CategoryScript:
			if sub.Script != nil {
				sub.Notices = append(sub.Notices, Notice{
					Kind:     NoticeSupersededInput,
					Severity: SeverityWarning,
					Message:  fmt.Sprintf("ignoring %s: replaced by a later transcript in the same batch", sub.Script.Name),
				})
			}
			sub.Script = &in
		case CategoryAudio:
			if sub.Audio != nil {
				sub.Notices = append(sub.Notices, Notice{
					Kind:     NoticeSupersededInput,
					Severity: SeverityWarning,
					Message:  fmt.Sprintf("ignoring %s: replaced by a later audio file in the same batch", sub.Audio.Name),
				})
			}
			sub.Audio = &in
		default:
			sub.Notices = append(sub.Notices, Notice{
				Kind:     NoticeUnsupportedFile,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("unsupported file %s: expected .json or .mp3", in.Name),
			})
		}
	}

	if sub.Script != nil {
		r.script = StatePending
	}
	if sub.Audio != nil {
		r.audio = StatePending
	}

	// Nothing recognized: terminal immediately, nothing to initialize.
	if r.script == StateAbsent && r.audio == StateAbsent {
		r.finalized = true
	}

	return sub
}

// ResolveScript records the outcome of the script resolution started by
// Submit. Stale generations and repeat completions are ignored. It returns
// a Finalization when this resolution completes the batch.
func (r *Reconciler) ResolveScript(generation int, doc *transcript.Document, err error) *Finalization {
	if generation != r.generation || r.finalized || r.script.Terminal() {
		return nil
	}
	if err != nil {
		r.script = StateFailed
		r.scriptErr = err
	} else {
		r.script = StateSucceeded
		r.doc = doc
	}
	return r.maybeFinalize()
}

// ResolveAudio records the outcome of the audio resolution started by
// Submit, under the same staleness rules as ResolveScript.
func (r *Reconciler) ResolveAudio(generation int, ref *audio.Reference, err error) *Finalization {
	if generation != r.generation || r.finalized || r.audio.Terminal() {
		return nil
	}
	if err != nil {
		r.audio = StateFailed
		r.audioErr = err
	} else {
		r.audio = StateSucceeded
		r.ref = ref
	}
	return r.maybeFinalize()
}

func (r *Reconciler) maybeFinalize() *Finalization {
	if !r.script.Terminal() || !r.audio.Terminal() {
		return nil
	}
	r.finalized = true

	f := &Finalization{Generation: r.generation}

	switch r.script {
	case StateSucceeded:
		f.Doc = r.doc
		switch r.audio {
		case StateSucceeded:
			f.Audio = r.ref
		case StateFailed:
			f.Notices = append(f.Notices, Notice{
				Kind:     NoticeAudioLoad,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("audio failed to load: %v", r.audioErr),
			})
		case StateAbsent:
			msg := "no audio file in batch; transcript shown without playback"
			if r.doc.AudioHint != "" {
				msg = fmt.Sprintf("no audio file in batch; the transcript names %s", r.doc.AudioHint)
			}
			f.Notices = append(f.Notices, Notice{
				Kind:     NoticeMissingAudio,
				Severity: SeverityWarning,
				Message:  msg,
			})
		}

	case StateFailed:
		f.Notices = append(f.Notices, Notice{
			Kind:     NoticeParseError,
			Severity: SeverityError,
			Message:  fmt.Sprintf("transcript rejected: %v", r.scriptErr),
		})
		switch r.audio {
		case StateSucceeded:
			f.Audio = r.ref
		case StateFailed:
			f.Notices = append(f.Notices, Notice{
				Kind:     NoticeAudioLoad,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("audio failed to load: %v", r.audioErr),
			})
		}

	case StateAbsent:
		switch r.audio {
		case StateSucceeded:
			f.Audio = r.ref
			f.Notices = append(f.Notices, Notice{
				Kind:     NoticeMissingScript,
				Severity: SeverityWarning,
				Message:  "no transcript in batch; audio will play without synchronization",
			})
		case StateFailed:
			f.Notices = append(f.Notices, Notice{
				Kind:     NoticeAudioLoad,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("audio failed to load: %v", r.audioErr),
			})
		}
	}

	return f
}
