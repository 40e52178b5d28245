// Package transcript parses and represents the timed-transcript document
// produced by the extraction pipeline.
package transcript

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Segment is one timed transcript unit. Times are integer milliseconds;
// the document format carries float seconds, converted exactly on parse.
type Segment struct {
	Text    string
	StartMs int64
	EndMs   int64
}

// Contains reports whether the given playback position falls inside the
// segment. The end boundary is exclusive.
func (s Segment) Contains(ms int64) bool {
	return s.StartMs <= ms && ms < s.EndMs
}

// StartSeconds returns the segment start as float seconds, for seeking.
func (s Segment) StartSeconds() float64 {
	return float64(s.StartMs) / 1000
}

// Document is one parsed transcript. It is immutable once parsed and
// replaced wholesale when a new batch is loaded, never mutated.
type Document struct {
	Segments  []Segment
	AudioHint string
}

type documentJSON struct {
	Audio  string        `json:"audio"`
	Script []segmentJSON `json:"script"`
}

type segmentJSON struct {
	Text  string          `json:"text"`
	Start decimal.Decimal `json:"start"`
	End   decimal.Decimal `json:"end"`
}

// Parse decodes and validates a transcript document. Segment order is
// preserved as-is; a segment's position in the sequence is its stable index.
// An empty script is valid.
func Parse(data []byte) (*Document, error) {
	var raw documentJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode transcript: %w", err)
	}

	doc := &Document{AudioHint: raw.Audio}
	thousand := decimal.NewFromInt(1000)

	for i, s := range raw.Script {
		seg := Segment{
			Text:    s.Text,
			StartMs: s.Start.Mul(thousand).IntPart(),
			EndMs:   s.End.Mul(thousand).IntPart(),
		}
		if seg.StartMs < 0 {
			return nil, fmt.Errorf("segment %d: negative start %s", i, s.Start)
		}
		if seg.EndMs <= seg.StartMs {
			return nil, fmt.Errorf("segment %d: end %s not after start %s", i, s.End, s.Start)
		}
		doc.Segments = append(doc.Segments, seg)
	}

	return doc, nil
}
