package transcript

import (
	"strings"
	"testing"
)

func TestParseDocument(t *testing.T) {
	data := []byte(`{
		"audio": "lesson_01.mp3",
		"script": [
			{"text": "Good morning.", "start": 0, "end": 2.5},
			{"text": "How are you?", "start": 2.5, "end": 5.1},
			{"text": "Fine, thanks.", "start": 6.0, "end": 8.25}
		]
	}`)

	doc, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if doc.AudioHint != "lesson_01.mp3" {
		t.Errorf("AudioHint = %q, want %q", doc.AudioHint, "lesson_01.mp3")
	}
	if len(doc.Segments) != 3 {
		t.Fatalf("got %d segments, want 3", len(doc.Segments))
	}
	if doc.Segments[0].Text != "Good morning." {
		t.Errorf("segments[0].Text = %q", doc.Segments[0].Text)
	}
	if doc.Segments[1].StartMs != 2500 || doc.Segments[1].EndMs != 5100 {
		t.Errorf("segments[1] = %d-%d ms, want 2500-5100", doc.Segments[1].StartMs, doc.Segments[1].EndMs)
	}
	if doc.Segments[2].EndMs != 8250 {
		t.Errorf("segments[2].EndMs = %d, want 8250", doc.Segments[2].EndMs)
	}
}

func TestParseExactMilliseconds(t *testing.T) {
	// 0.1 and 0.2 have no exact float representation; the decimal path
	// must still land on whole milliseconds.
	doc, err := Parse([]byte(`{"script": [{"text": "x", "start": 0.1, "end": 0.2}]}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.Segments[0].StartMs != 100 || doc.Segments[0].EndMs != 200 {
		t.Errorf("got %d-%d ms, want 100-200", doc.Segments[0].StartMs, doc.Segments[0].EndMs)
	}
}

func TestParseNoAudioHint(t *testing.T) {
	doc, err := Parse([]byte(`{"script": [{"text": "x", "start": 1, "end": 2}]}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.AudioHint != "" {
		t.Errorf("AudioHint = %q, want empty", doc.AudioHint)
	}
}

func TestParseEmptyScript(t *testing.T) {
	doc, err := Parse([]byte(`{"script": []}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.Segments) != 0 {
		t.Errorf("got %d segments, want 0", len(doc.Segments))
	}
}

func TestParseMalformedJSON(t *testing.T) {
	if _, err := Parse([]byte(`{"script": [`)); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestParseRejectsInvalidSegments(t *testing.T) {
	cases := []struct {
		name string
		json string
	}{
		{"end before start", `{"script": [{"text": "x", "start": 5, "end": 3}]}`},
		{"zero duration", `{"script": [{"text": "x", "start": 5, "end": 5}]}`},
		{"negative start", `{"script": [{"text": "x", "start": -1, "end": 3}]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.json))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), "segment 0") {
				t.Errorf("error %q does not name the segment", err)
			}
		})
	}
}

func TestSegmentContains(t *testing.T) {
	seg := Segment{StartMs: 5000, EndMs: 7000}

	if !seg.Contains(5000) {
		t.Error("start boundary should be inclusive")
	}
	if !seg.Contains(6999) {
		t.Error("position inside segment should match")
	}
	if seg.Contains(7000) {
		t.Error("end boundary should be exclusive")
	}
	if seg.Contains(4999) {
		t.Error("position before start should not match")
	}
}
