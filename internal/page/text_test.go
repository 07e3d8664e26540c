package page

import (
	"strings"
	"testing"
)

func TestFromHTML(t *testing.T) {
	const snapshot = `<html><head><title>ignored</title>
<style>.x { color: red }</style></head>
<body>
<script>var tracking = true;</script>
<div>Fri, 5 Dec at 18:00 - 20:00 AEDT</div>
<h1>Trivia Night</h1>
<div><span>Upstairs</span> <span>Bar</span></div>
<p>Bring a team of four.</p>
</body></html>`

	text, err := FromHTML(strings.NewReader(snapshot))
	if err != nil {
		t.Fatalf("FromHTML() error = %v", err)
	}

	want := []string{
		"Fri, 5 Dec at 18:00 - 20:00 AEDT",
		"Trivia Night",
		"Upstairs Bar",
		"Bring a team of four.",
	}
	got := strings.Split(text, "\n")
	if len(got) != len(want) {
		t.Fatalf("FromHTML() = %d lines %q, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFromHTML_FeedsSegmenter(t *testing.T) {
	const snapshot = `<body>
<div>Fri, 5 Dec at 18:00 AEDT</div>
<div>Trivia Night</div>
<div>Upstairs Bar</div>
<div>Public</div>
<div>Bring a team of four.</div>
<div>Host</div>
</body>`

	text, err := FromHTML(strings.NewReader(snapshot))
	if err != nil {
		t.Fatalf("FromHTML() error = %v", err)
	}

	c := Segment(text)
	if c.Title != "Trivia Night" {
		t.Errorf("Title = %q, want %q", c.Title, "Trivia Night")
	}
	if c.Location != "Upstairs Bar" {
		t.Errorf("Location = %q, want %q", c.Location, "Upstairs Bar")
	}
}
