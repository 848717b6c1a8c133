package app

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"capsule-go/internal/capsule"
)

func testCapsules(names ...string) []*capsule.Capsule {
	var out []*capsule.Capsule
	for _, n := range names {
		out = append(out, &capsule.Capsule{Name: n, Path: "/s/" + n})
	}
	return out
}

func TestRenderListing(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	err := RenderListing(&buf, testCapsules(
		"emacs_capsule_Mon_Jan_15_2024_10_30_00.zip",
		"emacs_capsule_Tue_Jan_16_2024_10_30_00.zip",
	))
	if err != nil {
		t.Fatalf("RenderListing() error = %v", err)
	}

	want := "Available Capsules:\n" +
		capsuleGlyph + `:(1): "emacs_capsule_Mon_Jan_15_2024_10_30_00.zip"` + "\n" +
		capsuleGlyph + `:(2): "emacs_capsule_Tue_Jan_16_2024_10_30_00.zip"` + "\n"
	if got := buf.String(); got != want {
		t.Errorf("RenderListing() output =\n%q\nwant:\n%q", got, want)
	}
}

func TestLinePrompt_Choose(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	capsules := testCapsules("a.zip", "b.zip", "c.zip")

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "first", input: "1\n", want: "a.zip"},
		{name: "last with spaces", input: "  3 \n", want: "c.zip"},
		{name: "no trailing newline", input: "2", want: "b.zip"},
		{name: "only the first line counts", input: "2\n3\n", want: "b.zip"},
		{name: "out of range", input: "4\n", wantErr: true},
		{name: "zero", input: "0\n", wantErr: true},
		{name: "not a number", input: "latest\n", wantErr: true},
		{name: "empty line", input: "\n", wantErr: true},
		{name: "end of input", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := NewLinePrompt(strings.NewReader(tt.input), &out).Choose(capsules)

			if !strings.HasPrefix(out.String(), "Available Capsules:\n") {
				t.Errorf("menu = %q, want the capsule list first", out.String())
			}
			if !strings.HasSuffix(out.String(), "Select a capsule to restore (enter the number):\n") {
				t.Errorf("menu = %q, want the prompt last", out.String())
			}

			if tt.wantErr {
				var selErr *capsule.SelectionError
				if !errors.As(err, &selErr) {
					t.Errorf("Choose(%q) error = %v, want *SelectionError", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Choose(%q) error = %v", tt.input, err)
			}
			if got.Name != tt.want {
				t.Errorf("Choose(%q) = %s, want %s", tt.input, got.Name, tt.want)
			}
		})
	}
}
