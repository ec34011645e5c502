package overlay

import (
	"strings"
	"testing"

	"github.com/muesli/reflow/ansi"
)

func stripANSI(s string) string {
	var b strings.Builder
	inSeq := false
	for _, r := range s {
		if r == ansi.Marker {
			inSeq = true
			continue
		}
		if inSeq {
			if ansi.IsTerminator(r) {
				inSeq = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func TestComposeAnchored(t *testing.T) {
	bg := "aaaaaaaa\nbbbbbbbb\ncccccccc"
	got := stripANSI(Compose(bg, 8, 3, "XY\nZW", At(2, 1)))
	want := "aaaaaaaa\nbbXYbbbb\nccZWcccc"
	if got != want {
		t.Fatalf("got\n%s\nwant\n%s", got, want)
	}
}

func TestComposeTopLeftIsNotCentered(t *testing.T) {
	got := stripANSI(Compose("....\n....\n....", 4, 3, "#", Placement{}))
	if !strings.HasPrefix(got, "#...") {
		t.Fatalf("zero placement should anchor top left, got\n%s", got)
	}
}

func TestComposePushesInside(t *testing.T) {
	got := stripANSI(Compose("....\n....", 4, 2, "##\n##", At(3, 1)))
	want := "..##\n..##"
	if got != want {
		t.Fatalf("got\n%s\nwant\n%s", got, want)
	}
}

func TestComposeCenteredAndEnd(t *testing.T) {
	got := stripANSI(Compose("", 5, 3, "#", Centered()))
	if lines := strings.Split(got, "\n"); lines[1] != "  #  " {
		t.Fatalf("centered = %q", lines)
	}
	got = stripANSI(Compose("", 5, 3, "#", Placement{Horizontal: End, Vertical: End, X: 1}))
	if lines := strings.Split(got, "\n"); lines[2] != "   # " {
		t.Fatalf("end = %q", lines)
	}
}

func TestSliceWidthKeepsEscapes(t *testing.T) {
	s := "\x1b[1mabc\x1b[0mdef"
	got := sliceWidth(s, 1, 4)
	if stripANSI(got) != "bcd" {
		t.Fatalf("printable = %q", stripANSI(got))
	}
	if !strings.Contains(got, "\x1b[1m") || !strings.Contains(got, "\x1b[0m") {
		t.Fatalf("escapes dropped: %q", got)
	}
}
