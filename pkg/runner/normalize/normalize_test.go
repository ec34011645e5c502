package normalize

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/datepick/pkg/format"
	"tableflip.dev/datepick/pkg/settings"
)

func init() {
	color.NoColor = true
}

func TestText(t *testing.T) {
	s := settings.Defaults()
	s.DateLayout = format.LayoutDMYDot
	s.Use24Hour = true

	got, report, err := Text("from 2024-03-05 10:30 PM to 2024-03-06, at 9:05 am; done 05.03.2024", s)
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	want := "from 05.03.2024 22:30 to 06.03.2024, at 09:05; done 05.03.2024"
	if got != want {
		t.Fatalf("got  %q\nwant %q", got, want)
	}
	if report.Found != 4 || report.Rewritten != 3 {
		t.Fatalf("report = %+v", report)
	}
}

func TestDoWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("due 2024/1/2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	n := Normalize{Path: path, Settings: settings.Defaults(), Write: true, Out: &out}
	if err := n.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "due 2024-01-02\n" {
		t.Fatalf("file = %q", data)
	}
	if !strings.Contains(out.String(), "rewrote 1 of 1") {
		t.Fatalf("out = %q", out.String())
	}
}
