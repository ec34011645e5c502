package now

import (
	"bytes"
	"context"
	"testing"
	"time"

	"tableflip.dev/datepick/pkg/format"
	"tableflip.dev/datepick/pkg/settings"
)

func TestNowUsesPreferredFormat(t *testing.T) {
	at := time.Date(2024, time.March, 5, 22, 30, 0, 0, time.UTC)
	tests := []struct {
		layout format.Layout
		kind   format.Kind
		h24    bool
		want   string
	}{
		{format.LayoutYMDDash, format.Date, false, "2024-03-05\n"},
		{format.LayoutDMYDot, format.DateTime, true, "05.03.2024 22:30\n"},
		{format.LayoutMDYSlash, format.DateTime, false, "03/05/2024 10:30 PM\n"},
		{format.LayoutMDYSlash, format.Time, false, "10:30 PM\n"},
	}
	for _, tt := range tests {
		s := settings.Defaults()
		s.DateLayout = tt.layout
		s.Use24Hour = tt.h24
		var out bytes.Buffer
		n := Now{Kind: tt.kind, Settings: s, At: at, Out: &out}
		if err := n.Do(context.Background()); err != nil {
			t.Fatalf("Do: %v", err)
		}
		if out.String() != tt.want {
			t.Fatalf("%s %s: got %q, want %q", tt.layout, tt.kind, out.String(), tt.want)
		}
	}
}
