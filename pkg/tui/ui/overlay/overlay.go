// Package overlay draws one rendered view on top of another.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/ansi"
)

// Align positions an overlay along one axis.
type Align int

const (
	// Start places the overlay Offset cells from the top or left edge.
	Start Align = iota
	// Center ignores Offset.
	Center
	// End places the overlay Offset cells from the bottom or right edge.
	End
)

// Placement controls overlay alignment and sizing. The zero value anchors the
// overlay at the top left corner.
type Placement struct {
	Horizontal Align
	Vertical   Align
	X          int
	Y          int
	Width      int
	Height     int
}

// At anchors an overlay with its top left corner at column x, row y.
func At(x, y int) Placement {
	return Placement{X: x, Y: y}
}

// Centered places an overlay in the middle of the background.
func Centered() Placement {
	return Placement{Horizontal: Center, Vertical: Center}
}

const reset = "\x1b[0m"

// Compose overlays the foreground view atop the background while preserving
// background content outside the overlay bounds. Overlays that would spill
// past an edge are pushed back inside.
func Compose(background string, width, height int, foreground string, placement Placement) string {
	bgLines := normalizeBackground(background, width, height)
	if foreground == "" || width <= 0 || height <= 0 {
		return strings.Join(bgLines, "\n")
	}

	fgLines := strings.Split(foreground, "\n")

	overlayWidth := placement.Width
	if overlayWidth <= 0 {
		for _, line := range fgLines {
			if w := lipgloss.Width(line); w > overlayWidth {
				overlayWidth = w
			}
		}
	}
	if overlayWidth <= 0 {
		return strings.Join(bgLines, "\n")
	}
	if overlayWidth > width {
		overlayWidth = width
	}

	overlayHeight := placement.Height
	if overlayHeight <= 0 {
		overlayHeight = len(fgLines)
	}
	if overlayHeight > height {
		overlayHeight = height
	}

	offsetX := offset(placement.Horizontal, placement.X, width, overlayWidth)
	offsetY := offset(placement.Vertical, placement.Y, height, overlayHeight)

	for row := 0; row < overlayHeight; row++ {
		destY := offsetY + row
		fgLine := ""
		if row < len(fgLines) {
			fgLine = fgLines[row]
		}
		fgLine = padToWidth(fgLine, overlayWidth)

		baseLine := bgLines[destY]
		prefix := sliceWidth(baseLine, 0, offsetX)
		suffix := sliceWidth(baseLine, offsetX+overlayWidth, width)
		bgLines[destY] = prefix + reset + fgLine + reset + suffix
	}

	return strings.Join(bgLines, "\n")
}

func offset(align Align, margin, total, size int) int {
	var off int
	switch align {
	case Center:
		off = (total - size) / 2
	case End:
		off = total - size - margin
	default:
		off = margin
	}
	if off > total-size {
		off = total - size
	}
	if off < 0 {
		off = 0
	}
	return off
}

func normalizeBackground(view string, width, height int) []string {
	lines := strings.Split(view, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i := range lines {
		lines[i] = padToWidth(lines[i], width)
	}
	return lines
}

func padToWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	currWidth := lipgloss.Width(s)
	if currWidth > width {
		return sliceWidth(s, 0, width)
	}
	return s + strings.Repeat(" ", width-currWidth)
}

// sliceWidth keeps the printable cells in [start, end) of s. Escape sequences
// are kept wherever they occur so styling carries across the cut.
func sliceWidth(s string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end <= start {
		return ""
	}

	var b strings.Builder
	seen := 0
	inSeq := false
	for _, r := range s {
		if r == ansi.Marker {
			inSeq = true
			b.WriteRune(r)
			continue
		}
		if inSeq {
			b.WriteRune(r)
			if ansi.IsTerminator(r) {
				inSeq = false
			}
			continue
		}
		rw := lipgloss.Width(string(r))
		next := seen + rw
		if seen >= start && next <= end {
			b.WriteRune(r)
		}
		seen = next
	}
	return b.String()
}
