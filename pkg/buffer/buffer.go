// Package buffer is an in-memory text document that implements host.Editor.
// Offsets are rune offsets. Change notifications are queued and drained by
// the caller, a document edit and the selection move it causes being queued
// as two separate changes.
package buffer

import (
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/datepick/pkg/host"
)

// ErrRange is returned for offsets outside the document.
var ErrRange = errors.New("offset out of range")

// Buffer is a text document with one selection and a scroll window.
type Buffer struct {
	text    []rune
	lines   []int // start offset of each line
	version uint64
	dirty   bool

	sel host.Selection

	top    int
	height int

	pending []host.Change
}

var _ host.Editor = (*Buffer)(nil)

// New returns a buffer holding text with the cursor at the start.
func New(text string) *Buffer {
	b := &Buffer{height: 1 << 30}
	b.load(text)
	return b
}

func (b *Buffer) load(text string) {
	b.text = []rune(text)
	b.reindex()
}

func (b *Buffer) reindex() {
	b.lines = b.lines[:0]
	b.lines = append(b.lines, 0)
	for i, r := range b.text {
		if r == '\n' {
			b.lines = append(b.lines, i+1)
		}
	}
}

// Text returns the whole document.
func (b *Buffer) Text() string { return string(b.text) }

// Version increases on every edit.
func (b *Buffer) Version() uint64 { return b.version }

// Len is the document length in runes.
func (b *Buffer) Len() int { return len(b.text) }

// Dirty reports whether the document changed since the last MarkClean.
func (b *Buffer) Dirty() bool { return b.dirty }

// MarkClean records that the document was saved.
func (b *Buffer) MarkClean() { b.dirty = false }

// Slice returns the text in [start, end), clamped to the document.
func (b *Buffer) Slice(start, end int) string {
	start, end = b.clamp(start), b.clamp(end)
	if start >= end {
		return ""
	}
	return string(b.text[start:end])
}

// LineCount is the number of lines; an empty document has one.
func (b *Buffer) LineCount() int { return len(b.lines) }

// Line returns line n, counting from zero.
func (b *Buffer) Line(n int) host.Line {
	if n < 0 {
		n = 0
	}
	if n >= len(b.lines) {
		n = len(b.lines) - 1
	}
	from := b.lines[n]
	to := len(b.text)
	if n+1 < len(b.lines) {
		to = b.lines[n+1] - 1
	}
	return host.Line{Number: n, From: from, To: to, Text: string(b.text[from:to])}
}

// LineAt returns the line holding offset.
func (b *Buffer) LineAt(offset int) host.Line {
	line, _ := b.Position(offset)
	return b.Line(line)
}

// Position converts an offset into a line and column.
func (b *Buffer) Position(offset int) (line, col int) {
	offset = b.clamp(offset)
	lo, hi := 0, len(b.lines)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if b.lines[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo, offset - b.lines[lo]
}

// Offset converts a line and column into an offset, clamping the column to
// the line.
func (b *Buffer) Offset(line, col int) int {
	l := b.Line(line)
	if col < 0 {
		col = 0
	}
	if l.From+col > l.To {
		return l.To
	}
	return l.From + col
}

// Selection returns the current selection.
func (b *Buffer) Selection() host.Selection { return b.sel }

// SetSelection moves the selection, clamped to the document.
func (b *Buffer) SetSelection(sel host.Selection) {
	sel = host.Selection{Anchor: b.clamp(sel.Anchor), Head: b.clamp(sel.Head)}
	if sel == b.sel {
		return
	}
	b.sel = sel
	b.pending = append(b.pending, host.Change{SelectionSet: true})
}

// ReplaceRange replaces [start, end) with text. Selection endpoints after the
// range shift with it; endpoints inside it move to the end of the new text.
func (b *Buffer) ReplaceRange(start, end int, text string) error {
	if start < 0 || end > len(b.text) || start > end {
		return fmt.Errorf("replace [%d,%d) in document of %d: %w", start, end, len(b.text), ErrRange)
	}
	ins := []rune(text)
	out := make([]rune, 0, len(b.text)-(end-start)+len(ins))
	out = append(out, b.text[:start]...)
	out = append(out, ins...)
	out = append(out, b.text[end:]...)
	b.text = out
	b.reindex()
	b.version++
	b.dirty = true
	b.pending = append(b.pending, host.Change{DocChanged: true})

	delta := len(ins) - (end - start)
	mapPos := func(p int) int {
		switch {
		case p < start:
			return p
		case p >= end && p > start:
			return p + delta
		default:
			return start + len(ins)
		}
	}
	sel := host.Selection{Anchor: mapPos(b.sel.Anchor), Head: mapPos(b.sel.Head)}
	if sel != b.sel {
		b.sel = sel
		b.pending = append(b.pending, host.Change{SelectionSet: true})
	}
	return nil
}

// SetText replaces the whole document, keeping the cursor line if possible.
func (b *Buffer) SetText(text string) {
	line, col := b.Position(b.sel.Head)
	b.load(text)
	b.version++
	b.dirty = false
	b.pending = append(b.pending, host.Change{DocChanged: true})
	b.SetSelection(host.Cursor(b.Offset(line, col)))
}

// Insert types text at the selection.
func (b *Buffer) Insert(text string) {
	_ = b.ReplaceRange(b.sel.From(), b.sel.To(), text)
	b.collapse()
}

// Backspace deletes the selection or the rune before the cursor.
func (b *Buffer) Backspace() {
	from, to := b.sel.From(), b.sel.To()
	if from == to {
		if from == 0 {
			return
		}
		from--
	}
	_ = b.ReplaceRange(from, to, "")
	b.collapse()
}

// Delete deletes the selection or the rune after the cursor.
func (b *Buffer) Delete() {
	from, to := b.sel.From(), b.sel.To()
	if from == to {
		if to == len(b.text) {
			return
		}
		to++
	}
	_ = b.ReplaceRange(from, to, "")
	b.collapse()
}

func (b *Buffer) collapse() {
	if !b.sel.Empty() {
		b.SetSelection(host.Cursor(b.sel.Head))
	}
}

// MoveCursor moves the cursor by delta runes, collapsing the selection.
func (b *Buffer) MoveCursor(delta int) {
	b.SetSelection(host.Cursor(b.sel.Head + delta))
}

// MoveLine moves the cursor by delta lines, keeping the column where the
// target line is long enough.
func (b *Buffer) MoveLine(delta int) {
	line, col := b.Position(b.sel.Head)
	b.SetSelection(host.Cursor(b.Offset(line+delta, col)))
}

// Home moves the cursor to the start of its line.
func (b *Buffer) Home() {
	b.SetSelection(host.Cursor(b.LineAt(b.sel.Head).From))
}

// End moves the cursor to the end of its line.
func (b *Buffer) End() {
	b.SetSelection(host.Cursor(b.LineAt(b.sel.Head).To))
}

// SetViewport sets the first visible line and the number of visible lines.
func (b *Buffer) SetViewport(top, height int) {
	if top < 0 {
		top = 0
	}
	if top >= len(b.lines) {
		top = len(b.lines) - 1
	}
	if height < 1 {
		height = 1
	}
	if top == b.top && height == b.height {
		return
	}
	change := host.Change{ViewportChanged: top != b.top, GeometryChanged: height != b.height}
	b.top, b.height = top, height
	b.pending = append(b.pending, change)
}

// Viewport returns the first visible line and the visible line count.
func (b *Buffer) Viewport() (top, height int) { return b.top, b.height }

// ScrollTo moves the viewport so that offset is visible.
func (b *Buffer) ScrollTo(offset int) {
	line, _ := b.Position(offset)
	switch {
	case line < b.top:
		b.SetViewport(line, b.height)
	case line >= b.top+b.height:
		b.SetViewport(line-b.height+1, b.height)
	}
}

// VisibleRanges returns the text of the visible lines as one range.
func (b *Buffer) VisibleRanges() []host.Range {
	last := b.top + b.height - 1
	if last >= len(b.lines) {
		last = len(b.lines) - 1
	}
	from := b.Line(b.top).From
	to := b.Line(last).To
	return []host.Range{{Start: from, End: to, Text: string(b.text[from:to])}}
}

// CoordsAt places offset relative to the viewport. Offsets on lines outside
// the viewport have no coordinates.
func (b *Buffer) CoordsAt(offset int) (host.Coords, bool) {
	if offset < 0 || offset > len(b.text) {
		return host.Coords{}, false
	}
	line, col := b.Position(offset)
	if line < b.top || line >= b.top+b.height {
		return host.Coords{}, false
	}
	row := line - b.top
	return host.Coords{Top: row, Left: col, Bottom: row + 1}, true
}

// Changes drains the queued change notifications.
func (b *Buffer) Changes() []host.Change {
	out := b.pending
	b.pending = nil
	return out
}

// Lines returns the text of the visible lines.
func (b *Buffer) Lines() []string {
	var out []string
	for n := b.top; n < b.top+b.height && n < len(b.lines); n++ {
		out = append(out, b.Line(n).Text)
	}
	return out
}

func (b *Buffer) clamp(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(b.text) {
		return len(b.text)
	}
	return offset
}

// String is the document text with the cursor marked by a bar, for
// debugging.
func (b *Buffer) String() string {
	var sb strings.Builder
	sb.WriteString(string(b.text[:b.sel.Head]))
	sb.WriteString("|")
	sb.WriteString(string(b.text[b.sel.Head:]))
	return sb.String()
}
