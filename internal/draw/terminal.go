package draw

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

// ANSI control sequences.
const (
	seqClear      = "\033[H\033[2J"
	seqHideCursor = "\033[?25l"
	seqShowCursor = "\033[?25h"
)

// maxChunkSize bounds each write, about one network packet, so SSH sessions
// receive a frame as a steady stream instead of one large burst.
const maxChunkSize = 1400

// frameWriter builds one frame of terminal output in memory and sends it in
// packet-sized writes.
type frameWriter struct {
	buf []byte
	out *bufio.Writer
}

func newFrameWriter(w io.Writer) *frameWriter {
	return &frameWriter{out: bufio.NewWriterSize(w, 8192)}
}

// moveTo positions the cursor at a 0-based terminal cell.
func (f *frameWriter) moveTo(col, row int) {
	f.buf = append(f.buf, "\033["...)
	f.buf = strconv.AppendInt(f.buf, int64(row+1), 10)
	f.buf = append(f.buf, ';')
	f.buf = strconv.AppendInt(f.buf, int64(col+1), 10)
	f.buf = append(f.buf, 'H')
}

func (f *frameWriter) text(s string) {
	f.buf = append(f.buf, s...)
}

func (f *frameWriter) textAt(col, row int, s string) {
	f.moveTo(col, row)
	f.text(s)
}

func (f *frameWriter) char(r rune) {
	f.buf = utf8.AppendRune(f.buf, r)
}

// flush sends the frame and empties the buffer.
func (f *frameWriter) flush() error {
	data := f.buf
	f.buf = f.buf[:0]
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := f.out.Write(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return f.out.Flush()
}

// border outlines view with box-drawing characters wherever the terminal has
// a spare row or column around it.
func (f *frameWriter) border(view Viewport) {
	left, right := view.Col-1, view.Col+view.Cols
	top, bottom := view.Row-1, view.Row+view.Rows
	sides := view.Col >= 1
	ends := view.Row >= 1

	if ends {
		line := strings.Repeat("─", view.Cols)
		for _, row := range [2]int{top, bottom} {
			f.textAt(view.Col, row, line)
		}
	}
	if sides {
		for row := view.Row; row < bottom; row++ {
			f.textAt(left, row, "│")
			f.textAt(right, row, "│")
		}
	}
	if ends && sides {
		f.textAt(left, top, "┌")
		f.textAt(right, top, "┐")
		f.textAt(left, bottom, "└")
		f.textAt(right, bottom, "┘")
	}
}

// TermSizeFunc is a function that returns the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns terminal size from os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	io.WriteString(w, seqHideCursor)
}

// ResetScreen clears the screen and restores the cursor when the game exits.
func ResetScreen(w io.Writer) {
	io.WriteString(w, seqClear+seqShowCursor)
}
