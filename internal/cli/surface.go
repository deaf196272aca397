package cli

import (
	"fmt"
	"io"
	gosync "sync"

	"github.com/osvaldoandrade/treesync/internal/progress"
)

const surfaceBarWidth = 20

var spinnerFrames = []string{"|", "/", "-", "\\"}

// syncSurface renders one progress row per project on an interactive
// terminal. Rows are attached top to bottom before workers start; each
// worker then repaints only its own row, with cursor movement serialized
// by the surface mutex.
type syncSurface struct {
	mu   gosync.Mutex
	out  io.Writer
	ui   renderer
	rows []*surfaceRow
}

func newSurface(out io.Writer) *syncSurface {
	return &syncSurface{out: out, ui: newRenderer(out)}
}

func (s *syncSurface) Attach(label string) progress.Reporter {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := &surfaceRow{surface: s, index: len(s.rows), text: label}
	s.rows = append(s.rows, row)
	s.renderRow(row)
	fmt.Fprintln(s.out)
	return row
}

// repaint rewrites a single row in place. The cursor rests on the line
// below the last row between paints; it is moved up to the target row,
// the line cleared and rewritten, then moved back down.
func (s *syncSurface) repaint(row *surfaceRow) {
	s.mu.Lock()
	defer s.mu.Unlock()

	up := len(s.rows) - row.index
	fmt.Fprintf(s.out, "\x1b[%dA\r\x1b[2K", up)
	s.renderRow(row)
	fmt.Fprintf(s.out, "\x1b[%dB\r", up)
}

func (s *syncSurface) renderRow(row *surfaceRow) {
	marker := spinnerFrames[row.frame%len(spinnerFrames)]
	if row.done {
		marker = s.ui.ok("*")
	}
	ratio := float64(row.percent) / 100
	fmt.Fprintf(s.out, "%s %s %3d%% %s", marker, s.ui.bar(surfaceBarWidth, ratio), row.percent, row.text)
}

type surfaceRow struct {
	surface *syncSurface
	index   int
	percent int
	text    string
	frame   int
	done    bool
}

func (r *surfaceRow) Position(percent int) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	r.percent = percent
	r.surface.repaint(r)
}

func (r *surfaceRow) Message(status string) {
	r.text = status
	r.surface.repaint(r)
}

func (r *surfaceRow) Tick() {
	r.frame++
	r.surface.repaint(r)
}

func (r *surfaceRow) Finish() {
	if r.done {
		return
	}
	r.done = true
	r.surface.repaint(r)
}
