package mix

import (
	"fmt"
	"io"
)

// progressReporter prints a carriage-return percentage line while the
// scan advances. Side-effect only; a nil writer disables it entirely.
type progressReporter struct {
	w     io.Writer
	total int
	last  int // last percentage printed, -1 before the first line
}

func newProgressReporter(w io.Writer, total int) *progressReporter {
	return &progressReporter{w: w, total: total, last: -1}
}

// step reports the scan position pos (0-based). Lines are only written
// when the integer percentage changes, keeping the cost negligible.
func (p *progressReporter) step(pos int) {
	if p.w == nil || p.total == 0 {
		return
	}
	pct := (pos + 1) * 100 / p.total
	if pct == p.last {
		return
	}
	p.last = pct
	fmt.Fprintf(p.w, "\rProcessing entry %d/%d (%d%%)", pos+1, p.total, pct)
}

// done terminates the progress line.
func (p *progressReporter) done() {
	if p.w == nil || p.last < 0 {
		return
	}
	fmt.Fprintln(p.w)
}
