// Package hist accumulates and plots the invariant-mass spectrum of
// mixed candidates.
package hist

import (
	"fmt"

	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot/vg"
)

// DefaultBins is the binning used when no bin count is configured.
const DefaultBins = 100

// Spectrum buffers mixed invariant masses for one combination and
// renders them as a histogram. Values are buffered rather than binned
// on the fly so the axis range can adapt to the data.
type Spectrum struct {
	name string
	bins int
	vals []float64
}

// NewSpectrum creates an empty spectrum titled after the combination.
// A non-positive bins falls back to DefaultBins.
func NewSpectrum(name string, bins int) *Spectrum {
	if bins < 1 {
		bins = DefaultBins
	}
	return &Spectrum{name: name, bins: bins}
}

// Fill records one mixed candidate mass.
func (s *Spectrum) Fill(mass float64) {
	s.vals = append(s.vals, mass)
}

// Entries returns the number of masses recorded.
func (s *Spectrum) Entries() int {
	return len(s.vals)
}

// Save renders the spectrum to path (format by extension, e.g. .png).
// Saving an empty spectrum is an error; callers should skip plots for
// combinations that mixed nothing.
func (s *Spectrum) Save(path string) error {
	if len(s.vals) == 0 {
		return fmt.Errorf("spectrum %q is empty", s.name)
	}

	lo, hi := s.vals[0], s.vals[0]
	for _, v := range s.vals[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo == hi {
		// Degenerate range, pad so the single bin is visible.
		lo -= 0.5
		hi += 0.5
	}

	h := hbook.NewH1D(s.bins, lo, hi)
	for _, v := range s.vals {
		h.Fill(v, 1)
	}

	p := hplot.New()
	p.Title.Text = s.name
	p.X.Label.Text = "M"
	p.Y.Label.Text = "candidates"
	p.Add(hplot.NewH1D(h))

	if err := p.Save(15*vg.Centimeter, 10*vg.Centimeter, path); err != nil {
		return fmt.Errorf("save spectrum %q: %w", s.name, err)
	}
	return nil
}
