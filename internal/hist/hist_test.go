package hist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpectrum_FillAndSave(t *testing.T) {
	s := NewSpectrum("Jpsi", 50)
	for _, m := range []float64{3.05, 3.09, 3.10, 3.12, 3.30} {
		s.Fill(m)
	}
	require.Equal(t, 5, s.Entries())

	path := filepath.Join(t.TempDir(), "Jpsi.png")
	require.NoError(t, s.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestSpectrum_DegenerateRange(t *testing.T) {
	s := NewSpectrum("flat", 10)
	s.Fill(3.0)
	s.Fill(3.0)

	path := filepath.Join(t.TempDir(), "flat.png")
	require.NoError(t, s.Save(path), "identical masses must still plot")
}

func TestSpectrum_EmptySaveFails(t *testing.T) {
	s := NewSpectrum("empty", 10)
	err := s.Save(filepath.Join(t.TempDir(), "empty.png"))
	require.Error(t, err)
}

func TestNewSpectrum_BinFallback(t *testing.T) {
	s := NewSpectrum("x", 0)
	assert.Equal(t, DefaultBins, s.bins)
}
