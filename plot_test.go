package piecewise

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWritePlot(t *testing.T) {
	p, err := New(math.Sin, 8, Interval{Lo: 0, Hi: 1})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "approx.png")
	require.NoError(t, p.WritePlot(path))

	fi, err := os.Stat(path)
	require.NoError(t, err)
	require.NotZero(t, fi.Size())
}
