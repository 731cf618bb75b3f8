package runutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestValidatePeptideBounds(t *testing.T) {
	lo, hi, w, err := ValidatePeptideBounds(5, 50)
	require.NoError(t, err)
	assert.Equal(t, 5, lo)
	assert.Equal(t, 50, hi)
	assert.Empty(t, w)

	lo, _, w, err = ValidatePeptideBounds(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, lo)
	assert.Equal(t, []string{"--peptide-min 0 raised to 1"}, w)

	_, _, _, err = ValidatePeptideBounds(10, 5)
	assert.Error(t, err)
	_, _, _, err = ValidatePeptideBounds(1, -1)
	assert.Error(t, err)
}

func TestProgressEveryN(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	p := NewProgress(zap.New(core).Sugar(), "lines read", 3)
	for i := 1; i <= 7; i++ {
		p.Tick(i)
	}
	p.Done(7)

	var counts []any
	for _, e := range logs.All() {
		counts = append(counts, e.ContextMap()["count"])
	}
	// Ticks 1, 4 and 7, then the final line.
	assert.Equal(t, []any{int64(1), int64(4), int64(7), int64(7)}, counts)
}

func TestProgressDisabled(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	p := NewProgress(zap.New(core).Sugar(), "lines read", 0)
	for i := 1; i <= 5; i++ {
		p.Tick(i)
	}
	assert.Zero(t, logs.Len())
}
