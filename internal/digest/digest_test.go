package digest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrypsinCleavage(t *testing.T) {
	d := Trypsin{Min: 1}
	tests := map[string]struct {
		seq  string
		want []string
	}{
		"no sites":         {"ACDEF", []string{"ACDEF"}},
		"after K and R":    {"AAKBBRCC", []string{"AAK", "BBR", "CC"}},
		"proline blocks":   {"AAKPBBRCC", []string{"AAKPBBR", "CC"}},
		"terminal site":    {"AAKBBR", []string{"AAK", "BBR"}},
		"adjacent sites":   {"KRK", []string{"K", "R", "K"}},
		"terminal proline": {"AAKP", []string{"AAKP"}},
		"empty":            {"", nil},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, All(d, tc.seq))
		})
	}
}

func TestTrypsinLengthBounds(t *testing.T) {
	d := Trypsin{Min: 3, Max: 4}
	assert.Equal(t, []string{"AAK", "CCCR"}, All(d, "KAAKBBBBBRCCCRDD"))
}

func TestTrypsinDefaults(t *testing.T) {
	d := NewTrypsin()
	assert.Equal(t, []string{"MAGICK", "WPEPTIDE"}, All(d, "MAGICKWPEPTIDE"))
	assert.Empty(t, All(d, "ACK"))
	assert.Equal(t, []string{"MAGICKPEPTIDE"}, All(d, "MAGICKPEPTIDE"))
}

func TestTrypsinStopsEarly(t *testing.T) {
	n := 0
	for range (Trypsin{Min: 1}).Digest("AKBKCKDK") {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}
