// Package digest splits protein sequences into peptides.
package digest

import "iter"

// Digester yields the peptides of a protein sequence.
type Digester interface {
	Digest(seq string) iter.Seq[string]
}

// Trypsin cleaves after every K or R that is not followed by P. Peptides
// shorter than Min or longer than Max are dropped; Max <= 0 means no upper
// bound.
type Trypsin struct {
	Min int
	Max int
}

// Default peptide length bounds.
const (
	DefaultMin = 5
	DefaultMax = 50
)

// NewTrypsin returns a Trypsin digester with the default length bounds.
func NewTrypsin() Trypsin { return Trypsin{Min: DefaultMin, Max: DefaultMax} }

func (t Trypsin) keep(p string) bool {
	return len(p) >= t.Min && (t.Max <= 0 || len(p) <= t.Max)
}

// Digest returns the peptides of seq in sequence order. The yielded strings
// share memory with seq.
func (t Trypsin) Digest(seq string) iter.Seq[string] {
	return func(yield func(string) bool) {
		start := 0
		for i := 0; i < len(seq); i++ {
			c := seq[i]
			if c != 'K' && c != 'R' {
				continue
			}
			if i+1 < len(seq) && seq[i+1] == 'P' {
				continue
			}
			if p := seq[start : i+1]; t.keep(p) && !yield(p) {
				return
			}
			start = i + 1
		}
		if start < len(seq) {
			if p := seq[start:]; t.keep(p) {
				yield(p)
			}
		}
	}
}

// All collects the peptides of seq.
func All(d Digester, seq string) []string {
	var out []string
	for p := range d.Digest(seq) {
		out = append(out, p)
	}
	return out
}
