package lca

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"unipept/internal/errors"
	"unipept/internal/taxonomy"
)

// Separator splits sequence from taxon id on input and output lines.
const Separator = "\t"

const maxLine = 64 << 20

// Observation is one input row.
type Observation struct {
	Sequence string
	TaxonID  int32
}

// Result is the consensus for one sequence group.
type Result struct {
	Sequence string
	TaxonID  int32
}

// FormatError describes a malformed input line.
type FormatError struct {
	Line   int
	Text   string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// Is lets errors.Is(err, errors.ErrFormat) match.
func (e *FormatError) Is(target error) bool { return target == errors.ErrFormat }

// ParseObservation splits "sequence<TAB>taxon_id". Trailing whitespace after
// the id is tolerated. The returned error is a *FormatError without a line
// number.
func ParseObservation(line string) (Observation, error) {
	seq, id, ok := strings.Cut(line, Separator)
	if !ok {
		return Observation{}, &FormatError{Text: line, Reason: "missing tab separator"}
	}
	v, err := strconv.ParseInt(strings.TrimRight(id, " \t\r\n"), 10, 32)
	if err != nil {
		return Observation{}, &FormatError{Text: line, Reason: "taxon id is not an integer"}
	}
	return Observation{Sequence: seq, TaxonID: int32(v)}, nil
}

// Aggregator groups consecutive observations with equal sequences. It is not
// safe for concurrent use; the index it reads from is.
type Aggregator struct {
	ix      Lineages
	open    bool
	current string
	taxa    []int32
	scratch []taxonomy.Lineage
}

// NewAggregator returns an Aggregator reading lineages from ix.
func NewAggregator(ix Lineages) *Aggregator {
	return &Aggregator{ix: ix}
}

// Push adds an observation. When it starts a new group, the finished
// previous group is returned.
func (a *Aggregator) Push(o Observation) (Result, bool) {
	var (
		res  Result
		done bool
	)
	if a.open && o.Sequence != a.current {
		res, done = a.finish(), true
	}
	if !a.open {
		a.open = true
		a.current = o.Sequence
	}
	a.taxa = append(a.taxa, o.TaxonID)
	return res, done
}

// Flush finishes the pending group, if any.
func (a *Aggregator) Flush() (Result, bool) {
	if !a.open {
		return Result{}, false
	}
	return a.finish(), true
}

// Reset drops the pending group without emitting it.
func (a *Aggregator) Reset() {
	a.open = false
	a.current = ""
	a.taxa = a.taxa[:0]
}

func (a *Aggregator) finish() Result {
	a.scratch = resolve(a.ix, a.taxa, a.scratch[:0])
	res := Result{Sequence: a.current, TaxonID: consensus(a.scratch)}
	clear(a.scratch)
	a.Reset()
	return res
}

// Aggregate reads sorted "sequence<TAB>taxon_id" lines from r and calls emit
// once per sequence group, in input order. A malformed line stops the run
// with a *FormatError; the group it interrupted is not emitted. Groups
// emitted before the error stand.
func Aggregate(ctx context.Context, r io.Reader, ix Lineages, emit func(Result) error) error {
	return AggregateWithProgress(ctx, r, ix, emit, nil)
}

// AggregateWithProgress is Aggregate with a per-line callback receiving the
// running line count.
func AggregateWithProgress(ctx context.Context, r io.Reader, ix Lineages, emit func(Result) error, progress func(lines int)) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLine)

	agg := NewAggregator(ix)
	ln := 0
	for sc.Scan() {
		if ln&0xfff == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		ln++
		o, err := ParseObservation(sc.Text())
		if err != nil {
			if fe, ok := err.(*FormatError); ok {
				fe.Line = ln
			}
			agg.Reset()
			return err
		}
		if res, ok := agg.Push(o); ok {
			if err := emit(res); err != nil {
				return err
			}
		}
		if progress != nil {
			progress(ln)
		}
	}
	if err := sc.Err(); err != nil {
		return errors.Wrap(err, "read observations")
	}
	if res, ok := agg.Flush(); ok {
		return emit(res)
	}
	return nil
}
