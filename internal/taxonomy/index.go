package taxonomy

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"unipept/internal/errors"
	"unipept/internal/fileio"
)

const (
	// Ranks is the number of fixed taxonomic ranks in a lineage row.
	Ranks = 27
	// Genus and Species are the rank indices where 0 is never informative.
	Genus   = 18
	Species = 22
	// RootID is the universal root, the consensus when nothing is known.
	RootID int32 = 1

	// NullField is the dump's marker for "no value"; it maps to 0.
	NullField = `\N`

	fields  = Ranks + 1
	noSlot  = -1
	maxLine = 1 << 20
)

// Lineage is the ancestor id at each rank, 0 where the rank is undefined.
type Lineage []int32

// ParseError describes a malformed taxonomy dump row.
type ParseError struct {
	Line   int
	Column int // 0-based; -1 when the column count itself is wrong
	Value  string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Column < 0 {
		return fmt.Sprintf("taxonomy line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("taxonomy line %d, column %d: %s %q", e.Line, e.Column, e.Reason, e.Value)
}

// Is lets errors.Is(err, errors.ErrParse) match without wrapping.
func (e *ParseError) Is(target error) bool { return target == errors.ErrParse }

// Index maps taxon ids to lineages.
type Index struct {
	slots []int32 // taxon id -> row in arena, or noSlot
	arena []int32 // Ranks values per present taxon
}

// Builder accumulates lineage rows in any order.
type Builder struct {
	ix Index
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder { return &Builder{} }

// Add stores lineage for id. A later Add for the same id wins.
func (b *Builder) Add(id int32, lineage Lineage) error {
	if id < 0 {
		return errors.Newf("negative taxon id %d", id)
	}
	if len(lineage) != Ranks {
		return errors.Newf("taxon %d: lineage has %d ranks, want %d", id, len(lineage), Ranks)
	}
	if int(id) >= len(b.ix.slots) {
		grown := make([]int32, int(id)+1, max(int(id)+1, 2*len(b.ix.slots)))
		n := copy(grown, b.ix.slots)
		for i := n; i < len(grown); i++ {
			grown[i] = noSlot
		}
		b.ix.slots = grown
	}
	row := int32(len(b.ix.arena) / Ranks)
	b.ix.arena = append(b.ix.arena, lineage...)
	b.ix.slots[id] = row
	return nil
}

// Index freezes the builder. The Builder must not be used afterwards.
func (b *Builder) Index() *Index {
	ix := b.ix
	b.ix = Index{}
	return &ix
}

// Build reads a taxonomy dump: one row per taxon, 28 tab-separated fields
// (taxon id followed by the 27 rank ancestors), `\N` for missing values.
func Build(r io.Reader) (*Index, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLine)

	b := NewBuilder()
	lineage := make(Lineage, Ranks)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			continue
		}
		id, err := ParseRow(line, lineage)
		if err != nil {
			if pe, ok := err.(*ParseError); ok {
				pe.Line = ln
			}
			return nil, err
		}
		if id < 0 {
			return nil, &ParseError{Line: ln, Column: 0, Value: strconv.Itoa(int(id)), Reason: "negative taxon id"}
		}
		if err := b.Add(id, lineage); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read taxonomy")
	}
	return b.Index(), nil
}

// LoadIndex builds an Index from a (possibly compressed) file.
func LoadIndex(path string) (*Index, error) {
	rc, err := fileio.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	ix, err := Build(rc)
	if err != nil {
		return nil, errors.Wrapf(err, "load taxonomy %s", path)
	}
	return ix, nil
}

// ParseRow parses one dump row into dst (len Ranks) and returns the taxon id.
// Line numbers in the returned *ParseError are left at 0.
func ParseRow(line string, dst Lineage) (int32, error) {
	if n := strings.Count(line, "\t") + 1; n != fields {
		return 0, &ParseError{Column: -1, Reason: fmt.Sprintf("got %d fields, want %d", n, fields)}
	}
	rest := line
	var id int32
	for col := 0; col < fields; col++ {
		field := rest
		if i := strings.IndexByte(rest, '\t'); i >= 0 {
			field, rest = rest[:i], rest[i+1:]
		}
		v, err := parseField(field)
		if err != nil {
			return 0, &ParseError{Column: col, Value: field, Reason: "not an integer"}
		}
		if col == 0 {
			id = v
			continue
		}
		dst[col-1] = v
	}
	return id, nil
}

func parseField(s string) (int32, error) {
	if s == NullField {
		return 0, nil
	}
	v, err := strconv.ParseInt(s, 10, 32)
	return int32(v), err
}

// Lookup returns the lineage of id. Ids outside the table and ids never
// loaded both report false. The returned slice aliases the index and must
// not be modified.
func (ix *Index) Lookup(id int32) (Lineage, bool) {
	if id < 0 || int(id) >= len(ix.slots) {
		return nil, false
	}
	row := ix.slots[id]
	if row == noSlot {
		return nil, false
	}
	off := int(row) * Ranks
	return Lineage(ix.arena[off : off+Ranks : off+Ranks]), true
}

// Contains reports whether id has a lineage.
func (ix *Index) Contains(id int32) bool {
	_, ok := ix.Lookup(id)
	return ok
}

// Len is one past the highest taxon id loaded.
func (ix *Index) Len() int { return len(ix.slots) }

// Count is the number of distinct taxa with a lineage.
func (ix *Index) Count() int {
	n := 0
	for _, s := range ix.slots {
		if s != noSlot {
			n++
		}
	}
	return n
}
