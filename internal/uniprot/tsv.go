package uniprot

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"unipept/internal/errors"
)

// Column headers of the UniProt TSV export.
const (
	ColEntry    = "Entry"
	ColSequence = "Sequence"
	ColName     = "Protein names"
	ColVersion  = "Version (entry)"
	ColEC       = "EC number"
	ColGO       = "Gene ontology IDs"
	ColInterPro = "Cross-reference (InterPro)"
	ColStatus   = "Status"
	ColOrganism = "Organism ID"
)

// Columns lists every header TSVReader requires, in export order.
var Columns = []string{
	ColEntry, ColSequence, ColName, ColVersion, ColEC, ColGO, ColInterPro, ColStatus, ColOrganism,
}

const maxLine = 256 << 20

// FormatError describes a malformed data row.
type FormatError struct {
	Line   int
	Column string
	Reason string
}

func (e *FormatError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("uniprot line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("uniprot line %d, column %q: %s", e.Line, e.Column, e.Reason)
}

// Is lets errors.Is(err, errors.ErrFormat) match.
func (e *FormatError) Is(target error) bool { return target == errors.ErrFormat }

// TSVReader parses entries from a UniProt TSV export with a header line.
// Columns are located by header name, so their order does not matter and
// extra columns are ignored.
type TSVReader struct {
	sc    *bufio.Scanner
	idx   [9]int
	width int
	line  int
}

// NewTSVReader reads the header from r. A missing required column is an
// error.
func NewTSVReader(r io.Reader) (*TSVReader, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLine)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, errors.Wrap(err, "read uniprot header")
		}
		return nil, errors.Mark(errors.New("uniprot input has no header line"), errors.ErrFormat)
	}

	header := make(map[string]int)
	for i, h := range strings.Split(strings.TrimRight(sc.Text(), "\r"), "\t") {
		header[strings.TrimSpace(h)] = i
	}

	tr := &TSVReader{sc: sc, line: 1}
	var missing []string
	for i, name := range Columns {
		pos, ok := header[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		tr.idx[i] = pos
		tr.width = max(tr.width, pos+1)
	}
	if len(missing) > 0 {
		err := errors.Newf("uniprot header lacks column(s) %s", strings.Join(missing, ", "))
		return nil, errors.WithHint(errors.Mark(err, errors.ErrFormat),
			"export with columns: "+strings.Join(Columns, ", "))
	}
	return tr, nil
}

// Line returns the number of the last line read, header included.
func (r *TSVReader) Line() int { return r.line }

// Next returns the next entry, or io.EOF after the last one. Blank lines are
// skipped.
func (r *TSVReader) Next() (Entry, error) {
	for r.sc.Scan() {
		r.line++
		text := strings.TrimRight(r.sc.Text(), "\r\n")
		if strings.TrimSpace(text) == "" {
			continue
		}
		return r.parse(text)
	}
	if err := r.sc.Err(); err != nil {
		return Entry{}, errors.Wrap(err, "read uniprot entries")
	}
	return Entry{}, io.EOF
}

func (r *TSVReader) parse(text string) (Entry, error) {
	f := strings.Split(text, "\t")
	if len(f) < r.width {
		return Entry{}, &FormatError{
			Line:   r.line,
			Reason: fmt.Sprintf("got %d fields, need at least %d", len(f), r.width),
		}
	}
	col := func(i int) string { return strings.TrimSpace(f[r.idx[i]]) }

	org := col(8)
	taxon, err := strconv.ParseInt(org, 10, 32)
	if err != nil {
		return Entry{}, &FormatError{Line: r.line, Column: ColOrganism, Reason: fmt.Sprintf("not an integer: %q", org)}
	}

	return Entry{
		AccessionNumber: col(0),
		Sequence:        col(1),
		Name:            col(2),
		Version:         col(3),
		ECRefs:          SplitRefs(col(4)),
		GORefs:          SplitRefs(col(5)),
		IPRefs:          SplitRefs(col(6)),
		Type:            col(7),
		TaxonID:         int32(taxon),
	}, nil
}

// SplitRefs splits a ';'-separated reference list, trimming each token and
// dropping empty ones.
func SplitRefs(s string) []string {
	var out []string
	for tok := range strings.SplitSeq(s, ";") {
		if tok = strings.TrimSpace(tok); tok != "" {
			out = append(out, tok)
		}
	}
	return out
}
