package taxonomy

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"

	"unipept/internal/errors"
	"unipept/internal/fileio"
)

// Validator answers whether a taxon id may be referenced by a UniProt entry.
// Len bounds the id space: ids outside [0, Len()) are never valid.
type Validator interface {
	Len() int
	Contains(id int32) bool
}

var (
	_ Validator = (*Index)(nil)
	_ Validator = (*TaxonList)(nil)
)

// TaxonList is the set of known taxon ids read from the taxons table.
type TaxonList struct {
	ids  *roaring.Bitmap
	size int
}

// NewTaxonList returns a list holding ids.
func NewTaxonList(ids ...int32) *TaxonList {
	tl := &TaxonList{ids: roaring.New()}
	for _, id := range ids {
		tl.add(id)
	}
	return tl
}

func (tl *TaxonList) add(id int32) {
	tl.ids.Add(uint32(id))
	if int(id) >= tl.size {
		tl.size = int(id) + 1
	}
}

// ReadTaxonList reads a tab-separated taxons table. Only the first column,
// the taxon id, is used.
func ReadTaxonList(r io.Reader) (*TaxonList, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLine)

	tl := NewTaxonList()
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			continue
		}
		field, _, _ := strings.Cut(line, "\t")
		v, err := strconv.ParseInt(field, 10, 32)
		if err != nil || v < 0 {
			return nil, &ParseError{Line: ln, Column: 0, Value: field, Reason: "not a taxon id"}
		}
		tl.add(int32(v))
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read taxons")
	}
	return tl, nil
}

// LoadTaxonList reads a (possibly compressed) taxons file.
func LoadTaxonList(path string) (*TaxonList, error) {
	rc, err := fileio.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	tl, err := ReadTaxonList(rc)
	if err != nil {
		return nil, errors.Wrapf(err, "load taxons %s", path)
	}
	return tl, nil
}

// Len is one past the highest known id.
func (tl *TaxonList) Len() int { return tl.size }

// Contains reports whether id is a known taxon.
func (tl *TaxonList) Contains(id int32) bool {
	return id >= 0 && tl.ids.Contains(uint32(id))
}

// Count is the number of known taxa.
func (tl *TaxonList) Count() int { return int(tl.ids.GetCardinality()) }
