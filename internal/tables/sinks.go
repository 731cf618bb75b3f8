package tables

import (
	"io"

	"unipept/internal/errors"
	"unipept/internal/fileio"
	"unipept/internal/output"
)

// Sinks are the five table outputs. Writers that also implement io.Closer
// are closed by (*Writer).Close.
type Sinks struct {
	Entries  io.Writer
	Peptides io.Writer
	GO       io.Writer
	EC       io.Writer
	InterPro io.Writer
}

// Paths names the file of each table. Compression follows the suffix.
type Paths struct {
	Entries  string
	Peptides string
	GO       string
	EC       string
	InterPro string
}

func (p Paths) each() []struct{ table, path string } {
	return []struct{ table, path string }{
		{output.TableEntries, p.Entries},
		{output.TablePeptides, p.Peptides},
		{output.TableGO, p.GO},
		{output.TableEC, p.EC},
		{output.TableInterPro, p.InterPro},
	}
}

// Validate reports the first table without a path.
func (p Paths) Validate() error {
	for _, t := range p.each() {
		if t.path == "" {
			return errors.Mark(errors.Newf("no output path for table %s", t.table), errors.ErrConfig)
		}
	}
	return nil
}

// OpenSinks creates every table file. On failure the files opened so far are
// closed again.
func OpenSinks(p Paths) (Sinks, error) {
	if err := p.Validate(); err != nil {
		return Sinks{}, err
	}
	var (
		s      Sinks
		opened []io.WriteCloser
	)
	targets := []*io.Writer{&s.Entries, &s.Peptides, &s.GO, &s.EC, &s.InterPro}
	for i, t := range p.each() {
		w, err := fileio.Create(t.path)
		if err != nil {
			for _, c := range opened {
				_ = c.Close()
			}
			return Sinks{}, errors.Wrapf(err, "open %s table", t.table)
		}
		opened = append(opened, w)
		*targets[i] = w
	}
	return s, nil
}

func (s Sinks) list() []struct {
	table string
	w     io.Writer
} {
	return []struct {
		table string
		w     io.Writer
	}{
		{output.TableEntries, s.Entries},
		{output.TablePeptides, s.Peptides},
		{output.TableGO, s.GO},
		{output.TableEC, s.EC},
		{output.TableInterPro, s.InterPro},
	}
}

// close closes every sink that is an io.Closer and joins the errors.
func (s Sinks) close() error {
	var errs []error
	for _, t := range s.list() {
		if c, ok := t.w.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, errors.Wrapf(err, "close %s table", t.table))
			}
		}
	}
	return errors.Join(errs...)
}
