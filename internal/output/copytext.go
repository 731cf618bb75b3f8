package output

import (
	"strconv"
	"strings"
)

// Null is the COPY text NULL marker.
const Null = `\N`

var copyEscaper = strings.NewReplacer(
	`\`, `\\`,
	"\t", `\t`,
	"\n", `\n`,
	"\r", `\r`,
)

// needsEscape reports whether s contains a byte COPY text treats specially.
func needsEscape(s string) bool {
	return strings.ContainsAny(s, "\\\t\n\r")
}

// AppendField appends s escaped for COPY text.
func AppendField(dst []byte, s string) []byte {
	if !needsEscape(s) {
		return append(dst, s...)
	}
	return append(dst, copyEscaper.Replace(s)...)
}

// AppendNullable is AppendField, but writes Null for an empty s.
func AppendNullable(dst []byte, s string) []byte {
	if s == "" {
		return append(dst, Null...)
	}
	return AppendField(dst, s)
}

// EntryRow is one uniprot_entries row.
type EntryRow struct {
	ID              int64
	AccessionNumber string
	Version         string
	TaxonID         int32
	Type            string
	Name            string
	Sequence        string
}

// PeptideRow is one peptides row.
type PeptideRow struct {
	ID                 int64
	NormalizedSequence string
	OriginalSequence   string
	EntryID            int64
	AnnotationSummary  string
}

// RefRow is one row of a cross-reference table.
type RefRow struct {
	ID      int64
	EntryID int64
	Code    string
}

// AppendEntry appends r as a newline-terminated row.
func AppendEntry(dst []byte, r EntryRow) []byte {
	dst = strconv.AppendInt(dst, r.ID, 10)
	dst = append(dst, '\t')
	dst = AppendField(dst, r.AccessionNumber)
	dst = append(dst, '\t')
	dst = AppendNullable(dst, r.Version)
	dst = append(dst, '\t')
	dst = strconv.AppendInt(dst, int64(r.TaxonID), 10)
	dst = append(dst, '\t')
	dst = AppendField(dst, r.Type)
	dst = append(dst, '\t')
	dst = AppendNullable(dst, r.Name)
	dst = append(dst, '\t')
	dst = AppendField(dst, r.Sequence)
	return append(dst, '\n')
}

// AppendPeptide appends r as a newline-terminated row.
func AppendPeptide(dst []byte, r PeptideRow) []byte {
	dst = strconv.AppendInt(dst, r.ID, 10)
	dst = append(dst, '\t')
	dst = AppendField(dst, r.NormalizedSequence)
	dst = append(dst, '\t')
	dst = AppendField(dst, r.OriginalSequence)
	dst = append(dst, '\t')
	dst = strconv.AppendInt(dst, r.EntryID, 10)
	dst = append(dst, '\t')
	dst = AppendNullable(dst, r.AnnotationSummary)
	return append(dst, '\n')
}

// AppendRef appends r as a newline-terminated row. An empty code is written
// as an empty string, not NULL.
func AppendRef(dst []byte, r RefRow) []byte {
	dst = strconv.AppendInt(dst, r.ID, 10)
	dst = append(dst, '\t')
	dst = strconv.AppendInt(dst, r.EntryID, 10)
	dst = append(dst, '\t')
	dst = AppendField(dst, r.Code)
	return append(dst, '\n')
}

// AppendLCA appends a "sequence<TAB>taxon" line.
func AppendLCA(dst []byte, seq string, taxon int32) []byte {
	dst = append(dst, seq...)
	dst = append(dst, '\t')
	dst = strconv.AppendInt(dst, int64(taxon), 10)
	return append(dst, '\n')
}
