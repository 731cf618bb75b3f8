// Package uniprot reads UniProtKB entries from tab-separated exports.
package uniprot

// Entry is one UniProtKB record as the table writer consumes it.
type Entry struct {
	AccessionNumber string
	Version         string
	TaxonID         int32
	// Type is the review status, e.g. "swissprot" or "trembl".
	Type     string
	Name     string
	Sequence string

	GORefs []string
	ECRefs []string
	IPRefs []string
}
