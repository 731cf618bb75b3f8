// Package output encodes the rows of the generated tables in the PostgreSQL
// COPY text format: tab-separated fields, one newline-terminated row per
// record, `\N` for NULL.
package output

// Table file basenames; the database tables carry the same names.
const (
	TableEntries  = "uniprot_entries"
	TablePeptides = "peptides"
	TableGO       = "go_cross_references"
	TableEC       = "ec_cross_references"
	TableInterPro = "interpro_cross_references"
)

// Tables lists the generated tables in load order.
var Tables = []string{TableEntries, TablePeptides, TableGO, TableEC, TableInterPro}

// Columns maps each table to its column names, in file order.
var Columns = map[string][]string{
	TableEntries:  {"id", "uniprot_accession_number", "version", "taxon_id", "type", "name", "protein"},
	TablePeptides: {"id", "sequence", "original_sequence", "uniprot_entry_id", "annotation_summary"},
	TableGO:       {"id", "uniprot_entry_id", "go_term_code"},
	TableEC:       {"id", "uniprot_entry_id", "ec_number_code"},
	TableInterPro: {"id", "uniprot_entry_id", "interpro_entry_code"},
}
