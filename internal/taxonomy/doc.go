// Package taxonomy holds the lineage table used for LCA computation and the
// taxon validity table used when building the UniProt tables.
//
// Index is a dense, arena-style container keyed by taxon id. Lookup is a
// slot read followed by a slice of the packed arena, so it is O(1) with no
// hashing. The price is one int32 slot per id up to the highest id seen,
// whether or not that id exists; present taxa cost a further 27 int32
// values in the arena. NCBI taxon ids are small and mostly contiguous, so
// the slot table stays in the tens of megabytes.
//
// An Index is built once and then only read; it is safe to share between
// goroutines without locking after Build returns.
package taxonomy
