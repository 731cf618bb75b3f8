// Package lca computes the taxonomic consensus (lowest common ancestor) of
// every group of identical consecutive sequences in a sorted stream of
// sequence/taxon observations.
package lca

import "unipept/internal/taxonomy"

// Lineages resolves taxon ids; *taxonomy.Index satisfies it.
type Lineages interface {
	Lookup(id int32) (taxonomy.Lineage, bool)
}

// undecided marks a rank where no informative value has been seen yet. It is
// never stored in a lineage.
const undecided int32 = -1

// informative reports whether v at rank takes part in the vote. At genus and
// species a 0 means "absent" and is ignored; at every other rank 0 is a
// legitimate value that must agree like any other.
func informative(rank int, v int32) bool {
	if rank == taxonomy.Genus || rank == taxonomy.Species {
		return v > 0
	}
	return v >= 0
}

// Consensus returns the deepest taxon shared by the lineages of taxa.
// Unknown taxa are ignored; with no known taxa the result is the root.
func Consensus(ix Lineages, taxa []int32) int32 {
	return consensus(resolve(ix, taxa, nil))
}

// resolve appends the known lineages of taxa to buf.
func resolve(ix Lineages, taxa []int32, buf []taxonomy.Lineage) []taxonomy.Lineage {
	for _, id := range taxa {
		if l, ok := ix.Lookup(id); ok {
			buf = append(buf, l)
		}
	}
	return buf
}

func consensus(lineages []taxonomy.Lineage) int32 {
	lca := taxonomy.RootID

	// Walk the ranks from the top down. Each rank is a vote among the
	// informative values of all lineages:
	//   - no informative value: nothing to learn, move on to the next rank;
	//   - all informative values equal: the value is agreed, and becomes the
	//     new answer unless it is 0 (a 0 never overwrites an earlier answer,
	//     and it does not stop the walk either);
	//   - two informative values differ: the lineages have split, so the
	//     answer found at the ranks above is final.
	for rank := 0; rank < taxonomy.Ranks; rank++ {
		value := undecided
		agree := true
		for _, l := range lineages {
			v := l[rank]
			if !informative(rank, v) {
				continue
			}
			if value == undecided {
				value = v
				continue
			}
			if v != value {
				agree = false
				break
			}
		}

		if value == undecided {
			continue
		}
		if !agree {
			break
		}
		if value != 0 {
			lca = value
		}
	}
	return lca
}
