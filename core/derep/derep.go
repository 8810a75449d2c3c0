// core/derep/derep.go
package derep

import (
	"context"
	"sort"

	"agc-core/fasta"
)

// Candidate is a dereplicated amplicon: one exact sequence and the number
// of times it occurred in the input.
type Candidate struct {
	Seq   string
	Count int
}

// Stats summarizes one dereplication pass.
type Stats struct {
	Total      int // sequences read, after the length filter
	Unique     int // distinct sequences
	Candidates int // unique sequences with count >= minCount
}

// CountCtx reads the amplicon file at path and returns the candidates whose
// occurrence count is at least minCount, ordered by count descending. Equal
// counts keep first-seen input order, so the ranking is deterministic for a
// given input. The full count table is materialized in memory; there is no
// bounded-memory mode.
func CountCtx(ctx context.Context, path string, minLen, minCount int) ([]Candidate, Stats, error) {
	type entry struct {
		count int
		order int
	}

	var stats Stats
	counts := make(map[string]*entry)
	err := fasta.ScanPathCtx(ctx, path, minLen, func(seq []byte) error {
		stats.Total++
		s := string(seq)
		e, ok := counts[s]
		if !ok {
			e = &entry{order: len(counts)}
			counts[s] = e
		}
		e.count++
		return nil
	})
	if err != nil {
		return nil, stats, err
	}
	stats.Unique = len(counts)

	type ranked struct {
		Candidate
		order int
	}
	sel := make([]ranked, 0, len(counts))
	for s, e := range counts {
		if e.count < minCount {
			continue
		}
		sel = append(sel, ranked{Candidate{Seq: s, Count: e.count}, e.order})
	}
	sort.Slice(sel, func(i, j int) bool {
		if sel[i].Count != sel[j].Count {
			return sel[i].Count > sel[j].Count
		}
		return sel[i].order < sel[j].order
	})

	out := make([]Candidate, len(sel))
	for i, r := range sel {
		out[i] = r.Candidate
	}
	stats.Candidates = len(out)
	return out, stats, nil
}
