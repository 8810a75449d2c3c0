// core/cluster/cluster.go
package cluster

import (
	"fmt"

	"agc-core/align"
	"agc-core/derep"
)

// DefaultThreshold is the identity percentage at or above which a candidate
// is absorbed by an existing OTU.
const DefaultThreshold = 97.0

// OTU is a cluster representative. Count is the founding candidate's count;
// absorbing a later candidate does not add to it.
type OTU struct {
	Seq   string
	Count int
}

// Config tunes a Clusterer.
type Config struct {
	// Threshold is the absorption identity percentage. Zero means
	// DefaultThreshold.
	Threshold float64
	// ChunkSize and KmerSize are reserved for chunked k-mer candidate
	// pre-filtering. The full-length greedy pass accepts and ignores them.
	ChunkSize int
	KmerSize  int
}

// Clusterer assigns abundance-ordered candidates to OTUs greedily: the
// first existing representative aligning at or above the threshold absorbs
// the candidate, otherwise the candidate founds the next OTU. The OTU list
// only ever grows at the tail, so OTU zero is the most abundant founder.
type Clusterer struct {
	al   align.Aligner
	cfg  Config
	otus []OTU
}

// New returns a Clusterer using al for pairwise comparisons.
func New(al align.Aligner, cfg Config) *Clusterer {
	if cfg.Threshold == 0 {
		cfg.Threshold = DefaultThreshold
	}
	return &Clusterer{al: al, cfg: cfg}
}

// Offer presents one candidate. It returns the representative that owns the
// candidate afterwards and whether the candidate founded it. Existing OTUs
// are scanned in insertion order and the first match wins; scanning stops
// there, no better match is looked for. Candidates must arrive in
// non-increasing count order for the greedy policy to be meaningful; Offer
// does not reorder.
func (c *Clusterer) Offer(seq string, count int) (OTU, bool, error) {
	for _, o := range c.otus {
		aln, err := c.al.Align(seq, o.Seq)
		if err != nil {
			return OTU{}, false, fmt.Errorf("cluster: %w", err)
		}
		if align.Identity(aln) >= c.cfg.Threshold {
			return o, false, nil
		}
	}
	o := OTU{Seq: seq, Count: count}
	c.otus = append(c.otus, o)
	return o, true, nil
}

// OTUs returns the representatives in creation order. The slice is the
// clusterer's own backing store; callers must not modify it.
func (c *Clusterer) OTUs() []OTU {
	return c.otus
}

// Run drives a whole candidate stream through Offer. For every candidate,
// visit (when non-nil) receives the owning OTU and whether the candidate
// founded it; the first error from an alignment or from visit aborts the
// run. The final OTU list is returned.
func (c *Clusterer) Run(cands []derep.Candidate, visit func(cand derep.Candidate, owner OTU, founded bool) error) ([]OTU, error) {
	for _, cand := range cands {
		o, founded, err := c.Offer(cand.Seq, cand.Count)
		if err != nil {
			return nil, err
		}
		if visit != nil {
			if err := visit(cand, o, founded); err != nil {
				return nil, err
			}
		}
	}
	return c.otus, nil
}
