// core/align/nw.go
package align

import (
	"errors"
	"fmt"

	bio "github.com/biogo/biogo/align"
	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/seq/linear"
)

// Gap penalties for a whole run: GapOpen is charged once when a gap run
// starts, GapExtend for every gap column.
const (
	GapOpen   = -1
	GapExtend = -1
)

// Alignment is a pair of equal-length gapped strings.
type Alignment struct {
	A, B string
}

// Aligner produces a global, end-to-end alignment of two sequences.
// Implementations must return equal-length gapped strings.
type Aligner interface {
	Align(a, b string) (Alignment, error)
}

// NW aligns nucleotide sequences with the Needleman-Wunsch algorithm.
type NW struct {
	nw bio.NWAffine
}

// NewNW builds a global aligner scoring substitutions with m and gaps with
// the package penalties. biogo charges its GapOpen per gap run on top of
// the per-column matrix gap score, so GapOpen-GapExtend reproduces the
// open-then-extend model here (zero under the fixed -1/-1 penalties).
func NewNW(m *Matrix) *NW {
	const n = 5 // gap + ACGT, the alphabet.DNAgapped index order
	tbl := make(bio.Linear, n)
	for i := range tbl {
		tbl[i] = make([]int, n)
	}
	for k := 1; k < n; k++ {
		tbl[0][k] = GapExtend
		tbl[k][0] = GapExtend
	}
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			tbl[i+1][j+1] = m.scores[i][j]
		}
	}
	return &NW{nw: bio.NWAffine{Matrix: tbl, GapOpen: GapOpen - GapExtend}}
}

// Align globally aligns a against b, returning the two gapped strings.
// Sequences must be non-empty and stay within the A/C/G/T alphabet; any
// other letter is an error, there is no per-pair fallback.
func (w *NW) Align(a, b string) (Alignment, error) {
	if len(a) == 0 || len(b) == 0 {
		return Alignment{}, errors.New("align: empty sequence")
	}
	if err := checkDNA(a); err != nil {
		return Alignment{}, err
	}
	if err := checkDNA(b); err != nil {
		return Alignment{}, err
	}

	sa := &linear.Seq{Seq: alphabet.BytesToLetters([]byte(a))}
	sa.Alpha = alphabet.DNAgapped
	sb := &linear.Seq{Seq: alphabet.BytesToLetters([]byte(b))}
	sb.Alpha = alphabet.DNAgapped

	pairs, err := w.nw.Align(sa, sb)
	if err != nil {
		return Alignment{}, fmt.Errorf("align %d nt against %d nt: %w", len(a), len(b), err)
	}
	fa := bio.Format(sa, sb, pairs, '-')
	return Alignment{A: fmt.Sprint(fa[0]), B: fmt.Sprint(fa[1])}, nil
}

func checkDNA(s string) error {
	for i := 0; i < len(s); i++ {
		if _, ok := baseIndex(s[i]); !ok {
			return fmt.Errorf("align: unsupported base %q at position %d", s[i], i)
		}
	}
	return nil
}
