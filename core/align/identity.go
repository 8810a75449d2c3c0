// core/align/identity.go
package align

// Identity returns the percentage of alignment columns whose characters
// match exactly. The denominator is the full alignment length, so gap
// columns count against identity.
func Identity(aln Alignment) float64 {
	if len(aln.A) == 0 {
		return 0
	}
	matches := 0
	for i := 0; i < len(aln.A); i++ {
		if aln.A[i] == aln.B[i] {
			matches++
		}
	}
	return 100 * float64(matches) / float64(len(aln.A))
}
