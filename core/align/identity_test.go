package align

import "testing"

func TestIdentity(t *testing.T) {
	cases := []struct {
		name string
		aln  Alignment
		want float64
	}{
		{"identical", Alignment{"ACGT", "ACGT"}, 100},
		{"all different", Alignment{"AAAA", "TTTT"}, 0},
		{"one mismatch", Alignment{"ACGT", "ACCT"}, 75},
		{"gap counts as mismatch", Alignment{"AC-T", "ACGT"}, 75},
		{"denominator includes gaps", Alignment{"ACGT-", "ACGTA"}, 80},
		{"empty", Alignment{"", ""}, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Identity(c.aln); got != c.want {
				t.Fatalf("Identity(%q,%q) = %v, want %v", c.aln.A, c.aln.B, got, c.want)
			}
		})
	}
}

func TestIdentityCountsColumnsNotBases(t *testing.T) {
	// 10 columns, 2 of them gapped: 8 matches over 10 columns, not 8 over 8.
	aln := Alignment{
		A: "ACGTACGT--",
		B: "ACGTACGTTT",
	}
	if got := Identity(aln); got != 80 {
		t.Fatalf("Identity = %v, want 80", got)
	}
}
