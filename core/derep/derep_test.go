package derep

import (
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeFastaGz builds a gzipped FASTA file with each sequence repeated the
// given number of times, records interleaved in the order passed.
func writeFastaGz(t *testing.T, seqs []string, reps []int) string {
	t.Helper()
	var sb strings.Builder
	remaining := append([]int(nil), reps...)
	for left := true; left; {
		left = false
		for i, seq := range seqs {
			if remaining[i] == 0 {
				continue
			}
			remaining[i]--
			sb.WriteString(">r\n")
			sb.WriteString(seq)
			sb.WriteString("\n")
			if remaining[i] > 0 {
				left = true
			}
		}
	}

	path := filepath.Join(t.TempDir(), "reads.fasta.gz")
	fh, err := os.Create(path)
	if err != nil {
		t.Fatalf("tmp: %v", err)
	}
	gw := gzip.NewWriter(fh)
	if _, err := gw.Write([]byte(sb.String())); err != nil {
		t.Fatalf("write gz: %v", err)
	}
	if err := gw.Close(); err != nil {
		t.Fatalf("close gzip: %v", err)
	}
	if err := fh.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}
	return path
}

func TestCountOrdersByAbundance(t *testing.T) {
	path := writeFastaGz(t,
		[]string{"AAAAAAAA", "CCCCCCCC", "GGGGGGGG"},
		[]int{3, 7, 5},
	)

	cands, stats, err := CountCtx(context.Background(), path, 8, 1)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if stats.Total != 15 || stats.Unique != 3 || stats.Candidates != 3 {
		t.Fatalf("stats = %+v", stats)
	}
	wantCounts := []int{7, 5, 3}
	for i, w := range wantCounts {
		if cands[i].Count != w {
			t.Errorf("candidate[%d].Count = %d, want %d", i, cands[i].Count, w)
		}
	}
	if cands[0].Seq != "CCCCCCCC" || cands[1].Seq != "GGGGGGGG" || cands[2].Seq != "AAAAAAAA" {
		t.Fatalf("candidate order wrong: %+v", cands)
	}
}

func TestCountTieOrder(t *testing.T) {
	// Equal counts must keep first-seen input order.
	path := writeFastaGz(t,
		[]string{"TTTTTTTT", "AAAAAAAA", "GGGGGGGG"},
		[]int{4, 4, 4},
	)

	cands, _, err := CountCtx(context.Background(), path, 8, 1)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	want := []string{"TTTTTTTT", "AAAAAAAA", "GGGGGGGG"}
	if len(cands) != len(want) {
		t.Fatalf("candidates = %+v", cands)
	}
	for i, w := range want {
		if cands[i].Seq != w {
			t.Errorf("candidate[%d].Seq = %q, want %q", i, cands[i].Seq, w)
		}
	}
}

func TestCountMinCountFilter(t *testing.T) {
	path := writeFastaGz(t,
		[]string{"AAAAAAAA", "CCCCCCCC"},
		[]int{10, 9},
	)

	cands, stats, err := CountCtx(context.Background(), path, 8, 10)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if len(cands) != 1 || cands[0].Seq != "AAAAAAAA" || cands[0].Count != 10 {
		t.Fatalf("candidates = %+v, want only the count-10 sequence", cands)
	}
	if stats.Unique != 2 || stats.Candidates != 1 {
		t.Fatalf("stats = %+v", stats)
	}
	for _, c := range cands {
		if c.Count < 10 {
			t.Errorf("candidate below mincount survived: %+v", c)
		}
	}
}

func TestCountMinLenFilter(t *testing.T) {
	// A short sequence never becomes a candidate, however abundant.
	path := writeFastaGz(t,
		[]string{"ACGT", "ACGTACGTACGT"},
		[]int{50, 2},
	)

	cands, stats, err := CountCtx(context.Background(), path, 10, 1)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if len(cands) != 1 || cands[0].Seq != "ACGTACGTACGT" {
		t.Fatalf("candidates = %+v, want only the long sequence", cands)
	}
	if stats.Total != 2 {
		t.Fatalf("stats.Total = %d, want 2 (short reads never counted)", stats.Total)
	}
}

func TestCountEmptyInput(t *testing.T) {
	path := writeFastaGz(t, nil, nil)

	cands, stats, err := CountCtx(context.Background(), path, 400, 10)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if len(cands) != 0 || stats.Total != 0 {
		t.Fatalf("empty input produced candidates: %+v %+v", cands, stats)
	}
}

func TestCountMissingFile(t *testing.T) {
	_, _, err := CountCtx(context.Background(), filepath.Join(t.TempDir(), "gone.fa.gz"), 1, 1)
	if err == nil {
		t.Fatal("expected error for missing input")
	}
}

func TestCountNonIncreasing(t *testing.T) {
	path := writeFastaGz(t,
		[]string{"AAAATTTT", "CCCCTTTT", "GGGGTTTT", "TTTTTTTT"},
		[]int{2, 8, 5, 8},
	)

	cands, _, err := CountCtx(context.Background(), path, 8, 2)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	for i := 1; i < len(cands); i++ {
		if cands[i].Count > cands[i-1].Count {
			t.Fatalf("counts not non-increasing at %d: %+v", i, cands)
		}
	}
}
