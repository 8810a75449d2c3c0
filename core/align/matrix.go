// core/align/matrix.go
package align

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strconv"
)

//go:embed MATCH
var defaultMatrix []byte

// Matrix holds nucleotide substitution scores over A, C, G, T.
// Rows and columns use that fixed order regardless of the order the
// source file listed its alphabet in.
type Matrix struct {
	scores [4][4]int
}

// baseIndex maps a nucleotide letter to its row/column, case-insensitive.
func baseIndex(b byte) (int, bool) {
	switch b {
	case 'A', 'a':
		return 0, true
	case 'C', 'c':
		return 1, true
	case 'G', 'g':
		return 2, true
	case 'T', 't':
		return 3, true
	}
	return 0, false
}

// Score returns the substitution score for a pair of bases. Unknown letters
// score zero; the aligner rejects them before lookup.
func (m *Matrix) Score(a, b byte) int {
	i, ok := baseIndex(a)
	if !ok {
		return 0
	}
	j, ok := baseIndex(b)
	if !ok {
		return 0
	}
	return m.scores[i][j]
}

// ParseMatrix reads an NCBI-style substitution matrix: '#' lines are
// comments, the first non-comment line lists the alphabet, and every
// following line scores one alphabet letter against all of them. The
// alphabet must cover exactly A, C, G and T (any order, any case).
func ParseMatrix(r io.Reader) (*Matrix, error) {
	sc := bufio.NewScanner(r)

	var (
		m       Matrix
		cols    []int // column -> canonical base index
		rowSeen [4]bool
		rows    int
	)
	for sc.Scan() {
		fields := bytes.Fields(sc.Bytes())
		if len(fields) == 0 || fields[0][0] == '#' {
			continue
		}
		if cols == nil {
			var colSeen [4]bool
			for _, f := range fields {
				if len(f) != 1 {
					return nil, fmt.Errorf("scoring matrix: bad alphabet entry %q", f)
				}
				idx, ok := baseIndex(f[0])
				if !ok {
					return nil, fmt.Errorf("scoring matrix: alphabet must be A, C, G and T, got %q", f)
				}
				if colSeen[idx] {
					return nil, fmt.Errorf("scoring matrix: duplicate letter %q", f)
				}
				colSeen[idx] = true
				cols = append(cols, idx)
			}
			if len(cols) != 4 {
				return nil, fmt.Errorf("scoring matrix: alphabet has %d letters, want 4", len(cols))
			}
			continue
		}

		if len(fields) != len(cols)+1 {
			return nil, fmt.Errorf("scoring matrix: row %q has %d scores, want %d", fields[0], len(fields)-1, len(cols))
		}
		if len(fields[0]) != 1 {
			return nil, fmt.Errorf("scoring matrix: bad row label %q", fields[0])
		}
		ri, ok := baseIndex(fields[0][0])
		if !ok {
			return nil, fmt.Errorf("scoring matrix: row label must be A, C, G or T, got %q", fields[0])
		}
		if rowSeen[ri] {
			return nil, fmt.Errorf("scoring matrix: duplicate row %q", fields[0])
		}
		rowSeen[ri] = true
		for k, f := range fields[1:] {
			v, err := strconv.Atoi(string(f))
			if err != nil {
				return nil, fmt.Errorf("scoring matrix: row %q: %w", fields[0], err)
			}
			m.scores[ri][cols[k]] = v
		}
		rows++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scoring matrix: %w", err)
	}
	if cols == nil {
		return nil, fmt.Errorf("scoring matrix: empty input")
	}
	if rows != 4 {
		return nil, fmt.Errorf("scoring matrix: %d score rows, want 4", rows)
	}
	return &m, nil
}

// LoadMatrix reads a substitution matrix file.
func LoadMatrix(path string) (*Matrix, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scoring matrix: %w", err)
	}
	defer fh.Close()
	m, err := ParseMatrix(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Default returns the built-in matrix shipped with the binary
// (match +1, mismatch -1).
func Default() *Matrix {
	m, err := ParseMatrix(bytes.NewReader(defaultMatrix))
	if err != nil {
		panic("align: embedded MATCH matrix: " + err.Error())
	}
	return m
}
