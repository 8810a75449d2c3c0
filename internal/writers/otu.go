// internal/writers/otu.go
package writers

import (
	"fmt"
	"io"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"agc-core/cluster"
)

// WrapWidth is the column width OTU sequences are wrapped at.
const WrapWidth = 80

// WriteOTUs writes the OTU list as FASTA. Headers carry the 1-based list
// index and the founding count (">OTU_3 occurrence:42"); sequences wrap at
// WrapWidth columns. An empty list writes nothing and is not an error.
func WriteOTUs(w io.Writer, otus []cluster.OTU) error {
	fw := fasta.NewWriter(w, WrapWidth)
	for i, o := range otus {
		s := linear.NewSeq(fmt.Sprintf("OTU_%d", i+1), alphabet.BytesToLetters([]byte(o.Seq)), alphabet.DNA)
		s.Desc = fmt.Sprintf("occurrence:%d", o.Count)
		if _, err := fw.Write(s); err != nil {
			return fmt.Errorf("write OTU_%d: %w", i+1, err)
		}
	}
	return nil
}
