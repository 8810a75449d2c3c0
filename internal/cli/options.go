// internal/cli/options.go
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"agc/internal/version"
)

// Flag defaults for the public surface.
const (
	DefaultMinSeqLen = 400
	DefaultMinCount  = 10
	DefaultOutput    = "OTU.fasta"
	DefaultChunkSize = 100
	DefaultKmerSize  = 8
)

// Options holds the validated command line.
type Options struct {
	AmpliconFile string
	MinSeqLen    int
	MinCount     int
	Output       string
	MatrixFile   string
	ChunkSize    int
	KmerSize     int
	Quiet        bool
	Verbose      bool
}

// NewCommand returns the agc root command. run receives the validated
// options once the command executes; parse and validation failures never
// reach it.
func NewCommand(run func(opts Options) error) *cobra.Command {
	var opts Options
	cmd := &cobra.Command{
		Use:   "agc",
		Short: "cluster amplicon reads into abundance-ranked OTUs",
		Long: `agc dereplicates an amplicon FASTA file, orders the unique sequences by
abundance, and greedily clusters them into OTUs: a candidate joins the
first previously accepted representative it aligns to at 97% identity or
better, otherwise it becomes a representative itself. Output is one FASTA
record per OTU with its occurrence count.`,
		Version:       version.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := Validate(&opts); err != nil {
				return err
			}
			return run(opts)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&opts.AmpliconFile, "amplicon-file", "i", "", "amplicon FASTA file, gzip or plain (required)")
	fl.IntVarP(&opts.MinSeqLen, "minseqlen", "s", DefaultMinSeqLen, "minimum amplicon length")
	fl.IntVarP(&opts.MinCount, "mincount", "m", DefaultMinCount, "minimum occurrence count")
	fl.StringVarP(&opts.Output, "output", "o", DefaultOutput, `output FASTA path ("-" for stdout, .gz compresses)`)
	fl.StringVar(&opts.MatrixFile, "matrix", "", "substitution matrix file (default: built-in)")
	fl.IntVar(&opts.ChunkSize, "chunk-size", DefaultChunkSize, "reserved: chunk size for candidate pre-filtering")
	fl.IntVar(&opts.KmerSize, "kmer-size", DefaultKmerSize, "reserved: k-mer size for candidate pre-filtering")
	fl.BoolVarP(&opts.Quiet, "quiet", "q", false, "suppress progress bar and info logging")
	fl.BoolVar(&opts.Verbose, "verbose", false, "debug logging")
	fl.BoolP("version", "v", false, "print version and exit")
	_ = cmd.MarkFlagRequired("amplicon-file")

	return cmd
}

// Validate checks the parsed options. The input path is checked first, with
// distinct messages for a missing file and a directory so pipeline failures
// stay diagnosable from the error text alone.
func Validate(opts *Options) error {
	fi, err := os.Stat(opts.AmpliconFile)
	switch {
	case os.IsNotExist(err):
		return fmt.Errorf("%s does not exist", opts.AmpliconFile)
	case err != nil:
		return err
	case fi.IsDir():
		return fmt.Errorf("%s is a directory", opts.AmpliconFile)
	}
	if opts.MinSeqLen <= 0 {
		return errors.New("--minseqlen must be > 0")
	}
	if opts.MinCount <= 0 {
		return errors.New("--mincount must be > 0")
	}
	if opts.ChunkSize <= 0 {
		return errors.New("--chunk-size must be > 0")
	}
	if opts.KmerSize <= 0 {
		return errors.New("--kmer-size must be > 0")
	}
	if opts.Output == "" {
		return errors.New("--output must not be empty")
	}
	return nil
}
