// internal/app/app.go
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/cheggaaa/pb/v3"
	"github.com/shenwei356/xopen"

	"agc-core/align"
	"agc-core/cluster"
	"agc-core/derep"
	"agc/internal/cli"
	"agc/internal/writers"
)

// RunContext parses argv, runs the clustering pipeline, and returns the
// process exit code: 0 on success (including a broken pipe downstream),
// 2 on usage or validation errors, 1 on runtime failures.
func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	runtimeErr := false
	cmd := cli.NewCommand(func(opts cli.Options) error {
		if err := run(ctx, opts, stdout, stderr); err != nil {
			runtimeErr = true
			return err
		}
		return nil
	})
	cmd.SetArgs(argv)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "agc: %v\n", err)
		if runtimeErr {
			return 1
		}
		fmt.Fprintln(stderr, "run 'agc --help' for usage")
		return 2
	}
	return 0
}

// Run is RunContext with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func run(ctx context.Context, opts cli.Options, stdout, stderr io.Writer) error {
	logger := log.New(stderr)
	switch {
	case opts.Quiet:
		logger.SetLevel(log.WarnLevel)
	case opts.Verbose:
		logger.SetLevel(log.DebugLevel)
	}

	matrix := align.Default()
	if opts.MatrixFile != "" {
		m, err := align.LoadMatrix(opts.MatrixFile)
		if err != nil {
			return err
		}
		matrix = m
		logger.Debug("scoring matrix loaded", "path", opts.MatrixFile)
	}

	cands, stats, err := derep.CountCtx(ctx, opts.AmpliconFile, opts.MinSeqLen, opts.MinCount)
	if err != nil {
		return fmt.Errorf("dereplicate %s: %w", opts.AmpliconFile, err)
	}
	logger.Info("dereplicated",
		"sequences", stats.Total,
		"unique", stats.Unique,
		"candidates", stats.Candidates,
		"minseqlen", opts.MinSeqLen,
		"mincount", opts.MinCount,
	)

	var bar *pb.ProgressBar
	if !opts.Quiet && len(cands) > 0 {
		bar = pb.Full.Start64(int64(len(cands)))
		bar.SetWriter(stderr)
	}
	cl := cluster.New(align.NewNW(matrix), cluster.Config{
		ChunkSize: opts.ChunkSize,
		KmerSize:  opts.KmerSize,
	})
	otus, err := cl.Run(cands, func(derep.Candidate, cluster.OTU, bool) error {
		if bar != nil {
			bar.Increment()
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			return nil
		}
	})
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return err
	}
	logger.Info("clustered", "otus", len(otus))

	if opts.Output == "-" {
		if err := writers.WriteOTUs(stdout, otus); err != nil {
			if writers.IsBrokenPipe(err) {
				return nil
			}
			return err
		}
	} else {
		fh, err := xopen.Wopen(opts.Output)
		if err != nil {
			return fmt.Errorf("create %s: %w", opts.Output, err)
		}
		if err := writers.WriteOTUs(fh, otus); err != nil {
			_ = fh.Close()
			return err
		}
		if err := fh.Close(); err != nil {
			return fmt.Errorf("close %s: %w", opts.Output, err)
		}
	}
	logger.Info("clustering done", "otus", len(otus), "output", opts.Output)
	return nil
}
