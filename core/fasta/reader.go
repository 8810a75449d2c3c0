// core/fasta/reader.go
package fasta

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
)

// ScanCtx parses FASTA from r and calls emit for every sequence at least
// minLen long. A '>' line starts a new record and flushes the previous one
// through the length filter; every other line is appended to the current
// sequence after trimming surrounding whitespace. The final record is
// flushed at EOF. Sequences shorter than minLen are dropped silently.
//
// Cancellation via ctx is honored between lines.
func ScanCtx(ctx context.Context, r io.Reader, minLen int, emit func(seq []byte) error) error {
	sc := bufio.NewScanner(r)
	const maxLine = 64 * 1024 * 1024 // allow very long single-line sequences (64 MiB)
	sc.Buffer(make([]byte, 64*1024), maxLine)

	seq := make([]byte, 0, 1<<20)
	flush := func() error {
		if len(seq) < minLen {
			return nil
		}
		return emit(append([]byte(nil), seq...))
	}

	for sc.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if err := flush(); err != nil {
				return err
			}
			seq = seq[:0]
			continue
		}
		seq = append(seq, bytes.TrimSpace(line)...)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("fasta scan: %w", err)
	}
	return flush()
}

// ScanPathCtx opens path (plain, gzip, or "-" for stdin) and scans it with
// ScanCtx. Open and inflate errors propagate; there is no retry.
func ScanPathCtx(ctx context.Context, path string, minLen int, emit func(seq []byte) error) error {
	rc, err := openReader(path)
	if err != nil {
		return err
	}
	defer rc.Close()
	return ScanCtx(ctx, rc, minLen, emit)
}

// StreamCtx is the channel form of ScanPathCtx. Open errors for non-stdin
// paths are reported before the channel is handed out; scan-time errors end
// the stream early without being propagated, so callers that need them
// should use ScanPathCtx directly.
func StreamCtx(ctx context.Context, path string, minLen int) (<-chan []byte, error) {
	if path != "-" {
		rc, err := openReader(path)
		if err != nil {
			return nil, err
		}
		_ = rc.Close()
	}

	out := make(chan []byte, 8)
	go func() {
		defer close(out)
		_ = ScanPathCtx(ctx, path, minLen, func(seq []byte) error {
			select {
			case out <- seq:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}()
	return out, nil
}
