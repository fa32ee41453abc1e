package lang

import (
	"context"
	"io"
	"log/slog"

	"github.com/klauspost/readahead"
)

// ReadSource reads the complete source text from r.
func ReadSource(ctx context.Context, r io.Reader, opts ...Option) (string, error) {
	o := makeOptions(opts...)

	// Wrap reader with async read-ahead so the next chunk is fetched while
	// the previous one is copied.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return "", ErrReadInput.Wrap(err)
	}

	o.logger.TraceContext(ctx, "read input",
		slog.Int("source_bytes", len(data)),
		slog.Bool("read_ahead", true),
	)

	return string(data), nil
}
