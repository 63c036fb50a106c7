package insertset

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"
)

type options struct {
	logger      *Logger
	concurrency int
}

// Option configures ApplyEach behavior.
type Option func(*options)

// WithLogger sets the logger used for per-job debug output.
//
// If nil is passed, logging stays disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithConcurrency bounds the number of jobs applied in parallel.
// Defaults to GOMAXPROCS. Values below 1 are ignored.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.concurrency = n
		}
	}
}

// ApplyJob pairs an InsertionSet with the slice it applies to.
type ApplyJob[T any] struct {
	Set    *InsertionSet[T]
	Target []T
	// Result holds the merged slice after a successful ApplyEach.
	Result []T
}

// ApplyEach applies each job's insertion set to its target, running
// independent jobs concurrently. Each individual apply remains a
// single-threaded single pass; only distinct targets run in parallel,
// so the jobs must not share backing storage.
//
// The first job error cancels the remaining jobs via the group context;
// jobs that already started still run to completion. On error, only the
// Result fields of jobs that finished successfully are set.
func ApplyEach[T any](ctx context.Context, jobs []*ApplyJob[T], optFns ...Option) error {
	opts := options{
		logger:      NoopLogger(),
		concurrency: runtime.GOMAXPROCS(0),
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.concurrency)

	for i, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			merged, err := job.Set.Apply(job.Target)
			if err != nil {
				return fmt.Errorf("apply job %d: %w", i, err)
			}
			job.Result = merged
			opts.logger.DebugContext(ctx, "applied insertion set",
				slog.Int("job", i),
				slog.Int("merged_len", len(merged)),
			)
			return nil
		})
	}

	return g.Wait()
}
