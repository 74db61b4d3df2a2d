package ioimport

import (
	"context"
	"log/slog"

	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/ipnidb/pkg/parserpool"
	"github.com/gnames/ipnidb/pkg/schema"
	"golang.org/x/sync/errgroup"
)

// enrichNames adds canonical forms, name-string UUIDs and parsing
// scores to names. Workers own disjoint slices of names, so no locking
// is needed.
func (i *importer) enrichNames(ctx context.Context, names []schema.Name) error {
	jobs := i.cfg.JobsNumber
	if jobs <= 0 {
		jobs = 1
	}
	pool := parserpool.NewPool(jobs, nomcode.Botanical)
	defer pool.Close()

	bar := i.newBar(len(names), "Parsing names: ")
	defer bar.Finish()

	g, ctx := errgroup.WithContext(ctx)
	chunk := (len(names) + jobs - 1) / jobs
	for lo := 0; lo < len(names); lo += chunk {
		hi := min(lo+chunk, len(names))
		g.Go(func() error {
			for k := lo; k < hi; k++ {
				if k%1000 == 0 && ctx.Err() != nil {
					return ctx.Err()
				}
				parserpool.Enrich(pool, &names[k])
				bar.Increment()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return CancelledError(err)
	}
	slog.Info("Parsed names", "count", len(names))
	return nil
}

// newBar returns a progress bar that prints only when the importer
// was created with WithProgressBar.
func (i *importer) newBar(total int, prefix string) *pb.ProgressBar {
	bar := pb.Full.New(total)
	bar.Set("prefix", prefix)
	bar.Set(pb.CleanOnFinish, true)
	if i.progress {
		bar.Start()
	}
	return bar
}
