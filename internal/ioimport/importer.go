// Package ioimport implements the Importer interface. It reads IPNI
// TSV files, enriches names with parsed canonical forms and writes all
// tables in one transaction.
package ioimport

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
	"github.com/gnames/ipnidb/internal/iodb"
	"github.com/gnames/ipnidb/internal/iofetch"
	"github.com/gnames/ipnidb/internal/iometrics"
	"github.com/gnames/ipnidb/internal/ioschema"
	"github.com/gnames/ipnidb/pkg/config"
	"github.com/gnames/ipnidb/pkg/db"
	"github.com/gnames/ipnidb/pkg/lifecycle"
	"github.com/gnames/ipnidb/pkg/schema"
)

type importer struct {
	cfg      *config.Config
	operator db.Operator
	progress bool
}

// Option modifies the importer.
type Option func(*importer)

// WithProgressBar shows progress bars on the terminal. The web server
// imports without them.
func WithProgressBar() Option {
	return func(i *importer) {
		i.progress = true
	}
}

// New creates a new Importer.
func New(cfg *config.Config, op db.Operator, opts ...Option) lifecycle.Importer {
	res := &importer{cfg: cfg, operator: op}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Import runs the whole import. Files are downloaded when
// Import.DataDir is empty.
func (i *importer) Import(ctx context.Context) (*lifecycle.ImportReport, error) {
	if i.operator.GORM() == nil {
		return nil, iodb.NotConnectedError()
	}

	start := time.Now()
	slog.Info("Starting IPNI import", "driver", i.operator.Driver())

	rep, err := i.run(ctx)
	iometrics.ImportDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		iometrics.ImportRuns.WithLabelValues("error").Inc()
		slog.Error("Import failed", "error", err)
		return nil, err
	}
	iometrics.ImportRuns.WithLabelValues("success").Inc()
	for _, v := range rep.Tables {
		iometrics.ImportedRows.WithLabelValues(v.Table).Add(float64(v.Rows))
	}

	rep.Duration = time.Since(start)
	slog.Info("Import complete",
		"names", humanize.Comma(rep.Rows(schema.NameTable)),
		"skipped_relations", rep.SkippedRelations,
		"duration", gnfmt.TimeString(rep.Duration.Seconds()),
	)
	return rep, nil
}

func (i *importer) run(ctx context.Context) (*lifecycle.ImportReport, error) {
	dir, cleanup, err := i.dataDir(ctx)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	slog.Info("Step 1/4: Reading IPNI files", "dir", dir)
	ds, err := loadDataset(dir)
	if err != nil {
		return nil, err
	}

	slog.Info("Step 2/4: Parsing names", "count", len(ds.names))
	if err = i.enrichNames(ctx, ds.names); err != nil {
		return nil, err
	}

	slog.Info("Step 3/4: Checking schema")
	if err = i.ensureSchema(ctx); err != nil {
		return nil, err
	}

	slog.Info("Step 4/4: Writing tables", "replace", i.cfg.Import.Replace)
	tables, err := i.insert(ctx, ds)
	if err != nil {
		return nil, err
	}

	return &lifecycle.ImportReport{
		Tables:               tables,
		SkippedRelations:     ds.skippedRelations,
		UnknownRelationTypes: ds.unknownRelationTypes,
		UnknownTypeStatuses:  ds.unknownTypeStatuses,
	}, nil
}

// dataDir returns the directory with TSV files and a function that
// removes downloaded files when they are not needed anymore.
func (i *importer) dataDir(ctx context.Context) (string, func(), error) {
	if dir := i.cfg.Import.DataDir; dir != "" {
		return dir, func() {}, nil
	}

	f := iofetch.New(i.cfg, i.progress)
	dir, err := f.Fetch(ctx)
	if err != nil {
		return "", nil, err
	}
	cleanup := func() {
		if i.cfg.Import.KeepFiles {
			return
		}
		if err := f.Cleanup(); err != nil {
			slog.Warn("Cannot remove unzipped files", "error", err)
		}
	}
	return dir, cleanup, nil
}

// ensureSchema creates tables on an empty database and migrates them
// otherwise.
func (i *importer) ensureSchema(ctx context.Context) error {
	sm := ioschema.NewManager(i.operator)
	ok, err := i.operator.HasTables(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return sm.Create(ctx)
	}
	return sm.Migrate(ctx)
}

// insert writes all tables in one transaction. Nothing is committed
// unless every table succeeds.
func (i *importer) insert(
	ctx context.Context,
	ds *dataset,
) ([]lifecycle.TableCount, error) {
	w, err := newWriter(ctx, i.operator)
	if err != nil {
		return nil, InsertError("transaction", err)
	}

	var committed bool
	defer func() {
		if committed {
			return
		}
		if err := w.rollback(context.Background()); err != nil {
			slog.Error("Rollback failed", "error", err)
		}
	}()

	if i.cfg.Import.Replace {
		tables := schema.Tables()
		slices.Reverse(tables)
		if err = w.clear(ctx, tables); err != nil {
			return nil, err
		}
	}

	var res []lifecycle.TableCount
	add := func(table string, n int64, err error) error {
		if err != nil {
			return err
		}
		slog.Info("Inserted rows", "table", table, "rows", humanize.Comma(n))
		res = append(res, lifecycle.TableCount{Table: table, Rows: n})
		return nil
	}

	size := i.cfg.Database.BatchSize
	n, err := insertTable(ctx, i, w, ds.references, size)
	if err = add(schema.ReferenceTable, n, err); err != nil {
		return nil, err
	}
	n, err = insertTable(ctx, i, w, ds.names, size)
	if err = add(schema.NameTable, n, err); err != nil {
		return nil, err
	}
	n, err = insertTable(ctx, i, w, ds.taxa, size)
	if err = add(schema.TaxonTable, n, err); err != nil {
		return nil, err
	}
	n, err = insertTable(ctx, i, w, ds.relations, size)
	if err = add(schema.NameRelationTable, n, err); err != nil {
		return nil, err
	}
	n, err = insertTable(ctx, i, w, ds.typeMaterials, size)
	if err = add(schema.TypeMaterialTable, n, err); err != nil {
		return nil, err
	}

	if err = w.commit(ctx); err != nil {
		return nil, InsertError("commit", err)
	}
	committed = true
	return res, nil
}

func insertTable[T schema.Copier](
	ctx context.Context,
	i *importer,
	w writer,
	items []T,
	size int,
) (int64, error) {
	var zero T
	bar := i.newBar(len(items), zero.TableName()+": ")
	defer bar.Finish()
	return writeTable(ctx, w, items, size, bar)
}
