// Package schooldb wires the SchoolDB command together.
package schooldb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"github.com/nsqlite/schooldb/internal/export"
	"github.com/nsqlite/schooldb/internal/lesson"
	"github.com/nsqlite/schooldb/internal/log"
	"github.com/nsqlite/schooldb/internal/render"
	"github.com/nsqlite/schooldb/internal/schema"
	"github.com/nsqlite/schooldb/internal/schooldb/config"
	"github.com/nsqlite/schooldb/internal/seed"
	"github.com/nsqlite/schooldb/internal/shell"
	"github.com/nsqlite/schooldb/internal/store"
	"github.com/nsqlite/schooldb/internal/styled"
	"github.com/nsqlite/schooldb/internal/version"
)

// Run runs the SchoolDB CLI.
func Run(ctx context.Context) error {
	conf := config.MustParse(os.Args)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	level, err := log.ParseLevel(conf.LogLevel)
	if err != nil {
		return err
	}
	logger := log.NewLogger(os.Stderr, level)

	st, err := run(ctx, conf, logger, os.Stdout)
	if st == nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Error("error closing database", log.KV{"error": err.Error()})
		}
	}()
	if err != nil || !conf.Shell {
		return err
	}
	if st.InTransaction() {
		// The lesson stopped on a database error, nothing was committed.
		return nil
	}

	sh := shell.NewShell(ctx, stop, st, logger, os.Stdout)
	defer sh.Shutdown()
	go func() {
		if err := sh.Start(); err != nil {
			fmt.Println(err)
			stop()
		}
	}()

	<-ctx.Done()
	fmt.Printf("\nGoodbye!\n\n")
	return nil
}

// run opens the database and executes the whole lesson. The returned store
// is open whenever it is not nil, and the caller must close it.
//
// Database errors raised after the database is open are printed to out and
// swallowed, every other error is returned.
func run(
	ctx context.Context, conf config.Config, logger log.Logger, out io.Writer,
) (*store.Store, error) {
	runID := uuid.NewString()
	logger.Info("starting SchoolDB", log.KV{
		"runId":   runID,
		"version": version.Version,
		"config":  conf,
	})

	fmt.Fprintln(out, version.Banner())

	st, err := store.Open(ctx, store.Config{
		Logger:   logger,
		Path:     conf.DatabasePath,
		Recreate: !conf.KeepExisting,
	})
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := lessonSequence(ctx, conf, st, logger, out); err != nil {
		var sqliteErr sqlite3.Error
		if !errors.As(err, &sqliteErr) {
			return st, err
		}

		styled.ErrorColor().Fprintln(out, "SQLite error:", err)
		logger.Error("run failed", log.KV{
			"runId": runID,
			"code":  int(sqliteErr.Code),
			"error": err.Error(),
		})
		return st, nil
	}

	logger.Info("run finished", log.KV{"runId": runID})
	return st, nil
}

// lessonSequence creates and seeds the schema, runs every demonstration,
// commits and optionally exports the tables.
func lessonSequence(
	ctx context.Context, conf config.Config, st *store.Store, logger log.Logger, out io.Writer,
) error {
	var renderer render.Renderer = render.NewPlain(out)
	if conf.Output == config.OutputTable {
		renderer = render.NewTable(out)
	}

	if err := schema.Create(ctx, st); err != nil {
		return err
	}

	data, err := seed.Load()
	if err != nil {
		return err
	}
	if err := seed.Insert(ctx, st, logger, data); err != nil {
		return err
	}

	if err := lesson.NewRunner(st, renderer, logger).Run(ctx); err != nil {
		return err
	}

	if err := st.Commit(); err != nil {
		return err
	}
	styled.SuccessColor().Fprintln(out, "Tables and data created successfully.")

	if conf.ExportPath != "" {
		if err := export.Workbook(ctx, st, logger, conf.ExportPath, schema.Tables); err != nil {
			return err
		}
		styled.DimmedColor().Fprintf(out, "Tables exported to %s\n", conf.ExportPath)
	}

	return nil
}
