/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gnames/gn"
	"github.com/gnames/ipnidb/internal/iodb"
	"github.com/gnames/ipnidb/internal/ioimport"
	"github.com/gnames/ipnidb/internal/ioschema"
	"github.com/gnames/ipnidb/internal/iostore"
	"github.com/gnames/ipnidb/internal/ioweb"
	"github.com/gnames/ipnidb/pkg/config"
	"github.com/spf13/cobra"
)

// getServeCmd returns the serve command.
func getServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start REST API server",
		Long: `Serve starts a REST API on top of the IPNI database.

Missing tables are created on start. Endpoints list, create and
delete rows of every table, return name metadata, distinct values
and similar names. POST /database/import reloads the data and is
protected by basic auth (server.user and server.password).

Prometheus metrics are exposed at /metrics.

Examples:
  ipnidb serve
  ipnidb serve -p 8080`,
		RunE: runServe,
	}

	serveCmd.Flags().IntP("port", "p", 0, "port of the API server")

	return serveCmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	if cmd.Flags().Changed("port") {
		port, _ := cmd.Flags().GetInt("port")
		cfg.Update([]config.Option{config.OptServerPort(port)})
	}

	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	op := iodb.NewOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	hasTables, err := op.HasTables(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	sm := ioschema.NewManager(op)
	if hasTables {
		err = sm.Migrate(ctx)
	} else {
		err = sm.Create(ctx)
	}
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	st, err := iostore.New(op)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	srv := ioweb.New(cfg, st, ioimport.New(cfg, op))
	gn.Info("API server is listening on port <em>%d</em>", cfg.Server.Port)

	if err = srv.Run(ctx); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	return nil
}
