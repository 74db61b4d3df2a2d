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
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/ipnidb/internal/iodb"
	"github.com/gnames/ipnidb/internal/ioimport"
	"github.com/gnames/ipnidb/pkg/config"
	"github.com/gnames/ipnidb/pkg/lifecycle"
	"github.com/spf13/cobra"
)

// getImportCmd returns the import command.
func getImportCmd() *cobra.Command {
	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Import IPNI data into the database",
		Long: `Import downloads the IPNI archive, reads its TSV files and
writes references, names, taxa, name relations and type materials.

Steps:
  1. Download and unzip the archive (or use --data-dir)
  2. Read and clean all TSV files
  3. Parse scientific names to add canonical forms
  4. Insert all tables in one transaction

If any table fails, the transaction is rolled back and the database
stays as it was. Existing rows are replaced unless --append is given.
Press Ctrl-C to cancel; nothing is written in that case.

Examples:
  ipnidb import
  ipnidb import --data-dir ~/ipni
  ipnidb import --force-download --keep-files
  ipnidb import --append -b 10000`,
		RunE: runImport,
	}

	flags := importCmd.Flags()
	flags.StringP("data-dir", "d", "",
		"directory with unzipped IPNI TSV files, skips download")
	flags.Bool("force-download", false,
		"download the archive even if it is cached")
	flags.BoolP("keep-files", "k", false,
		"keep unzipped files in the cache after import")
	flags.BoolP("append", "a", false,
		"keep existing rows instead of replacing them")
	flags.IntP("batch-size", "b", 0,
		"number of rows per insert batch")

	return importCmd
}

func importOptions(cmd *cobra.Command) []config.Option {
	var res []config.Option
	flags := cmd.Flags()

	if flags.Changed("data-dir") {
		s, _ := flags.GetString("data-dir")
		res = append(res, config.OptImportDataDir(s))
	}
	if b, _ := flags.GetBool("force-download"); b {
		res = append(res, config.OptImportForceDownload(true))
	}
	if b, _ := flags.GetBool("keep-files"); b {
		res = append(res, config.OptImportKeepFiles(true))
	}
	if b, _ := flags.GetBool("append"); b {
		res = append(res, config.OptImportReplace(false))
	}
	if flags.Changed("batch-size") {
		i, _ := flags.GetInt("batch-size")
		res = append(res, config.OptDatabaseBatchSize(i))
	}
	return res
}

func runImport(cmd *cobra.Command, _ []string) error {
	cfg.Update(importOptions(cmd))

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

	gn.Info("Connected to database: <em>%s</em>", connectionInfo(&cfg.Database))

	imp := ioimport.New(cfg, op, ioimport.WithProgressBar())
	rep, err := imp.Import(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	printReport(cmd.OutOrStdout(), rep)
	return nil
}

func printReport(w io.Writer, rep *lifecycle.ImportReport) {
	fmt.Fprintln(w)
	for _, v := range rep.Tables {
		fmt.Fprintf(w, "%-20s %12s\n", v.Table, humanize.Comma(v.Rows))
	}
	if rep.SkippedRelations > 0 {
		fmt.Fprintf(w, "skipped name relations: %s\n",
			humanize.Comma(int64(rep.SkippedRelations)))
	}
	if rep.UnknownRelationTypes > 0 {
		fmt.Fprintf(w, "unknown relation types: %s\n",
			humanize.Comma(int64(rep.UnknownRelationTypes)))
	}
	if rep.UnknownTypeStatuses > 0 {
		fmt.Fprintf(w, "unknown type statuses:  %s\n",
			humanize.Comma(int64(rep.UnknownTypeStatuses)))
	}
	fmt.Fprintf(w, "\nImport finished in %s\n",
		gnfmt.TimeString(rep.Duration.Seconds()))
}
