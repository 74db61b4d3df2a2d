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
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/ipnidb/internal/iodb"
	"github.com/gnames/ipnidb/internal/ioschema"
	"github.com/spf13/cobra"
)

// getCreateCmd returns the create command.
func getCreateCmd() *cobra.Command {
	var forceCreate bool

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create database schema",
		Long: `Create the IPNI database schema from scratch.

This command:
  1. Connects to the database using configuration settings
  2. Checks for existing tables and prompts for confirmation
  3. Creates reference, name, taxon, name_relation and
     type_material tables with their indexes
  4. Sets byte-wise collation for scientific names on PostgreSQL

Use --force to skip confirmation and drop existing tables.

Examples:
  ipnidb create
  ipnidb create --force
  ipnidb create -f --driver postgres`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, forceCreate)
		},
	}

	createCmd.Flags().BoolVarP(&forceCreate, "force", "f",
		false, "drop existing tables without confirmation")

	return createCmd
}

func runCreate(cmd *cobra.Command, force bool) error {
	ctx := context.Background()

	op := iodb.NewOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	gn.Info("Connected to database: <em>%s</em>", connectionInfo(&cfg.Database))

	hasTables, err := op.HasTables(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if hasTables {
		if !force {
			gn.Warn("\nWarning: Database contains existing tables.")
			gn.Warn("Creating schema will drop ALL existing tables and data.")
			fmt.Fprint(cmd.OutOrStdout(), "\nDo you want to continue? (yes/no): ")

			reader := bufio.NewReader(cmd.InOrStdin())
			response, err := reader.ReadString('\n')
			if err != nil {
				gn.Warn("Failed to read user input")
				return err
			}

			response = strings.TrimSpace(strings.ToLower(response))
			if response != "yes" && response != "y" {
				gn.Info("Aborted. No changes made.")
				return nil
			}
		}

		gn.Info("Dropping all existing tables...")
		if err := op.DropAllTables(ctx); err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
	}

	gn.Info("Creating schema...")
	sm := ioschema.NewManager(op)
	if err := sm.Create(ctx); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Database schema creation complete!")
	gn.Info("Run <em>ipnidb import</em> to load IPNI data.")

	return nil
}
