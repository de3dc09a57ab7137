package main

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/waffle-cheatsheet/assets"
	"github.com/robalobadob/waffle-cheatsheet/internal/daily"
	"github.com/robalobadob/waffle-cheatsheet/internal/ingest"
)

var importCmd = &cobra.Command{
	Use:   "import [FILE...]",
	Short: "Add boards to the catalog",
	Long:  `Adds board documents to the catalog. With no files, the bundled sample boards are imported.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dsn, _ := cmd.Flags().GetString("db")
		st, closeFn, err := openCatalog(dsn)
		if err != nil {
			return err
		}
		defer closeFn()

		var boards []ingest.Board
		if len(args) == 0 {
			if boards, err = assets.SampleBoards(); err != nil {
				return err
			}
		}
		for _, path := range args {
			b, err := ingest.ReadFile(path)
			if err != nil {
				return err
			}
			if b.Name == "" {
				b.Name = path
			}
			boards = append(boards, b)
		}
		return runImport(cmd.Context(), cmd.OutOrStdout(), st, boards)
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}

// openCatalog opens and migrates the catalog at dsn.
func openCatalog(dsn string) (*daily.Store, func(), error) {
	db, err := daily.Open(dsn)
	if err != nil {
		return nil, nil, err
	}
	if err := daily.Migrate(db, assets.Migrations()); err != nil {
		db.Close()
		return nil, nil, err
	}
	return daily.NewStore(db), func() { db.Close() }, nil
}

// runImport adds every board, reporting each one. It stops at the first
// board that fails to ingest.
func runImport(ctx context.Context, w io.Writer, st *daily.Store, boards []ingest.Board) error {
	for _, b := range boards {
		id, added, err := st.Add(ctx, b)
		if err != nil {
			return fmt.Errorf("%s: %w", b.Name, err)
		}
		status := "added"
		if !added {
			status = "exists"
		}
		log.Debug().Str("id", id).Str("board", b.Name).Bool("added", added).Msg("import")
		fmt.Fprintf(w, "%-6s %s  %s\n", status, id, b.Name)
	}
	return nil
}
