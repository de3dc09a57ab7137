package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/robalobadob/waffle-cheatsheet/internal/daily"
	"github.com/robalobadob/waffle-cheatsheet/internal/ingest"
)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Print the cheatsheet for the day's board",
	Long:  `Picks the day's board from the catalog (a board dated that day, otherwise a salted rotation) and prints its cheatsheet.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dsn, _ := cmd.Flags().GetString("db")
		salt, _ := cmd.Flags().GetString("salt")
		date, _ := cmd.Flags().GetString("date")
		color, _ := cmd.Flags().GetBool("color")

		day := time.Now().UTC()
		if date != "" {
			var err error
			if day, err = time.Parse(ingest.DateLayout, date); err != nil {
				return fmt.Errorf("bad --date: %w", err)
			}
		}
		st, closeFn, err := openCatalog(dsn)
		if err != nil {
			return err
		}
		defer closeFn()
		return runDaily(cmd.Context(), cmd.OutOrStdout(), st, day, salt, profileFor(color))
	},
}

func init() {
	dailyCmd.Flags().String("salt", cfg.DailySalt, "Rotation salt")
	dailyCmd.Flags().String("date", "", "Day to show (YYYY-MM-DD), default today")
	dailyCmd.Flags().Bool("color", false, "Colour output")
	rootCmd.AddCommand(dailyCmd)
}

func runDaily(ctx context.Context, w io.Writer, st *daily.Store, day time.Time, salt string, profile termenv.Profile) error {
	e, err := st.ForDay(ctx, day, salt)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s  %s\n", daily.DateKey(day), e.ID)
	return runShow(w, e.Board(), "text", profile)
}
