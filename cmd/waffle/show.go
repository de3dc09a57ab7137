package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/robalobadob/waffle-cheatsheet/internal/cheatsheet"
	"github.com/robalobadob/waffle-cheatsheet/internal/ingest"
)

var showCmd = &cobra.Command{
	Use:   "show FILE",
	Short: "Print the cheatsheet for a board",
	Long:  `Reads a board document (YAML, JSON or a bare text layout) and prints its cheatsheet.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		color, _ := cmd.Flags().GetBool("color")
		b, err := ingest.ReadFile(args[0])
		if err != nil {
			return err
		}
		return runShow(cmd.OutOrStdout(), b, format, profileFor(color))
	},
}

func init() {
	showCmd.Flags().StringP("format", "f", "text", "Output format: text or json")
	showCmd.Flags().Bool("color", false, "Colour output (underlines letters seen elsewhere in the word)")
	rootCmd.AddCommand(showCmd)
}

// profileFor picks the terminal profile; without colour everything is plain.
func profileFor(color bool) termenv.Profile {
	if !color {
		return termenv.Ascii
	}
	return termenv.ColorProfile()
}

// runShow writes b's cheatsheet to w. Words that cannot be deduced are
// still printed as incomplete panels; the joined error is returned after.
func runShow(w io.Writer, b ingest.Board, format string, profile termenv.Profile) error {
	pz, err := b.Puzzle()
	if err != nil {
		return err
	}
	sheet, buildErr := cheatsheet.Build(pz)

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(sheet); err != nil {
			return err
		}
	case "text", "":
		if b.Name != "" {
			fmt.Fprintf(w, "%s\n\n", b.Name)
		}
		if err := cheatsheet.Render(w, sheet, profile); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	return buildErr
}
