package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/waffle-cheatsheet/internal/config"
)

// cfg is read before any init so flag defaults can use it.
var cfg = config.Load()

var rootCmd = &cobra.Command{
	Use:   "waffle",
	Short: "Waffle is a cheatsheet for the daily Waffle word puzzle",
	Long:  `Waffle reads a grid snapshot and lists, for every unsolved cell, the letters that could still go there.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
		verbose, _ := cmd.Flags().GetBool("verbose")
		switch {
		case verbose:
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		default:
			if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
				zerolog.SetGlobalLevel(lvl)
			}
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("db", cfg.DBPath, "Board catalog database")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Debug logging")
}
