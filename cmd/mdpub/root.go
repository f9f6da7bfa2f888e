package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hyperifyio/mdpub/internal/config"
)

var (
	cfgFile string
	verbose bool

	cfg config.FileConfig
)

var rootCmd = &cobra.Command{
	Use:   "mdpub",
	Short: "Markdown authoring toolkit",
	Long: `mdpub maintains markdown articles for publishing: it generates and
refreshes table-of-contents blocks with dev.to compatible anchors, pushes
articles to the dev.to API, renders mermaid diagrams through an external
service, checks links, renames files after their titles, and produces
badges and PDF exports.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zerolog.TimeFieldFormat = time.RFC3339
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
		if verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
		var err error
		cfg, err = config.Load(cfgFile)
		return err
	},
}

func init() {
	// Environment is consulted here and nowhere deeper: library packages
	// take explicit values only.
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", os.Getenv("MDPUB_CONFIG"), "path to YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	rootCmd.AddCommand(tocCmd, publishCmd, checkCmd, renameCmd, diagramCmd, badgeCmd, pdfCmd, versionCmd)
}
