package main

import (
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hyperifyio/mdpub/internal/article"
	"github.com/hyperifyio/mdpub/internal/export"
)

var pdfOut string

var pdfCmd = &cobra.Command{
	Use:   "pdf <file>",
	Short: "Export an article as PDF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := article.Load(args[0])
		if err != nil {
			return err
		}
		out := pdfOut
		if out == "" {
			out = strings.TrimSuffix(args[0], ".md") + ".pdf"
		}
		if err := export.PDF(a, out); err != nil {
			return err
		}
		log.Info().Str("file", out).Msg("pdf written")
		return nil
	},
}

func init() {
	pdfCmd.Flags().StringVarP(&pdfOut, "output", "o", "", "output path (default: input with .pdf extension)")
}
