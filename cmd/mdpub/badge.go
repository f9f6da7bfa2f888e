package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hyperifyio/mdpub/internal/badge"
)

var (
	badgeLabel string
	badgeValue string
	badgeColor string
	badgeOut   string
)

var badgeCmd = &cobra.Command{
	Use:   "badge",
	Short: "Render a flat SVG badge",
	RunE: func(cmd *cobra.Command, args []string) error {
		palette := badge.DefaultPalette()
		for name, hex := range cfg.Badge.Palette {
			palette[name] = hex
		}
		svg := badge.Render(badge.Badge{
			Label: badgeLabel,
			Value: badgeValue,
			Color: badgeColor,
		}, palette)

		if badgeOut == "" || badgeOut == "-" {
			fmt.Fprintln(cmd.OutOrStdout(), svg)
			return nil
		}
		if err := os.WriteFile(badgeOut, []byte(svg), 0o644); err != nil {
			return fmt.Errorf("write badge: %w", err)
		}
		log.Info().Str("file", badgeOut).Msg("badge written")
		return nil
	},
}

func init() {
	badgeCmd.Flags().StringVar(&badgeLabel, "label", "", "left-hand label text")
	badgeCmd.Flags().StringVar(&badgeValue, "value", "", "right-hand value text")
	badgeCmd.Flags().StringVar(&badgeColor, "color", "", "value side color name or hex")
	badgeCmd.Flags().StringVarP(&badgeOut, "output", "o", "-", "output file, - for stdout")
	_ = badgeCmd.MarkFlagRequired("label")
	_ = badgeCmd.MarkFlagRequired("value")
}
