package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hyperifyio/mdpub/internal/mermaid"
)

var diagramPrint bool

var diagramCmd = &cobra.Command{
	Use:   "diagram <file> [file...]",
	Short: "Replace mermaid fences with rendered image links",
	Long: `Rewrites every mermaid code fence into an image link that serves the
rendered diagram. The diagram source is embedded in the URL, so no upload
happens and the document round-trips as plain markdown.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		renderer := &mermaid.Renderer{
			BaseURL:   cfg.Diagram.BaseURL,
			Theme:     cfg.Diagram.Theme,
			UserAgent: cfg.Diagram.UserAgent,
		}
		for _, path := range args {
			b, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			updated, err := renderer.ReplaceFences(string(b))
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			if diagramPrint {
				fmt.Fprint(cmd.OutOrStdout(), updated)
				continue
			}
			if updated == string(b) {
				log.Debug().Str("file", path).Msg("no mermaid fences")
				continue
			}
			if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			log.Info().Str("file", path).Msg("diagrams replaced")
		}
		return nil
	},
}

func init() {
	diagramCmd.Flags().BoolVar(&diagramPrint, "print", false, "print the result instead of editing files")
}
