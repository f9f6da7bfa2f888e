package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hyperifyio/mdpub/internal/toc"
)

var (
	tocPrint bool
	tocCheck bool
)

var tocCmd = &cobra.Command{
	Use:   "toc <file> [file...]",
	Short: "Generate or refresh the table of contents in markdown files",
	Long: `Regenerates the table of contents in each file. An existing ToC block
(or a [TOC] placeholder) is replaced in place; otherwise the block is
inserted after the front matter, or at the top of the document. Files
without headings below the level cutoff are left untouched.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cfg.TocOptions()
		stale := 0
		for _, path := range args {
			b, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			content := string(b)

			if tocPrint {
				fmt.Fprintln(cmd.OutOrStdout(), toc.Generate(content, opts))
				continue
			}

			updated := toc.Update(content, opts)
			if updated == content {
				log.Debug().Str("file", path).Msg("toc already up to date")
				continue
			}
			if tocCheck {
				stale++
				log.Warn().Str("file", path).Msg("toc is stale")
				continue
			}
			if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			log.Info().Str("file", path).Msg("toc updated")
		}
		if tocCheck && stale > 0 {
			return fmt.Errorf("%d file(s) have a stale toc", stale)
		}
		return nil
	},
}

func init() {
	tocCmd.Flags().BoolVar(&tocPrint, "print", false, "print the generated ToC instead of editing files")
	tocCmd.Flags().BoolVar(&tocCheck, "check", false, "report stale ToCs without editing; nonzero exit when any is stale")
}
