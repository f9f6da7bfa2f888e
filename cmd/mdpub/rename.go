package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hyperifyio/mdpub/internal/article"
	"github.com/hyperifyio/mdpub/internal/rename"
)

var renameApply bool

var renameCmd = &cobra.Command{
	Use:   "rename <file> [file...]",
	Short: "Rename article files after their titles",
	Long: `Derives a slug filename from each article's title (front matter first,
first heading as fallback) and reports the proposed name. A date prefix
on the current name is preserved. Pass --apply to perform the renames.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, path := range args {
			a, err := article.Load(path)
			if err != nil {
				return err
			}
			title := a.Title()
			if title == "" {
				log.Warn().Str("file", path).Msg("no title, skipping")
				continue
			}
			if !renameApply {
				proposed := rename.Propose(path, title)
				if proposed == path {
					log.Debug().Str("file", path).Msg("name already matches title")
				} else {
					log.Info().Str("file", path).Str("proposed", proposed).Msg("would rename")
				}
				continue
			}
			target, err := rename.Apply(path, title)
			if err != nil {
				return err
			}
			if target != path {
				log.Info().Str("file", path).Str("renamed", target).Msg("renamed")
			}
		}
		return nil
	},
}

func init() {
	renameCmd.Flags().BoolVar(&renameApply, "apply", false, "perform renames instead of proposing them")
}
