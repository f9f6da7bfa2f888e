package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hyperifyio/mdpub/internal/article"
	"github.com/hyperifyio/mdpub/internal/devto"
)

var (
	publishKey    string
	publishDryRun bool
)

var publishCmd = &cobra.Command{
	Use:   "publish <file>",
	Short: "Push an article to the dev.to API",
	Long: `Creates the article on first publish and records the assigned id in the
front matter; later runs update the same article in place.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := article.Load(args[0])
		if err != nil {
			return err
		}

		key := publishKey
		if key == "" {
			key = cfg.Publish.APIKey
		}
		client := &devto.Client{
			BaseURL:           cfg.Publish.BaseURL,
			APIKey:            key,
			UserAgent:         cfg.Publish.UserAgent,
			MaxAttempts:       cfg.Publish.Attempts,
			PerRequestTimeout: cfg.Publish.Timeout,
		}

		if publishDryRun {
			log.Info().
				Str("file", args[0]).
				Str("title", a.Title()).
				Int("id", a.Meta.ID).
				Bool("published", a.Meta.Published).
				Msg("dry run, nothing sent")
			return nil
		}

		pub, err := client.Push(cmd.Context(), &a)
		if err != nil {
			return fmt.Errorf("publish %s: %w", args[0], err)
		}
		// Persist the assigned id so the next push becomes an update.
		if err := a.Save(); err != nil {
			return err
		}
		log.Info().Int("id", pub.ID).Str("url", pub.URL).Msg("published")
		return nil
	},
}

func init() {
	publishCmd.Flags().StringVar(&publishKey, "key", os.Getenv("DEVTO_API_KEY"), "dev.to API key")
	publishCmd.Flags().BoolVar(&publishDryRun, "dry-run", false, "validate and report without calling the API")
}
