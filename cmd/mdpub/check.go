package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hyperifyio/mdpub/internal/linkcheck"
)

var checkCmd = &cobra.Command{
	Use:   "check <file> [file...]",
	Short: "Verify that the links in markdown files resolve",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		broken := 0
		for _, path := range args {
			b, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			checker := &linkcheck.Checker{
				UserAgent:     cfg.Check.UserAgent,
				Timeout:       cfg.Check.Timeout,
				MaxConcurrent: cfg.Check.Concurrency,
				BaseDir:       filepath.Dir(path),
			}
			for _, res := range checker.Check(cmd.Context(), b) {
				if res.OK {
					log.Debug().Str("file", path).Str("url", res.URL).Msg("link ok")
					continue
				}
				broken++
				log.Warn().Str("file", path).Str("url", res.URL).Str("reason", res.Detail).Msg("broken link")
			}
		}
		if broken > 0 {
			return fmt.Errorf("%d broken link(s)", broken)
		}
		return nil
	},
}
