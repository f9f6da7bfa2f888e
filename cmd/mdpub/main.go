package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	os.Exit(exitCode(rootCmd.ExecuteContext(ctx)))
}

// exitCode reports the failure before mapping it to a process exit code;
// cobra's own printing is silenced, so this is the only place a command
// error reaches the user.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	log.Error().Err(err).Msg("mdpub failed")
	return 1
}
