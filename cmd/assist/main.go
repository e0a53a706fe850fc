// Command assist runs a single translation, grammar correction or word
// lookup and prints the result.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/heartmarshall/langassist/internal/app"
	"github.com/heartmarshall/langassist/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	factory := func(ctx context.Context, provider string) (cli.Assistant, error) {
		return app.NewCLIAssistant(ctx, provider)
	}

	rootCmd := cli.CreateRootCommand(&cli.Flags{}, factory, app.Version)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
