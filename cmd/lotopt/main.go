package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/wonny/lotopt/cmd/lotopt/commands"
)

// main is the entry point for the lotopt CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/lotopt [command]
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := commands.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
