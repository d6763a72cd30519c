package main

import (
	"context"
	"empdir/cmd/empdir/cmds"
	"empdir/internal/config"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	config.LoadEnvFile()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmds.NewRootCmd().ExecuteContext(ctx); err != nil {
		if !cmds.Reported(err) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		stop()
		os.Exit(1)
	}
}
