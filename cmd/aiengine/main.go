// Command aiengine serves the Gopang AI Engine HTTP facade.
//
// @title        Gopang AI Engine
// @version      0.3.2
// @description  HTTP facade in front of a local llama.cpp server.
// @BasePath     /
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is normal; only AIENGINE_* values matter.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
