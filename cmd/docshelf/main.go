package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"docshelf/internal/cli"
	"docshelf/internal/config"

	"github.com/joho/godotenv"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load .env file (silently ignore if it doesn't exist)
	_ = godotenv.Load()

	cfg := config.Load()

	// Logs go to a file so they never draw over the terminal UI
	var logOutput io.Writer = io.Discard
	if logFile, err := config.SetupLogFile(cfg.LogDir, "docshelf", cfg.LogMaxFiles); err != nil {
		fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
	} else {
		defer logFile.Close()
		logOutput = logFile
	}
	logger := config.NewLogger(logOutput, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := cli.NewApp(cfg, logger)
	defer app.Close()

	if err := app.NewRootCmd().ExecuteContext(ctx); err != nil {
		logger.Error("command failed", "error", err)
		fmt.Fprintln(os.Stderr, "error: "+cli.ErrorText(err))
		return 1
	}
	return 0
}
