package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/georgemunganga/retail-ordering/internal/app"
	"github.com/georgemunganga/retail-ordering/internal/config"
	"github.com/georgemunganga/retail-ordering/internal/platform/logging"
	"github.com/georgemunganga/retail-ordering/internal/platform/terminal"
	"github.com/georgemunganga/retail-ordering/internal/session"
)

func main() {
	envFile := flag.String("env", ".env", "optional env file")
	inMemory := flag.Bool("memory", false, "run on seeded in-memory storage instead of Postgres")
	flag.Parse()

	if *inMemory {
		os.Setenv("STORAGE", config.StorageMemory)
	}
	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.Development)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	// The session blocks on stdin, so SIGINT keeps its default behaviour
	// and terminates the process.
	if err := run(context.Background(), cfg, os.Stdin, os.Stdout, logger); err != nil {
		logger.Error("session ended", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer, logger *zap.Logger) error {
	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	if a.Memory != nil {
		if err := a.Memory.SeedDemo(ctx); err != nil {
			return err
		}
	}
	return session.New(a.Services, terminal.New(in, out), logger).Run(ctx)
}
