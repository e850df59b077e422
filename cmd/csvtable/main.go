// Command csvtable is an interactive shell for loading, inspecting and
// editing delimited text files.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/nao1215/csvtable"
	"github.com/nao1215/csvtable/internal/config"
	"github.com/nao1215/csvtable/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	// .env is optional; variables already set in the environment win
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	logger := logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	logger.Debug("configuration loaded", slog.String("config", cfg.String()))

	table := csvtable.NewTable(
		csvtable.WithLogger(logger),
		csvtable.WithSampleSize(cfg.Sniff.SampleSize),
		csvtable.WithDelimiters(cfg.Sniff.DelimiterRunes()...),
	)

	sh := newShell(table, cfg, os.Stdin, os.Stdout)
	if err := sh.run(context.Background()); err != nil {
		logger.Error("shell stopped", slog.Any("error", err))
		return 1
	}
	return 0
}
