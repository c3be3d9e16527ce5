// Command pipeline-runner executes a single enrichment run from the
// command line and prints the resulting report as JSON.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/solentra/enrichflow/config"
	"github.com/solentra/enrichflow/internal/app"
	"github.com/solentra/enrichflow/internal/logging"
	"github.com/solentra/enrichflow/internal/models"
)

func main() {
	var email string
	var source string

	flagSet := pflag.NewFlagSet("pipeline-runner", pflag.ContinueOnError)
	flagSet.StringVar(&email, "email", "", "requester email recorded with the run")
	flagSet.StringVar(&source, "source", "cli", "source tag stored with each record")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)

	cfg := config.Load()
	logging.Init(cfg.LogLevel)

	req := models.PipelineRequest{Email: email, Source: source}
	if err := run(context.Background(), cfg, req, os.Stdout); err != nil {
		slog.Error("[Runner] Run failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// run builds the pipeline, executes one request, and writes the report to
// stdout. Only setup failures return an error: a report carrying fetch or
// per-record errors still prints and exits zero, the same contract as the
// HTTP endpoint answering 200 with the report.
func run(ctx context.Context, cfg config.Config, req models.PipelineRequest, stdout io.Writer) error {
	deps, err := app.Build(ctx, cfg, slog.Default())
	if err != nil {
		return err
	}
	defer deps.Close()

	report := deps.Pipeline.Run(ctx, req)

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(stdout, "%s\n", out)
	return err
}
