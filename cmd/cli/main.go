package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/specialistvlad/nodegraph/internal/app"
	"github.com/specialistvlad/nodegraph/internal/cli"
	"github.com/specialistvlad/nodegraph/internal/config"
	"github.com/specialistvlad/nodegraph/internal/hcl_adapter"
	"github.com/specialistvlad/nodegraph/internal/yaml_adapter"
)

// main is the entrypoint for the nodegraph application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// The real main function handles errors and exit codes.
	if err := run(ctx, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		stop()
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, outW, errW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	graphApp := app.New(outW, appConfig, loaderFor(appConfig.GraphPath), app.WithLogWriter(errW))

	return graphApp.Run(ctx)
}

// loaderFor picks the concrete loader for path: YAML files by extension,
// HCL for everything else, including directories.
func loaderFor(path string) config.Loader {
	if yaml_adapter.IsYAML(path) {
		return yaml_adapter.NewLoader()
	}
	return hcl_adapter.NewLoader()
}
