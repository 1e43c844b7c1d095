package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	githubadapter "github.com/ericfisherdev/mergemetrics/internal/adapter/driven/github"
	"github.com/ericfisherdev/mergemetrics/internal/adapter/driving/cli"
	"github.com/ericfisherdev/mergemetrics/internal/adapter/driving/cli/report"
	"github.com/ericfisherdev/mergemetrics/internal/application"
	"github.com/ericfisherdev/mergemetrics/internal/config"
	"github.com/ericfisherdev/mergemetrics/internal/domain/port/driven"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		reportFatal(os.Stderr, err)
		os.Exit(1)
	}
}

// reportFatal prints err once for the user; the structured form is only
// logged at debug level.
func reportFatal(w io.Writer, err error) {
	slog.Debug("fatal error", "error", err)
	fmt.Fprintln(w, color.RedString(err.Error()))
}

func run() error {
	// 1. Load configuration; the token may still be missing at this point.
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// 2. Diagnostics go to stderr so stdout carries only the report.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))
	slog.Debug("config loaded",
		"has_token", cfg.HasGitHubToken(),
		"default_owner", cfg.DefaultOwner,
		"profile", cfg.ProfilePath,
	)

	// 3. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	palette := report.NewPalette(!color.NoColor)

	// 4. The GitHub client is built on first use, prompting for a token when
	// none is configured and stdin is a terminal.
	prompt := cli.TokenPrompt{
		In:          os.Stdin,
		Out:         os.Stderr,
		Interactive: isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()),
		Palette:     palette,
	}
	provider := application.NewGitHubClientProvider(func(context.Context) (driven.GitHubClient, error) {
		token, err := prompt.Resolve(cfg.GitHubToken)
		if err != nil {
			return nil, err
		}
		slog.Debug("github client created")
		return githubadapter.NewClient(token), nil
	})

	// 5. Run the requested command.
	root := cli.NewRootCommand(cli.Dependencies{
		Config:   cfg,
		Provider: provider,
		Palette:  palette,
		Out:      os.Stdout,
		Err:      os.Stderr,
	}, version)

	return root.ExecuteContext(ctx)
}
