package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/websmith/internal/config"
	"git.home.luguber.info/inful/websmith/internal/site"
	"git.home.luguber.info/inful/websmith/internal/version"
	"git.home.luguber.info/inful/websmith/internal/watch"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"websmith.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Build struct {
		Force bool `short:"f" help:"Regenerate static and image targets regardless of freshness"`
	} `cmd:"" help:"Build the site from the configured rules"`

	Discover struct{} `cmd:"" help:"List the source files each rule would process, without building"`

	Watch struct {
		Debounce time.Duration `help:"Settle time before rebuilding after a change" default:"500ms"`
	} `cmd:"" help:"Build, then rebuild whenever the source tree changes"`

	Version struct{} `cmd:"" help:"Print version information"`
}

func main() {
	ctx := kong.Parse(&CLI)

	// Local overrides for source/target bases and similar knobs.
	_ = godotenv.Load(".env", ".env.local")

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	switch ctx.Command() {
	case "build":
		cfg := loadConfig()
		builder, err := site.NewBuilder(cfg)
		if err != nil {
			fatal("Failed to set up build", err)
		}
		builder.WithForce(CLI.Build.Force)
		if err := builder.Build(context.Background()); err != nil {
			fatal("Build failed", err)
		}

	case "discover":
		cfg := loadConfig()
		builder, err := site.NewBuilder(cfg)
		if err != nil {
			fatal("Failed to set up discovery", err)
		}
		results, err := builder.Discover()
		if err != nil {
			fatal("Discovery failed", err)
		}
		for _, rm := range results {
			fmt.Printf("%s (%s): %d files\n", rm.Rule, rm.Pattern, len(rm.Paths))
			for _, p := range rm.Paths {
				fmt.Printf("  %s\n", p)
			}
		}

	case "watch":
		cfg := loadConfig()
		if err := runWatch(cfg); err != nil && !errors.Is(err, context.Canceled) {
			fatal("Watch failed", err)
		}

	case "version":
		fmt.Printf("websmith %s (built %s, commit %s)\n", version.Version, version.BuildTime, version.GitCommit)

	default:
		fatal("Unknown command", fmt.Errorf("%s", ctx.Command()))
	}
}

func loadConfig() *config.Config {
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		fatal("Failed to load configuration", err)
	}
	return cfg
}

// runWatch builds once, then rebuilds on source changes until interrupted.
// Each rebuild uses a fresh Builder so the memoized file listing is recomputed.
func runWatch(cfg *config.Config) error {
	rebuild := func(ctx context.Context) error {
		builder, err := site.NewBuilder(cfg)
		if err != nil {
			return err
		}
		return builder.Build(ctx)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rebuild(ctx); err != nil {
		slog.Error("Initial build failed", "error", err)
	}

	w, err := watch.New(cfg.SourceBase, cfg.TargetBase)
	if err != nil {
		return err
	}
	w.WithDebounce(CLI.Watch.Debounce)
	return w.Run(ctx, rebuild)
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}
