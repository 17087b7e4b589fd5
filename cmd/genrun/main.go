// Command genrun loads a pipeline recipe from configuration and runs it.
//
//	genrun --config cmd/genrun/config.yml
//	GENRUN_RECIPE_TERMINAL=sum genrun --limit 10
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"

	"github.com/kbukum/xgen/bootstrap"
	"github.com/kbukum/xgen/config"
	"github.com/kbukum/xgen/history"
	"github.com/kbukum/xgen/logger"
	"github.com/kbukum/xgen/observability"
	"github.com/kbukum/xgen/recipe"
	"github.com/kbukum/xgen/version"
)

const appName = "genrun"

type flags struct {
	configFile  string
	envFile     string
	terminal    string
	limit       int
	history     int
	listStages  bool
	showVersion bool
}

func parseFlags(args []string) (*flags, *pflag.FlagSet, error) {
	f := &flags{}
	fs := pflag.NewFlagSet(appName, pflag.ContinueOnError)
	fs.StringVarP(&f.configFile, "config", "c", "", "path to config.yml")
	fs.StringVar(&f.envFile, "env-file", "", "path to a .env file")
	fs.StringVarP(&f.terminal, "terminal", "t", "", "override recipe.terminal")
	fs.IntVarP(&f.limit, "limit", "n", 0, "override recipe.limit")
	fs.IntVar(&f.history, "history", 0, "print the last N recorded runs of the recipe and exit")
	fs.BoolVar(&f.listStages, "list-stages", false, "print the built-in stage names and exit")
	fs.BoolVarP(&f.showVersion, "version", "v", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs, nil
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "genrun:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	f, fs, err := parseFlags(args)
	if err != nil {
		return err
	}
	if f.showVersion {
		fmt.Fprintln(stdout, version.Banner(appName))
		return nil
	}
	if f.listStages {
		fmt.Fprintln(stdout, strings.Join(recipe.Builtins().Names(), "\n"))
		return nil
	}

	cfg, err := loadConfig(f, fs)
	if err != nil {
		return err
	}
	if f.history > 0 && !cfg.History.Enabled {
		return fmt.Errorf("--history needs history.enabled in the config")
	}

	app, err := bootstrap.NewApp(cfg)
	if err != nil {
		return err
	}

	buildOpts := []recipe.Option{
		recipe.WithLogger(logger.Get("pipeline")),
		recipe.WithOutput(stdout),
	}
	if cfg.Telemetry.Enabled {
		metrics, err := setupTelemetry(ctx, app)
		if err != nil {
			return err
		}
		buildOpts = append(buildOpts, recipe.WithMetrics(metrics))
	}

	var store *history.Store
	if cfg.History.Enabled {
		store, err = history.Open(ctx, cfg.History, logger.Get("history"))
		if err != nil {
			return err
		}
		app.OnStop(func(context.Context) error { return store.Close() })
	}

	return app.RunTask(ctx, func(ctx context.Context) error {
		if f.history > 0 {
			return printHistory(ctx, store, cfg.Recipe.Name, f.history, stdout)
		}
		return execute(ctx, app.Logger, cfg.Recipe, store, stdout, buildOpts...)
	})
}

func loadConfig(f *flags, fs *pflag.FlagSet) (*RunConfig, error) {
	opts := []config.LoaderOption{
		config.WithEnvPrefix(appName),
		config.WithDefault("name", appName),
		config.WithDefault("version", version.Get().Short()),
	}
	if f.configFile != "" {
		opts = append(opts, config.WithConfigFile(f.configFile))
	}
	if f.envFile != "" {
		opts = append(opts, config.WithEnvFile(f.envFile))
	}

	var cfg RunConfig
	if err := config.LoadConfig(appName, &cfg, opts...); err != nil {
		return nil, err
	}
	if fs.Changed("terminal") {
		cfg.Recipe.Terminal = f.terminal
	}
	if fs.Changed("limit") {
		cfg.Recipe.Limit = f.limit
	}
	return &cfg, nil
}

// setupTelemetry starts OTLP export and flushes it when the app stops.
func setupTelemetry(ctx context.Context, app *bootstrap.App[*RunConfig]) (*observability.PipelineMetrics, error) {
	cfg := app.Cfg
	tel, err := observability.Setup(ctx, cfg.Telemetry, observability.Service{
		Name:        cfg.Name,
		Version:     cfg.Version,
		Environment: cfg.Environment,
	})
	if err != nil {
		return nil, err
	}
	app.OnStop(tel.Shutdown)
	return tel.Metrics, nil
}

func execute(ctx context.Context, log *logger.Logger, r recipe.Recipe, store *history.Store, stdout io.Writer, opts ...recipe.Option) error {
	plan, err := recipe.Build(ctx, r, recipe.Builtins(), opts...)
	if err != nil {
		log.Error("recipe rejected", logger.ErrorFields("build", err))
		return err
	}

	start := time.Now()
	out, err := plan.Run(ctx)
	elapsed := time.Since(start)
	if store != nil {
		if recErr := store.Record(ctx, history.FromOutcome(out, elapsed, err)); recErr != nil {
			log.Warn("run not recorded", logger.MergeWithError(logger.RunFields(out.Recipe, out.RunID), recErr))
		}
	}
	if err != nil {
		log.Error("run failed", logger.MergeWithError(logger.RunFields(out.Recipe, out.RunID), err))
		return err
	}

	f := logger.MergeWithDuration(logger.RunFields(out.Recipe, out.RunID), elapsed)
	f["terminal"] = out.Terminal
	f[logger.FieldCompleted] = out.Completed
	log.Info("run finished", f)
	if out.Terminal != recipe.TerminalPrint {
		fmt.Fprintln(stdout, out.Value)
	}
	return nil
}

func printHistory(ctx context.Context, store *history.Store, recipeName string, n int, stdout io.Writer) error {
	runs, err := store.Recent(ctx, recipeName, n)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STARTED\tRUN\tTERMINAL\tSTATUS\tRESULT")
	for _, r := range runs {
		result := r.Value
		if r.Error != "" {
			result = r.Error
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			r.CreatedAt.Format(time.RFC3339), r.RunID, r.Terminal, r.Status, result)
	}
	return tw.Flush()
}
