package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/BuchardsVault/ChartFlow/chart"
	"github.com/BuchardsVault/ChartFlow/client"
	"github.com/BuchardsVault/ChartFlow/config"
	"github.com/BuchardsVault/ChartFlow/customerrors"
	"github.com/BuchardsVault/ChartFlow/database"
	"github.com/BuchardsVault/ChartFlow/interpreter"
	"github.com/BuchardsVault/ChartFlow/model"
	"github.com/BuchardsVault/ChartFlow/parser"
	"github.com/BuchardsVault/ChartFlow/render"
	"github.com/BuchardsVault/ChartFlow/service"
)

type cliOptions struct {
	configPath string
	outputDir  string
	dataDir    string
	debug      bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return report(cmd.ExecuteContext(ctx), stderr)
}

// report prints err and maps it to the process exit code: 1 for an
// invalid program, 2 for anything else.
func report(err error, stderr io.Writer) int {
	switch {
	case err == nil:
		return 0
	case customerrors.IsLanguageError(err):
		fmt.Fprintf(stderr, "chartflow error: %v\n", err)
		return 1
	default:
		fmt.Fprintf(stderr, "internal error: %v\n", err)
		return 2
	}
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	opts := &cliOptions{}

	cmd := &cobra.Command{
		Use:           "chartflow [flags] <program.cf>",
		Short:         "Run a ChartFlow program",
		Long:          "chartflow fetches daily price history and prints tables or renders charts as directed by a ChartFlow program.",
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sysConfigs, err := config.LoadConfigs(opts.configPath)
			if err != nil {
				return err
			}
			cfg := *sysConfigs.Config
			if opts.outputDir != "" {
				cfg.OutputDir = opts.outputDir
			}
			if opts.dataDir != "" {
				cfg.DataDir = opts.dataDir
			}
			setLogLevel(cfg.LogLevel, opts.debug)

			market, closeStore := newMarketService(cmd.Context(), cfg)
			defer closeStore()

			return runFile(cmd.Context(), args[0], cfg, market, stdout)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "YAML config file")
	cmd.Flags().StringVar(&opts.outputDir, "out", "", "directory for rendered charts (overrides config)")
	cmd.Flags().StringVar(&opts.dataDir, "data", "", "read <SYMBOL>.csv files from this directory instead of Yahoo Finance")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "log at debug level")

	return cmd
}

// newMarketService builds the market data service: CSV files when a data
// directory is configured, Yahoo Finance otherwise. Redis is optional; a
// connection failure only costs the shared cache.
func newMarketService(ctx context.Context, cfg model.EnvConfig) (interpreter.MarketData, func()) {
	if cfg.DataDir != "" {
		return service.NewCSVMarketService(cfg.DataDir), func() {}
	}

	yahoo := client.NewYahooClient(cfg)
	ttl := time.Duration(cfg.CacheTtlMinutes) * time.Minute

	if cfg.RedisUrl == "" {
		return service.NewMarketService(yahoo, nil, ttl), func() {}
	}

	store, err := database.InitRedis(ctx, cfg.RedisUrl)
	if err != nil {
		log.Warn().Err(err).Msg("continuing without redis cache")
		return service.NewMarketService(yahoo, nil, ttl), func() {}
	}
	return service.NewMarketService(yahoo, store, ttl), func() { store.Close() }
}

func runFile(ctx context.Context, path string, cfg model.EnvConfig, market interpreter.MarketData, stdout io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	program, err := parser.ParseReader(f)
	if err != nil {
		return err
	}

	style, err := chart.StyleFromConfig(cfg)
	if err != nil {
		return err
	}
	exec := interpreter.NewExecutor(market, render.New(stdout, cfg.OutputDir), interpreter.Options{
		ChartDefaults: &style,
		Out:           stdout,
	})

	log.Debug().Str("program", path).Int("statements", len(program.Statements)).Msg("running program")
	return exec.Run(ctx, program)
}

func setLogLevel(level string, debug bool) {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}
	if lvl, err := zerolog.ParseLevel(strings.ToLower(level)); err == nil && level != "" {
		zerolog.SetGlobalLevel(lvl)
	}
}

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
}
