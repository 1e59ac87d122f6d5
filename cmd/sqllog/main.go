// Command sqllog runs SQL statements through an instrumented connection
// pool and prints what the hooks observe.
//
// Example:
//
//	sqllog --driver pgx --dsn "$DATABASE_URL" \
//	    --query "SELECT * FROM users WHERE id = $1" --arg 42 \
//	    --repeat 100 --concurrency 8 --metrics-addr :2112
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"
)

const (
	exitCodeFailure = 1

	serviceName = "sqllog"
)

// Version is set at build time.
var Version = "dev"

// supportedDrivers maps the --driver values to the database/sql driver
// names registered by the imported driver packages.
var supportedDrivers = map[string]string{
	"postgres": "postgres",
	"pgx":      "pgx",
}

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().
		Timestamp().
		Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCommand(logger).Run(ctx, os.Args); err != nil {
		logger.Error().Err(err).Msg("sqllog failed")
		stop()
		os.Exit(exitCodeFailure)
	}
}

func newCommand(logger zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:    serviceName,
		Usage:   "run SQL statements through an instrumented connection pool",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "driver",
				Usage:   "database driver: postgres (lib/pq) or pgx (pgx stdlib)",
				Value:   "pgx",
				Sources: cli.EnvVars("SQLLOG_DRIVER"),
				Validator: func(v string) error {
					if _, ok := supportedDrivers[v]; !ok {
						return fmt.Errorf("unsupported driver %q (allowed: postgres, pgx)", v)
					}
					return nil
				},
			},
			&cli.StringFlag{
				Name:     "dsn",
				Usage:    "data source name of the database",
				Required: true,
				Sources:  cli.EnvVars("SQLLOG_DSN", "DATABASE_URL"),
			},
			&cli.StringFlag{
				Name:    "config",
				Usage:   "path of a YAML logging configuration file",
				Sources: cli.EnvVars("SQLLOG_CONFIG"),
			},
			&cli.StringFlag{
				Name:     "query",
				Aliases:  []string{"q"},
				Usage:    "statement to execute",
				Required: true,
			},
			&cli.StringSliceFlag{
				Name:  "arg",
				Usage: "positional statement argument, repeat for several",
			},
			&cli.IntFlag{
				Name:  "repeat",
				Usage: "number of executions",
				Value: 1,
			},
			&cli.IntFlag{
				Name:  "concurrency",
				Usage: "maximum number of concurrent executions",
				Value: 1,
			},
			&cli.FloatFlag{
				Name:  "rate",
				Usage: "maximum executions started per second, 0 for unlimited",
			},
			&cli.BoolFlag{
				Name:  "sensitive",
				Usage: "log parameter values instead of masking them",
			},
			&cli.StringFlag{
				Name:    "otlp-endpoint",
				Usage:   "host:port of an OTLP gRPC collector; tracing is off when empty",
				Sources: cli.EnvVars("OTEL_EXPORTER_OTLP_ENDPOINT"),
			},
			&cli.StringFlag{
				Name:  "metrics-addr",
				Usage: "address to serve /metrics, /livez and /readyz on, e.g. :2112",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts := options{
				Driver:       supportedDrivers[cmd.String("driver")],
				DSN:          cmd.String("dsn"),
				ConfigPath:   cmd.String("config"),
				Query:        cmd.String("query"),
				Args:         cmd.StringSlice("arg"),
				Repeat:       cmd.Int("repeat"),
				Concurrency:  cmd.Int("concurrency"),
				Rate:         cmd.Float("rate"),
				Sensitive:    cmd.Bool("sensitive"),
				OTLPEndpoint: cmd.String("otlp-endpoint"),
				MetricsAddr:  cmd.String("metrics-addr"),
			}
			return run(ctx, opts, logger)
		},
	}
}
