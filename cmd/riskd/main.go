package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/carlmjohnson/versioninfo"
	_ "github.com/joho/godotenv/autoload"
	cli "github.com/urfave/cli/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
)

func main() {
	if err := run(os.Args); err != nil {
		slog.Error("exiting", "err", err)
		os.Exit(-1)
	}
}

func run(args []string) error {

	app := cli.App{
		Name:    "riskd",
		Usage:   "content risk evaluation daemon",
		Version: versioninfo.Short(),
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "database-url",
			Usage:   "database connection string (sqlite:// or postgres://)",
			Value:   "sqlite://data/riskd/riskd.sqlite",
			EnvVars: []string{"DATABASE_URL"},
		},
		&cli.IntFlag{
			Name:    "max-db-connections",
			EnvVars: []string{"MAX_DB_CONNECTIONS"},
			Value:   40,
		},
	}

	app.Commands = []*cli.Command{
		runCmd,
	}

	return app.Run(args)
}

var runCmd = &cli.Command{
	Name:  "run",
	Usage: "run the worker daemon and admin API",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "redis-url",
			Usage:   "redis connection for the task queue and word cache (eg, redis://localhost:6379/0); empty runs fully in-process",
			EnvVars: []string{"RISKD_REDIS_URL", "REDIS_URL"},
		},
		&cli.StringFlag{
			Name:    "moderation-host",
			Usage:   "base URL of the remote moderation API; empty disables remote moderation (local-only mode)",
			EnvVars: []string{"RISKD_MODERATION_HOST"},
		},
		&cli.StringFlag{
			Name:    "moderation-api-key",
			EnvVars: []string{"RISKD_MODERATION_API_KEY"},
		},
		&cli.StringFlag{
			Name:    "moderation-biz-type",
			Usage:   "business tag submitted with every moderation request",
			Value:   "payday_risk_check",
			EnvVars: []string{"RISKD_MODERATION_BIZ_TYPE"},
		},
		&cli.IntFlag{
			Name:    "moderation-qps",
			Usage:   "max moderation API requests per second (0 for unlimited)",
			Value:   20,
			EnvVars: []string{"RISKD_MODERATION_QPS"},
		},
		&cli.IntFlag{
			Name:    "image-concurrency",
			Usage:   "max concurrent per-image moderation calls within one evaluation",
			Value:   4,
			EnvVars: []string{"RISKD_IMAGE_CONCURRENCY"},
		},
		&cli.DurationFlag{
			Name:    "remote-timeout",
			Usage:   "overall budget for the remote calls of one evaluation",
			Value:   15 * time.Second,
			EnvVars: []string{"RISKD_REMOTE_TIMEOUT"},
		},
		&cli.IntFlag{
			Name:    "workers",
			Usage:   "number of concurrent evaluation workers",
			Value:   8,
			EnvVars: []string{"RISKD_WORKERS"},
		},
		&cli.DurationFlag{
			Name:    "word-cache-ttl",
			Usage:   "how long the active sensitive-word list is cached",
			Value:   5 * time.Minute,
			EnvVars: []string{"RISKD_WORD_CACHE_TTL"},
		},
		&cli.StringFlag{
			Name:    "bind",
			Usage:   "IP or address, and port, to listen on for the admin API",
			Value:   ":3985",
			EnvVars: []string{"RISKD_BIND"},
		},
		&cli.StringFlag{
			Name:    "metrics-listen",
			Usage:   "IP or address, and port, to listen on for metrics APIs",
			Value:   ":3984",
			EnvVars: []string{"RISKD_METRICS_LISTEN"},
		},
	},
	Action: func(cctx *cli.Context) error {
		logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
		slog.SetDefault(logger)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		// Enable OTLP HTTP exporter
		// For relevant environment variables:
		// https://pkg.go.dev/go.opentelemetry.io/otel/exporters/otlp/otlptrace#readme-environment-variables
		// At a minimum, you need to set
		// OTEL_EXPORTER_OTLP_ENDPOINT=http://localhost:4318
		if ep := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); ep != "" {
			slog.Info("setting up trace exporter", "endpoint", ep)
			exp, err := otlptracehttp.New(ctx)
			if err != nil {
				log.Fatal("failed to create trace exporter", "error", err)
			}
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()
				if err := exp.Shutdown(ctx); err != nil {
					slog.Error("failed to shutdown trace exporter", "error", err)
				}
			}()

			tp := tracesdk.NewTracerProvider(
				tracesdk.WithBatcher(exp),
				tracesdk.WithResource(resource.NewWithAttributes(
					semconv.SchemaURL,
					semconv.ServiceNameKey.String("riskd"),
					attribute.String("env", os.Getenv("ENVIRONMENT")),         // DataDog
					attribute.String("environment", os.Getenv("ENVIRONMENT")), // Others
					attribute.Int64("ID", 1),
				)),
			)
			otel.SetTracerProvider(tp)
		}

		srv, err := NewServer(Config{
			Logger:            logger,
			DatabaseURL:       cctx.String("database-url"),
			MaxDBConnections:  cctx.Int("max-db-connections"),
			RedisURL:          cctx.String("redis-url"),
			ModerationHost:    cctx.String("moderation-host"),
			ModerationAPIKey:  cctx.String("moderation-api-key"),
			ModerationBizType: cctx.String("moderation-biz-type"),
			ModerationQPS:     cctx.Int("moderation-qps"),
			ImageConcurrency:  cctx.Int("image-concurrency"),
			RemoteTimeout:     cctx.Duration("remote-timeout"),
			Workers:           cctx.Int("workers"),
			WordCacheTTL:      cctx.Duration("word-cache-ttl"),
		})
		if err != nil {
			return err
		}

		go func() {
			if err := srv.RunMetrics(cctx.String("metrics-listen")); err != nil {
				slog.Error("failed to start metrics endpoint", "error", err)
				panic(fmt.Errorf("failed to start metrics endpoint: %w", err))
			}
		}()

		go func() {
			if err := srv.RunAdminAPI(cctx.String("bind")); err != nil {
				slog.Error("admin API shut down", "error", err)
			}
		}()

		if err := srv.Run(ctx); err != nil {
			return fmt.Errorf("failed to run risk evaluation service: %w", err)
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}
