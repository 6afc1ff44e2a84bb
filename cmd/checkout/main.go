package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/checkout/internal/app"
	"github.com/vladislavdragonenkov/checkout/internal/metrics"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr, os.LookupEnv); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		_, _ = fmt.Fprintln(os.Stderr, "checkout:", err)
		os.Exit(1)
	}
}

// run разбирает глобальные флаги, поднимает хранилище и выполняет одну команду.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, lookup app.EnvLookup) error {
	cfg, warnings := app.ReadConfigFromEnv(lookup)
	if err := app.SetupLogger(cfg); err != nil {
		return err
	}
	log.SetOutput(stderr)
	for _, w := range warnings {
		log.Warn(w)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	global := flag.NewFlagSet("checkout", flag.ContinueOnError)
	global.SetOutput(stderr)
	seedPath := global.String("seed", "", "JSON file with clients and products to preload")
	publish := global.Bool("publish", false, "publish pending outbox events to Kafka after the command")
	printMetrics := global.Bool("metrics", false, "print checkout metrics to stderr after the command")
	global.Usage = func() { printUsage(global) }
	if err := global.Parse(args); err != nil {
		return err
	}

	cmd, cmdArgs, err := resolveCommand(global.Args())
	if err != nil {
		printUsage(global)
		return err
	}

	deps, err := app.NewDependencies(ctx, cfg, log.WithField("component", "checkout-cli"))
	if err != nil {
		return err
	}
	defer func() {
		if err := deps.Close(); err != nil {
			log.WithError(err).Warn("failed to close storage")
		}
	}()

	registry := prometheus.NewRegistry()
	services, err := app.NewServices(deps, cfg, metrics.NewCheckoutMetricsWithRegisterer(registry))
	if err != nil {
		return err
	}

	if *seedPath != "" {
		if err := loadSeedFile(ctx, services, *seedPath); err != nil {
			return err
		}
	}

	c := &cli{services: services, out: stdout, errOut: stderr}
	cmdErr := cmd.run(ctx, c, cmdArgs)
	if *printMetrics {
		if err := metrics.WriteSummary(stderr, registry); err != nil {
			log.WithError(err).Warn("failed to print metrics")
		}
	}
	if cmdErr != nil {
		return cmdErr
	}

	if *publish {
		result, err := app.PublishPending(ctx, cfg, deps)
		if err != nil {
			return fmt.Errorf("publish outbox: %w", err)
		}
		log.WithFields(log.Fields{
			"sent":   result.Sent,
			"failed": result.Failed,
		}).Info("outbox drained")
	}
	return nil
}

func printUsage(fs *flag.FlagSet) {
	out := fs.Output()
	_, _ = fmt.Fprintln(out, "usage: checkout [-seed file.json] [-publish] [-metrics] <command> [flags]")
	_, _ = fmt.Fprintln(out, "\ncommands:")
	for _, cmd := range commands {
		_, _ = fmt.Fprintf(out, "  %-14s %s\n", cmd.name, cmd.summary)
	}
	_, _ = fmt.Fprintln(out, "\nglobal flags:")
	fs.PrintDefaults()
}
