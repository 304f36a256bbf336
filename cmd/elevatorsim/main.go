package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/elevator-simulation-go/simulation"
	"github.com/AntonStoeckl/elevator-simulation-go/simulation/arrivals"
	"github.com/AntonStoeckl/elevator-simulation-go/simulation/dispatch"
	"github.com/AntonStoeckl/elevator-simulation-go/simulation/journal"
	"github.com/AntonStoeckl/elevator-simulation-go/simulation/observers"
)

func main() {
	cfg, err := parseConfig(os.Args[1:], os.Getenv)
	if errors.Is(err, flag.ErrHelp) {
		return
	}

	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	if runErr := run(ctx, cfg, os.Stdout, os.Stderr); runErr != nil {
		stop()
		log.Fatalf("Simulation failed: %v", runErr)
	}

	stop()
}

// run builds the engine from cfg, simulates the configured rounds, and prints the statistics to stdout.
func run(ctx context.Context, cfg Config, stdout, stderr io.Writer) error {
	level, err := cfg.Level()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	generator, rounds, err := buildGenerator(cfg)
	if err != nil {
		return err
	}

	options := []simulation.Option{simulation.WithLogger(logger)}

	if cfg.Visualize {
		options = append(options, simulation.WithObserver(observers.NewLogging(logger)))
	}

	var metrics simulation.MetricsCollector

	if cfg.ObservabilityEnabled {
		providers, obsErr := newObservabilityProviders(ctx)
		if obsErr != nil {
			return fmt.Errorf("failed to create observability providers: %w", obsErr)
		}

		defer func() {
			if shutdownErr := providers.Shutdown(); shutdownErr != nil {
				logger.Warn("observability shutdown failed", "error", shutdownErr.Error())
			}
		}()

		metrics = providers.metricsCollector()
		options = append(options, providers.engineOptions()...)
	}

	var (
		store    *journal.Store
		recorder *journal.Journal
	)

	if cfg.Journal.Enabled {
		var closeDB func()

		store, closeDB, err = openJournalStore(ctx, cfg.Journal, logger)
		if err != nil {
			return err
		}
		defer closeDB()

		journalOptions := []journal.JournalOption{journal.WithJournalLogger(logger)}
		if metrics != nil {
			journalOptions = append(journalOptions, journal.WithJournalMetrics(metrics))
		}

		recorder, err = journal.NewJournal(store, journalOptions...)
		if err != nil {
			return err
		}

		options = append(options, simulation.WithRecorder(recorder))
	}

	engine, err := simulation.NewEngine(
		simulation.Config{
			NumFloors:         cfg.Floors,
			NumElevators:      cfg.Elevators,
			ElevatorCapacity:  cfg.Capacity,
			NumPeoplePerRound: cfg.PeoplePerRound,
			ArrivalGenerator:  generator,
			DispatchPolicy:    buildPolicy(cfg),
			Visualize:         cfg.Visualize,
		},
		options...,
	)
	if err != nil {
		return err
	}

	stats, err := engine.Run(ctx, rounds)
	if err != nil {
		return err
	}

	if recorder != nil {
		summarizeJournal(ctx, store, recorder, logger)
	}

	return printStatistics(stdout, stats)
}

// buildGenerator returns the configured arrival generator and the number of rounds to run with it.
func buildGenerator(cfg Config) (simulation.ArrivalGenerator, int, error) {
	if cfg.Arrivals == arrivalsFile {
		generator, err := arrivals.NewFileArrivals(cfg.Floors, cfg.Fixture)
		if err != nil {
			return nil, 0, err
		}

		rounds := cfg.Rounds
		if rounds == 0 {
			rounds = generator.Rounds()
		}

		return generator, rounds, nil
	}

	var options []arrivals.RandomOption
	if cfg.Seed != 0 {
		options = append(options, arrivals.WithSeed(cfg.Seed))
	}

	generator, err := arrivals.NewRandomArrivals(cfg.Floors, cfg.PeoplePerRound, options...)
	if err != nil {
		return nil, 0, err
	}

	return generator, cfg.Rounds, nil
}

func buildPolicy(cfg Config) simulation.DispatchPolicy {
	switch cfg.Policy {
	case policyRandom:
		if cfg.Seed != 0 {
			return dispatch.NewRandom(dispatch.WithSeed(cfg.Seed))
		}

		return dispatch.NewRandom()
	case policyShortSighted:
		return dispatch.ShortSighted{}
	default:
		return dispatch.Pushy{}
	}
}

func printStatistics(w io.Writer, stats simulation.Statistics) error {
	output, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(stats.AsMap(), "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(output))

	return err
}
