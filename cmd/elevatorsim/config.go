package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

const (
	defaultFloors         = 6
	defaultElevators      = 6
	defaultCapacity       = 3
	defaultPeoplePerRound = 2
	defaultRounds         = 15
	defaultTableName      = "simulation_events"

	envDBAdapter = "DB_ADAPTER"
	envDSN       = "ELEVATORSIM_DSN"
)

const (
	arrivalsRandom = "random"
	arrivalsFile   = "file"

	policyRandom       = "random"
	policyPushy        = "pushy"
	policyShortSighted = "shortsighted"

	adapterPGX  = "pgx"
	adapterSQL  = "sql"
	adapterSQLX = "sqlx"
)

var (
	ErrReadingConfigFileFailed = errors.New("reading config file failed")
	ErrParsingConfigFileFailed = errors.New("parsing config file failed")
	ErrUnknownArrivals         = errors.New("unknown arrivals mode")
	ErrMissingFixture          = errors.New("file arrivals need a fixture")
	ErrUnknownPolicy           = errors.New("unknown policy")
	ErrInvalidRounds           = errors.New("rounds must be positive, or zero to replay a whole fixture")
	ErrInvalidLogLevel         = errors.New("invalid log level")
	ErrUnknownDBAdapter        = errors.New("unknown database adapter")
	ErrMissingDSN              = errors.New("the journal needs a DSN")
)

// Config holds the resolved command line configuration.
type Config struct {
	Floors               int           `yaml:"floors"`
	Elevators            int           `yaml:"elevators"`
	Capacity             int           `yaml:"capacity"`
	PeoplePerRound       int           `yaml:"people_per_round"`
	Rounds               int           `yaml:"rounds"`
	Arrivals             string        `yaml:"arrivals"`
	Fixture              string        `yaml:"fixture"`
	Policy               string        `yaml:"policy"`
	Seed                 uint64        `yaml:"seed"`
	Visualize            bool          `yaml:"visualize"`
	LogLevel             string        `yaml:"log_level"`
	ObservabilityEnabled bool          `yaml:"observability_enabled"`
	Journal              JournalConfig `yaml:"journal"`
}

// JournalConfig holds the PostgreSQL event journal settings.
type JournalConfig struct {
	Enabled   bool   `yaml:"enabled"`
	DBAdapter string `yaml:"db_adapter"`
	DSN       string `yaml:"dsn"`
	Table     string `yaml:"table"`
}

func defaultConfig(getenv func(string) string) Config {
	adapter := getenv(envDBAdapter)
	if adapter == "" {
		adapter = adapterPGX
	}

	return Config{
		Floors:         defaultFloors,
		Elevators:      defaultElevators,
		Capacity:       defaultCapacity,
		PeoplePerRound: defaultPeoplePerRound,
		Rounds:         defaultRounds,
		Arrivals:       arrivalsRandom,
		Policy:         policyPushy,
		Visualize:      true,
		LogLevel:       slog.LevelInfo.String(),
		Journal: JournalConfig{
			DBAdapter: adapter,
			DSN:       getenv(envDSN),
			Table:     defaultTableName,
		},
	}
}

// parseConfig resolves the configuration: built-in defaults, then the optional YAML file, then explicitly set flags.
func parseConfig(args []string, getenv func(string) string) (Config, error) {
	cfg := defaultConfig(getenv)

	fs := flag.NewFlagSet("elevatorsim", flag.ContinueOnError)
	configFile := fs.String("config", "", "YAML file with the simulation configuration")
	fs.IntVar(&cfg.Floors, "floors", cfg.Floors, "Number of floors in the building")
	fs.IntVar(&cfg.Elevators, "elevators", cfg.Elevators, "Number of elevators")
	fs.IntVar(&cfg.Capacity, "capacity", cfg.Capacity, "Passenger capacity of every elevator")
	fs.IntVar(&cfg.PeoplePerRound, "people-per-round", cfg.PeoplePerRound, "People arriving per round with random arrivals")
	fs.IntVar(&cfg.Rounds, "rounds", cfg.Rounds, "Rounds to simulate, 0 replays the whole fixture")
	fs.StringVar(&cfg.Arrivals, "arrivals", cfg.Arrivals, "Arrival generator: random or file")
	fs.StringVar(&cfg.Fixture, "fixture", cfg.Fixture, "CSV fixture with round,start,target records for file arrivals")
	fs.StringVar(&cfg.Policy, "policy", cfg.Policy, "Dispatch policy: random, pushy or shortsighted")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Seed for the random generator and policy, 0 seeds randomly")
	fs.BoolVar(&cfg.Visualize, "visualize", cfg.Visualize, "Log every pipeline event")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error")
	fs.BoolVar(&cfg.ObservabilityEnabled, "observability-enabled", cfg.ObservabilityEnabled, "Enable OpenTelemetry observability")
	fs.BoolVar(&cfg.Journal.Enabled, "journal", cfg.Journal.Enabled, "Record the run in the PostgreSQL event journal")
	fs.StringVar(&cfg.Journal.DBAdapter, "db-adapter", cfg.Journal.DBAdapter, "Database adapter for the journal: pgx, sql or sqlx")
	fs.StringVar(&cfg.Journal.DSN, "dsn", cfg.Journal.DSN, "PostgreSQL DSN for the journal")
	fs.StringVar(&cfg.Journal.Table, "table", cfg.Journal.Table, "Journal table name")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *configFile != "" {
		explicit := make(map[string]string)
		fs.Visit(func(f *flag.Flag) { explicit[f.Name] = f.Value.String() })

		if err := loadConfigFile(*configFile, &cfg); err != nil {
			return Config{}, err
		}

		for name, value := range explicit {
			if err := fs.Set(name, value); err != nil {
				return Config{}, err
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// loadConfigFile overlays the YAML file onto cfg. Keys missing from the file keep their current values.
func loadConfigFile(filename string, cfg *Config) error {
	content, readErr := os.ReadFile(filename)
	if readErr != nil {
		return errors.Join(ErrReadingConfigFileFailed, readErr)
	}

	if err := yaml.Unmarshal(content, cfg); err != nil {
		return errors.Join(ErrParsingConfigFileFailed, fmt.Errorf("%s: %w", filename, err))
	}

	return nil
}

// Validate checks the CLI specific settings. The simulation settings are validated by the engine.
func (c Config) Validate() error {
	var errs []error

	if !slices.Contains([]string{arrivalsRandom, arrivalsFile}, c.Arrivals) {
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownArrivals, c.Arrivals))
	}

	if c.Arrivals == arrivalsFile && c.Fixture == "" {
		errs = append(errs, ErrMissingFixture)
	}

	if !slices.Contains([]string{policyRandom, policyPushy, policyShortSighted}, c.Policy) {
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownPolicy, c.Policy))
	}

	if c.Rounds < 0 || (c.Rounds == 0 && c.Arrivals != arrivalsFile) {
		errs = append(errs, ErrInvalidRounds)
	}

	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}

	if c.Journal.Enabled {
		if !slices.Contains([]string{adapterPGX, adapterSQL, adapterSQLX}, c.Journal.DBAdapter) {
			errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownDBAdapter, c.Journal.DBAdapter))
		}

		if c.Journal.DSN == "" {
			errs = append(errs, ErrMissingDSN)
		}
	}

	return errors.Join(errs...)
}

// Level returns the configured slog level.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, errors.Join(ErrInvalidLogLevel, err)
	}

	return level, nil
}
