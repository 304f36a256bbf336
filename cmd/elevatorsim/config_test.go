package main

import (
	"bytes"
	"context"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/elevator-simulation-go/simulation"
)

func emptyEnv(string) string {
	return ""
}

func envOf(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func Test_ParseConfig_WithoutArguments_UsesDefaults(t *testing.T) {
	// act
	cfg, err := parseConfig(nil, emptyEnv)

	// assert
	require.NoError(t, err)
	assert.Equal(t, defaultFloors, cfg.Floors)
	assert.Equal(t, defaultElevators, cfg.Elevators)
	assert.Equal(t, defaultCapacity, cfg.Capacity)
	assert.Equal(t, defaultPeoplePerRound, cfg.PeoplePerRound)
	assert.Equal(t, defaultRounds, cfg.Rounds)
	assert.Equal(t, arrivalsRandom, cfg.Arrivals)
	assert.Equal(t, policyPushy, cfg.Policy)
	assert.True(t, cfg.Visualize)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.False(t, cfg.Journal.Enabled)
	assert.Equal(t, adapterPGX, cfg.Journal.DBAdapter)
	assert.Equal(t, defaultTableName, cfg.Journal.Table)
}

func Test_ParseConfig_WithEnvironment_UsesAdapterAndDSN(t *testing.T) {
	// arrange
	env := envOf(map[string]string{
		envDBAdapter: adapterSQL,
		envDSN:       "postgres://env@localhost/elevators",
	})

	// act
	cfg, err := parseConfig([]string{"-journal"}, env)

	// assert
	require.NoError(t, err)
	assert.True(t, cfg.Journal.Enabled)
	assert.Equal(t, adapterSQL, cfg.Journal.DBAdapter)
	assert.Equal(t, "postgres://env@localhost/elevators", cfg.Journal.DSN)
}

func Test_ParseConfig_WithConfigFile_OverlaysDefaults(t *testing.T) {
	// act
	cfg, err := parseConfig([]string{"-config", "testdata/config.yaml"}, emptyEnv)

	// assert
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Floors)
	assert.Equal(t, 2, cfg.Elevators)
	assert.Equal(t, 4, cfg.Capacity)
	assert.Equal(t, 3, cfg.PeoplePerRound)
	assert.Equal(t, 20, cfg.Rounds)
	assert.Equal(t, arrivalsRandom, cfg.Arrivals, "keys missing from the file keep their defaults")
	assert.Equal(t, policyShortSighted, cfg.Policy)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.False(t, cfg.Visualize)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Journal.Enabled)
	assert.Equal(t, adapterSQLX, cfg.Journal.DBAdapter)
	assert.Equal(t, "building_a_events", cfg.Journal.Table)
}

func Test_ParseConfig_WithConfigFileAndFlags_FlagsWin(t *testing.T) {
	// arrange
	args := []string{"-floors", "12", "-config", "testdata/config.yaml", "-policy", "pushy", "-visualize"}

	// act
	cfg, err := parseConfig(args, emptyEnv)

	// assert
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Floors)
	assert.Equal(t, policyPushy, cfg.Policy)
	assert.True(t, cfg.Visualize)
	assert.Equal(t, 2, cfg.Elevators, "values not set by flags come from the file")
}

func Test_ParseConfig_WithMissingConfigFile_Fails(t *testing.T) {
	// act
	_, err := parseConfig([]string{"-config", "testdata/missing.yaml"}, emptyEnv)

	// assert
	assert.ErrorIs(t, err, ErrReadingConfigFileFailed)
}

func Test_ParseConfig_WithBrokenConfigFile_Fails(t *testing.T) {
	// act
	_, err := parseConfig([]string{"-config", "testdata/broken.yaml"}, emptyEnv)

	// assert
	assert.ErrorIs(t, err, ErrParsingConfigFileFailed)
}

func Test_ParseConfig_WithInvalidSettings_Fails(t *testing.T) {
	testCases := []struct {
		name     string
		args     []string
		expected error
	}{
		{name: "unknown arrivals", args: []string{"-arrivals", "poisson"}, expected: ErrUnknownArrivals},
		{name: "file arrivals without fixture", args: []string{"-arrivals", "file"}, expected: ErrMissingFixture},
		{name: "unknown policy", args: []string{"-policy", "lazy"}, expected: ErrUnknownPolicy},
		{name: "zero rounds with random arrivals", args: []string{"-rounds", "0"}, expected: ErrInvalidRounds},
		{name: "negative rounds", args: []string{"-rounds", "-3"}, expected: ErrInvalidRounds},
		{name: "unknown log level", args: []string{"-log-level", "chatty"}, expected: ErrInvalidLogLevel},
		{name: "journal without dsn", args: []string{"-journal"}, expected: ErrMissingDSN},
		{
			name:     "unknown db adapter",
			args:     []string{"-journal", "-dsn", "postgres://localhost", "-db-adapter", "mysql"},
			expected: ErrUnknownDBAdapter,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			_, err := parseConfig(tc.args, emptyEnv)

			// assert
			assert.ErrorIs(t, err, tc.expected)
		})
	}
}

func Test_Run_WithRandomArrivals_PrintsStatistics(t *testing.T) {
	// arrange
	cfg := defaultConfig(emptyEnv)
	cfg.Seed = 7
	cfg.LogLevel = "debug"
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

	// act
	err := run(context.Background(), cfg, stdout, stderr)

	// assert
	require.NoError(t, err)

	var stats map[string]int
	require.NoError(t, jsoniter.Unmarshal(stdout.Bytes(), &stats))
	assert.Len(t, stats, 6)
	assert.Equal(t, defaultRounds, stats[simulation.StatNumIterations])
	assert.Equal(t, defaultRounds*defaultPeoplePerRound, stats[simulation.StatTotalPeople])
	assert.LessOrEqual(t, stats[simulation.StatPeopleCompleted], stats[simulation.StatTotalPeople])
	assert.Contains(t, stderr.String(), "simulation run completed")
	assert.Contains(t, stderr.String(), "round started", "visualizing logs every round")
}

func Test_Run_WithFileArrivals_ReplaysWholeFixture(t *testing.T) {
	// arrange
	cfg := defaultConfig(emptyEnv)
	cfg.Arrivals = arrivalsFile
	cfg.Fixture = "testdata/arrivals.csv"
	cfg.Rounds = 0
	cfg.Visualize = false
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

	// act
	err := run(context.Background(), cfg, stdout, stderr)

	// assert
	require.NoError(t, err)

	var stats map[string]int
	require.NoError(t, jsoniter.Unmarshal(stdout.Bytes(), &stats))
	assert.Equal(t, 2, stats[simulation.StatNumIterations])
	assert.Equal(t, 3, stats[simulation.StatTotalPeople])
	assert.NotContains(t, stderr.String(), "round started")
}

func Test_Run_WithCanceledContext_Fails(t *testing.T) {
	// arrange
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg := defaultConfig(emptyEnv)
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

	// act
	err := run(ctx, cfg, stdout, stderr)

	// assert
	assert.ErrorIs(t, err, simulation.ErrRunCanceled)
	assert.Zero(t, stdout.Len())
}
