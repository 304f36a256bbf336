package arrivals

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/AntonStoeckl/elevator-simulation-go/simulation"
)

const fixtureFieldsPerRecord = 3

type fixtureRecord struct {
	start  int
	target int
}

// FileArrivals replays the people of a fixture read once at construction.
// Each call to Generate creates fresh people, so the same fixture can drive many runs.
type FileArrivals struct {
	maxFloor int
	rounds   map[int][]fixtureRecord
	maxRound int
}

// NewFileArrivals loads the fixture file at filename.
func NewFileArrivals(maxFloor int, filename string) (*FileArrivals, error) {
	file, openErr := os.Open(filename)
	if openErr != nil {
		return nil, errors.Join(ErrOpeningFixtureFailed, openErr)
	}
	defer func() { _ = file.Close() }()

	return NewFixtureArrivals(maxFloor, file)
}

// NewFixtureArrivals loads a fixture from r.
//
// Every non-blank line must be a "round,start,target" record of integers with round >= 0,
// both floors inside [1, maxFloor], and start != target.
func NewFixtureArrivals(maxFloor int, r io.Reader) (*FileArrivals, error) {
	if maxFloor < 2 {
		return nil, ErrInvalidMaxFloor
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	f := &FileArrivals{
		maxFloor: maxFloor,
		rounds:   make(map[int][]fixtureRecord),
		maxRound: -1,
	}

	for {
		fields, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}

		if readErr != nil {
			return nil, errors.Join(ErrMalformedFixtureRecord, readErr)
		}

		if len(fields) == 1 && strings.TrimSpace(fields[0]) == "" {
			continue
		}

		line, _ := reader.FieldPos(0)

		round, record, parseErr := f.parseRecord(fields)
		if parseErr != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedFixtureRecord, line, parseErr)
		}

		f.rounds[round] = append(f.rounds[round], record)
		f.maxRound = max(f.maxRound, round)
	}

	return f, nil
}

func (f *FileArrivals) parseRecord(fields []string) (int, fixtureRecord, error) {
	if len(fields) != fixtureFieldsPerRecord {
		return 0, fixtureRecord{}, fmt.Errorf("expected %d fields, got %d", fixtureFieldsPerRecord, len(fields))
	}

	values := make([]int, fixtureFieldsPerRecord)
	for i, field := range fields {
		value, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return 0, fixtureRecord{}, err
		}

		values[i] = value
	}

	round, start, target := values[0], values[1], values[2]

	switch {
	case round < 0:
		return 0, fixtureRecord{}, fmt.Errorf("negative round %d", round)
	case start < 1 || start > f.maxFloor:
		return 0, fixtureRecord{}, fmt.Errorf("start floor %d outside [1, %d]", start, f.maxFloor)
	case target < 1 || target > f.maxFloor:
		return 0, fixtureRecord{}, fmt.Errorf("target floor %d outside [1, %d]", target, f.maxFloor)
	case start == target:
		return 0, fixtureRecord{}, fmt.Errorf("start and target are both floor %d", start)
	}

	return round, fixtureRecord{start: start, target: target}, nil
}

// Generate returns the people of the given round, partitioned by start floor in file order.
func (f *FileArrivals) Generate(round int) simulation.Arrivals {
	arrivals := make(simulation.Arrivals)

	for _, record := range f.rounds[round] {
		arrivals[record.start] = append(arrivals[record.start], simulation.NewPerson(record.start, record.target))
	}

	return arrivals
}

// NumPeople reports that the number of people per round is not fixed.
func (f *FileArrivals) NumPeople() (int, bool) {
	return 0, false
}

// Rounds returns the number of rounds needed to replay the whole fixture.
func (f *FileArrivals) Rounds() int {
	return f.maxRound + 1
}

func (f *FileArrivals) Name() string {
	return "file"
}
