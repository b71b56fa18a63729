package energy

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/gocarina/gocsv"
)

const (
	ColumnIntakeDate     = "Date"
	ColumnIntakeEnergy   = "Energy (kcal)"
	ColumnExerciseDay    = "Day"
	ColumnExerciseBurned = "Calories Burned"
)

var utf8BOM = []byte("\xef\xbb\xbf")

type intakeRow struct {
	Date   string `csv:"Date"`
	Energy string `csv:"Energy (kcal)"`
}

type exerciseRow struct {
	Day    string `csv:"Day"`
	Burned string `csv:"Calories Burned"`
}

// LoadIntake reads a food log. Columns other than Date and Energy (kcal) are ignored.
// Rows with an empty energy value are kept with a NaN energy.
func LoadIntake(source string, r io.Reader) ([]DailyIntake, error) {
	var rows []intakeRow
	if err := readTable(source, r, &rows, ColumnIntakeDate, ColumnIntakeEnergy); err != nil {
		return nil, err
	}

	intake := make([]DailyIntake, 0, len(rows))
	for i, row := range rows {
		date, err := parseDate(row.Date)
		if err != nil {
			return nil, &MalformedInputError{Source: source, Column: ColumnIntakeDate, Row: i + 1, Err: err}
		}
		energy, err := parseNumber(row.Energy, math.NaN())
		if err != nil {
			return nil, &MalformedInputError{Source: source, Column: ColumnIntakeEnergy, Row: i + 1, Err: err}
		}
		intake = append(intake, DailyIntake{Date: date, EnergyKcal: energy})
	}

	return intake, nil
}

// LoadExercises reads an exercise log, one session per row.
// An empty burn value counts as 0.
func LoadExercises(source string, r io.Reader) ([]ExerciseSession, error) {
	var rows []exerciseRow
	if err := readTable(source, r, &rows, ColumnExerciseDay, ColumnExerciseBurned); err != nil {
		return nil, err
	}

	sessions := make([]ExerciseSession, 0, len(rows))
	for i, row := range rows {
		day, err := parseDate(row.Day)
		if err != nil {
			return nil, &MalformedInputError{Source: source, Column: ColumnExerciseDay, Row: i + 1, Err: err}
		}
		burned, err := parseNumber(row.Burned, 0)
		if err != nil {
			return nil, &MalformedInputError{Source: source, Column: ColumnExerciseBurned, Row: i + 1, Err: err}
		}
		sessions = append(sessions, ExerciseSession{Day: day, CaloriesBurned: burned})
	}

	return sessions, nil
}

func LoadIntakeFile(path string) ([]DailyIntake, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open intake log: %w", err)
	}
	defer f.Close()
	return LoadIntake(path, f)
}

func LoadExercisesFile(path string) ([]ExerciseSession, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open exercise log: %w", err)
	}
	defer f.Close()
	return LoadExercises(path, f)
}

// readTable checks the header for the required columns before handing the
// table to gocsv, which would otherwise silently leave missing columns empty.
func readTable(source string, r io.Reader, out any, required ...string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read %s: %w", source, err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	header, err := csv.NewReader(bytes.NewReader(data)).Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &MalformedInputError{Source: source, Column: required[0], Err: errors.New("empty table")}
		}
		return &MalformedInputError{Source: source, Column: required[0], Err: err}
	}

	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[strings.TrimSpace(h)] = true
	}
	for _, col := range required {
		if !present[col] {
			return &MalformedInputError{Source: source, Column: col, Err: errors.New("missing column")}
		}
	}

	if err := gocsv.UnmarshalBytes(data, out); err != nil {
		return &MalformedInputError{Source: source, Column: required[0], Err: err}
	}

	return nil
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errors.New("empty date")
	}
	t, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return Day(t), nil
}

func parseNumber(raw string, empty float64) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return empty, nil
	}
	return strconv.ParseFloat(raw, 64)
}
