// Package dataset reads the raw passenger CSV and turns it into cleaned
// PassengerRecords ready for bulk insertion.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"titanic-service/internal/models"
)

// Header columns expected in the source file.
const (
	ColPassengerID = "PassengerId"
	ColName        = "Name"
	ColSex         = "Sex"
	ColAge         = "Age"
	ColSurvived    = "Survived"
	ColPclass      = "Pclass"
	ColSibSp       = "SibSp"
	ColParch       = "Parch"
	ColTicket      = "Ticket"
	ColFare        = "Fare"
	ColEmbarked    = "Embarked"
)

// RequiredHeaders lists every column the source file must provide.
var RequiredHeaders = []string{
	ColPassengerID, ColName, ColSex, ColAge, ColSurvived, ColPclass,
	ColSibSp, ColParch, ColTicket, ColFare, ColEmbarked,
}

// ErrMissingHeader is returned when the source file lacks a required column.
var ErrMissingHeader = errors.New("missing required header")

// Ingest opens the CSV at path and returns its cleaned rows in file order.
func Ingest(path string) ([]models.PassengerRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open passenger file %s: %w", path, err)
	}
	defer file.Close()

	records, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("failed to ingest passenger file %s: %w", path, err)
	}
	log.Printf("Ingested %d passenger records from %s", len(records), path)
	return records, nil
}

// Parse reads CSV rows from r and cleans them.
func Parse(r io.Reader) ([]models.PassengerRecord, error) {
	reader := csv.NewReader(r)
	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: file is empty", ErrMissingHeader)
		}
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.TrimSpace(h)] = i
	}
	for _, h := range RequiredHeaders {
		if _, ok := index[h]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingHeader, h)
		}
	}

	var (
		records []models.PassengerRecord
		ages    []ageValue
	)
	line := 1
	for {
		row, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read row %d: %w", line+1, err)
		}
		line++

		field := func(name string) string {
			i := index[name]
			if i < len(row) {
				return strings.TrimSpace(row[i])
			}
			return ""
		}

		rec, err := cleanRow(field)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		records = append(records, rec)
		ages = append(ages, parseAge(field(ColAge), rec.PassengerID))
	}

	applyAges(records, ages)
	return records, nil
}

func cleanRow(field func(string) string) (models.PassengerRecord, error) {
	var rec models.PassengerRecord
	var err error

	if rec.PassengerID, err = requiredInt(field, ColPassengerID); err != nil {
		return rec, err
	}
	survived, err := requiredInt(field, ColSurvived)
	if err != nil {
		return rec, err
	}
	if survived != 0 && survived != 1 {
		return rec, fmt.Errorf("invalid %s value %d: must be 0 or 1", ColSurvived, survived)
	}
	rec.Survived = survived == 1
	if rec.ClassID, err = requiredInt(field, ColPclass); err != nil {
		return rec, err
	}
	if rec.SiblingsSpouses, err = requiredInt(field, ColSibSp); err != nil {
		return rec, err
	}
	if rec.ParentsChildren, err = requiredInt(field, ColParch); err != nil {
		return rec, err
	}

	rec.Name = field(ColName)
	rec.Ticket = field(ColTicket)
	rec.Sex = EncodeSex(field(ColSex))
	if rec.Sex == nil {
		log.Printf("Warning: passenger %d has unrecognized sex %q, leaving it unencoded", rec.PassengerID, field(ColSex))
	}
	rec.Fare = parseFare(field(ColFare), rec.PassengerID)
	if port := field(ColEmbarked); port != "" {
		rec.EmbarkPort = &port
	}
	return rec, nil
}

// EncodeSex maps "male" to 0 and "female" to 1. Any other value yields nil.
func EncodeSex(raw string) *int {
	var code int
	switch raw {
	case "male":
		code = models.SexMale
	case "female":
		code = models.SexFemale
	default:
		return nil
	}
	return &code
}

// RoundFare rounds a fare to two decimal places, halves away from zero.
func RoundFare(f float64) float64 {
	return math.Round(f*100) / 100
}

func parseFare(raw string, id int) *float64 {
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("Warning: passenger %d has unparseable fare %q, leaving it empty", id, raw)
		return nil
	}
	f = RoundFare(f)
	return &f
}

func requiredInt(field func(string) string, name string) (int, error) {
	raw := field(name)
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, raw, err)
	}
	return v, nil
}

type ageValue struct {
	value float64
	ok    bool
}

func parseAge(raw string, id int) ageValue {
	if raw == "" {
		return ageValue{}
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("Warning: passenger %d has unparseable age %q, leaving it empty", id, raw)
		return ageValue{}
	}
	return ageValue{value: f, ok: true}
}

// applyAges casts the age column to whole numbers. The cast is all or
// nothing: if any age is missing or unparseable the column keeps its parsed
// values unmodified.
func applyAges(records []models.PassengerRecord, ages []ageValue) {
	castable := true
	for _, a := range ages {
		if !a.ok {
			castable = false
			break
		}
	}
	if !castable {
		log.Printf("Age column has missing or unparseable values, skipping integer cast")
	}
	for i, a := range ages {
		if !a.ok {
			continue
		}
		v := a.value
		if castable {
			v = math.Trunc(v)
		}
		records[i].Age = &v
	}
}
