package places

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ghfreaks/eventlocator/internal/model"
)

// csvColumns is the expected header of a places file.
var csvColumns = []string{"id", "name", "address", "lat", "lon", "look_around"}

// ReadCSV parses places from r. The first row must be the header
// id,name,address,lat,lon,look_around; comma is the field separator.
func ReadCSV(r io.Reader, comma rune) ([]model.Place, error) {
	reader := csv.NewReader(r)
	if comma != 0 {
		reader.Comma = comma
	}
	reader.FieldsPerRecord = len(csvColumns)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("places file is empty")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, col := range csvColumns {
		if !strings.EqualFold(strings.TrimSpace(header[i]), col) {
			return nil, fmt.Errorf("column %d is %q, want %q", i+1, header[i], col)
		}
	}

	var places []model.Place
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}

		line, _ := reader.FieldPos(0)
		place, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		places = append(places, place)
	}

	return places, nil
}

func parseRecord(record []string) (model.Place, error) {
	id := strings.TrimSpace(record[0])
	if id == "" {
		return model.Place{}, errors.New("id is required")
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(record[3]), 64)
	if err != nil || lat < -90 || lat > 90 {
		return model.Place{}, fmt.Errorf("invalid latitude %q", record[3])
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(record[4]), 64)
	if err != nil || lon < -180 || lon > 180 {
		return model.Place{}, fmt.Errorf("invalid longitude %q", record[4])
	}

	return model.Place{
		ID:            id,
		Name:          strings.TrimSpace(record[1]),
		Address:       strings.TrimSpace(record[2]),
		Location:      model.GeoPoint{Lat: lat, Lon: lon},
		PreviewHandle: strings.TrimSpace(record[5]),
	}, nil
}
