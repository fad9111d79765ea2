package extraction

import (
	"context"
	"regexp"
	"strings"

	"github.com/tripweave/tripweave/internal/models"
)

// MockExtractor provides a rule-based Extractor for tests and offline use.
// It understands a line-oriented labeled format:
//
//	FLIGHT <number> | <operator> | <from> | <date> | <time> | <to> | <date> | <time>
//	HOTEL <name> | <city> | <check-in> | <check-out>
//	PASSENGER <title> | <first name> | <last name> [| <frequent flyer>]
//
// Lines that match no pattern are ignored, mirroring how real extraction
// output is noisy rather than strict.
type MockExtractor struct{}

// NewMockExtractor creates a mock extractor that makes no API calls.
func NewMockExtractor() *MockExtractor {
	return &MockExtractor{}
}

var (
	flightLine    = regexp.MustCompile(`(?m)^FLIGHT\s+(.+)$`)
	hotelLine     = regexp.MustCompile(`(?m)^HOTEL\s+(.+)$`)
	passengerLine = regexp.MustCompile(`(?m)^PASSENGER\s+(.+)$`)
)

// Extract parses the labeled line format into extraction records.
func (m *MockExtractor) Extract(ctx context.Context, document string) (*models.DocumentExtract, error) {
	extract := &models.DocumentExtract{}

	for _, match := range flightLine.FindAllStringSubmatch(document, -1) {
		fields := splitFields(match[1])
		if len(fields) < 8 {
			continue
		}
		extract.Flights = append(extract.Flights, models.FlightRecord{
			FlightNumber: fields[0],
			Operator:     fields[1],
			Departure:    models.LocationRecord{Location: fields[2], Date: fields[3], Time: fields[4]},
			Arrival:      models.LocationRecord{Location: fields[5], Date: fields[6], Time: fields[7]},
		})
	}

	for _, match := range hotelLine.FindAllStringSubmatch(document, -1) {
		fields := splitFields(match[1])
		if len(fields) < 4 {
			continue
		}
		extract.Hotels = append(extract.Hotels, models.HotelRecord{
			Name:         fields[0],
			City:         fields[1],
			CheckInDate:  fields[2],
			CheckOutDate: fields[3],
		})
	}

	for _, match := range passengerLine.FindAllStringSubmatch(document, -1) {
		fields := splitFields(match[1])
		if len(fields) < 3 {
			continue
		}
		rec := models.PassengerRecord{Title: fields[0], FirstName: fields[1], LastName: fields[2]}
		if len(fields) > 3 {
			rec.FrequentFlyer = fields[3]
		}
		extract.Passengers = append(extract.Passengers, rec)
	}

	return extract, nil
}

func splitFields(line string) []string {
	parts := strings.Split(line, "|")
	fields := make([]string, 0, len(parts))
	for _, part := range parts {
		fields = append(fields, strings.TrimSpace(part))
	}
	return fields
}
