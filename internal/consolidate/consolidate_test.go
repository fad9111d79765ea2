package consolidate

import (
	"strings"
	"testing"

	"github.com/tripweave/tripweave/internal/models"
)

func newTestConsolidator() *Consolidator {
	return New(nil, nil)
}

// confirmationDoc and boardingPassDoc describe the same trip extracted from
// two different source documents, with partially overlapping detail.
func confirmationDoc() models.DocumentExtract {
	return models.DocumentExtract{
		Flights: []models.FlightRecord{
			{
				FlightNumber: "BA2303",
				Operator:     "British Airways",
				Departure:    models.LocationRecord{Location: "Heathrow", Terminal: "4", Date: "20 Dec 2024", Time: "16:00"},
				Arrival:      models.LocationRecord{Location: "Doha", Date: "21 Dec 2024", Time: "01:40"},
			},
		},
		Hotels: []models.HotelRecord{
			{
				Name:         "Phuket Marriott Resort, Nai Yang Beach",
				City:         "Phuket",
				CheckInDate:  "2024-12-21",
				CheckOutDate: "2024-12-27",
			},
		},
		Passengers: []models.PassengerRecord{
			{Title: "MR", FirstName: "Peter", LastName: "Walker"},
		},
	}
}

func boardingPassDoc() models.DocumentExtract {
	return models.DocumentExtract{
		Flights: []models.FlightRecord{
			{
				FlightNumber:     "BA2303",
				Operator:         "British Airways",
				Departure:        models.LocationRecord{Location: "Heathrow", Terminal: "4", Date: "2024-12-20", Time: "16:00"},
				Arrival:          models.LocationRecord{Location: "Doha", Date: "2024-12-21", Time: "01:40"},
				BaggageAllowance: &models.BaggageRecord{CheckedBaggage: "23kg"},
			},
		},
		Hotels: []models.HotelRecord{
			{
				Name:         "Phuket Marriott Resort",
				City:         "Phuket",
				CheckInDate:  "21 Dec 2024",
				CheckOutDate: "27 Dec 2024",
			},
		},
		Passengers: []models.PassengerRecord{
			{Title: "mr", FirstName: "Peter James", LastName: "WALKER", FrequentFlyer: "BA47630234"},
		},
	}
}

func TestConsolidateEndToEnd(t *testing.T) {
	result := newTestConsolidator().Consolidate([]models.DocumentExtract{confirmationDoc(), boardingPassDoc()})

	if !result.Validation.IsValid {
		t.Fatalf("expected valid result, got errors %v", result.Validation.Errors)
	}

	if len(result.Flights) != 1 {
		t.Fatalf("expected 1 deduplicated flight, got %d", len(result.Flights))
	}
	if len(result.Hotels) != 1 {
		t.Fatalf("expected 1 deduplicated hotel, got %d", len(result.Hotels))
	}
	if result.Hotels[0].Name != "Phuket Marriott Resort" {
		t.Errorf("hotel name = %q, want %q", result.Hotels[0].Name, "Phuket Marriott Resort")
	}

	if len(result.Passengers) != 1 {
		t.Fatalf("expected 1 merged passenger, got %d", len(result.Passengers))
	}
	if result.Passengers[0].FirstName != "Peter James" {
		t.Errorf("merged first name = %q, want %q", result.Passengers[0].FirstName, "Peter James")
	}

	expected := []struct {
		typ  models.EventType
		date string
		time string
	}{
		{models.EventFlightCheckin, "2024-12-20", "14:00"},
		{models.EventFlightDeparture, "2024-12-20", "16:00"},
		{models.EventFlightArrival, "2024-12-21", "01:40"},
		{models.EventHotelCheckin, "2024-12-21", "15:00"},
		{models.EventHotelCheckout, "2024-12-27", "11:00"},
	}

	events := result.Timeline.Events
	if len(events) != len(expected) {
		t.Fatalf("expected %d events, got %d", len(expected), len(events))
	}
	for i, want := range expected {
		if events[i].Type != want.typ || events[i].StartDate != want.date || events[i].StartTime != want.time {
			t.Errorf("event %d = %s %s %s, want %s %s %s",
				i, events[i].Type, events[i].StartDate, events[i].StartTime, want.typ, want.date, want.time)
		}
	}

	if len(result.Timeline.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", result.Timeline.Warnings)
	}
}

func TestConsolidateEmptyInput(t *testing.T) {
	result := newTestConsolidator().Consolidate(nil)

	if result.Validation.IsValid {
		t.Fatal("expected invalid result for empty input")
	}
	if len(result.Validation.Errors) != 1 || result.Validation.Errors[0] != msgNoData {
		t.Errorf("validation errors = %v, want [%q]", result.Validation.Errors, msgNoData)
	}
	if len(result.Flights) != 0 || len(result.Hotels) != 0 || len(result.Passengers) != 0 {
		t.Error("empty input should produce empty entity lists")
	}
}

func TestConsolidateDropsInvalidRecords(t *testing.T) {
	doc := confirmationDoc()
	doc.Flights = append(doc.Flights, models.FlightRecord{
		// Missing flight number: expected extraction noise.
		Operator:  "Qatar Airways",
		Departure: models.LocationRecord{Location: "Doha", Date: "2024-12-21", Time: "08:00"},
		Arrival:   models.LocationRecord{Location: "Phuket", Date: "2024-12-21", Time: "19:00"},
	})
	doc.Hotels = append(doc.Hotels, models.HotelRecord{
		Name: "Not provided", City: "Phuket", CheckInDate: "2024-12-21", CheckOutDate: "2024-12-27",
	})
	doc.Flights = append(doc.Flights, models.FlightRecord{
		FlightNumber: "QR840",
		Operator:     "Qatar Airways",
		Departure:    models.LocationRecord{Location: "Doha", Date: "sometime in December", Time: "08:00"},
		Arrival:      models.LocationRecord{Location: "Phuket", Date: "2024-12-21", Time: "19:00"},
	})

	result := newTestConsolidator().Consolidate([]models.DocumentExtract{doc})

	if !result.Validation.IsValid {
		t.Fatalf("remaining records should still consolidate, got errors %v", result.Validation.Errors)
	}
	if len(result.Flights) != 1 {
		t.Errorf("expected 1 surviving flight, got %d", len(result.Flights))
	}
	if len(result.Dropped) != 3 {
		t.Fatalf("expected 3 dropped records, got %d: %v", len(result.Dropped), result.Dropped)
	}

	var dateDropSeen bool
	for _, d := range result.Dropped {
		if d.Kind == "flight" && strings.Contains(d.Reason, "sometime in December") {
			dateDropSeen = true
		}
	}
	if !dateDropSeen {
		t.Errorf("dropped records should name the offending date input: %v", result.Dropped)
	}
}

func TestConsolidateSortsOutputs(t *testing.T) {
	docs := []models.DocumentExtract{
		{
			Flights: []models.FlightRecord{
				{
					FlightNumber: "QR840",
					Operator:     "Qatar Airways",
					Departure:    models.LocationRecord{Location: "Doha", Date: "2024-12-21", Time: "08:00"},
					Arrival:      models.LocationRecord{Location: "Phuket", Date: "2024-12-21", Time: "19:00"},
				},
				{
					FlightNumber: "BA2303",
					Operator:     "British Airways",
					Departure:    models.LocationRecord{Location: "Heathrow", Date: "2024-12-20", Time: "16:00"},
					Arrival:      models.LocationRecord{Location: "Doha", Date: "2024-12-21", Time: "01:40"},
				},
			},
			Hotels: []models.HotelRecord{
				{Name: "Beach Resort", City: "Phuket", CheckInDate: "2024-12-24", CheckOutDate: "2024-12-27"},
				{Name: "City Hotel", City: "Bangkok", CheckInDate: "2024-12-21", CheckOutDate: "2024-12-24"},
			},
			Passengers: []models.PassengerRecord{
				{Title: "MR", FirstName: "Peter", LastName: "Walker"},
				{Title: "MS", FirstName: "Amelia", LastName: "Brown"},
			},
		},
	}

	result := newTestConsolidator().Consolidate(docs)

	if result.Flights[0].FlightNumber != "BA2303" {
		t.Errorf("flights should sort by departure date/time, first = %s", result.Flights[0].FlightNumber)
	}
	if result.Hotels[0].Name != "City Hotel" {
		t.Errorf("hotels should sort by check-in date, first = %s", result.Hotels[0].Name)
	}
	if result.Passengers[0].LastName != "BROWN" {
		t.Errorf("passengers should sort by last name, first = %s", result.Passengers[0].LastName)
	}
}
