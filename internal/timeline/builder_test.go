package timeline

import (
	"strings"
	"testing"

	"github.com/tripweave/tripweave/internal/models"
)

func newTestBuilder() *Builder {
	return NewBuilder(nil)
}

func flight(number, depLoc, depDate, depTime, arrLoc, arrDate, arrTime string) models.Flight {
	return models.Flight{
		FlightNumber: number,
		Operator:     "Test Air",
		Departure:    models.Location{Name: depLoc, Date: depDate, Time: depTime},
		Arrival:      models.Location{Name: arrLoc, Date: arrDate, Time: arrTime},
		TravelClass:  "Economy",
	}
}

func TestBuildFlightProducesThreeEvents(t *testing.T) {
	events, warnings := newTestBuilder().Build(
		[]models.Flight{flight("BA2303", "Heathrow (LHR)", "2024-12-20", "16:00", "Doha", "2024-12-21", "01:40")},
		nil,
	)

	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}

	checkin := events[0]
	if checkin.Type != models.EventFlightCheckin {
		t.Fatalf("first event = %s, want flight_checkin", checkin.Type)
	}
	if checkin.StartDate != "2024-12-20" || checkin.StartTime != "14:00" {
		t.Errorf("check-in at %s %s, want 2024-12-20 14:00", checkin.StartDate, checkin.StartTime)
	}
	if checkin.Description != "Check in for flight BA2303 at Heathrow" {
		t.Errorf("unexpected check-in description %q", checkin.Description)
	}

	if events[1].Type != models.EventFlightDeparture {
		t.Errorf("second event = %s, want flight_departure", events[1].Type)
	}
	if !strings.Contains(events[1].Description, "Heathrow") || !strings.Contains(events[1].Description, "Doha") {
		t.Errorf("departure description should name both ends, got %q", events[1].Description)
	}

	if events[2].Type != models.EventFlightArrival {
		t.Errorf("third event = %s, want flight_arrival", events[2].Type)
	}
}

func TestCheckinMidnightRollover(t *testing.T) {
	events, _ := newTestBuilder().Build(
		[]models.Flight{flight("QR101", "Doha", "2024-12-21", "01:00", "Bangkok", "2024-12-21", "12:00")},
		nil,
	)

	checkin := events[0]
	if checkin.Type != models.EventFlightCheckin {
		t.Fatalf("first event = %s, want flight_checkin", checkin.Type)
	}
	if checkin.StartDate != "2024-12-20" || checkin.StartTime != "23:00" {
		t.Errorf("check-in at %s %s, want 2024-12-20 23:00", checkin.StartDate, checkin.StartTime)
	}
}

func TestCheckinFallbackOnBadDepartureTime(t *testing.T) {
	events, _ := newTestBuilder().Build(
		[]models.Flight{flight("QR101", "Doha", "2024-12-21", "early morning", "Bangkok", "2024-12-21", "12:00")},
		nil,
	)

	var checkin *models.TravelEvent
	for i := range events {
		if events[i].Type == models.EventFlightCheckin {
			checkin = &events[i]
			break
		}
	}
	if checkin == nil {
		t.Fatal("check-in event missing")
	}
	if checkin.StartDate != "2024-12-21" || checkin.StartTime != "00:00" {
		t.Errorf("fallback check-in at %s %s, want 2024-12-21 00:00", checkin.StartDate, checkin.StartTime)
	}
}

func TestHotelEvents(t *testing.T) {
	hotel := models.Hotel{
		Name:         "Phuket Marriott Resort",
		City:         "Phuket",
		CheckInDate:  "2024-12-21",
		CheckOutDate: "2024-12-27",
	}

	events, warnings := newTestBuilder().Build(nil, []models.Hotel{hotel})

	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Type != models.EventHotelCheckin || events[0].StartTime != "15:00" {
		t.Errorf("hotel check-in = %s at %s, want hotel_checkin at 15:00", events[0].Type, events[0].StartTime)
	}
	if events[1].Type != models.EventHotelCheckout || events[1].StartTime != "11:00" {
		t.Errorf("hotel check-out = %s at %s, want hotel_checkout at 11:00", events[1].Type, events[1].StartTime)
	}
	if !strings.Contains(events[0].Description, "Phuket Marriott Resort") {
		t.Errorf("unexpected description %q", events[0].Description)
	}
}

func TestTransferWarningBelowThreshold(t *testing.T) {
	// Arrive 10:00, depart 11:20: an 80 minute connection.
	events, warnings := newTestBuilder().Build([]models.Flight{
		flight("BA100", "Heathrow", "2024-12-20", "06:00", "Frankfurt", "2024-12-20", "10:00"),
		flight("LH200", "Frankfurt", "2024-12-20", "11:20", "Warsaw", "2024-12-20", "13:00"),
	}, nil)

	if len(warnings) != 1 {
		t.Fatalf("expected exactly one warning, got %d: %v", len(warnings), warnings)
	}
	if !strings.Contains(warnings[0], "80 minutes") {
		t.Errorf("warning should mention the 80 minute gap, got %q", warnings[0])
	}
	if !strings.HasPrefix(warnings[0], "⚠️") {
		t.Errorf("warning should carry the warning marker, got %q", warnings[0])
	}
	if len(events) != 6 {
		t.Errorf("warnings must not remove events: got %d, want 6", len(events))
	}
}

func TestTransferGapAtOrAboveThresholdIsQuiet(t *testing.T) {
	// Arrive 10:00, depart 11:35: a 95 minute connection.
	_, warnings := newTestBuilder().Build([]models.Flight{
		flight("BA100", "Heathrow", "2024-12-20", "06:00", "Frankfurt", "2024-12-20", "10:00"),
		flight("LH200", "Frankfurt", "2024-12-20", "11:35", "Warsaw", "2024-12-20", "13:15"),
	}, nil)

	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}
}

func TestImpossibleConnectionWarning(t *testing.T) {
	// The connecting flight's departure time is unparseable, so its
	// check-in falls back to midnight, before the inbound arrival.
	_, warnings := newTestBuilder().Build([]models.Flight{
		flight("BA100", "Heathrow", "2024-12-20", "07:00", "Frankfurt", "2024-12-20", "11:00"),
		flight("LH200", "Frankfurt", "2024-12-20", "TBD", "Warsaw", "2024-12-20", "22:00"),
	}, nil)

	if len(warnings) != 1 {
		t.Fatalf("expected exactly one warning, got %d: %v", len(warnings), warnings)
	}
	if !strings.Contains(warnings[0], "Impossible connection") {
		t.Errorf("unexpected warning %q", warnings[0])
	}
}

func TestTransferScanIgnoresHotels(t *testing.T) {
	hotel := models.Hotel{Name: "Airport Inn", City: "Frankfurt", CheckInDate: "2024-12-20", CheckOutDate: "2024-12-21"}

	_, warnings := newTestBuilder().Build([]models.Flight{
		flight("BA100", "Heathrow", "2024-12-20", "06:00", "Frankfurt", "2024-12-20", "10:00"),
	}, []models.Hotel{hotel})

	if len(warnings) != 0 {
		t.Fatalf("hotel events must not trigger transfer warnings, got %v", warnings)
	}
}

func TestGlobalOrderingAcrossFlightsAndHotels(t *testing.T) {
	hotel := models.Hotel{
		Name:         "Phuket Marriott Resort",
		City:         "Phuket",
		CheckInDate:  "2024-12-21",
		CheckOutDate: "2024-12-27",
	}

	events, _ := newTestBuilder().Build(
		[]models.Flight{flight("BA2303", "Heathrow Terminal 4", "2024-12-20", "16:00", "Doha", "2024-12-21", "01:40")},
		[]models.Hotel{hotel},
	)

	expected := []models.EventType{
		models.EventFlightCheckin,
		models.EventFlightDeparture,
		models.EventFlightArrival,
		models.EventHotelCheckin,
		models.EventHotelCheckout,
	}

	if len(events) != len(expected) {
		t.Fatalf("expected %d events, got %d", len(expected), len(events))
	}
	for i, typ := range expected {
		if events[i].Type != typ {
			t.Errorf("position %d = %s, want %s", i, events[i].Type, typ)
		}
	}
}
