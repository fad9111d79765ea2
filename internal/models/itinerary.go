package models

import (
	"fmt"
	"strings"

	"github.com/tripweave/tripweave/internal/normalize"
)

// notProvided is the literal placeholder some extractors emit for fields
// they could not read.
const notProvided = "Not provided"

// MissingFieldError reports a required field absent from a raw record.
// Records failing this way are expected data-quality noise, not defects:
// callers drop the record and continue.
type MissingFieldError struct {
	Record string
	Field  string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s record missing required field %q", e.Record, e.Field)
}

// Location is a point in an itinerary: an airport or city name with the
// local date and time of the movement through it.
type Location struct {
	Name     string `json:"name"`
	Terminal string `json:"terminal,omitempty"`
	Date     string `json:"date"`
	Time     string `json:"time"`
}

// NewLocation builds a Location from a raw record, normalizing the date to
// YYYY-MM-DD. A date in none of the accepted formats fails the owning record.
func NewLocation(rec LocationRecord) (Location, error) {
	date, err := normalize.Date(rec.Date)
	if err != nil {
		return Location{}, err
	}
	return Location{
		Name:     strings.TrimSpace(rec.Location),
		Terminal: strings.TrimSpace(rec.Terminal),
		Date:     date,
		Time:     strings.TrimSpace(rec.Time),
	}, nil
}

// DisplayName renders the location for event descriptions: parenthetical
// suffixes stripped and terminal phrasing normalized.
func (l Location) DisplayName() string {
	return normalize.TerminalPhrase(l.Name, l.Terminal)
}

// BaggageAllowance describes checked and hand baggage entitlements.
type BaggageAllowance struct {
	CheckedBaggage string `json:"checked_baggage,omitempty"`
	HandBaggage    string `json:"hand_baggage,omitempty"`
}

// RoomDetails describes one hotel room on a stay.
type RoomDetails struct {
	RoomType  string   `json:"room_type"`
	BedType   string   `json:"bed_type,omitempty"`
	Size      string   `json:"size,omitempty"`
	Features  []string `json:"features,omitempty"`
	MealPlan  string   `json:"meal_plan,omitempty"`
	Occupancy string   `json:"occupancy,omitempty"`
}

// bedSizeKeywords trigger reclassification of a "room type" value that is
// actually a bed description.
var bedSizeKeywords = []string{"king", "queen", "double", "twin"}

// NewRoomDetails builds RoomDetails from a raw record. A room type that
// names a bed size is reclassified as the bed type, with the room type
// defaulting to "Standard Room".
func NewRoomDetails(rec RoomRecord) RoomDetails {
	roomType := strings.TrimSpace(rec.RoomType)
	bedType := strings.TrimSpace(rec.BedType)

	lower := strings.ToLower(roomType)
	for _, kw := range bedSizeKeywords {
		if strings.Contains(lower, kw) {
			bedType = roomType
			roomType = "Standard Room"
			break
		}
	}

	return RoomDetails{
		RoomType:  roomType,
		BedType:   bedType,
		Size:      strings.TrimSpace(rec.Size),
		Features:  rec.Features,
		MealPlan:  strings.TrimSpace(rec.MealPlan),
		Occupancy: strings.TrimSpace(rec.Occupancy),
	}
}

// Flight is one deduplicated flight segment.
type Flight struct {
	FlightNumber     string            `json:"flight_number"`
	Operator         string            `json:"operator"`
	Departure        Location          `json:"departure"`
	Arrival          Location          `json:"arrival"`
	TravelClass      string            `json:"travel_class"`
	BaggageAllowance *BaggageAllowance `json:"baggage_allowance,omitempty"`
	Passengers       []Passenger       `json:"passengers,omitempty"`
}

// NewFlight builds a Flight from a raw record. Records missing a flight
// number or operator, or carrying unparseable dates, are invalid and the
// returned error tells the caller to drop them.
func NewFlight(rec FlightRecord) (*Flight, error) {
	number := strings.TrimSpace(rec.FlightNumber)
	if number == "" {
		return nil, &MissingFieldError{Record: "flight", Field: "flight_number"}
	}
	operator := strings.TrimSpace(rec.Operator)
	if operator == "" {
		return nil, &MissingFieldError{Record: "flight", Field: "operator"}
	}

	departure, err := NewLocation(rec.Departure)
	if err != nil {
		return nil, fmt.Errorf("flight %s departure: %w", number, err)
	}
	arrival, err := NewLocation(rec.Arrival)
	if err != nil {
		return nil, fmt.Errorf("flight %s arrival: %w", number, err)
	}

	class := strings.TrimSpace(rec.TravelClass)
	if class == "" {
		class = "Economy"
	}

	flight := &Flight{
		FlightNumber: number,
		Operator:     operator,
		Departure:    departure,
		Arrival:      arrival,
		TravelClass:  class,
	}
	if rec.BaggageAllowance != nil {
		flight.BaggageAllowance = &BaggageAllowance{
			CheckedBaggage: strings.TrimSpace(rec.BaggageAllowance.CheckedBaggage),
			HandBaggage:    strings.TrimSpace(rec.BaggageAllowance.HandBaggage),
		}
	}
	return flight, nil
}

// Key is the flight identity used for deduplication: two records with the
// same flight number departing at the same date and time are the same flight.
func (f *Flight) Key() string {
	return f.FlightNumber + "|" + f.Departure.Date + "|" + f.Departure.Time
}

// Hotel is one deduplicated hotel stay.
type Hotel struct {
	Name             string        `json:"name"`
	City             string        `json:"city"`
	CheckInDate      string        `json:"check_in_date"`
	CheckOutDate     string        `json:"check_out_date"`
	Rooms            []RoomDetails `json:"rooms,omitempty"`
	BookingReference string        `json:"booking_reference,omitempty"`
	Address          string        `json:"address,omitempty"`
}

// NewHotel builds a Hotel from a raw record. The name is truncated at the
// first comma; records with an empty or placeholder name or city, or with
// unparseable dates, are invalid and dropped by the caller.
func NewHotel(rec HotelRecord) (*Hotel, error) {
	name := normalize.HotelName(rec.Name)
	if name == "" || name == notProvided {
		return nil, &MissingFieldError{Record: "hotel", Field: "name"}
	}
	city := strings.TrimSpace(rec.City)
	if city == "" || city == notProvided {
		return nil, &MissingFieldError{Record: "hotel", Field: "city"}
	}

	checkIn, err := normalize.Date(rec.CheckInDate)
	if err != nil {
		return nil, fmt.Errorf("hotel %s check-in: %w", name, err)
	}
	checkOut, err := normalize.Date(rec.CheckOutDate)
	if err != nil {
		return nil, fmt.Errorf("hotel %s check-out: %w", name, err)
	}

	rooms := make([]RoomDetails, 0, len(rec.Rooms))
	for _, room := range rec.Rooms {
		rooms = append(rooms, NewRoomDetails(room))
	}

	return &Hotel{
		Name:             name,
		City:             city,
		CheckInDate:      checkIn,
		CheckOutDate:     checkOut,
		Rooms:            rooms,
		BookingReference: strings.TrimSpace(rec.BookingReference),
		Address:          strings.TrimSpace(rec.Address),
	}, nil
}

// Key is the hotel-stay identity used for deduplication.
func (h *Hotel) Key() string {
	return h.Name + "|" + h.City + "|" + h.CheckInDate + "|" + h.CheckOutDate
}

// Passenger is one traveller on the itinerary.
type Passenger struct {
	Title         string `json:"title"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	FrequentFlyer string `json:"frequent_flyer,omitempty"`
}

// NewPassenger builds a Passenger from a raw record, upper-casing the title
// and last name. A record naming nobody at all is invalid.
func NewPassenger(rec PassengerRecord) (*Passenger, error) {
	first := normalize.PersonName(rec.FirstName)
	last := strings.ToUpper(strings.TrimSpace(rec.LastName))
	if first == "" && last == "" {
		return nil, &MissingFieldError{Record: "passenger", Field: "name"}
	}

	return &Passenger{
		Title:         strings.ToUpper(strings.TrimSpace(rec.Title)),
		FirstName:     first,
		LastName:      last,
		FrequentFlyer: strings.TrimSpace(rec.FrequentFlyer),
	}, nil
}

// Key is the full identity triple used for set operations: the upper-cased
// (title, first name, last name).
func (p *Passenger) Key() string {
	return strings.ToUpper(p.Title) + "|" + strings.ToUpper(p.FirstName) + "|" + strings.ToUpper(p.LastName)
}

// MergeKey is the looser identity used when merging records across source
// documents: only the first token of the first name participates, so that
// "Peter" and "Peter James" collapse to the same person.
func (p *Passenger) MergeKey() string {
	return strings.ToLower(p.Title) + "|" + strings.ToLower(normalize.FirstToken(p.FirstName)) + "|" + strings.ToLower(p.LastName)
}
