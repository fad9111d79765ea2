package models

// DocumentExtract is the typed ingestion boundary: one structure per source
// document, handed off by the document extractor. Fields may be missing,
// dates may arrive in inconsistent formats, and the same entity may appear
// in several documents; the consolidation pipeline is responsible for
// normalizing and deduplicating. Unknown JSON fields are ignored.
type DocumentExtract struct {
	Flights    []FlightRecord    `json:"flights"`
	Hotels     []HotelRecord     `json:"hotels"`
	Passengers []PassengerRecord `json:"passengers"`
}

// FlightRecord is a raw flight as extracted from one document.
type FlightRecord struct {
	FlightNumber     string          `json:"flight_number"`
	Operator         string          `json:"operator"`
	Departure        LocationRecord  `json:"departure"`
	Arrival          LocationRecord  `json:"arrival"`
	TravelClass      string          `json:"travel_class,omitempty"`
	BaggageAllowance *BaggageRecord  `json:"baggage_allowance,omitempty"`
}

// LocationRecord is a raw airport/city reference with its local date and time.
type LocationRecord struct {
	Location string `json:"location"`
	Terminal string `json:"terminal,omitempty"`
	Date     string `json:"date"`
	Time     string `json:"time"`
}

// BaggageRecord is a raw baggage allowance description.
type BaggageRecord struct {
	CheckedBaggage string `json:"checked_baggage,omitempty"`
	HandBaggage    string `json:"hand_baggage,omitempty"`
}

// HotelRecord is a raw hotel stay as extracted from one document.
type HotelRecord struct {
	Name             string       `json:"name"`
	City             string       `json:"city"`
	CheckInDate      string       `json:"check_in_date"`
	CheckOutDate     string       `json:"check_out_date"`
	Rooms            []RoomRecord `json:"rooms,omitempty"`
	BookingReference string       `json:"booking_reference,omitempty"`
	Address          string       `json:"address,omitempty"`
}

// RoomRecord is a raw hotel room description.
type RoomRecord struct {
	RoomType  string   `json:"room_type"`
	BedType   string   `json:"bed_type,omitempty"`
	Size      string   `json:"size,omitempty"`
	Features  []string `json:"features,omitempty"`
	MealPlan  string   `json:"meal_plan,omitempty"`
	Occupancy string   `json:"occupancy,omitempty"`
}

// PassengerRecord is a raw passenger as extracted from one document.
type PassengerRecord struct {
	Title         string `json:"title"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	FrequentFlyer string `json:"frequent_flyer,omitempty"`
}
