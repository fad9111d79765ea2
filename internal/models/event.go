package models

// TravelEvent is a derived timeline entry. Events are never supplied by
// input; the timeline builder computes them from flights and hotel stays.
type TravelEvent struct {
	Type        EventType `json:"event_type"`
	StartDate   string    `json:"start_date"` // YYYY-MM-DD
	StartTime   string    `json:"start_time"` // HH:MM
	Description string    `json:"description"`
}

// EventType classifies derived travel events.
type EventType string

const (
	EventFlightCheckin   EventType = "flight_checkin"
	EventFlightDeparture EventType = "flight_departure"
	EventFlightArrival   EventType = "flight_arrival"
	EventHotelCheckin    EventType = "hotel_checkin"
	EventHotelCheckout   EventType = "hotel_checkout"
)

// eventPriority breaks ties between events landing on the same minute, so
// a flight's check-in always precedes its own departure.
var eventPriority = map[EventType]int{
	EventFlightCheckin:   0,
	EventFlightDeparture: 1,
	EventFlightArrival:   2,
	EventHotelCheckin:    3,
	EventHotelCheckout:   4,
}

// Priority returns the tie-break rank for same-minute ordering. Unknown
// types sort last.
func (t EventType) Priority() int {
	if p, ok := eventPriority[t]; ok {
		return p
	}
	return len(eventPriority)
}

// Before reports whether e precedes other in the total timeline order:
// by date, then time, then type priority.
func (e TravelEvent) Before(other TravelEvent) bool {
	if e.StartDate != other.StartDate {
		return e.StartDate < other.StartDate
	}
	if e.StartTime != other.StartTime {
		return e.StartTime < other.StartTime
	}
	return e.Type.Priority() < other.Type.Priority()
}
