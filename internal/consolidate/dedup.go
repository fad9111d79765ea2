package consolidate

import (
	"sort"
	"strings"

	"github.com/tripweave/tripweave/internal/models"
)

// MergeStrategy decides whether a newly observed first name should replace
// the one currently held for a passenger merge key. The default prefers the
// longest variant seen, a best-effort heuristic with no ground truth.
type MergeStrategy func(current, candidate string) bool

// LongestNameWins replaces the stored first name only when the candidate is
// strictly longer, so "Peter James" supersedes "Peter" but not vice versa.
func LongestNameWins(current, candidate string) bool {
	return len(candidate) > len(current)
}

// Stats counts deduplication outcomes for one entity kind.
type Stats struct {
	Processed  int `json:"processed"`
	Duplicates int `json:"duplicates"`
	Unique     int `json:"unique"`
}

// Deduplicator collapses records describing the same real-world flight,
// hotel stay, or passenger observed across multiple source documents. All
// state is owned by one consolidation run and discarded afterwards; nothing
// is shared across calls.
type Deduplicator struct {
	seenFlights map[string]bool
	flights     []models.Flight

	seenHotels map[string]bool
	hotels     []models.Hotel

	longestFirst map[string]string
	passengers   map[string]models.Passenger
	merge        MergeStrategy

	FlightStats    Stats
	HotelStats     Stats
	PassengerStats Stats
}

// NewDeduplicator constructs a Deduplicator with fresh state. A nil
// strategy falls back to LongestNameWins.
func NewDeduplicator(strategy MergeStrategy) *Deduplicator {
	if strategy == nil {
		strategy = LongestNameWins
	}
	return &Deduplicator{
		seenFlights:  make(map[string]bool),
		seenHotels:   make(map[string]bool),
		longestFirst: make(map[string]string),
		passengers:   make(map[string]models.Passenger),
		merge:        strategy,
	}
}

// AddFlight records a flight; later duplicates of the same identity key are
// dropped unconditionally, preserving the first-seen instance.
func (d *Deduplicator) AddFlight(f models.Flight) {
	d.FlightStats.Processed++
	key := f.Key()
	if d.seenFlights[key] {
		d.FlightStats.Duplicates++
		return
	}
	d.seenFlights[key] = true
	d.flights = append(d.flights, f)
	d.FlightStats.Unique++
}

// AddHotel records a hotel stay with the same first-write-wins semantics
// as flights.
func (d *Deduplicator) AddHotel(h models.Hotel) {
	d.HotelStats.Processed++
	key := h.Key()
	if d.seenHotels[key] {
		d.HotelStats.Duplicates++
		return
	}
	d.seenHotels[key] = true
	d.hotels = append(d.hotels, h)
	d.HotelStats.Unique++
}

// AddPassenger merges a passenger record. Unlike flights and hotels, later
// records can improve on earlier ones: when a record carries a strictly
// better first name for an already known person, it replaces the stored
// instance wholesale.
func (d *Deduplicator) AddPassenger(p models.Passenger) {
	d.PassengerStats.Processed++
	key := p.MergeKey()

	current, seen := d.longestFirst[key]
	if !seen {
		d.longestFirst[key] = p.FirstName
		d.passengers[key] = p
		d.PassengerStats.Unique++
		return
	}

	d.PassengerStats.Duplicates++
	if d.merge(current, p.FirstName) {
		d.longestFirst[key] = p.FirstName
		d.passengers[key] = p
	}
}

// Flights returns the deduplicated flights in first-seen order.
func (d *Deduplicator) Flights() []models.Flight {
	out := make([]models.Flight, len(d.flights))
	copy(out, d.flights)
	return out
}

// Hotels returns the deduplicated hotel stays in first-seen order.
func (d *Deduplicator) Hotels() []models.Hotel {
	out := make([]models.Hotel, len(d.hotels))
	copy(out, d.hotels)
	return out
}

// Passengers returns the merged passengers sorted case-insensitively by
// last then first name.
func (d *Deduplicator) Passengers() []models.Passenger {
	out := make([]models.Passenger, 0, len(d.passengers))
	for _, p := range d.passengers {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		li, lj := strings.ToLower(out[i].LastName), strings.ToLower(out[j].LastName)
		if li != lj {
			return li < lj
		}
		return strings.ToLower(out[i].FirstName) < strings.ToLower(out[j].FirstName)
	})
	return out
}
