package report

import (
	"fmt"
	"strings"

	"github.com/tripweave/tripweave/internal/consolidate"
	"github.com/tripweave/tripweave/internal/models"
)

// Assembler renders a consolidated result into the structured, chronologically
// consistent summary consumed by the presentation layer.
type Assembler struct{}

// NewAssembler constructs an Assembler.
func NewAssembler() *Assembler {
	return &Assembler{}
}

// Render produces the full plain-text summary: passenger roster, timeline
// with warnings surfaced first, overall date range, then flight and hotel
// details.
func (a *Assembler) Render(res *consolidate.Result) string {
	var b strings.Builder

	a.writePassengers(&b, res.Passengers)
	a.writeTimeline(&b, res.Timeline)
	a.writeDateRange(&b, res)
	a.writeFlights(&b, res.Flights)
	a.writeHotels(&b, res.Hotels)

	return b.String()
}

func (a *Assembler) writePassengers(b *strings.Builder, passengers []models.Passenger) {
	if len(passengers) == 0 {
		return
	}

	b.WriteString("Passengers:\n")
	for _, p := range passengers {
		line := fmt.Sprintf("  %s %s %s", p.Title, p.FirstName, p.LastName)
		if p.FrequentFlyer != "" {
			line += fmt.Sprintf(" (Frequent flyer: %s)", p.FrequentFlyer)
		}
		b.WriteString(strings.TrimRight(line, " ") + "\n")
	}
	b.WriteString("\n")
}

func (a *Assembler) writeTimeline(b *strings.Builder, tl consolidate.Timeline) {
	for _, warning := range tl.Warnings {
		b.WriteString(warning + "\n")
	}
	if len(tl.Warnings) > 0 {
		b.WriteString("\n")
	}

	if len(tl.Events) == 0 {
		return
	}

	b.WriteString("Timeline:\n")
	currentDate := ""
	for _, ev := range tl.Events {
		if ev.StartDate != currentDate {
			currentDate = ev.StartDate
			b.WriteString(fmt.Sprintf("  %s\n", currentDate))
		}
		b.WriteString(fmt.Sprintf("    %s  %s\n", ev.StartTime, ev.Description))
	}
	b.WriteString("\n")
}

func (a *Assembler) writeDateRange(b *strings.Builder, res *consolidate.Result) {
	first, last := DateRange(res)
	if first == "" {
		return
	}
	b.WriteString(fmt.Sprintf("Trip dates: %s to %s\n\n", first, last))
}

func (a *Assembler) writeFlights(b *strings.Builder, flights []models.Flight) {
	if len(flights) == 0 {
		return
	}

	b.WriteString("Flights:\n")
	for _, f := range flights {
		b.WriteString(fmt.Sprintf("  %s  %s  %s → %s\n",
			f.FlightNumber, f.Operator, f.Departure.DisplayName(), f.Arrival.DisplayName()))
		b.WriteString(fmt.Sprintf("    Departs %s %s, arrives %s %s (%s)\n",
			f.Departure.Date, f.Departure.Time, f.Arrival.Date, f.Arrival.Time, f.TravelClass))
		if bag := f.BaggageAllowance; bag != nil {
			parts := []string{}
			if bag.CheckedBaggage != "" {
				parts = append(parts, "checked "+bag.CheckedBaggage)
			}
			if bag.HandBaggage != "" {
				parts = append(parts, "hand "+bag.HandBaggage)
			}
			if len(parts) > 0 {
				b.WriteString("    Baggage: " + strings.Join(parts, ", ") + "\n")
			}
		}
	}
	b.WriteString("\n")
}

func (a *Assembler) writeHotels(b *strings.Builder, hotels []models.Hotel) {
	if len(hotels) == 0 {
		return
	}

	b.WriteString("Hotels:\n")
	for _, h := range hotels {
		b.WriteString(fmt.Sprintf("  %s, %s  %s to %s\n", h.Name, h.City, h.CheckInDate, h.CheckOutDate))
		if h.BookingReference != "" {
			b.WriteString(fmt.Sprintf("    Booking reference: %s\n", h.BookingReference))
		}
		if h.Address != "" {
			b.WriteString(fmt.Sprintf("    Address: %s\n", h.Address))
		}
		for i, room := range h.Rooms {
			line := fmt.Sprintf("    Room %d: %s", i+1, room.RoomType)
			if room.BedType != "" {
				line += fmt.Sprintf(" (%s)", room.BedType)
			}
			if room.MealPlan != "" {
				line += fmt.Sprintf(", %s", room.MealPlan)
			}
			b.WriteString(line + "\n")
		}
	}
}

// DateRange returns the earliest and latest dates across all flight
// departures, flight arrivals and hotel stays, as canonical YYYY-MM-DD
// strings. Both are empty when the model holds no dated entities.
func DateRange(res *consolidate.Result) (string, string) {
	first, last := "", ""

	observe := func(date string) {
		if date == "" {
			return
		}
		if first == "" || date < first {
			first = date
		}
		if last == "" || date > last {
			last = date
		}
	}

	for _, f := range res.Flights {
		observe(f.Departure.Date)
		observe(f.Arrival.Date)
	}
	for _, h := range res.Hotels {
		observe(h.CheckInDate)
		observe(h.CheckOutDate)
	}

	return first, last
}
