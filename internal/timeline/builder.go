package timeline

import (
	"fmt"
	"sort"
	"time"

	"log/slog"

	"github.com/tripweave/tripweave/internal/models"
	"github.com/tripweave/tripweave/internal/normalize"
)

const (
	// checkinLead is how long before departure airport check-in opens.
	checkinLead = 2 * time.Hour

	// minConnectionMinutes is the minimum safe gap between a flight's
	// arrival and the next flight's departure.
	minConnectionMinutes = 90

	// Standard hotel check-in and check-out times.
	hotelCheckinTime  = "15:00"
	hotelCheckoutTime = "11:00"
)

// Builder derives a chronologically ordered timeline of travel events from
// deduplicated flights and hotel stays.
type Builder struct {
	logger *slog.Logger
}

// NewBuilder constructs a Builder.
func NewBuilder(logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{logger: logger}
}

// taggedEvent carries the owning flight alongside a TravelEvent so the
// transfer scan can tell connections apart. Hotel events leave it empty.
type taggedEvent struct {
	models.TravelEvent
	flightKey    string
	flightNumber string
}

// Build produces the merged, sorted event list and any transfer-time
// warnings. It never removes or reorders input data; warnings are additive.
func (b *Builder) Build(flights []models.Flight, hotels []models.Hotel) ([]models.TravelEvent, []string) {
	tagged := make([]taggedEvent, 0, len(flights)*3+len(hotels)*2)

	for i := range flights {
		tagged = append(tagged, b.flightEvents(&flights[i])...)
	}
	for i := range hotels {
		tagged = append(tagged, hotelEvents(&hotels[i])...)
	}

	sort.SliceStable(tagged, func(i, j int) bool {
		return tagged[i].TravelEvent.Before(tagged[j].TravelEvent)
	})

	warnings := b.transferWarnings(tagged)

	events := make([]models.TravelEvent, len(tagged))
	for i, ev := range tagged {
		events[i] = ev.TravelEvent
	}
	return events, warnings
}

// flightEvents derives the three events every flight produces: check-in,
// departure and arrival.
func (b *Builder) flightEvents(f *models.Flight) []taggedEvent {
	checkinDate, checkinTime := b.checkinStart(f)

	dep := f.Departure.DisplayName()
	arr := f.Arrival.DisplayName()

	return []taggedEvent{
		{
			TravelEvent: models.TravelEvent{
				Type:        models.EventFlightCheckin,
				StartDate:   checkinDate,
				StartTime:   checkinTime,
				Description: fmt.Sprintf("Check in for flight %s at %s", f.FlightNumber, dep),
			},
			flightKey:    f.Key(),
			flightNumber: f.FlightNumber,
		},
		{
			TravelEvent: models.TravelEvent{
				Type:        models.EventFlightDeparture,
				StartDate:   f.Departure.Date,
				StartTime:   f.Departure.Time,
				Description: fmt.Sprintf("Flight %s departs %s → %s", f.FlightNumber, dep, arr),
			},
			flightKey:    f.Key(),
			flightNumber: f.FlightNumber,
		},
		{
			TravelEvent: models.TravelEvent{
				Type:        models.EventFlightArrival,
				StartDate:   f.Arrival.Date,
				StartTime:   f.Arrival.Time,
				Description: fmt.Sprintf("Flight %s arrives at %s", f.FlightNumber, arr),
			},
			flightKey:    f.Key(),
			flightNumber: f.FlightNumber,
		},
	}
}

// checkinStart computes the check-in slot two hours before departure,
// rolling the date back a day when the subtraction crosses midnight. An
// unparseable departure time degrades to 00:00 on the departure date
// rather than aborting the whole timeline.
func (b *Builder) checkinStart(f *models.Flight) (string, string) {
	clock, err := time.Parse(normalize.ClockLayout, f.Departure.Time)
	if err != nil {
		b.logger.Warn("unparseable departure time, check-in defaults to midnight",
			"flight", f.FlightNumber,
			"time", f.Departure.Time)
		return f.Departure.Date, "00:00"
	}

	day, err := time.Parse(normalize.ISODate, f.Departure.Date)
	if err != nil {
		// Departure dates are normalized at construction; reaching here
		// means a caller bypassed the constructors.
		b.logger.Warn("unparseable departure date, check-in defaults to midnight",
			"flight", f.FlightNumber,
			"date", f.Departure.Date)
		return f.Departure.Date, "00:00"
	}

	departure := time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, time.UTC)
	checkin := departure.Add(-checkinLead)
	return checkin.Format(normalize.ISODate), checkin.Format(normalize.ClockLayout)
}

// hotelEvents derives the two events every stay produces, at the standard
// check-in and check-out times.
func hotelEvents(h *models.Hotel) []taggedEvent {
	return []taggedEvent{
		{
			TravelEvent: models.TravelEvent{
				Type:        models.EventHotelCheckin,
				StartDate:   h.CheckInDate,
				StartTime:   hotelCheckinTime,
				Description: fmt.Sprintf("Check in at %s", h.Name),
			},
		},
		{
			TravelEvent: models.TravelEvent{
				Type:        models.EventHotelCheckout,
				StartDate:   h.CheckOutDate,
				StartTime:   hotelCheckoutTime,
				Description: fmt.Sprintf("Check out from %s", h.Name),
			},
		},
	}
}

// transferWarnings walks the sorted event list and flags connections that
// are implausibly short or logically impossible. Only the first departure
// following each arrival is inspected; multi-leg days with several
// connections are not validated pairwise.
func (b *Builder) transferWarnings(events []taggedEvent) []string {
	warnings := []string{}

	for i, ev := range events {
		if ev.Type != models.EventFlightArrival {
			continue
		}

		for j := i + 1; j < len(events); j++ {
			next := events[j]
			if next.Type != models.EventFlightDeparture || next.flightKey == ev.flightKey {
				continue
			}

			if hasThirdFlightCheckin(events[i+1:j], ev.flightKey, next.flightKey) {
				break
			}

			arrivalAt, okArr := eventInstant(ev.TravelEvent)
			if !okArr {
				break
			}

			if departAt, okDep := eventInstant(next.TravelEvent); okDep {
				gap := int(departAt.Sub(arrivalAt).Minutes())
				if gap < minConnectionMinutes {
					warnings = append(warnings, fmt.Sprintf(
						"⚠️ Short transfer: only %d minutes between flight %s arrival and flight %s departure (minimum %d minutes recommended)",
						gap, ev.flightNumber, next.flightNumber, minConnectionMinutes))
				}
			} else if checkinAt, ok := checkinInstant(events, next.flightKey); ok && checkinAt.Before(arrivalAt) {
				// The departure time was unparseable, so its check-in fell
				// back to midnight; a check-in before the inbound arrival
				// is a logically impossible itinerary.
				warnings = append(warnings, fmt.Sprintf(
					"⚠️ Impossible connection: check-in for flight %s opens before flight %s has arrived",
					next.flightNumber, ev.flightNumber))
			}
			break
		}
	}

	return warnings
}

// hasThirdFlightCheckin reports whether any check-in between an arrival and
// the candidate departure belongs to a flight other than the two involved.
func hasThirdFlightCheckin(between []taggedEvent, arrivalKey, departureKey string) bool {
	for _, ev := range between {
		if ev.Type == models.EventFlightCheckin && ev.flightKey != arrivalKey && ev.flightKey != departureKey {
			return true
		}
	}
	return false
}

// checkinInstant locates the check-in event for the given flight.
func checkinInstant(events []taggedEvent, flightKey string) (time.Time, bool) {
	for _, ev := range events {
		if ev.Type == models.EventFlightCheckin && ev.flightKey == flightKey {
			return eventInstant(ev.TravelEvent)
		}
	}
	return time.Time{}, false
}

// eventInstant combines an event's date and time strings into one instant.
func eventInstant(ev models.TravelEvent) (time.Time, bool) {
	t, err := time.Parse(normalize.ISODate+" "+normalize.ClockLayout, ev.StartDate+" "+ev.StartTime)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
