package consolidate

import (
	"sort"

	"log/slog"

	"github.com/tripweave/tripweave/internal/models"
	"github.com/tripweave/tripweave/internal/timeline"
)

// DroppedRecord notes one raw record discarded during consolidation.
// Dropping is expected with noisy extraction output; the notes let callers
// surface data-quality information without treating it as failure.
type DroppedRecord struct {
	Kind   string `json:"kind"`
	Reason string `json:"reason"`
}

// Timeline pairs the ordered derived events with any transfer warnings.
type Timeline struct {
	Events   []models.TravelEvent `json:"events"`
	Warnings []string             `json:"warnings"`
}

// Result is the consolidated output handed to the presentation layer.
type Result struct {
	Flights    []models.Flight    `json:"flights"`
	Hotels     []models.Hotel     `json:"hotels"`
	Passengers []models.Passenger `json:"passengers"`
	Timeline   Timeline           `json:"timeline"`
	Validation Validation         `json:"validation"`
	Dropped    []DroppedRecord    `json:"dropped,omitempty"`
}

// Consolidator turns raw per-document extraction records into one
// deduplicated, validated model with a derived timeline. It holds no state
// between runs; each Consolidate call owns its entire working set.
type Consolidator struct {
	logger  *slog.Logger
	builder *timeline.Builder
	merge   MergeStrategy
}

// New constructs a Consolidator. A nil strategy selects the default
// longest-first-name-wins passenger merge.
func New(logger *slog.Logger, strategy MergeStrategy) *Consolidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Consolidator{
		logger:  logger,
		builder: timeline.NewBuilder(logger),
		merge:   strategy,
	}
}

// Consolidate runs the full pipeline: normalize each raw record, drop the
// invalid ones, deduplicate, derive the timeline, and validate. Documents
// are processed in submission order so first-write-wins deduplication is
// reproducible.
func (c *Consolidator) Consolidate(docs []models.DocumentExtract) *Result {
	dedup := NewDeduplicator(c.merge)
	dropped := []DroppedRecord{}

	for _, doc := range docs {
		for _, rec := range doc.Flights {
			flight, err := models.NewFlight(rec)
			if err != nil {
				c.logger.Debug("dropping flight record", "reason", err)
				dropped = append(dropped, DroppedRecord{Kind: "flight", Reason: err.Error()})
				continue
			}
			dedup.AddFlight(*flight)
		}

		for _, rec := range doc.Hotels {
			hotel, err := models.NewHotel(rec)
			if err != nil {
				c.logger.Debug("dropping hotel record", "reason", err)
				dropped = append(dropped, DroppedRecord{Kind: "hotel", Reason: err.Error()})
				continue
			}
			dedup.AddHotel(*hotel)
		}

		for _, rec := range doc.Passengers {
			passenger, err := models.NewPassenger(rec)
			if err != nil {
				c.logger.Debug("dropping passenger record", "reason", err)
				dropped = append(dropped, DroppedRecord{Kind: "passenger", Reason: err.Error()})
				continue
			}
			dedup.AddPassenger(*passenger)
		}
	}

	flights := dedup.Flights()
	sort.SliceStable(flights, func(i, j int) bool {
		if flights[i].Departure.Date != flights[j].Departure.Date {
			return flights[i].Departure.Date < flights[j].Departure.Date
		}
		return flights[i].Departure.Time < flights[j].Departure.Time
	})

	hotels := dedup.Hotels()
	sort.SliceStable(hotels, func(i, j int) bool {
		return hotels[i].CheckInDate < hotels[j].CheckInDate
	})

	passengers := dedup.Passengers()

	events, warnings := c.builder.Build(flights, hotels)

	c.logger.Info("consolidation complete",
		"flights", len(flights),
		"hotels", len(hotels),
		"passengers", len(passengers),
		"events", len(events),
		"warnings", len(warnings),
		"dropped", len(dropped))

	return &Result{
		Flights:    flights,
		Hotels:     hotels,
		Passengers: passengers,
		Timeline:   Timeline{Events: events, Warnings: warnings},
		Validation: Validate(flights, hotels, passengers),
		Dropped:    dropped,
	}
}
