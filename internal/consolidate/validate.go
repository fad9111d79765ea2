package consolidate

import "github.com/tripweave/tripweave/internal/models"

// Validation messages surfaced to callers. These are data-quality signals,
// never errors: consolidation still returns whatever partial data exists.
const (
	msgNoPassengers    = "No valid passenger information found"
	msgNoFlightOrHotel = "No valid flight or hotel information found"
	msgNoData          = "No valid data found in itinerary"
)

// Validation is the non-fatal sanity-check result for a consolidated model.
type Validation struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`
}

// Validate confirms the consolidated model has minimum viable content. A
// model may lack passengers, or have flights without hotels and vice versa;
// only an entirely empty model is reported as having no data at all.
func Validate(flights []models.Flight, hotels []models.Hotel, passengers []models.Passenger) Validation {
	if len(flights) == 0 && len(hotels) == 0 && len(passengers) == 0 {
		return Validation{IsValid: false, Errors: []string{msgNoData}}
	}

	errs := []string{}
	if len(passengers) == 0 {
		errs = append(errs, msgNoPassengers)
	}
	if len(flights) == 0 && len(hotels) == 0 {
		errs = append(errs, msgNoFlightOrHotel)
	}

	return Validation{IsValid: len(errs) == 0, Errors: errs}
}
