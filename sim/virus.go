package sim

import (
	"fmt"
	"math/rand"
)

// VirusParameters define the pathogen being simulated.
type VirusParameters struct {
	R0                  float64 `json:"r0" yaml:"r0"`
	IncubationDays      float64 `json:"incubation_period_days" yaml:"incubation_period_days"`
	InfectiousDays      float64 `json:"infectious_period_days" yaml:"infectious_period_days"`
	HospitalizationRate float64 `json:"hospitalization_rate" yaml:"hospitalization_rate"`
	FatalityRate        float64 `json:"fatality_rate" yaml:"fatality_rate"`
}

// DefaultVirusParameters returns the baseline pathogen used when a request
// names no virus preset.
func DefaultVirusParameters() VirusParameters {
	return VirusParameters{
		R0:                  2.5,
		IncubationDays:      5,
		InfectiousDays:      10,
		HospitalizationRate: 0.05,
		FatalityRate:        0.01,
	}
}

// RandomVirusParameters draws a plausible pathogen from the given RNG.
func RandomVirusParameters(rng *rand.Rand) VirusParameters {
	return VirusParameters{
		R0:                  uniform(rng, 1.5, 4.0),
		IncubationDays:      uniform(rng, 2, 7),
		InfectiousDays:      uniform(rng, 7, 14),
		HospitalizationRate: uniform(rng, 0.03, 0.15),
		FatalityRate:        uniform(rng, 0.005, 0.03),
	}
}

// Validate checks parameter ranges before a simulation starts.
func (v VirusParameters) Validate() error {
	if v.R0 <= 0 {
		return &InvalidInputError{Field: "r0", Reason: fmt.Sprintf("must be > 0, got %g", v.R0)}
	}
	if v.IncubationDays <= 0 {
		return &InvalidInputError{Field: "incubation_period_days", Reason: fmt.Sprintf("must be > 0, got %g", v.IncubationDays)}
	}
	if v.InfectiousDays <= 0 {
		return &InvalidInputError{Field: "infectious_period_days", Reason: fmt.Sprintf("must be > 0, got %g", v.InfectiousDays)}
	}
	if v.HospitalizationRate < 0 || v.HospitalizationRate > 1 {
		return &InvalidInputError{Field: "hospitalization_rate", Reason: fmt.Sprintf("must be in [0,1], got %g", v.HospitalizationRate)}
	}
	if v.FatalityRate < 0 || v.FatalityRate > 1 {
		return &InvalidInputError{Field: "fatality_rate", Reason: fmt.Sprintf("must be in [0,1], got %g", v.FatalityRate)}
	}
	return nil
}

// InterventionParameters are the continuous intervention intensities applied
// for a whole run. All fields are in [0,1]; VaccinationCampaign is a daily
// incremental rate, typically well below 1.
type InterventionParameters struct {
	SocialDistancing    float64 `json:"social_distancing"`
	Masking             float64 `json:"masking"`
	TestingRate         float64 `json:"testing_rate"`
	ContactTracing      float64 `json:"contact_tracing"`
	TravelRestrictions  float64 `json:"travel_restrictions"`
	VaccinationCampaign float64 `json:"vaccination_campaign"`
}

// EffectiveR0 applies intervention discounts to the basic reproduction
// number. The value is fixed for a whole run: policy effect is static for
// one simulation call.
func (v VirusParameters) EffectiveR0(iv InterventionParameters) float64 {
	return v.R0 * (1 -
		0.4*iv.SocialDistancing -
		0.2*iv.Masking -
		0.3*iv.TestingRate*iv.ContactTracing -
		0.1*iv.TravelRestrictions)
}
