package sim

import "fmt"

// InterventionMeasure is one intervention entry of a simulation request, as
// supplied by the service layer. Testing and vaccination measures carry a
// coverage; the rest carry an effectiveness.
type InterventionMeasure struct {
	Type          string  `json:"type"`
	Effectiveness float64 `json:"effectiveness,omitempty"`
	Coverage      float64 `json:"coverage,omitempty"`
}

// HealthcareCapacity describes absolute care resources for a request.
// Unset fields are derived from population in ApplyDefaults.
type HealthcareCapacity struct {
	HospitalBeds int `json:"hospital_beds,omitempty"`
	ICUBeds      int `json:"icu_beds,omitempty"`
	Ventilators  int `json:"ventilators,omitempty"`
}

// SimulationRequest mirrors the JSON request consumed from the service
// layer.
type SimulationRequest struct {
	CityName             string                `json:"city_name"`
	Population           int                   `json:"population"`
	VirusName            string                `json:"virus_name"`
	InitialCases         int                   `json:"initial_cases"`
	RValue               float64               `json:"r_value"`
	InterventionMeasures []InterventionMeasure `json:"intervention_measures"`
	SimulationDays       int                   `json:"simulation_days"`
	HealthcareCapacity   *HealthcareCapacity   `json:"healthcare_capacity,omitempty"`
}

// ApplyDefaults fills unset request fields: 90 simulation days, hospital
// beds at 0.2% of population, ICU beds at 15% of hospital beds, ventilators
// at 80% of ICU beds.
func (r *SimulationRequest) ApplyDefaults() {
	if r.SimulationDays == 0 {
		r.SimulationDays = 90
	}
	if r.HealthcareCapacity == nil {
		r.HealthcareCapacity = &HealthcareCapacity{}
	}
	if r.HealthcareCapacity.HospitalBeds == 0 {
		r.HealthcareCapacity.HospitalBeds = int(float64(r.Population) * 0.002)
	}
	if r.HealthcareCapacity.ICUBeds == 0 {
		r.HealthcareCapacity.ICUBeds = int(float64(r.HealthcareCapacity.HospitalBeds) * 0.15)
	}
	if r.HealthcareCapacity.Ventilators == 0 {
		r.HealthcareCapacity.Ventilators = int(float64(r.HealthcareCapacity.ICUBeds) * 0.8)
	}
}

// Validate rejects malformed requests before any simulation starts.
func (r *SimulationRequest) Validate() error {
	if r.Population <= 0 {
		return &InvalidInputError{Field: "population", Reason: fmt.Sprintf("must be > 0, got %d", r.Population)}
	}
	if r.RValue <= 0 {
		return &InvalidInputError{Field: "r_value", Reason: fmt.Sprintf("must be > 0, got %g", r.RValue)}
	}
	if r.SimulationDays <= 0 {
		return &InvalidInputError{Field: "simulation_days", Reason: fmt.Sprintf("must be > 0, got %d", r.SimulationDays)}
	}
	if r.InitialCases < 0 {
		return &InvalidInputError{Field: "initial_cases", Reason: fmt.Sprintf("must be >= 0, got %d", r.InitialCases)}
	}
	return nil
}

// InterventionParams folds the request's measure list into continuous
// intervention parameters. Unknown measure types are ignored (the measure
// list is free-form at the service boundary, unlike policy decisions).
func (r *SimulationRequest) InterventionParams() InterventionParameters {
	var iv InterventionParameters
	for _, m := range r.InterventionMeasures {
		switch m.Type {
		case "social_distancing":
			iv.SocialDistancing = m.Effectiveness
		case "masking":
			iv.Masking = m.Effectiveness
		case "testing":
			iv.TestingRate = m.Coverage
		case "contact_tracing":
			iv.ContactTracing = m.Effectiveness
		case "travel_restrictions":
			iv.TravelRestrictions = m.Effectiveness
		case "vaccination":
			// Coverage arrives as a percentage.
			iv.VaccinationCampaign = m.Coverage / 100
		}
	}
	return iv
}
