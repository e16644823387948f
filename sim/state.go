package sim

// DistrictState holds one district's disease compartments for one day.
// Compartments are non-negative integers; their sum equals the district
// population at every day.
type DistrictState struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Susceptible        int    `json:"susceptible"`
	Exposed            int    `json:"exposed"`
	Infectious         int    `json:"infectious"`
	Hospitalized       int    `json:"hospitalized"`
	Recovered          int    `json:"recovered"`
	Deceased           int    `json:"deceased"`
	HealthcareExceeded bool   `json:"healthcare_exceeded"`
}

// DaySnapshot aggregates city-level compartment totals plus per-district
// state for one simulated day.
type DaySnapshot struct {
	Day          int             `json:"day"`
	Susceptible  int             `json:"total_susceptible"`
	Exposed      int             `json:"total_exposed"`
	Infectious   int             `json:"total_infectious"`
	Hospitalized int             `json:"total_hospitalized"`
	Recovered    int             `json:"total_recovered"`
	Deceased     int             `json:"total_deceased"`
	Districts    []DistrictState `json:"districts"`
}

// CapacityExceeded reports whether any district ran past its bed capacity
// on this day.
func (s DaySnapshot) CapacityExceeded() bool {
	for _, d := range s.Districts {
		if d.HealthcareExceeded {
			return true
		}
	}
	return false
}

// SimulationResult is the complete outcome of one RunOutbreak call, owned
// exclusively by that run.
type SimulationResult struct {
	City          *City                  `json:"city"`
	Virus         VirusParameters        `json:"virus_params"`
	Interventions InterventionParameters `json:"intervention_params"`
	EffectiveR0   float64                `json:"effective_r0"`
	Days          []DaySnapshot          `json:"daily_results"`

	SimulationDays   int `json:"simulation_days"`
	PeakInfectious   int `json:"peak_infectious"`
	PeakHospitalized int `json:"peak_hospitalized"`
	TotalCases       int `json:"total_cases"`
	TotalDeaths      int `json:"total_deaths"`
}

// Final returns the last recorded day.
func (r *SimulationResult) Final() DaySnapshot {
	return r.Days[len(r.Days)-1]
}

// summarize fills the derived summary fields from the day sequence.
func (r *SimulationResult) summarize() {
	for _, day := range r.Days {
		if day.Infectious > r.PeakInfectious {
			r.PeakInfectious = day.Infectious
		}
		if day.Hospitalized > r.PeakHospitalized {
			r.PeakHospitalized = day.Hospitalized
		}
	}
	final := r.Final()
	r.TotalCases = final.Infectious + final.Recovered + final.Deceased
	r.TotalDeaths = final.Deceased
	r.SimulationDays = len(r.Days)
}
