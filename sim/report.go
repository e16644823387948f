package sim

import (
	"time"

	"github.com/google/uuid"
)

// containedThreshold is the active-case count below which an outbreak
// counts as contained at the end of a run.
const containedThreshold = 10

// DayReport is one day-indexed row of the JSON response produced for the
// service layer.
type DayReport struct {
	Day                      int     `json:"day"`
	Date                     string  `json:"date"`
	NewCases                 int     `json:"new_cases"`
	ActiveCases              int     `json:"active_cases"`
	Hospitalized             int     `json:"hospitalized"`
	Recovered                int     `json:"recovered"`
	Deaths                   int     `json:"deaths"`
	REffective               float64 `json:"r_effective"`
	HospitalCapacityExceeded bool    `json:"hospital_capacity_exceeded"`
}

// ReportSummary condenses a whole run.
type ReportSummary struct {
	DurationDays     int     `json:"duration_days"`
	PeakActiveCases  int     `json:"peak_active_cases"`
	PeakDay          int     `json:"peak_day"`
	PeakHospitalized int     `json:"peak_hospitalized"`
	FinalActiveCases int     `json:"final_active_cases"`
	TotalCases       int     `json:"total_cases"`
	TotalRecovered   int     `json:"total_recovered"`
	TotalDeaths      int     `json:"total_deaths"`
	MortalityRate    float64 `json:"mortality_rate"`
	MeanNewCases     float64 `json:"mean_new_cases"`
	Contained        bool    `json:"contained"`
}

// Report is the full day-indexed response for one outbreak simulation.
type Report struct {
	ID          string        `json:"id"`
	CityName    string        `json:"city_name"`
	EffectiveR0 float64       `json:"effective_r0"`
	CreatedAt   time.Time     `json:"created_at"`
	Results     []DayReport   `json:"results"`
	Summary     ReportSummary `json:"summary"`
}

// BuildReport converts a finished simulation into the day-indexed response
// shape. Dates are derived from the explicit start date; the engine never
// consults the wall clock itself.
func BuildReport(result *SimulationResult, start time.Time) *Report {
	population := result.City.Population
	if population < 1 {
		population = 1
	}

	newCases := newCaseSeries(result)
	rows := make([]DayReport, len(result.Days))
	for i, day := range result.Days {
		rows[i] = DayReport{
			Day:                      day.Day,
			Date:                     start.AddDate(0, 0, day.Day).Format("2006-01-02"),
			NewCases:                 int(newCases[i]),
			ActiveCases:              day.Infectious,
			Hospitalized:             day.Hospitalized,
			Recovered:                day.Recovered,
			Deaths:                   day.Deceased,
			REffective:               result.Virus.R0 * float64(day.Susceptible) / float64(population),
			HospitalCapacityExceeded: day.CapacityExceeded(),
		}
	}

	final := rows[len(rows)-1]
	active := NewTrajectoryStats(activeCaseSeries(result))
	mortality := 0.0
	if result.TotalCases > 0 {
		mortality = float64(final.Deaths) / float64(result.TotalCases)
	}

	return &Report{
		ID:          uuid.NewString(),
		CityName:    result.City.Name,
		EffectiveR0: result.EffectiveR0,
		CreatedAt:   start,
		Results:     rows,
		Summary: ReportSummary{
			DurationDays:     len(rows),
			PeakActiveCases:  result.PeakInfectious,
			PeakDay:          active.PeakDay,
			PeakHospitalized: result.PeakHospitalized,
			FinalActiveCases: final.ActiveCases,
			TotalCases:       result.TotalCases,
			TotalRecovered:   final.Recovered,
			TotalDeaths:      final.Deaths,
			MortalityRate:    mortality,
			MeanNewCases:     NewTrajectoryStats(newCases).Mean,
			Contained:        final.ActiveCases < containedThreshold,
		},
	}
}

// PolicyOutcome is one candidate's entry in a policy simulation response.
type PolicyOutcome struct {
	Policy    PolicyDecision  `json:"policy"`
	Impact    ImpactScore     `json:"impact_scores"`
	Breakdown ImpactBreakdown `json:"impact_breakdown"`
	Summary   ReportSummary   `json:"summary"`
}

// PolicyReport is the full response of a policy ranking run.
type PolicyReport struct {
	ID              string           `json:"id"`
	CityName        string           `json:"city_name"`
	CreatedAt       time.Time        `json:"created_at"`
	PolicyOutcomes  []PolicyOutcome  `json:"policy_outcomes"`
	OptimalStrategy *OptimalStrategy `json:"optimal_strategy"`
}

// BuildPolicyReport converts a ranking into the policy response shape, one
// outcome entry per candidate in rank order.
func BuildPolicyReport(city *City, ranked []RankedOutcome, best *OptimalStrategy, start time.Time) *PolicyReport {
	outcomes := make([]PolicyOutcome, len(ranked))
	for i, r := range ranked {
		outcomes[i] = PolicyOutcome{
			Policy:    r.Decision,
			Impact:    r.Impact,
			Breakdown: r.Breakdown,
			Summary:   BuildReport(r.Result, start).Summary,
		}
	}
	return &PolicyReport{
		ID:              uuid.NewString(),
		CityName:        city.Name,
		CreatedAt:       start,
		PolicyOutcomes:  outcomes,
		OptimalStrategy: best,
	}
}
