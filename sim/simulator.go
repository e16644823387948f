package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Fixed model constants. These are properties of the model, not of a request.
const (
	// baselineMobility is the city-wide inter-district mobility level.
	baselineMobility = 0.7
	// crossDistrictScale damps transmission between districts relative to
	// transmission within one.
	crossDistrictScale = 0.1
	// bedsPerCapacityUnit converts a district's 0-1 healthcare capacity
	// into an absolute bed count.
	bedsPerCapacityUnit = 100.0
	// hospitalResolveRate is the share of hospitalized cases that resolve
	// (recover or die) each day.
	hospitalResolveRate = 0.1
	// Overflow penalties applied on days a district runs past capacity.
	overflowHospitalizationBoost = 1.2
	overflowFatalityBoost        = 1.5
)

// RunOutbreak advances a city's disease state day by day under fixed virus
// and intervention parameters.
//
// The state machine per district and day is S→E→I→{H→{R,D}, R}. Transmission
// couples districts through a mobility term; hospitalization and fatality
// rates are penalized on days a district exceeds its bed capacity. The run
// stops early once no exposed and no infectious individuals remain anywhere.
//
// All transitions use integer truncation, and every outflow is capped by its
// source compartment, so compartment counts never go negative and each
// district's compartments always sum to its population.
func RunOutbreak(city *City, virus VirusParameters, iv InterventionParameters, days, initialCases int) (*SimulationResult, error) {
	if err := virus.Validate(); err != nil {
		return nil, err
	}
	if initialCases < 0 {
		return nil, &InvalidInputError{Field: "initial_cases", Reason: fmt.Sprintf("must be >= 0, got %d", initialCases)}
	}

	effR0 := virus.EffectiveR0(iv)
	states := seedInitialCases(city, initialCases)

	result := &SimulationResult{
		City:          city,
		Virus:         virus,
		Interventions: iv,
		EffectiveR0:   effR0,
	}
	result.Days = append(result.Days, snapshot(0, states))

	// A zero-population or zero-duration run is a single trivial day.
	if city.Population <= 0 || days <= 0 {
		result.summarize()
		return result, nil
	}

	logrus.Debugf("outbreak simulation: city=%s days=%d initial_cases=%d effective_r0=%.3f",
		city.Name, days, initialCases, effR0)

	mobility := baselineMobility * (1 - iv.TravelRestrictions)

	for day := 1; day <= days; day++ {
		// Transmission terms use start-of-day infectious counts so the
		// district update order cannot influence the outcome.
		startInfectious := make([]int, len(states))
		for i := range states {
			startInfectious[i] = states[i].Infectious
		}

		for i := range states {
			d := city.Districts[i]
			st := &states[i]
			pop := d.Population
			if pop < 1 {
				pop = 1
			}

			districtR := effR0 * (1 + (d.DensityFactor-1)*0.3 + (1-d.VaccinationRate)*0.2)
			susceptibleFrac := float64(st.Susceptible) / float64(pop)

			newExposures := int(float64(startInfectious[i]) * districtR / virus.InfectiousDays *
				susceptibleFrac * (1 - iv.TravelRestrictions))
			for j := range states {
				if j == i {
					continue
				}
				newExposures += int(float64(startInfectious[j]) * districtR / virus.InfectiousDays *
					susceptibleFrac * mobility * crossDistrictScale)
			}
			if newExposures > st.Susceptible {
				newExposures = st.Susceptible
			}
			if newExposures < 0 {
				newExposures = 0
			}

			newInfectious := int(float64(st.Exposed) / virus.IncubationDays)
			if newInfectious > st.Exposed {
				newInfectious = st.Exposed
			}
			outcomes := int(float64(st.Infectious) / virus.InfectiousDays)
			if outcomes > st.Infectious {
				outcomes = st.Infectious
			}

			// Healthcare overflow penalizes this day's transitions only.
			hospModifier, fatalModifier := 1.0, 1.0
			if float64(st.Hospitalized) > d.HealthcareCapacity*bedsPerCapacityUnit {
				st.HealthcareExceeded = true
				hospModifier = overflowHospitalizationBoost
				fatalModifier = overflowFatalityBoost
			} else {
				st.HealthcareExceeded = false
			}

			newHospitalized := int(float64(outcomes) * virus.HospitalizationRate * hospModifier)
			if newHospitalized > outcomes {
				newHospitalized = outcomes
			}
			directRecoveries := outcomes - newHospitalized

			hospitalOutcomes := int(float64(st.Hospitalized) * hospitalResolveRate)
			hospitalDeaths := int(float64(hospitalOutcomes) * virus.FatalityRate * fatalModifier)
			if hospitalDeaths > hospitalOutcomes {
				hospitalDeaths = hospitalOutcomes
			}
			hospitalRecoveries := hospitalOutcomes - hospitalDeaths

			st.Susceptible -= newExposures
			st.Exposed += newExposures - newInfectious
			st.Infectious += newInfectious - outcomes
			st.Hospitalized += newHospitalized - hospitalOutcomes
			st.Recovered += directRecoveries + hospitalRecoveries
			st.Deceased += hospitalDeaths

			// Vaccination moves susceptibles straight to recovered,
			// modeling immunity without infection.
			newVaccinations := int(float64(st.Susceptible) * iv.VaccinationCampaign)
			if newVaccinations > st.Susceptible {
				newVaccinations = st.Susceptible
			}
			st.Susceptible -= newVaccinations
			st.Recovered += newVaccinations
		}

		snap := snapshot(day, states)
		result.Days = append(result.Days, snap)
		logrus.Debugf("day %d: S=%d E=%d I=%d H=%d R=%d D=%d",
			day, snap.Susceptible, snap.Exposed, snap.Infectious, snap.Hospitalized, snap.Recovered, snap.Deceased)

		if snap.Exposed == 0 && snap.Infectious == 0 {
			logrus.Debugf("outbreak ended on day %d", day)
			break
		}
	}

	result.summarize()
	return result, nil
}

// seedInitialCases distributes initial cases across districts proportionally
// to vulnerability, highest-vulnerability districts first; any remainder from
// truncation lands in the most vulnerable district.
func seedInitialCases(city *City, initialCases int) []DistrictState {
	states := make([]DistrictState, len(city.Districts))
	totalVuln := city.TotalVulnerability()

	remaining := initialCases
	for i, d := range city.Districts {
		cases := 0
		if totalVuln > 0 {
			cases = int(float64(initialCases) * d.VulnerabilityIndex / totalVuln)
		}
		if cases > remaining {
			cases = remaining
		}
		if cases > d.Population {
			cases = d.Population
		}
		remaining -= cases

		states[i] = DistrictState{
			ID:          d.ID,
			Name:        d.Name,
			Susceptible: d.Population - cases,
			Exposed:     cases,
		}
	}

	if remaining > 0 && len(states) > 0 {
		extra := remaining
		if extra > states[0].Susceptible {
			extra = states[0].Susceptible
		}
		states[0].Exposed += extra
		states[0].Susceptible -= extra
	}

	return states
}

func snapshot(day int, states []DistrictState) DaySnapshot {
	snap := DaySnapshot{
		Day:       day,
		Districts: make([]DistrictState, len(states)),
	}
	copy(snap.Districts, states)
	for _, st := range states {
		snap.Susceptible += st.Susceptible
		snap.Exposed += st.Exposed
		snap.Infectious += st.Infectious
		snap.Hospitalized += st.Hospitalized
		snap.Recovered += st.Recovered
		snap.Deceased += st.Deceased
	}
	return snap
}
