package sim

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/sirupsen/logrus"
)

// District is one administrative subdivision of a simulated city.
// All fields are fixed at construction; disease state lives in DistrictState.
type District struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Population         int     `json:"population"`
	AreaKm2            float64 `json:"area_km2"`
	HealthcareCapacity float64 `json:"healthcare_capacity"` // 0-1, relative bed availability
	AvgAge             float64 `json:"avg_age"`
	DensityFactor      float64 `json:"population_density_factor"` // relative, not absolute density
	SocioeconomicIndex float64 `json:"socioeconomic_index"`       // 0-1, higher = wealthier
	VaccinationRate    float64 `json:"vaccination_rate"`          // 0-1
	VulnerabilityIndex float64 `json:"vulnerability_index"`
}

// City is a population partitioned into districts, ordered by descending
// vulnerability. Immutable after BuildCity: it describes geography, not
// disease state.
type City struct {
	Name       string      `json:"name"`
	Population int         `json:"population"`
	AreaKm2    float64     `json:"area_km2"`
	Districts  []*District `json:"districts"`
}

// TotalVulnerability returns the sum of district vulnerability indices.
// Used to seed initial cases proportionally.
func (c *City) TotalVulnerability() float64 {
	total := 0.0
	for _, d := range c.Districts {
		total += d.VulnerabilityIndex
	}
	return total
}

// vulnerabilityIndex computes the composite 0-1 risk estimate for a district.
func vulnerabilityIndex(d *District) float64 {
	return (1-d.HealthcareCapacity)*0.3 +
		d.DensityFactor*0.3 +
		(1-d.SocioeconomicIndex)*0.2 +
		(1-d.VaccinationRate)*0.2
}

// BuildCity generates a synthetic city with heterogeneous districts.
//
// District count scales with population (population/100000) bounded to
// [3, 20]. District attributes are uniform draws from the given RNG, after
// which district populations are rescaled so they sum to the city population
// (integer truncation accepted). Districts are sorted by vulnerability index
// descending; ties break on district ID for determinism.
func BuildCity(name string, population int, areaKm2 float64, rng *rand.Rand) (*City, error) {
	if population <= 0 {
		return nil, &InvalidInputError{Field: "population", Reason: fmt.Sprintf("must be > 0, got %d", population)}
	}
	if areaKm2 <= 0 {
		return nil, &InvalidInputError{Field: "area_km2", Reason: fmt.Sprintf("must be > 0, got %g", areaKm2)}
	}

	numDistricts := population / 100000
	if numDistricts < 3 {
		numDistricts = 3
	}
	if numDistricts > 20 {
		numDistricts = 20
	}

	districts := make([]*District, 0, numDistricts)
	totalPopulation := 0
	for i := 0; i < numDistricts; i++ {
		d := &District{
			ID:                 fmt.Sprintf("district-%d", i+1),
			Name:               fmt.Sprintf("District %d", i+1),
			Population:         int(float64(population) * uniform(rng, 0.02, 0.2)),
			AreaKm2:            areaKm2 * uniform(rng, 0.02, 0.2),
			HealthcareCapacity: uniform(rng, 0.3, 1.0),
			AvgAge:             uniform(rng, 25, 45),
			DensityFactor:      uniform(rng, 0.5, 2.0),
			SocioeconomicIndex: uniform(rng, 0.2, 0.9),
			VaccinationRate:    uniform(rng, 0.2, 0.7),
		}
		districts = append(districts, d)
		totalPopulation += d.Population
	}

	// Rescale so district populations reconcile with the city total.
	scale := float64(population) / float64(max(1, totalPopulation))
	for _, d := range districts {
		d.Population = int(float64(d.Population) * scale)
		d.VulnerabilityIndex = vulnerabilityIndex(d)
	}

	sort.SliceStable(districts, func(i, j int) bool {
		if districts[i].VulnerabilityIndex != districts[j].VulnerabilityIndex {
			return districts[i].VulnerabilityIndex > districts[j].VulnerabilityIndex
		}
		return districts[i].ID < districts[j].ID
	})

	city := &City{
		Name:       name,
		Population: population,
		AreaKm2:    areaKm2,
		Districts:  districts,
	}
	logrus.Debugf("built city %q: population=%d, districts=%d, most vulnerable=%s (%.3f)",
		name, population, len(districts), districts[0].ID, districts[0].VulnerabilityIndex)
	return city, nil
}

// uniform draws from [lo, hi).
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
