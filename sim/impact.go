package sim

// ImpactScore summarizes the consequences of a policy decision on a 0-100
// scale per dimension (higher is better).
type ImpactScore struct {
	HealthScore   float64 `json:"health_score"`
	EconomicScore float64 `json:"economic_score"`
	SocialScore   float64 `json:"social_score"`
	EquityScore   float64 `json:"equity_score"`
	OverallScore  float64 `json:"overall_score"`
}

// Overall score weights.
const (
	healthWeight   = 0.4
	economicWeight = 0.25
	socialWeight   = 0.2
	equityWeight   = 0.15
)

// ImpactBreakdown carries the intermediate socioeconomic impact metrics
// behind an ImpactScore.
type ImpactBreakdown struct {
	GDPReductionPercent         float64 `json:"gdp_reduction_percent"`
	UnemploymentIncreasePercent float64 `json:"unemployment_increase_percent"`
	BusinessClosuresPercent     float64 `json:"business_closures_percent"`

	MentalHealthIndex        float64 `json:"mental_health_index"`        // 0-10 scale
	EducationDisruptionIndex float64 `json:"education_disruption_index"` // 0-10 scale
	SocialCohesionImpact     float64 `json:"social_cohesion_impact"`     // 0-10 scale

	SystemStrainIndex            float64 `json:"system_strain_index"` // 0-10 scale
	NonCovidCareReductionPercent float64 `json:"non_covid_care_reduction_percent"`

	VulnerablePopulationsIndex float64 `json:"vulnerable_populations_index"` // 0-10 scale
	InequalityIncreasePercent  float64 `json:"inequality_increase_percent"`
}

// vulnerableDistrictThreshold marks districts whose vulnerability index
// qualifies them for equity weighting.
const vulnerableDistrictThreshold = 0.6

// ImpactScorer converts a completed simulation plus the chosen policy set
// into impact metrics and scores.
type ImpactScorer struct {
	Catalog *PolicyCatalog
}

// NewImpactScorer creates a scorer backed by the given catalog.
func NewImpactScorer(catalog *PolicyCatalog) *ImpactScorer {
	return &ImpactScorer{Catalog: catalog}
}

// Score computes impact metrics and 0-100 scores for one candidate decision
// and its finished simulation.
func (s *ImpactScorer) Score(city *City, decision PolicyDecision, result *SimulationResult) (ImpactScore, ImpactBreakdown, error) {
	socialDistancing, err := s.Catalog.DecisionValue(decision, DimSocialDistancing)
	if err != nil {
		return ImpactScore{}, ImpactBreakdown{}, err
	}
	travelRestrictions, err := s.Catalog.DecisionValue(decision, DimTravelRestrictions)
	if err != nil {
		return ImpactScore{}, ImpactBreakdown{}, err
	}
	economicSupport, err := s.Catalog.DecisionValue(decision, DimEconomicSupport)
	if err != nil {
		return ImpactScore{}, ImpactBreakdown{}, err
	}
	capacityExpansion, err := s.Catalog.DecisionValue(decision, DimHealthcareCapacity)
	if err != nil {
		return ImpactScore{}, ImpactBreakdown{}, err
	}

	population := float64(city.Population)
	if population < 1 {
		population = 1
	}
	totalDeaths := float64(result.TotalDeaths)
	peakInfectious := float64(result.PeakInfectious)
	peakHospitalized := float64(result.PeakHospitalized)

	// GDP reduction from distancing and travel limits, mitigated by
	// economic support. Unemployment rises faster than GDP falls.
	economicImpact := (socialDistancing*0.5 + travelRestrictions*0.3) * (1 - economicSupport*0.7)
	unemploymentImpact := economicImpact * 1.5

	mentalHealthImpact := socialDistancing*0.4 + economicImpact*0.3 + totalDeaths/population*100
	educationImpact := socialDistancing * 0.8

	healthcareStrain := peakHospitalized / population * 100 * (1 - capacityExpansion)

	// Equity impact averages over vulnerable districts: economic damage
	// hits poorer districts harder, healthcare strain hits districts with
	// less capacity harder.
	equityImpact := 0.0
	vulnerableDistricts := 0
	for _, d := range city.Districts {
		if d.VulnerabilityIndex > vulnerableDistrictThreshold {
			equityImpact += economicImpact*(1-d.SocioeconomicIndex)*2 +
				healthcareStrain*(1-d.HealthcareCapacity)*0.5
			vulnerableDistricts++
		}
	}
	if vulnerableDistricts > 0 {
		equityImpact /= float64(vulnerableDistricts)
	}

	breakdown := ImpactBreakdown{
		GDPReductionPercent:          economicImpact * 100,
		UnemploymentIncreasePercent:  unemploymentImpact * 100,
		BusinessClosuresPercent:      economicImpact * 80,
		MentalHealthIndex:            mentalHealthImpact * 10,
		EducationDisruptionIndex:     educationImpact * 10,
		SocialCohesionImpact:         economicImpact * 5,
		SystemStrainIndex:            healthcareStrain * 10,
		NonCovidCareReductionPercent: healthcareStrain * 100,
		VulnerablePopulationsIndex:   equityImpact * 10,
		InequalityIncreasePercent:    equityImpact * 50,
	}

	score := ImpactScore{
		HealthScore:   clampScore(100 - (totalDeaths/population*50000 + peakInfectious/population*5000)),
		EconomicScore: clampScore(100 - (economicImpact*100*2 + unemploymentImpact*100)),
		SocialScore:   clampScore(100 - (mentalHealthImpact*10*3 + educationImpact*10*2 + economicImpact*5*2)),
		EquityScore:   clampScore(100 - (equityImpact*10*5 + equityImpact*50*0.5)),
	}
	score.OverallScore = score.HealthScore*healthWeight +
		score.EconomicScore*economicWeight +
		score.SocialScore*socialWeight +
		score.EquityScore*equityWeight

	return score, breakdown, nil
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
