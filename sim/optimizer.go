package sim

import (
	"runtime"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
)

// CandidateStrategy produces the list of policy decisions a ranking run
// evaluates. Implementations must be deterministic so rankings reproduce.
type CandidateStrategy interface {
	Candidates(catalog *PolicyCatalog) []PolicyDecision
}

// DefaultStrategy sweeps each dimension's levels one at a time with every
// other dimension at its baseline, then adds three hand-picked bundles
// (mild, moderate, strict). This is a brute-force evaluate-and-rank search:
// the scoring surface is cheap and the candidate space small and discrete.
type DefaultStrategy struct{}

// Candidates implements CandidateStrategy.
func (DefaultStrategy) Candidates(catalog *PolicyCatalog) []PolicyDecision {
	var candidates []PolicyDecision

	for _, dim := range Dimensions {
		for _, level := range catalog.Levels(dim) {
			d := catalog.BaselineDecision()
			d[dim] = level
			candidates = append(candidates, d)
		}
	}

	candidates = append(candidates,
		// Mild bundle.
		PolicyDecision{
			DimSocialDistancing:   "recommended",
			DimMasking:            "required_indoors",
			DimTesting:            "expanded",
			DimContactTracing:     "app_based",
			DimTravelRestrictions: "advisory",
			DimVaccination:        "high_risk_only",
			DimEconomicSupport:    "limited",
			DimHealthcareCapacity: "baseline",
		},
		// Moderate bundle.
		PolicyDecision{
			DimSocialDistancing:   "required",
			DimMasking:            "required_everywhere",
			DimTesting:            "mass_testing",
			DimContactTracing:     "comprehensive",
			DimTravelRestrictions: "partial_restrictions",
			DimVaccination:        "expanded_eligibility",
			DimEconomicSupport:    "moderate",
			DimHealthcareCapacity: "expanded",
		},
		// Strict bundle.
		PolicyDecision{
			DimSocialDistancing:   "strict_lockdown",
			DimMasking:            "required_everywhere",
			DimTesting:            "mass_testing",
			DimContactTracing:     "comprehensive",
			DimTravelRestrictions: "full_restrictions",
			DimVaccination:        "universal_campaign",
			DimEconomicSupport:    "comprehensive",
			DimHealthcareCapacity: "maximum_expansion",
		},
	)

	return candidates
}

// RankedOutcome pairs one candidate decision with its simulation and scores.
type RankedOutcome struct {
	Decision  PolicyDecision    `json:"policy"`
	Result    *SimulationResult `json:"-"`
	Impact    ImpactScore       `json:"impact_scores"`
	Breakdown ImpactBreakdown   `json:"impact_breakdown"`
}

// OptimalStrategy is the head of a ranking plus its implementation plan.
type OptimalStrategy struct {
	Decision  PolicyDecision    `json:"policy"`
	Impact    ImpactScore       `json:"impact_scores"`
	Breakdown ImpactBreakdown   `json:"impact_breakdown"`
	Result    *SimulationResult `json:"-"`
	Plan      []PlanStep        `json:"implementation_plan"`
}

// PolicyOptimizer drives the simulator and scorer across candidate policy
// decisions and ranks them by weighted overall score.
type PolicyOptimizer struct {
	Catalog *PolicyCatalog
	Scorer  *ImpactScorer

	// Workers bounds parallel candidate evaluation; 0 means GOMAXPROCS.
	// Candidates share no mutable state, so evaluation order cannot affect
	// the final ranking.
	Workers int
}

// NewPolicyOptimizer creates an optimizer with a fresh catalog and scorer.
func NewPolicyOptimizer() *PolicyOptimizer {
	catalog := NewPolicyCatalog()
	return &PolicyOptimizer{
		Catalog: catalog,
		Scorer:  NewImpactScorer(catalog),
	}
}

// Rank evaluates every candidate decision against the city and virus and
// returns outcomes sorted by overall score descending. Ties keep candidate
// order, so ranking the same list twice yields the same ordering.
//
// All candidates are validated before any simulation starts.
func (o *PolicyOptimizer) Rank(city *City, virus VirusParameters, candidates []PolicyDecision, days, initialCases int) ([]RankedOutcome, error) {
	for _, candidate := range candidates {
		if err := o.Catalog.Validate(candidate); err != nil {
			return nil, err
		}
	}

	workers := o.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(candidates) {
		workers = len(candidates)
	}
	if workers < 1 {
		workers = 1
	}

	logrus.Debugf("ranking %d policy candidates with %d workers", len(candidates), workers)

	outcomes := make([]RankedOutcome, len(candidates))
	errs := make([]error, len(candidates))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				outcomes[i], errs[i] = o.evaluate(city, virus, candidates[i], days, initialCases)
			}
		}()
	}
	for i := range candidates {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	sort.SliceStable(outcomes, func(i, j int) bool {
		return outcomes[i].Impact.OverallScore > outcomes[j].Impact.OverallScore
	})
	return outcomes, nil
}

func (o *PolicyOptimizer) evaluate(city *City, virus VirusParameters, decision PolicyDecision, days, initialCases int) (RankedOutcome, error) {
	iv, err := o.Catalog.InterventionParams(decision)
	if err != nil {
		return RankedOutcome{}, err
	}
	result, err := RunOutbreak(city, virus, iv, days, initialCases)
	if err != nil {
		return RankedOutcome{}, err
	}
	impact, breakdown, err := o.Scorer.Score(city, decision, result)
	if err != nil {
		return RankedOutcome{}, err
	}
	return RankedOutcome{
		Decision:  decision,
		Result:    result,
		Impact:    impact,
		Breakdown: breakdown,
	}, nil
}

// Best ranks the candidates and returns the top outcome together with its
// step-by-step implementation plan.
func (o *PolicyOptimizer) Best(city *City, virus VirusParameters, candidates []PolicyDecision, days, initialCases int) (*OptimalStrategy, []RankedOutcome, error) {
	ranked, err := o.Rank(city, virus, candidates, days, initialCases)
	if err != nil {
		return nil, nil, err
	}
	if len(ranked) == 0 {
		return nil, nil, &InvalidInputError{Field: "candidates", Reason: "must not be empty"}
	}

	head := ranked[0]
	plan, err := BuildImplementationPlan(o.Catalog, head.Decision)
	if err != nil {
		return nil, nil, err
	}

	return &OptimalStrategy{
		Decision:  head.Decision,
		Impact:    head.Impact,
		Breakdown: head.Breakdown,
		Result:    head.Result,
		Plan:      plan,
	}, ranked, nil
}
