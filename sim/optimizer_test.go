package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultStrategy_CandidateCount(t *testing.T) {
	catalog := NewPolicyCatalog()
	candidates := DefaultStrategy{}.Candidates(catalog)

	// 8 dimensions x 4 levels plus the three bundles.
	assert.Len(t, candidates, 35)
	for _, c := range candidates {
		require.NoError(t, catalog.Validate(c))
	}
}

func TestPolicyOptimizer_RankOrdersByOverallScore(t *testing.T) {
	city := buildTestCity(t, 500_000, 20)
	optimizer := NewPolicyOptimizer()

	ranked, err := optimizer.Rank(city, DefaultVirusParameters(), DefaultStrategy{}.Candidates(optimizer.Catalog), 60, 100)
	require.NoError(t, err)
	require.Len(t, ranked, 35)

	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Impact.OverallScore, ranked[i].Impact.OverallScore,
			"position %d out of order", i)
	}
}

func TestPolicyOptimizer_RankDeterministicAcrossWorkerCounts(t *testing.T) {
	city := buildTestCity(t, 500_000, 21)
	candidates := DefaultStrategy{}.Candidates(NewPolicyCatalog())

	serial := NewPolicyOptimizer()
	serial.Workers = 1
	a, err := serial.Rank(city, DefaultVirusParameters(), candidates, 60, 100)
	require.NoError(t, err)

	parallel := NewPolicyOptimizer()
	parallel.Workers = 4
	b, err := parallel.Rank(city, DefaultVirusParameters(), candidates, 60, 100)
	require.NoError(t, err)

	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Decision, b[i].Decision, "position %d", i)
		assert.Equal(t, a[i].Impact, b[i].Impact, "position %d", i)
	}
}

func TestPolicyOptimizer_RankRejectsInvalidCandidateUpfront(t *testing.T) {
	city := buildTestCity(t, 300_000, 22)
	optimizer := NewPolicyOptimizer()

	candidates := []PolicyDecision{
		optimizer.Catalog.BaselineDecision(),
		{DimMasking: "face_shields"},
	}

	_, err := optimizer.Rank(city, DefaultVirusParameters(), candidates, 30, 100)
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "masking", cfgErr.Dimension)
}

func TestPolicyOptimizer_BestReturnsHeadWithPlan(t *testing.T) {
	city := buildTestCity(t, 500_000, 23)
	optimizer := NewPolicyOptimizer()
	candidates := DefaultStrategy{}.Candidates(optimizer.Catalog)

	best, ranked, err := optimizer.Best(city, DefaultVirusParameters(), candidates, 60, 100)
	require.NoError(t, err)
	require.NotNil(t, best)

	assert.Equal(t, ranked[0].Decision, best.Decision)
	assert.Equal(t, ranked[0].Impact, best.Impact)

	// Plan steps cover exactly the non-baseline dimensions of the winner.
	nonBaseline := 0
	for _, dim := range Dimensions {
		if level, ok := best.Decision[dim]; ok && level != optimizer.Catalog.BaselineLevel(dim) {
			nonBaseline++
		}
	}
	assert.Len(t, best.Plan, nonBaseline)
	for _, step := range best.Plan {
		assert.NotEmpty(t, step.ImplementationSteps)
		assert.NotEmpty(t, step.Timeline)
	}
}

func TestPolicyOptimizer_BestRejectsEmptyCandidateList(t *testing.T) {
	city := buildTestCity(t, 300_000, 24)
	optimizer := NewPolicyOptimizer()

	_, _, err := optimizer.Best(city, DefaultVirusParameters(), nil, 30, 100)
	var invalid *InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "candidates", invalid.Field)
}
