package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildImplementationPlan_SkipsBaselineDimensions(t *testing.T) {
	catalog := NewPolicyCatalog()

	plan, err := BuildImplementationPlan(catalog, catalog.BaselineDecision())
	require.NoError(t, err)
	assert.Empty(t, plan, "baseline decision needs no rollout")
}

func TestBuildImplementationPlan_StepsAndTimeline(t *testing.T) {
	catalog := NewPolicyCatalog()
	decision := PolicyDecision{
		DimSocialDistancing:   "strict_lockdown",
		DimMasking:            "recommended",
		DimVaccination:        "high_risk_only",
		DimHealthcareCapacity: "baseline",
	}

	plan, err := BuildImplementationPlan(catalog, decision)
	require.NoError(t, err)
	require.Len(t, plan, 3)

	byDim := map[string]PlanStep{}
	for _, step := range plan {
		byDim[step.Dimension] = step
	}

	// Timeline scales with how far the level sits above baseline.
	assert.Equal(t, "4 days", byDim["social_distancing"].Timeline)
	assert.Equal(t, "2 days", byDim["masking"].Timeline)
	assert.Equal(t, "2 days", byDim["vaccination"].Timeline)

	for dim, step := range byDim {
		assert.Len(t, step.ImplementationSteps, 5, dim)
		assert.NotEmpty(t, step.ResponsibleEntities, dim)
	}
}

func TestBuildImplementationPlan_FollowsDimensionOrder(t *testing.T) {
	catalog := NewPolicyCatalog()
	decision := PolicyDecision{
		DimHealthcareCapacity: "expanded",
		DimSocialDistancing:   "required",
		DimTesting:            "mass_testing",
	}

	plan, err := BuildImplementationPlan(catalog, decision)
	require.NoError(t, err)
	require.Len(t, plan, 3)
	assert.Equal(t, "social_distancing", plan[0].Dimension)
	assert.Equal(t, "testing", plan[1].Dimension)
	assert.Equal(t, "healthcare_capacity", plan[2].Dimension)
}

func TestBuildImplementationPlan_RejectsUnknownLevel(t *testing.T) {
	catalog := NewPolicyCatalog()

	_, err := BuildImplementationPlan(catalog, PolicyDecision{DimTesting: "everyone_daily"})
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}
