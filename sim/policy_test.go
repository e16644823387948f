package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicyCatalog_LevelValues(t *testing.T) {
	catalog := NewPolicyCatalog()

	tests := []struct {
		dim   PolicyDimension
		level string
		want  float64
	}{
		{DimSocialDistancing, "none", 0},
		{DimSocialDistancing, "recommended", 0.2},
		{DimSocialDistancing, "required", 0.5},
		{DimSocialDistancing, "strict_lockdown", 0.8},
		{DimMasking, "required_indoors", 0.6},
		{DimMasking, "required_everywhere", 0.8},
		{DimTesting, "minimal", 0.01},
		{DimTesting, "mass_testing", 0.3},
		{DimContactTracing, "app_based", 0.5},
		{DimTravelRestrictions, "full_restrictions", 0.9},
		{DimVaccination, "high_risk_only", 0.001},
		{DimVaccination, "universal_campaign", 0.007},
		{DimEconomicSupport, "comprehensive", 0.9},
		{DimHealthcareCapacity, "baseline", 0},
		{DimHealthcareCapacity, "field_hospitals", 0.6},
	}

	for _, tt := range tests {
		got, err := catalog.LevelValue(tt.dim, tt.level)
		require.NoError(t, err, "%s/%s", tt.dim, tt.level)
		assert.Equal(t, tt.want, got, "%s/%s", tt.dim, tt.level)
	}
}

func TestPolicyCatalog_AllDimensionsHaveFourLevels(t *testing.T) {
	catalog := NewPolicyCatalog()
	for _, dim := range Dimensions {
		assert.Len(t, catalog.Levels(dim), 4, string(dim))
	}
}

func TestPolicyCatalog_UnknownPairsFailLoudly(t *testing.T) {
	catalog := NewPolicyCatalog()

	t.Run("unknown level", func(t *testing.T) {
		_, err := catalog.LevelValue(DimMasking, "mandatory")
		var cfgErr *ConfigurationError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, "masking", cfgErr.Dimension)
		assert.Equal(t, "mandatory", cfgErr.Level)
	})

	t.Run("unknown dimension", func(t *testing.T) {
		_, err := catalog.LevelValue(PolicyDimension("curfew"), "none")
		var cfgErr *ConfigurationError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, "curfew", cfgErr.Dimension)
	})

	t.Run("validate rejects bad decision", func(t *testing.T) {
		err := catalog.Validate(PolicyDecision{DimTesting: "everyone_daily"})
		var cfgErr *ConfigurationError
		require.True(t, errors.As(err, &cfgErr))
	})
}

func TestPolicyCatalog_BaselineDecision(t *testing.T) {
	catalog := NewPolicyCatalog()
	baseline := catalog.BaselineDecision()

	require.Len(t, baseline, len(Dimensions))
	assert.Equal(t, "none", baseline[DimSocialDistancing])
	assert.Equal(t, "minimal", baseline[DimTesting])
	assert.Equal(t, "baseline", baseline[DimHealthcareCapacity])
}

func TestPolicyCatalog_InterventionParams(t *testing.T) {
	catalog := NewPolicyCatalog()

	decision := PolicyDecision{
		DimSocialDistancing:   "required",
		DimMasking:            "required_everywhere",
		DimTesting:            "mass_testing",
		DimContactTracing:     "comprehensive",
		DimTravelRestrictions: "partial_restrictions",
		DimVaccination:        "expanded_eligibility",
		DimEconomicSupport:    "moderate",
		DimHealthcareCapacity: "expanded",
	}

	iv, err := catalog.InterventionParams(decision)
	require.NoError(t, err)
	assert.Equal(t, InterventionParameters{
		SocialDistancing:    0.5,
		Masking:             0.8,
		TestingRate:         0.3,
		ContactTracing:      0.8,
		TravelRestrictions:  0.5,
		VaccinationCampaign: 0.003,
	}, iv)
}

func TestPolicyCatalog_MissingDimensionsUseBaseline(t *testing.T) {
	catalog := NewPolicyCatalog()

	iv, err := catalog.InterventionParams(PolicyDecision{DimMasking: "recommended"})
	require.NoError(t, err)
	assert.Equal(t, 0.3, iv.Masking)
	assert.Equal(t, 0.0, iv.SocialDistancing)
	// Baseline testing is "minimal", not zero.
	assert.Equal(t, 0.01, iv.TestingRate)
}
