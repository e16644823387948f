package sim

// PolicyDimension is one axis of intervention with a fixed enumerated set of
// discrete levels.
type PolicyDimension string

// The eight policy dimensions.
const (
	DimSocialDistancing   PolicyDimension = "social_distancing"
	DimMasking            PolicyDimension = "masking"
	DimTesting            PolicyDimension = "testing"
	DimContactTracing     PolicyDimension = "contact_tracing"
	DimTravelRestrictions PolicyDimension = "travel_restrictions"
	DimVaccination        PolicyDimension = "vaccination"
	DimEconomicSupport    PolicyDimension = "economic_support"
	DimHealthcareCapacity PolicyDimension = "healthcare_capacity"
)

// Dimensions lists all policy dimensions in catalog order.
var Dimensions = []PolicyDimension{
	DimSocialDistancing,
	DimMasking,
	DimTesting,
	DimContactTracing,
	DimTravelRestrictions,
	DimVaccination,
	DimEconomicSupport,
	DimHealthcareCapacity,
}

// PolicyDecision maps policy dimensions to one categorical level each.
// A missing dimension means its baseline level; an unknown dimension or
// level is a ConfigurationError.
type PolicyDecision map[PolicyDimension]string

// Clone returns an independent copy of the decision.
func (d PolicyDecision) Clone() PolicyDecision {
	cp := make(PolicyDecision, len(d))
	for k, v := range d {
		cp[k] = v
	}
	return cp
}

type policyLevel struct {
	name  string
	value float64
}

// PolicyCatalog maps categorical policy levels to numeric intervention
// effectiveness values. The level tables are fixed; the first level of each
// dimension is its baseline.
type PolicyCatalog struct {
	levels map[PolicyDimension][]policyLevel
}

// NewPolicyCatalog builds the catalog with the standard level tables.
func NewPolicyCatalog() *PolicyCatalog {
	return &PolicyCatalog{
		levels: map[PolicyDimension][]policyLevel{
			DimSocialDistancing: {
				{"none", 0.0},
				{"recommended", 0.2},
				{"required", 0.5},
				{"strict_lockdown", 0.8},
			},
			DimMasking: {
				{"none", 0.0},
				{"recommended", 0.3},
				{"required_indoors", 0.6},
				{"required_everywhere", 0.8},
			},
			DimTesting: {
				{"minimal", 0.01},
				{"symptomatic_only", 0.05},
				{"expanded", 0.15},
				{"mass_testing", 0.3},
			},
			DimContactTracing: {
				{"none", 0.0},
				{"manual", 0.3},
				{"app_based", 0.5},
				{"comprehensive", 0.8},
			},
			DimTravelRestrictions: {
				{"none", 0.0},
				{"advisory", 0.2},
				{"partial_restrictions", 0.5},
				{"full_restrictions", 0.9},
			},
			DimVaccination: {
				{"none", 0.0},
				{"high_risk_only", 0.001},
				{"expanded_eligibility", 0.003},
				{"universal_campaign", 0.007},
			},
			DimEconomicSupport: {
				{"none", 0.0},
				{"limited", 0.3},
				{"moderate", 0.6},
				{"comprehensive", 0.9},
			},
			DimHealthcareCapacity: {
				{"baseline", 0.0},
				{"expanded", 0.3},
				{"field_hospitals", 0.6},
				{"maximum_expansion", 0.9},
			},
		},
	}
}

// Levels returns the ordered level names of a dimension, mildest first.
func (c *PolicyCatalog) Levels(dim PolicyDimension) []string {
	table := c.levels[dim]
	names := make([]string, len(table))
	for i, l := range table {
		names[i] = l.name
	}
	return names
}

// BaselineLevel returns the mildest level of a dimension, used when a
// decision omits the dimension.
func (c *PolicyCatalog) BaselineLevel(dim PolicyDimension) string {
	table := c.levels[dim]
	if len(table) == 0 {
		return ""
	}
	return table[0].name
}

// BaselineDecision returns a decision with every dimension at its baseline.
func (c *PolicyCatalog) BaselineDecision() PolicyDecision {
	d := make(PolicyDecision, len(Dimensions))
	for _, dim := range Dimensions {
		d[dim] = c.BaselineLevel(dim)
	}
	return d
}

// LevelValue resolves a (dimension, level) pair to its numeric effectiveness.
// Unknown pairs fail loudly: there is no implicit fallback.
func (c *PolicyCatalog) LevelValue(dim PolicyDimension, level string) (float64, error) {
	table, ok := c.levels[dim]
	if !ok {
		return 0, &ConfigurationError{Dimension: string(dim)}
	}
	for _, l := range table {
		if l.name == level {
			return l.value, nil
		}
	}
	return 0, &ConfigurationError{Dimension: string(dim), Level: level}
}

// DecisionValue resolves one dimension of a decision, substituting the
// baseline level when the decision omits the dimension.
func (c *PolicyCatalog) DecisionValue(d PolicyDecision, dim PolicyDimension) (float64, error) {
	level, ok := d[dim]
	if !ok {
		level = c.BaselineLevel(dim)
	}
	return c.LevelValue(dim, level)
}

// Validate checks every (dimension, level) pair in a decision against the
// catalog.
func (c *PolicyCatalog) Validate(d PolicyDecision) error {
	for dim, level := range d {
		if _, err := c.LevelValue(dim, level); err != nil {
			return err
		}
	}
	return nil
}

// InterventionParams converts a policy decision into the continuous
// intervention parameters consumed by RunOutbreak. Economic support and
// healthcare capacity do not modulate transmission; they enter only through
// impact scoring.
func (c *PolicyCatalog) InterventionParams(d PolicyDecision) (InterventionParameters, error) {
	if err := c.Validate(d); err != nil {
		return InterventionParameters{}, err
	}

	var iv InterventionParameters
	var err error
	if iv.SocialDistancing, err = c.DecisionValue(d, DimSocialDistancing); err != nil {
		return InterventionParameters{}, err
	}
	if iv.Masking, err = c.DecisionValue(d, DimMasking); err != nil {
		return InterventionParameters{}, err
	}
	if iv.TestingRate, err = c.DecisionValue(d, DimTesting); err != nil {
		return InterventionParameters{}, err
	}
	if iv.ContactTracing, err = c.DecisionValue(d, DimContactTracing); err != nil {
		return InterventionParameters{}, err
	}
	if iv.TravelRestrictions, err = c.DecisionValue(d, DimTravelRestrictions); err != nil {
		return InterventionParameters{}, err
	}
	if iv.VaccinationCampaign, err = c.DecisionValue(d, DimVaccination); err != nil {
		return InterventionParameters{}, err
	}
	return iv, nil
}
