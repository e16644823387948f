package sim

import "fmt"

// PlanStep is one entry of an implementation plan: the ordered rollout steps
// for a single active policy dimension.
type PlanStep struct {
	Dimension           string   `json:"policy"`
	Level               string   `json:"level"`
	ImplementationSteps []string `json:"implementation_steps"`
	Timeline            string   `json:"timeline"`
	ResponsibleEntities []string `json:"responsible_entities"`
}

var planResponsibleEntities = []string{
	"Health Department",
	"Emergency Management",
	"Government Communications",
}

// planTemplates holds the fixed rollout steps per policy dimension.
var planTemplates = map[PolicyDimension][]string{
	DimSocialDistancing: {
		"Establish capacity limits for public spaces",
		"Install physical distancing markers in high-traffic areas",
		"Modify public transportation schedules and capacity",
		"Issue guidelines for workplaces and schools",
		"Create public awareness campaign",
	},
	DimMasking: {
		"Issue public health order requiring masks in public spaces",
		"Distribute masks to vulnerable populations",
		"Establish compliance guidelines for businesses",
		"Launch public education campaign on proper mask usage",
		"Set up reporting system for non-compliance",
	},
	DimTesting: {
		"Expand testing capacity and accessibility",
		"Prioritize testing for symptomatic and exposed individuals",
		"Stand up community testing sites",
		"Establish isolation protocols and support",
		"Create data management system for case tracking",
	},
	DimContactTracing: {
		"Recruit and train contact tracers",
		"Implement digital contact tracing solution",
		"Define notification and follow-up procedures",
		"Coordinate with testing providers on case data",
		"Establish quarantine support services",
	},
	DimTravelRestrictions: {
		"Define restriction boundaries and checkpoints",
		"Establish exemption criteria and application process",
		"Coordinate with transportation providers",
		"Implement testing requirements for travelers",
		"Create quarantine protocols for incoming travelers",
	},
	DimVaccination: {
		"Secure vaccine supply and distribution chain",
		"Establish priority groups and phased approach",
		"Set up vaccination centers and mobile units",
		"Create appointment and tracking system",
		"Launch public awareness campaign to encourage participation",
	},
	DimEconomicSupport: {
		"Define eligibility criteria for support programs",
		"Set up application and disbursement infrastructure",
		"Create financial support program for affected businesses",
		"Coordinate with employers on wage subsidy schemes",
		"Set up support hotline for affected businesses",
	},
	DimHealthcareCapacity: {
		"Inventory current bed, ICU, and ventilator capacity",
		"Activate surge staffing agreements",
		"Convert suitable facilities into overflow wards",
		"Procure additional equipment and supplies",
		"Coordinate patient transfers between districts",
	},
}

// BuildImplementationPlan generates one plan step per policy dimension whose
// chosen level is above its baseline. The steps are fixed per-dimension
// templates; the timeline scales with how far the level sits above baseline.
func BuildImplementationPlan(catalog *PolicyCatalog, decision PolicyDecision) ([]PlanStep, error) {
	if err := catalog.Validate(decision); err != nil {
		return nil, err
	}

	var plan []PlanStep
	for _, dim := range Dimensions {
		level, ok := decision[dim]
		if !ok || level == catalog.BaselineLevel(dim) {
			continue
		}

		severity := 0
		for i, name := range catalog.Levels(dim) {
			if name == level {
				severity = i
				break
			}
		}

		plan = append(plan, PlanStep{
			Dimension:           string(dim),
			Level:               level,
			ImplementationSteps: planTemplates[dim],
			Timeline:            fmt.Sprintf("%d days", severity+1),
			ResponsibleEntities: planResponsibleEntities,
		})
	}
	return plan, nil
}
