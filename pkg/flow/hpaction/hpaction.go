// Package hpaction defines the HP Action (housing conditions inspection
// request) intake flow, based on the CIV-LT-61 form structure.
package hpaction

import (
	"time"

	"github.com/recourse/intake/pkg/domain"
	"github.com/recourse/intake/pkg/flow"
)

// DraftKey is the stable storage key for this flow's draft record.
const DraftKey = "recourse_hp_action_draft"

// AdvisoryKey is the field-less error key carrying the ineligibility
// advisory.
const AdvisoryKey = "eligibility"

// Borough tokens.
const (
	Manhattan    = "manhattan"
	Brooklyn     = "brooklyn"
	Bronx        = "bronx"
	Queens       = "queens"
	StatenIsland = "staten_island"
)

// Boroughs lists the valid borough tokens.
func Boroughs() []string {
	return []string{Manhattan, Brooklyn, Bronx, Queens, StatenIsland}
}

// childDetailsNeeded gates the child name/age questions: they only apply
// when a child under six lives in or regularly visits the apartment.
var childDetailsNeeded = flow.OneOf("childUnderSix", "lives_here", "visits_10hrs")

// accessViaThirdParty gates the access-contact details: they only apply
// when someone other than the tenant lets the inspector in.
var accessViaThirdParty = flow.OneOf("accessContact", "super", "other")

// New builds the seven-step HP Action flow: Eligibility, Your Info,
// Child <6, Access, Times, Conditions, Review. Advancing past Review
// completes the flow.
func New() *flow.Flow {
	fields := []flow.Field{
		// Step 1: Eligibility
		{Name: "isNYCProperty", Kind: domain.KindChoice, Options: []string{"yes", "no"}},
		{Name: "isTenantOrOccupant", Kind: domain.KindChoice, Options: []string{"yes", "no"}},
		{Name: "isCurrentCondition", Kind: domain.KindChoice, Options: []string{"yes", "no"}},
		{Name: "hasExistingCase", Kind: domain.KindChoice, Options: []string{"yes", "no"}},

		// Step 2: Tenant info
		{Name: "tenantName", Kind: domain.KindText},
		{Name: "apartmentAddress", Kind: domain.KindText},
		{Name: "apartmentNumber", Kind: domain.KindText},
		{Name: "floor", Kind: domain.KindText},
		{Name: "borough", Kind: domain.KindChoice, Options: Boroughs()},
		{Name: "tenantEmail", Kind: domain.KindText},
		{Name: "phoneHome", Kind: domain.KindText},
		{Name: "phoneWork", Kind: domain.KindText},

		// Step 3: Child under six
		{Name: "childUnderSix", Kind: domain.KindChoice, Options: []string{"no", "lives_here", "visits_10hrs"}},
		{Name: "childName", Kind: domain.KindText, When: childDetailsNeeded},
		{Name: "childAge", Kind: domain.KindText, When: childDetailsNeeded},

		// Step 4: Access for inspection
		{Name: "accessContact", Kind: domain.KindChoice, Options: []string{"tenant", "super", "other"}},
		{Name: "accessContactName", Kind: domain.KindText, When: accessViaThirdParty},
		{Name: "accessContactPhone", Kind: domain.KindText, When: accessViaThirdParty},

		// Step 5: Inspection availability
		{Name: "inspectionTimes", Kind: domain.KindMultiChoice, Options: SlotIDs()},

		// Step 7: Review & confirmation
		{Name: "requestDate", Kind: domain.KindDate, Default: func() domain.Value {
			return domain.DateValue(time.Now().Truncate(24 * time.Hour))
		}},
		{Name: "tenantAffirmation", Kind: domain.KindBool},
	}

	steps := []flow.Step{
		{
			Ordinal: 1,
			Label:   "Eligibility",
			Title:   "Let's make sure this is the right path",
			Fields:  []string{"isNYCProperty", "isTenantOrOccupant", "isCurrentCondition", "hasExistingCase"},
			Rules: []flow.Rule{
				{Field: "isNYCProperty", Check: flow.Answered("isNYCProperty"), Message: "Please select an option"},
				{Field: "isTenantOrOccupant", Check: flow.Answered("isTenantOrOccupant"), Message: "Please select an option"},
				{Field: "isCurrentCondition", Check: flow.Answered("isCurrentCondition"), Message: "Please select an option"},
				{Field: "hasExistingCase", Check: flow.Answered("hasExistingCase"), Message: "Please select an option"},
				// Advisory only: the user may proceed and self-correct.
				{
					Key: AdvisoryKey,
					Check: flow.Not(flow.Or(
						flow.Equals("isNYCProperty", "no"),
						flow.Equals("isTenantOrOccupant", "no"),
						flow.Equals("isCurrentCondition", "no"),
					)),
					Message:  "Based on your answers, HP Action may not be the right path.",
					Advisory: true,
				},
			},
		},
		{
			Ordinal: 2,
			Label:   "Your Info",
			Title:   "Your information",
			Fields:  []string{"tenantName", "apartmentAddress", "apartmentNumber", "floor", "borough", "tenantEmail", "phoneHome", "phoneWork"},
			Rules: []flow.Rule{
				{Field: "tenantName", Check: flow.NotBlank("tenantName"), Message: "Please enter your name"},
				{Field: "apartmentAddress", Check: flow.NotBlank("apartmentAddress"), Message: "Please enter the address"},
				{Field: "borough", Check: flow.Answered("borough"), Message: "Please select your borough"},
				{Field: "phoneHome", Check: flow.NotBlank("phoneHome"), Message: "Please enter a phone number"},
			},
		},
		{
			Ordinal: 3,
			Label:   "Child <6",
			Title:   "Child under six?",
			Fields:  []string{"childUnderSix", "childName", "childAge"},
			Rules: []flow.Rule{
				{Field: "childUnderSix", Check: flow.Answered("childUnderSix"), Message: "Please select an option"},
				{Field: "childName", Check: flow.NotBlank("childName"), Message: "Please enter the child's name"},
			},
		},
		{
			Ordinal: 4,
			Label:   "Access",
			Title:   "Access for inspection",
			Fields:  []string{"accessContact", "accessContactName", "accessContactPhone"},
			Rules: []flow.Rule{
				{Field: "accessContact", Check: flow.Answered("accessContact"), Message: "Please select who can provide access"},
				{Field: "accessContactName", Check: flow.NotBlank("accessContactName"), Message: "Please enter contact name"},
				{Field: "accessContactPhone", Check: flow.NotBlank("accessContactPhone"), Message: "Please enter contact phone"},
			},
		},
		{
			Ordinal: 5,
			Label:   "Times",
			Title:   "When are you available?",
			Fields:  []string{"inspectionTimes"},
			Rules: []flow.Rule{
				{Field: "inspectionTimes", Check: flow.Answered("inspectionTimes"), Message: "Please select at least one time window"},
			},
		},
		{
			Ordinal: 6,
			Label:   "Conditions",
			Title:   "What conditions need inspection?",
			Rules: []flow.Rule{
				{Key: "conditions", Check: flow.MinItems(1), Message: "Please add at least one condition"},
				{Key: "conditions", When: flow.MinItems(1), Check: flow.ItemsComplete(), Message: "Please complete the description for all conditions"},
			},
		},
		{
			Ordinal: 7,
			Label:   "Review",
			Title:   "Review your request",
			Fields:  []string{"requestDate", "tenantAffirmation"},
			Rules: []flow.Rule{
				{Field: "tenantAffirmation", Check: flow.IsTrue("tenantAffirmation"), Message: "Please confirm the information is accurate"},
			},
		},
	}

	return flow.MustNew("hp_action", DraftKey, fields, steps, domain.DefaultItemCap)
}
