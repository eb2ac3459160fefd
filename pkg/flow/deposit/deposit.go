// Package deposit defines the security-deposit claim intake flow.
package deposit

import (
	"github.com/recourse/intake/pkg/domain"
	"github.com/recourse/intake/pkg/flow"
)

// DraftKey is the stable storage key for this flow's draft record.
const DraftKey = "recourse_intake_draft"

// Tokens for the flow's choice fields.
const (
	StatementYes     = "yes"
	StatementNo      = "no"
	StatementPartial = "partial"
)

// deductionStatementGiven gates the deduction-reasons question: it only
// applies when the landlord sent some form of itemized statement.
var deductionStatementGiven = flow.OneOf("receivedItemizedStatement", StatementYes, StatementPartial)

// New builds the six-step security-deposit flow: Details, Landlord,
// Situation, Evidence, You, Review.
func New() *flow.Flow {
	fields := []flow.Field{
		{Name: "caseType", Kind: domain.KindChoice, Options: []string{"security_deposit", "hp_action", "civil_court"}},

		// Step 1: Basic details
		{Name: "moveOutDate", Kind: domain.KindDate},
		{Name: "depositAmount", Kind: domain.KindMoney},
		{Name: "amountReturned", Kind: domain.KindMoney},

		// Step 2: Landlord
		{Name: "landlordName", Kind: domain.KindText},
		{Name: "landlordType", Kind: domain.KindChoice, Options: []string{"individual", "company"}},
		{Name: "propertyAddress", Kind: domain.KindText},
		{Name: "landlordAddress", Kind: domain.KindText},

		// Step 3: What happened
		{Name: "receivedItemizedStatement", Kind: domain.KindChoice, Options: []string{StatementYes, StatementNo, StatementPartial}},
		{Name: "daysAfterMoveOut", Kind: domain.KindText},
		{
			Name:    "deductionReasons",
			Kind:    domain.KindMultiChoice,
			Options: []string{"cleaning", "damage", "unpaid_rent", "painting", "other", "none_given"},
			When:    deductionStatementGiven,
		},

		// Step 4: Evidence
		{Name: "hasPhotos", Kind: domain.KindChoice, Options: []string{"yes", "no"}},
		{Name: "hasReceipts", Kind: domain.KindChoice, Options: []string{"yes", "no"}},
		{Name: "additionalDamages", Kind: domain.KindText},

		// Step 5: Contact
		{Name: "yourName", Kind: domain.KindText},
		{Name: "yourEmail", Kind: domain.KindText},
		{Name: "yourPhone", Kind: domain.KindText},
	}

	steps := []flow.Step{
		{
			Ordinal: 1,
			Label:   "Details",
			Title:   "Let's start with the basics",
			Fields:  []string{"caseType", "moveOutDate", "depositAmount", "amountReturned"},
			Rules: []flow.Rule{
				{Field: "moveOutDate", Check: flow.Answered("moveOutDate"), Message: "Please select your move-out date"},
				{Field: "depositAmount", Check: flow.Answered("depositAmount"), Message: "Please enter your deposit amount"},
				{Field: "depositAmount", When: flow.Answered("depositAmount"), Check: flow.MoneyFormat("depositAmount"), Message: "Please enter a valid amount (up to two decimals)"},
				{Field: "amountReturned", Check: flow.Answered("amountReturned"), Message: "Please enter the amount returned (or $0)"},
				{Field: "amountReturned", When: flow.Answered("amountReturned"), Check: flow.MoneyFormat("amountReturned"), Message: "Please enter a valid amount (up to two decimals)"},
			},
		},
		{
			Ordinal: 2,
			Label:   "Landlord",
			Title:   "About your landlord",
			Fields:  []string{"landlordType", "landlordName", "propertyAddress", "landlordAddress"},
			Rules: []flow.Rule{
				{Field: "landlordType", Check: flow.Answered("landlordType"), Message: "Please select landlord type"},
				{Field: "landlordName", Check: flow.NotBlank("landlordName"), Message: "Please enter landlord name"},
				{Field: "propertyAddress", Check: flow.NotBlank("propertyAddress"), Message: "Please enter the property address"},
			},
		},
		{
			Ordinal: 3,
			Label:   "Situation",
			Title:   "What happened?",
			Fields:  []string{"receivedItemizedStatement", "daysAfterMoveOut", "deductionReasons"},
			Rules: []flow.Rule{
				{Field: "receivedItemizedStatement", Check: flow.Answered("receivedItemizedStatement"), Message: "Please select an option"},
			},
		},
		{
			Ordinal: 4,
			Label:   "Evidence",
			Title:   "What evidence do you have?",
			Fields:  []string{"hasPhotos", "hasReceipts", "additionalDamages"},
			Rules: []flow.Rule{
				{Field: "hasPhotos", Check: flow.Answered("hasPhotos"), Message: "Please select an option"},
				{Field: "hasReceipts", Check: flow.Answered("hasReceipts"), Message: "Please select an option"},
			},
		},
		{
			Ordinal: 5,
			Label:   "You",
			Title:   "Your contact information",
			Fields:  []string{"yourName", "yourEmail", "yourPhone"},
			Rules: []flow.Rule{
				{Field: "yourName", Check: flow.NotBlank("yourName"), Message: "Please enter your full legal name"},
				{Field: "yourEmail", Check: flow.NotBlank("yourEmail"), Message: "Please enter your email address"},
				{Field: "yourEmail", When: flow.NotBlank("yourEmail"), Check: flow.EmailShape("yourEmail"), Message: "Please enter a valid email address"},
			},
		},
		{
			Ordinal: 6,
			Label:   "Review",
			Title:   "Review your answers",
		},
	}

	return flow.MustNew("deposit_claim", DraftKey, fields, steps, domain.DefaultItemCap)
}
