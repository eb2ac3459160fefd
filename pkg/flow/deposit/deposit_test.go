package deposit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recourse/intake/pkg/domain"
)

func TestFlowShape(t *testing.T) {
	fl := New()

	assert.Equal(t, "deposit_claim", fl.Name)
	assert.Equal(t, DraftKey, fl.DraftKey)
	require.Equal(t, 6, fl.Steps())

	labels := make([]string, 0, fl.Steps())
	for n := 1; n <= fl.Steps(); n++ {
		step, err := fl.Step(n)
		require.NoError(t, err)
		labels = append(labels, step.Label)
	}
	assert.Equal(t, []string{"Details", "Landlord", "Situation", "Evidence", "You", "Review"}, labels)
}

func TestStepOneGate(t *testing.T) {
	fl := New()
	a := fl.NewAnswers()
	items := fl.NewCollection()

	res := fl.Validate(1, a, items)
	assert.Equal(t, "Please select your move-out date", res.Fields["moveOutDate"])
	assert.Equal(t, "Please enter your deposit amount", res.Fields["depositAmount"])
	assert.Equal(t, "Please enter the amount returned (or $0)", res.Fields["amountReturned"])

	require.NoError(t, a.Set("moveOutDate", domain.DateValue(time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC))))
	require.NoError(t, a.Set("depositAmount", domain.MoneyValue("2500")))
	require.NoError(t, a.Set("amountReturned", domain.MoneyValue("0")))
	assert.True(t, fl.Validate(1, a, items).OK())
}

func TestMoneyFormat(t *testing.T) {
	fl := New()
	items := fl.NewCollection()

	cases := []struct {
		amount string
		ok     bool
	}{
		{"2500", true},
		{"2500.50", true},
		{"0", true},
		{"12.3", true},
		{"12.345", false},
		{"twelve", false},
		{"$100", false},
		{"-5", false},
	}
	for _, tc := range cases {
		a := fl.NewAnswers()
		require.NoError(t, a.Set("moveOutDate", domain.DateValue(time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC))))
		require.NoError(t, a.Set("depositAmount", domain.MoneyValue(tc.amount)))
		require.NoError(t, a.Set("amountReturned", domain.MoneyValue("0")))

		res := fl.Validate(1, a, items)
		if tc.ok {
			assert.True(t, res.OK(), "amount %q should pass: %v", tc.amount, res.Fields)
		} else {
			assert.Equal(t, "Please enter a valid amount (up to two decimals)", res.Fields["depositAmount"], "amount %q", tc.amount)
		}
	}
}

func TestDeductionReasonsVisibility(t *testing.T) {
	fl := New()
	a := fl.NewAnswers()
	items := fl.NewCollection()

	// Hidden until the landlord sent an itemized statement.
	assert.False(t, fl.FieldVisible("deductionReasons", a, items))

	require.NoError(t, a.Set("receivedItemizedStatement", domain.ChoiceValue(StatementNo)))
	assert.False(t, fl.FieldVisible("deductionReasons", a, items))

	require.NoError(t, a.Set("receivedItemizedStatement", domain.ChoiceValue(StatementYes)))
	assert.True(t, fl.FieldVisible("deductionReasons", a, items))

	require.NoError(t, a.Set("receivedItemizedStatement", domain.ChoiceValue(StatementPartial)))
	assert.True(t, fl.FieldVisible("deductionReasons", a, items))
}

func TestEmailGate(t *testing.T) {
	fl := New()
	items := fl.NewCollection()

	a := fl.NewAnswers()
	require.NoError(t, a.Set("yourName", domain.TextValue("Ada Lovelace")))

	res := fl.Validate(5, a, items)
	assert.Equal(t, "Please enter your email address", res.Fields["yourEmail"])

	require.NoError(t, a.Set("yourEmail", domain.TextValue("not-an-email")))
	res = fl.Validate(5, a, items)
	assert.Equal(t, "Please enter a valid email address", res.Fields["yourEmail"])

	require.NoError(t, a.Set("yourEmail", domain.TextValue("ada@example.com")))
	assert.True(t, fl.Validate(5, a, items).OK())
}

func TestReviewStepHasNoGate(t *testing.T) {
	fl := New()
	res := fl.Validate(6, fl.NewAnswers(), fl.NewCollection())
	assert.True(t, res.Empty())
}

func TestOptionalFieldsNeverGate(t *testing.T) {
	fl := New()
	a := fl.NewAnswers()
	items := fl.NewCollection()

	for _, name := range []string{"daysAfterMoveOut", "additionalDamages", "yourPhone", "landlordAddress"} {
		assert.False(t, fl.FieldRequired(name, a, items), "%s is optional", name)
	}
}
