package hpaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recourse/intake/pkg/domain"
	"github.com/recourse/intake/pkg/flow"
)

func answeredEligibility(t *testing.T, fl *flow.Flow, nyc, tenant, current, existing string) *domain.Answers {
	t.Helper()
	a := fl.NewAnswers()
	require.NoError(t, a.Set("isNYCProperty", domain.ChoiceValue(nyc)))
	require.NoError(t, a.Set("isTenantOrOccupant", domain.ChoiceValue(tenant)))
	require.NoError(t, a.Set("isCurrentCondition", domain.ChoiceValue(current)))
	require.NoError(t, a.Set("hasExistingCase", domain.ChoiceValue(existing)))
	return a
}

func TestFlowShape(t *testing.T) {
	fl := New()

	assert.Equal(t, "hp_action", fl.Name)
	assert.Equal(t, DraftKey, fl.DraftKey)
	assert.Equal(t, 7, fl.Steps())
	assert.Equal(t, domain.DefaultItemCap, fl.MaxItems)
}

func TestIneligibilityIsAdvisoryOnly(t *testing.T) {
	fl := New()
	items := fl.NewCollection()

	a := answeredEligibility(t, fl, "no", "yes", "yes", "no")
	res := fl.Validate(1, a, items)
	assert.True(t, res.OK(), "an ineligible answer must not block advancing")
	assert.Equal(t, "Based on your answers, HP Action may not be the right path.", res.Advisory)

	a = answeredEligibility(t, fl, "yes", "yes", "yes", "no")
	res = fl.Validate(1, a, items)
	assert.True(t, res.OK())
	assert.Empty(t, res.Advisory)

	// An existing case does not trigger the advisory.
	a = answeredEligibility(t, fl, "yes", "yes", "yes", "yes")
	assert.Empty(t, fl.Validate(1, a, items).Advisory)
}

func TestUnansweredEligibilityBlocks(t *testing.T) {
	fl := New()
	res := fl.Validate(1, fl.NewAnswers(), fl.NewCollection())
	assert.False(t, res.OK())
	assert.Len(t, res.Fields, 4)
	assert.Equal(t, "Please select an option", res.Fields["isNYCProperty"])
}

func TestChildDetailsConditional(t *testing.T) {
	fl := New()
	a := fl.NewAnswers()
	items := fl.NewCollection()

	assert.False(t, fl.FieldVisible("childName", a, items))

	require.NoError(t, a.Set("childUnderSix", domain.ChoiceValue("no")))
	assert.False(t, fl.FieldVisible("childName", a, items))
	assert.True(t, fl.Validate(3, a, items).OK(), "no child means no detail questions")

	require.NoError(t, a.Set("childUnderSix", domain.ChoiceValue("lives_here")))
	assert.True(t, fl.FieldVisible("childName", a, items))
	res := fl.Validate(3, a, items)
	assert.Equal(t, "Please enter the child's name", res.Fields["childName"])

	require.NoError(t, a.Set("childUnderSix", domain.ChoiceValue("visits_10hrs")))
	assert.True(t, fl.FieldVisible("childAge", a, items))
}

func TestAccessContactConditional(t *testing.T) {
	fl := New()
	a := fl.NewAnswers()
	items := fl.NewCollection()

	require.NoError(t, a.Set("accessContact", domain.ChoiceValue("tenant")))
	assert.False(t, fl.FieldVisible("accessContactName", a, items))
	assert.True(t, fl.Validate(4, a, items).OK())

	require.NoError(t, a.Set("accessContact", domain.ChoiceValue("super")))
	res := fl.Validate(4, a, items)
	assert.Equal(t, "Please enter contact name", res.Fields["accessContactName"])
	assert.Equal(t, "Please enter contact phone", res.Fields["accessContactPhone"])
}

func TestConditionsGate(t *testing.T) {
	fl := New()
	a := fl.NewAnswers()
	items := fl.NewCollection()

	res := fl.Validate(6, a, items)
	assert.Equal(t, "Please add at least one condition", res.Fields["conditions"])

	item, err := items.Add()
	require.NoError(t, err)
	res = fl.Validate(6, a, items)
	assert.Equal(t, "Please complete the description for all conditions", res.Fields["conditions"])

	room := "Bathroom"
	desc := "Mold on the ceiling"
	require.NoError(t, items.Update(item.ID, domain.ItemPatch{Room: &room, Description: &desc}))
	assert.True(t, fl.Validate(6, a, items).OK())
}

func TestAffirmationGate(t *testing.T) {
	fl := New()
	a := fl.NewAnswers()
	items := fl.NewCollection()

	res := fl.Validate(7, a, items)
	assert.Equal(t, "Please confirm the information is accurate", res.Fields["tenantAffirmation"])

	require.NoError(t, a.Set("tenantAffirmation", domain.BoolValue(true)))
	assert.True(t, fl.Validate(7, a, items).OK())
}

func TestRequestDateDefaultsToToday(t *testing.T) {
	fl := New()
	a := fl.NewAnswers()
	assert.False(t, a.Date("requestDate").IsZero())
}

func TestInspectionTimesGate(t *testing.T) {
	fl := New()
	a := fl.NewAnswers()
	items := fl.NewCollection()

	res := fl.Validate(5, a, items)
	assert.Equal(t, "Please select at least one time window", res.Fields["inspectionTimes"])

	require.NoError(t, a.Set("inspectionTimes", domain.MultiChoiceValue([]string{"weekday_9_1"})))
	assert.True(t, fl.Validate(5, a, items).OK())
}
