package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recourse/intake/pkg/domain"
)

func testFlow(t *testing.T) *Flow {
	t.Helper()
	fields := []Field{
		{Name: "kind", Kind: domain.KindChoice, Options: []string{"basic", "detailed"}},
		{Name: "detail", Kind: domain.KindText, When: Equals("kind", "detailed")},
		{Name: "amount", Kind: domain.KindMoney},
	}
	steps := []Step{
		{Ordinal: 1, Label: "kind", Title: "Kind", Fields: []string{"kind"},
			Rules: []Rule{
				{Field: "kind", Check: Answered("kind"), Message: "Pick a kind"},
			}},
		{Ordinal: 2, Label: "detail", Title: "Detail", Fields: []string{"detail", "amount"},
			Rules: []Rule{
				{Field: "detail", Check: NotBlank("detail"), Message: "Detail is required"},
				{Field: "amount", Check: NotBlank("amount"), Message: "Amount is required"},
				{Field: "amount", When: Answered("amount"), Check: MoneyFormat("amount"), Message: "Amount must be a dollar figure"},
			}},
	}
	fl, err := New("test", "test_draft", fields, steps, 3)
	require.NoError(t, err)
	return fl
}

func TestNewRejectsBadDefinitions(t *testing.T) {
	field := []Field{{Name: "a", Kind: domain.KindText}}

	_, err := New("", "k", field, []Step{{Ordinal: 1}}, 0)
	assert.Error(t, err, "missing name")

	_, err = New("x", "k", field, []Step{{Ordinal: 2}}, 0)
	assert.Error(t, err, "non-contiguous ordinals")

	_, err = New("x", "k", field, []Step{{Ordinal: 1, Fields: []string{"ghost"}}}, 0)
	assert.Error(t, err, "unknown step field")

	_, err = New("x", "k", field, []Step{{Ordinal: 1, Rules: []Rule{{Check: Answered("a")}}}}, 0)
	assert.Error(t, err, "flow-level rule without key")
}

func TestValidateReportsAllFailures(t *testing.T) {
	fl := testFlow(t)
	a := fl.NewAnswers()
	require.NoError(t, a.Set("kind", domain.ChoiceValue("detailed")))
	items := fl.NewCollection()

	res := fl.Validate(2, a, items)
	assert.False(t, res.OK())
	assert.Equal(t, "Detail is required", res.Fields["detail"])
	assert.Equal(t, "Amount is required", res.Fields["amount"], "no short-circuit on the first failure")
}

func TestValidateLaterRuleOverridesSameKey(t *testing.T) {
	fl := testFlow(t)
	a := fl.NewAnswers()
	require.NoError(t, a.Set("kind", domain.ChoiceValue("basic")))
	require.NoError(t, a.Set("amount", domain.MoneyValue("12.345")))

	res := fl.Validate(2, a, fl.NewCollection())
	assert.Equal(t, "Amount must be a dollar figure", res.Fields["amount"])
}

func TestValidateSkipsHiddenFields(t *testing.T) {
	fl := testFlow(t)
	a := fl.NewAnswers()
	require.NoError(t, a.Set("kind", domain.ChoiceValue("basic")))
	require.NoError(t, a.Set("amount", domain.MoneyValue("50")))
	items := fl.NewCollection()

	res := fl.Validate(2, a, items)
	assert.True(t, res.OK(), "hidden detail field must not be required: %v", res.Fields)

	// Making the field visible re-arms its rule.
	require.NoError(t, a.Set("kind", domain.ChoiceValue("detailed")))
	res = fl.Validate(2, a, items)
	assert.Equal(t, "Detail is required", res.Fields["detail"])
}

func TestValidateIsPure(t *testing.T) {
	fl := testFlow(t)
	a := fl.NewAnswers()
	items := fl.NewCollection()

	first := fl.Validate(1, a, items)
	second := fl.Validate(1, a, items)
	assert.True(t, first.Equal(second))
}

func TestFieldRequiredTracksVisibility(t *testing.T) {
	fl := testFlow(t)
	a := fl.NewAnswers()
	items := fl.NewCollection()

	assert.False(t, fl.FieldRequired("detail", a, items))

	require.NoError(t, a.Set("kind", domain.ChoiceValue("detailed")))
	assert.True(t, fl.FieldRequired("detail", a, items))
}

func TestAdvisoryNeverBlocks(t *testing.T) {
	fields := []Field{{Name: "ok", Kind: domain.KindChoice, Options: []string{"yes", "no"}}}
	steps := []Step{{Ordinal: 1, Label: "gate", Title: "Gate", Fields: []string{"ok"},
		Rules: []Rule{
			{Field: "ok", Key: "warning", Check: Not(Equals("ok", "no")), Message: "This may not apply to you.", Advisory: true},
		}}}
	fl := MustNew("adv", "adv_draft", fields, steps, 0)

	a := fl.NewAnswers()
	require.NoError(t, a.Set("ok", domain.ChoiceValue("no")))

	res := fl.Validate(1, a, fl.NewCollection())
	assert.True(t, res.OK())
	assert.False(t, res.Empty())
	assert.Equal(t, "This may not apply to you.", res.Advisory)
}

func TestDefaultsApplied(t *testing.T) {
	fields := []Field{{Name: "when", Kind: domain.KindDate, Default: func() domain.Value {
		return domain.DateValue(mustDate("2024-06-01"))
	}}}
	fl := MustNew("def", "def_draft", fields, []Step{{Ordinal: 1, Fields: []string{"when"}}}, 0)

	a := fl.NewAnswers()
	assert.Equal(t, mustDate("2024-06-01"), a.Date("when"))
}
