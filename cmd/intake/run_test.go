package main

import (
	"bufio"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recourse/intake/pkg/adapters/memory"
	"github.com/recourse/intake/pkg/flow"
	"github.com/recourse/intake/pkg/flow/deposit"
	"github.com/recourse/intake/pkg/flow/hpaction"
	"github.com/recourse/intake/pkg/session"
)

func newWizard(t *testing.T, fl *flow.Flow, input string) *wizard {
	t.Helper()
	sess, err := session.New(context.Background(), fl, memory.NewStore(),
		session.WithDebounce(time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(sess.Close)
	return &wizard{sess: sess, in: bufio.NewScanner(strings.NewReader(input))}
}

func TestPromptItemsAddEditDelete(t *testing.T) {
	input := strings.Join([]string{
		"add",
		"", // keep default location
		"Kitchen",
		"No heat in winter",
		"add",
		"public_area",
		"Hallway",
		"Broken light fixture",
		"del 1",
		"done",
	}, "\n") + "\n"
	w := newWizard(t, hpaction.New(), input)

	outcome, err := w.promptItems(context.Background())
	require.NoError(t, err)
	assert.Equal(t, stepContinue, outcome)

	items := w.sess.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "public_area", items[0].Location)
	assert.Equal(t, "Hallway", items[0].Room)
	assert.Equal(t, "Broken light fixture", items[0].Description)
}

func TestPromptItemsRejectsBadIndex(t *testing.T) {
	w := newWizard(t, hpaction.New(), "del 3\ndone\n")

	outcome, err := w.promptItems(context.Background())
	require.NoError(t, err)
	assert.Equal(t, stepContinue, outcome)
	assert.Empty(t, w.sess.Items())
}

func TestBackRestartsStepWithoutAdvancing(t *testing.T) {
	w := newWizard(t, deposit.New(), "!back\n")
	s := w.sess

	require.NoError(t, s.SetChoice("caseType", "security_deposit"))
	require.NoError(t, s.SetDate("moveOutDate", time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, s.SetMoney("depositAmount", "2500"))
	require.NoError(t, s.SetMoney("amountReturned", "0"))
	require.True(t, s.Advance().OK())
	require.Equal(t, 2, s.Step())

	step, err := s.Flow().Step(2)
	require.NoError(t, err)

	outcome, err := w.promptStep(context.Background(), step)
	require.NoError(t, err)
	assert.Equal(t, stepRestart, outcome)

	// Step one is fully answered, so any stray advance would have moved
	// the session forward again.
	assert.Equal(t, 1, s.Step())
}
