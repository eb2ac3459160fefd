package hpaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slotIDs(slots []TimeSlot) []string {
	ids := make([]string, len(slots))
	for i, s := range slots {
		ids[i] = s.ID
	}
	return ids
}

func TestSlotsForBorough(t *testing.T) {
	assert.Equal(t, []string{"weekday_9_1"}, slotIDs(SlotsForBorough(StatenIsland)))
	assert.Equal(t, []string{"weekday_9_1", "weekday_12_5"}, slotIDs(SlotsForBorough(Queens)))
	assert.Len(t, SlotsForBorough(Manhattan), 4)
	assert.Len(t, SlotsForBorough(Brooklyn), 4)
	assert.Len(t, SlotsForBorough(Bronx), 4)
}

func TestSlotsForUnknownBorough(t *testing.T) {
	assert.Empty(t, SlotsForBorough("yonkers"))
	assert.Len(t, SlotsForBorough(""), len(Slots()))
}

func TestSlotIDsMatchDeclaredOptions(t *testing.T) {
	fl := New()
	field, ok := fl.Field("inspectionTimes")
	require.True(t, ok)
	assert.Equal(t, SlotIDs(), field.Options)
}

func TestWeekendFlag(t *testing.T) {
	for _, slot := range Slots() {
		if slot.ID == "weekend_9_5" {
			assert.True(t, slot.Weekend)
		} else {
			assert.False(t, slot.Weekend, slot.ID)
		}
	}
}
