package hpaction

// TimeSlot mirrors one row of the CIV-LT-61 inspection availability grid.
// Availability varies by borough.
type TimeSlot struct {
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	Description string   `json:"description"`
	Weekend     bool     `json:"weekend"`
	Boroughs    []string `json:"boroughs"`
}

var timeSlots = []TimeSlot{
	{
		ID:          "weekday_9_1",
		Label:       "Weekday: 9 AM - 1 PM",
		Description: "Available in all boroughs",
		Boroughs:    []string{Manhattan, Brooklyn, Bronx, Queens, StatenIsland},
	},
	{
		ID:          "weekday_12_5",
		Label:       "Weekday: 12 PM - 5 PM",
		Description: "Manhattan, Brooklyn, Bronx, Queens",
		Boroughs:    []string{Manhattan, Brooklyn, Bronx, Queens},
	},
	{
		ID:          "weekday_4_9",
		Label:       "Weekday: 4 PM - 9 PM",
		Description: "Manhattan, Brooklyn, Bronx only",
		Boroughs:    []string{Manhattan, Brooklyn, Bronx},
	},
	{
		ID:          "weekend_9_5",
		Label:       "Weekend: 9 AM - 5 PM",
		Description: "Manhattan, Brooklyn, Bronx only",
		Weekend:     true,
		Boroughs:    []string{Manhattan, Brooklyn, Bronx},
	},
}

// Slots returns every inspection time slot.
func Slots() []TimeSlot {
	return append([]TimeSlot(nil), timeSlots...)
}

// SlotIDs returns the tokens of every slot, for multi-choice declarations.
func SlotIDs() []string {
	ids := make([]string, len(timeSlots))
	for i, slot := range timeSlots {
		ids[i] = slot.ID
	}
	return ids
}

// SlotsForBorough returns the slots available in the given borough.
// An empty borough returns every slot.
func SlotsForBorough(borough string) []TimeSlot {
	if borough == "" {
		return Slots()
	}
	var out []TimeSlot
	for _, slot := range timeSlots {
		for _, b := range slot.Boroughs {
			if b == borough {
				out = append(out, slot)
				break
			}
		}
	}
	return out
}
