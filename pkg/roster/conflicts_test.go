package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSlots() []Slot {
	return []Slot{
		{Date: "05/06", Function: "PRODUÇÃO", Assigned: "Ana Silva", Area: AreaProduction},
		{Date: "05/06", Function: "Camera 1", Assigned: "Bia Souza", Area: AreaFilming},
		{Date: "05/06", Function: "Camera 2", Assigned: Unassigned, Area: AreaFilming},
		{Date: "05/06", Function: "Camera 3", Assigned: Unassigned, Area: AreaFilming},
		{Date: "12/06", Function: "PRODUÇÃO", Assigned: "Ana Silva", Area: AreaProduction},
		{Date: "12/06", Function: "Camera 1", Assigned: "Caio Reis", Area: AreaFilming},
	}
}

func TestDetectConflicts_CleanRoster(t *testing.T) {
	conflicts := DetectConflicts(sampleSlots())
	assert.NotNil(t, conflicts)
	assert.Empty(t, conflicts)
	assert.False(t, HasConflicts(sampleSlots()))
}

func TestDetectConflicts_AfterEdit(t *testing.T) {
	slots := sampleSlots()
	_, err := Reassign(slots, 1, "Ana Silva")
	require.NoError(t, err)
	_, err = Reassign(slots, 2, "Ana Silva")
	require.NoError(t, err)
	_, err = Reassign(slots, 5, "Caio Reis")
	require.NoError(t, err)

	want := []Conflict{{Date: "05/06", Name: "Ana Silva"}}
	first := DetectConflicts(slots)
	assert.Equal(t, want, first)
	assert.Equal(t, first, DetectConflicts(slots))
	assert.True(t, HasConflicts(slots))
}

func TestReassign_RoundTrip(t *testing.T) {
	slots := sampleSlots()
	orig := slots[1]

	prev, err := Reassign(slots, 1, "Caio Reis")
	require.NoError(t, err)
	assert.Equal(t, orig, prev)
	assert.Equal(t, "Caio Reis", slots[1].Assigned)
	assert.Equal(t, orig.Area, slots[1].Area)
	assert.Equal(t, orig.Function, slots[1].Function)

	_, err = Reassign(slots, 1, prev.Assigned)
	require.NoError(t, err)
	assert.Equal(t, orig, slots[1])
}

func TestReassign_BlankClearsSeat(t *testing.T) {
	slots := sampleSlots()
	_, err := Reassign(slots, 0, "  ")
	require.NoError(t, err)
	assert.Equal(t, Unassigned, slots[0].Assigned)
}

func TestReassign_OutOfRange(t *testing.T) {
	_, err := Reassign(sampleSlots(), 6, "Ana Silva")
	assert.ErrorIs(t, err, ErrSlotIndex)
	_, err = Reassign(sampleSlots(), -1, "Ana Silva")
	assert.ErrorIs(t, err, ErrSlotIndex)
}

func TestSuggestions(t *testing.T) {
	res := &Result{
		Slots: sampleSlots(),
		Availability: map[string]Availability{
			"05/06": {Areas: map[Area][]string{AreaFilming: {"Ana Silva", "Bia Souza", "Davi Lopes"}}},
		},
	}
	assert.Equal(t, []string{"Davi Lopes"}, Suggestions(res, res.Slots[2]))
	assert.Nil(t, Suggestions(res, Slot{Date: "19/06", Area: AreaFilming}))
}
