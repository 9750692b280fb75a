package roster

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSlotIndex is returned when an edit targets a slot that does not exist
var ErrSlotIndex = errors.New("slot index out of range")

// Reassign changes the person assigned to slots[index] in place and returns
// the slot as it was before. A blank name clears the seat to Unassigned.
// Date, function and area never change.
func Reassign(slots []Slot, index int, name string) (Slot, error) {
	if index < 0 || index >= len(slots) {
		return Slot{}, fmt.Errorf("%w: %d", ErrSlotIndex, index)
	}
	prev := slots[index]
	name = strings.TrimSpace(name)
	if name == "" {
		name = Unassigned
	}
	slots[index].Assigned = name
	return prev, nil
}

// Suggestions lists the people available for a slot's date and area who
// are not already seated on that date.
func Suggestions(result *Result, slot Slot) []string {
	if result == nil {
		return nil
	}
	index, ok := result.Availability[slot.Date]
	if !ok {
		return nil
	}
	busy := make(map[string]bool)
	for _, s := range result.Slots {
		if s.Date == slot.Date {
			busy[s.Assigned] = true
		}
	}
	var out []string
	for _, name := range index.Areas[slot.Area] {
		if !busy[name] {
			out = append(out, name)
		}
	}
	return out
}
