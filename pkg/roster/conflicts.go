package roster

import "strings"

// DetectConflicts reports every (date, person) booked more than once, in
// order of first occurrence. Unassigned seats are ignored.
func DetectConflicts(slots []Slot) []Conflict {
	counts := make(map[Conflict]int)
	var order []Conflict
	for _, s := range slots {
		name := strings.TrimSpace(s.Assigned)
		if name == "" || name == Unassigned {
			continue
		}
		key := Conflict{Date: s.Date, Name: name}
		if counts[key] == 0 {
			order = append(order, key)
		}
		counts[key]++
	}

	conflicts := make([]Conflict, 0)
	for _, key := range order {
		if counts[key] > 1 {
			conflicts = append(conflicts, key)
		}
	}
	return conflicts
}

// HasConflicts is a shortcut for gating exports on a clean roster
func HasConflicts(slots []Slot) bool {
	return len(DetectConflicts(slots)) > 0
}
