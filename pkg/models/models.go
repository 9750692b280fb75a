package models

import "github.com/arnavshah/roster-api-go/pkg/roster"

// RosterInput is the JSON body of a roster generation request
type RosterInput struct {
	Rows       []map[string]string     `json:"rows"`
	Directory  []roster.DirectoryEntry `json:"directory,omitempty"`
	Areas      []string                `json:"areas,omitempty"`
	Headcounts map[string]int          `json:"headcounts,omitempty"`
	Save       bool                    `json:"save,omitempty"`
}

// RosterResponse is the data structure for a generation result
type RosterResponse struct {
	RosterID     string                         `json:"roster_id,omitempty"`
	Dates        []string                       `json:"dates"`
	Slots        []roster.Slot                  `json:"slots"`
	Availability map[string]roster.Availability `json:"availability"`
	Warnings     []string                       `json:"warnings"`
	Conflicts    []roster.Conflict              `json:"conflicts"`
	Unassigned   int                            `json:"unassigned"`
}

// ConflictsInput is a slot collection to check for double bookings
type ConflictsInput struct {
	Slots []roster.Slot `json:"slots" binding:"required"`
}

// ConflictsResponse lists the double bookings of a slot collection
type ConflictsResponse struct {
	Conflicts    []roster.Conflict `json:"conflicts"`
	HasConflicts bool              `json:"has_conflicts"`
}

// SlotUpdate reassigns one slot of a saved roster
type SlotUpdate struct {
	Assigned string `json:"assigned"`
}

// SlotUpdateResponse is the result of a slot edit
type SlotUpdateResponse struct {
	Slot        roster.Slot       `json:"slot"`
	Previous    roster.Slot       `json:"previous"`
	Suggestions []string          `json:"suggestions"`
	Conflicts   []roster.Conflict `json:"conflicts"`
}

// NewRosterResponse wraps a result with its conflicts and unfilled count
func NewRosterResponse(id string, res *roster.Result) RosterResponse {
	unassigned := 0
	for _, s := range res.Slots {
		if s.Assigned == roster.Unassigned {
			unassigned++
		}
	}
	return RosterResponse{
		RosterID:     id,
		Dates:        res.Dates,
		Slots:        res.Slots,
		Availability: res.Availability,
		Warnings:     res.Warnings,
		Conflicts:    roster.DetectConflicts(res.Slots),
		Unassigned:   unassigned,
	}
}
