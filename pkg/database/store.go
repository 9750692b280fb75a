package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arnavshah/roster-api-go/pkg/roster"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrRosterNotFound is returned for an unknown roster id
var ErrRosterNotFound = errors.New("roster not found")

// ListDirectory returns the team directory ordered by name
func ListDirectory(db *gorm.DB) ([]roster.DirectoryEntry, error) {
	var members []TeamMember
	if err := db.Order("name").Find(&members).Error; err != nil {
		return nil, err
	}
	entries := make([]roster.DirectoryEntry, 0, len(members))
	for _, m := range members {
		entries = append(entries, roster.DirectoryEntry{Name: m.Name, Email: m.Email, Roles: m.Roles})
	}
	return entries, nil
}

// ReplaceDirectory swaps the whole team directory for entries
func ReplaceDirectory(db *gorm.DB, entries []roster.DirectoryEntry) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&TeamMember{}).Error; err != nil {
			return err
		}
		seen := make(map[string]bool, len(entries))
		for _, e := range entries {
			name := strings.TrimSpace(e.Name)
			if name == "" || seen[strings.ToUpper(name)] {
				continue
			}
			seen[strings.ToUpper(name)] = true
			m := TeamMember{Name: name, Email: strings.TrimSpace(e.Email), Roles: e.Roles}
			if err := tx.Create(&m).Error; err != nil {
				return fmt.Errorf("save member %s: %w", name, err)
			}
		}
		return nil
	})
}

// SaveRoster stores a generation result and returns its new id
func SaveRoster(db *gorm.DB, keyID uint, res *roster.Result) (string, error) {
	saved := SavedRoster{
		ID:           uuid.NewString(),
		KeyID:        keyID,
		Dates:        res.Dates,
		Availability: res.Availability,
		Slots:        make([]SavedSlot, 0, len(res.Slots)),
	}
	for i, s := range res.Slots {
		saved.Slots = append(saved.Slots, SavedSlot{
			Position: i,
			Date:     s.Date,
			Function: s.Function,
			Area:     string(s.Area),
			Assigned: s.Assigned,
		})
	}
	if err := db.Create(&saved).Error; err != nil {
		return "", fmt.Errorf("save roster: %w", err)
	}
	return saved.ID, nil
}

// LoadRoster returns a roster saved under keyID as a Result. Rosters of
// other keys are reported as not found.
func LoadRoster(db *gorm.DB, keyID uint, id string) (*roster.Result, error) {
	var saved SavedRoster
	err := db.Preload("Slots", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position")
	}).First(&saved, "id = ? AND key_id = ?", id, keyID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRosterNotFound
	}
	if err != nil {
		return nil, err
	}
	return toResult(&saved), nil
}

// UpdateSlot reassigns one seat of a roster saved under keyID and returns
// the roster after the edit together with the slot as it was before.
func UpdateSlot(db *gorm.DB, keyID uint, id string, index int, name string) (*roster.Result, roster.Slot, error) {
	var res *roster.Result
	var prev roster.Slot
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		res, err = LoadRoster(tx, keyID, id)
		if err != nil {
			return err
		}
		prev, err = roster.Reassign(res.Slots, index, name)
		if err != nil {
			return err
		}
		return tx.Model(&SavedSlot{}).
			Where("roster_id = ? AND position = ?", id, index).
			Update("assigned", res.Slots[index].Assigned).Error
	})
	if err != nil {
		return nil, roster.Slot{}, err
	}
	return res, prev, nil
}

func toResult(saved *SavedRoster) *roster.Result {
	res := &roster.Result{
		Dates:        saved.Dates,
		Slots:        make([]roster.Slot, 0, len(saved.Slots)),
		Availability: saved.Availability,
		Warnings:     []string{},
	}
	for _, s := range saved.Slots {
		res.Slots = append(res.Slots, roster.Slot{
			Date:     s.Date,
			Function: s.Function,
			Assigned: s.Assigned,
			Area:     roster.Area(s.Area),
		})
	}
	return res
}
