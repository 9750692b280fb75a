package database

import (
	"fmt"
	"time"

	"github.com/arnavshah/roster-api-go/pkg/roster"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// APIKey represents the api_keys table
type APIKey struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Key        string     `gorm:"unique;not null" json:"-"`
	KeyPreview string     `json:"key_preview"`
	Name       string     `gorm:"not null" json:"name"`
	RateLimit  int        `gorm:"default:10000" json:"rate_limit"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsed   *time.Time `json:"last_used"`
}

// APIUsage represents the api_usage table
type APIUsage struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	KeyID            uint   `gorm:"uniqueIndex:idx_key_date;not null" json:"key_id"`
	Date             string `gorm:"uniqueIndex:idx_key_date;not null" json:"date"`
	RequestCount     int    `gorm:"default:0" json:"request_count"`
	TotalSlots       int    `gorm:"default:0" json:"total_slots"`
	TotalRespondents int    `gorm:"default:0" json:"total_respondents"`
}

// MasterUser represents the master_users table
type MasterUser struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"unique;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// TeamMember is one team directory entry
type TeamMember struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	Name      string        `gorm:"uniqueIndex;not null" json:"name"`
	Email     string        `gorm:"index" json:"email,omitempty"`
	Roles     []roster.Area `gorm:"serializer:json" json:"roles"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// SavedRoster is a generated roster kept for later edits
type SavedRoster struct {
	ID           string                         `gorm:"primaryKey;size:36" json:"id"`
	KeyID        uint                           `gorm:"index" json:"key_id"`
	Dates        []string                       `gorm:"serializer:json" json:"dates"`
	Availability map[string]roster.Availability `gorm:"serializer:json" json:"availability"`
	Slots        []SavedSlot                    `gorm:"foreignKey:RosterID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt    time.Time                      `json:"created_at"`
	UpdatedAt    time.Time                      `json:"updated_at"`
}

// SavedSlot is one seat of a saved roster; Position is its index in the
// generated slot order.
type SavedSlot struct {
	ID       uint   `gorm:"primaryKey"`
	RosterID string `gorm:"uniqueIndex:idx_roster_position;size:36;not null"`
	Position int    `gorm:"uniqueIndex:idx_roster_position;not null"`
	Date     string `gorm:"not null"`
	Function string `gorm:"not null"`
	Area     string `gorm:"not null"`
	Assigned string `gorm:"not null"`
}

// InitDB opens Postgres when databaseURL is set, otherwise a SQLite file at
// dataPath, and migrates the schema.
func InitDB(databaseURL, dataPath string) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	if databaseURL != "" {
		cfg.PrepareStmt = false
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  databaseURL,
			PreferSimpleProtocol: true,
		}), cfg)
	} else {
		if dataPath == "" {
			dataPath = "roster.db"
		}
		db, err = gorm.Open(sqlite.Open(dataPath), cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := db.AutoMigrate(&APIKey{}, &APIUsage{}, &MasterUser{}, &TeamMember{}, &SavedRoster{}, &SavedSlot{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}
