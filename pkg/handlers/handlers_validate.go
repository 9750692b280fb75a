package handlers

import (
	"net/http"

	"github.com/arnavshah/roster-api-go/pkg/database"
	"github.com/arnavshah/roster-api-go/pkg/models"
	"github.com/arnavshah/roster-api-go/pkg/roster"
	"github.com/arnavshah/roster-api-go/pkg/tabular"
	"github.com/gin-gonic/gin"
)

// ValidateInput reports what a generation request would work with, without
// allocating anything.
func (h *Handler) ValidateInput(c *gin.Context) {
	var input models.RosterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"valid": false,
			"error": err.Error(),
		})
		return
	}

	if len(input.Rows) == 0 {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": roster.ErrEmptyInput.Error()})
		return
	}

	areas, err := roster.ParseAreas(input.Areas)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": err.Error()})
		return
	}
	if len(areas) == 0 {
		areas = roster.AllAreas
	}
	headcounts, err := parseHeadcounts(input.Headcounts)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": err.Error()})
		return
	}
	if err := normalizeDirectory(input.Directory); err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": err.Error()})
		return
	}
	directory := input.Directory
	if len(directory) == 0 {
		if directory, err = database.ListDirectory(h.DB); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load team directory"})
			return
		}
	}

	rows := make([]roster.Row, 0, len(input.Rows))
	for _, raw := range input.Rows {
		rows = append(rows, tabular.NormalizeRow(raw))
	}
	dates := roster.DiscoverDates(rows)

	// Count respondents per area using the same rules as generation
	dir := roster.NewDirectory(directory)
	identity := roster.NewIdentityResolver(dir, h.rules().Identities)
	extractor := roster.NewExtractor(identity, roster.NewRoleClassifier(dir), areas, h.MaxShifts, nil)
	perDate := make(map[string]gin.H, len(dates))
	for _, d := range dates {
		da := extractor.Extract(rows, d, roster.ShiftCounter{})
		counts := gin.H{}
		for a, p := range da.Areas {
			counts[string(a)] = len(p.Full)
		}
		perDate[d] = gin.H{"available": len(da.All), "areas": counts}
	}

	seats := 0
	for _, a := range areas {
		if n, ok := headcounts[a]; ok {
			seats += n
			continue
		}
		seats += roster.DefaultHeadcounts[a]
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": len(dates) > 0,
		"stats": gin.H{
			"row_count":      len(rows),
			"date_count":     len(dates),
			"seats_per_date": seats,
			"dates":          dates,
			"availability":   perDate,
		},
	})
}

func (h *Handler) rules() *roster.Rules {
	if h.Rules == nil {
		return &roster.Rules{}
	}
	return h.Rules
}
