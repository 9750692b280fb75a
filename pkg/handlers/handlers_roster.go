package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/arnavshah/roster-api-go/pkg/database"
	"github.com/arnavshah/roster-api-go/pkg/models"
	"github.com/arnavshah/roster-api-go/pkg/roster"
	"github.com/arnavshah/roster-api-go/pkg/tabular"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GenerateRoster handles the JSON-based roster request
func (h *Handler) GenerateRoster(c *gin.Context) {
	var input models.RosterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows := make([]roster.Row, 0, len(input.Rows))
	for _, raw := range input.Rows {
		rows = append(rows, tabular.NormalizeRow(raw))
	}

	areas, err := roster.ParseAreas(input.Areas)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	headcounts, err := parseHeadcounts(input.Headcounts)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := normalizeDirectory(input.Directory); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.generate(c, roster.GenerateInput{
		Rows:       rows,
		Directory:  input.Directory,
		Areas:      areas,
		Headcounts: headcounts,
	}, input.Save)
}

// UploadRoster handles CSV/XLSX uploads of the availability sheet
func (h *Handler) UploadRoster(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open uploaded file"})
		return
	}
	defer f.Close()

	rows, err := tabular.Read(fileHeader.Filename, f)
	if err != nil && !errors.Is(err, tabular.ErrNoHeader) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	areas, err := roster.ParseAreas(splitList(c.PostFormArray("areas")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	save, _ := strconv.ParseBool(c.DefaultPostForm("save", "false"))
	h.generate(c, roster.GenerateInput{Rows: rows, Areas: areas}, save)
}

func (h *Handler) generate(c *gin.Context, in roster.GenerateInput, save bool) {
	if len(in.Directory) == 0 {
		dir, err := database.ListDirectory(h.DB)
		if err != nil {
			h.Logger.Error("load directory", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load team directory"})
			return
		}
		in.Directory = dir
	}

	opts := roster.EngineOptions{
		MaxShifts: h.MaxShifts,
		Rules:     h.Rules,
		Logger:    h.Logger,
	}
	if h.NewShuffler != nil {
		opts.Shuffler = h.NewShuffler()
	}

	res, err := roster.NewEngine(opts).Generate(in)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := ""
	if save {
		id, err = database.SaveRoster(h.DB, currentKeyID(c), res)
		if err != nil {
			h.Logger.Error("save roster", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save roster"})
			return
		}
	}

	h.RecordUsage(c, len(res.Slots), len(in.Rows))

	resp := models.NewRosterResponse(id, res)
	h.Logger.Info("roster generated",
		zap.Int("dates", len(res.Dates)),
		zap.Int("slots", len(res.Slots)),
		zap.Int("unassigned", resp.Unassigned),
		zap.String("roster_id", id))
	c.JSON(http.StatusOK, resp)
}

// DetectConflicts checks a (possibly hand-edited) slot collection
func (h *Handler) DetectConflicts(c *gin.Context) {
	var input models.ConflictsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conflicts := roster.DetectConflicts(input.Slots)
	c.JSON(http.StatusOK, models.ConflictsResponse{
		Conflicts:    conflicts,
		HasConflicts: len(conflicts) > 0,
	})
}

// GetRoster returns a saved roster with its current conflicts
func (h *Handler) GetRoster(c *gin.Context) {
	res, err := database.LoadRoster(h.DB, currentKeyID(c), c.Param("id"))
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewRosterResponse(c.Param("id"), res))
}

// UpdateSlot reassigns one seat of a saved roster
func (h *Handler) UpdateSlot(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "index must be an integer"})
		return
	}

	var req models.SlotUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, prev, err := database.UpdateSlot(h.DB, currentKeyID(c), c.Param("id"), index, req.Assigned)
	if err != nil {
		h.storeError(c, err)
		return
	}

	slot := res.Slots[index]
	c.JSON(http.StatusOK, models.SlotUpdateResponse{
		Slot:        slot,
		Previous:    prev,
		Suggestions: roster.Suggestions(res, slot),
		Conflicts:   roster.DetectConflicts(res.Slots),
	})
}

func (h *Handler) storeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, database.ErrRosterNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, roster.ErrSlotIndex):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.Logger.Error("roster store", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not access roster"})
	}
}

// GetDirectory returns the stored team directory
func (h *Handler) GetDirectory(c *gin.Context) {
	entries, err := database.ListDirectory(h.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load team directory"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"directory": entries})
}

// PutDirectory replaces the stored team directory
func (h *Handler) PutDirectory(c *gin.Context) {
	var req struct {
		Directory []struct {
			Name  string   `json:"name"`
			Email string   `json:"email"`
			Roles []string `json:"roles"`
		} `json:"directory"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entries := make([]roster.DirectoryEntry, 0, len(req.Directory))
	for _, d := range req.Directory {
		roles, err := roster.ParseAreas(d.Roles)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("%s: %v", d.Name, err)})
			return
		}
		entries = append(entries, roster.DirectoryEntry{Name: d.Name, Email: d.Email, Roles: roles})
	}

	if err := database.ReplaceDirectory(h.DB, entries); err != nil {
		h.Logger.Error("replace directory", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save team directory"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(entries)})
}

func parseHeadcounts(raw map[string]int) (map[roster.Area]int, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(map[roster.Area]int, len(raw))
	for tag, n := range raw {
		a, err := roster.ParseArea(tag)
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, fmt.Errorf("headcount for %s must not be negative", a)
		}
		out[a] = n
	}
	return out, nil
}

// normalizeDirectory rewrites role aliases to canonical area tags in place
func normalizeDirectory(entries []roster.DirectoryEntry) error {
	for i, d := range entries {
		for j, role := range d.Roles {
			a, err := roster.ParseArea(string(role))
			if err != nil {
				return fmt.Errorf("%s: %w", d.Name, err)
			}
			entries[i].Roles[j] = a
		}
	}
	return nil
}

// splitList accepts both repeated form fields and comma separated values
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		out = append(out, strings.Split(v, ",")...)
	}
	return out
}
