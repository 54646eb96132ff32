package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gaddisale/gaddisale/analytics"
	"github.com/gaddisale/gaddisale/models"
	"github.com/gaddisale/gaddisale/utils"
)

// TrackController ingests raw visit events from the client beacon.
type TrackController struct {
	db *gorm.DB
}

// NewTrackController creates a TrackController.
func NewTrackController(db *gorm.DB) *TrackController {
	return &TrackController{db: db}
}

// Track persists one visit row. The timestamp is assigned server-side at
// ingestion, never taken from the client. Repeated identical events create
// repeated rows; deduplication happens at aggregation time, not here.
func (t *TrackController) Track(ctx *gin.Context) {
	var req struct {
		Path        string `json:"path"`
		UA          string `json:"ua"`
		SID         string `json:"sid"`
		DurationSec any    `json:"durationSec"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40010, "invalid body")
		return
	}

	path := strings.TrimSpace(req.Path)
	if path == "" {
		utils.Error(ctx, http.StatusBadRequest, 40010, "invalid body")
		return
	}

	// Anything that is not a finite number (missing, string, null) counts as 0.
	duration := 0
	if f, ok := req.DurationSec.(float64); ok {
		duration = analytics.ClampDuration(f)
	}

	visit := models.Visit{
		CreatedAt:   time.Now(),
		Path:        path,
		UserAgent:   req.UA,
		SessionID:   req.SID,
		DurationSec: duration,
	}

	if err := t.db.Create(&visit).Error; err != nil {
		utils.Sugar.Errorf("failed to record visit path=%s: %v", path, err)
		utils.Error(ctx, http.StatusInternalServerError, 50010, "failed to track")
		return
	}

	utils.Success(ctx, gin.H{"ok": true})
}
