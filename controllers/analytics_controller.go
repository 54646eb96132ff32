package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gaddisale/gaddisale/analytics"
	"github.com/gaddisale/gaddisale/models"
	"github.com/gaddisale/gaddisale/utils"
)

// AnalyticsController serves the admin dashboard and visitor-analytics
// endpoints. Every response is recomputed from the raw visit rows of the
// requested window; there is no caching layer.
type AnalyticsController struct {
	db *gorm.DB
}

// NewAnalyticsController creates an AnalyticsController.
func NewAnalyticsController(db *gorm.DB) *AnalyticsController {
	return &AnalyticsController{db: db}
}

// loadVisits reads the raw rows of a closed-open window, oldest first, with
// admin back-office traffic already excluded.
func (a *AnalyticsController) loadVisits(start, end time.Time) ([]analytics.Visit, error) {
	var rows []models.Visit
	if err := a.db.
		Where("created_at >= ? AND created_at < ?", start, end).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	visits := make([]analytics.Visit, 0, len(rows))
	for _, r := range rows {
		visits = append(visits, analytics.Visit{
			CreatedAt:   r.CreatedAt,
			Path:        r.Path,
			UserAgent:   r.UserAgent,
			SessionID:   r.SessionID,
			DurationSec: r.DurationSec,
		})
	}
	return analytics.Filter(visits, analytics.ExcludeAdmin), nil
}

// Visitors returns current-month visitor metrics with period-over-period
// deltas against the previous calendar month.
func (a *AnalyticsController) Visitors(ctx *gin.Context) {
	now := time.Now()
	start, end := analytics.MonthWindow(now, time.Local)
	prevStart, prevEnd := analytics.PrevMonthWindow(now, time.Local)

	visits, err := a.loadVisits(start, end)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to load visits")
		return
	}
	visitsPrev, err := a.loadVisits(prevStart, prevEnd)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to load visits")
		return
	}

	dayBuckets := analytics.DayBuckets(visits, now.Year(), now.Month(), time.Local)

	uniqueVisitors := analytics.UniqueVisitors(visits)
	uniqueVisitorsPrev := analytics.UniqueVisitors(visitsPrev)
	totalPageviews := len(visits)
	totalPageviewsPrev := len(visitsPrev)

	sessions := analytics.ReconstructSessions(visits)
	sessionsPrev := analytics.ReconstructSessions(visitsPrev)
	bounceRate := analytics.BounceRate(sessions)
	bounceRatePrev := analytics.BounceRate(sessionsPrev)
	avgSessionSec := analytics.AvgSessionDuration(sessions)
	avgSessionSecPrev := analytics.AvgSessionDuration(sessionsPrev)

	utils.Success(ctx, gin.H{
		"day_buckets":     dayBuckets,
		"unique_visitors": uniqueVisitors,
		"unique_delta":    analytics.Delta(uniqueVisitors, uniqueVisitorsPrev),
		"total_pageviews": totalPageviews,
		"views_delta":     analytics.Delta(totalPageviews, totalPageviewsPrev),
		"bounce_rate":     bounceRate,
		// Inverted so a dropping bounce rate reads as a positive change.
		"bounce_delta":    analytics.Delta(100-bounceRate, 100-bounceRatePrev),
		"avg_session_sec": avgSessionSec,
		"duration_delta":  analytics.Delta(avgSessionSec, avgSessionSecPrev),
	})
}

// Dashboard returns total entity counts and the trailing-12-months visit
// overview with per-month unique path counts.
func (a *AnalyticsController) Dashboard(ctx *gin.Context) {
	var carCount, sellerCount, userCount int64
	if err := a.db.Model(&models.Car{}).Count(&carCount).Error; err != nil {
		carCount = 0
	}
	if err := a.db.Model(&models.Seller{}).Count(&sellerCount).Error; err != nil {
		sellerCount = 0
	}
	if err := a.db.Model(&models.AppUser{}).Count(&userCount).Error; err != nil {
		userCount = 0
	}

	now := time.Now()
	since := analytics.TrailingMonthsStart(now, 12, time.Local)
	visits, err := a.loadVisits(since, now)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50031, "failed to load visits")
		return
	}

	monthly := analytics.MonthBuckets(visits, now, 12, time.Local)
	totalVisits := 0
	totalUniquePaths := 0
	for _, m := range monthly {
		totalVisits += m.Visits
		totalUniquePaths += m.UniquePaths
	}

	utils.Success(ctx, gin.H{
		"car_count":          carCount,
		"seller_count":       sellerCount,
		"user_count":         userCount,
		"monthly":            monthly,
		"total_visits":       totalVisits,
		"total_unique_paths": totalUniquePaths,
	})
}
