package controllers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gaddisale/gaddisale/models"
	"github.com/gaddisale/gaddisale/utils"
)

// StatsController provides public marketplace counters.
type StatsController struct {
	db *gorm.DB
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{db: db}
}

// GetStats returns aggregate listing counts. Individual count failures fall
// back to 0 instead of failing the whole endpoint.
func (s *StatsController) GetStats(ctx *gin.Context) {
	var carCount int64
	var sellerCount int64
	var approvedCount int64
	var featuredCount int64

	if err := s.db.Model(&models.Car{}).Count(&carCount).Error; err != nil {
		carCount = 0
	}
	if err := s.db.Model(&models.Seller{}).Count(&sellerCount).Error; err != nil {
		sellerCount = 0
	}
	if err := s.db.Model(&models.Car{}).Where("status = ?", models.StatusApproved).Count(&approvedCount).Error; err != nil {
		approvedCount = 0
	}
	if err := s.db.Model(&models.Car{}).Where("featured = ?", true).Count(&featuredCount).Error; err != nil {
		featuredCount = 0
	}

	utils.Success(ctx, gin.H{
		"car_count":      carCount,
		"seller_count":   sellerCount,
		"approved_count": approvedCount,
		"featured_count": featuredCount,
	})
}
