package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gaddisale/gaddisale/models"
	"github.com/gaddisale/gaddisale/utils"
)

// CarController manages marketplace listings: public browse/detail, seller
// ad submission, and admin moderation.
type CarController struct {
	db *gorm.DB
}

// NewCarController creates a CarController.
func NewCarController(db *gorm.DB) *CarController {
	return &CarController{db: db}
}

// ListCars returns listings with optional make/condition filters, price or
// recency sorting, and take/skip paging.
func (c *CarController) ListCars(ctx *gin.Context) {
	make_ := strings.TrimSpace(ctx.Query("make"))
	condition := strings.TrimSpace(ctx.Query("condition"))
	if condition == "all" {
		condition = ""
	}
	sort := ctx.Query("sort")

	take := 24
	if v := ctx.Query("take"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			take = n
		}
	}
	skip := 0
	if v := ctx.Query("skip"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			skip = n
		}
	}

	// Unfiltered pages dominate traffic; cache those only to keep the key
	// space bounded.
	cacheKey := ""
	if make_ == "" && condition == "" {
		cacheKey = fmt.Sprintf("%ssort=%s:take=%d:skip=%d", utils.CacheKeyCarList, sort, take, skip)
		if b, ok := utils.CacheGetBytes(cacheKey); ok {
			ctx.Data(http.StatusOK, "application/json", b)
			return
		}
	}

	var orderBy string
	switch sort {
	case "price-asc":
		orderBy = "price ASC"
	case "price-desc":
		orderBy = "price DESC"
	default:
		orderBy = "posted_date DESC"
	}

	query := c.db.Model(&models.Car{})
	if make_ != "" {
		query = query.Where("LOWER(make) = ?", strings.ToLower(make_))
	}
	if condition != "" {
		query = query.Where("`condition` = ?", condition)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to list cars")
		return
	}

	var cars []models.Car
	if err := query.
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("sort ASC") }).
		Preload("Seller").
		Order(orderBy).
		Limit(take).
		Offset(skip).
		Find(&cars).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to list cars")
		return
	}

	payload := gin.H{"items": cars, "total": total}
	if cacheKey != "" {
		utils.CacheSetJSON(cacheKey, utils.JSONResponse{Code: 0, Message: "success", Data: payload}, 5*time.Minute)
	}
	utils.Success(ctx, payload)
}

// GetCar returns one listing with its images and seller.
func (c *CarController) GetCar(ctx *gin.Context) {
	id := strings.TrimSpace(ctx.Param("id"))
	if id == "" {
		utils.Error(ctx, http.StatusBadRequest, 40020, "missing car id")
		return
	}

	cacheKey := utils.CacheKeyCarDetail + id
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	var car models.Car
	if err := c.db.
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("sort ASC") }).
		Preload("Seller").
		First(&car, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40420, "car not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to get car")
		return
	}

	utils.CacheSetJSON(cacheKey, utils.JSONResponse{Code: 0, Message: "success", Data: car}, time.Hour)
	utils.Success(ctx, car)
}

// CreateCar handles the seller ad-submission form. The seller record is
// upserted by email; the listing starts in PENDING moderation state.
func (c *CarController) CreateCar(ctx *gin.Context) {
	var req struct {
		Title            string   `json:"title" binding:"required"`
		Make             string   `json:"make" binding:"required"`
		Model            string   `json:"model" binding:"required"`
		Year             int      `json:"year" binding:"required"`
		Price            int64    `json:"price" binding:"required"`
		Mileage          int64    `json:"mileage"`
		Condition        string   `json:"condition" binding:"required,oneof=new used"`
		Transmission     string   `json:"transmission"`
		FuelType         string   `json:"fuelType"`
		Description      string   `json:"description"`
		City             string   `json:"city"`
		SellerName       string   `json:"sellerName" binding:"required"`
		SellerPhone      string   `json:"sellerPhone"`
		SellerEmail      string   `json:"sellerEmail" binding:"required,email"`
		Images           []string `json:"images"`
		Featured         bool     `json:"featured"`
		PicturesOnTheWay bool     `json:"picturesOnTheWay"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40021, "invalid request payload")
		return
	}

	sellerEmail := strings.ToLower(strings.TrimSpace(req.SellerEmail))
	seller := models.Seller{
		Name:  utils.SanitizeStrict(strings.TrimSpace(req.SellerName)),
		Phone: utils.SanitizeStrict(strings.TrimSpace(req.SellerPhone)),
		Email: sellerEmail,
	}
	if err := c.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "phone", "updated_at"}),
	}).Create(&seller).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to save seller")
		return
	}
	// Upsert may have matched an existing row; reload to get its id.
	if err := c.db.First(&seller, "email = ?", sellerEmail).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to save seller")
		return
	}

	images := make([]models.CarImage, 0, len(req.Images))
	for i, url := range req.Images {
		images = append(images, models.CarImage{URL: url, Sort: i})
	}

	car := models.Car{
		Title:            utils.SanitizeStrict(strings.TrimSpace(req.Title)),
		Make:             strings.TrimSpace(req.Make),
		Model:            strings.TrimSpace(req.Model),
		Year:             req.Year,
		Price:            req.Price,
		Mileage:          req.Mileage,
		Condition:        req.Condition,
		Transmission:     req.Transmission,
		FuelType:         req.FuelType,
		Description:      utils.Sanitize(req.Description),
		City:             strings.TrimSpace(req.City),
		Featured:         req.Featured,
		PicturesOnTheWay: req.PicturesOnTheWay,
		Status:           models.StatusPending,
		SellerID:         seller.ID,
		Images:           images,
	}

	if err := c.db.Create(&car).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50023, "failed to create car")
		return
	}

	utils.InvalidateByPrefix(utils.CacheKeyCarList)

	car.Seller = seller
	utils.Respond(ctx, http.StatusCreated, 0, "success", car)
}

// ModerateCar is the admin PATCH: the patchable set is exactly the feature
// flag and the moderation status, nothing else on the listing can change here.
func (c *CarController) ModerateCar(ctx *gin.Context) {
	id := strings.TrimSpace(ctx.Param("id"))

	var req struct {
		Featured *bool   `json:"featured"`
		Status   *string `json:"status"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40022, "invalid request payload")
		return
	}

	updates := map[string]interface{}{}
	if req.Featured != nil {
		updates["featured"] = *req.Featured
	}
	if req.Status != nil {
		if !models.ValidStatus(*req.Status) {
			utils.Error(ctx, http.StatusBadRequest, 40023, "invalid status")
			return
		}
		updates["status"] = *req.Status
	}
	if len(updates) == 0 {
		utils.Error(ctx, http.StatusBadRequest, 40024, "no changes")
		return
	}

	var car models.Car
	if err := c.db.First(&car, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40420, "car not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50024, "failed to update car")
		return
	}

	if err := c.db.Model(&car).Updates(updates).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50024, "failed to update car")
		return
	}

	utils.InvalidateByPrefix(utils.CacheKeyCarList)
	utils.InvalidateByPrefix(utils.CacheKeyCarDetail + id)

	utils.Success(ctx, car)
}

// DeleteCar removes a listing and its image rows.
func (c *CarController) DeleteCar(ctx *gin.Context) {
	id := strings.TrimSpace(ctx.Param("id"))

	if err := c.db.Where("car_id = ?", id).Delete(&models.CarImage{}).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50025, "failed to delete car")
		return
	}
	if err := c.db.Delete(&models.Car{}, "id = ?", id).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50025, "failed to delete car")
		return
	}

	utils.InvalidateByPrefix(utils.CacheKeyCarList)
	utils.InvalidateByPrefix(utils.CacheKeyCarDetail + id)

	utils.Success(ctx, gin.H{"ok": true})
}
