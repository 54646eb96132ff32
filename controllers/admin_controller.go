package controllers

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gaddisale/gaddisale/config"
	"github.com/gaddisale/gaddisale/models"
	"github.com/gaddisale/gaddisale/utils"
)

// AdminController handles the back-office login.
type AdminController struct{}

// NewAdminController creates an AdminController.
func NewAdminController() *AdminController {
	return &AdminController{}
}

// Login exchanges the shared admin credential for a regular signed session.
// The static token is only a credential; every request after this one is
// authorized through the same claims-based cookie as user sessions, so there
// is a single verification path for the whole app.
func (a *AdminController) Login(ctx *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40003, "token is required")
		return
	}

	cfg := config.Get()
	if cfg.AdminToken == "" {
		utils.Error(ctx, http.StatusUnauthorized, 40111, "invalid token")
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Token), []byte(cfg.AdminToken)) != 1 {
		utils.Error(ctx, http.StatusUnauthorized, 40111, "invalid token")
		return
	}

	adminEmail := cfg.AdminEmails[0]
	token, err := utils.GenerateToken("admin", adminEmail, models.RoleAdmin, utils.TokenTTL)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50003, "failed to generate token")
		return
	}

	setSessionCookie(ctx, token, int(utils.TokenTTL.Seconds()))
	utils.Success(ctx, gin.H{"ok": true})
}
