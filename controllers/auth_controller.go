package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gaddisale/gaddisale/config"
	"github.com/gaddisale/gaddisale/middleware"
	"github.com/gaddisale/gaddisale/models"
	"github.com/gaddisale/gaddisale/utils"
)

// AuthController handles account registration and cookie-based session auth.
type AuthController struct {
	db *gorm.DB
}

// NewAuthController creates an AuthController.
func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{db: db}
}

// setSessionCookie writes the signed token into the HTTP-only session cookie.
// Secure is only set in release mode so local development over plain HTTP works.
func setSessionCookie(ctx *gin.Context, token string, maxAge int) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(middleware.AuthCookieName, token, maxAge, "/", "", config.Get().Production(), true)
}

// Signup registers a local account and logs it in.
func (a *AuthController) Signup(ctx *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "email and password are required")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.AppUser
	if err := a.db.Where("email = ?", email).First(&existing).Error; err == nil {
		utils.Error(ctx, http.StatusConflict, 40901, "email already in use")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50001, "failed to hash password")
		return
	}

	user := models.AppUser{
		Email:        email,
		PasswordHash: hash,
		Name:         utils.SanitizeStrict(strings.TrimSpace(req.Name)),
		Role:         models.RoleUser,
	}

	if err := a.db.Create(&user).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50002, "failed to create user")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role, utils.TokenTTL)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50003, "failed to generate token")
		return
	}

	setSessionCookie(ctx, token, int(utils.TokenTTL.Seconds()))
	utils.Success(ctx, gin.H{
		"id":    user.ID,
		"email": user.Email,
		"name":  user.Name,
	})
}

// Login verifies credentials and sets the session cookie. Unknown email and
// wrong password are indistinguishable to the caller.
func (a *AuthController) Login(ctx *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40002, "email and password are required")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.AppUser
	if err := a.db.Where("email = ?", email).First(&user).Error; err != nil {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "invalid credentials")
		return
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "invalid credentials")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role, utils.TokenTTL)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50003, "failed to generate token")
		return
	}

	setSessionCookie(ctx, token, int(utils.TokenTTL.Seconds()))
	utils.Success(ctx, gin.H{
		"id":    user.ID,
		"email": user.Email,
		"name":  user.Name,
	})
}

// Logout clears the session cookie. Tokens are stateless so there is nothing
// to revoke server-side.
func (a *AuthController) Logout(ctx *gin.Context) {
	setSessionCookie(ctx, "", -1)
	utils.Success(ctx, gin.H{"ok": true})
}

// Me returns the identity behind the session cookie.
func (a *AuthController) Me(ctx *gin.Context) {
	token, err := ctx.Cookie(middleware.AuthCookieName)
	if err != nil || token == "" {
		utils.Error(ctx, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}

	claims, err := utils.ParseToken(token)
	if err != nil {
		utils.Error(ctx, http.StatusUnauthorized, 40102, "unauthorized")
		return
	}

	var user models.AppUser
	if err := a.db.Select("id", "email", "name", "role").First(&user, "id = ?", claims.UserID).Error; err != nil {
		utils.Error(ctx, http.StatusUnauthorized, 40104, "unauthorized")
		return
	}

	utils.Success(ctx, gin.H{
		"id":    user.ID,
		"email": user.Email,
		"name":  user.Name,
		"role":  user.Role,
	})
}
