package controllers

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gaddisale/gaddisale/config"
	"github.com/gaddisale/gaddisale/utils"
)

// UploadController produces time-limited signed upload authorizations for
// the third-party image host. The files themselves never pass through this
// server.
type UploadController struct{}

// NewUploadController creates an UploadController.
func NewUploadController() *UploadController {
	return &UploadController{}
}

// Sign returns the parameters a client needs for a direct Cloudinary upload.
// The signature is the SHA-1 of the sorted k=v parameter string with the API
// secret appended, which is Cloudinary's own signing scheme.
func (u *UploadController) Sign(ctx *gin.Context) {
	var req struct {
		Folder string `json:"folder"`
	}
	// Body is optional; an empty or absent body uses the configured folder.
	_ = ctx.ShouldBindJSON(&req)

	cfg := config.Get()
	if cfg.CloudinaryAPIKey == "" || cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPISecret == "" {
		utils.Error(ctx, http.StatusInternalServerError, 50040, "upload signing is not configured")
		return
	}

	folder := strings.TrimSpace(req.Folder)
	if folder == "" {
		folder = cfg.CloudinaryFolder
	}

	timestamp := time.Now().Unix()
	params := map[string]string{
		"folder":    folder,
		"timestamp": fmt.Sprintf("%d", timestamp),
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}
	toSign := strings.Join(pairs, "&")

	sum := sha1.Sum([]byte(toSign + cfg.CloudinaryAPISecret))

	utils.Success(ctx, gin.H{
		"timestamp": timestamp,
		"signature": hex.EncodeToString(sum[:]),
		"apiKey":    cfg.CloudinaryAPIKey,
		"cloudName": cfg.CloudinaryCloudName,
		"folder":    folder,
	})
}
