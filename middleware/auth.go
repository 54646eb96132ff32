package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gaddisale/gaddisale/utils"
)

const (
	// AuthCookieName is the session cookie carrying the signed token.
	AuthCookieName = "auth_token"

	// ContextUserIDKey is the key used to store the authenticated user ID in Gin context.
	ContextUserIDKey = "user_id"
	// ContextEmailKey stores the authenticated email inside Gin context.
	ContextEmailKey = "user_email"
	// ContextRoleKey stores the token role inside Gin context.
	ContextRoleKey = "user_role"
)

// AuthRequired ensures the request carries a valid session cookie. Bad
// credentials and expired tokens both answer with the same generic 401.
func AuthRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, err := ctx.Cookie(AuthCookieName)
		if err != nil || token == "" {
			utils.Error(ctx, http.StatusUnauthorized, 40101, "unauthorized")
			ctx.Abort()
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			utils.Error(ctx, http.StatusUnauthorized, 40102, "unauthorized")
			ctx.Abort()
			return
		}

		ctx.Set(ContextUserIDKey, claims.UserID)
		ctx.Set(ContextEmailKey, claims.Email)
		ctx.Set(ContextRoleKey, claims.Role)
		ctx.Next()
	}
}
