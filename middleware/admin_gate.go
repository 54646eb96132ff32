package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gaddisale/gaddisale/utils"
)

// Admin route classes guarded by the gate.
const (
	AdminPagePrefix = "/admin"
	AdminAPIPrefix  = "/api/admin"
	AdminLoginPage  = "/admin/login"
	AdminLoginAPI   = "/api/admin/login"
)

// AdminPolicy decides whether a set of claims belongs to an administrator.
// It is an allow-list of emails configured at startup, so granting admin to
// another person is a config change rather than a code change.
type AdminPolicy struct {
	emails map[string]struct{}
}

// NewAdminPolicy builds a policy from the configured admin emails.
func NewAdminPolicy(emails []string) *AdminPolicy {
	p := &AdminPolicy{emails: make(map[string]struct{}, len(emails))}
	for _, e := range emails {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			p.emails[e] = struct{}{}
		}
	}
	return p
}

// IsAdmin reports whether the claims identify one of the allow-listed admins.
func (p *AdminPolicy) IsAdmin(claims *utils.Claims) bool {
	if claims == nil || claims.Email == "" {
		return false
	}
	_, ok := p.emails[strings.ToLower(claims.Email)]
	return ok
}

// AdminGate guards the admin surface. It runs on every request, before any
// handler:
//   - admin pages require an admin session, failing over to a redirect to
//     the login page;
//   - admin API routes require the same session but answer 401 JSON, since
//     API clients expect structured errors rather than redirects;
//   - everything else passes untouched.
//
// The login page and login API are exempt so that logging in stays possible.
func AdminGate(policy *AdminPolicy) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		path := ctx.Request.URL.Path

		switch {
		case path == AdminLoginPage || path == AdminLoginAPI:
			ctx.Next()
		case strings.HasPrefix(path, AdminAPIPrefix):
			if !sessionIsAdmin(ctx, policy) {
				utils.Error(ctx, http.StatusUnauthorized, 40103, "unauthorized")
				ctx.Abort()
				return
			}
			ctx.Next()
		case strings.HasPrefix(path, AdminPagePrefix):
			if !sessionIsAdmin(ctx, policy) {
				ctx.Redirect(http.StatusFound, AdminLoginPage)
				ctx.Abort()
				return
			}
			ctx.Next()
		default:
			ctx.Next()
		}
	}
}

// sessionIsAdmin checks the session cookie against the admin policy. Any
// failure along the way (missing cookie, bad signature, expiry, non-admin
// email) is simply "not an admin"; the gate never errors.
func sessionIsAdmin(ctx *gin.Context, policy *AdminPolicy) bool {
	token, err := ctx.Cookie(AuthCookieName)
	if err != nil || token == "" {
		return false
	}
	claims, err := utils.ParseToken(token)
	if err != nil {
		return false
	}
	return policy.IsAdmin(claims)
}
