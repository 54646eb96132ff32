package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/gaddisale/gaddisale/middleware"
	"github.com/gaddisale/gaddisale/models"
	"github.com/gaddisale/gaddisale/utils"
)

func adminLoginRouter() *gin.Engine {
	r := gin.New()
	r.POST("/api/admin/login", NewAdminController().Login)
	return r
}

func postAdminLogin(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestAdminLoginRejectsMissingToken(t *testing.T) {
	w := postAdminLogin(adminLoginRouter(), `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestAdminLoginRejectsWrongToken(t *testing.T) {
	w := postAdminLogin(adminLoginRouter(), `{"token":"wrong"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestAdminLoginIssuesAdminSession(t *testing.T) {
	w := postAdminLogin(adminLoginRouter(), `{"token":"letmein"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	res := w.Result()
	defer res.Body.Close()
	var session string
	for _, c := range res.Cookies() {
		if c.Name == middleware.AuthCookieName {
			session = c.Value
		}
	}
	if session == "" {
		t.Fatal("no session cookie in response")
	}

	claims, err := utils.ParseToken(session)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.Role != models.RoleAdmin {
		t.Fatalf("role = %q, want %q", claims.Role, models.RoleAdmin)
	}
}
