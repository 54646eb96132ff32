package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/gaddisale/gaddisale/middleware"
)

func TestLogoutClearsSessionCookie(t *testing.T) {
	r := gin.New()
	ac := NewAuthController(nil)
	r.POST("/api/auth/logout", ac.Logout)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	res := w.Result()
	defer res.Body.Close()
	var cleared bool
	for _, c := range res.Cookies() {
		if c.Name == middleware.AuthCookieName {
			if c.Value != "" {
				t.Fatalf("cookie value = %q, want empty", c.Value)
			}
			if c.MaxAge >= 0 {
				t.Fatalf("cookie MaxAge = %d, want negative", c.MaxAge)
			}
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("no session cookie in response")
	}
}

func TestMeWithoutCookie(t *testing.T) {
	r := gin.New()
	ac := NewAuthController(nil)
	r.GET("/api/auth/me", ac.Me)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestMeWithGarbageCookie(t *testing.T) {
	r := gin.New()
	ac := NewAuthController(nil)
	r.GET("/api/auth/me", ac.Me)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: middleware.AuthCookieName, Value: "not-a-token"})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestSignupRejectsBadBody(t *testing.T) {
	r := gin.New()
	ac := NewAuthController(nil)
	r.POST("/api/auth/signup", ac.Signup)

	cases := []struct {
		name string
		body string
	}{
		{"missing email", `{"password":"secret1"}`},
		{"bad email", `{"email":"nope","password":"secret1"}`},
		{"short password", `{"email":"a@b.com","password":"abc"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}
		})
	}
}
