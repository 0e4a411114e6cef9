package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/benitha200/cherryapp-backend/config"
	"github.com/benitha200/cherryapp-backend/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubBlacklist struct {
	revoked map[string]bool
	err     error
}

func (s *stubBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	return s.revoked[jti], s.err
}

type stubLimiter struct {
	allowed bool
	err     error
	calls   int
}

func (s *stubLimiter) CheckRateLimit(_ context.Context, _ string, _ int, _ time.Duration) (bool, error) {
	s.calls++
	return s.allowed, s.err
}

func testManager() *jwt.Manager {
	return jwt.NewManager(&config.AuthConfig{
		JWTSecret:       "middleware-test-secret-32-bytes!",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: time.Hour,
	})
}

func protectedEngine(mgr *jwt.Manager, bl Blacklist, roles ...string) *gin.Engine {
	r := gin.New()
	chain := []gin.HandlerFunc{JWTAuth(mgr, bl, zap.NewNop())}
	if len(roles) > 0 {
		chain = append(chain, RoleAuth(roles...))
	}
	chain = append(chain, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user": c.MustGet(CtxUserID),
			"jti":  c.GetString(CtxTokenJTI),
		})
	})
	r.GET("/protected", chain...)
	return r
}

func get(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth_ValidToken(t *testing.T) {
	mgr := testManager()
	cws := uint(3)
	token, err := mgr.GenerateAccessToken(jwt.Subject{UserID: 7, Username: "kayove-mgr", Role: "CWS_MANAGER", CWSID: &cws})
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	w := get(protectedEngine(mgr, nil), token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestJWTAuth_Rejections(t *testing.T) {
	mgr := testManager()
	refresh, _ := mgr.GenerateRefreshToken(jwt.Subject{UserID: 7, Role: "ADMIN"})

	cases := map[string]string{
		"missing header": "",
		"garbage":        "not-a-jwt",
		"refresh token":  refresh,
	}
	for name, token := range cases {
		if w := get(protectedEngine(mgr, nil), token); w.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", name, w.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	protectedEngine(mgr, nil).ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("non-Bearer scheme: expected 401, got %d", w.Code)
	}
}

func TestJWTAuth_Blacklisted(t *testing.T) {
	mgr := testManager()
	token, _ := mgr.GenerateAccessToken(jwt.Subject{UserID: 7, Role: "ADMIN"})
	claims, _ := mgr.ParseToken(token)

	bl := &stubBlacklist{revoked: map[string]bool{claims.ID: true}}
	if w := get(protectedEngine(mgr, bl), token); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for a revoked token, got %d", w.Code)
	}
}

func TestJWTAuth_BlacklistOutageFailsOpen(t *testing.T) {
	mgr := testManager()
	token, _ := mgr.GenerateAccessToken(jwt.Subject{UserID: 7, Role: "ADMIN"})

	bl := &stubBlacklist{err: errors.New("redis down")}
	if w := get(protectedEngine(mgr, bl), token); w.Code != http.StatusOK {
		t.Errorf("expected 200 while redis is down, got %d", w.Code)
	}
}

func TestRoleAuth(t *testing.T) {
	mgr := testManager()
	admin, _ := mgr.GenerateAccessToken(jwt.Subject{UserID: 1, Role: "ADMIN"})
	ops, _ := mgr.GenerateAccessToken(jwt.Subject{UserID: 2, Role: "OPERATIONS"})
	r := protectedEngine(mgr, nil, "ADMIN", "SUPER_ADMIN")

	if w := get(r, admin); w.Code != http.StatusOK {
		t.Errorf("admin: expected 200, got %d", w.Code)
	}
	if w := get(r, ops); w.Code != http.StatusForbidden {
		t.Errorf("operations: expected 403, got %d", w.Code)
	}
}

func TestRateLimit(t *testing.T) {
	build := func(l Limiter) *gin.Engine {
		r := gin.New()
		r.POST("/login", RateLimit(l, 5, time.Minute), func(c *gin.Context) { c.Status(http.StatusOK) })
		return r
	}
	hit := func(r *gin.Engine) int {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		return w.Code
	}

	if code := hit(build(&stubLimiter{allowed: false})); code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", code)
	}
	if code := hit(build(&stubLimiter{err: errors.New("redis down")})); code != http.StatusOK {
		t.Errorf("limiter errors must let requests through, got %d", code)
	}
	if code := hit(build(nil)); code != http.StatusOK {
		t.Errorf("nil limiter must let requests through, got %d", code)
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(requestIDKey)) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	r.ServeHTTP(w, req)
	if w.Header().Get("X-Request-ID") != "abc-123" || w.Body.String() != "abc-123" {
		t.Errorf("expected the client id to be reused, got %q", w.Header().Get("X-Request-ID"))
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if len(w.Header().Get("X-Request-ID")) != 36 {
		t.Errorf("expected a generated uuid, got %q", w.Header().Get("X-Request-ID"))
	}
}
