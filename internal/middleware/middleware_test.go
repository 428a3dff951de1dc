package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	gormlogger "gorm.io/gorm/logger"

	"meals_on_wheels/internal/config"
	"meals_on_wheels/internal/repository"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newManager(t *testing.T, ttl time.Duration) *JWTManager {
	t.Helper()
	db, err := config.Open(sqlite.Open(filepath.Join(t.TempDir(), "auth.db")), gormlogger.Silent)
	require.NoError(t, err)
	return NewJWTManager("test-secret", ttl, repository.NewTokenRepository(db))
}

func protectedRouter(m *JWTManager) *gin.Engine {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/me", m.RequireAuth(), func(c *gin.Context) {
		id, ok := CurrentUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id, "ok": ok, "role": c.GetString("role")})
	})
	return r
}

func get(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGenerateAndValidateToken(t *testing.T) {
	m := newManager(t, time.Hour)
	ctx := context.Background()

	token, err := m.GenerateToken(ctx, 7, "member")
	require.NoError(t, err)

	claims, err := m.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "member", claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateTokenRejectsRevoked(t *testing.T) {
	m := newManager(t, time.Hour)
	ctx := context.Background()

	token, err := m.GenerateToken(ctx, 3, "donor")
	require.NoError(t, err)

	n, err := m.RevokeAll(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = m.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestValidateTokenRejectsWrongSecretAndUnknownJTI(t *testing.T) {
	m := newManager(t, time.Hour)
	ctx := context.Background()

	other := NewJWTManager("other-secret", time.Hour, m.tokens)
	token, err := other.GenerateToken(ctx, 1, "member")
	require.NoError(t, err)
	_, err = m.ValidateToken(ctx, token)
	assert.Error(t, err)

	unsaved := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "never-issued",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := unsaved.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = m.ValidateToken(ctx, signed)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	m := newManager(t, -time.Minute)
	token, err := m.GenerateToken(context.Background(), 1, "member")
	require.NoError(t, err)

	_, err = m.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestRequireAuth(t *testing.T) {
	m := newManager(t, time.Hour)
	r := protectedRouter(m)

	w := get(r, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = get(r, "/me", "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := m.GenerateToken(context.Background(), 42, "volunteer")
	require.NoError(t, err)
	w = get(r, "/me", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":42,"ok":true,"role":"volunteer"}`, w.Body.String())

	_, err = m.RevokeAll(context.Background(), 42)
	require.NoError(t, err)
	w = get(r, "/me", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestIDGeneratedAndEchoed(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, Logger(c).Data["request_id"].(string))
	})

	w := get(r, "/ping", "")
	id := w.Header().Get("X-Request-ID")
	assert.Len(t, id, 36)
	assert.Equal(t, id, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
	assert.Equal(t, "abc-123", w.Body.String())
}

func TestLoggerOutsideRequestID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.NotNil(t, Logger(c))
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://app.local"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://app.local")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://app.local", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://evil.local")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCORSWildcardReflectsOrigin(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"*"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://10.0.2.2:8080")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://10.0.2.2:8080", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}
