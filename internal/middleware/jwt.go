package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"meals_on_wheels/internal/models"
	"meals_on_wheels/internal/repository"
)

// Claims carried by every session token. RegisteredClaims.ID is the jti
// used for revocation.
type Claims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

var ErrTokenRevoked = errors.New("token has been revoked")

// JWTManager issues HS256 session tokens and records each one so logout
// can revoke them.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
	tokens repository.TokenRepository
}

func NewJWTManager(secret string, ttl time.Duration, tokens repository.TokenRepository) *JWTManager {
	return &JWTManager{secret: []byte(secret), ttl: ttl, tokens: tokens}
}

func (m *JWTManager) GenerateToken(ctx context.Context, userID uint, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   fmt.Sprint(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	record := &models.AccessToken{ID: claims.ID, UserID: userID, ExpiresAt: now.Add(m.ttl)}
	if err := m.tokens.Create(ctx, record); err != nil {
		return "", fmt.Errorf("record token: %w", err)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ValidateToken checks signature, expiry and revocation state.
func (m *JWTManager) ValidateToken(ctx context.Context, tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	active, err := m.tokens.IsActive(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}

// RevokeAll revokes every token issued to userID.
func (m *JWTManager) RevokeAll(ctx context.Context, userID uint) (int64, error) {
	return m.tokens.RevokeAllForUser(ctx, userID)
}

// RequireAuth ensures a valid, unrevoked JWT is present
func (m *JWTManager) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := m.ValidateToken(c.Request.Context(), tokenString)
		if err != nil {
			Logger(c).WithError(err).Debug("rejected bearer token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		// Store claims in context for downstream handlers
		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// CurrentUserID returns the user id stored by RequireAuth.
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
