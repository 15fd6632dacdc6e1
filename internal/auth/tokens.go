package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/aditya-4747/VideoStreamAPI/internal/config"
	"github.com/aditya-4747/VideoStreamAPI/pkg/apperr"
)

// TokenKind discriminates access tokens from refresh tokens so one can
// never be presented in place of the other.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// Claims represents JWT claims
type Claims struct {
	UserID    string    `json:"user_id"`
	TokenKind TokenKind `json:"token_kind"`
	jwt.RegisteredClaims
}

// TokenManager hashes passwords and signs/verifies access and refresh
// tokens. Access and refresh tokens use independent secrets.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	bcryptCost    int
}

// NewTokenManager creates a token manager from the auth configuration
func NewTokenManager(cfg config.AuthConfig) *TokenManager {
	cost := cfg.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	return &TokenManager{
		accessSecret:  []byte(cfg.AccessTokenSecret),
		refreshSecret: []byte(cfg.RefreshTokenSecret),
		accessTTL:     cfg.AccessTokenTTL,
		refreshTTL:    cfg.RefreshTokenTTL,
		bcryptCost:    cost,
	}
}

// HashPassword hashes a plaintext password with bcrypt
func (m *TokenManager) HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), m.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword verifies a plaintext password against its stored hash
func (m *TokenManager) CheckPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// IssueAccessToken signs a short-lived access token for a user
func (m *TokenManager) IssueAccessToken(userID string) (string, error) {
	return m.issue(userID, TokenKindAccess, m.accessSecret, m.accessTTL)
}

// IssueRefreshToken signs a long-lived refresh token for a user
func (m *TokenManager) IssueRefreshToken(userID string) (string, error) {
	return m.issue(userID, TokenKindRefresh, m.refreshSecret, m.refreshTTL)
}

func (m *TokenManager) issue(userID string, kind TokenKind, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:    userID,
		TokenKind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			// Unique per token so consecutive issues never collide,
			// which the refresh rotation compare-and-swap relies on.
			ID:        uuid.NewString(),
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// VerifyToken parses and validates a token of the expected kind. It
// fails closed: malformed tokens, bad signatures, expired tokens and
// kind mismatches all yield an Unauthorized error.
func (m *TokenManager) VerifyToken(tokenString string, kind TokenKind) (*Claims, error) {
	secret := m.accessSecret
	if kind == TokenKindRefresh {
		secret = m.refreshSecret
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.Wrap(apperr.KindUnauthorized, err, "invalid or expired token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, apperr.New(apperr.KindUnauthorized, "invalid token claims")
	}

	if claims.TokenKind != kind {
		return nil, apperr.New(apperr.KindUnauthorized, "wrong token kind")
	}

	if claims.UserID == "" {
		return nil, apperr.New(apperr.KindUnauthorized, "token has no subject")
	}

	return claims, nil
}
