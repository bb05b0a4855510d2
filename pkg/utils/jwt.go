package utils

import (
	"strings"
	"time"

	"book-review/internal/data/entity"

	jwt "github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the lifetime of every issued access token.
const TokenTTL = 7 * 24 * time.Hour

type Claims struct {
	ID    string          `json:"id"`
	Email string          `json:"email"`
	Role  entity.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// JWTManager signs and verifies HS256 access tokens with one process-wide secret.
type JWTManager struct {
	secret []byte
	now    func() time.Time
}

func NewJWTManager(secret string) *JWTManager {
	return &JWTManager{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// GenerateToken issues a token carrying the user's id, email and role.
func (m *JWTManager) GenerateToken(user *entity.User) (string, error) {
	now := m.now()
	claims := Claims{
		ID:    user.ID.String(),
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// VerifyToken returns the token's claims, or nil when the token is malformed,
// expired, tampered with or signed with another algorithm.
func (m *JWTManager) VerifyToken(tokenStr string) *Claims {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		return nil
	}
	return claims
}

// GetUserFromToken resolves an Authorization header value to claims.
func (m *JWTManager) GetUserFromToken(header string) *Claims {
	if header == "" {
		return nil
	}
	return m.VerifyToken(strings.TrimPrefix(header, "Bearer "))
}
