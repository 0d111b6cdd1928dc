// Package token issues and verifies the signed session tokens that carry a
// user's identity and role. Tokens are stateless; there is no server-side
// session table and no revocation, invalidation happens only via expiry.
package token

import (
	"errors"
	"fmt"
	"time"

	"jobverse/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the JWT payload: the standard registered claims plus the
// user's role.
type Claims struct {
	Role models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Generate signs an HS256 token for the given user.
func Generate(user *models.User, secret string, expiration time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse validates a signed token and returns the carried user ID and role.
func Parse(tokenString, secret string) (uuid.UUID, models.Role, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, "", fmt.Errorf("%w: token has expired", ErrInvalidToken)
		}
		return uuid.Nil, "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return uuid.Nil, "", ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("%w: invalid user identifier in token", ErrInvalidToken)
	}
	if claims.Role != models.RoleUser && claims.Role != models.RoleAdmin {
		return uuid.Nil, "", fmt.Errorf("%w: invalid role in token", ErrInvalidToken)
	}

	return userID, claims.Role, nil
}
