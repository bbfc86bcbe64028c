// Package auth issues and validates the server's HS256 access tokens.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/vaultview/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the registered claims plus the subject's user id and
// premium entitlement. The premium claim name is shared with the client,
// which mirrors it without verification.
type Claims struct {
	jwt.RegisteredClaims
	UserID  string `json:"uid"`
	Premium bool   `json:"premium"`
}

// GenerateToken mints a signed access token for the user.
func GenerateToken(userID string, premium bool, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		UserID:  userID,
		Premium: premium,
	})

	return token.SignedString(secretKey)
}

// ParseToken validates a token string and returns its claims. Expired tokens
// come back as common.ErrTokenExpired so the transport layer can signal the
// client to refresh; any other failure is common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}
