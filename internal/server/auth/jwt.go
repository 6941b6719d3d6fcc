// Package auth issues and verifies the backend's HS256 tokens.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/nehruadmin/internal/common"
)

// Token kinds; a refresh token is never accepted as an access token.
const (
	KindAccess  = "access"
	KindRefresh = "refresh"
)

// Claims carries the standard claims plus the token kind and the admin's
// email.
type Claims struct {
	jwt.RegisteredClaims
	Kind  string `json:"token_type"`
	Email string `json:"email"`
}

// GenerateToken signs a token of kind for subject, valid for validity.
func GenerateToken(subject, email, kind string, secretKey []byte, validity time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
		Kind:  kind,
		Email: email,
	})
	return token.SignedString(secretKey)
}

// ParseToken verifies tokenString and checks that it is of kind. Expired
// tokens yield common.ErrTokenExpired, anything else unusable
// common.ErrInvalidToken.
func ParseToken(tokenString, kind string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if !token.Valid || claims.Kind != kind {
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}
