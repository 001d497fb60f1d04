// Package auth implements the stateless credential primitives of the
// server: the signed access-token codec and the password hasher.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/shopkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the access-token payload: registered claims plus the owning
// user's identifier.
type Claims struct {
	jwt.RegisteredClaims
	UserID string
}

// GenerateToken produces a signed HS256 access token for userID, valid for
// validityDuration from now. The token is self-contained: verification
// needs only the secret, never a store lookup.
func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			// The jti makes every token unique even when two are issued
			// within the same second.
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetUserIDFromToken verifies signature and expiry and returns the embedded
// user ID. Failures map to distinguishable sentinels:
// common.ErrTokenExpired, common.ErrTokenSignatureInvalid, and
// common.ErrTokenMalformed. Callers that gate requests should collapse all
// of them into a single unauthorized outcome.
func GetUserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrTokenSignatureInvalid
		}
		return secretKey, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", common.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", common.ErrTokenSignatureInvalid
		case errors.Is(err, jwt.ErrTokenMalformed):
			return "", common.ErrTokenMalformed
		default:
			return "", common.ErrTokenMalformed
		}
	}

	if !token.Valid {
		return "", common.ErrTokenSignatureInvalid
	}

	return claims.UserID, nil
}
