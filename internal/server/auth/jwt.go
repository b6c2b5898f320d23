// Package auth implements the stateless credential primitives of the
// session core: HS256 token minting/verification and password hashing.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/postwall/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenPayload is the minimal identity embedded in every token. It is
// always built from a UserView, never from the raw User record.
type TokenPayload struct {
	UserID   string
	Email    string
	Nickname string
}

// Claims combines the registered claims with the identity payload.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"uid"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
}

// GenerateToken signs a token carrying payload with the given secret and
// validity window. Access and refresh tokens differ only in the secret and
// duration the caller passes in.
func GenerateToken(payload TokenPayload, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			// jti makes every minted token unique, so rotation always
			// produces a value distinct from the one it replaces
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		UserID:   payload.UserID,
		Email:    payload.Email,
		Nickname: payload.Nickname,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetPayloadFromToken verifies signature and expiry and returns the embedded
// identity. Expired tokens yield common.ErrTokenExpired, everything else
// that fails verification yields common.ErrInvalidToken.
func GetPayloadFromToken(tokenString string, secretKey []byte) (*TokenPayload, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return &TokenPayload{
		UserID:   claims.UserID,
		Email:    claims.Email,
		Nickname: claims.Nickname,
	}, nil
}
