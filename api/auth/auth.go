package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

const (
	// AccessTokenDuration is the lifetime of an access token.
	AccessTokenDuration = 7 * 24 * time.Hour

	// AccessTokenCookieName is the cookie carrying the access token.
	AccessTokenCookieName = "bookcritic.access-token"

	// Issuer is the registered claims issuer.
	Issuer = "bookcritic"
	// KeyID is the expected kid header of our tokens.
	KeyID = "v1"
)

// ClaimsMessage is the claims of an access token. The subject is the user ID.
type ClaimsMessage struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// GenerateAccessToken generates an access token for the user.
func GenerateAccessToken(username string, userID int32, expireTime time.Time, secret []byte) (string, error) {
	registeredClaims := jwt.RegisteredClaims{
		Issuer:   Issuer,
		IssuedAt: jwt.NewNumericDate(time.Now()),
		Subject:  fmt.Sprintf("%d", userID),
	}
	if !expireTime.IsZero() {
		registeredClaims.ExpiresAt = jwt.NewNumericDate(expireTime)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &ClaimsMessage{
		Name:             username,
		RegisteredClaims: registeredClaims,
	})
	token.Header["kid"] = KeyID

	accessToken, err := token.SignedString(secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign access token")
	}
	return accessToken, nil
}

// ParseAccessToken validates the token signature and returns its claims.
func ParseAccessToken(accessToken string, secret []byte) (*ClaimsMessage, error) {
	claims := &ClaimsMessage{}
	_, err := jwt.ParseWithClaims(accessToken, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Name {
			return nil, errors.New("unexpected signing method")
		}
		if kid, ok := t.Header["kid"].(string); !ok || kid != KeyID {
			return nil, errors.New("unexpected key id")
		}
		return secret, nil
	})
	if err != nil {
		return nil, errors.New("invalid or expired access token")
	}
	return claims, nil
}
