package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mkravets/sayright/models"
)

// GenerateToken creates a signed HMAC-SHA256 JWT session token.
//
// The token carries the standard claims:
//   - Issuer    (iss): the service that issued the token
//   - Subject   (sub): the user's uid
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//
// All parameters are required; an error is returned if any is empty or zero.
func GenerateToken(issuer, uid string, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || uid == "" || tokenDuration == 0 || signKey == "" {
		return models.Token{}, errors.New("invalid params for generating JWT token")
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   uid,
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("signing JWT token: %w", err)
	}

	return models.Token{SignedString: tokenString, UID: uid}, nil
}

// ValidateToken verifies the token's signature, issuer and expiry against
// the given key, and extracts the uid from the subject claim.
func ValidateToken(tokenString, signKey, issuer string) (models.Token, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(signKey), nil
	}, jwt.WithIssuer(issuer))
	if err != nil {
		return models.Token{}, fmt.Errorf("validating token: %w", err)
	}

	uid, err := token.Claims.GetSubject()
	if err != nil {
		return models.Token{}, fmt.Errorf("token subject: %w", err)
	}
	if uid == "" {
		return models.Token{}, errors.New("empty subject in token")
	}

	return models.Token{SignedString: tokenString, UID: uid}, nil
}

// ParseBearerToken extracts the token string from an "Authorization" header
// value of the form "Bearer <token>".
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Split(strings.TrimSpace(authorizationHeader), " ")
	if len(parts) != 2 || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
