package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrExpired is returned for tokens past their expiry
	ErrExpired = errors.New("token has expired")
	// ErrInvalid is returned for malformed, wrongly signed or subject-less tokens
	ErrInvalid = errors.New("invalid token")
)

// Claims is what the API needs from a bearer token
type Claims struct {
	BusinessID string
	ExpiresAt  time.Time
}

// IssueToken signs an HS256 token whose subject is the business id.
// A zero ttl issues a token without expiry.
func IssueToken(businessID string, secret []byte, ttl time.Duration) (string, error) {
	businessID = strings.TrimSpace(businessID)
	if businessID == "" {
		return "", errors.New("business id is required")
	}
	if len(secret) == 0 {
		return "", errors.New("signing secret is required")
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:  businessID,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken validates a token and returns its claims
func ParseToken(tokenString string, secret []byte) (*Claims, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if !token.Valid || strings.TrimSpace(claims.Subject) == "" {
		return nil, ErrInvalid
	}

	out := &Claims{BusinessID: claims.Subject}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
