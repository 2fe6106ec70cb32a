// Package auth issues and verifies the bearer tokens that identify a professor.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMissingToken is returned when a request carries no bearer token
var ErrMissingToken = errors.New("missing bearer token")

// Claims identify the professor a token was issued to
type Claims struct {
	ProfessorID int64  `json:"professor_id"`
	Nome        string `json:"nome,omitempty"`
	jwt.RegisteredClaims
}

// NewAccessToken signs an HS256 token for professorID valid for ttl
func NewAccessToken(secret, issuer string, ttl time.Duration, professorID int64, nome string) (string, error) {
	if professorID <= 0 {
		return "", fmt.Errorf("invalid professor id %d", professorID)
	}
	now := time.Now().UTC()
	claims := Claims{
		ProfessorID: professorID,
		Nome:        nome,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(professorID, 10),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken verifies tokenString and returns its claims. The subject must
// match the professor id claim.
func ParseToken(secret, issuer, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(issuer))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if claims.ProfessorID <= 0 || claims.Subject != strconv.FormatInt(claims.ProfessorID, 10) {
		return nil, jwt.ErrTokenInvalidSubject
	}
	return claims, nil
}

// BearerToken extracts the token from an Authorization header value
func BearerToken(header string) string {
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
