package auth

import (
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// TokenIssuer signs session tokens handed out at login. The token replaces
// the client-held identity blob: the client presents it, it does not invent it.
type TokenIssuer struct {
	Secret []byte
	TTL    time.Duration
}

// NewTokenIssuer creates an issuer with the default 24h lifetime.
func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{Secret: []byte(secret), TTL: 24 * time.Hour}
}

// Claims carries the account identity and its role (customer, vendor, admin).
type Claims struct {
	Role string `json:"role"`
	jwt.StandardClaims
}

// Issue signs a token for the given account id and role.
func (i *TokenIssuer) Issue(subject, role string) (string, error) {
	claims := &Claims{
		Role: role,
		StandardClaims: jwt.StandardClaims{
			Subject:   subject,
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(i.TTL).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.Secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse validates a token and returns its claims.
func (i *TokenIssuer) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.Secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
