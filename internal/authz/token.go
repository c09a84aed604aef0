package authz

import (
	"Folio/internal/domain"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by a bearer token. The subject is the user id.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type TokenVerifier interface {
	Verify(tokenString string) (Principal, error)
}

// HMACTokens signs and verifies HS256 tokens with a shared secret.
type HMACTokens struct {
	secret []byte
	now    func() time.Time
}

func NewHMACTokens(secret string) (*HMACTokens, error) {
	if secret == "" {
		return nil, errors.New("jwt secret cannot be empty")
	}
	return &HMACTokens{secret: []byte(secret), now: time.Now}, nil
}

func (t *HMACTokens) Issue(principal Principal, ttl time.Duration) (string, error) {
	now := t.now()
	claims := Claims{
		Role: string(principal.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

func (t *HMACTokens) Verify(tokenString string) (Principal, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Principal{}, domain.ErrUnauthorized
	}
	if claims.Subject == "" {
		return Principal{}, fmt.Errorf("%w: token missing subject", domain.ErrUnauthorized)
	}
	return Principal{UserID: claims.Subject, Role: Normalize(claims.Role)}, nil
}
