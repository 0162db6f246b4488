package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// Identity is the decoded subject of a verified token.
type Identity struct {
	Email string
}

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Issuer issues and verifies HS256-signed tokens binding an email to a
// time-limited credential. Verification is stateless: signature + expiry only.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

func (i *Issuer) Issue(email string) (string, error) {
	now := time.Now()
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	})

	return tk.SignedString(i.secret)
}

func (i *Issuer) Verify(raw string) (Identity, error) {
	var c claims
	tk, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, ErrExpiredToken
		}
		return Identity{}, ErrInvalidToken
	}
	if !tk.Valid || c.Email == "" {
		return Identity{}, ErrInvalidToken
	}

	return Identity{Email: c.Email}, nil
}
