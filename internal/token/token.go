package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload embedded in every issued token.
type Claims struct {
	UserID   string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// Status is the outcome of verifying a token. The signature check runs
// before the expiry check, so a tampered token is Invalid even when its
// embedded expiry has already passed.
type Status int

const (
	StatusValid Status = iota
	StatusExpired
	StatusInvalid
)

// Codec signs and verifies compact HS256 tokens. The secret is loaded once
// at startup and never changes for the lifetime of the process; tokens are
// stateless and cannot be revoked before they expire.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = time.Hour
	}

	return &Codec{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

func (c *Codec) Issue(userID, fullName, email string) (string, error) {
	now := time.Now().UTC()

	claims := Claims{
		UserID:   userID,
		FullName: fullName,
		Email:    email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return t.SignedString(c.secret)
}

func (c *Codec) Verify(raw string) (*Claims, Status) {
	t, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// Enforce HMAC so an attacker cannot downgrade to "none" or RSA
		_, ok := t.Method.(*jwt.SigningMethodHMAC)

		if !ok {
			return nil, errors.New("unexpected signing method")
		}
		return c.secret, nil
	})

	if err != nil {
		// jwt/v5 only reports expiry once the signature has checked out
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, StatusExpired
		}

		return nil, StatusInvalid
	}

	claims, ok := t.Claims.(*Claims)

	if !ok || !t.Valid {
		return nil, StatusInvalid
	}

	return claims, StatusValid
}
