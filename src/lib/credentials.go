package lib

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/theleywin/Backend-DevTinder/src/common"
)

// Claims carries the standard registered claims plus the user id.
type Claims struct {
	jwt.RegisteredClaims
	UserID string
}

// Credentials hashes passwords and issues/verifies session tokens.
type Credentials struct {
	secret []byte
	ttl    time.Duration
	cost   int
	now    func() time.Time
}

func NewCredentials(secret string, ttl time.Duration, cost int) *Credentials {
	return &Credentials{secret: []byte(secret), ttl: ttl, cost: cost, now: time.Now}
}

func (c *Credentials) TTL() time.Duration { return c.ttl }

func (c *Credentials) Hash(plaintext string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plaintext), c.cost)
	if err != nil {
		return "", fmt.Errorf("%w: hash password: %w", common.ErrUnexpected, err)
	}
	return string(h), nil
}

// Verify reports whether plaintext matches hash. A malformed hash is a
// mismatch, not an error.
func (c *Credentials) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

func (c *Credentials) IssueToken(userID string) (string, error) {
	now := c.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
		UserID: userID,
	})

	s, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("%w: sign token: %w", common.ErrUnexpected, err)
	}
	return s, nil
}

// VerifyToken returns the user id carried by a valid token, or
// common.ErrInvalidToken.
func (c *Credentials) VerifyToken(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("%w: expired", common.ErrInvalidToken)
		}
		return "", common.ErrInvalidToken
	}
	if !token.Valid || claims.UserID == "" {
		return "", common.ErrInvalidToken
	}
	return claims.UserID, nil
}
