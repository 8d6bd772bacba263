package token

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for tokens that are malformed, wrongly signed
// or expired. Callers must not distinguish between those causes.
var ErrInvalidToken = errors.New("invalid token")

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// Codec issues and verifies the short-lived access tokens and the long-lived
// refresh tokens. The two kinds are signed with independent secrets so that
// compromise of one does not compromise the other.
type Codec struct {
	accessSecret  []byte
	refreshSecret []byte
	now           func() time.Time
}

func NewCodec(accessSecret, refreshSecret string) *Codec {
	return &Codec{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		now:           time.Now,
	}
}

// IssueAccessToken creates a signed token for the given user, valid for 15 minutes.
func (c *Codec) IssueAccessToken(userID uint) (string, error) {
	return c.sign(userID, c.accessSecret, AccessTokenTTL)
}

// IssueRefreshToken creates a signed token for the given user, valid for 7 days.
func (c *Codec) IssueRefreshToken(userID uint) (string, error) {
	return c.sign(userID, c.refreshSecret, RefreshTokenTTL)
}

// VerifyAccessToken returns the user id encoded in the token.
func (c *Codec) VerifyAccessToken(tokenString string) (uint, error) {
	return c.verify(tokenString, c.accessSecret)
}

// VerifyRefreshToken returns the user id encoded in the token.
func (c *Codec) VerifyRefreshToken(tokenString string) (uint, error) {
	return c.verify(tokenString, c.refreshSecret)
}

func (c *Codec) sign(userID uint, secret []byte, ttl time.Duration) (string, error) {
	now := c.now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func (c *Codec) verify(tokenString string, secret []byte) (uint, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return c.now() }))
	if err != nil || !parsed.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return 0, ErrInvalidToken
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidToken
	}

	return uint(id), nil
}
