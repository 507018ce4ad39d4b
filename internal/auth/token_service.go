package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is how long an issued token stays valid.
const TokenTTL = 7 * 24 * time.Hour

// ErrInvalidToken is returned by Verify for every failure mode: bad
// signature, malformed input, wrong algorithm, expiry. Callers never learn
// which check failed.
var ErrInvalidToken = errors.New("invalid token")

// Identity is the result of verifying a token. The IsAdmin claim reflects
// the user's status at issuance time; authorization decisions must re-read
// the live user record.
type Identity struct {
	UserID  uint
	IsAdmin bool
}

// TokenService issues and verifies signed bearer tokens.
type TokenService interface {
	Issue(userID uint, isAdmin bool) (string, error)
	Verify(token string) (*Identity, error)
}

type claims struct {
	IsAdmin bool `json:"isAdmin"`
	jwt.RegisteredClaims
}

type jwtTokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService signing with the given secret.
// The secret comes from configuration at process start; it is not read from
// any global.
func NewTokenService(secret string) TokenService {
	return &jwtTokenService{secret: []byte(secret)}
}

func (s *jwtTokenService) Issue(userID uint, isAdmin bool) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	})
	return token.SignedString(s.secret)
}

func (s *jwtTokenService) Verify(tokenString string) (*Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &claims{}, func(token *jwt.Token) (interface{}, error) {
		// Pin the signing method to prevent algorithm confusion attacks
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	c, ok := token.Claims.(*claims)
	if !ok {
		return nil, ErrInvalidToken
	}

	userID, err := strconv.ParseUint(c.Subject, 10, 32)
	if err != nil || userID == 0 {
		return nil, ErrInvalidToken
	}

	return &Identity{UserID: uint(userID), IsAdmin: c.IsAdmin}, nil
}
