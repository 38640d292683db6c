package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidSessionToken = errors.New("invalid session token")

// Claims are the verifiable session claims: subject id, role and email.
type Claims struct {
	UserID string `json:"sub"`
	Role   string `json:"role"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenSigner mints and parses HS256 session tokens.
type TokenSigner struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenSigner(secret string, ttl time.Duration) *TokenSigner {
	return &TokenSigner{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Generate mints a signed token for the given user.
func (s *TokenSigner) Generate(userID, role, email string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Role:   role,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse validates signature and expiry and returns the claims.
func (s *TokenSigner) Parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSessionToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidSessionToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidSessionToken
	}
	return claims, nil
}
