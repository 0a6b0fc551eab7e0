package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const bearerPrefix = "Bearer "

// TokenService is the sole authority minting and checking bearer tokens.
// Tokens carry an identity claim and an issued-at timestamp; no expiry claim
// is set at issuance, so ErrTokenExpired is a reserved failure mode that the
// verification path still recognizes.
type TokenService interface {
	Issue(identity string) (string, error)
	Verify(raw string) (string, error)
	Authenticate(authorizationHeader string) (string, error)
}

type tokenService struct {
	secret []byte
}

func NewTokenService(secret string) TokenService {
	return &tokenService{secret: []byte(secret)}
}

func (s *tokenService) Issue(identity string) (string, error) {
	claims := jwt.MapClaims{
		"identity": identity,
		"iat":      jwt.NewNumericDate(time.Now()),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *tokenService) Verify(raw string) (string, error) {
	tok, err := jwt.Parse(raw, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrTokenInvalid
	}
	identity, ok := claims["identity"].(string)
	if !ok || identity == "" {
		return "", ErrTokenInvalid
	}
	return identity, nil
}

// Authenticate verifies a raw Authorization header value. A header that is
// absent or not in bearer shape fails before any token inspection.
func (s *tokenService) Authenticate(authorizationHeader string) (string, error) {
	if !strings.HasPrefix(authorizationHeader, bearerPrefix) {
		return "", ErrTokenMissing
	}
	return s.Verify(strings.TrimPrefix(authorizationHeader, bearerPrefix))
}
