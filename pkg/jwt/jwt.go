package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// ServiceClaims represents the claims carried by a service-to-service token
type ServiceClaims struct {
	Service string `json:"service"`
	jwt.RegisteredClaims
}

// ServiceTokenSigner issues short-lived tokens used to authenticate this
// service against the identity service.
type ServiceTokenSigner struct {
	secret  []byte
	service string
	expiry  time.Duration
}

// NewServiceTokenSigner creates a new service token signer
func NewServiceTokenSigner(secret, service string, expiry time.Duration) *ServiceTokenSigner {
	return &ServiceTokenSigner{
		secret:  []byte(secret),
		service: service,
		expiry:  expiry,
	}
}

// Sign generates a signed service token
func (s *ServiceTokenSigner) Sign() (string, error) {
	now := time.Now()
	claims := &ServiceClaims{
		Service: s.service,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.service,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate parses and validates a service token
func (s *ServiceTokenSigner) Validate(tokenString string) (*ServiceClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ServiceClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*ServiceClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
