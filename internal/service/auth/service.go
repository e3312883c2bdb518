package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"bounties-api/internal/authz"
	"bounties-api/internal/domain"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Tokens are minted by the login service after the wallet signs its nonce;
// this service only verifies them.
type Service interface {
	ValidateAccessToken(token string) (*Claims, error)
	Caller(token string) (authz.Caller, error)
}

type Claims struct {
	PublicAddress string `json:"public_address"`
	jwt.RegisteredClaims
}

type service struct {
	secret []byte
}

func NewService(secret string) Service {
	return &service{secret: []byte(secret)}
}

func (s *service) ValidateAccessToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithLeeway(30*time.Second))

	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Caller resolves a token to the normalized identity it was issued for.
func (s *service) Caller(tokenString string) (authz.Caller, error) {
	claims, err := s.ValidateAccessToken(tokenString)
	if err != nil {
		return authz.Caller{}, err
	}

	address, err := domain.NormalizeIdentity(claims.PublicAddress)
	if err != nil {
		return authz.Caller{}, ErrInvalidToken
	}
	return authz.Caller{Address: address}, nil
}

// IssueToken signs a token for address. Used by tests and local tooling.
func IssueToken(secret, address string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		PublicAddress: address,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
