// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"patisserie/config"
	domainerrors "patisserie/internal/domain/errors"
	"patisserie/internal/domain/service"
)

const tokenTTL = 24 * time.Hour

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
// Tokens are signed with HS256 and carry the account email as subject.
type jwtService struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.JWT == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	return &jwtService{
		secret: []byte(cfg.SecretKey.JWT),
		ttl:    tokenTTL,
	}, nil
}

// Generate creates a signed token whose subject is the account email.
func (s *jwtService) Generate(email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": email,
		"iat": now.Unix(),
		"exp": now.Add(s.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Validate reports whether the token is well formed, properly signed and
// not expired.
func (s *jwtService) Validate(tokenString string) bool {
	token, err := s.parse(tokenString)

	return err == nil && token.Valid
}

// ExtractSubject returns the email carried by a valid token.
func (s *jwtService) ExtractSubject(tokenString string) (string, error) {
	token, err := s.parse(tokenString)
	if err != nil || !token.Valid {
		return "", errors.Wrap(domainerrors.ErrTokenInvalid, "token validation failed")
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", errors.Wrap(domainerrors.ErrTokenInvalid, "token has no subject")
	}

	return subject, nil
}

func (s *jwtService) parse(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
}
