// Package auth issues and verifies the HS256 access/refresh token pair.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/petcare/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// Claims extends the registered claims with the token type.
type Claims struct {
	jwt.RegisteredClaims
	Type string `json:"typ"`
}

type TokenPair struct {
	AccessToken      string    `json:"access_token"`
	RefreshToken     string    `json:"refresh_token"`
	RefreshExpiresAt time.Time `json:"-"`
}

type TokenProvider struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenProvider(secret []byte, accessTTL, refreshTTL time.Duration) *TokenProvider {
	return &TokenProvider{secret: secret, accessTTL: accessTTL, refreshTTL: refreshTTL, now: time.Now}
}

// Generate issues a fresh pair for subject. Every token carries a random jti,
// so two pairs issued within the same second still differ.
func (p *TokenProvider) Generate(subject string) (TokenPair, error) {
	now := p.now()

	access, err := p.sign(subject, TypeAccess, now, now.Add(p.accessTTL))
	if err != nil {
		return TokenPair{}, err
	}
	refreshExp := now.Add(p.refreshTTL)
	refresh, err := p.sign(subject, TypeRefresh, now, refreshExp)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh, RefreshExpiresAt: refreshExp}, nil
}

func (p *TokenProvider) sign(subject, typ string, issued, expires time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(expires),
			ID:        uuid.NewString(),
		},
		Type: typ,
	})
	s, err := token.SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", typ, err)
	}
	return s, nil
}

func (p *TokenProvider) parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return p.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(p.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}

// Validate reports (true, nil) for a good token and (false, nil) for an
// expired one. Malformed tokens and bad signatures give common.ErrInvalidToken.
func (p *TokenProvider) Validate(tokenString string) (bool, error) {
	_, err := p.parse(tokenString)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, common.ErrTokenExpired):
		return false, nil
	default:
		return false, err
	}
}

// ParseAccess returns the subject of a valid access token. Refresh tokens
// are rejected.
func (p *TokenProvider) ParseAccess(tokenString string) (string, error) {
	claims, err := p.parse(tokenString)
	if err != nil {
		return "", err
	}
	if claims.Type != TypeAccess || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}
	return claims.Subject, nil
}
