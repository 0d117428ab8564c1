package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultIssuer is the issuer used by the meeting-assistant auth service
const DefaultIssuer = "meeting-assistant"

// leeway tolerates clock drift between this service and the issuer
const leeway = 30 * time.Second

var ErrInvalidClaims = errors.New("invalid token claims")

// Manager verifies access tokens issued by the auth service.
// GenerateAccessToken exists for seeding and tests.
type Manager struct {
	secret []byte
	expiry time.Duration
	issuer string
	clock  clock.Clock
	parser *jwt.Parser
}

// NewManager creates a manager on the wall clock
func NewManager(accessSecret string, accessExpiry time.Duration, issuer string) *Manager {
	return NewManagerWithClock(accessSecret, accessExpiry, issuer, clock.New())
}

// NewManagerWithClock creates a manager that issues and checks expiry on clk
func NewManagerWithClock(accessSecret string, accessExpiry time.Duration, issuer string, clk clock.Clock) *Manager {
	if issuer == "" {
		issuer = DefaultIssuer
	}
	return &Manager{
		secret: []byte(accessSecret),
		expiry: accessExpiry,
		issuer: issuer,
		clock:  clk,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(issuer),
			jwt.WithExpirationRequired(),
			jwt.WithLeeway(leeway),
			jwt.WithTimeFunc(clk.Now),
		),
	}
}

// GenerateAccessToken signs an HS256 token for id
func (m *Manager) GenerateAccessToken(id Identity) (string, error) {
	now := m.clock.Now()
	claims := &Claims{
		UserID: id.UserID,
		Email:  id.Email,
		Name:   id.Name,
		Role:   id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    m.issuer,
			Subject:   id.UserID.String(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateAccessToken parses tokenString and checks signature, issuer and
// expiry. Expired tokens wrap jwt.ErrTokenExpired.
func (m *Manager) ValidateAccessToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := m.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if claims.UserID.String() != claims.Subject {
		return nil, ErrInvalidClaims
	}
	return claims, nil
}
