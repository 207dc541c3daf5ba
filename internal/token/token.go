package token

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/mrigajana-makstark/makstarkrepo2/internal/clock"
	"github.com/mrigajana-makstark/makstarkrepo2/internal/config"
	"go.uber.org/fx"
)

var (
	ErrInvalidToken  = errors.New("invalid_token")
	ErrMissingSecret = errors.New("jwt secret is not configured")
)

// Claims is the compact signed claim set carried by access tokens.
type Claims struct {
	Subject string
	Role    string
}

// Issuer signs and verifies HS256 access tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	clock  clock.Clock
}

type IssuerParam struct {
	fx.In

	Config config.Config
	Clock  clock.Clock
}

func NewIssuer(p IssuerParam) (*Issuer, error) {
	secret := strings.TrimSpace(p.Config.JWTSecret)
	if secret == "" {
		return nil, ErrMissingSecret
	}
	ttl := p.Config.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Issuer{
		secret: []byte(secret),
		ttl:    ttl,
		clock:  p.Clock,
	}, nil
}

// Sign issues a bearer token for the given subject and role.
func (i *Issuer) Sign(subject, role string) (string, error) {
	now := i.clock.Now()
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(i.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Verify parses and validates a raw token, returning its claims.
func (i *Issuer) Verify(raw string) (*Claims, error) {
	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	subject, _ := claims["sub"].(string)
	if subject == "" {
		return nil, ErrInvalidToken
	}
	role, _ := claims["role"].(string)
	if role == "" {
		role = "user"
	}
	return &Claims{Subject: subject, Role: role}, nil
}

var Module = fx.Module("token",
	fx.Provide(NewIssuer),
)
