package jwt

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	customErrors "github.com/skylume/user-service/internal/domain/user/errors"
	"github.com/skylume/user-service/internal/domain/user/token"
	"github.com/skylume/user-service/internal/infra/config"
)

const leeway = 2 * time.Minute

// Manager signs and verifies both token classes with a shared HS256 secret.
// The kind claim keeps them distinct capabilities.
type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	issuer     string
	audience   string
}

func NewManager(cfg *config.Config) (*Manager, error) {
	if cfg.JWTSecret == "" {
		return nil, customErrors.WrapInternal(errors.New("empty secret"), "NewManager")
	}
	return &Manager{
		secret:     []byte(cfg.JWTSecret),
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
		issuer:     cfg.Issuer,
		audience:   cfg.Audience,
	}, nil
}

func (m *Manager) GenerateAccessToken(userID uint64, email string) (string, time.Time, error) {
	return m.generate(userID, email, token.KindAccess, m.accessTTL)
}

func (m *Manager) GenerateRefreshToken(userID uint64, email string) (string, time.Time, error) {
	return m.generate(userID, email, token.KindRefresh, m.refreshTTL)
}

func (m *Manager) generate(userID uint64, email string, kind token.Kind, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()

	claims := token.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(userID, 10),
			Issuer:    m.issuer,
			Audience:  jwt.ClaimStrings{m.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
		UserID: userID,
		Email:  email,
		Kind:   kind,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, customErrors.WrapInternal(err, "sign "+string(kind)+" token")
	}

	return signed, claims.ExpiresAt.Time, nil
}

func (m *Manager) ValidateAccessToken(raw string) (token.Claims, error) {
	return m.validate(raw, token.KindAccess)
}

func (m *Manager) ValidateRefreshToken(raw string) (token.Claims, error) {
	return m.validate(raw, token.KindRefresh)
}

func (m *Manager) validate(raw string, kind token.Kind) (token.Claims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &token.Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, customErrors.ErrInvalidToken
		}
		return m.secret, nil
	}, jwt.WithIssuedAt(), jwt.WithLeeway(leeway))

	if err != nil || !parsed.Valid {
		return token.Claims{}, customErrors.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*token.Claims)
	if !ok {
		return token.Claims{}, customErrors.WrapInternal(errors.New("unexpected claims type"), "validate")
	}

	if claims.Kind != kind {
		return token.Claims{}, customErrors.ErrInvalidToken
	}

	if m.issuer != "" && claims.Issuer != m.issuer {
		return token.Claims{}, customErrors.ErrInvalidToken
	}

	if m.audience != "" {
		okAud := false
		for _, a := range claims.Audience {
			if a == m.audience {
				okAud = true
				break
			}
		}
		if !okAud {
			return token.Claims{}, customErrors.ErrInvalidToken
		}
	}

	return *claims, nil
}
