package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/revokedtokens"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTokenTTL is the validity window applied when TokenConfig.TTL is unset.
const DefaultTokenTTL = 60 * time.Minute

// TokenConfig holds the signing parameters of a TokenService. Secret lives
// for the whole process; replacing it invalidates every outstanding token.
type TokenConfig struct {
	Secret []byte
	TTL    time.Duration
	Issuer string
	Now    func() time.Time
}

// Claims is the payload of a session token. Subject carries the user ID and
// ID carries the token identifier recorded on logout.
type Claims struct {
	jwt.RegisteredClaims
}

func (c *Claims) UserID() string {
	return c.Subject
}

// Token is a freshly issued, signed session token.
type Token struct {
	Raw       string
	JTI       string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService issues, verifies and invalidates HS256 session tokens.
type TokenService struct {
	secret  []byte
	ttl     time.Duration
	issuer  string
	now     func() time.Time
	revoked revokedtokens.Repository
}

func NewTokenService(cfg TokenConfig, revoked revokedtokens.Repository) (*TokenService, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("token secret is empty")
	}
	if revoked == nil {
		return nil, errors.New("revoked token repository is nil")
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &TokenService{
		secret:  cfg.Secret,
		ttl:     ttl,
		issuer:  cfg.Issuer,
		now:     now,
		revoked: revoked,
	}, nil
}

func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a new token for userID valid for the configured TTL.
func (s *TokenService) Issue(userID string) (Token, error) {
	if userID == "" {
		return Token{}, errors.New("empty user id")
	}

	now := s.now().Truncate(time.Second)
	exp := now.Add(s.ttl)
	jti := uuid.NewString()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    s.issuer,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return Token{}, fmt.Errorf("sign token: %w", err)
	}

	return Token{Raw: raw, JTI: jti, IssuedAt: now, ExpiresAt: exp}, nil
}

// Authenticate verifies raw and returns its claims. The signature is checked
// before expiry and before the invalidation lookup.
func (s *TokenService) Authenticate(ctx context.Context, raw string) (*Claims, error) {
	if raw == "" {
		return nil, common.ErrTokenMissing
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, s.keyFunc, opts...)
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, common.ErrTokenExpired
	default:
		return nil, common.ErrTokenInvalid
	}

	if claims.ID == "" || claims.Subject == "" {
		return nil, common.ErrTokenInvalid
	}

	revoked, err := s.revoked.Contains(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: revoked lookup: %w", common.ErrorInternal, err)
	}
	if revoked {
		return nil, common.ErrTokenInvalid
	}

	return claims, nil
}

// Invalidate records raw in the invalidation set. Expiry is ignored, so
// logging out an expired or already revoked token still succeeds.
func (s *TokenService) Invalidate(ctx context.Context, raw string) error {
	if raw == "" {
		return common.ErrTokenMissing
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrInvalidationFailed, err)
	}
	if claims.ID == "" {
		return fmt.Errorf("%w: token has no jti", common.ErrInvalidationFailed)
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	err = s.revoked.Add(ctx, models.RevokedToken{
		JTI:           claims.ID,
		InvalidatedAt: now,
		ExpiresAt:     expiresAt,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrInvalidationFailed, err)
	}
	return nil
}

func (s *TokenService) keyFunc(*jwt.Token) (any, error) {
	return s.secret, nil
}
