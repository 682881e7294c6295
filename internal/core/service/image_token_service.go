package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"github.com/alzia/storefront/internal/core/domain"
	"github.com/alzia/storefront/internal/core/ports"
)

// ImageTokenService issues and redeems one-time image download tokens.
type ImageTokenService struct {
	store      ports.TokenStore
	fetcher    ports.ImageFetcher
	sources    []*url.URL
	defaultTTL time.Duration
	maxTTL     time.Duration
	logger     zerolog.Logger
	now        func() time.Time
}

// NewImageTokenService builds the service. sources are the base URLs tokens may
// point under (the public storage URL and any extra origins); with none, every
// issue request is refused.
func NewImageTokenService(store ports.TokenStore, fetcher ports.ImageFetcher, sources []string, defaultTTL, maxTTL time.Duration, logger zerolog.Logger) *ImageTokenService {
	if defaultTTL <= 0 {
		defaultTTL = domain.DefaultImageTokenTTL
	}
	if maxTTL < defaultTTL {
		maxTTL = defaultTTL
	}
	var bases []*url.URL
	for _, raw := range sources {
		u, err := url.Parse(strings.TrimSpace(raw))
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			logger.Warn().Str("source", raw).Msg("ignoring invalid image token source")
			continue
		}
		bases = append(bases, u)
	}
	return &ImageTokenService{
		store:      store,
		fetcher:    fetcher,
		sources:    bases,
		defaultTTL: defaultTTL,
		maxTTL:     maxTTL,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *ImageTokenService) Issue(ctx context.Context, imageURL string, expiresInMinutes int) (*ports.IssuedToken, error) {
	u, err := url.Parse(imageURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, domain.NewValidationError("image_url", "must be an http or https URL")
	}
	if !s.allowedSource(u) {
		return nil, domain.NewValidationError("image_url", "must point to the try-on image storage")
	}

	ttl := s.defaultTTL
	if expiresInMinutes != 0 {
		ttl = time.Duration(expiresInMinutes) * time.Minute
		if expiresInMinutes < 0 || ttl > s.maxTTL {
			return nil, domain.NewValidationError("expires_in_minutes", fmt.Sprintf("must be between 1 and %d", int(s.maxTTL/time.Minute)))
		}
	}

	token, err := newToken()
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	expiresAt := s.now().Add(ttl)
	if err := s.store.Save(ctx, &domain.ImageToken{
		Token:     token,
		ImageURL:  imageURL,
		ExpiresAt: expiresAt,
	}); err != nil {
		return nil, fmt.Errorf("save token: %w", err)
	}

	s.logger.Info().Str("token", tokenPrefix(token)).Time("expires_at", expiresAt).Msg("image token issued")
	return &ports.IssuedToken{Token: token, ExpiresAt: expiresAt, ExpiresIn: ttl}, nil
}

// Redeem consumes the token before touching the source, so a failed fetch
// still burns it.
func (s *ImageTokenService) Redeem(ctx context.Context, token string) (*ports.Image, *domain.ImageToken, error) {
	if token == "" {
		return nil, nil, domain.NewValidationError("token", "is required")
	}

	t, err := s.store.Consume(ctx, token, s.now())
	if err != nil {
		s.logger.Debug().Err(err).Str("token", tokenPrefix(token)).Msg("image token rejected")
		return nil, nil, err
	}

	img, err := s.fetcher.Fetch(ctx, t.ImageURL)
	if err != nil {
		s.logger.Error().Err(err).Str("token", tokenPrefix(token)).Msg("image fetch failed")
		return nil, t, domain.Upstream("image fetch", err)
	}
	if mt := mimetype.Detect(img.Data); !strings.HasPrefix(mt.String(), "image/") {
		s.logger.Error().Str("token", tokenPrefix(token)).Str("content_type", mt.String()).Msg("image token source is not an image")
		return nil, t, domain.Upstream("image fetch", fmt.Errorf("source is not an image (%s)", mt.String()))
	}

	s.logger.Info().Str("token", tokenPrefix(token)).Int("downloads", t.Downloads).Msg("image token redeemed")
	return img, t, nil
}

// allowedSource reports whether u lies under one of the configured base URLs:
// same scheme and host, no credentials, and a clean path inside the base path.
func (s *ImageTokenService) allowedSource(u *url.URL) bool {
	if u.User != nil || u.Path == "" || path.Clean(u.Path) != u.Path {
		return false
	}
	for _, base := range s.sources {
		if u.Scheme != base.Scheme || !strings.EqualFold(u.Host, base.Host) {
			continue
		}
		if strings.HasPrefix(u.Path, strings.TrimRight(base.Path, "/")+"/") {
			return true
		}
	}
	return false
}

func newToken() (string, error) {
	b := make([]byte, domain.ImageTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func tokenPrefix(token string) string {
	if len(token) > 8 {
		return token[:8] + "..."
	}
	return token
}
