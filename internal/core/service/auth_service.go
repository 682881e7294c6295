package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/alzia/storefront/internal/core/domain"
	"github.com/alzia/storefront/internal/core/ports"
)

const minPasswordLength = 8

// AuthService implements registration, login and session verification.
type AuthService struct {
	repo          ports.CustomerRepository
	secret        []byte
	tokenTTL      time.Duration
	signupCredits int
	logger        zerolog.Logger
	now           func() time.Time
}

func NewAuthService(repo ports.CustomerRepository, secret string, tokenTTL time.Duration, signupCredits int, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 7 * 24 * time.Hour
	}
	if signupCredits < 0 {
		signupCredits = 0
	}
	return &AuthService{
		repo:          repo,
		secret:        []byte(secret),
		tokenTTL:      tokenTTL,
		signupCredits: signupCredits,
		logger:        logger,
		now:           time.Now,
	}
}

// Register creates a normal, active retail customer with the signup credit grant.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Customer, error) {
	email := normalizeEmail(in.Email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.NewValidationError("email", "must be a valid email")
	}
	if len(in.Password) < minPasswordLength {
		return nil, domain.NewValidationError("password", fmt.Sprintf("must be at least %d characters", minPasswordLength))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	customer := &domain.Customer{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Phone:        strings.TrimSpace(in.Phone),
		Role:         domain.RoleNormal,
		Status:       domain.StatusActive,
		CustomerType: domain.CustomerRetail,
		TryOnCredits: s.signupCredits,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, err
	}

	s.logger.Info().Str("customer_id", customer.ID).Msg("customer registered")
	return customer, nil
}

// Login checks credentials and issues a session token. Role and status are
// not checked here; the access gate does that on every request.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Customer, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	customer, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(customer.ID)
	if err != nil {
		return "", nil, err
	}

	return token, customer, nil
}

// VerifySession validates an HS256 session token and returns its subject.
func (s *AuthService) VerifySession(token string) (string, error) {
	if token == "" {
		return "", domain.ErrUnauthenticated
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithExpirationRequired(), jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return "", domain.ErrUnauthenticated
	}
	return claims.Subject, nil
}

func (s *AuthService) Customer(ctx context.Context, id string) (*domain.Customer, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *AuthService) generateToken(customerID string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   customerID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
