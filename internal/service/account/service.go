package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/juan-beltranos/catalogo-interactivo/internal/domain"
	merchrepo "github.com/juan-beltranos/catalogo-interactivo/internal/repository/merchant"
	tokenrepo "github.com/juan-beltranos/catalogo-interactivo/internal/repository/token"
)

var (
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates the provided token could not be validated.
	ErrInvalidToken = errors.New("invalid token")
)

// Service handles merchant signup/login and password recovery.
type Service struct {
	repo        merchrepo.Repository
	tokens      *tokenManager
	accessTTL   time.Duration
	refreshTTL  time.Duration
	resetTTL    time.Duration
	passwordMin int
}

// New creates a Service with sane defaults.
func New(repo merchrepo.Repository, tokens tokenrepo.Repository) *Service {
	return &Service{
		repo:        repo,
		tokens:      newTokenManager(tokens),
		accessTTL:   48 * time.Hour,
		refreshTTL:  30 * 24 * time.Hour,
		resetTTL:    time.Hour,
		passwordMin: 8,
	}
}

// Signup registers a merchant account.
func (s *Service) Signup(ctx context.Context, email, password string) (*domain.Merchant, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: valid email required", domain.ErrInvalidInput)
	}
	password = strings.TrimSpace(password)
	if err := validatePassword(password, s.passwordMin); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, domain.Merchant{
		Email:        email,
		PasswordHash: string(hashed),
	})
}

// Login validates credentials and returns issued tokens plus the merchant.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.Merchant, string, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	password = strings.TrimSpace(password)
	m, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", "", ErrInvalidCredentials
		}
		return nil, "", "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	access, err := s.tokens.Issue(ctx, m.ID, "access", s.accessTTL)
	if err != nil {
		return nil, "", "", err
	}
	refresh, err := s.tokens.Issue(ctx, m.ID, "refresh", s.refreshTTL)
	if err != nil {
		return nil, "", "", err
	}
	return m, access, refresh, nil
}

// Refresh exchanges a refresh token for a fresh access token.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	meta, ok := s.tokens.Validate(ctx, refreshToken, "refresh")
	if !ok {
		return "", ErrInvalidToken
	}
	return s.tokens.Issue(ctx, meta.MerchantID, "access", s.accessTTL)
}

// Logout revokes an access token.
func (s *Service) Logout(ctx context.Context, accessToken string) error {
	return s.tokens.Revoke(ctx, accessToken)
}

// LookupByToken returns the merchant bound to a valid access token.
func (s *Service) LookupByToken(ctx context.Context, token string) (*domain.Merchant, error) {
	meta, ok := s.tokens.Validate(ctx, token, "access")
	if !ok {
		return nil, ErrInvalidToken
	}
	m, err := s.repo.GetByID(ctx, meta.MerchantID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return m, nil
}

// RequestPasswordReset issues a short-lived reset token for the account.
// Unknown emails report success without a token so the endpoint does not
// leak which addresses exist.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	m, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return s.tokens.Issue(ctx, m.ID, "reset", s.resetTTL)
}

// ResetPassword sets a new password using a valid reset token. The token is
// single-use.
func (s *Service) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	meta, ok := s.tokens.Validate(ctx, resetToken, "reset")
	if !ok {
		return ErrInvalidToken
	}
	newPassword = strings.TrimSpace(newPassword)
	if err := validatePassword(newPassword, s.passwordMin); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, meta.MerchantID, string(hashed)); err != nil {
		return err
	}
	return s.tokens.Revoke(ctx, resetToken)
}

// AccessTTLSeconds exposes the access token lifetime in seconds.
func (s *Service) AccessTTLSeconds() int {
	return int(s.accessTTL.Seconds())
}

func validatePassword(p string, min int) error {
	trimmed := strings.TrimSpace(p)
	if len(trimmed) < min {
		return fmt.Errorf("password must be at least %d characters", min)
	}
	hasUpper := false
	hasLower := false
	hasDigit := false
	for _, r := range trimmed {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return errors.New("password must contain at least 1 uppercase letter, 1 lowercase letter, and 1 number")
	}
	return nil
}
