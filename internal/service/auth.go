package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/security"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidResetCode   = errors.New("invalid or expired reset code")
)

type authService struct {
	userRepo        repository.UserRepository
	tokens          security.TokenManager
	emailSvc        EmailService
	adminAccessCode string
	resetCodeExpiry time.Duration
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager, emailSvc EmailService, adminAccessCode string, resetCodeExpiryMinutes int) AuthService {
	return &authService{
		userRepo:        userRepo,
		tokens:          tokens,
		emailSvc:        emailSvc,
		adminAccessCode: adminAccessCode,
		resetCodeExpiry: time.Duration(resetCodeExpiryMinutes) * time.Minute,
	}
}

func (s *authService) RegisterCustomer(ctx context.Context, name, email, phone, password string) (*domain.User, string, string, error) {
	return s.register(ctx, name, email, phone, password, domain.UserRoleCustomer)
}

// RegisterAdmin creates an admin account. The access code gates admin signup;
// it is configured per deployment.
func (s *authService) RegisterAdmin(ctx context.Context, name, email, phone, password, accessCode string) (*domain.User, string, string, error) {
	if accessCode != s.adminAccessCode {
		return nil, "", "", fmt.Errorf("%w: invalid admin access code", domain.ErrForbidden)
	}
	return s.register(ctx, name, email, phone, password, domain.UserRoleAdmin)
}

func (s *authService) register(ctx context.Context, name, email, phone, password string, role domain.UserRole) (*domain.User, string, string, error) {
	if existing, _ := s.userRepo.GetByEmail(ctx, email); existing != nil {
		return nil, "", "", fmt.Errorf("%w: %s", ErrEmailTaken, email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", "", err
	}

	access, refresh, err := s.issueTokens(user)
	if err != nil {
		return nil, "", "", err
	}
	return user, access, refresh, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, string, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", "", ErrInvalidCredentials
		}
		return nil, "", "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	access, refresh, err := s.issueTokens(user)
	if err != nil {
		return nil, "", "", err
	}
	return user, access, refresh, nil
}

// RequestPasswordReset stores a single-use reset code and emails it to the
// account holder. Unknown emails are not reported to the caller.
func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}

	code := uuid.New().String()
	expiresOn := time.Now().Add(s.resetCodeExpiry).Format(time.RFC3339)
	if err := s.userRepo.SetResetCode(ctx, user.ID, code, expiresOn); err != nil {
		return err
	}

	return s.emailSvc.SendPasswordReset(ctx, user.Email, user.Name, code)
}

func (s *authService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrInvalidResetCode
		}
		return err
	}

	if user.ResetCode == nil || *user.ResetCode != code {
		return ErrInvalidResetCode
	}
	if user.ResetCodeExpiresOn != nil {
		expires, err := time.Parse(time.RFC3339, *user.ResetCodeExpiresOn)
		if err != nil || time.Now().After(expires) {
			return ErrInvalidResetCode
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return err
	}
	return s.userRepo.ClearResetCode(ctx, user.ID)
}

func (s *authService) issueTokens(user *domain.User) (string, string, error) {
	access, err := s.tokens.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}
