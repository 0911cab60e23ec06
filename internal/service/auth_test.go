package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/service"
)

const adminCode = "super-secret"

func newAuthService(userRepo *MockUserRepo, tokens *MockTokenManager, emailSvc *MockEmailService) service.AuthService {
	return service.NewAuthService(userRepo, tokens, emailSvc, adminCode, 30)
}

func TestAuthService_RegisterCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		tokens := new(MockTokenManager)
		svc := newAuthService(userRepo, tokens, new(MockEmailService))

		userRepo.On("GetByEmail", ctx, "new@test.com").Return(nil, fmt.Errorf("%w: user", domain.ErrNotFound))
		userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = 1
		}).Return(nil)
		tokens.On("GenerateAccessToken", int32(1), "new@test.com", domain.UserRoleCustomer).Return("access", nil)
		tokens.On("GenerateRefreshToken", int32(1), "new@test.com").Return("refresh", nil)

		user, access, refresh, err := svc.RegisterCustomer(ctx, "New User", "new@test.com", "555-0100", "password123")
		assert.NoError(t, err)
		assert.Equal(t, domain.UserRoleCustomer, user.Role)
		assert.Equal(t, "access", access)
		assert.Equal(t, "refresh", refresh)
		// Stored hash must verify against the plaintext.
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
	})

	t.Run("EmailTaken", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := newAuthService(userRepo, new(MockTokenManager), new(MockEmailService))

		userRepo.On("GetByEmail", ctx, "taken@test.com").Return(&domain.User{ID: 5, Email: "taken@test.com"}, nil)

		_, _, _, err := svc.RegisterCustomer(ctx, "Dup", "taken@test.com", "", "password123")
		assert.ErrorIs(t, err, service.ErrEmailTaken)
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAuthService_RegisterAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("WrongAccessCode", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := newAuthService(userRepo, new(MockTokenManager), new(MockEmailService))

		_, _, _, err := svc.RegisterAdmin(ctx, "Admin", "admin@test.com", "", "password123", "wrong-code")
		assert.ErrorIs(t, err, domain.ErrForbidden)
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Success", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		tokens := new(MockTokenManager)
		svc := newAuthService(userRepo, tokens, new(MockEmailService))

		userRepo.On("GetByEmail", ctx, "admin@test.com").Return(nil, fmt.Errorf("%w: user", domain.ErrNotFound))
		userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = 2
		}).Return(nil)
		tokens.On("GenerateAccessToken", int32(2), "admin@test.com", domain.UserRoleAdmin).Return("access", nil)
		tokens.On("GenerateRefreshToken", int32(2), "admin@test.com").Return("refresh", nil)

		user, _, _, err := svc.RegisterAdmin(ctx, "Admin", "admin@test.com", "", "password123", adminCode)
		assert.NoError(t, err)
		assert.Equal(t, domain.UserRoleAdmin, user.Role)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	user := &domain.User{ID: 1, Email: "user@test.com", PasswordHash: string(hash), Role: domain.UserRoleCustomer}

	t.Run("Success", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		tokens := new(MockTokenManager)
		svc := newAuthService(userRepo, tokens, new(MockEmailService))

		userRepo.On("GetByEmail", ctx, "user@test.com").Return(user, nil)
		tokens.On("GenerateAccessToken", int32(1), "user@test.com", domain.UserRoleCustomer).Return("access", nil)
		tokens.On("GenerateRefreshToken", int32(1), "user@test.com").Return("refresh", nil)

		res, access, refresh, err := svc.Login(ctx, "user@test.com", "password123")
		assert.NoError(t, err)
		assert.Equal(t, user.ID, res.ID)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := newAuthService(userRepo, new(MockTokenManager), new(MockEmailService))

		userRepo.On("GetByEmail", ctx, "user@test.com").Return(user, nil)

		_, _, _, err := svc.Login(ctx, "user@test.com", "nope")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := newAuthService(userRepo, new(MockTokenManager), new(MockEmailService))

		userRepo.On("GetByEmail", ctx, "ghost@test.com").Return(nil, fmt.Errorf("%w: user", domain.ErrNotFound))

		_, _, _, err := svc.Login(ctx, "ghost@test.com", "password123")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}

func TestAuthService_PasswordReset(t *testing.T) {
	ctx := context.Background()

	t.Run("RequestStoresCodeAndEmails", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		emailSvc := new(MockEmailService)
		svc := newAuthService(userRepo, new(MockTokenManager), emailSvc)

		user := &domain.User{ID: 1, Email: "user@test.com", Name: "User"}
		userRepo.On("GetByEmail", ctx, "user@test.com").Return(user, nil)
		userRepo.On("SetResetCode", ctx, int32(1), mock.AnythingOfType("string"), mock.AnythingOfType("string")).Return(nil)
		emailSvc.On("SendPasswordReset", ctx, "user@test.com", "User", mock.AnythingOfType("string")).Return(nil)

		assert.NoError(t, svc.RequestPasswordReset(ctx, "user@test.com"))
		userRepo.AssertCalled(t, "SetResetCode", ctx, int32(1), mock.AnythingOfType("string"), mock.AnythingOfType("string"))
	})

	t.Run("RequestSilentOnUnknownEmail", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		emailSvc := new(MockEmailService)
		svc := newAuthService(userRepo, new(MockTokenManager), emailSvc)

		userRepo.On("GetByEmail", ctx, "ghost@test.com").Return(nil, fmt.Errorf("%w: user", domain.ErrNotFound))

		assert.NoError(t, svc.RequestPasswordReset(ctx, "ghost@test.com"))
		emailSvc.AssertNotCalled(t, "SendPasswordReset", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ResetSuccess", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := newAuthService(userRepo, new(MockTokenManager), new(MockEmailService))

		code := "valid-code"
		expires := time.Now().Add(10 * time.Minute).Format(time.RFC3339)
		user := &domain.User{ID: 1, Email: "user@test.com", ResetCode: &code, ResetCodeExpiresOn: &expires}
		userRepo.On("GetByEmail", ctx, "user@test.com").Return(user, nil)
		userRepo.On("UpdatePassword", ctx, int32(1), mock.AnythingOfType("string")).Return(nil)
		userRepo.On("ClearResetCode", ctx, int32(1)).Return(nil)

		assert.NoError(t, svc.ResetPassword(ctx, "user@test.com", "valid-code", "newpassword"))
		userRepo.AssertCalled(t, "ClearResetCode", ctx, int32(1))
	})

	t.Run("ResetExpiredCode", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := newAuthService(userRepo, new(MockTokenManager), new(MockEmailService))

		code := "valid-code"
		expires := time.Now().Add(-1 * time.Minute).Format(time.RFC3339)
		user := &domain.User{ID: 1, Email: "user@test.com", ResetCode: &code, ResetCodeExpiresOn: &expires}
		userRepo.On("GetByEmail", ctx, "user@test.com").Return(user, nil)

		err := svc.ResetPassword(ctx, "user@test.com", "valid-code", "newpassword")
		assert.ErrorIs(t, err, service.ErrInvalidResetCode)
		userRepo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ResetWrongCode", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := newAuthService(userRepo, new(MockTokenManager), new(MockEmailService))

		code := "valid-code"
		user := &domain.User{ID: 1, Email: "user@test.com", ResetCode: &code}
		userRepo.On("GetByEmail", ctx, "user@test.com").Return(user, nil)

		err := svc.ResetPassword(ctx, "user@test.com", "other-code", "newpassword")
		assert.ErrorIs(t, err, service.ErrInvalidResetCode)
	})
}
