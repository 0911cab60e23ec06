package service_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/security"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) UpdatePassword(ctx context.Context, id int32, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}
func (m *MockUserRepo) SetResetCode(ctx context.Context, id int32, code, expiresOn string) error {
	args := m.Called(ctx, id, code, expiresOn)
	return args.Error(0)
}
func (m *MockUserRepo) ClearResetCode(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockUserRepo) ListByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error) {
	args := m.Called(ctx, role)
	return args.Get(0).([]domain.User), args.Error(1)
}

// MockCarRepo
type MockCarRepo struct {
	mock.Mock
}

func (m *MockCarRepo) Create(ctx context.Context, car *domain.Car) error {
	args := m.Called(ctx, car)
	return args.Error(0)
}
func (m *MockCarRepo) GetByID(ctx context.Context, id int32) (*domain.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}
func (m *MockCarRepo) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}
func (m *MockCarRepo) Update(ctx context.Context, car *domain.Car) error {
	args := m.Called(ctx, car)
	return args.Error(0)
}
func (m *MockCarRepo) SetAvailability(ctx context.Context, id int32, available bool) error {
	args := m.Called(ctx, id, available)
	return args.Error(0)
}
func (m *MockCarRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockCarRepo) ListAvailable(ctx context.Context) ([]domain.Car, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Car), args.Error(1)
}
func (m *MockCarRepo) List(ctx context.Context) ([]domain.Car, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Car), args.Error(1)
}

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}
func (m *MockBookingRepo) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) SetStatus(ctx context.Context, id int32, status domain.BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockBookingRepo) RecordReturn(ctx context.Context, id int32, returnDate string, lateFeeCents, amountPaidCents int32) error {
	args := m.Called(ctx, id, returnDate, lateFeeCents, amountPaidCents)
	return args.Error(0)
}
func (m *MockBookingRepo) RecordPayment(ctx context.Context, id int32, amountPaidCents int32) error {
	args := m.Called(ctx, id, amountPaidCents)
	return args.Error(0)
}
func (m *MockBookingRepo) ListByCustomer(ctx context.Context, customerID int32) ([]domain.Booking, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListByStatus(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListOverdue(ctx context.Context, asOf string) ([]domain.Booking, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) CountByCar(ctx context.Context, carID int32) (int32, error) {
	args := m.Called(ctx, carID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockBookingRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Create(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}
func (m *MockPaymentRepo) ListByBooking(ctx context.Context, bookingID int32) ([]domain.Payment, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).([]domain.Payment), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendBookingReceived(ctx context.Context, to, name, carLabel string, bookingID, totalCents int32) error {
	args := m.Called(ctx, to, name, carLabel, bookingID, totalCents)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingApproved(ctx context.Context, to, name, carLabel, startDate, endDate string) error {
	args := m.Called(ctx, to, name, carLabel, startDate, endDate)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingRejected(ctx context.Context, to, name, carLabel string) error {
	args := m.Called(ctx, to, name, carLabel)
	return args.Error(0)
}
func (m *MockEmailService) SendReturnReceipt(ctx context.Context, to, name, carLabel string, totalCents, lateFeeCents, lateDays int32) error {
	args := m.Called(ctx, to, name, carLabel, totalCents, lateFeeCents, lateDays)
	return args.Error(0)
}
func (m *MockEmailService) SendOverdueReminder(ctx context.Context, to, name, carLabel, endDate string) error {
	args := m.Called(ctx, to, name, carLabel, endDate)
	return args.Error(0)
}
func (m *MockEmailService) SendPasswordReset(ctx context.Context, to, name, code string) error {
	args := m.Called(ctx, to, name, code)
	return args.Error(0)
}

// MockTokenManager
type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) GenerateAccessToken(userID int32, email string, role domain.UserRole) (string, error) {
	args := m.Called(userID, email, role)
	return args.String(0), args.Error(1)
}
func (m *MockTokenManager) GenerateRefreshToken(userID int32, email string) (string, error) {
	args := m.Called(userID, email)
	return args.String(0), args.Error(1)
}
func (m *MockTokenManager) ValidateToken(tokenString string) (*security.UserClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*security.UserClaims), args.Error(1)
}

// stubTransactor runs the callback against the mock-backed store. Transaction
// mechanics are covered by the postgres store tests.
type stubTransactor struct {
	store repository.Store
	err   error
}

func (t *stubTransactor) Transact(ctx context.Context, fn func(s repository.Store) error) error {
	if t.err != nil {
		return t.err
	}
	return fn(t.store)
}

// newMockStore wires fresh mocks into a repository.Store for service tests.
func newMockStore() (repository.Store, *MockUserRepo, *MockCarRepo, *MockBookingRepo, *MockPaymentRepo, *MockNotificationRepo) {
	userRepo := new(MockUserRepo)
	carRepo := new(MockCarRepo)
	bookingRepo := new(MockBookingRepo)
	paymentRepo := new(MockPaymentRepo)
	noteRepo := new(MockNotificationRepo)
	store := repository.Store{
		Users:         userRepo,
		Cars:          carRepo,
		Bookings:      bookingRepo,
		Payments:      paymentRepo,
		Notifications: noteRepo,
	}
	return store, userRepo, carRepo, bookingRepo, paymentRepo, noteRepo
}
