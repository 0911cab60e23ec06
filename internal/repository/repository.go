package repository

import (
	"context"

	"carrental-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id int32, passwordHash string) error
	SetResetCode(ctx context.Context, id int32, code, expiresOn string) error
	ClearResetCode(ctx context.Context, id int32) error
	ListByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error)
}

// CarRepository is the fleet catalog contract.
type CarRepository interface {
	Create(ctx context.Context, car *domain.Car) error
	GetByID(ctx context.Context, id int32) (*domain.Car, error)
	// GetByIDForUpdate locks the car row for the remainder of the enclosing
	// transaction. Lifecycle transitions lock before toggling availability so
	// concurrent approvals serialize.
	GetByIDForUpdate(ctx context.Context, id int32) (*domain.Car, error)
	Update(ctx context.Context, car *domain.Car) error
	SetAvailability(ctx context.Context, id int32, available bool) error
	Delete(ctx context.Context, id int32) error
	ListAvailable(ctx context.Context) ([]domain.Car, error)
	List(ctx context.Context) ([]domain.Car, error)
}

// BookingRepository is the rental ledger contract.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int32) (*domain.Booking, error)
	// GetByIDForUpdate locks the booking row so racing transitions on the same
	// booking serialize; the loser re-reads post-transition state.
	GetByIDForUpdate(ctx context.Context, id int32) (*domain.Booking, error)
	SetStatus(ctx context.Context, id int32, status domain.BookingStatus) error
	RecordReturn(ctx context.Context, id int32, returnDate string, lateFeeCents, amountPaidCents int32) error
	RecordPayment(ctx context.Context, id int32, amountPaidCents int32) error
	ListByCustomer(ctx context.Context, customerID int32) ([]domain.Booking, error)
	ListByStatus(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error)
	// ListOverdue returns confirmed bookings whose agreed end date is before
	// the given yyyy-mm-dd date.
	ListOverdue(ctx context.Context, asOf string) ([]domain.Booking, error)
	CountByCar(ctx context.Context, carID int32) (int32, error)
	Delete(ctx context.Context, id int32) error
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	ListByBooking(ctx context.Context, bookingID int32) ([]domain.Payment, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}

// Store bundles all repositories bound to one database handle. Inside
// Transactor.Transact every repository operates on the same transaction.
type Store struct {
	Users         UserRepository
	Cars          CarRepository
	Bookings      BookingRepository
	Payments      PaymentRepository
	Notifications NotificationRepository
}

// Transactor runs fn inside a single database transaction. If fn returns an
// error the transaction rolls back and no partial mutation is committed.
type Transactor interface {
	Transact(ctx context.Context, fn func(s Store) error) error
}
