package service

import (
	"context"

	"carrental-backend/internal/domain"
)

type AuthService interface {
	RegisterCustomer(ctx context.Context, name, email, phone, password string) (*domain.User, string, string, error)
	RegisterAdmin(ctx context.Context, name, email, phone, password, accessCode string) (*domain.User, string, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, string, error) // user, access, refresh
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
}

// FleetService owns car records. Availability is not part of this contract;
// only the rental lifecycle engine toggles it.
type FleetService interface {
	AddCar(ctx context.Context, car *domain.Car) error
	GetCar(ctx context.Context, id int32) (*domain.Car, error)
	UpdateCar(ctx context.Context, car *domain.Car) error
	DeleteCar(ctx context.Context, id int32) error
	ListAvailableCars(ctx context.Context) ([]domain.Car, error)
	ListCars(ctx context.Context) ([]domain.Car, error)
}

// RentalService is the rental lifecycle engine: it coordinates booking status
// transitions with car availability and fee computation.
type RentalService interface {
	BookCar(ctx context.Context, customerID, carID int32, startDate, endDate string) (*domain.Booking, error)
	ApproveRental(ctx context.Context, bookingID int32) (*domain.Booking, error)
	RejectRental(ctx context.Context, bookingID int32) (*domain.Booking, error)
	CancelBooking(ctx context.Context, customerID, bookingID int32) (*domain.Booking, error)
	ProcessReturn(ctx context.Context, bookingID int32, actualReturnDate string) (*domain.Booking, error)
	RecordPayment(ctx context.Context, bookingID, amountCents int32) (*domain.Booking, error)
	ListPayments(ctx context.Context, userID int32, role domain.UserRole, bookingID int32) ([]domain.Payment, error)
	GetBooking(ctx context.Context, userID int32, role domain.UserRole, bookingID int32) (*domain.Booking, error)
	ListRentalHistory(ctx context.Context, customerID int32) ([]domain.Booking, error)
	ListPendingRentals(ctx context.Context) ([]domain.Booking, error)
	DeleteBooking(ctx context.Context, bookingID int32) error
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}

type EmailService interface {
	SendBookingReceived(ctx context.Context, to, name, carLabel string, bookingID, totalCents int32) error
	SendBookingApproved(ctx context.Context, to, name, carLabel, startDate, endDate string) error
	SendBookingRejected(ctx context.Context, to, name, carLabel string) error
	SendReturnReceipt(ctx context.Context, to, name, carLabel string, totalCents, lateFeeCents, lateDays int32) error
	SendOverdueReminder(ctx context.Context, to, name, carLabel, endDate string) error
	SendPasswordReset(ctx context.Context, to, name, code string) error
}
