package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/utils"
)

// RentalPolicy carries the tunable rules the lifecycle engine enforces.
type RentalPolicy struct {
	// LateFeeBasisPoints is the per-late-day fee rate applied to the booking's
	// total rental price (1500 = 15%).
	LateFeeBasisPoints int32
}

type rentalService struct {
	store    repository.Store
	tx       repository.Transactor
	emailSvc EmailService
	policy   RentalPolicy
}

func NewRentalService(store repository.Store, tx repository.Transactor, emailSvc EmailService, policy RentalPolicy) RentalService {
	return &rentalService{
		store:    store,
		tx:       tx,
		emailSvc: emailSvc,
		policy:   policy,
	}
}

// BookCar creates a pending booking. A pending booking does not reserve the
// car; the car is claimed at approval time (last approver wins, earlier
// overlapping requests then fail with a conflict).
func (s *rentalService) BookCar(ctx context.Context, customerID, carID int32, startDate, endDate string) (*domain.Booking, error) {
	car, err := s.store.Cars.GetByID(ctx, carID)
	if err != nil {
		return nil, err
	}
	if !car.AvailableNow {
		return nil, fmt.Errorf("%w: car %d is not available for booking", domain.ErrPolicyViolation, carID)
	}

	start, err := utils.ParseDate(startDate)
	if err != nil {
		return nil, err
	}
	end, err := utils.ParseDate(endDate)
	if err != nil {
		return nil, err
	}

	days, err := utils.RentalDays(start, end)
	if err != nil {
		return nil, err
	}

	// Bookings are only taken within the current calendar year.
	currentYear := time.Now().Year()
	if start.Year() != currentYear || end.Year() != currentYear {
		return nil, fmt.Errorf("%w: rental dates must fall within the current year %d", domain.ErrPolicyViolation, currentYear)
	}

	if days < car.MinRentDays || days > car.MaxRentDays {
		return nil, fmt.Errorf("%w: rental of %d days is outside the allowed window of %d-%d days",
			domain.ErrPolicyViolation, days, car.MinRentDays, car.MaxRentDays)
	}

	price, err := utils.RentalFee(car.DailyRateCents, startDate, endDate, 0)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		CarID:           carID,
		CustomerID:      customerID,
		StartDate:       startDate,
		EndDate:         endDate,
		TotalRentalDays: days,
		Status:          domain.BookingStatusPending,
		TotalPriceCents: price,
		PaymentStatus:   domain.PaymentStatusUnpaid,
	}
	if err := s.store.Bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	// Notify customer, best effort
	customer, _ := s.store.Users.GetByID(ctx, customerID)
	if customer != nil {
		_ = s.emailSvc.SendBookingReceived(ctx, customer.Email, customer.Name, carLabel(car), booking.ID, price)
		s.notify(ctx, customerID, "Booking Received",
			fmt.Sprintf("Your booking request for %s is awaiting approval", carLabel(car)),
			booking.ID, "BOOKING_RECEIVED")
	}

	// Flag the new request to every admin's approval queue, best effort
	admins, _ := s.store.Users.ListByRole(ctx, domain.UserRoleAdmin)
	for _, admin := range admins {
		s.notify(ctx, admin.ID, "Booking Request",
			fmt.Sprintf("Booking %d for %s is awaiting approval", booking.ID, carLabel(car)),
			booking.ID, "BOOKING_REQUESTED")
	}

	return booking, nil
}

// ApproveRental confirms a pending booking and claims the car. Both mutations
// happen in one transaction with the car row locked, so two approvals racing
// for the same car serialize and the loser fails with a conflict.
func (s *rentalService) ApproveRental(ctx context.Context, bookingID int32) (*domain.Booking, error) {
	var booking *domain.Booking
	err := s.tx.Transact(ctx, func(r repository.Store) error {
		b, err := r.Bookings.GetByIDForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}
		if b.Status != domain.BookingStatusPending {
			return fmt.Errorf("%w: booking %d is %s, not pending", domain.ErrPolicyViolation, bookingID, b.Status)
		}

		car, err := r.Cars.GetByIDForUpdate(ctx, b.CarID)
		if err != nil {
			return err
		}
		if !car.AvailableNow {
			return fmt.Errorf("%w: car %d was already claimed by another booking", domain.ErrConflict, b.CarID)
		}

		if err := r.Bookings.SetStatus(ctx, bookingID, domain.BookingStatusConfirmed); err != nil {
			return err
		}
		if err := r.Cars.SetAvailability(ctx, b.CarID, false); err != nil {
			return err
		}

		b.Status = domain.BookingStatusConfirmed
		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyCustomer(ctx, booking, "Booking Approved", "BOOKING_APPROVED", func(email, name, label string) {
		_ = s.emailSvc.SendBookingApproved(ctx, email, name, label, booking.StartDate, booking.EndDate)
	})

	return booking, nil
}

// RejectRental cancels a pending or confirmed booking on behalf of an admin.
// A confirmed booking had claimed its car, so rejection releases it; a pending
// one never held the car and leaves availability untouched.
func (s *rentalService) RejectRental(ctx context.Context, bookingID int32) (*domain.Booking, error) {
	booking, err := s.cancel(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	s.notifyCustomer(ctx, booking, "Booking Rejected", "BOOKING_REJECTED", func(email, name, label string) {
		_ = s.emailSvc.SendBookingRejected(ctx, email, name, label)
	})

	return booking, nil
}

// CancelBooking is the customer-initiated variant of RejectRental. Only the
// booking's owner may cancel it.
func (s *rentalService) CancelBooking(ctx context.Context, customerID, bookingID int32) (*domain.Booking, error) {
	b, err := s.store.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.CustomerID != customerID {
		return nil, fmt.Errorf("%w: booking %d does not belong to customer %d", domain.ErrForbidden, bookingID, customerID)
	}
	return s.cancel(ctx, bookingID)
}

// cancel moves a pending or confirmed booking to cancelled, releasing the car
// when the booking had claimed it.
func (s *rentalService) cancel(ctx context.Context, bookingID int32) (*domain.Booking, error) {
	var booking *domain.Booking
	err := s.tx.Transact(ctx, func(r repository.Store) error {
		b, err := r.Bookings.GetByIDForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}
		if b.IsTerminal() {
			return fmt.Errorf("%w: booking %d is already %s", domain.ErrPolicyViolation, bookingID, b.Status)
		}

		wasConfirmed := b.Status == domain.BookingStatusConfirmed
		if err := r.Bookings.SetStatus(ctx, bookingID, domain.BookingStatusCancelled); err != nil {
			return err
		}
		if wasConfirmed {
			if err := r.Cars.SetAvailability(ctx, b.CarID, true); err != nil {
				return err
			}
		}

		b.Status = domain.BookingStatusCancelled
		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// ProcessReturn settles a confirmed booking: the late fee is computed from the
// agreed end date, the settlement is recorded as paid, and the car goes back
// into the available pool.
func (s *rentalService) ProcessReturn(ctx context.Context, bookingID int32, actualReturnDate string) (*domain.Booking, error) {
	var booking *domain.Booking
	var late utils.LateFeeResult
	err := s.tx.Transact(ctx, func(r repository.Store) error {
		b, err := r.Bookings.GetByIDForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}
		if b.Status != domain.BookingStatusConfirmed {
			return fmt.Errorf("%w: booking %d is %s, not confirmed", domain.ErrPolicyViolation, bookingID, b.Status)
		}

		late, err = utils.LateFee(b.EndDate, actualReturnDate, b.TotalPriceCents, s.policy.LateFeeBasisPoints)
		if err != nil {
			return err
		}

		amountDue := b.TotalPriceCents + late.FeeCents
		if err := r.Bookings.RecordReturn(ctx, bookingID, actualReturnDate, late.FeeCents, amountDue); err != nil {
			return err
		}

		payment := &domain.Payment{
			BookingID:   bookingID,
			AmountCents: amountDue,
			Reference:   uuid.New().String(),
			Method:      domain.PaymentMethodReturnSettlement,
		}
		if err := r.Payments.Create(ctx, payment); err != nil {
			return err
		}

		if err := r.Cars.SetAvailability(ctx, b.CarID, true); err != nil {
			return err
		}

		b.Status = domain.BookingStatusReturned
		b.ReturnDate = &actualReturnDate
		b.LateFeeCents = late.FeeCents
		b.PaymentStatus = domain.PaymentStatusPaid
		b.AmountPaidCents = amountDue
		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyCustomer(ctx, booking, "Car Returned", "BOOKING_RETURNED", func(email, name, label string) {
		_ = s.emailSvc.SendReturnReceipt(ctx, email, name, label, booking.TotalPriceCents, late.FeeCents, late.LateDays)
	})

	return booking, nil
}

// RecordPayment records an arbitrary payment against a booking and marks it
// paid. The amount is not validated against the computed price and the booking
// status is left alone.
func (s *rentalService) RecordPayment(ctx context.Context, bookingID, amountCents int32) (*domain.Booking, error) {
	if amountCents <= 0 {
		return nil, fmt.Errorf("%w: payment amount must be positive", domain.ErrPolicyViolation)
	}

	var booking *domain.Booking
	err := s.tx.Transact(ctx, func(r repository.Store) error {
		b, err := r.Bookings.GetByIDForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}

		payment := &domain.Payment{
			BookingID:   bookingID,
			AmountCents: amountCents,
			Reference:   uuid.New().String(),
			Method:      domain.PaymentMethodManual,
		}
		if err := r.Payments.Create(ctx, payment); err != nil {
			return err
		}
		if err := r.Bookings.RecordPayment(ctx, bookingID, amountCents); err != nil {
			return err
		}

		b.PaymentStatus = domain.PaymentStatusPaid
		b.AmountPaidCents = amountCents
		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// ListPayments returns the payment trail for a booking. Customers only see
// their own bookings.
func (s *rentalService) ListPayments(ctx context.Context, userID int32, role domain.UserRole, bookingID int32) ([]domain.Payment, error) {
	b, err := s.store.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if role != domain.UserRoleAdmin && b.CustomerID != userID {
		return nil, fmt.Errorf("%w: booking %d does not belong to customer %d", domain.ErrForbidden, bookingID, userID)
	}
	return s.store.Payments.ListByBooking(ctx, bookingID)
}

func (s *rentalService) GetBooking(ctx context.Context, userID int32, role domain.UserRole, bookingID int32) (*domain.Booking, error) {
	b, err := s.store.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if role != domain.UserRoleAdmin && b.CustomerID != userID {
		return nil, fmt.Errorf("%w: booking %d does not belong to customer %d", domain.ErrForbidden, bookingID, userID)
	}
	return b, nil
}

func (s *rentalService) ListRentalHistory(ctx context.Context, customerID int32) ([]domain.Booking, error) {
	return s.store.Bookings.ListByCustomer(ctx, customerID)
}

func (s *rentalService) ListPendingRentals(ctx context.Context) ([]domain.Booking, error) {
	return s.store.Bookings.ListByStatus(ctx, domain.BookingStatusPending)
}

// DeleteBooking removes a terminal booking from the ledger.
func (s *rentalService) DeleteBooking(ctx context.Context, bookingID int32) error {
	b, err := s.store.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if !b.IsTerminal() {
		return fmt.Errorf("%w: booking %d is still %s", domain.ErrPolicyViolation, bookingID, b.Status)
	}
	return s.store.Bookings.Delete(ctx, bookingID)
}

// notifyCustomer emails the booking's owner and writes an in-app notification,
// best effort.
func (s *rentalService) notifyCustomer(ctx context.Context, b *domain.Booking, title, noteType string, send func(email, name, label string)) {
	customer, _ := s.store.Users.GetByID(ctx, b.CustomerID)
	car, _ := s.store.Cars.GetByID(ctx, b.CarID)
	if customer == nil || car == nil {
		return
	}
	send(customer.Email, customer.Name, carLabel(car))
	s.notify(ctx, b.CustomerID, title,
		fmt.Sprintf("%s: booking %d for %s", title, b.ID, carLabel(car)),
		b.ID, noteType)
}

func (s *rentalService) notify(ctx context.Context, userID int32, title, message string, bookingID int32, noteType string) {
	note := &domain.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Attributes: map[string]string{
			"type":       noteType,
			"booking_id": fmt.Sprintf("%d", bookingID),
		},
	}
	_ = s.store.Notifications.Create(ctx, note)
}

func carLabel(c *domain.Car) string {
	return fmt.Sprintf("%d %s %s", c.Year, c.Make, c.Model)
}
