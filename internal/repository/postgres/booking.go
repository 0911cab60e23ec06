package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
)

type bookingRepository struct {
	db DBTX
}

func NewBookingRepository(db DBTX) repository.BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `id, car_id, customer_id, start_date::text, end_date::text, total_rental_days, status, total_price_cents, payment_status, amount_paid_cents, late_fee_cents, return_date::text, created_on::text, updated_on::text`

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `INSERT INTO bookings (car_id, customer_id, start_date, end_date, total_rental_days, status, total_price_cents, payment_status, amount_paid_cents, late_fee_cents, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		b.CarID, b.CustomerID, b.StartDate, b.EndDate, b.TotalRentalDays,
		b.Status, b.TotalPriceCents, b.PaymentStatus, b.AmountPaidCents, b.LateFeeCents,
		now, now).Scan(&b.ID)
}

func (r *bookingRepository) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	return r.scanBooking(r.db.QueryRowContext(ctx, query, id))
}

func (r *bookingRepository) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 FOR UPDATE`
	return r.scanBooking(r.db.QueryRowContext(ctx, query, id))
}

func (r *bookingRepository) scanBooking(row *sql.Row) (*domain.Booking, error) {
	b := &domain.Booking{}
	err := row.Scan(&b.ID, &b.CarID, &b.CustomerID, &b.StartDate, &b.EndDate, &b.TotalRentalDays,
		&b.Status, &b.TotalPriceCents, &b.PaymentStatus, &b.AmountPaidCents, &b.LateFeeCents,
		&b.ReturnDate, &b.CreatedOn, &b.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: booking", domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) SetStatus(ctx context.Context, id int32, status domain.BookingStatus) error {
	query := `UPDATE bookings SET status=$1, updated_on=$2 WHERE id=$3`
	res, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return err
	}
	return requireRow(res, "booking")
}

func (r *bookingRepository) RecordReturn(ctx context.Context, id int32, returnDate string, lateFeeCents, amountPaidCents int32) error {
	query := `UPDATE bookings SET status=$1, return_date=$2, late_fee_cents=$3, payment_status=$4, amount_paid_cents=$5, updated_on=$6 WHERE id=$7`
	res, err := r.db.ExecContext(ctx, query,
		domain.BookingStatusReturned, returnDate, lateFeeCents,
		domain.PaymentStatusPaid, amountPaidCents, time.Now(), id)
	if err != nil {
		return err
	}
	return requireRow(res, "booking")
}

func (r *bookingRepository) RecordPayment(ctx context.Context, id int32, amountPaidCents int32) error {
	query := `UPDATE bookings SET payment_status=$1, amount_paid_cents=$2, updated_on=$3 WHERE id=$4`
	res, err := r.db.ExecContext(ctx, query, domain.PaymentStatusPaid, amountPaidCents, time.Now(), id)
	if err != nil {
		return err
	}
	return requireRow(res, "booking")
}

func (r *bookingRepository) ListByCustomer(ctx context.Context, customerID int32) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE customer_id = $1 ORDER BY created_on DESC`
	return r.listBookings(ctx, query, customerID)
}

func (r *bookingRepository) ListByStatus(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE status = $1 ORDER BY created_on`
	return r.listBookings(ctx, query, status)
}

func (r *bookingRepository) ListOverdue(ctx context.Context, asOf string) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE status = $1 AND end_date < $2 ORDER BY end_date`
	return r.listBookings(ctx, query, domain.BookingStatusConfirmed, asOf)
}

func (r *bookingRepository) CountByCar(ctx context.Context, carID int32) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM bookings WHERE car_id = $1`, carID).Scan(&count)
	return count, err
}

func (r *bookingRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res, "booking")
}

func (r *bookingRepository) listBookings(ctx context.Context, query string, args ...interface{}) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.CarID, &b.CustomerID, &b.StartDate, &b.EndDate, &b.TotalRentalDays,
			&b.Status, &b.TotalPriceCents, &b.PaymentStatus, &b.AmountPaidCents, &b.LateFeeCents,
			&b.ReturnDate, &b.CreatedOn, &b.UpdatedOn); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
