package domain

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusReturned  BookingStatus = "RETURNED"
)

type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "UNPAID"
	PaymentStatusPaid   PaymentStatus = "PAID"
)

// Booking is a rental record in the ledger. Dates are yyyy-mm-dd calendar
// dates, inclusive on both ends. TotalPriceCents is a snapshot computed from
// the car's daily rate at booking time; the only later adjustment is the late
// fee recorded at return.
type Booking struct {
	ID              int32         `json:"id"`
	CarID           int32         `json:"car_id"`
	CustomerID      int32         `json:"customer_id"`
	StartDate       string        `json:"start_date"`
	EndDate         string        `json:"end_date"`
	TotalRentalDays int32         `json:"total_rental_days"`
	Status          BookingStatus `json:"status"`
	TotalPriceCents int32         `json:"total_price_cents"`
	PaymentStatus   PaymentStatus `json:"payment_status"`
	AmountPaidCents int32         `json:"amount_paid_cents"`
	LateFeeCents    int32         `json:"late_fee_cents"`
	ReturnDate      *string       `json:"return_date,omitempty"`
	CreatedOn       string        `json:"created_on"`
	UpdatedOn       string        `json:"updated_on"`
}

// IsTerminal reports whether the booking has reached a terminal lifecycle
// state. Terminal bookings can be deleted by an admin.
func (b *Booking) IsTerminal() bool {
	return b.Status == BookingStatusCancelled || b.Status == BookingStatusReturned
}
