package domain

type PaymentMethod string

const (
	// PaymentMethodManual is a payment recorded against a booking by a caller.
	PaymentMethodManual PaymentMethod = "MANUAL"
	// PaymentMethodReturnSettlement is the settlement written when a car is
	// returned: total rental price plus any late fee.
	PaymentMethodReturnSettlement PaymentMethod = "RETURN_SETTLEMENT"
)

// Payment is a single recorded payment against a booking. Reference is a
// uuid assigned at insert time so receipts can be traced.
type Payment struct {
	ID          int32         `json:"id"`
	BookingID   int32         `json:"booking_id"`
	AmountCents int32         `json:"amount_cents"`
	Reference   string        `json:"reference"`
	Method      PaymentMethod `json:"method"`
	CreatedOn   string        `json:"created_on"`
}
