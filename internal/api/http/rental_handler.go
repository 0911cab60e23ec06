package http

import (
	"net/http"

	"carrental-backend/internal/service"
)

type RentalHandler struct {
	rentalSvc service.RentalService
}

func NewRentalHandler(rentalSvc service.RentalService) *RentalHandler {
	return &RentalHandler{rentalSvc: rentalSvc}
}

type bookCarRequest struct {
	CarID     int32  `json:"car_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (h *RentalHandler) Book(w http.ResponseWriter, r *http.Request) {
	claims := callerClaims(r)
	var req bookCarRequest
	if !decodeBody(w, r, &req) {
		return
	}

	booking, err := h.rentalSvc.BookCar(r.Context(), claims.UserID, req.CarID, req.StartDate, req.EndDate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (h *RentalHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	booking, err := h.rentalSvc.ApproveRental(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *RentalHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	booking, err := h.rentalSvc.RejectRental(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *RentalHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	claims := callerClaims(r)
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	booking, err := h.rentalSvc.CancelBooking(r.Context(), claims.UserID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

type returnRequest struct {
	ReturnDate string `json:"return_date"`
}

func (h *RentalHandler) Return(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req returnRequest
	if !decodeBody(w, r, &req) {
		return
	}

	booking, err := h.rentalSvc.ProcessReturn(r.Context(), id, req.ReturnDate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

type paymentRequest struct {
	AmountCents int32 `json:"amount_cents"`
}

func (h *RentalHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req paymentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	booking, err := h.rentalSvc.RecordPayment(r.Context(), id, req.AmountCents)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

// ListPayments returns the payment trail for a booking.
func (h *RentalHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	claims := callerClaims(r)
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	payments, err := h.rentalSvc.ListPayments(r.Context(), claims.UserID, claims.Role, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"payments": payments})
}

func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := callerClaims(r)
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	booking, err := h.rentalSvc.GetBooking(r.Context(), claims.UserID, claims.Role, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

// ListHistory returns the caller's rental history.
func (h *RentalHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	claims := callerClaims(r)
	bookings, err := h.rentalSvc.ListRentalHistory(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"bookings": bookings})
}

// ListPending returns the admin approval queue.
func (h *RentalHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.rentalSvc.ListPendingRentals(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"bookings": bookings})
}

func (h *RentalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.rentalSvc.DeleteBooking(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
