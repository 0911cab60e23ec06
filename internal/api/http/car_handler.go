package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/service"
)

type CarHandler struct {
	fleetSvc service.FleetService
}

func NewCarHandler(fleetSvc service.FleetService) *CarHandler {
	return &CarHandler{fleetSvc: fleetSvc}
}

type carRequest struct {
	Make           string `json:"make"`
	Model          string `json:"model"`
	Year           int32  `json:"year"`
	Mileage        int32  `json:"mileage"`
	MinRentDays    int32  `json:"min_rent_days"`
	MaxRentDays    int32  `json:"max_rent_days"`
	DailyRateCents int32  `json:"daily_rate_cents"`
}

// ListAvailable returns the cars currently open for booking.
func (h *CarHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	cars, err := h.fleetSvc.ListAvailableCars(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"cars": cars})
}

// List returns the whole fleet, admin only.
func (h *CarHandler) List(w http.ResponseWriter, r *http.Request) {
	cars, err := h.fleetSvc.ListCars(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"cars": cars})
}

func (h *CarHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	car, err := h.fleetSvc.GetCar(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, car)
}

func (h *CarHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req carRequest
	if !decodeBody(w, r, &req) {
		return
	}

	car := &domain.Car{
		Make:           req.Make,
		Model:          req.Model,
		Year:           req.Year,
		Mileage:        req.Mileage,
		MinRentDays:    req.MinRentDays,
		MaxRentDays:    req.MaxRentDays,
		DailyRateCents: req.DailyRateCents,
	}
	if err := h.fleetSvc.AddCar(r.Context(), car); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, car)
}

func (h *CarHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req carRequest
	if !decodeBody(w, r, &req) {
		return
	}

	car := &domain.Car{
		ID:             id,
		Make:           req.Make,
		Model:          req.Model,
		Year:           req.Year,
		Mileage:        req.Mileage,
		MinRentDays:    req.MinRentDays,
		MaxRentDays:    req.MaxRentDays,
		DailyRateCents: req.DailyRateCents,
	}
	if err := h.fleetSvc.UpdateCar(r.Context(), car); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, car)
}

func (h *CarHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.fleetSvc.DeleteCar(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// pathID extracts a numeric path variable, responding 400 on garbage.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int32, bool) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid " + name})
		return 0, false
	}
	return int32(id), true
}
