package service

import (
	"context"
	"fmt"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
)

type fleetService struct {
	carRepo     repository.CarRepository
	bookingRepo repository.BookingRepository
}

func NewFleetService(carRepo repository.CarRepository, bookingRepo repository.BookingRepository) FleetService {
	return &fleetService{
		carRepo:     carRepo,
		bookingRepo: bookingRepo,
	}
}

func (s *fleetService) AddCar(ctx context.Context, car *domain.Car) error {
	if err := validateCar(car); err != nil {
		return err
	}
	// New cars join the available pool immediately.
	car.AvailableNow = true
	return s.carRepo.Create(ctx, car)
}

func (s *fleetService) GetCar(ctx context.Context, id int32) (*domain.Car, error) {
	return s.carRepo.GetByID(ctx, id)
}

// UpdateCar changes descriptive fields and rental bounds. Availability is
// owned by the lifecycle engine and is not touched here.
func (s *fleetService) UpdateCar(ctx context.Context, car *domain.Car) error {
	if err := validateCar(car); err != nil {
		return err
	}
	return s.carRepo.Update(ctx, car)
}

// DeleteCar removes a car from the fleet. A car with any booking on record,
// current or historical, is kept until those bookings are deleted.
func (s *fleetService) DeleteCar(ctx context.Context, id int32) error {
	count, err := s.bookingRepo.CountByCar(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: car %d still has %d booking(s) on record", domain.ErrConflict, id, count)
	}
	return s.carRepo.Delete(ctx, id)
}

func (s *fleetService) ListAvailableCars(ctx context.Context) ([]domain.Car, error) {
	return s.carRepo.ListAvailable(ctx)
}

func (s *fleetService) ListCars(ctx context.Context) ([]domain.Car, error) {
	return s.carRepo.List(ctx)
}

func validateCar(car *domain.Car) error {
	if car.Make == "" || car.Model == "" {
		return fmt.Errorf("%w: car make and model are required", domain.ErrPolicyViolation)
	}
	if car.DailyRateCents < 0 {
		return fmt.Errorf("%w: daily rate cannot be negative", domain.ErrPolicyViolation)
	}
	if car.MinRentDays < 1 || car.MaxRentDays < car.MinRentDays {
		return fmt.Errorf("%w: rental window %d-%d days is invalid", domain.ErrPolicyViolation, car.MinRentDays, car.MaxRentDays)
	}
	return nil
}
