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

type carRepository struct {
	db DBTX
}

func NewCarRepository(db DBTX) repository.CarRepository {
	return &carRepository{db: db}
}

// Timestamps are selected as text so they scan straight into the string
// fields on domain.Car.
const carColumns = `id, make, model, year, mileage, available_now, min_rent_days, max_rent_days, daily_rate_cents, created_on::text, updated_on::text`

func (r *carRepository) Create(ctx context.Context, c *domain.Car) error {
	query := `INSERT INTO cars (make, model, year, mileage, available_now, min_rent_days, max_rent_days, daily_rate_cents, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, c.Make, c.Model, c.Year, c.Mileage, c.AvailableNow, c.MinRentDays, c.MaxRentDays, c.DailyRateCents, now, now).Scan(&c.ID)
}

func (r *carRepository) GetByID(ctx context.Context, id int32) (*domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE id = $1`
	return r.scanCar(r.db.QueryRowContext(ctx, query, id))
}

func (r *carRepository) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE id = $1 FOR UPDATE`
	return r.scanCar(r.db.QueryRowContext(ctx, query, id))
}

func (r *carRepository) scanCar(row *sql.Row) (*domain.Car, error) {
	c := &domain.Car{}
	err := row.Scan(&c.ID, &c.Make, &c.Model, &c.Year, &c.Mileage, &c.AvailableNow, &c.MinRentDays, &c.MaxRentDays, &c.DailyRateCents, &c.CreatedOn, &c.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: car", domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *carRepository) Update(ctx context.Context, c *domain.Car) error {
	query := `UPDATE cars SET make=$1, model=$2, year=$3, mileage=$4, min_rent_days=$5, max_rent_days=$6, daily_rate_cents=$7, updated_on=$8 WHERE id=$9`
	res, err := r.db.ExecContext(ctx, query, c.Make, c.Model, c.Year, c.Mileage, c.MinRentDays, c.MaxRentDays, c.DailyRateCents, time.Now(), c.ID)
	if err != nil {
		return err
	}
	return requireRow(res, "car")
}

func (r *carRepository) SetAvailability(ctx context.Context, id int32, available bool) error {
	query := `UPDATE cars SET available_now=$1, updated_on=$2 WHERE id=$3`
	res, err := r.db.ExecContext(ctx, query, available, time.Now(), id)
	if err != nil {
		return err
	}
	return requireRow(res, "car")
}

func (r *carRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cars WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res, "car")
}

func (r *carRepository) ListAvailable(ctx context.Context) ([]domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE available_now = TRUE ORDER BY id`
	return r.listCars(ctx, query)
}

func (r *carRepository) List(ctx context.Context) ([]domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars ORDER BY id`
	return r.listCars(ctx, query)
}

func (r *carRepository) listCars(ctx context.Context, query string, args ...interface{}) ([]domain.Car, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cars []domain.Car
	for rows.Next() {
		var c domain.Car
		if err := rows.Scan(&c.ID, &c.Make, &c.Model, &c.Year, &c.Mileage, &c.AvailableNow, &c.MinRentDays, &c.MaxRentDays, &c.DailyRateCents, &c.CreatedOn, &c.UpdatedOn); err != nil {
			return nil, err
		}
		cars = append(cars, c)
	}
	return cars, rows.Err()
}

// requireRow converts a zero-row update/delete into ErrNotFound.
func requireRow(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, entity)
	}
	return nil
}
