package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"carrental-backend/internal/repository"

	_ "github.com/lib/pq"
)

// DBTX is the subset of database/sql shared by *sql.DB and *sql.Tx. Every
// repository runs against it, so the same implementations serve both plain
// calls and transactional scopes.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type Store struct {
	db *sql.DB
	repository.Store
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:    db,
		Store: newRepositories(db),
	}
}

func newRepositories(db DBTX) repository.Store {
	return repository.Store{
		Users:         NewUserRepository(db),
		Cars:          NewCarRepository(db),
		Bookings:      NewBookingRepository(db),
		Payments:      NewPaymentRepository(db),
		Notifications: NewNotificationRepository(db),
	}
}

// Transact runs fn inside a single database transaction. Row locks taken via
// the ForUpdate lookups hold until commit or rollback.
func (s *Store) Transact(ctx context.Context, fn func(r repository.Store) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(newRepositories(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
