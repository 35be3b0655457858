package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mvetrova/flightdesk/internal/domain"
)

// SeatRepository is the per-flight seat inventory. A seat is either
// FREE or HELD by exactly one booking reference; Reserve performs the
// free-check and the hold in a single conditional UPDATE so two
// concurrent callers can never both win the same seat.
type SeatRepository interface {
	IsFree(ctx context.Context, flightID int64, label string) (bool, error)
	Reserve(ctx context.Context, flightID int64, label, reference string) error
	Release(ctx context.Context, flightID int64, label string) error
	ListByFlight(ctx context.Context, flightID int64) ([]domain.Seat, error)
}

type PGSeatRepository struct {
	db *pgxpool.Pool
}

func NewSeatRepository(db *pgxpool.Pool) SeatRepository {
	return &PGSeatRepository{db: db}
}

func (r *PGSeatRepository) IsFree(ctx context.Context, flightID int64, label string) (bool, error) {
	var status domain.SeatStatus
	err := r.db.QueryRow(ctx, `SELECT status FROM seats WHERE flight_id=$1 AND seat_label=$2`, flightID, label).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, domain.ErrSeatNotFound
	}
	if err != nil {
		return false, err
	}
	return status == domain.SeatStatusFree, nil
}

func (r *PGSeatRepository) Reserve(ctx context.Context, flightID int64, label, reference string) error {
	cmd, err := r.db.Exec(ctx, `UPDATE seats SET status=$1, held_by_reference=$2 WHERE flight_id=$3 AND seat_label=$4 AND status=$5`,
		domain.SeatStatusHeld, reference, flightID, label, domain.SeatStatusFree)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() > 0 {
		return nil
	}
	// Nothing updated: the seat row is either missing or already held.
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM seats WHERE flight_id=$1 AND seat_label=$2)`, flightID, label).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return domain.ErrSeatNotFound
	}
	return domain.ErrSeatTaken
}

// Release marks a seat free. Releasing an already-free seat is a
// no-op; an unknown seat is an error.
func (r *PGSeatRepository) Release(ctx context.Context, flightID int64, label string) error {
	cmd, err := r.db.Exec(ctx, `UPDATE seats SET status=$1, held_by_reference=NULL WHERE flight_id=$2 AND seat_label=$3`,
		domain.SeatStatusFree, flightID, label)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrSeatNotFound
	}
	return nil
}

func (r *PGSeatRepository) ListByFlight(ctx context.Context, flightID int64) ([]domain.Seat, error) {
	rows, err := r.db.Query(ctx, `SELECT flight_id, seat_label, status, held_by_reference FROM seats WHERE flight_id=$1 ORDER BY seat_label`, flightID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.Seat, 0)
	for rows.Next() {
		var s domain.Seat
		if err := rows.Scan(&s.FlightID, &s.Label, &s.Status, &s.HeldBy); err != nil {
			return nil, err
		}
		seats = append(seats, s)
	}
	return seats, rows.Err()
}

var _ SeatRepository = (*PGSeatRepository)(nil)
