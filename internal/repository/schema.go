package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/mvetrova/flightdesk/internal/domain"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS flights (
		id BIGSERIAL PRIMARY KEY,
		number TEXT NOT NULL,
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		departure_time TIMESTAMPTZ NOT NULL,
		duration_minutes INT NOT NULL,
		base_fare NUMERIC(10,2) NOT NULL CHECK (base_fare >= 0),
		total_seats INT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS seats (
		flight_id BIGINT NOT NULL REFERENCES flights(id),
		seat_label TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'FREE',
		held_by_reference TEXT,
		PRIMARY KEY (flight_id, seat_label)
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		reference TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		flight_id BIGINT NOT NULL REFERENCES flights(id),
		seat_label TEXT NOT NULL,
		base NUMERIC(10,2) NOT NULL,
		surcharge NUMERIC(10,2) NOT NULL,
		tax NUMERIC(10,2) NOT NULL,
		fee NUMERIC(10,2) NOT NULL,
		total NUMERIC(10,2) NOT NULL,
		status TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// EnsureSchema creates the tables when missing and seeds a handful of
// demo flights (with their seat inventories) into an empty catalog.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return seedFlightsIfEmpty(ctx, db)
}

type seedFlight struct {
	number      string
	origin      string
	destination string
	daysAhead   int
	departure   string // HH:MM
	duration    int
	baseFare    string
	seats       int
}

var seedFlights = []seedFlight{
	{"DG101", "Coimbatore", "Bengaluru", 3, "07:30", 90, "2000.00", 30},
	{"DG102", "Coimbatore", "Chennai", 2, "09:15", 65, "1800.00", 30},
	{"DG201", "Bengaluru", "Mumbai", 5, "13:00", 120, "3500.00", 42},
	{"DG301", "Chennai", "Hyderabad", 4, "17:45", 75, "2200.00", 30},
	{"DG401", "Coimbatore", "Kochi", 1, "06:00", 60, "1500.00", 18},
}

func seedFlightsIfEmpty(ctx context.Context, db *pgxpool.Pool) error {
	var count int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM flights`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	today := time.Now().UTC().Truncate(24 * time.Hour)
	for _, s := range seedFlights {
		var hh, mm int
		if _, err := fmt.Sscanf(s.departure, "%d:%d", &hh, &mm); err != nil {
			return fmt.Errorf("seed flight %s: %w", s.number, err)
		}
		departure := today.AddDate(0, 0, s.daysAhead).Add(time.Duration(hh)*time.Hour + time.Duration(mm)*time.Minute)
		fare, err := decimal.NewFromString(s.baseFare)
		if err != nil {
			return fmt.Errorf("seed flight %s: %w", s.number, err)
		}

		var flightID int64
		if err := tx.QueryRow(ctx, `INSERT INTO flights (number, origin, destination, departure_time, duration_minutes, base_fare, total_seats)
			VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
			s.number, s.origin, s.destination, departure, s.duration, fare, s.seats).Scan(&flightID); err != nil {
			return fmt.Errorf("seed flight %s: %w", s.number, err)
		}

		flight := domain.Flight{ID: flightID, TotalSeats: s.seats}
		for _, label := range flight.SeatLabels() {
			if _, err := tx.Exec(ctx, `INSERT INTO seats (flight_id, seat_label) VALUES ($1, $2)`, flightID, label); err != nil {
				return fmt.Errorf("seed seats for %s: %w", s.number, err)
			}
		}
	}

	return tx.Commit(ctx)
}
