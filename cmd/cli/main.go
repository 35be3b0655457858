// Command cli is an interactive terminal client for the booking
// service. It is a thin prompt loop: every decision with an invariant
// behind it lives in the services it calls.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/mvetrova/flightdesk/config"
	"github.com/mvetrova/flightdesk/internal/domain"
	"github.com/mvetrova/flightdesk/internal/fare"
	"github.com/mvetrova/flightdesk/internal/reference"
	"github.com/mvetrova/flightdesk/internal/repository"
	"github.com/mvetrova/flightdesk/internal/service/booking"
	"github.com/mvetrova/flightdesk/internal/service/flights"
	"github.com/mvetrova/flightdesk/internal/service/users"
)

type cli struct {
	in       *bufio.Scanner
	flights  flights.FlightUseCase
	bookings booking.BookingUseCase
	users    users.UserUseCase
	current  *domain.User
}

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	if err := repository.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}

	flightRepo := repository.NewFlightRepository(pool)
	seatRepo := repository.NewSeatRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	bands := make([]fare.SurchargeBand, 0, len(cfg.Booking.Fare.Surcharges))
	for _, b := range cfg.Booking.Fare.Surcharges {
		bands = append(bands, fare.SurchargeBand{FromRow: b.FromRow, ToRow: b.ToRow, Rate: decimal.NewFromFloat(b.Rate)})
	}
	calculator := fare.NewCalculator(decimal.NewFromFloat(cfg.Booking.Fare.TaxRate), decimal.NewFromFloat(cfg.Booking.Fare.ServiceFee), bands)

	refunds := fare.DefaultRefundPolicy()
	if cfg.Booking.Refund.FullRefundAfterHours > 0 {
		refunds.FullRefundAfter = time.Duration(cfg.Booking.Refund.FullRefundAfterHours) * time.Hour
	}
	if cfg.Booking.Refund.PartialRate > 0 {
		refunds.PartialRate = decimal.NewFromFloat(cfg.Booking.Refund.PartialRate)
	}

	// The CLI runs without redis and kafka: the conditional UPDATE in
	// the seat repository is what guarantees single allocation.
	bookingService := booking.NewBookingService(
		bookingRepo, seatRepo, flightRepo, userRepo,
		calculator,
		reference.NewGenerator(bookingRepo, cfg.Booking.ReferenceLength, cfg.Booking.ReferenceAttempts),
		refunds,
		nil, nil, "",
		time.Duration(cfg.Booking.SeatLockTTLSeconds)*time.Second,
	)

	app := &cli{
		in:       bufio.NewScanner(os.Stdin),
		flights:  flights.NewFlightService(flightRepo, seatRepo, nil),
		bookings: bookingService,
		users:    users.NewUserService(userRepo),
	}
	app.run(ctx)
}

func (c *cli) run(ctx context.Context) {
	for {
		fmt.Println("\n=== Flight Ticket Booking ===")
		if c.current != nil {
			fmt.Printf("Logged in as: %s\n", c.current.Username)
		}
		fmt.Println("1. Register\n2. Login\n3. Search flights\n4. Book flight\n5. My bookings\n6. Cancel booking\n7. Logout\n0. Exit")
		switch c.prompt("Choose an option: ") {
		case "1":
			c.register(ctx)
		case "2":
			c.login(ctx)
		case "3":
			c.search(ctx)
		case "4":
			c.book(ctx)
		case "5":
			c.listBookings(ctx)
		case "6":
			c.cancel(ctx)
		case "7":
			c.current = nil
			fmt.Println("Logged out.")
		case "0":
			return
		default:
			fmt.Println("Invalid option.")
		}
	}
}

func (c *cli) prompt(label string) string {
	fmt.Print(label)
	if !c.in.Scan() {
		os.Exit(0)
	}
	return strings.TrimSpace(c.in.Text())
}

func (c *cli) register(ctx context.Context) {
	username := c.prompt("Choose a username: ")
	password := c.prompt("Choose a password: ")
	if _, err := c.users.Register(ctx, username, password); err != nil {
		fmt.Println("Registration failed:", err)
		return
	}
	fmt.Println("Registration successful! Please login.")
}

func (c *cli) login(ctx context.Context) {
	username := c.prompt("Username: ")
	password := c.prompt("Password: ")
	user, err := c.users.Authenticate(ctx, username, password)
	if err != nil {
		fmt.Println("Login failed:", err)
		return
	}
	c.current = user
	fmt.Printf("Welcome, %s!\n", user.Username)
}

func (c *cli) search(ctx context.Context) []domain.Flight {
	origin := c.prompt("Origin (blank to skip): ")
	destination := c.prompt("Destination (blank to skip): ")
	var date *time.Time
	if raw := c.prompt("Departure date YYYY-MM-DD (blank to skip): "); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			fmt.Println("Invalid date format.")
			return nil
		}
		date = &parsed
	}

	found, err := c.flights.Search(ctx, origin, destination, date)
	if err != nil {
		fmt.Println("Search failed:", err)
		return nil
	}
	if len(found) == 0 {
		fmt.Println("No flights found.")
		return nil
	}
	for _, f := range found {
		fmt.Printf("[ID:%d] %s | %s -> %s | %s | %dm | base fare %s | %d seats\n",
			f.ID, f.Number, f.Origin, f.Destination,
			f.DepartureTime.Format("2006-01-02 15:04"), f.DurationMinutes,
			f.BaseFare.StringFixed(2), f.TotalSeats)
	}
	return found
}

func (c *cli) book(ctx context.Context) {
	if c.current == nil {
		fmt.Println("Please login to book.")
		return
	}
	if c.search(ctx) == nil {
		return
	}
	id, err := strconv.ParseInt(c.prompt("Flight ID to book: "), 10, 64)
	if err != nil {
		fmt.Println("Invalid flight ID.")
		return
	}

	c.printSeatMap(ctx, id)

	seat := strings.ToUpper(c.prompt("Seat label (e.g. 12A): "))
	b, err := c.bookings.Book(ctx, c.current.ID, id, seat)
	if err != nil {
		fmt.Println("Booking failed:", err)
		return
	}
	fmt.Printf("Booking confirmed! Reference: %s\n", b.Reference)
	fmt.Printf("Fare: base %s + surcharge %s + tax %s + fee %s = %s\n",
		b.Fare.Base.StringFixed(2), b.Fare.Surcharge.StringFixed(2),
		b.Fare.Tax.StringFixed(2), b.Fare.Fee.StringFixed(2), b.Fare.Total.StringFixed(2))
}

func (c *cli) printSeatMap(ctx context.Context, flightID int64) {
	seats, err := c.flights.Seats(ctx, flightID)
	if err != nil {
		fmt.Println("Seat map unavailable:", err)
		return
	}
	held := make(map[string]bool, len(seats))
	var flight *domain.Flight
	flight, err = c.flights.GetByID(ctx, flightID)
	if err != nil {
		fmt.Println("Seat map unavailable:", err)
		return
	}
	for _, s := range seats {
		if s.Status == domain.SeatStatusHeld {
			held[s.Label] = true
		}
	}

	fmt.Println("\nSeat map (X = taken):")
	for i, label := range flight.SeatLabels() {
		if held[label] {
			fmt.Print("[ X ]")
		} else {
			fmt.Printf("[%3s]", label)
		}
		if (i+1)%domain.SeatsPerRow == 0 {
			fmt.Println()
		} else {
			fmt.Print(" ")
		}
	}
	fmt.Println()
}

func (c *cli) listBookings(ctx context.Context) {
	if c.current == nil {
		fmt.Println("Please login to view bookings.")
		return
	}
	bookings, err := c.bookings.ListByUser(ctx, c.current.ID)
	if err != nil {
		fmt.Println("Lookup failed:", err)
		return
	}
	if len(bookings) == 0 {
		fmt.Println("No bookings found.")
		return
	}
	for _, b := range bookings {
		fmt.Printf("Ref: %s | flight %d | seat %s | total %s | %s | booked %s\n",
			b.Reference, b.FlightID, b.SeatLabel, b.Fare.Total.StringFixed(2),
			b.Status, b.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func (c *cli) cancel(ctx context.Context) {
	if c.current == nil {
		fmt.Println("Please login to cancel bookings.")
		return
	}
	ref := strings.ToUpper(c.prompt("Booking reference to cancel: "))
	if ref == "" {
		return
	}
	result, err := c.bookings.Cancel(ctx, ref)
	if err != nil {
		fmt.Println("Cancellation failed:", err)
		return
	}
	fmt.Printf("Booking %s cancelled. Refund: %s\n", result.Booking.Reference, result.Refund.StringFixed(2))
}
