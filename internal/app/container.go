package app

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"shareit/internal/api"
	"shareit/internal/booking"
	"shareit/internal/item"
	"shareit/internal/itemrequest"
	"shareit/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	Logger       zerolog.Logger
	DBPool       *pgxpool.Pool
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router *gin.Engine
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// User module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo)

	// Booking repository first: the item module reads approved bookings
	// for the owner view and the comment gate.
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)

	// Item module
	itemRepo := item.NewPgxRepository(cfg.DBPool)
	itemService := item.NewService(itemRepo, userService, bookingReader{repo: bookingRepo})

	// Booking module
	bookingService := booking.NewService(bookingRepo, itemService, userService)

	// Item-request module
	requestRepo := itemrequest.NewPgxRepository(cfg.DBPool)
	requestService := itemrequest.NewService(requestRepo, userService, itemRepo)

	router := api.NewRouter(api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		Logger:         cfg.Logger,
		UserService:    userService,
		ItemService:    itemService,
		BookingService: bookingService,
		RequestService: requestService,
	})

	return &Container{Router: router}
}

// bookingReader adapts the booking repository to the narrow view the
// item module depends on, keeping the dependency one-directional.
type bookingReader struct {
	repo booking.Repository
}

func (a bookingReader) LastApproved(ctx context.Context, itemID int64, now time.Time) (*item.BookingTag, error) {
	b, err := a.repo.LastApproved(ctx, itemID, now)
	return toTag(b), err
}

func (a bookingReader) NextApproved(ctx context.Context, itemID int64, now time.Time) (*item.BookingTag, error) {
	b, err := a.repo.NextApproved(ctx, itemID, now)
	return toTag(b), err
}

func (a bookingReader) HasFinished(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	return a.repo.HasFinished(ctx, bookerID, itemID, now)
}

func toTag(b *booking.Booking) *item.BookingTag {
	if b == nil {
		return nil
	}
	return &item.BookingTag{ID: b.ID, BookerID: b.BookerID}
}
