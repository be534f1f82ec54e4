package booking

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"shareit/internal/item"
	"shareit/internal/user"
)

// CreateRequest carries the fields needed to request a rental.
type CreateRequest struct {
	BookerID int64
	ItemID   int64
	Start    time.Time
	End      time.Time
}

// Service implements the booking lifecycle and the state-bucket listings.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, callerID, bookingID int64) (*Booking, error)
	UpdateStatus(ctx context.Context, callerID, bookingID int64, approved bool) (*Booking, error)
	ListForBooker(ctx context.Context, bookerID int64, state string, from, size int) ([]*Booking, error)
	ListForOwner(ctx context.Context, ownerID int64, state string, from, size int) ([]*Booking, error)
}

type service struct {
	repo  Repository
	items item.Service
	users user.Service
}

// NewService creates a new booking Service.
func NewService(repo Repository, items item.Service, users user.Service) Service {
	return &service{
		repo:  repo,
		items: items,
		users: users,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	if err := validateWindow(req.Start, req.End); err != nil {
		return nil, err
	}

	i, err := s.items.GetByID(ctx, req.ItemID)
	if err != nil {
		if errors.Is(err, item.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	// Self-booking answers NotFound, so probing the API does not reveal
	// who owns what.
	if i.OwnerID == req.BookerID {
		return nil, ErrOwnItem
	}
	if !i.Available {
		return nil, ErrItemUnavailable
	}

	booker, err := s.users.GetByID(ctx, req.BookerID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	b := &Booking{
		ItemID:      i.ID,
		ItemName:    i.Name,
		ItemOwnerID: i.OwnerID,
		BookerID:    booker.ID,
		BookerName:  booker.Name,
		Start:       req.Start,
		End:         req.End,
		Status:      StatusWaiting,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	log.Info().
		Int64("booking_id", b.ID).
		Int64("item_id", b.ItemID).
		Int64("booker_id", b.BookerID).
		Msg("booking created")
	return b, nil
}

func (s *service) GetByID(ctx context.Context, callerID, bookingID int64) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if b.BookerID != callerID && b.ItemOwnerID != callerID {
		return nil, ErrNotFound
	}

	return b, nil
}

func (s *service) UpdateStatus(ctx context.Context, callerID, bookingID int64, approved bool) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if b.ItemOwnerID != callerID {
		return nil, ErrNotItemOwner
	}
	if b.Status != StatusWaiting {
		return nil, ErrAlreadyResolved(b.Status)
	}

	target := StatusRejected
	if approved {
		target = StatusApproved
	}

	ok, err := s.repo.UpdateStatusFromWaiting(ctx, bookingID, target)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Lost the race against a concurrent resolution; report the
		// status that won.
		current, err := s.repo.GetByID(ctx, bookingID)
		if err != nil {
			return nil, err
		}
		return nil, ErrAlreadyResolved(current.Status)
	}

	b.Status = target
	log.Info().
		Int64("booking_id", b.ID).
		Str("status", string(target)).
		Msg("booking resolved")
	return b, nil
}

func (s *service) ListForBooker(ctx context.Context, bookerID int64, state string, from, size int) ([]*Booking, error) {
	st, err := s.checkListArgs(ctx, bookerID, state)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByBooker(ctx, bookerID, st, time.Now(), from, size)
}

func (s *service) ListForOwner(ctx context.Context, ownerID int64, state string, from, size int) ([]*Booking, error) {
	st, err := s.checkListArgs(ctx, ownerID, state)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByOwner(ctx, ownerID, st, time.Now(), from, size)
}

func (s *service) checkListArgs(ctx context.Context, userID int64, state string) (State, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	return ParseState(state)
}

func validateWindow(start, end time.Time) error {
	if end.Before(start) {
		return ErrEndBeforeStart
	}
	if end.Equal(start) {
		return ErrEndEqualsStart
	}
	return nil
}
