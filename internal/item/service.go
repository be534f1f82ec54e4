package item

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"shareit/internal/user"
)

// CreateRequest carries the fields needed to list an item.
type CreateRequest struct {
	OwnerID     int64
	Name        string
	Description string
	Available   bool
	RequestID   *int64
}

// UpdateRequest carries a partial item update. Nil fields keep prior values.
type UpdateRequest struct {
	Name        *string
	Description *string
	Available   *bool
}

// Service defines business logic related to items and their comments.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Item, error)
	GetByID(ctx context.Context, id int64) (*Item, error)
	GetDetail(ctx context.Context, callerID, itemID int64) (*Detail, error)
	ListOwner(ctx context.Context, ownerID int64) ([]*Detail, error)
	Search(ctx context.Context, text string) ([]*Item, error)
	Update(ctx context.Context, itemID, callerID int64, req UpdateRequest) (*Item, error)
	AddComment(ctx context.Context, itemID, authorID int64, text string) (*Comment, error)
}

type service struct {
	repo     Repository
	users    user.Service
	bookings BookingReader
}

// NewService creates a new item Service.
func NewService(repo Repository, users user.Service, bookings BookingReader) Service {
	return &service{
		repo:     repo,
		users:    users,
		bookings: bookings,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Item, error) {
	if _, err := s.users.GetByID(ctx, req.OwnerID); err != nil {
		return nil, err
	}

	i := &Item{
		OwnerID:     req.OwnerID,
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
		RequestID:   req.RequestID,
	}

	if err := s.repo.Create(ctx, i); err != nil {
		return nil, err
	}

	log.Info().Int64("item_id", i.ID).Int64("owner_id", i.OwnerID).Msg("item created")
	return i, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*Item, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetDetail(ctx context.Context, callerID, itemID int64) (*Detail, error) {
	i, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	return s.detail(ctx, callerID, i)
}

func (s *service) ListOwner(ctx context.Context, ownerID int64) ([]*Detail, error) {
	items, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	details := make([]*Detail, 0, len(items))
	for _, i := range items {
		d, err := s.detail(ctx, ownerID, i)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}

	return details, nil
}

func (s *service) Search(ctx context.Context, text string) ([]*Item, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	return s.repo.Search(ctx, text)
}

func (s *service) Update(ctx context.Context, itemID, callerID int64, req UpdateRequest) (*Item, error) {
	if _, err := s.users.GetByID(ctx, callerID); err != nil {
		return nil, err
	}

	i, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	// Item mutation by a non-owner is an explicit permission failure,
	// unlike booking reads which hide existence.
	if i.OwnerID != callerID {
		return nil, ErrNotOwner
	}

	// A missing field keeps the prior value.
	if req.Name != nil {
		i.Name = *req.Name
	}
	if req.Description != nil {
		i.Description = *req.Description
	}
	if req.Available != nil {
		i.Available = *req.Available
	}

	if strings.TrimSpace(i.Name) == "" || strings.TrimSpace(i.Description) == "" {
		return nil, ErrInvalidUpdate
	}

	if err := s.repo.Update(ctx, i); err != nil {
		return nil, err
	}

	log.Info().Int64("item_id", i.ID).Msg("item updated")
	return i, nil
}

func (s *service) AddComment(ctx context.Context, itemID, authorID int64, text string) (*Comment, error) {
	now := time.Now()

	// Proof-of-rental gate: only a renter whose booking already ended may review.
	finished, err := s.bookings.HasFinished(ctx, authorID, itemID, now)
	if err != nil {
		return nil, err
	}
	if !finished {
		return nil, ErrCommentNotAllowed
	}

	if _, err := s.repo.GetByID(ctx, itemID); err != nil {
		return nil, err
	}
	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	cm := &Comment{
		ItemID:     itemID,
		AuthorID:   authorID,
		AuthorName: author.Name,
		Text:       text,
		Created:    now,
	}

	if err := s.repo.AddComment(ctx, cm); err != nil {
		return nil, err
	}

	log.Info().Int64("item_id", itemID).Int64("author_id", authorID).Msg("comment added")
	return cm, nil
}

// detail assembles the item view. Only the owner sees the surrounding
// approved bookings; everyone sees the comments.
func (s *service) detail(ctx context.Context, callerID int64, i *Item) (*Detail, error) {
	d := &Detail{Item: *i}

	if i.OwnerID == callerID {
		now := time.Now()

		last, err := s.bookings.LastApproved(ctx, i.ID, now)
		if err != nil {
			return nil, err
		}
		next, err := s.bookings.NextApproved(ctx, i.ID, now)
		if err != nil {
			return nil, err
		}

		d.LastBooking = last
		d.NextBooking = next
	}

	comments, err := s.repo.ListComments(ctx, i.ID)
	if err != nil {
		return nil, err
	}
	d.Comments = comments

	return d, nil
}
