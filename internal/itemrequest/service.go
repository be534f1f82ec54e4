package itemrequest

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"shareit/internal/item"
	"shareit/internal/user"
)

// Service defines business logic related to item requests.
type Service interface {
	Create(ctx context.Context, requesterID int64, description string) (*ItemRequest, error)
	ListOwn(ctx context.Context, requesterID int64) ([]*WithItems, error)
	ListOthers(ctx context.Context, callerID int64, from, size int) ([]*WithItems, error)
	GetByID(ctx context.Context, callerID, requestID int64) (*WithItems, error)
}

type service struct {
	repo  Repository
	users user.Service
	items ItemLister
}

// NewService creates a new item-request Service.
func NewService(repo Repository, users user.Service, items ItemLister) Service {
	return &service{
		repo:  repo,
		users: users,
		items: items,
	}
}

func (s *service) Create(ctx context.Context, requesterID int64, description string) (*ItemRequest, error) {
	if _, err := s.users.GetByID(ctx, requesterID); err != nil {
		return nil, err
	}

	req := &ItemRequest{
		Description: description,
		RequesterID: requesterID,
		Created:     time.Now(),
	}

	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}

	log.Info().Int64("request_id", req.ID).Int64("requester_id", requesterID).Msg("item request created")
	return req, nil
}

func (s *service) ListOwn(ctx context.Context, requesterID int64) ([]*WithItems, error) {
	if _, err := s.users.GetByID(ctx, requesterID); err != nil {
		return nil, err
	}

	requests, err := s.repo.ListByRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	return s.attachItems(ctx, requests)
}

func (s *service) ListOthers(ctx context.Context, callerID int64, from, size int) ([]*WithItems, error) {
	if _, err := s.users.GetByID(ctx, callerID); err != nil {
		return nil, err
	}

	requests, err := s.repo.ListOthers(ctx, callerID, from, size)
	if err != nil {
		return nil, err
	}

	return s.attachItems(ctx, requests)
}

func (s *service) GetByID(ctx context.Context, callerID, requestID int64) (*WithItems, error) {
	if _, err := s.users.GetByID(ctx, callerID); err != nil {
		return nil, err
	}

	req, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	withItems, err := s.attachItems(ctx, []*ItemRequest{req})
	if err != nil {
		return nil, err
	}
	return withItems[0], nil
}

// attachItems resolves the items answering each request in one query.
func (s *service) attachItems(ctx context.Context, requests []*ItemRequest) ([]*WithItems, error) {
	ids := make([]int64, len(requests))
	for i, req := range requests {
		ids[i] = req.ID
	}

	items, err := s.items.ByRequestIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byRequest := make(map[int64][]*item.Item, len(requests))
	for _, it := range items {
		if it.RequestID != nil {
			byRequest[*it.RequestID] = append(byRequest[*it.RequestID], it)
		}
	}

	result := make([]*WithItems, len(requests))
	for i, req := range requests {
		result[i] = &WithItems{
			ItemRequest: *req,
			Items:       byRequest[req.ID],
		}
	}
	return result, nil
}
