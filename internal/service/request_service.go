package service

import (
	"context"
	"strings"

	"shareit/internal/clock"
	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type RequestService struct {
	repo   domain.RequestRepository
	users  domain.UserDirectory
	items  domain.ItemRepository
	clock  clock.Clock
	logger *zerolog.Logger
}

func NewRequestService(repo domain.RequestRepository, users domain.UserDirectory, items domain.ItemRepository, clk clock.Clock, logger *zerolog.Logger) *RequestService {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &RequestService{repo: repo, users: users, items: items, clock: clk, logger: logger}
}

func (s *RequestService) CreateRequest(ctx context.Context, userID int64, description string) (*models.ItemRequest, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	description = strings.TrimSpace(description)
	if description == "" {
		return nil, domain.Validationf("request description cannot be empty")
	}

	request := &models.ItemRequest{
		Description: description,
		RequestorID: userID,
		Created:     s.clock.Now(),
		Items:       []*models.Item{},
	}
	if err := s.repo.CreateRequest(ctx, request); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("request_id", request.ID).Int64("user_id", userID).Msg("item request created")
	return request, nil
}

func (s *RequestService) ListOwnRequests(ctx context.Context, userID int64) ([]*models.ItemRequest, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	requests, err := s.repo.GetRequestsByRequestor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, requests)
}

func (s *RequestService) ListOtherRequests(ctx context.Context, userID int64, page models.Page) ([]*models.ItemRequest, error) {
	if page.From < 0 || page.Size < 0 {
		return nil, domain.Validationf("pagination parameters must not be negative")
	}
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	requests, err := s.repo.GetRequestsExcept(ctx, userID)
	if err != nil {
		return nil, err
	}
	lo, hi := page.Apply(len(requests))
	return s.withItems(ctx, requests[lo:hi])
}

func (s *RequestService) GetRequest(ctx context.Context, userID, requestID int64) (*models.ItemRequest, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	request, err := s.repo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	out, err := s.withItems(ctx, []*models.ItemRequest{request})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// withItems loads the answering items of all requests with a single query.
func (s *RequestService) withItems(ctx context.Context, requests []*models.ItemRequest) ([]*models.ItemRequest, error) {
	if len(requests) == 0 {
		return []*models.ItemRequest{}, nil
	}

	ids := make([]int64, 0, len(requests))
	byID := make(map[int64]*models.ItemRequest, len(requests))
	for _, r := range requests {
		r.Items = []*models.Item{}
		ids = append(ids, r.ID)
		byID[r.ID] = r
	}

	items, err := s.items.GetItemsByRequests(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.RequestID == nil {
			continue
		}
		if r, ok := byID[*item.RequestID]; ok {
			r.Items = append(r.Items, item)
		}
	}
	return requests, nil
}
