package service

import (
	"context"
	"strings"
	"time"

	"shareit/internal/clock"
	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type ItemService struct {
	repo     domain.ItemRepository
	users    domain.UserDirectory
	bookings domain.BookingStore
	comments domain.CommentRepository
	requests domain.RequestRepository
	clock    clock.Clock
	logger   *zerolog.Logger
}

func NewItemService(
	repo domain.ItemRepository,
	users domain.UserDirectory,
	bookings domain.BookingStore,
	comments domain.CommentRepository,
	requests domain.RequestRepository,
	clk clock.Clock,
	logger *zerolog.Logger,
) *ItemService {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &ItemService{
		repo:     repo,
		users:    users,
		bookings: bookings,
		comments: comments,
		requests: requests,
		clock:    clk,
		logger:   logger,
	}
}

func (s *ItemService) CreateItem(ctx context.Context, ownerID int64, draft models.ItemDraft) (*models.Item, error) {
	if _, err := s.users.GetUserByID(ctx, ownerID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(draft.Name)
	description := strings.TrimSpace(draft.Description)
	if name == "" {
		return nil, domain.Validationf("item name cannot be empty")
	}
	if description == "" {
		return nil, domain.Validationf("item description cannot be empty")
	}
	if draft.Available == nil {
		return nil, domain.Validationf("item availability must be set")
	}
	if draft.RequestID != nil {
		if _, err := s.requests.GetRequest(ctx, *draft.RequestID); err != nil {
			return nil, err
		}
	}

	item := &models.Item{
		Name:        name,
		Description: description,
		Available:   *draft.Available,
		OwnerID:     ownerID,
		RequestID:   draft.RequestID,
	}
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("item_id", item.ID).Int64("owner_id", ownerID).Msg("item created")
	return item, nil
}

func (s *ItemService) UpdateItem(ctx context.Context, ownerID, itemID int64, patch models.ItemPatch) (*models.Item, error) {
	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != ownerID {
		return nil, domain.NotFoundf("user %d is not the owner of item %d", ownerID, itemID)
	}

	if patch.Name != nil {
		if name := strings.TrimSpace(*patch.Name); name != "" {
			item.Name = name
		}
	}
	if patch.Description != nil {
		if description := strings.TrimSpace(*patch.Description); description != "" {
			item.Description = description
		}
	}
	if patch.Available != nil {
		item.Available = *patch.Available
	}

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ItemService) GetItemByID(ctx context.Context, id int64) (*models.Item, error) {
	return s.repo.GetItemByID(ctx, id)
}

func (s *ItemService) GetItemDetails(ctx context.Context, userID, itemID int64) (*models.ItemDetails, error) {
	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return s.details(ctx, userID, item, s.clock.Now())
}

func (s *ItemService) ListOwnerItems(ctx context.Context, ownerID int64) ([]*models.ItemDetails, error) {
	if _, err := s.users.GetUserByID(ctx, ownerID); err != nil {
		return nil, err
	}

	items, err := s.repo.GetItemsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	result := make([]*models.ItemDetails, 0, len(items))
	for _, item := range items {
		d, err := s.details(ctx, ownerID, item, now)
		if err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, nil
}

// details attaches comments, and for the owner the last and next approved bookings.
func (s *ItemService) details(ctx context.Context, userID int64, item *models.Item, now time.Time) (*models.ItemDetails, error) {
	d := &models.ItemDetails{Item: item}

	if item.OwnerID == userID {
		last, err := s.bookings.LastBookingForItem(ctx, item.ID, now)
		if err != nil {
			return nil, err
		}
		next, err := s.bookings.NextBookingForItem(ctx, item.ID, now)
		if err != nil {
			return nil, err
		}
		d.LastBooking, d.NextBooking = last, next
	}

	comments, err := s.comments.GetItemComments(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	d.Comments = comments
	return d, nil
}

func (s *ItemService) SearchItems(ctx context.Context, text string) ([]*models.Item, error) {
	if strings.TrimSpace(text) == "" {
		return []*models.Item{}, nil
	}
	return s.repo.SearchAvailableItems(ctx, text)
}

func (s *ItemService) AddComment(ctx context.Context, authorID, itemID int64, text string) (*models.Comment, error) {
	author, err := s.users.GetUserByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.GetItemByID(ctx, itemID); err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.Validationf("comment text cannot be empty")
	}

	now := s.clock.Now()
	ok, err := s.bookings.HasCompletedBooking(ctx, itemID, authorID, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.Validationf("user %d has no completed booking of item %d", authorID, itemID)
	}

	comment := &models.Comment{Text: text, ItemID: itemID, Author: author, Created: now}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}
