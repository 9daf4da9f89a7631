package service

import (
	"context"
	"errors"
	"fmt"

	"shareit/internal/clock"
	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/metrics"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

// BookingService owns the booking lifecycle: creation, the owner's decision
// and the booker/owner views filtered by state.
type BookingService struct {
	repo     domain.BookingStore
	users    domain.UserDirectory
	items    domain.ItemCatalog
	eventBus domain.EventPublisher
	clock    clock.Clock
	logger   *zerolog.Logger
}

func NewBookingService(
	repo domain.BookingStore,
	users domain.UserDirectory,
	items domain.ItemCatalog,
	eventBus domain.EventPublisher,
	clk clock.Clock,
	logger *zerolog.Logger,
) *BookingService {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &BookingService{
		repo:     repo,
		users:    users,
		items:    items,
		eventBus: eventBus,
		clock:    clk,
		logger:   logger,
	}
}

func (s *BookingService) CreateBooking(ctx context.Context, requesterID int64, draft models.BookingDraft) (*models.Booking, error) {
	booker, err := s.users.GetUserByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	item, err := s.items.GetItemByID(ctx, draft.ItemID)
	if err != nil {
		return nil, err
	}

	if err := s.validateDraft(booker, item, draft); err != nil {
		s.logger.Warn().Err(err).Int64("user_id", requesterID).Int64("item_id", draft.ItemID).Msg("booking rejected by validation")
		return nil, err
	}

	booking := &models.Booking{
		Start:  draft.Start.UTC(),
		End:    draft.End.UTC(),
		Item:   item,
		Booker: booker,
		Status: models.StatusWaiting,
	}
	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.logger.Info().Int64("booking_id", booking.ID).Int64("item_id", item.ID).Int64("booker_id", booker.ID).Msg("booking created")
	s.publishEvent(events.EventBookingCreated, booking, requesterID)

	return booking, nil
}

// validateDraft applies the creation rules in order; the first failure wins.
func (s *BookingService) validateDraft(booker *models.User, item *models.Item, draft models.BookingDraft) error {
	if !item.Available {
		return domain.Validationf("item %d is not available for booking", item.ID)
	}
	if item.OwnerID == booker.ID {
		return domain.NotFoundf("owner cannot book own item")
	}
	if draft.Start == nil {
		return domain.Validationf("booking start must be set")
	}
	if draft.End == nil {
		return domain.Validationf("booking end must be set")
	}
	if draft.Start.Before(s.clock.Now()) {
		return domain.Validationf("booking start cannot be in the past")
	}
	if draft.End.Before(*draft.Start) {
		return domain.Validationf("booking end cannot be before start")
	}
	if draft.End.Equal(*draft.Start) {
		return domain.Validationf("booking start and end cannot be equal")
	}
	return nil
}

func (s *BookingService) ApproveBooking(ctx context.Context, ownerID, bookingID int64, approved bool) (*models.Booking, error) {
	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.OwnerID() != ownerID {
		return nil, domain.Validationf("user %d is not the owner of the item", ownerID)
	}
	if booking.Status != models.StatusWaiting {
		return nil, errAlreadyDecided()
	}

	status := models.StatusRejected
	eventType := events.EventBookingRejected
	if approved {
		status = models.StatusApproved
		eventType = events.EventBookingApproved
	}

	err = s.repo.UpdateBookingStatusWithVersion(ctx, booking.ID, booking.Version, status)
	if errors.Is(err, domain.ErrConcurrentModification) {
		s.logger.Warn().Int64("booking_id", booking.ID).Msg("booking decided concurrently")
		return nil, errAlreadyDecided()
	}
	if err != nil {
		return nil, fmt.Errorf("update booking status: %w", err)
	}

	booking.Status = status
	booking.Version++

	s.logger.Info().Int64("booking_id", booking.ID).Str("status", status.String()).Int64("owner_id", ownerID).Msg("booking decided")
	s.publishEvent(eventType, booking, ownerID)

	return booking, nil
}

func errAlreadyDecided() error {
	return domain.Validationf("booking is already approved or rejected")
}

func (s *BookingService) GetBookingByID(ctx context.Context, requesterID, bookingID int64) (*models.Booking, error) {
	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.BookerID() != requesterID && booking.OwnerID() != requesterID {
		return nil, domain.NotFoundf("user %d has no access to booking %d", requesterID, bookingID)
	}
	return booking, nil
}

func (s *BookingService) GetUserBookings(ctx context.Context, userID int64, state string) ([]*models.Booking, error) {
	filter, err := s.filterFor(ctx, userID, state)
	if err != nil {
		return nil, err
	}
	return s.repo.FindBookerBookings(ctx, userID, filter)
}

func (s *BookingService) GetOwnerBookings(ctx context.Context, userID int64, state string) ([]*models.Booking, error) {
	filter, err := s.filterFor(ctx, userID, state)
	if err != nil {
		return nil, err
	}
	return s.repo.FindOwnerBookings(ctx, userID, filter)
}

func (s *BookingService) filterFor(ctx context.Context, userID int64, state string) (domain.BookingFilter, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return domain.BookingFilter{}, err
	}

	parsed, ok := models.ParseBookingState(state)
	if !ok {
		return domain.BookingFilter{}, domain.Validationf("unknown state: %s", state)
	}
	return domain.BookingFilter{State: parsed, Now: s.clock.Now()}, nil
}

func (s *BookingService) publishEvent(eventType string, booking *models.Booking, changedByID int64) {
	metrics.IncBookingTransition(eventType)

	if s.eventBus == nil {
		return
	}

	payload := events.BookingEventPayload{
		BookingID:   booking.ID,
		ItemID:      booking.ItemID(),
		BookerID:    booking.BookerID(),
		OwnerID:     booking.OwnerID(),
		Status:      booking.Status.String(),
		Start:       booking.Start,
		End:         booking.End,
		ChangedByID: changedByID,
	}
	if booking.Item != nil {
		payload.ItemName = booking.Item.Name
	}

	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("booking_id", booking.ID).Msg("publish event error")
	}
}
