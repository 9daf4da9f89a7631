package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"
)

// MemoryBookingStore is a mutex-guarded domain.BookingStore. It keeps
// ordering and compare-and-set semantics identical to the SQLite store.
type MemoryBookingStore struct {
	mu       sync.RWMutex
	nextID   int64
	bookings map[int64]*models.Booking
	now      func() time.Time
}

func NewMemoryBookingStore() *MemoryBookingStore {
	return &MemoryBookingStore{
		bookings: make(map[int64]*models.Booking),
		now:      time.Now,
	}
}

func (s *MemoryBookingStore) CreateBooking(_ context.Context, booking *models.Booking) error {
	if booking.Item == nil || booking.Booker == nil {
		return fmt.Errorf("booking item and booker are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	now := s.now().UTC()
	booking.ID = s.nextID
	booking.Version = 1
	booking.CreatedAt = now
	booking.UpdatedAt = now

	s.bookings[booking.ID] = cloneBooking(booking)
	return nil
}

func (s *MemoryBookingStore) GetBooking(_ context.Context, id int64) (*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, domain.NotFoundf("booking %d not found", id)
	}
	return cloneBooking(b), nil
}

func (s *MemoryBookingStore) UpdateBookingStatusWithVersion(_ context.Context, id, fromVersion int64, status models.BookingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok || b.Version != fromVersion || b.Status != models.StatusWaiting {
		return domain.ErrConcurrentModification
	}
	b.Status = status
	b.Version++
	b.UpdatedAt = s.now().UTC()
	return nil
}

func (s *MemoryBookingStore) FindBookerBookings(_ context.Context, bookerID int64, filter domain.BookingFilter) ([]*models.Booking, error) {
	return s.find(filter, func(b *models.Booking) bool { return b.BookerID() == bookerID })
}

func (s *MemoryBookingStore) FindOwnerBookings(_ context.Context, ownerID int64, filter domain.BookingFilter) ([]*models.Booking, error) {
	return s.find(filter, func(b *models.Booking) bool { return b.OwnerID() == ownerID })
}

func (s *MemoryBookingStore) find(filter domain.BookingFilter, inScope func(*models.Booking) bool) ([]*models.Booking, error) {
	if _, ok := models.ParseBookingState(string(filter.State)); !ok {
		return nil, fmt.Errorf("unsupported booking state filter: %q", filter.State)
	}

	s.mu.RLock()
	result := []*models.Booking{}
	for _, b := range s.bookings {
		if inScope(b) && filter.State.Matches(b, filter.Now) {
			result = append(result, cloneBooking(b))
		}
	}
	s.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if !result[i].Start.Equal(result[j].Start) {
			return result[i].Start.After(result[j].Start)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (s *MemoryBookingStore) LastBookingForItem(_ context.Context, itemID int64, now time.Time) (*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var last *models.Booking
	for _, b := range s.bookings {
		if b.ItemID() != itemID || b.Status != models.StatusApproved || !b.End.Before(now) {
			continue
		}
		if last == nil || b.End.After(last.End) || (b.End.Equal(last.End) && b.ID > last.ID) {
			last = b
		}
	}
	if last == nil {
		return nil, nil
	}
	return cloneBooking(last), nil
}

func (s *MemoryBookingStore) NextBookingForItem(_ context.Context, itemID int64, now time.Time) (*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var next *models.Booking
	for _, b := range s.bookings {
		if b.ItemID() != itemID || b.Status != models.StatusApproved || !b.Start.After(now) {
			continue
		}
		if next == nil || b.Start.Before(next.Start) || (b.Start.Equal(next.Start) && b.ID < next.ID) {
			next = b
		}
	}
	if next == nil {
		return nil, nil
	}
	return cloneBooking(next), nil
}

func (s *MemoryBookingStore) HasCompletedBooking(_ context.Context, itemID, bookerID int64, now time.Time) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.bookings {
		if b.ItemID() == itemID && b.BookerID() == bookerID &&
			b.Status == models.StatusApproved && b.End.Before(now) {
			return true, nil
		}
	}
	return false, nil
}

func cloneBooking(b *models.Booking) *models.Booking {
	c := *b
	if b.Item != nil {
		item := *b.Item
		c.Item = &item
	}
	if b.Booker != nil {
		booker := *b.Booker
		c.Booker = &booker
	}
	return &c
}
