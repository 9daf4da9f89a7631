package domain

import (
	"context"
	"time"

	"shareit/internal/models"
)

// UserDirectory resolves users by id. Missing users are reported as ErrNotFound.
type UserDirectory interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// ItemCatalog resolves items by id. Missing items are reported as ErrNotFound.
type ItemCatalog interface {
	GetItemByID(ctx context.Context, id int64) (*models.Item, error)
}

// BookingFilter selects bookings of one scope (booker or owner) by state,
// evaluated against Now.
type BookingFilter struct {
	State models.BookingState
	Now   time.Time
}

// BookingStore persists bookings. Every list is ordered by start descending,
// ties by id ascending.
type BookingStore interface {
	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	UpdateBookingStatusWithVersion(ctx context.Context, id, version int64, status models.BookingStatus) error
	FindBookerBookings(ctx context.Context, bookerID int64, filter BookingFilter) ([]*models.Booking, error)
	FindOwnerBookings(ctx context.Context, ownerID int64, filter BookingFilter) ([]*models.Booking, error)
	LastBookingForItem(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error)
	NextBookingForItem(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error)
	HasCompletedBooking(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error)
}

type UserRepository interface {
	UserDirectory
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, user *models.User) error
	ListUsers(ctx context.Context) ([]*models.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type ItemRepository interface {
	ItemCatalog
	CreateItem(ctx context.Context, item *models.Item) error
	UpdateItem(ctx context.Context, item *models.Item) error
	GetItemsByOwner(ctx context.Context, ownerID int64) ([]*models.Item, error)
	SearchAvailableItems(ctx context.Context, text string) ([]*models.Item, error)
	GetItemsByRequests(ctx context.Context, requestIDs []int64) ([]*models.Item, error)
}

type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetItemComments(ctx context.Context, itemID int64) ([]*models.Comment, error)
}

type RequestRepository interface {
	CreateRequest(ctx context.Context, request *models.ItemRequest) error
	GetRequest(ctx context.Context, id int64) (*models.ItemRequest, error)
	GetRequestsByRequestor(ctx context.Context, requestorID int64) ([]*models.ItemRequest, error)
	GetRequestsExcept(ctx context.Context, requestorID int64) ([]*models.ItemRequest, error)
}

// RateLimitStore counts requests per key inside a fixed window.
type RateLimitStore interface {
	CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

type BookingService interface {
	CreateBooking(ctx context.Context, requesterID int64, draft models.BookingDraft) (*models.Booking, error)
	ApproveBooking(ctx context.Context, ownerID, bookingID int64, approved bool) (*models.Booking, error)
	GetBookingByID(ctx context.Context, requesterID, bookingID int64) (*models.Booking, error)
	GetUserBookings(ctx context.Context, userID int64, state string) ([]*models.Booking, error)
	GetOwnerBookings(ctx context.Context, userID int64, state string) ([]*models.Booking, error)
}

type UserService interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type ItemService interface {
	CreateItem(ctx context.Context, ownerID int64, draft models.ItemDraft) (*models.Item, error)
	UpdateItem(ctx context.Context, ownerID, itemID int64, patch models.ItemPatch) (*models.Item, error)
	GetItemByID(ctx context.Context, id int64) (*models.Item, error)
	GetItemDetails(ctx context.Context, userID, itemID int64) (*models.ItemDetails, error)
	ListOwnerItems(ctx context.Context, ownerID int64) ([]*models.ItemDetails, error)
	SearchItems(ctx context.Context, text string) ([]*models.Item, error)
	AddComment(ctx context.Context, authorID, itemID int64, text string) (*models.Comment, error)
}

type RequestService interface {
	CreateRequest(ctx context.Context, userID int64, description string) (*models.ItemRequest, error)
	ListOwnRequests(ctx context.Context, userID int64) ([]*models.ItemRequest, error)
	ListOtherRequests(ctx context.Context, userID int64, page models.Page) ([]*models.ItemRequest, error)
	GetRequest(ctx context.Context, userID, requestID int64) (*models.ItemRequest, error)
}
