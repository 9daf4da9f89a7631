package api

import (
	"encoding/json"
	"strings"
	"time"

	"shareit/internal/models"
)

// localLayout is accepted for timestamps sent without a zone; they are read as UTC.
const localLayout = "2006-01-02T15:04:05"

// Timestamp accepts RFC 3339 or zone-less "2006-01-02T15:04:05" values.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	raw = strings.TrimSpace(raw)
	if parsed, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		t.Time = parsed.UTC()
		return nil
	}
	parsed, err := time.ParseInLocation(localLayout, raw, time.UTC)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func (t *Timestamp) ptr() *time.Time {
	if t == nil {
		return nil
	}
	v := t.Time
	return &v
}

// Request bodies

type createBookingRequest struct {
	ItemID int64      `json:"itemId" validate:"required,gt=0"`
	Start  *Timestamp `json:"start"`
	End    *Timestamp `json:"end"`
}

type createUserRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

type updateUserRequest struct {
	Name  *string `json:"name" validate:"omitempty"`
	Email *string `json:"email" validate:"omitempty,email"`
}

type createItemRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Available   *bool  `json:"available" validate:"required"`
	RequestID   *int64 `json:"requestId" validate:"omitempty,gt=0"`
}

type updateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type createCommentRequest struct {
	Text string `json:"text" validate:"required"`
}

type createRequestRequest struct {
	Description string `json:"description" validate:"required"`
}

// Responses

type userResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type itemResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"ownerId"`
	RequestID   *int64 `json:"requestId,omitempty"`
}

type bookingResponse struct {
	ID     int64         `json:"id"`
	Start  time.Time     `json:"start"`
	End    time.Time     `json:"end"`
	Status string        `json:"status"`
	Booker *userResponse `json:"booker"`
	Item   *itemResponse `json:"item"`
}

// bookingShortResponse is the booking as embedded into an item view.
type bookingShortResponse struct {
	ID       int64     `json:"id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	ItemID   int64     `json:"itemId"`
	BookerID int64     `json:"bookerId"`
}

type commentResponse struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

type itemDetailsResponse struct {
	itemResponse
	LastBooking *bookingShortResponse `json:"lastBooking"`
	NextBooking *bookingShortResponse `json:"nextBooking"`
	Comments    []commentResponse     `json:"comments"`
}

type requestResponse struct {
	ID          int64          `json:"id"`
	Description string         `json:"description"`
	RequestorID int64          `json:"requestorId"`
	Created     time.Time      `json:"created"`
	Items       []itemResponse `json:"items"`
}

func toUserResponse(u *models.User) *userResponse {
	if u == nil {
		return nil
	}
	return &userResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

func toUserResponses(users []*models.User) []*userResponse {
	out := make([]*userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

func toItemResponse(it *models.Item) *itemResponse {
	if it == nil {
		return nil
	}
	return &itemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		OwnerID:     it.OwnerID,
		RequestID:   it.RequestID,
	}
}

func toItemResponses(items []*models.Item) []itemResponse {
	out := make([]itemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, *toItemResponse(it))
	}
	return out
}

func toBookingResponse(b *models.Booking) *bookingResponse {
	return &bookingResponse{
		ID:     b.ID,
		Start:  b.Start.UTC(),
		End:    b.End.UTC(),
		Status: b.Status.String(),
		Booker: toUserResponse(b.Booker),
		Item:   toItemResponse(b.Item),
	}
}

func toBookingResponses(bookings []*models.Booking) []*bookingResponse {
	out := make([]*bookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResponse(b))
	}
	return out
}

func toBookingShort(b *models.Booking) *bookingShortResponse {
	if b == nil {
		return nil
	}
	return &bookingShortResponse{
		ID:       b.ID,
		Start:    b.Start.UTC(),
		End:      b.End.UTC(),
		ItemID:   b.ItemID(),
		BookerID: b.BookerID(),
	}
}

func toCommentResponse(c *models.Comment) commentResponse {
	resp := commentResponse{ID: c.ID, Text: c.Text, Created: c.Created.UTC()}
	if c.Author != nil {
		resp.AuthorName = c.Author.Name
	}
	return resp
}

func toItemDetailsResponse(d *models.ItemDetails) *itemDetailsResponse {
	comments := make([]commentResponse, 0, len(d.Comments))
	for _, c := range d.Comments {
		comments = append(comments, toCommentResponse(c))
	}
	return &itemDetailsResponse{
		itemResponse: *toItemResponse(d.Item),
		LastBooking:  toBookingShort(d.LastBooking),
		NextBooking:  toBookingShort(d.NextBooking),
		Comments:     comments,
	}
}

func toItemDetailsResponses(details []*models.ItemDetails) []*itemDetailsResponse {
	out := make([]*itemDetailsResponse, 0, len(details))
	for _, d := range details {
		out = append(out, toItemDetailsResponse(d))
	}
	return out
}

func toRequestResponse(r *models.ItemRequest) *requestResponse {
	return &requestResponse{
		ID:          r.ID,
		Description: r.Description,
		RequestorID: r.RequestorID,
		Created:     r.Created.UTC(),
		Items:       toItemResponses(r.Items),
	}
}

func toRequestResponses(requests []*models.ItemRequest) []*requestResponse {
	out := make([]*requestResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, toRequestResponse(r))
	}
	return out
}
