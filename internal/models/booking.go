package models

import "time"

type Booking struct {
	ID        int64         `json:"id"`
	Start     time.Time     `json:"start"`
	End       time.Time     `json:"end"`
	Item      *Item         `json:"item"`
	Booker    *User         `json:"booker"`
	Status    BookingStatus `json:"status"` // WAITING, APPROVED, REJECTED
	Version   int64         `json:"version"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// ItemID is safe to call on bookings whose item has not been resolved.
func (b *Booking) ItemID() int64 {
	if b.Item == nil {
		return 0
	}
	return b.Item.ID
}

func (b *Booking) BookerID() int64 {
	if b.Booker == nil {
		return 0
	}
	return b.Booker.ID
}

func (b *Booking) OwnerID() int64 {
	if b.Item == nil {
		return 0
	}
	return b.Item.OwnerID
}

// BookingDraft is the caller-supplied part of a new booking. Start and End are
// pointers so that a missing value can be told apart from the zero time.
type BookingDraft struct {
	ItemID int64
	Start  *time.Time
	End    *time.Time
}
