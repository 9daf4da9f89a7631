package models

import "time"

type Item struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Available   bool      `json:"available"`
	OwnerID     int64     `json:"owner_id"`
	RequestID   *int64    `json:"request_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ItemDraft is a new item as supplied by its owner. Available is a pointer
// because it must be given explicitly.
type ItemDraft struct {
	Name        string
	Description string
	Available   *bool
	RequestID   *int64
}

// ItemPatch carries a partial item update; nil fields are left untouched.
type ItemPatch struct {
	Name        *string
	Description *string
	Available   *bool
}

type Comment struct {
	ID      int64     `json:"id"`
	Text    string    `json:"text"`
	ItemID  int64     `json:"item_id"`
	Author  *User     `json:"author"`
	Created time.Time `json:"created"`
}

type ItemRequest struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	RequestorID int64     `json:"requestor_id"`
	Created     time.Time `json:"created"`
	Items       []*Item   `json:"items"`
}
