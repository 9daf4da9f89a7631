package models

// ItemDetails is the item view returned by the catalog: the item itself, its
// comments and, for the owner only, the neighbouring approved bookings.
type ItemDetails struct {
	Item        *Item      `json:"item"`
	LastBooking *Booking   `json:"last_booking,omitempty"`
	NextBooking *Booking   `json:"next_booking,omitempty"`
	Comments    []*Comment `json:"comments"`
}

// Page is an offset window over a list. Size 0 means no limit.
type Page struct {
	From int
	Size int
}

// Apply returns the part of n elements covered by the page as [lo, hi).
func (p Page) Apply(n int) (lo, hi int) {
	lo = p.From
	if lo > n {
		lo = n
	}
	hi = n
	// n-lo instead of lo+Size: Size comes straight from the query string
	if p.Size > 0 && p.Size < n-lo {
		hi = lo + p.Size
	}
	return lo, hi
}
