package item

import (
	"context"
	"net/http"
	"time"

	"shareit/internal/pkg/apperror"
)

var (
	ErrNotFound = apperror.New(http.StatusNotFound, "Item not found.")
	ErrNotOwner = apperror.New(http.StatusForbidden,
		"Error! You don't have permission to access this option. Only the owner of the item can update it.")
	ErrInvalidUpdate     = apperror.New(http.StatusBadRequest, "Invalid data to update.")
	ErrCommentNotAllowed = apperror.New(http.StatusBadRequest,
		"Error! A review can only be left by the user who rented this item, "+
			"and only after the end of the rental period.")
)

// Item is a thing offered for rent. The owner is fixed at creation;
// RequestID links the item to the request it was created to answer, if any.
type Item struct {
	ID          int64
	OwnerID     int64
	Name        string
	Description string
	Available   bool
	RequestID   *int64
}

// Comment is an immutable review left after a finished rental.
type Comment struct {
	ID         int64
	ItemID     int64
	AuthorID   int64
	AuthorName string
	Text       string
	Created    time.Time
}

// BookingTag is the minimal booking reference embedded in item details.
type BookingTag struct {
	ID       int64
	BookerID int64
}

// Detail is an item with its comments and, for the owner only,
// the surrounding approved bookings.
type Detail struct {
	Item
	LastBooking *BookingTag
	NextBooking *BookingTag
	Comments    []Comment
}

// BookingReader is the slice of the booking store the item module needs:
// the approved bookings around "now" for the owner view, and the
// finished-rental check gating comments.
type BookingReader interface {
	LastApproved(ctx context.Context, itemID int64, now time.Time) (*BookingTag, error)
	NextApproved(ctx context.Context, itemID int64, now time.Time) (*BookingTag, error)
	HasFinished(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error)
}
