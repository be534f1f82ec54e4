package booking

import (
	"net/http"
	"time"

	"shareit/internal/pkg/apperror"
)

var (
	// ErrNotFound covers both an absent booking and a caller without
	// visibility rights: existence is not revealed to unrelated callers.
	ErrNotFound        = apperror.New(http.StatusNotFound, "Booking not found.")
	ErrItemNotFound    = apperror.New(http.StatusNotFound, "Item not found.")
	ErrUserNotFound    = apperror.New(http.StatusNotFound, "User not found.")
	ErrOwnItem         = apperror.New(http.StatusNotFound, "You can't rent your own item.")
	ErrItemUnavailable = apperror.New(http.StatusBadRequest, "Item is not available.")
	ErrEndBeforeStart  = apperror.New(http.StatusBadRequest,
		"Error! Booking end time can't be before start time.")
	ErrEndEqualsStart = apperror.New(http.StatusBadRequest,
		"Error! Booking end time and start time can't be equal.")
	ErrNotItemOwner = apperror.New(http.StatusNotFound,
		"Error! You don't have permission to access this option."+
			" Only the owner of the item can update booking with it.")
)

// ErrAlreadyResolved rejects a second status transition, naming the
// status the booking already holds.
func ErrAlreadyResolved(status Status) *apperror.AppError {
	return apperror.New(http.StatusBadRequest,
		"This booking has already been updated to: "+string(status))
}

// ErrUnknownState rejects a state filter outside the closed set.
func ErrUnknownState(state string) *apperror.AppError {
	return apperror.New(http.StatusBadRequest, "Unknown state: "+state)
}

// Status is the booking lifecycle status. A booking starts WAITING and
// transitions exactly once to APPROVED or REJECTED.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Booking is a renter's claim on an item for a time window.
// ItemOwnerID and the display names are denormalized from the joined
// item and user rows.
type Booking struct {
	ID          int64
	ItemID      int64
	ItemName    string
	ItemOwnerID int64
	BookerID    int64
	BookerName  string
	Start       time.Time
	End         time.Time
	Status      Status
}
