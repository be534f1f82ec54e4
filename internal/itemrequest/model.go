package itemrequest

import (
	"context"
	"net/http"
	"time"

	"shareit/internal/item"
	"shareit/internal/pkg/apperror"
)

var ErrNotFound = apperror.New(http.StatusNotFound, "Request not found.")

// ItemRequest is a user's open ask for an item not yet in the catalog.
// Read-only after creation.
type ItemRequest struct {
	ID          int64
	Description string
	RequesterID int64
	Created     time.Time
}

// WithItems pairs a request with the items created to answer it.
type WithItems struct {
	ItemRequest
	Items []*item.Item
}

// ItemLister is the slice of the item store this module needs:
// looking up the items that reference a request.
type ItemLister interface {
	ByRequestIDs(ctx context.Context, requestIDs []int64) ([]*item.Item, error)
}
