package http

import (
	"time"

	itemHttp "shareit/internal/item/http"
	"shareit/internal/itemrequest"
)

type RequestResponse struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Created     time.Time `json:"created"`
}

func NewRequestResponse(req *itemrequest.ItemRequest) RequestResponse {
	return RequestResponse{
		ID:          req.ID,
		Description: req.Description,
		Created:     req.Created,
	}
}

// RequestWithItemsResponse embeds the items created against the request.
type RequestWithItemsResponse struct {
	RequestResponse
	Items []itemHttp.ItemResponse `json:"items"`
}

func NewRequestWithItemsResponse(req *itemrequest.WithItems) RequestWithItemsResponse {
	items := make([]itemHttp.ItemResponse, len(req.Items))
	for i, it := range req.Items {
		items[i] = itemHttp.NewItemResponse(it)
	}
	return RequestWithItemsResponse{
		RequestResponse: NewRequestResponse(&req.ItemRequest),
		Items:           items,
	}
}

type CreateRequestBody struct {
	Description string `json:"description" binding:"required"`
}
