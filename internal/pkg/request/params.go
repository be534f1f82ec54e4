package request

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shareit/internal/pkg/apperror"
)

var errInvalidPaging = apperror.New(http.StatusBadRequest, "Invalid paging parameters.")

// PageParams is the (offset, size) window shared by list endpoints.
type PageParams struct {
	From int // zero-based offset
	Size int // positive page size
}

// Paging reads "from" and "size" query parameters with their defaults
// (from=0, size=20) and rejects negative offsets and non-positive sizes.
func Paging(c *gin.Context) (PageParams, error) {
	from, err := strconv.Atoi(c.DefaultQuery("from", "0"))
	if err != nil || from < 0 {
		return PageParams{}, errInvalidPaging
	}

	size, err := strconv.Atoi(c.DefaultQuery("size", "20"))
	if err != nil || size < 1 {
		return PageParams{}, errInvalidPaging
	}

	return PageParams{From: from, Size: size}, nil
}
