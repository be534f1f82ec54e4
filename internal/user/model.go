package user

import (
	"net/http"

	"shareit/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "User not found.")
	ErrEmailAlreadyUsed = apperror.New(http.StatusConflict, "User with this email already exists.")
	ErrInvalidUpdate    = apperror.New(http.StatusBadRequest, "Invalid data to update.")
)

// User is a marketplace participant. Email is the natural key:
// two users may never share one.
type User struct {
	ID    int64
	Name  string
	Email string
}
