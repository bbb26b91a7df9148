package handler

import "github.com/faktura/backend/internal/interfaces/http/dto"

// APIResponse is the typed form of the response envelope, used in the
// swagger annotations and by tests decoding handler output.
// @Description Response envelope with a typed data field
type APIResponse[T any] struct {
	Success bool           `json:"success"`
	Data    T              `json:"data,omitempty"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
	Meta    *dto.Meta      `json:"meta,omitempty"`
}
