package dto

import "time"

// Error codes surfaced by the API.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeInternal     = "INTERNAL_ERROR"
)

// SuccessResponse is the envelope for every successful API response.
type SuccessResponse struct {
	Success   bool      `json:"success"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

// APIError is the structured error body carried by ErrorResponse.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorResponse is the envelope for every failed API response.
type ErrorResponse struct {
	Success   bool      `json:"success"`
	Error     APIError  `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

// NewSuccess wraps data in the standard success envelope.
func NewSuccess(data any) SuccessResponse {
	return SuccessResponse{Success: true, Data: data, Timestamp: time.Now().UTC()}
}

// NewError builds the standard error envelope.
func NewError(code, message string, details any) ErrorResponse {
	return ErrorResponse{
		Success:   false,
		Error:     APIError{Code: code, Message: message, Details: details},
		Timestamp: time.Now().UTC(),
	}
}

// Pagination describes the page window of a list response.
type Pagination struct {
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	TotalDocs   int  `json:"totalDocs"`
	TotalPages  int  `json:"totalPages"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// NewPagination derives the pagination block from a page window and total.
func NewPagination(page, limit, totalDocs int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (totalDocs + limit - 1) / limit
	}
	return Pagination{
		Page:        page,
		Limit:       limit,
		TotalDocs:   totalDocs,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1 && totalDocs > 0,
	}
}
