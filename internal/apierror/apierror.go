// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import "fmt"

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors. It implements error so the
// service layer can return it and handlers can surface the field map intact.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Validation failed", Fields: fields}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s (%d field(s))", e.Detail, len(e.Fields))
}

// StockExceededError reports a line-item quantity exceeding available stock.
// Row-scoped and recoverable: the editing session continues, only the
// offending row is rejected.
type StockExceededError struct {
	ProductName string
	Available   int
}

func NewStockExceeded(productName string, available int) *StockExceededError {
	return &StockExceededError{ProductName: productName, Available: available}
}

func (e *StockExceededError) Error() string {
	return fmt.Sprintf("Only %d items available in stock", e.Available)
}
