package errors

import (
	"fmt"
	"net/http"
)

// StandardError represents a standardized error response
type StandardError struct {
	Code    string `json:"error"`   // Error code/type (e.g., "InvalidRequest", "MissingField")
	Message string `json:"message"` // Human-readable error message
	Details string `json:"details"` // Additional details (field name, validation info, etc.)
}

// Error implements the error interface
func (e *StandardError) Error() string {
	return e.Message
}

// HTTPStatus returns the appropriate HTTP status code for the error
func (e *StandardError) HTTPStatus() int {
	switch e.Code {
	case "InvalidRequest", "ValidationError", "MissingField", "InvalidPrice":
		return http.StatusBadRequest
	case "Unauthorized":
		return http.StatusUnauthorized
	case "ResourceNotFound":
		return http.StatusNotFound
	case "RequestInProgress":
		return http.StatusConflict
	case "BrokerConnectionError", "ServiceUnavailable":
		return http.StatusServiceUnavailable
	case "SerializationError", "InternalError":
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// NewStandardError creates a new StandardError
func NewStandardError(errorCode, message, details string) *StandardError {
	return &StandardError{
		Code:    errorCode,
		Message: message,
		Details: details,
	}
}

// Common error constructors
func NewInvalidRequest(message, details string) *StandardError {
	return NewStandardError("InvalidRequest", message, details)
}

func NewValidationError(message, field string) *StandardError {
	return NewStandardError("ValidationError", message, fmt.Sprintf("Field: %s", field))
}

func NewInvalidItemID(raw string) *StandardError {
	return NewStandardError("InvalidRequest", "invalid item id", fmt.Sprintf("Item ID: %s", raw))
}

func NewMissingField(message string) *StandardError {
	return NewStandardError("MissingField", message, "Fields: name, price")
}

func NewInvalidPrice(message, priceText string) *StandardError {
	return NewStandardError("InvalidPrice", message, fmt.Sprintf("Price: %q", priceText))
}

func NewUnauthorized(message, details string) *StandardError {
	return NewStandardError("Unauthorized", message, details)
}

func NewRequestInProgress(requestID string) *StandardError {
	return NewStandardError("RequestInProgress", "a request with this id is still being processed", fmt.Sprintf("Request ID: %s", requestID))
}

func NewSerializationError(err error) *StandardError {
	return NewStandardError("SerializationError", "failed to serialize data", err.Error())
}

func NewBrokerConnectionError(err error) *StandardError {
	return NewStandardError("BrokerConnectionError", "failed to connect to event broker", err.Error())
}

func NewInternalError(message string, err error) *StandardError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return NewStandardError("InternalError", message, details)
}
