package schemas

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/harshulchawla1408/Astrousers-sub000/src/models"
)

// ErrorResponse represents a standard API error (RFC 7807).
// It implements the standard Go error interface.
type ErrorResponse struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"` // HTTP Status Code
	Detail   string `json:"detail"`
	Instance string `json:"instance"`

	// Extension members for recoverable domain errors.
	SessionID       string `json:"session_id,omitempty"`
	RequiredBalance int64  `json:"required_balance,omitempty"`
	CurrentBalance  int64  `json:"current_balance,omitempty"`
}

// Error implements the error interface.
// This allows ErrorResponse to be returned as a standard Go error.
func (e *ErrorResponse) Error() string {
	return fmt.Sprintf("%s: %s", e.Title, e.Detail)
}

// NewErrorResponse creates a general ErrorResponse.
func NewErrorResponse(status int, title, detail, instance string) *ErrorResponse {
	return &ErrorResponse{
		Type:     fmt.Sprintf("https://consult-service.dev/errors/%d", status),
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: instance,
	}
}

// --- Helper Constructors for Common HTTP Errors ---

// NewBadRequestError creates a 400 Bad Request error.
func NewBadRequestError(detail, instance string) *ErrorResponse {
	return NewErrorResponse(http.StatusBadRequest, "Bad Request", detail, instance)
}

// NewUnauthenticatedError creates a 401 Unauthorized error for a missing or
// invalid identity from the transport layer.
func NewUnauthenticatedError(detail, instance string) *ErrorResponse {
	return NewErrorResponse(http.StatusUnauthorized, "Unauthenticated", detail, instance)
}

// NewForbiddenError creates a 403 Forbidden error.
func NewForbiddenError(detail, instance string) *ErrorResponse {
	return NewErrorResponse(http.StatusForbidden, "Forbidden", detail, instance)
}

// NewNotFoundError creates a 404 Not Found error.
func NewNotFoundError(detail, instance string) *ErrorResponse {
	return NewErrorResponse(http.StatusNotFound, "Not Found", detail, instance)
}

// NewConflictError creates a 409 Conflict error.
func NewConflictError(detail, instance string) *ErrorResponse {
	return NewErrorResponse(http.StatusConflict, "Conflict", detail, instance)
}

// NewInternalError creates a 500 Internal Server Error.
// Note: Be careful not to expose sensitive technical details in production.
func NewInternalError(detail, instance string) *ErrorResponse {
	return NewErrorResponse(http.StatusInternalServerError, "Internal Server Error", detail, instance)
}

// NewBadGatewayError creates a 502 Bad Gateway error.
// Used when an upstream service (like the advisor directory) fails.
func NewBadGatewayError(detail, instance string) *ErrorResponse {
	return NewErrorResponse(http.StatusBadGateway, "Bad Gateway", detail, instance)
}

// --- Domain-Specific Error Constructors ---

// InsufficientBalanceError creates a 402 Payment Required error carrying the
// required and current balances so the client can prompt a top-up.
func InsufficientBalanceError(required, current int64, instance string) *ErrorResponse {
	return &ErrorResponse{
		Type:            "https://consult-service.dev/insufficient-balance",
		Title:           "Insufficient Balance",
		Status:          http.StatusPaymentRequired,
		Detail:          fmt.Sprintf("balance %d is below the one-minute minimum of %d", current, required),
		Instance:        instance,
		RequiredBalance: required,
		CurrentBalance:  current,
	}
}

// DuplicateSessionError creates a 409 Conflict error carrying the id of the
// already-live session for the pair.
func DuplicateSessionError(existingID string, instance string) *ErrorResponse {
	return &ErrorResponse{
		Type:      "https://consult-service.dev/duplicate-session",
		Title:     "Duplicate Session",
		Status:    http.StatusConflict,
		Detail:    "a pending or active session already exists for this advisor",
		Instance:  instance,
		SessionID: existingID,
	}
}

// FromDomain translates a domain error from the coordinator or wallet into an
// RFC 7807 response. Unrecognized errors map to 500.
func FromDomain(err error, instance string) *ErrorResponse {
	var dup *models.DuplicateSessionError
	if errors.As(err, &dup) {
		return DuplicateSessionError(dup.ExistingSessionID, instance)
	}
	var insuf *models.InsufficientBalanceError
	if errors.As(err, &insuf) {
		return InsufficientBalanceError(insuf.Required, insuf.Current, instance)
	}
	var resolved *models.AlreadyResolvedError
	var ended *models.AlreadyEndedError
	if errors.As(err, &resolved) || errors.As(err, &ended) {
		return NewConflictError(err.Error(), instance)
	}

	switch {
	case errors.Is(err, models.ErrSessionNotFound),
		errors.Is(err, models.ErrIdentityNotFound),
		errors.Is(err, models.ErrAccountNotFound):
		return NewNotFoundError(err.Error(), instance)
	case errors.Is(err, models.ErrForbidden):
		return NewForbiddenError(err.Error(), instance)
	case errors.Is(err, models.ErrInvalidTransition),
		errors.Is(err, models.ErrSessionNotActive),
		errors.Is(err, models.ErrAdvisorOffline),
		errors.Is(err, models.ErrAdvisorUnavailable),
		errors.Is(err, models.ErrNotAnAdvisor):
		return NewConflictError(err.Error(), instance)
	}
	return NewInternalError(err.Error(), instance)
}
