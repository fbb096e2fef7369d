package common

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// HTTP Status Code Constants
const (
	// Success Codes (2xx)
	StatusOK        = 200
	StatusCreated   = 201
	StatusAccepted  = 202
	StatusNoContent = 204

	// Client Error Codes (4xx)
	StatusBadRequest       = 400
	StatusUnauthorized     = 401
	StatusForbidden        = 403
	StatusNotFound         = 404
	StatusMethodNotAllowed = 405
	StatusConflict         = 409
	StatusTooManyRequests  = 429

	// Server Error Codes (5xx)
	StatusInternalServerError = 500
	StatusBadGateway          = 502
	StatusServiceUnavailable  = 503
	StatusGatewayTimeout      = 504
)

// Response Messages
const (
	MsgSuccess       = "Operation successful"
	MsgEventReceived = "EVENT_RECEIVED"

	MsgBadRequest     = "Invalid request"
	MsgUnauthorized   = "Unauthorized"
	MsgForbidden      = "Forbidden"
	MsgNotFound       = "Resource not found"
	MsgInternalError  = "Internal system error"
	MsgInvalidFormat  = "Invalid data format"
	MsgDatabaseError  = "Database interaction error"
	MsgValidationFail = "Invalid input data"
)

// ErrorCode defines a detailed error code
type ErrorCode struct {
	Code        string // Code identifier (e.g. AUTH_001)
	Category    string // Category (e.g. Authentication)
	SubCategory string // Sub-category (e.g. Signature)
	Description string // Detailed description
}

// Hierarchical error codes
var (
	// System Errors (SYS_xxx)
	ErrCodeInternalServer = ErrorCode{
		Code:        "SYS_001",
		Category:    "System",
		SubCategory: "Internal",
		Description: "Internal system error",
	}

	// Authentication Errors (AUTH_xxx)
	ErrCodeAuthSignature = ErrorCode{
		Code:        "AUTH_001",
		Category:    "Authentication",
		SubCategory: "Signature",
		Description: "Webhook signature verification failure",
	}

	ErrCodeAuthVerifyToken = ErrorCode{
		Code:        "AUTH_002",
		Category:    "Authentication",
		SubCategory: "VerifyToken",
		Description: "Webhook verification handshake failure",
	}

	// Validation Errors (VAL_xxx)
	ErrCodeValidationInput = ErrorCode{
		Code:        "VAL_001",
		Category:    "Validation",
		SubCategory: "Input",
		Description: "Invalid input data",
	}

	ErrCodeValidationFormat = ErrorCode{
		Code:        "VAL_002",
		Category:    "Validation",
		SubCategory: "Format",
		Description: "Invalid data format",
	}

	// Store Errors (STORE_xxx)
	ErrCodeStore = ErrorCode{
		Code:        "STORE",
		Category:    "Store",
		SubCategory: "General",
		Description: "Tabular store error",
	}

	ErrCodeStoreRead = ErrorCode{
		Code:        "STORE_001",
		Category:    "Store",
		SubCategory: "Read",
		Description: "Range read error",
	}

	ErrCodeStoreWrite = ErrorCode{
		Code:        "STORE_002",
		Category:    "Store",
		SubCategory: "Write",
		Description: "Range append/update error",
	}

	// Database Errors (DB_xxx) - webhook audit log
	ErrCodeDatabase = ErrorCode{
		Code:        "DB",
		Category:    "Database",
		SubCategory: "General",
		Description: "Database error",
	}

	ErrCodeDatabaseQuery = ErrorCode{
		Code:        "DB_002",
		Category:    "Database",
		SubCategory: "Query",
		Description: "Query error",
	}

	// Messaging Errors (MSG_xxx)
	ErrCodeMessagingSend = ErrorCode{
		Code:        "MSG_001",
		Category:    "Messaging",
		SubCategory: "Send",
		Description: "Outbound message delivery error",
	}
)

// Error defines the detailed error structure
type Error struct {
	Code       ErrorCode // Detailed error code
	Message    string    // Error message
	StatusCode int       // HTTP status code
	Details    any       // Additional error details
}

// Error returns the error message
func (e *Error) Error() string {
	return e.Message
}

// Is supports errors.Is comparison between custom errors
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}
	if targetErr, ok := target.(*Error); ok {
		return e.Code.Code == targetErr.Code.Code && e.Message == targetErr.Message
	}
	return false
}

// NewError creates a new error with full detail
func NewError(code ErrorCode, message string, statusCode int, details any) error {
	return &Error{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}

// Custom errors
var (
	ErrInvalidSignature = NewError(ErrCodeAuthSignature, "Invalid webhook signature", StatusUnauthorized, nil)
	ErrVerifyFailed     = NewError(ErrCodeAuthVerifyToken, "Webhook verification failed", StatusForbidden, nil)

	ErrInvalidInput  = NewError(ErrCodeValidationInput, MsgValidationFail, StatusBadRequest, nil)
	ErrInvalidFormat = NewError(ErrCodeValidationFormat, MsgInvalidFormat, StatusBadRequest, nil)

	ErrNotFound      = NewError(ErrCodeDatabaseQuery, MsgNotFound, StatusNotFound, nil)
	ErrStoreRead     = NewError(ErrCodeStoreRead, "Failed to read from the tabular store", StatusServiceUnavailable, nil)
	ErrStoreWrite    = NewError(ErrCodeStoreWrite, "Failed to write to the tabular store", StatusServiceUnavailable, nil)
	ErrSendExhausted = NewError(ErrCodeMessagingSend, "Outbound send retries exhausted", StatusBadGateway, nil)
)

// ConvertMongoError maps a mongo driver error onto the custom error taxonomy.
func ConvertMongoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return NewError(ErrCodeDatabaseQuery, "Duplicate data", StatusConflict, err.Error())
	}
	if mongo.IsTimeout(err) {
		return NewError(ErrCodeDatabase, "Database timeout", StatusGatewayTimeout, err.Error())
	}
	return NewError(ErrCodeDatabase, err.Error(), StatusInternalServerError, nil)
}
