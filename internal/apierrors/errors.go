package apierrors

import "net/http"

// Machine-readable error codes returned alongside messages.
const (
	CodeInvalidInput     = "INVALID_INPUT"
	CodePhoneRequired    = "PHONE_REQUIRED"
	CodeProductRequired  = "PRODUCT_REQUIRED"
	CodeOTPRequired      = "OTP_REQUIRED"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeForbidden        = "FORBIDDEN"
	CodeNotFound         = "NOT_FOUND"
	CodeBackendRejected  = "BACKEND_REJECTED"
	CodeConnectionFailed = "CONNECTION_FAILED"
	CodeInternalError    = "INTERNAL_ERROR"
)

// APIError is the sanitized error shape sent to clients.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"error"`
}

func (e *APIError) Error() string {
	return e.Message
}

// BadRequest creates a 400 APIError.
func BadRequest(code, message string) *APIError {
	return &APIError{StatusCode: http.StatusBadRequest, Code: code, Message: message}
}

// Unauthorized creates a 401 APIError.
func Unauthorized(message string) *APIError {
	return &APIError{StatusCode: http.StatusUnauthorized, Code: CodeUnauthorized, Message: message}
}

// Forbidden creates a 403 APIError.
func Forbidden(message string) *APIError {
	return &APIError{StatusCode: http.StatusForbidden, Code: CodeForbidden, Message: message}
}

// NotFound creates a 404 APIError.
func NotFound(code, message string) *APIError {
	return &APIError{StatusCode: http.StatusNotFound, Code: code, Message: message}
}

// BadGateway creates a 502 APIError for upstream connectivity failures.
func BadGateway(message string) *APIError {
	return &APIError{StatusCode: http.StatusBadGateway, Code: CodeConnectionFailed, Message: message}
}

// InternalError creates a sanitized 500 APIError.
func InternalError() *APIError {
	return &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       CodeInternalError,
		Message:    "An internal error occurred. Please try again later.",
	}
}
