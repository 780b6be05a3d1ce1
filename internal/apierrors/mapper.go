package apierrors

import (
	"errors"

	adminProcessor "gogive-web/internal/admin/processor"
	authProcessor "gogive-web/internal/auth/processor"
	"gogive-web/internal/backend"
	dashboardProcessor "gogive-web/internal/dashboard/processor"
)

// MapError converts domain and upstream errors to APIErrors. Centralizing
// the mapping keeps error responses consistent across the whole surface.
//
// Upstream rejections keep their original message and status so the UI can
// surface exactly what the server said. Unknown errors collapse to a
// sanitized 500.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var backendErr *backend.Error
	if errors.As(err, &backendErr) {
		return &APIError{
			StatusCode: backendErr.StatusCode,
			Code:       CodeBackendRejected,
			Message:    backendErr.Message,
		}
	}

	switch {
	case errors.Is(err, backend.ErrSessionExpired):
		return Unauthorized("Session expired. Please log in again.")

	case errors.Is(err, backend.ErrConnectionFailed):
		return BadGateway("Connection failed. Please try again.")

	case errors.Is(err, dashboardProcessor.ErrPhoneRequired),
		errors.Is(err, authProcessor.ErrPhoneRequired):
		return BadRequest(CodePhoneRequired, "Phone number is required")

	case errors.Is(err, dashboardProcessor.ErrProductRequired):
		return BadRequest(CodeProductRequired, "Please select a product")

	case errors.Is(err, authProcessor.ErrOTPRequired):
		return BadRequest(CodeOTPRequired, "Verification code is required")

	case errors.Is(err, adminProcessor.ErrForbidden):
		return Forbidden("You do not have access to this resource")

	default:
		return InternalError()
	}
}
