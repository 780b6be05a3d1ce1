package apierrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	authProcessor "gogive-web/internal/auth/processor"
	"gogive-web/internal/backend"
	dashboardProcessor "gogive-web/internal/dashboard/processor"

	"github.com/stretchr/testify/assert"
)

func TestMapError_BackendRejectionKeepsMessageAndStatus(t *testing.T) {
	err := fmt.Errorf("submit failed: %w", &backend.Error{
		StatusCode: http.StatusConflict,
		Message:    "You already referred this customer",
	})

	apiErr := MapError(err)

	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, CodeBackendRejected, apiErr.Code)
	assert.Equal(t, "You already referred this customer", apiErr.Message)
}

func TestMapError_SessionExpired(t *testing.T) {
	apiErr := MapError(backend.ErrSessionExpired)

	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, CodeUnauthorized, apiErr.Code)
}

func TestMapError_ConnectionFailed(t *testing.T) {
	err := fmt.Errorf("%w: dial tcp refused", backend.ErrConnectionFailed)

	apiErr := MapError(err)

	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, CodeConnectionFailed, apiErr.Code)
}

func TestMapError_ValidationSentinels(t *testing.T) {
	assert.Equal(t, CodePhoneRequired, MapError(dashboardProcessor.ErrPhoneRequired).Code)
	assert.Equal(t, CodeProductRequired, MapError(dashboardProcessor.ErrProductRequired).Code)
	assert.Equal(t, CodeOTPRequired, MapError(authProcessor.ErrOTPRequired).Code)
	assert.Equal(t, http.StatusBadRequest, MapError(dashboardProcessor.ErrPhoneRequired).StatusCode)
}

func TestMapError_UnknownCollapsesToSanitized500(t *testing.T) {
	apiErr := MapError(errors.New("pq: connection reset"))

	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, CodeInternalError, apiErr.Code)
	assert.NotContains(t, apiErr.Message, "pq:")
}

func TestMapError_PassesAPIErrorThrough(t *testing.T) {
	orig := Forbidden("You do not have access to this resource")

	assert.Same(t, orig, MapError(orig))
}
