package handler

import (
	"net/http"
	"time"

	"gogive-web/internal/apierrors"
	"gogive-web/internal/auth/processor"
	"gogive-web/internal/observability"
	"gogive-web/internal/session"

	"github.com/gin-gonic/gin"
)

// Handler exposes the OTP login flow over HTTP and owns the session cookie
// lifecycle on the browser side.
type Handler struct {
	authProcessor *processor.Processor
	cookieTTL     time.Duration
	secureCookie  bool
	logger        *observability.Logger
}

// New creates an auth handler. secureCookie should be true whenever the
// deployment terminates TLS.
func New(authProcessor *processor.Processor, cookieTTL time.Duration, secureCookie bool,
	logger *observability.Logger) Handler {
	return Handler{
		authProcessor: authProcessor,
		cookieTTL:     cookieTTL,
		secureCookie:  secureCookie,
		logger:        logger,
	}
}

type requestOTPRequest struct {
	Phone string `json:"phone" binding:"required"`
}

type verifyOTPRequest struct {
	Phone string `json:"phone" binding:"required"`
	OTP   string `json:"otp" binding:"required"`
}

// HandleRequestOTP triggers a one-time code delivery.
func (h *Handler) HandleRequestOTP(c *gin.Context) {
	var req requestOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	if err := h.authProcessor.RequestOTP(c.Request.Context(), req.Phone); err != nil {
		apierrors.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sent": true})
}

// HandleVerifyOTP completes the login: a valid code produces a live session
// and the signed cookie that references it.
func (h *Handler) HandleVerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	sess, cookie, err := h.authProcessor.VerifyOTP(c.Request.Context(), req.Phone, req.OTP)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, cookie, int(h.cookieTTL.Seconds()), "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"gogiver": sess.Profile})
}

// HandleLogout ends the session and expires the cookie. Mounted behind the
// session middleware.
func (h *Handler) HandleLogout(c *gin.Context) {
	sess, ok := session.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	h.authProcessor.Logout(c.Request.Context(), sess)

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, "", -1, "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"logged_out": true})
}
