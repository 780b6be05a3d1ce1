package handler

import (
	"net/http"

	"gogive-web/internal/apierrors"
	"gogive-web/internal/dashboard/processor"
	"gogive-web/internal/observability"
	"gogive-web/internal/session"

	"github.com/gin-gonic/gin"
)

// Handler exposes the giver-facing dashboard surface. Everything here is
// mounted behind the session middleware.
type Handler struct {
	dashboardProcessor *processor.Processor
	logger             *observability.Logger
}

// New creates a dashboard handler.
func New(dashboardProcessor *processor.Processor, logger *observability.Logger) Handler {
	return Handler{dashboardProcessor: dashboardProcessor, logger: logger}
}

func (h *Handler) mustSession(c *gin.Context) (*session.Session, bool) {
	sess, ok := session.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
	return sess, ok
}

// HandleGetDashboard serves the rendered snapshot from the session store.
func (h *Handler) HandleGetDashboard(c *gin.Context) {
	sess, ok := h.mustSession(c)
	if !ok {
		return
	}

	view, err := h.dashboardProcessor.GetDashboard(c.Request.Context(), sess)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// HandleGetProducts serves the referable product catalogue.
func (h *Handler) HandleGetProducts(c *gin.Context) {
	sess, ok := h.mustSession(c)
	if !ok {
		return
	}

	products, err := h.dashboardProcessor.GetProducts(c.Request.Context(), sess)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// HandleGetWallet serves balances and the recent ledger.
func (h *Handler) HandleGetWallet(c *gin.Context) {
	sess, ok := h.mustSession(c)
	if !ok {
		return
	}

	details, err := h.dashboardProcessor.GetWallet(c.Request.Context(), sess)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

// HandleSubmitReferral accepts the refer-a-friend form.
func (h *Handler) HandleSubmitReferral(c *gin.Context) {
	sess, ok := h.mustSession(c)
	if !ok {
		return
	}

	var input processor.SubmitReferralInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	result, err := h.dashboardProcessor.SubmitReferral(c.Request.Context(), sess, input)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// HandleRefresh forces an immediate snapshot fetch, for pull-to-refresh.
func (h *Handler) HandleRefresh(c *gin.Context) {
	sess, ok := h.mustSession(c)
	if !ok {
		return
	}

	sess.Refresher.RefreshNow(c.Request.Context())

	view, err := h.dashboardProcessor.GetDashboard(c.Request.Context(), sess)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
