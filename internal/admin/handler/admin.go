package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"gogive-web/internal/admin/processor"
	"gogive-web/internal/apierrors"
	"gogive-web/internal/backend"
	"gogive-web/internal/observability"
	"gogive-web/internal/session"

	"github.com/gin-gonic/gin"
)

// Handler exposes the operational surface. Mounted behind the session
// middleware; role checks live in the processor.
type Handler struct {
	adminProcessor *processor.Processor
	logger         *observability.Logger
}

// New creates an admin handler.
func New(adminProcessor *processor.Processor, logger *observability.Logger) Handler {
	return Handler{adminProcessor: adminProcessor, logger: logger}
}

func (h *Handler) mustSession(c *gin.Context) (*session.Session, bool) {
	sess, ok := session.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
	return sess, ok
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "invalid "+name))
		return 0, false
	}
	return id, true
}

func respondRaw(c *gin.Context, raw json.RawMessage, err error) {
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

// HandleGetStats serves the operational stats view.
func (h *Handler) HandleGetStats(c *gin.Context) {
	sess, ok := h.mustSession(c)
	if !ok {
		return
	}
	raw, err := h.adminProcessor.GetStats(c.Request.Context(), sess)
	respondRaw(c, raw, err)
}

// HandleListGivers serves the giver moderation list.
func (h *Handler) HandleListGivers(c *gin.Context) {
	sess, ok := h.mustSession(c)
	if !ok {
		return
	}
	raw, err := h.adminProcessor.ListGivers(c.Request.Context(), sess)
	respondRaw(c, raw, err)
}

// HandleGetFeed serves the activity feed.
func (h *Handler) HandleGetFeed(c *gin.Context) {
	sess, ok := h.mustSession(c)
	if !ok {
		return
	}
	raw, err := h.adminProcessor.GetFeed(c.Request.Context(), sess)
	respondRaw(c, raw, err)
}

// HandleListWithdrawals serves the withdrawal request list.
func (h *Handler) HandleListWithdrawals(c *gin.Context) {
	sess, ok := h.mustSession(c)
	if !ok {
		return
	}
	raw, err := h.adminProcessor.ListWithdrawals(c.Request.Context(), sess)
	respondRaw(c, raw, err)
}

// HandleListProducts serves the product configuration list.
func (h *Handler) HandleListProducts(c *gin.Context) {
	sess, ok := h.mustSession(c)
	if !ok {
		return
	}
	raw, err := h.adminProcessor.ListProducts(c.Request.Context(), sess)
	respondRaw(c, raw, err)
}

// HandleListProductBots serves the bots bound to one product.
func (h *Handler) HandleListProductBots(c *gin.Context) {
	sess, ok := h.mustSession(c)
	if !ok {
		return
	}
	productID, ok := pathID(c, "productID")
	if !ok {
		return
	}
	raw, err := h.adminProcessor.ListProductBots(c.Request.Context(), sess, productID)
	respondRaw(c, raw, err)
}

// HandleGiverAction applies a moderation action to a giver.
func (h *Handler) HandleGiverAction(c *gin.Context) {
	sess, ok := h.mustSession(c)
	if !ok {
		return
	}
	giverID, ok := pathID(c, "giverID")
	if !ok {
		return
	}

	var req backend.GiverActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	if err := h.adminProcessor.GiverAction(c.Request.Context(), sess, giverID, req); err != nil {
		apierrors.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// HandleCreateProduct adds a product to the catalogue.
func (h *Handler) HandleCreateProduct(c *gin.Context) {
	sess, ok := h.mustSession(c)
	if !ok {
		return
	}

	var req backend.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	raw, err := h.adminProcessor.CreateProduct(c.Request.Context(), sess, req)
	respondRaw(c, raw, err)
}

// HandleUpdateProduct edits an existing product.
func (h *Handler) HandleUpdateProduct(c *gin.Context) {
	sess, ok := h.mustSession(c)
	if !ok {
		return
	}
	productID, ok := pathID(c, "productID")
	if !ok {
		return
	}

	var req backend.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	if err := h.adminProcessor.UpdateProduct(c.Request.Context(), sess, productID, req); err != nil {
		apierrors.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// HandleDeleteProduct removes a product.
func (h *Handler) HandleDeleteProduct(c *gin.Context) {
	sess, ok := h.mustSession(c)
	if !ok {
		return
	}
	productID, ok := pathID(c, "productID")
	if !ok {
		return
	}

	if err := h.adminProcessor.DeleteProduct(c.Request.Context(), sess, productID); err != nil {
		apierrors.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// HandleAttachBot binds a bot to a product.
func (h *Handler) HandleAttachBot(c *gin.Context) {
	sess, ok := h.mustSession(c)
	if !ok {
		return
	}
	productID, ok := pathID(c, "productID")
	if !ok {
		return
	}

	var req backend.BotBindingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	if err := h.adminProcessor.AttachBot(c.Request.Context(), sess, productID, req); err != nil {
		apierrors.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// HandleDetachBot unbinds a bot from a product.
func (h *Handler) HandleDetachBot(c *gin.Context) {
	sess, ok := h.mustSession(c)
	if !ok {
		return
	}
	productID, ok := pathID(c, "productID")
	if !ok {
		return
	}
	botID, ok := pathID(c, "botID")
	if !ok {
		return
	}

	if err := h.adminProcessor.DetachBot(c.Request.Context(), sess, productID, botID); err != nil {
		apierrors.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// HandleApproveWithdrawal approves a pending withdrawal request.
func (h *Handler) HandleApproveWithdrawal(c *gin.Context) {
	sess, ok := h.mustSession(c)
	if !ok {
		return
	}
	withdrawalID, ok := pathID(c, "withdrawalID")
	if !ok {
		return
	}

	if err := h.adminProcessor.ApproveWithdrawal(c.Request.Context(), sess, withdrawalID); err != nil {
		apierrors.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// HandleRejectWithdrawal rejects a pending withdrawal request.
func (h *Handler) HandleRejectWithdrawal(c *gin.Context) {
	sess, ok := h.mustSession(c)
	if !ok {
		return
	}
	withdrawalID, ok := pathID(c, "withdrawalID")
	if !ok {
		return
	}

	var req backend.RejectWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	if err := h.adminProcessor.RejectWithdrawal(c.Request.Context(), sess, withdrawalID, req); err != nil {
		apierrors.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
