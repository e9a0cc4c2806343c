package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"trackd/internal/application/webhook/usecases"
	"trackd/internal/domain/webhook"
	"trackd/internal/interfaces/http/middleware"
	"trackd/internal/shared/errors"
	"trackd/internal/shared/logger"
	"trackd/internal/shared/utils"
)

// WebhookHandler exposes webhook subscription management. Deliveries
// themselves are driven by the worker, not by any route here.
type WebhookHandler struct {
	createWebhook *usecases.CreateWebhookUseCase
	deleteWebhook *usecases.DeleteWebhookUseCase
	listWebhooks  *usecases.ListWebhooksUseCase
	logger        logger.Interface
}

func NewWebhookHandler(
	createWebhook *usecases.CreateWebhookUseCase,
	deleteWebhook *usecases.DeleteWebhookUseCase,
	listWebhooks *usecases.ListWebhooksUseCase,
	logger logger.Interface,
) *WebhookHandler {
	return &WebhookHandler{
		createWebhook: createWebhook,
		deleteWebhook: deleteWebhook,
		listWebhooks:  listWebhooks,
		logger:        logger,
	}
}

type createWebhookRequest struct {
	Scope     string   `json:"scope" binding:"required"`
	ScopeID   uint     `json:"scope_id" binding:"required"`
	TargetURL string   `json:"target_url" binding:"required"`
	Events    []string `json:"events" binding:"required"`
}

func (h *WebhookHandler) Create(c *gin.Context) {
	var req createWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	userID, _ := middleware.CurrentUserID(c)

	result, err := h.createWebhook.Execute(c.Request.Context(), usecases.CreateWebhookCommand{
		Scope:     webhook.Scope(req.Scope),
		ScopeID:   req.ScopeID,
		UserID:    userID,
		TargetURL: req.TargetURL,
		Events:    req.Events,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Webhook created successfully")
}

func (h *WebhookHandler) Delete(c *gin.Context) {
	subscriptionID, err := uintParam(c, "subscription_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	userID, _ := middleware.CurrentUserID(c)

	result, err := h.deleteWebhook.Execute(c.Request.Context(), usecases.DeleteWebhookCommand{
		SubscriptionID: subscriptionID,
		UserID:         userID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

func (h *WebhookHandler) List(c *gin.Context) {
	scopeID, err := strconv.ParseUint(c.Query("scope_id"), 10, 32)
	if err != nil || scopeID == 0 {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid scope_id"))
		return
	}

	userID, _ := middleware.CurrentUserID(c)

	result, err := h.listWebhooks.Execute(c.Request.Context(), usecases.ListWebhooksQuery{
		Scope:   webhook.Scope(c.Query("scope")),
		ScopeID: uint(scopeID),
		UserID:  userID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}
