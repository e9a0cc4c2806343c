package handlers

import (
	"github.com/gin-gonic/gin"

	"trackd/internal/application/notification/usecases"
	"trackd/internal/interfaces/http/middleware"
	"trackd/internal/shared/logger"
	"trackd/internal/shared/utils"
)

// NotificationHandler exposes the per-user notification feed. Every route
// is scoped to the authenticated caller.
type NotificationHandler struct {
	listNotifications *usecases.ListNotificationsUseCase
	unreadCount       *usecases.UnreadCountUseCase
	markRead          *usecases.MarkReadUseCase
	logger            logger.Interface
}

func NewNotificationHandler(
	listNotifications *usecases.ListNotificationsUseCase,
	unreadCount *usecases.UnreadCountUseCase,
	markRead *usecases.MarkReadUseCase,
	logger logger.Interface,
) *NotificationHandler {
	return &NotificationHandler{
		listNotifications: listNotifications,
		unreadCount:       unreadCount,
		markRead:          markRead,
		logger:            logger,
	}
}

func (h *NotificationHandler) List(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)
	page, pageSize := pagination(c)

	result, err := h.listNotifications.Execute(c.Request.Context(), usecases.ListNotificationsQuery{
		UserID:   userID,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)

	result, err := h.unreadCount.Execute(c.Request.Context(), usecases.UnreadCountQuery{
		UserID: userID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	notificationID, err := uintParam(c, "notification_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	userID, _ := middleware.CurrentUserID(c)

	result, err := h.markRead.Execute(c.Request.Context(), usecases.MarkReadCommand{
		UserID:         userID,
		NotificationID: notificationID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)

	result, err := h.markRead.Execute(c.Request.Context(), usecases.MarkReadCommand{
		UserID: userID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}
