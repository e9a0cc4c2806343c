package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"trackd/internal/application/ticket/usecases"
	"trackd/internal/interfaces/http/middleware"
	"trackd/internal/shared/errors"
	"trackd/internal/shared/logger"
	"trackd/internal/shared/utils"
)

// TicketHandler exposes ticket submission, the unified update operation,
// the event log, and ticket-level subscriptions.
type TicketHandler struct {
	submitTicket      *usecases.SubmitTicketUseCase
	getTicket         *usecases.GetTicketUseCase
	listTickets       *usecases.ListTicketsUseCase
	updateTicket      *usecases.UpdateTicketUseCase
	listEvents        *usecases.ListEventsUseCase
	subscribeTicket   *usecases.SubscribeTicketUseCase
	unsubscribeTicket *usecases.UnsubscribeTicketUseCase
	logger            logger.Interface
}

func NewTicketHandler(
	submitTicket *usecases.SubmitTicketUseCase,
	getTicket *usecases.GetTicketUseCase,
	listTickets *usecases.ListTicketsUseCase,
	updateTicket *usecases.UpdateTicketUseCase,
	listEvents *usecases.ListEventsUseCase,
	subscribeTicket *usecases.SubscribeTicketUseCase,
	unsubscribeTicket *usecases.UnsubscribeTicketUseCase,
	logger logger.Interface,
) *TicketHandler {
	return &TicketHandler{
		submitTicket:      submitTicket,
		getTicket:         getTicket,
		listTickets:       listTickets,
		updateTicket:      updateTicket,
		listEvents:        listEvents,
		subscribeTicket:   subscribeTicket,
		unsubscribeTicket: unsubscribeTicket,
		logger:            logger,
	}
}

type submitTicketRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

func (h *TicketHandler) Submit(c *gin.Context) {
	trackerID, err := uintParam(c, "tracker_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req submitTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	userID, _ := middleware.CurrentUserID(c)

	result, err := h.submitTicket.Execute(c.Request.Context(), usecases.SubmitTicketCommand{
		TrackerID:   trackerID,
		SubmitterID: userID,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Ticket submitted successfully")
}

func (h *TicketHandler) Get(c *gin.Context) {
	trackerID, err := uintParam(c, "tracker_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	scopedID, err := uintParam(c, "scoped_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getTicket.Execute(c.Request.Context(), usecases.GetTicketQuery{
		TrackerID: trackerID,
		ScopedID:  scopedID,
		Actor:     middleware.CurrentActor(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

func (h *TicketHandler) List(c *gin.Context) {
	trackerID, err := uintParam(c, "tracker_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	page, pageSize := pagination(c)

	result, err := h.listTickets.Execute(c.Request.Context(), usecases.ListTicketsQuery{
		TrackerID: trackerID,
		Actor:     middleware.CurrentActor(c),
		Page:      page,
		PageSize:  pageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

type updateTicketRequest struct {
	Comment        *string `json:"comment"`
	Status         *string `json:"status"`
	Resolution     *string `json:"resolution"`
	AddLabelIDs    []uint  `json:"add_label_ids"`
	RemoveLabelIDs []uint  `json:"remove_label_ids"`
}

func (h *TicketHandler) Update(c *gin.Context) {
	trackerID, err := uintParam(c, "tracker_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	scopedID, err := uintParam(c, "scoped_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req updateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	userID, _ := middleware.CurrentUserID(c)

	result, err := h.updateTicket.Execute(c.Request.Context(), usecases.UpdateTicketCommand{
		TrackerID:      trackerID,
		ScopedID:       scopedID,
		ActorID:        userID,
		Comment:        req.Comment,
		Status:         req.Status,
		Resolution:     req.Resolution,
		AddLabelIDs:    req.AddLabelIDs,
		RemoveLabelIDs: req.RemoveLabelIDs,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

func (h *TicketHandler) ListEvents(c *gin.Context) {
	trackerID, err := uintParam(c, "tracker_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	scopedID, err := uintParam(c, "scoped_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	afterID, _ := strconv.ParseUint(c.DefaultQuery("after_id", "0"), 10, 32)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	result, err := h.listEvents.Execute(c.Request.Context(), usecases.ListEventsQuery{
		TrackerID: trackerID,
		ScopedID:  scopedID,
		Actor:     middleware.CurrentActor(c),
		AfterID:   uint(afterID),
		Limit:     limit,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

func (h *TicketHandler) Subscribe(c *gin.Context) {
	trackerID, err := uintParam(c, "tracker_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	scopedID, err := uintParam(c, "scoped_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	userID, _ := middleware.CurrentUserID(c)

	result, err := h.subscribeTicket.Execute(c.Request.Context(), usecases.SubscribeTicketCommand{
		TrackerID: trackerID,
		ScopedID:  scopedID,
		UserID:    userID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

func (h *TicketHandler) Unsubscribe(c *gin.Context) {
	trackerID, err := uintParam(c, "tracker_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	scopedID, err := uintParam(c, "scoped_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	userID, _ := middleware.CurrentUserID(c)

	result, err := h.unsubscribeTicket.Execute(c.Request.Context(), usecases.UnsubscribeTicketCommand{
		TrackerID: trackerID,
		ScopedID:  scopedID,
		UserID:    userID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}
