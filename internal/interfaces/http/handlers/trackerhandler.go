package handlers

import (
	"github.com/gin-gonic/gin"

	"trackd/internal/application/tracker/usecases"
	"trackd/internal/domain/tracker"
	"trackd/internal/interfaces/http/middleware"
	"trackd/internal/shared/errors"
	"trackd/internal/shared/logger"
	"trackd/internal/shared/utils"
)

// TrackerHandler exposes tracker management: CRUD, per-user access
// overrides, labels, and tracker-level subscriptions.
type TrackerHandler struct {
	createTracker      *usecases.CreateTrackerUseCase
	getTracker         *usecases.GetTrackerUseCase
	listTrackers       *usecases.ListTrackersUseCase
	updateTracker      *usecases.UpdateTrackerUseCase
	deleteTracker      *usecases.DeleteTrackerUseCase
	grantAccess        *usecases.GrantAccessUseCase
	revokeAccess       *usecases.RevokeAccessUseCase
	createLabel        *usecases.CreateLabelUseCase
	deleteLabel        *usecases.DeleteLabelUseCase
	subscribeTracker   *usecases.SubscribeTrackerUseCase
	unsubscribeTracker *usecases.UnsubscribeTrackerUseCase
	logger             logger.Interface
}

func NewTrackerHandler(
	createTracker *usecases.CreateTrackerUseCase,
	getTracker *usecases.GetTrackerUseCase,
	listTrackers *usecases.ListTrackersUseCase,
	updateTracker *usecases.UpdateTrackerUseCase,
	deleteTracker *usecases.DeleteTrackerUseCase,
	grantAccess *usecases.GrantAccessUseCase,
	revokeAccess *usecases.RevokeAccessUseCase,
	createLabel *usecases.CreateLabelUseCase,
	deleteLabel *usecases.DeleteLabelUseCase,
	subscribeTracker *usecases.SubscribeTrackerUseCase,
	unsubscribeTracker *usecases.UnsubscribeTrackerUseCase,
	logger logger.Interface,
) *TrackerHandler {
	return &TrackerHandler{
		createTracker:      createTracker,
		getTracker:         getTracker,
		listTrackers:       listTrackers,
		updateTracker:      updateTracker,
		deleteTracker:      deleteTracker,
		grantAccess:        grantAccess,
		revokeAccess:       revokeAccess,
		createLabel:        createLabel,
		deleteLabel:        deleteLabel,
		subscribeTracker:   subscribeTracker,
		unsubscribeTracker: unsubscribeTracker,
		logger:             logger,
	}
}

type createTrackerRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (h *TrackerHandler) Create(c *gin.Context) {
	var req createTrackerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	userID, _ := middleware.CurrentUserID(c)

	result, err := h.createTracker.Execute(c.Request.Context(), usecases.CreateTrackerCommand{
		OwnerID:     userID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Tracker created successfully")
}

func (h *TrackerHandler) Get(c *gin.Context) {
	ownerID, err := uintParam(c, "user_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getTracker.Execute(c.Request.Context(), usecases.GetTrackerQuery{
		OwnerID: ownerID,
		Name:    c.Param("name"),
		Actor:   middleware.CurrentActor(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

func (h *TrackerHandler) List(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)

	result, err := h.listTrackers.Execute(c.Request.Context(), usecases.ListTrackersQuery{
		OwnerID: userID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

type updateTrackerRequest struct {
	Description    *string   `json:"description"`
	AnonymousPerms *[]string `json:"anonymous_perms"`
	UserPerms      *[]string `json:"user_perms"`
	SubmitterPerms *[]string `json:"submitter_perms"`
}

func (h *TrackerHandler) Update(c *gin.Context) {
	trackerID, err := uintParam(c, "tracker_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req updateTrackerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	userID, _ := middleware.CurrentUserID(c)
	cmd := usecases.UpdateTrackerCommand{
		TrackerID:   trackerID,
		ActorID:     userID,
		Description: req.Description,
	}

	if cmd.AnonymousPerms, err = maskFromNames(req.AnonymousPerms); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if cmd.UserPerms, err = maskFromNames(req.UserPerms); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if cmd.SubmitterPerms, err = maskFromNames(req.SubmitterPerms); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.updateTracker.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

func (h *TrackerHandler) Delete(c *gin.Context) {
	trackerID, err := uintParam(c, "tracker_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	userID, _ := middleware.CurrentUserID(c)

	result, err := h.deleteTracker.Execute(c.Request.Context(), usecases.DeleteTrackerCommand{
		TrackerID: trackerID,
		ActorID:   userID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

type grantAccessRequest struct {
	Permissions []string `json:"permissions"`
}

func (h *TrackerHandler) GrantAccess(c *gin.Context) {
	trackerID, err := uintParam(c, "tracker_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	targetID, err := uintParam(c, "user_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req grantAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	mask, err := tracker.AccessMaskFromNames(req.Permissions)
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError(err.Error()))
		return
	}

	userID, _ := middleware.CurrentUserID(c)

	result, err := h.grantAccess.Execute(c.Request.Context(), usecases.GrantAccessCommand{
		TrackerID:   trackerID,
		ActorID:     userID,
		UserID:      targetID,
		Permissions: mask,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Access granted successfully")
}

func (h *TrackerHandler) RevokeAccess(c *gin.Context) {
	trackerID, err := uintParam(c, "tracker_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	targetID, err := uintParam(c, "user_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	userID, _ := middleware.CurrentUserID(c)

	result, err := h.revokeAccess.Execute(c.Request.Context(), usecases.RevokeAccessCommand{
		TrackerID: trackerID,
		ActorID:   userID,
		UserID:    targetID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

type createLabelRequest struct {
	Name            string `json:"name" binding:"required"`
	Color           string `json:"color"`
	BackgroundColor string `json:"background_color"`
}

func (h *TrackerHandler) CreateLabel(c *gin.Context) {
	trackerID, err := uintParam(c, "tracker_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req createLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	userID, _ := middleware.CurrentUserID(c)

	result, err := h.createLabel.Execute(c.Request.Context(), usecases.CreateLabelCommand{
		TrackerID:       trackerID,
		ActorID:         userID,
		Name:            req.Name,
		Color:           req.Color,
		BackgroundColor: req.BackgroundColor,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Label created successfully")
}

func (h *TrackerHandler) DeleteLabel(c *gin.Context) {
	trackerID, err := uintParam(c, "tracker_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	labelID, err := uintParam(c, "label_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	userID, _ := middleware.CurrentUserID(c)

	result, err := h.deleteLabel.Execute(c.Request.Context(), usecases.DeleteLabelCommand{
		TrackerID: trackerID,
		LabelID:   labelID,
		ActorID:   userID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

func (h *TrackerHandler) Subscribe(c *gin.Context) {
	trackerID, err := uintParam(c, "tracker_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	userID, _ := middleware.CurrentUserID(c)

	result, err := h.subscribeTracker.Execute(c.Request.Context(), usecases.SubscribeTrackerCommand{
		TrackerID: trackerID,
		UserID:    userID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

func (h *TrackerHandler) Unsubscribe(c *gin.Context) {
	trackerID, err := uintParam(c, "tracker_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	userID, _ := middleware.CurrentUserID(c)

	result, err := h.unsubscribeTracker.Execute(c.Request.Context(), usecases.UnsubscribeTrackerCommand{
		TrackerID: trackerID,
		UserID:    userID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

// maskFromNames converts an optional capability-name list into an optional
// mask, preserving the "absent means unchanged" contract.
func maskFromNames(names *[]string) (*tracker.AccessMask, error) {
	if names == nil {
		return nil, nil
	}
	mask, err := tracker.AccessMaskFromNames(*names)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	return &mask, nil
}
