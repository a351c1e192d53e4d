package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/peiyu/classmeet/internal/app/models/dto"
	"github.com/peiyu/classmeet/internal/app/services"
	"github.com/peiyu/classmeet/internal/middleware"
	"github.com/peiyu/classmeet/internal/pkg/notify"
)

// FriendController handles friend system operations
type FriendController struct {
	friendshipService *services.FriendshipService
	hub               *notify.Hub
	logger            zerolog.Logger
}

// NewFriendController creates a new FriendController
func NewFriendController(friendshipService *services.FriendshipService, hub *notify.Hub, logger zerolog.Logger) *FriendController {
	return &FriendController{
		friendshipService: friendshipService,
		hub:               hub,
		logger:            logger,
	}
}

// SendRequest sends a friend request
// @Summary Send a friend request
// @Tags friends
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SendFriendRequestRequest true "Recipient and optional message"
// @Success 201 {object} dto.APIResponse{data=models.FriendRequest}
// @Failure 409 {object} dto.ErrorResponse "Already friends or request already sent"
// @Router /friends/request [post]
func (c *FriendController) SendRequest(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	var req dto.SendFriendRequestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	request, err := c.friendshipService.SendRequest(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: request, Timestamp: time.Now()})
}

// ListRequests lists the caller's pending incoming requests
// @Summary List pending incoming friend requests
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.FriendRequest}
// @Router /friends/requests [get]
func (c *FriendController) ListRequests(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	requests, err := c.friendshipService.ListIncomingRequests(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: requests, Timestamp: time.Now()})
}

// RespondRequest accepts or rejects a pending friend request
// @Summary Respond to a friend request
// @Tags friends
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Param request body dto.RespondFriendRequestRequest true "accepted or rejected"
// @Success 200 {object} dto.APIResponse{data=models.FriendRequest}
// @Failure 409 {object} dto.ErrorResponse "Request already answered"
// @Router /friends/requests/{id} [put]
func (c *FriendController) RespondRequest(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	requestID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.RespondFriendRequestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	request, err := c.friendshipService.RespondToRequest(ctx.Request.Context(), userID, requestID, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: request, Timestamp: time.Now()})
}

// ListFriends lists the caller's friends
// @Summary List friends
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.FriendResponse}
// @Router /friends [get]
func (c *FriendController) ListFriends(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	friends, err := c.friendshipService.ListFriends(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: friends, Timestamp: time.Now()})
}

// RemoveFriend deletes a friendship
// @Summary Remove a friend
// @Tags friends
// @Produce json
// @Security BearerAuth
// @Param friendshipId path int true "Friendship ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "Friendship not found"
// @Router /friends/{friendshipId} [delete]
func (c *FriendController) RemoveFriend(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	friendshipID, ok := parseIDParam(ctx, "friendshipId")
	if !ok {
		return
	}

	if err := c.friendshipService.RemoveFriend(ctx.Request.Context(), userID, friendshipID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Friend removed"},
		Timestamp: time.Now(),
	})
}

// Notifications upgrades the connection to WebSocket and streams
// friend-system events to the caller
// @Summary Subscribe to friend notifications
// @Tags friends
// @Security BearerAuth
// @Success 101 "Switching protocols"
// @Router /friends/notifications [get]
func (c *FriendController) Notifications(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	if err := c.hub.ServeWS(ctx.Writer, ctx.Request, userID); err != nil {
		c.logger.Warn().Err(err).Int64("userId", userID).Msg("WebSocket upgrade failed")
	}
}
