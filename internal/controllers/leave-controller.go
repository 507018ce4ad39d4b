package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/franciscosanchezn/gin-ferias-api/internal/models"
	"github.com/franciscosanchezn/gin-ferias-api/internal/services"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// LeaveController handles HTTP requests for leave requests
type LeaveController interface {
	// Create files a new leave request for the authenticated employee
	Create(c *gin.Context)
	// ListMine returns the authenticated employee's requests
	ListMine(c *gin.Context)
	// ListAll returns every request in the system
	ListAll(c *gin.Context)
	// UpdateStatus approves or rejects a request
	UpdateStatus(c *gin.Context)
	// Delete removes the caller's own pending request
	Delete(c *gin.Context)
	// DeleteAdmin removes any request
	DeleteAdmin(c *gin.Context)
}

type leaveController struct {
	service services.LeaveService
}

// NewLeaveController creates a new instance of LeaveController
func NewLeaveController(service services.LeaveService) LeaveController {
	return &leaveController{service: service}
}

type createLeaveRequest struct {
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// parseDate accepts plain dates (2006-01-02) and full RFC3339 timestamps.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// Create godoc
// @Summary File a leave request
// @Description Create a leave request owned by the authenticated employee. Status always starts as pending.
// @Tags ferias
// @Accept json
// @Produce json
// @Param request body createLeaveRequest true "Leave request data"
// @Success 201 {object} models.LeaveRequest
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Security BearerAuth
// @Router /api/ferias [post]
func (lc *leaveController) Create(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req createLeaveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Invalid request body"))
		return
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrLeaveInvalidData, "Invalid start date"))
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrLeaveInvalidData, "Invalid end date"))
		return
	}

	request, err := lc.service.Create(user.ID, start, end, req.Reason)
	if err != nil {
		if errors.Is(err, services.ErrInvalidDateRange) {
			ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrLeaveInvalidData, "End date must be after start date"))
			return
		}
		log.WithError(err).Error("Failed to create leave request")
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to create leave request"))
		return
	}

	ctx.JSON(http.StatusCreated, request)
}

// ListMine godoc
// @Summary List the caller's leave requests
// @Description Returns the authenticated employee's requests, newest first.
// @Tags ferias
// @Produce json
// @Success 200 {array} models.LeaveRequest
// @Failure 401 {object} models.APIError
// @Security BearerAuth
// @Router /api/ferias/minhas [get]
func (lc *leaveController) ListMine(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	requests, err := lc.service.ListByEmployee(user.ID)
	if err != nil {
		log.WithError(err).Error("Failed to list leave requests")
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to list leave requests"))
		return
	}
	ctx.JSON(http.StatusOK, requests)
}

// ListAll godoc
// @Summary List every leave request
// @Description Returns all requests in the system, newest first.
// @Tags ferias
// @Produce json
// @Success 200 {array} models.LeaveRequest
// @Failure 403 {object} models.APIError
// @Security BearerAuth
// @Router /api/ferias/admin [get]
func (lc *leaveController) ListAll(ctx *gin.Context) {
	requests, err := lc.service.ListAll()
	if err != nil {
		log.WithError(err).Error("Failed to list leave requests")
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to list leave requests"))
		return
	}
	ctx.JSON(http.StatusOK, requests)
}

// UpdateStatus godoc
// @Summary Approve or reject a leave request
// @Description Sets the request's status. Only approved and rejected are accepted.
// @Tags ferias
// @Accept json
// @Produce json
// @Param id path int true "Leave request ID"
// @Param status body updateStatusRequest true "New status"
// @Success 200 {object} models.LeaveRequest
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/ferias/{id}/status [patch]
func (lc *leaveController) UpdateStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Invalid request body"))
		return
	}

	request, err := lc.service.UpdateStatus(id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrLeaveInvalidData, "Status must be approved or rejected"))
		case errors.Is(err, services.ErrLeaveNotFound):
			ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrLeaveNotFound, "Leave request not found"))
		default:
			log.WithError(err).Error("Failed to update leave request status")
			ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to update status"))
		}
		return
	}

	ctx.JSON(http.StatusOK, request)
}

// Delete godoc
// @Summary Delete the caller's own pending leave request
// @Description Only the owner may delete, and only while the request is still pending.
// @Tags ferias
// @Produce json
// @Param id path int true "Leave request ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} models.APIError
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/ferias/{id} [delete]
func (lc *leaveController) Delete(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := lc.service.DeleteOwn(id, user.ID); err != nil {
		switch {
		case errors.Is(err, services.ErrLeaveNotFound):
			ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrLeaveNotFound, "Leave request not found"))
		case errors.Is(err, services.ErrNotOwner):
			ctx.JSON(http.StatusForbidden, models.NewAPIError(models.ErrLeaveNotOwner, "You may only delete your own leave requests"))
		case errors.Is(err, services.ErrNotPending):
			ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrLeaveNotPending, "Only pending leave requests may be deleted"))
		default:
			log.WithError(err).Error("Failed to delete leave request")
			ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to delete leave request"))
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Leave request deleted"})
}

// DeleteAdmin godoc
// @Summary Delete any leave request
// @Description Removes the request regardless of owner or status and returns the deleted record.
// @Tags ferias
// @Produce json
// @Param id path int true "Leave request ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/ferias/admin/{id} [delete]
func (lc *leaveController) DeleteAdmin(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	request, err := lc.service.DeleteAdmin(id)
	if err != nil {
		if errors.Is(err, services.ErrLeaveNotFound) {
			ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrLeaveNotFound, "Leave request not found"))
			return
		}
		log.WithError(err).Error("Failed to delete leave request")
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to delete leave request"))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Leave request deleted",
		"deleted": request,
	})
}
