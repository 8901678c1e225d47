package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/complyline/deadline-service/internal/domain"
	"github.com/complyline/deadline-service/internal/infra/calendar"
	"github.com/complyline/deadline-service/internal/service/tasks"
)

type calendarSyncRequest struct {
	TaskID string `json:"taskId" binding:"required"`
	Action string `json:"action" binding:"required"`
}

type CalendarHandler struct {
	taskService *tasks.Service
}

func NewCalendarHandler(taskService *tasks.Service) *CalendarHandler {
	return &CalendarHandler{taskService: taskService}
}

// HandleSync pushes one task snapshot to the external calendar on
// demand, outside the automatic sync that task writes already do.
func (h *CalendarHandler) HandleSync(c *gin.Context) {
	ctx := c.Request.Context()

	orgID, ok := organizationID(c)
	if !ok {
		return
	}

	var req calendarSyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	taskID, err := uuid.Parse(req.TaskID)
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid taskId")
		return
	}

	var action calendar.Action
	switch req.Action {
	case "create":
		action = calendar.ActionCreate
	case "update":
		action = calendar.ActionUpdate
	case "delete":
		action = calendar.ActionDelete
	default:
		respondError(c, http.StatusBadRequest, "validation_error", "action must be create, update or delete")
		return
	}

	if err := h.taskService.PushToCalendar(ctx, orgID, taskID, action); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			respondError(c, http.StatusNotFound, "not_found", "task not found")
			return
		}
		slog.ErrorContext(ctx, "calendar sync request failed",
			slog.String("task_id", req.TaskID),
			slog.String("action", req.Action),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusBadGateway, "calendar_error", "calendar sync failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "synced"})
}
