package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/complyline/deadline-service/internal/service/reminder"
)

type ReminderHandler struct {
	reminderService *reminder.Service
}

func NewReminderHandler(reminderService *reminder.Service) *ReminderHandler {
	return &ReminderHandler{reminderService: reminderService}
}

// HandleSend runs a reminder pass over the organization, or over a
// single member when a user query parameter is given. It is the
// endpoint the scheduler hits; callers mark scheduled runs with
// automated=true so manual triggers stay distinguishable in the logs.
func (h *ReminderHandler) HandleSend(c *gin.Context) {
	ctx := c.Request.Context()

	orgID, ok := organizationID(c)
	if !ok {
		return
	}

	scope := reminder.Scope{
		OrganizationID: orgID,
		Automated:      c.Query("automated") == "true",
	}
	if userStr := c.Query("user"); userStr != "" {
		targetID, err := uuid.Parse(userStr)
		if err != nil {
			respondError(c, http.StatusBadRequest, "validation_error", "invalid user filter")
			return
		}
		scope.OwnerID = &targetID
	}

	slog.InfoContext(ctx, "starting reminder run",
		slog.String("event", "reminder_run_started"),
		slog.String("organization_id", orgID.String()),
		slog.Bool("automated", scope.Automated),
	)

	report, err := h.reminderService.Run(ctx, scope)
	if err != nil {
		slog.ErrorContext(ctx, "reminder run failed",
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "processing_error", "reminder run failed")
		return
	}

	c.JSON(http.StatusOK, report)
}

// HandleSendForClient runs a reminder pass for the calling user only.
func (h *ReminderHandler) HandleSendForClient(c *gin.Context) {
	ctx := c.Request.Context()

	orgID, ok := organizationID(c)
	if !ok {
		return
	}
	callerID, ok := userID(c)
	if !ok {
		return
	}

	report, err := h.reminderService.Run(ctx, reminder.Scope{
		OrganizationID: orgID,
		OwnerID:        &callerID,
	})
	if err != nil {
		slog.ErrorContext(ctx, "client reminder run failed",
			slog.String("user_id", callerID.String()),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "processing_error", "reminder run failed")
		return
	}

	c.JSON(http.StatusOK, report)
}
