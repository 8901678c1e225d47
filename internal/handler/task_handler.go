package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/complyline/deadline-service/internal/domain"
	"github.com/complyline/deadline-service/internal/service/tasks"
)

type TaskHandler struct {
	taskService *tasks.Service
}

func NewTaskHandler(taskService *tasks.Service) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/tasks", h.HandleCreate)
	rg.GET("/tasks", h.HandleList)
	rg.GET("/tasks/:id", h.HandleGet)
	rg.PATCH("/tasks/:id", h.HandleUpdate)
	rg.DELETE("/tasks/:id", h.HandleDelete)
	rg.POST("/tasks/:id/complete", h.HandleComplete)
	rg.POST("/tasks/:id/reopen", h.HandleReopen)
}

func (h *TaskHandler) HandleCreate(c *gin.Context) {
	ctx := c.Request.Context()

	orgID, ok := organizationID(c)
	if !ok {
		return
	}
	ownerID, ok := userID(c)
	if !ok {
		return
	}

	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "task create request binding failed",
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	task, err := h.taskService.Create(ctx, orgID, tasks.CreateInput{
		OwnerID:     ownerID,
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		Deadline:    req.Deadline,
		Recurrence:  req.Recurrence,
	})
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	slog.InfoContext(ctx, "task created",
		slog.String("event", "task_created"),
		slog.String("task_id", task.ID.String()),
		slog.String("organization_id", orgID.String()),
	)

	c.JSON(http.StatusCreated, toTaskResponse(task))
}

func (h *TaskHandler) HandleGet(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}
	taskID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	view, err := h.taskService.Get(c.Request.Context(), orgID, taskID)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTaskViewResponse(view))
}

func (h *TaskHandler) HandleList(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}

	in := tasks.ListInput{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}
	if ownerStr := c.Query("owner"); ownerStr != "" {
		ownerID, err := uuid.Parse(ownerStr)
		if err != nil {
			respondError(c, http.StatusBadRequest, "validation_error", "invalid owner filter")
			return
		}
		in.OwnerID = &ownerID
	}
	if completedStr := c.Query("completed"); completedStr != "" {
		completed := completedStr == "true"
		in.Completed = &completed
	}

	views, err := h.taskService.List(c.Request.Context(), orgID, in)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	resp := make([]taskResponse, 0, len(views))
	for _, view := range views {
		resp = append(resp, toTaskViewResponse(view))
	}
	c.JSON(http.StatusOK, gin.H{"tasks": resp})
}

func (h *TaskHandler) HandleUpdate(c *gin.Context) {
	ctx := c.Request.Context()

	orgID, ok := organizationID(c)
	if !ok {
		return
	}
	taskID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	task, err := h.taskService.Update(ctx, orgID, taskID, tasks.UpdateInput{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		Deadline:    req.Deadline,
		Recurrence:  req.Recurrence,
	})
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}

func (h *TaskHandler) HandleDelete(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}
	taskID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.taskService.Delete(c.Request.Context(), orgID, taskID); err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *TaskHandler) HandleComplete(c *gin.Context) {
	ctx := c.Request.Context()

	orgID, ok := organizationID(c)
	if !ok {
		return
	}
	taskID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	result, err := h.taskService.Complete(ctx, orgID, taskID)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	slog.InfoContext(ctx, "task completed",
		slog.String("event", "task_completed"),
		slog.String("task_id", taskID.String()),
		slog.Bool("already_completed", result.AlreadyCompleted),
		slog.Bool("successor_created", result.Successor != nil),
	)

	c.JSON(http.StatusOK, toCompleteResponse(result))
}

func (h *TaskHandler) HandleReopen(c *gin.Context) {
	orgID, ok := organizationID(c)
	if !ok {
		return
	}
	taskID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	task, err := h.taskService.Reopen(c.Request.Context(), orgID, taskID)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}

func (h *TaskHandler) respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrTaskNotFound):
		respondError(c, http.StatusNotFound, "not_found", "task not found")
	case errors.Is(err, domain.ErrInvalidTaskName),
		errors.Is(err, domain.ErrInvalidRecurrence),
		errors.Is(err, domain.ErrEmptyCategory):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
	default:
		slog.ErrorContext(c.Request.Context(), "task operation failed",
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "processing_error", "internal error")
	}
}
