package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/complyline/deadline-service/internal/domain"
	"github.com/complyline/deadline-service/internal/service/tasks"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func respondError(c *gin.Context, status int, errType, message string) {
	c.JSON(status, errorResponse{
		Error:   errType,
		Message: message,
	})
}

type createTaskRequest struct {
	Name        string    `json:"name" binding:"required"`
	Category    string    `json:"category" binding:"required"`
	Description string    `json:"description"`
	ClientName  string    `json:"clientName"`
	ClientPhone string    `json:"clientPhone"`
	Deadline    time.Time `json:"deadline" binding:"required"`
	Recurrence  string    `json:"recurrence" binding:"required"`
}

type updateTaskRequest struct {
	Name        *string    `json:"name"`
	Category    *string    `json:"category"`
	Description *string    `json:"description"`
	ClientName  *string    `json:"clientName"`
	ClientPhone *string    `json:"clientPhone"`
	Deadline    *time.Time `json:"deadline"`
	Recurrence  *string    `json:"recurrence"`
}

type taskResponse struct {
	ID             string     `json:"id"`
	OrganizationID string     `json:"organizationId"`
	OwnerID        string     `json:"ownerId"`
	Name           string     `json:"name"`
	Category       string     `json:"category"`
	CustomCategory bool       `json:"customCategory"`
	Description    string     `json:"description,omitempty"`
	ClientName     string     `json:"clientName,omitempty"`
	ClientPhone    string     `json:"clientPhone,omitempty"`
	Deadline       time.Time  `json:"deadline"`
	Recurrence     string     `json:"recurrence"`
	Completed      bool       `json:"completed"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
	Urgency        string     `json:"urgency,omitempty"`
	UrgencyMessage string     `json:"urgencyMessage,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func toTaskResponse(task *domain.Task) taskResponse {
	return taskResponse{
		ID:             task.ID.String(),
		OrganizationID: task.OrganizationID.String(),
		OwnerID:        task.OwnerID.String(),
		Name:           task.Name,
		Category:       task.Category.String(),
		CustomCategory: task.Category.IsCustom(),
		Description:    task.Description,
		ClientName:     task.ClientName,
		ClientPhone:    task.ClientPhone,
		Deadline:       task.Deadline,
		Recurrence:     task.Recurrence.String(),
		Completed:      task.Completed,
		CompletedAt:    task.CompletedAt,
		CreatedAt:      task.CreatedAt,
		UpdatedAt:      task.UpdatedAt,
	}
}

func toTaskViewResponse(view *tasks.TaskView) taskResponse {
	resp := toTaskResponse(view.Task)
	resp.Urgency = view.Urgency.String()
	resp.UrgencyMessage = view.UrgencyMessage
	return resp
}

type completeTaskResponse struct {
	Task             taskResponse  `json:"task"`
	AlreadyCompleted bool          `json:"alreadyCompleted"`
	Successor        *taskResponse `json:"successor,omitempty"`
	RolloverError    string        `json:"rolloverError,omitempty"`
}

func toCompleteResponse(result *tasks.CompleteResult) completeTaskResponse {
	resp := completeTaskResponse{
		Task:             toTaskResponse(result.Task),
		AlreadyCompleted: result.AlreadyCompleted,
		RolloverError:    result.RolloverError,
	}
	if result.Successor != nil {
		successor := toTaskResponse(result.Successor)
		resp.Successor = &successor
	}
	return resp
}

const (
	headerOrganizationID = "X-Organization-ID"
	headerUserID         = "X-User-ID"
)

// organizationID extracts the tenant from the request. Requests without
// a valid organization header never reach the services.
func organizationID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetHeader(headerOrganizationID))
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "missing or invalid "+headerOrganizationID+" header")
		return uuid.Nil, false
	}
	return id, true
}

func userID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetHeader(headerUserID))
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "missing or invalid "+headerUserID+" header")
		return uuid.Nil, false
	}
	return id, true
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
