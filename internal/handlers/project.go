package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mtamura/project-tracker-api/internal/dto"
	apierrors "github.com/mtamura/project-tracker-api/internal/errors"
	"github.com/mtamura/project-tracker-api/internal/models"
	"github.com/mtamura/project-tracker-api/internal/services"
	"github.com/mtamura/project-tracker-api/internal/utils"
)

// ProjectHandler coordinates project CRUD handlers.
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// ListProjects returns projects newest-first with skip/limit windowing
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	params := utils.GetListParams(c)

	projects, err := h.projectService.ListProjects(params.Skip, params.Limit)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectListDTO(projects))
}

// GetProject returns a single project by ID
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	project, err := h.projectService.GetProject(id)
	if err != nil {
		respondEntryError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// CreateProject creates a new project
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.CreateProject(req.toInput())
	if err != nil {
		respondEntryError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project))
}

// UpdateProject applies a partial edit to a project
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.UpdateProject(id, req.toInput())
	if err != nil {
		respondEntryError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// DeleteProject hard deletes a project and returns the deleted snapshot
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	project, err := h.projectService.DeleteProject(id)
	if err != nil {
		respondEntryError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// CreateEntryRequest is the request body shared by project and task
// creation. Status and priority are closed sets; unknown values are
// rejected at binding.
type CreateEntryRequest struct {
	Title       string           `json:"title" binding:"required,max=255"`
	Description string           `json:"description"`
	DueDate     *time.Time       `json:"due_date"`
	Assignee    string           `json:"assignee" binding:"max=100"`
	Status      *models.Status   `json:"status" binding:"omitempty,oneof=to_do in_progress done"`
	Priority    *models.Priority `json:"priority" binding:"omitempty,oneof=low medium high"`
}

func (r CreateEntryRequest) toInput() services.CreateEntryInput {
	input := services.CreateEntryInput{
		Title:       r.Title,
		Description: r.Description,
		DueDate:     r.DueDate,
		Assignee:    r.Assignee,
	}
	if r.Status != nil {
		input.Status = *r.Status
	}
	if r.Priority != nil {
		input.Priority = *r.Priority
	}
	return input
}

// UpdateEntryRequest is the partial-update body shared by projects and
// tasks. Absent fields keep their stored values; clear_due_date nulls
// the due date explicitly.
type UpdateEntryRequest struct {
	Title        string           `json:"title" binding:"omitempty,max=255"`
	Description  *string          `json:"description"`
	DueDate      *time.Time       `json:"due_date"`
	ClearDueDate bool             `json:"clear_due_date"`
	Assignee     *string          `json:"assignee" binding:"omitempty,max=100"`
	Status       *models.Status   `json:"status" binding:"omitempty,oneof=to_do in_progress done"`
	Priority     *models.Priority `json:"priority" binding:"omitempty,oneof=low medium high"`
}

func (r UpdateEntryRequest) toInput() services.UpdateEntryInput {
	input := services.UpdateEntryInput{
		Description: r.Description,
		DueDate:     r.DueDate,
		ClearDue:    r.ClearDueDate,
		Assignee:    r.Assignee,
		Status:      r.Status,
		Priority:    r.Priority,
	}
	if r.Title != "" {
		input.Title = &r.Title
	}
	return input
}

func respondEntryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, "Project not found")
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTitleTooLong),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidPriority):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
