package handlers

import (
	"errors"
	"log"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-tracker/internal/constants"
	"github.com/yukikurage/task-tracker/internal/dto"
	apierrors "github.com/yukikurage/task-tracker/internal/errors"
	"github.com/yukikurage/task-tracker/internal/models"
	"github.com/yukikurage/task-tracker/internal/services"
)

type TaskHandler struct {
	tasks     *services.TaskService
	documents *services.DocumentService
}

func NewTaskHandler(tasks *services.TaskService, documents *services.DocumentService) *TaskHandler {
	return &TaskHandler{
		tasks:     tasks,
		documents: documents,
	}
}

// CreateTaskRequest is the form submitted by the functional and technical task forms
type CreateTaskRequest struct {
	TaskType           string `form:"taskType"`
	TaskID             string `form:"taskId"`
	Project            string `form:"project"`
	TaskName           string `form:"taskName"`
	TaskDescription    string `form:"taskDescription"`
	ResponsiblePerson  string `form:"responsiblePerson"`
	InternalDeadline   string `form:"internalDeadline"`
	UserDeadline       string `form:"userDeadline"`
	Status             string `form:"status"`
	ChangingStatusDate string `form:"changingStatusDate"`
	FunctionalTaskID   string `form:"functionalTaskId"`
	EstimateDeadline   string `form:"estimateDeadline"`
}

// Category resolves the task category from taskType, falling back to the
// prefix of a client-generated taskId
func (r CreateTaskRequest) Category() (models.TaskCategory, error) {
	if r.TaskType != "" {
		return models.ParseTaskCategory(r.TaskType)
	}
	if category, ok := models.CategoryFromTaskID(r.TaskID); ok {
		return category, nil
	}
	return "", errors.New("taskType is required")
}

// Build constructs the validated task record
func (r CreateTaskRequest) Build() (*models.Task, error) {
	category, err := r.Category()
	if err != nil {
		return nil, err
	}

	fields := models.TaskFields{
		Project:            r.Project,
		TaskName:           r.TaskName,
		TaskDescription:    r.TaskDescription,
		ResponsiblePerson:  r.ResponsiblePerson,
		InternalDeadline:   r.InternalDeadline,
		UserDeadline:       r.UserDeadline,
		Status:             r.Status,
		ChangingStatusDate: r.ChangingStatusDate,
	}
	if category == models.TaskCategoryTechnical {
		return models.NewTechnicalTask(fields, models.TechnicalFields{
			FunctionalTaskID: r.FunctionalTaskID,
			EstimateDeadline: r.EstimateDeadline,
		})
	}
	return models.NewFunctionalTask(fields)
}

// ListTasks returns every task
func (h *TaskHandler) ListTasks(c *gin.Context) {
	c.JSON(http.StatusOK, h.tasks.List(c.Request.Context()))
}

// GetTaskTables returns the functional and technical tables
func (h *TaskHandler) GetTaskTables(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToTaskTables(h.tasks.List(c.Request.Context())))
}

// CreateTask creates a task from a form submission with an optional document
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBind(&req); err != nil {
		log.Printf("Failed to parse task form: %v", err)
		apierrors.BadRequest(c, "Invalid form data")
		return
	}

	task, err := req.Build()
	if err != nil {
		var validationErr *models.ValidationError
		if errors.As(err, &validationErr) {
			apierrors.MissingFields(c, validationErr.Missing)
			return
		}
		apierrors.BadRequest(c, err.Error())
		return
	}

	if header := uploadedDocument(c); header != nil {
		doc, err := h.documents.Save(header)
		if err != nil {
			log.Printf("Failed to store task document: %v", err)
			apierrors.InternalError(c, "Failed to store document")
			return
		}
		task.AttachDocument(doc)
	}

	created, err := h.tasks.Create(c.Request.Context(), task)
	if err != nil {
		if doc := task.Document(); doc != nil {
			if rmErr := h.documents.Remove(doc.Key); rmErr != nil {
				log.Printf("Failed to remove orphaned document %s: %v", doc.Key, rmErr)
			}
		}
		if errors.Is(err, services.ErrInvalidTask) {
			apierrors.BadRequest(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to save task")
		return
	}

	c.JSON(http.StatusCreated, created)
}

// DeleteTask removes a task; unknown identifiers still succeed
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	if err := h.tasks.DeleteByID(c.Request.Context(), c.Param("id")); err != nil {
		apierrors.InternalError(c, "Failed to delete task")
		return
	}
	c.Status(http.StatusNoContent)
}

// GenerateTasksRequest asks for functional tasks drafted from free text
type GenerateTasksRequest struct {
	Text              string `json:"text" binding:"required"`
	Project           string `json:"project"`
	ResponsiblePerson string `json:"responsiblePerson" binding:"required"`
	Status            string `json:"status" binding:"required"`
}

// GenerateTasks drafts functional tasks from text and stores them
func (h *TaskHandler) GenerateTasks(c *gin.Context) {
	var req GenerateTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	created, err := h.tasks.GenerateFunctionalTasks(c.Request.Context(), services.GenerateTasksInput{
		Text:              req.Text,
		Project:           req.Project,
		ResponsiblePerson: req.ResponsiblePerson,
		Status:            req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAIServiceNotConfigured):
			apierrors.ServiceUnavailable(c, "AI service is not configured")
		case errors.Is(err, services.ErrTextRequired),
			errors.Is(err, services.ErrAINoTasksGenerated),
			errors.Is(err, services.ErrAINoValidTasks):
			apierrors.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrPersistFailed):
			apierrors.InternalError(c, "Failed to save tasks")
		default:
			log.Printf("Failed to draft tasks: %v", err)
			apierrors.BadGateway(c, "Failed to draft tasks")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"tasks": created})
}

// uploadedDocument returns the uploaded file header, or nil when the form
// carries no file or an empty file input
func uploadedDocument(c *gin.Context) *multipart.FileHeader {
	header, err := c.FormFile(constants.FormFieldDocumentation)
	if err != nil || header == nil || header.Filename == "" {
		return nil
	}
	return header
}
