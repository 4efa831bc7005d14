package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-tracker/internal/constants"
	"github.com/yukikurage/task-tracker/internal/middleware"
	"github.com/yukikurage/task-tracker/internal/services"
)

// RouterDeps holds the services the HTTP routes are built on
type RouterDeps struct {
	Tasks          *services.TaskService
	Documents      *services.DocumentService
	Reports        *services.ReportService
	MaxUploadBytes int64
}

// RegisterRoutes mounts every endpoint on r
func RegisterRoutes(r *gin.Engine, deps RouterDeps) {
	taskHandler := NewTaskHandler(deps.Tasks, deps.Documents)
	documentHandler := NewDocumentHandler(deps.Documents)
	exportHandler := NewExportHandler(deps.Reports)

	maxUploadBytes := deps.MaxUploadBytes
	if maxUploadBytes <= 0 {
		maxUploadBytes = constants.DefaultMaxUploadMB << 20
	}

	r.Use(middleware.CORS())
	r.MaxMultipartMemory = maxUploadBytes

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Task Tracker API is running",
		})
	})

	tasks := r.Group("/tasks")
	{
		tasks.GET("", taskHandler.ListTasks)
		tasks.GET("/tables", taskHandler.GetTaskTables)
		tasks.POST("", middleware.LimitRequestBody(maxUploadBytes), taskHandler.CreateTask)
		tasks.POST("/generate", taskHandler.GenerateTasks)
		tasks.DELETE("/:id", taskHandler.DeleteTask)
	}

	r.GET("/download/:fileKey", documentHandler.DownloadDocument)
	r.GET("/export", exportHandler.ExportTasks)
}
