package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-tracker/internal/constants"
	apierrors "github.com/yukikurage/task-tracker/internal/errors"
	"github.com/yukikurage/task-tracker/internal/services"
)

var exportContentTypes = map[string]string{
	constants.ExportFormatJSON: "application/json",
	constants.ExportFormatCSV:  "text/csv; charset=utf-8",
	constants.ExportFormatPDF:  "application/pdf",
}

type ExportHandler struct {
	reports *services.ReportService
}

func NewExportHandler(reports *services.ReportService) *ExportHandler {
	return &ExportHandler{reports: reports}
}

// ExportTasks downloads every task as json, csv or pdf
func (h *ExportHandler) ExportTasks(c *gin.Context) {
	format := strings.ToLower(c.DefaultQuery("format", constants.ExportFormatJSON))

	data, err := h.reports.Export(c.Request.Context(), format)
	if err != nil {
		if errors.Is(err, services.ErrUnknownFormat) {
			apierrors.InvalidFormat(c, fmt.Sprintf("Unsupported export format %q", format))
			return
		}
		log.Printf("Failed to export tasks as %s: %v", format, err)
		apierrors.InternalError(c, "Failed to export tasks")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="tasks.%s"`, format))
	c.Data(http.StatusOK, exportContentTypes[format], data)
}
