package handlers

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/task-tracker/internal/errors"
	"github.com/yukikurage/task-tracker/internal/services"
)

type DocumentHandler struct {
	documents *services.DocumentService
}

func NewDocumentHandler(documents *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{documents: documents}
}

// DownloadDocument streams a stored task document as an attachment
func (h *DocumentHandler) DownloadDocument(c *gin.Context) {
	key := c.Param("fileKey")

	path, err := h.documents.Resolve(key)
	if err != nil {
		if errors.Is(err, services.ErrDocumentNotFound) {
			log.Printf("Document %q not found", key)
			apierrors.NotFound(c, "File not found")
			return
		}
		log.Printf("Error accessing document %q: %v", key, err)
		apierrors.InternalError(c, "")
		return
	}

	c.FileAttachment(path, services.DisplayName(key))
}
