package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Export handles GET /export?format=html|csv|txt|xlsx|delimited.
// The format defaults to html.
func (h *MineralHandler) Export(c *gin.Context) {
	file, err := h.exporter.Export(c.DefaultQuery("format", "html"), h.collection.All())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Content)
}
