package controllers

import (
	"fmt"
	"net/http"

	"github.com/sheltweezy/digestlibrary/services"

	"github.com/gin-gonic/gin"
)

type IngestController struct {
	Svc *services.IngestService
}

func NewIngestController(svc *services.IngestService) *IngestController {
	return &IngestController{Svc: svc}
}

// Upload ingests a SnapCalorie CSV export for the profile. Row-level
// problems come back inside the result payload as warnings; only a
// structurally unusable file is an HTTP error.
func (h *IngestController) Upload(c *gin.Context) {
	id, ok := profileIDParam(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, fmt.Errorf("%w: missing file field", services.ErrInvalidArgument))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	result, err := h.Svc.IngestSnapCalorie(id, file)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
