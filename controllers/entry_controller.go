package controllers

import (
	"net/http"

	"github.com/sheltweezy/digestlibrary/services"

	"github.com/gin-gonic/gin"
)

type EntryController struct {
	Svc *services.EntryService
}

func NewEntryController(svc *services.EntryService) *EntryController {
	return &EntryController{Svc: svc}
}

// ListByDay returns a profile's entries for one calendar day, oldest
// first. ?log_date= is required; ?meal= optionally narrows to one
// meal context.
func (h *EntryController) ListByDay(c *gin.Context) {
	id, ok := profileIDParam(c)
	if !ok {
		return
	}
	dateStr := c.Query("log_date")
	if dateStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing 'log_date' query param"})
		return
	}
	day, ok := parseDate(c, dateStr)
	if !ok {
		return
	}

	entries, err := h.Svc.QueryByDay(id, day, c.Query("meal"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *EntryController) Recent(c *gin.Context) {
	id, ok := profileIDParam(c)
	if !ok {
		return
	}
	limit, ok := limitQuery(c, 20)
	if !ok {
		return
	}

	entries, err := h.Svc.Recent(id, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
