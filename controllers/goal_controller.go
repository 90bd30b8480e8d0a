package controllers

import (
	"net/http"

	"github.com/sheltweezy/digestlibrary/models"
	"github.com/sheltweezy/digestlibrary/services"

	"github.com/gin-gonic/gin"
)

type GoalController struct {
	Svc *services.GoalService
}

func NewGoalController(svc *services.GoalService) *GoalController {
	return &GoalController{Svc: svc}
}

// Get responds with the profile's goal record. When no goal has been
// configured every field is null — the client must not read that as
// zero targets.
func (h *GoalController) Get(c *gin.Context) {
	id, ok := profileIDParam(c)
	if !ok {
		return
	}
	goal, err := h.Svc.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if goal == nil {
		c.JSON(http.StatusOK, models.Goal{})
		return
	}
	c.JSON(http.StatusOK, goal)
}

func (h *GoalController) Save(c *gin.Context) {
	id, ok := profileIDParam(c)
	if !ok {
		return
	}
	var input services.GoalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	goal, err := h.Svc.Save(id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}
