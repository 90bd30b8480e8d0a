package controllers

import (
	"net/http"
	"time"

	"github.com/sheltweezy/digestlibrary/services"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	Svc *services.AnalyticsService
}

func NewAnalyticsController(svc *services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{Svc: svc}
}

func (h *AnalyticsController) GetDailySummary(c *gin.Context) {
	id, ok := profileIDParam(c)
	if !ok {
		return
	}
	day, ok := parseDate(c, c.Param("date"))
	if !ok {
		return
	}

	summary, err := h.Svc.Summary(c.Request.Context(), id, day)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *AnalyticsController) GetOverview(c *gin.Context) {
	id, ok := profileIDParam(c)
	if !ok {
		return
	}

	now := time.Now()
	asOf := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if v := c.Query("date"); v != "" {
		if asOf, ok = parseDate(c, v); !ok {
			return
		}
	}

	overview, err := h.Svc.Overview(c.Request.Context(), id, asOf)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

func (h *AnalyticsController) GetTrends(c *gin.Context) {
	id, ok := profileIDParam(c)
	if !ok {
		return
	}
	start, end, ok := rangeQuery(c)
	if !ok {
		return
	}

	series, err := h.Svc.TrendSeries(c.Request.Context(), id, start, end, metricsQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, series)
}

func (h *AnalyticsController) GetAverages(c *gin.Context) {
	id, ok := profileIDParam(c)
	if !ok {
		return
	}
	start, end, ok := rangeQuery(c)
	if !ok {
		return
	}

	averages, err := h.Svc.RollingAverages(c.Request.Context(), id, start, end, metricsQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, averages)
}

func (h *AnalyticsController) GetFavorites(c *gin.Context) {
	id, ok := profileIDParam(c)
	if !ok {
		return
	}
	start, end, ok := rangeQuery(c)
	if !ok {
		return
	}
	limit, ok := limitQuery(c, 20)
	if !ok {
		return
	}

	favorites, err := h.Svc.Favorites(c.Request.Context(), id, start, end, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, favorites)
}

func (h *AnalyticsController) GetMealPatterns(c *gin.Context) {
	id, ok := profileIDParam(c)
	if !ok {
		return
	}
	start, end, ok := rangeQuery(c)
	if !ok {
		return
	}

	patterns, err := h.Svc.MealPatterns(c.Request.Context(), id, start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, patterns)
}
