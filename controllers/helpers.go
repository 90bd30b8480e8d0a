package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sheltweezy/digestlibrary/services"

	"github.com/gin-gonic/gin"
)

// respondError maps the service error taxonomy onto HTTP statuses.
// The body is always {"error": message}; rendering is the client's
// problem.
func respondError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func profileIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile id"})
		return 0, false
	}
	return uint(id), true
}

func parseDate(c *gin.Context, value string) (time.Time, bool) {
	d, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, use YYYY-MM-DD"})
		return time.Time{}, false
	}
	return d, true
}

// rangeQuery reads ?start= and ?end=, defaulting to the trailing 30
// days ending today.
func rangeQuery(c *gin.Context) (time.Time, time.Time, bool) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	end := today
	if v := c.Query("end"); v != "" {
		var ok bool
		if end, ok = parseDate(c, v); !ok {
			return time.Time{}, time.Time{}, false
		}
	}

	start := end.AddDate(0, 0, -29)
	if v := c.Query("start"); v != "" {
		var ok bool
		if start, ok = parseDate(c, v); !ok {
			return time.Time{}, time.Time{}, false
		}
	}

	return start, end, true
}

func metricsQuery(c *gin.Context) []string {
	raw := c.Query("metrics")
	if raw == "" {
		return services.DefaultMetrics
	}
	var metrics []string
	for _, m := range strings.Split(raw, ",") {
		if m = strings.TrimSpace(m); m != "" {
			metrics = append(metrics, m)
		}
	}
	return metrics
}

func limitQuery(c *gin.Context, fallback int) (int, bool) {
	raw := c.DefaultQuery("limit", strconv.Itoa(fallback))
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 || limit > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 100"})
		return 0, false
	}
	return limit, true
}
