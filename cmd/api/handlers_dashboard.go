package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// dashboardStats serves the admin dashboard aggregates. startDate/endDate
// are YYYY-MM-DD; the end day is included whole.
func (s *server) dashboardStats(c *gin.Context) {
	var start, end *time.Time
	if sd, ed := c.Query("startDate"), c.Query("endDate"); sd != "" && ed != "" {
		st, err := time.Parse("2006-01-02", sd)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid startDate"})
			return
		}
		en, err := time.Parse("2006-01-02", ed)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid endDate"})
			return
		}
		en = en.Add(24*time.Hour - time.Nanosecond)
		start, end = &st, &en
	}

	stats, err := s.dashboard.GetStats(c.Request.Context(), start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}
