package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"crown_transport/internal/calendar"
	"crown_transport/internal/schedule"
	"crown_transport/internal/store"
)

// JobSource loads the engine view of a route's jobs.
type JobSource interface {
	JobsForRoute(ctx context.Context, routeNo string, rng calendar.Range) ([]schedule.Job, error)
}

type ScheduleController struct {
	jobs JobSource
}

func NewScheduleController(jobs JobSource) *ScheduleController {
	return &ScheduleController{jobs: jobs}
}

// ListPickups returns the sorted pickup legs of a route for ?from=&to=.
func (sc *ScheduleController) ListPickups(c *gin.Context) {
	rng, err := calendar.NewRange(c.Query("from"), c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to must be YYYY-MM-DD dates"})
		return
	}
	routeNo := c.Param("route_no")

	jobs, err := sc.jobs.JobsForRoute(c.Request.Context(), routeNo, rng)
	if err != nil {
		respondLoadError(c, "ListPickups", err)
		return
	}

	pickups := schedule.BuildPickupList(jobs, rng)
	c.JSON(http.StatusOK, gin.H{
		"route_no": routeNo,
		"from":     calendar.FormatDate(rng.Start),
		"to":       calendar.FormatDate(rng.End),
		"count":    len(pickups),
		"pickups":  pickups,
	})
}

func respondLoadError(c *gin.Context, op string, err error) {
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	logrus.WithError(err).Error(op + ": failed to load jobs")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load jobs"})
}
