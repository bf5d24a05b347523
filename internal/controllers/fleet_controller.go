package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"crown_transport/internal/config"
	"crown_transport/internal/models"
)

// ListDrivers returns drivers with their vendor, optionally filtered by
// ?vendor_id=.
func ListDrivers(c *gin.Context) {
	q := config.DB.Preload("Vendor").Order("name ASC")
	if v := c.Query("vendor_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vendor ID format."})
			return
		}
		q = q.Where("vendor_id = ?", uint(id))
	}

	var drivers []models.Driver
	if err := q.Find(&drivers).Error; err != nil {
		logrus.WithError(err).Error("Error listing drivers")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing drivers: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": drivers})
}

// ListVehicles returns vehicles, only those in service unless ?all=true.
func ListVehicles(c *gin.Context) {
	q := config.DB.Order("vehicle_no ASC")
	if c.Query("all") != "true" {
		q = q.Where("in_service = ?", true)
	}

	var vehicles []models.Vehicle
	if err := q.Find(&vehicles).Error; err != nil {
		logrus.WithError(err).Error("Error listing vehicles")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing vehicles: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": vehicles})
}
