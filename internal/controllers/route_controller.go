package controllers

import (
	"encoding/binary"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"crown_transport/internal/config"
	"crown_transport/internal/models"

	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkb"
)

// RouteResponse mirrors models.Route with Geometry rendered as GeoJSON.
type RouteResponse struct {
	ID              uint         `json:"ID"`
	CreatedAt       time.Time    `json:"CreatedAt"`
	UpdatedAt       time.Time    `json:"UpdatedAt"`
	RouteNo         string       `json:"route_no"`
	Name            string       `json:"name"`
	Description     string       `json:"description"`
	InvoiceTemplate string       `json:"invoice_template"`
	DailyRate       *string      `json:"daily_rate"`
	PARate          *string      `json:"pa_rate"`
	CompanyID       uint         `json:"company_id"`
	VendorID        uint         `json:"vendor_id"`
	Geometry        string       `json:"geometry"`
	Jobs            []models.Job `json:"jobs,omitempty"`
}

func toRouteResponse(route models.Route) RouteResponse {
	jsonGeom, err := convertWKBToGeoJSON(route.Geometry)
	if err != nil {
		logrus.WithError(err).WithField("route_no", route.RouteNo).Warn("stored route geometry is not valid WKB")
	}
	resp := RouteResponse{
		ID:              route.ID,
		CreatedAt:       route.CreatedAt,
		UpdatedAt:       route.UpdatedAt,
		RouteNo:         route.RouteNo,
		Name:            route.Name,
		Description:     route.Description,
		InvoiceTemplate: route.InvoiceTemplate,
		CompanyID:       route.CompanyID,
		VendorID:        route.VendorID,
		Geometry:        jsonGeom,
		Jobs:            route.Jobs,
	}
	if route.DailyRate.Valid {
		s := route.DailyRate.Decimal.StringFixed(2)
		resp.DailyRate = &s
	}
	if route.PARate.Valid {
		s := route.PARate.Decimal.StringFixed(2)
		resp.PARate = &s
	}
	return resp
}

// parseAndConvertGeometry parses a GeoJSON LineString and returns WKB bytes.
func parseAndConvertGeometry(raw string) ([]byte, error) {
	if raw == "" {
		return nil, nil
	}
	var g geom.T
	if err := gjson.Unmarshal([]byte(raw), &g); err != nil {
		return nil, err
	}
	if _, ok := g.(*geom.LineString); !ok {
		return nil, errors.New("route geometry must be a LineString")
	}
	return wkb.Marshal(g, binary.LittleEndian)
}

// convertWKBToGeoJSON converts WKB bytes into a GeoJSON string.
func convertWKBToGeoJSON(wkbBytes []byte) (string, error) {
	if len(wkbBytes) == 0 {
		return "", nil
	}
	g, err := wkb.Unmarshal(wkbBytes)
	if err != nil {
		return "", err
	}
	b, err := gjson.Marshal(g)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ListRoutes returns every route without its jobs.
func ListRoutes(c *gin.Context) {
	var routes []models.Route
	if err := config.DB.Order("route_no ASC").Find(&routes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing routes: " + err.Error()})
		return
	}

	routeResponses := make([]RouteResponse, 0, len(routes))
	for _, r := range routes {
		routeResponses = append(routeResponses, toRouteResponse(r))
	}
	c.JSON(http.StatusOK, gin.H{"data": routeResponses})
}

// GetRoute returns one route with its jobs and their stops.
func GetRoute(c *gin.Context) {
	var route models.Route
	err := config.DB.
		Preload("Jobs").
		Preload("Jobs.Stops", func(db *gorm.DB) *gorm.DB { return db.Order("seq ASC") }).
		Preload("Jobs.Driver").
		Preload("Jobs.Vehicle").
		Where("route_no = ?", c.Param("route_no")).
		First(&route).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
		} else {
			logrus.WithError(err).Error("GetRoute: database error")
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": toRouteResponse(route)})
}

// UpdateRouteGeometry replaces the route's path. An empty geometry clears it.
func UpdateRouteGeometry(c *gin.Context) {
	var input struct {
		Geometry *string `json:"geometry" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("UpdateRouteGeometry: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var route models.Route
	if err := config.DB.Where("route_no = ?", c.Param("route_no")).First(&route).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	wkbGeom, err := parseAndConvertGeometry(*input.Geometry)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid geometry: " + err.Error()})
		return
	}
	route.Geometry = wkbGeom

	if err := config.DB.Model(&route).Update("geometry", route.Geometry).Error; err != nil {
		logrus.WithError(err).Error("UpdateRouteGeometry: failed to save route")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": toRouteResponse(route)})
}
