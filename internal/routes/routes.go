package routes

import (
	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"

	"crown_transport/internal/controllers"
)

// SetupRouter wires every endpoint. It does not start listening.
func SetupRouter(schedule *controllers.ScheduleController, invoices *controllers.InvoiceController) *gin.Engine {
	controllers.RegisterValidators()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(ginlog.SetLogger(
		ginlog.WithUTC(true),
		ginlog.WithSkipPath([]string{"/healthz"}),
	))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	AuthRoutes(r)
	AdminRoutes(r, schedule, invoices)

	return r
}
