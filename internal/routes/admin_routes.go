package routes

import (
	"github.com/gin-gonic/gin"

	"crown_transport/internal/controllers"
	"crown_transport/internal/middleware"
)

func AdminRoutes(r *gin.Engine, schedule *controllers.ScheduleController, invoices *controllers.InvoiceController) {
	admin := r.Group("/admin")
	admin.Use(middleware.RequireAuthWithRole("admin"))
	{
		admin.GET("/drivers", controllers.ListDrivers)
		admin.GET("/vehicles", controllers.ListVehicles)

		admin.GET("/routes", controllers.ListRoutes)
		admin.GET("/routes/:route_no", controllers.GetRoute)
		admin.PUT("/routes/:route_no/geometry", controllers.UpdateRouteGeometry)
		admin.GET("/routes/:route_no/pickups", schedule.ListPickups)
		admin.POST("/routes/:route_no/invoices/preview", invoices.Preview)

		admin.POST("/invoices/:draft/finalize", invoices.Finalize)
		admin.POST("/invoices/:draft/cancel", invoices.Cancel)
	}
}
