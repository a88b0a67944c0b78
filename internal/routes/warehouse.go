package routes

import (
	"github.com/labstack/echo/v4"

	"inventory-system/internal/controllers"
)

func runWarehouseRouter(g *echo.Group, ctrl *controllers.WarehouseController) {
	g.GET("/warehouses", ctrl.GetWarehouses)
	g.GET("/warehouses/main", ctrl.GetMainWarehouse)
	g.GET("/warehouses/:id", ctrl.FindWarehouse)
	g.POST("/warehouses", ctrl.CreateWarehouse)
	g.PUT("/warehouses/:id", ctrl.UpdateWarehouse)
	g.POST("/warehouses/:id/set-main", ctrl.SetMainWarehouse)
	g.DELETE("/warehouses/:id", ctrl.DeleteWarehouse)
}
