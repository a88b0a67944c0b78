package routes

import (
	"github.com/labstack/echo/v4"

	"inventory-system/internal/controllers"
)

func runRepairRouter(g *echo.Group, ctrl *controllers.RepairController) {
	g.GET("/repairs", ctrl.GetRepairs)
	g.GET("/repairs/:id", ctrl.FindRepair)
	g.PUT("/repairs/:id", ctrl.UpdateRepair)
}
