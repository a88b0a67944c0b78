package routes

import (
	"github.com/labstack/echo/v4"

	"inventory-system/internal/controllers"
)

func runMovementRouter(g *echo.Group, ctrl *controllers.MovementController) {
	g.GET("/movements", ctrl.GetMovements)
	g.GET("/equipments/:id/movements", ctrl.GetByEquipment)
}
