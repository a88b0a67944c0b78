package routes

import (
	"github.com/labstack/echo/v4"

	"inventory-system/internal/controllers"
)

func runEquipmentTypeRouter(g *echo.Group, ctrl *controllers.EquipmentTypeController) {
	g.GET("/equipment-types", ctrl.GetEquipmentTypes)
	g.GET("/equipment-types/:id", ctrl.FindEquipmentType)
	g.POST("/equipment-types", ctrl.CreateEquipmentType)
	g.PUT("/equipment-types/:id", ctrl.UpdateEquipmentType)
	g.DELETE("/equipment-types/:id", ctrl.DeleteEquipmentType)
}
