package routes

import (
	"github.com/labstack/echo/v4"

	"inventory-system/internal/controllers"
	"inventory-system/pkg/middleware"
)

func runEquipmentRouter(g *echo.Group, ctrl *controllers.EquipmentController, adminGate *middleware.AdminGate) {
	g.GET("/equipments", ctrl.GetEquipments)
	g.GET("/equipments/:id", ctrl.FindEquipment)
	g.GET("/equipments/scan/:code", ctrl.ScanEquipment)
	g.POST("/equipments", ctrl.CreateEquipment)
	g.POST("/equipments/bulk", ctrl.BulkCreateEquipment)
	g.POST("/equipments/import", ctrl.ImportEquipment)
	g.PUT("/equipments/:id", ctrl.UpdateEquipment)
	g.PUT("/equipments/inns", ctrl.BulkUpdateInns)
	g.POST("/equipments/:id/transition", ctrl.TransitionEquipment)
	g.DELETE("/equipments/:id", ctrl.DeactivateEquipment)

	// Служебный маршрут миграции данных: переводит в эксплуатацию из любого
	// статуса, минуя таблицу переходов.
	g.POST("/equipments/:id/force-in-use", ctrl.ForceInUse, adminGate.Require)
}
