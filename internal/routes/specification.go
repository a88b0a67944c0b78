package routes

import (
	"github.com/labstack/echo/v4"

	"inventory-system/internal/controllers"
)

func runSpecificationRouter(g *echo.Group, ctrl *controllers.SpecificationController) {
	g.GET("/specifications", ctrl.GetSpecifications)
	g.GET("/specifications/:id", ctrl.FindSpecification)
	g.GET("/specifications/by-type/:typeId", ctrl.GetByType)
	g.GET("/specifications/keys/:typeId", ctrl.GetSpecKeys)
	g.POST("/specifications", ctrl.CreateSpecification)
	g.PUT("/specifications/:id", ctrl.UpdateSpecification)
	g.DELETE("/specifications/:id", ctrl.DeleteSpecification)
}
