package routes

import (
	"github.com/labstack/echo/v4"

	"inventory-system/internal/controllers"
)

func runDisposalRouter(g *echo.Group, ctrl *controllers.DisposalController) {
	g.GET("/disposals", ctrl.GetDisposals)
	g.GET("/disposals/:id", ctrl.FindDisposal)
	g.PUT("/disposals/:id", ctrl.UpdateDisposal)
}
