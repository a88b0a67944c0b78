package routes

import (
	"github.com/labstack/echo/v4"

	"inventory-system/internal/controllers"
)

func runRoomRouter(g *echo.Group, ctrl *controllers.RoomController) {
	g.GET("/rooms", ctrl.GetRooms)
	g.GET("/rooms/:id", ctrl.FindRoom)
}
