package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-system/internal/services"
	"inventory-system/pkg/utils"
)

type RoomController struct {
	roomService services.RoomServiceInterface
	logger      *zap.Logger
}

func NewRoomController(roomService services.RoomServiceInterface, logger *zap.Logger) *RoomController {
	return &RoomController{roomService: roomService, logger: logger}
}

func (c *RoomController) GetRooms(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	filter := utils.ParseFilterFromQuery(ctx.QueryParams())

	rooms, total, err := c.roomService.GetRooms(reqCtx, filter)
	if err != nil {
		c.logger.Error("Ошибка при получении списка кабинетов", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, rooms, "Список кабинетов успешно получен", http.StatusOK, total)
}

func (c *RoomController) FindRoom(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.roomService.FindRoom(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Кабинет успешно найден", http.StatusOK)
}
