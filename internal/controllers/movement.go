package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-system/internal/services"
	"inventory-system/pkg/utils"
)

type MovementController struct {
	movementService services.MovementServiceInterface
	logger          *zap.Logger
}

func NewMovementController(
	movementService services.MovementServiceInterface,
	logger *zap.Logger,
) *MovementController {
	return &MovementController{
		movementService: movementService,
		logger:          logger,
	}
}

func (c *MovementController) GetMovements(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	filter := utils.ParseFilterFromQuery(ctx.QueryParams())

	movements, total, err := c.movementService.GetMovements(reqCtx, filter)
	if err != nil {
		c.logger.Error("Ошибка при получении истории перемещений", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, movements, "История перемещений успешно получена", http.StatusOK, total)
}

// GetByEquipment - история перемещений одной единицы, от новых к старым.
func (c *MovementController) GetByEquipment(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	equipmentID, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	movements, err := c.movementService.GetByEquipment(reqCtx, equipmentID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, movements, "История перемещений успешно получена", http.StatusOK)
}
