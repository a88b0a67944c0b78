package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-system/internal/dto"
	"inventory-system/internal/services"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/utils"
)

type RepairController struct {
	repairService services.RepairServiceInterface
	logger        *zap.Logger
}

func NewRepairController(
	repairService services.RepairServiceInterface,
	logger *zap.Logger,
) *RepairController {
	return &RepairController{
		repairService: repairService,
		logger:        logger,
	}
}

func (c *RepairController) GetRepairs(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	filter := utils.ParseFilterFromQuery(ctx.QueryParams())

	repairs, total, err := c.repairService.GetRepairs(reqCtx, filter)
	if err != nil {
		c.logger.Error("Ошибка при получении списка ремонтов", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, repairs, "Список ремонтов успешно получен", http.StatusOK, total)
}

func (c *RepairController) FindRepair(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.repairService.FindRepair(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Запись о ремонте успешно найдена", http.StatusOK)
}

// UpdateRepair двигает работы по эпизоду. Завершение ремонта оформляется
// переводом оборудования, не этим маршрутом.
func (c *RepairController) UpdateRepair(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateRepairDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.repairService.UpdateRepair(reqCtx, id, payload)
	if err != nil {
		c.logger.Warn("Обновление записи о ремонте отклонено", zap.Error(err), zap.Uint64("id", id))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Запись о ремонте успешно обновлена", http.StatusOK)
}
