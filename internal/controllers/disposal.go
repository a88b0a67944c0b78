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

type DisposalController struct {
	disposalService services.DisposalServiceInterface
	logger          *zap.Logger
}

func NewDisposalController(
	disposalService services.DisposalServiceInterface,
	logger *zap.Logger,
) *DisposalController {
	return &DisposalController{
		disposalService: disposalService,
		logger:          logger,
	}
}

func (c *DisposalController) GetDisposals(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	filter := utils.ParseFilterFromQuery(ctx.QueryParams())

	disposals, total, err := c.disposalService.GetDisposals(reqCtx, filter)
	if err != nil {
		c.logger.Error("Ошибка при получении списка утилизаций", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, disposals, "Список утилизаций успешно получен", http.StatusOK, total)
}

func (c *DisposalController) FindDisposal(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.disposalService.FindDisposal(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Акт утилизации успешно найден", http.StatusOK)
}

// UpdateDisposal - только примечания; остальное неизменяемо.
func (c *DisposalController) UpdateDisposal(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateDisposalDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных", err, nil), c.logger)
	}

	res, err := c.disposalService.UpdateDisposal(reqCtx, id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Акт утилизации успешно обновлен", http.StatusOK)
}
