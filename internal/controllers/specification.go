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

type SpecificationController struct {
	specificationService services.SpecificationServiceInterface
	logger               *zap.Logger
}

func NewSpecificationController(
	specificationService services.SpecificationServiceInterface,
	logger *zap.Logger,
) *SpecificationController {
	return &SpecificationController{
		specificationService: specificationService,
		logger:               logger,
	}
}

func (c *SpecificationController) GetSpecifications(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	filter := utils.ParseFilterFromQuery(ctx.QueryParams())

	specs, total, err := c.specificationService.GetSpecifications(reqCtx, filter)
	if err != nil {
		c.logger.Error("Ошибка при получении списка спецификаций", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, specs, "Список спецификаций успешно получен", http.StatusOK, total)
}

// GetByType - спецификации одного типа оборудования.
func (c *SpecificationController) GetByType(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	typeID, err := parseIDParam(ctx, "typeId")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	specs, err := c.specificationService.GetByType(reqCtx, typeID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, specs, "Спецификации типа успешно получены", http.StatusOK)
}

// GetSpecKeys - подсказки ключей характеристик для типа оборудования.
func (c *SpecificationController) GetSpecKeys(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	typeID, err := parseIDParam(ctx, "typeId")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	keys, err := c.specificationService.GetSpecKeys(reqCtx, typeID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, keys, "Ключи характеристик успешно получены", http.StatusOK)
}

func (c *SpecificationController) FindSpecification(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.specificationService.FindSpecification(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Спецификация успешно найдена", http.StatusOK)
}

func (c *SpecificationController) CreateSpecification(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	var payload dto.CreateSpecificationDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.specificationService.CreateSpecification(reqCtx, payload)
	if err != nil {
		c.logger.Error("Ошибка при создании спецификации", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Спецификация успешно создана", http.StatusCreated)
}

func (c *SpecificationController) UpdateSpecification(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateSpecificationDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.specificationService.UpdateSpecification(reqCtx, id, payload)
	if err != nil {
		c.logger.Error("Ошибка при обновлении спецификации", zap.Error(err), zap.Uint64("id", id))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Спецификация успешно обновлена", http.StatusOK)
}

func (c *SpecificationController) DeleteSpecification(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.specificationService.DeleteSpecification(reqCtx, id); err != nil {
		c.logger.Error("Ошибка при удалении спецификации", zap.Error(err), zap.Uint64("id", id))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return ctx.NoContent(http.StatusNoContent)
}
