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

type EquipmentTypeController struct {
	equipmentTypeService services.EquipmentTypeServiceInterface
	logger               *zap.Logger
}

func NewEquipmentTypeController(
	equipmentTypeService services.EquipmentTypeServiceInterface,
	logger *zap.Logger,
) *EquipmentTypeController {
	return &EquipmentTypeController{
		equipmentTypeService: equipmentTypeService,
		logger:               logger,
	}
}

func (c *EquipmentTypeController) GetEquipmentTypes(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	filter := utils.ParseFilterFromQuery(ctx.QueryParams())

	equipmentTypes, total, err := c.equipmentTypeService.GetEquipmentTypes(reqCtx, filter)
	if err != nil {
		c.logger.Error("Ошибка при получении списка типов оборудования", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, equipmentTypes, "Список типов оборудования успешно получен", http.StatusOK, total)
}

func (c *EquipmentTypeController) FindEquipmentType(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipmentTypeService.FindEquipmentType(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Тип оборудования успешно найден", http.StatusOK)
}

func (c *EquipmentTypeController) CreateEquipmentType(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	var payload dto.CreateEquipmentTypeDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipmentTypeService.CreateEquipmentType(reqCtx, payload)
	if err != nil {
		c.logger.Error("Ошибка при создании типа оборудования", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Тип оборудования успешно создан", http.StatusCreated)
}

func (c *EquipmentTypeController) UpdateEquipmentType(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateEquipmentTypeDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipmentTypeService.UpdateEquipmentType(reqCtx, id, payload)
	if err != nil {
		c.logger.Error("Ошибка при обновлении типа оборудования", zap.Error(err), zap.Uint64("id", id))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Тип оборудования успешно обновлен", http.StatusOK)
}

func (c *EquipmentTypeController) DeleteEquipmentType(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.equipmentTypeService.DeleteEquipmentType(reqCtx, id); err != nil {
		c.logger.Error("Ошибка при удалении типа оборудования", zap.Error(err), zap.Uint64("id", id))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return ctx.NoContent(http.StatusNoContent)
}
