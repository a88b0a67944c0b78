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

type WarehouseController struct {
	warehouseService services.WarehouseServiceInterface
	logger           *zap.Logger
}

func NewWarehouseController(
	warehouseService services.WarehouseServiceInterface,
	logger *zap.Logger,
) *WarehouseController {
	return &WarehouseController{
		warehouseService: warehouseService,
		logger:           logger,
	}
}

func (c *WarehouseController) GetWarehouses(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	filter := utils.ParseFilterFromQuery(ctx.QueryParams())

	warehouses, total, err := c.warehouseService.GetWarehouses(reqCtx, filter)
	if err != nil {
		c.logger.Error("Ошибка при получении списка складов", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, warehouses, "Список складов успешно получен", http.StatusOK, total)
}

func (c *WarehouseController) FindWarehouse(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.warehouseService.FindWarehouse(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Склад успешно найден", http.StatusOK)
}

// GetMainWarehouse отдает главный склад; его отсутствие - ошибка
// конфигурации, видимая пользователю.
func (c *WarehouseController) GetMainWarehouse(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	res, err := c.warehouseService.GetMain(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Главный склад успешно получен", http.StatusOK)
}

func (c *WarehouseController) CreateWarehouse(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	var payload dto.CreateWarehouseDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.warehouseService.CreateWarehouse(reqCtx, payload)
	if err != nil {
		c.logger.Error("Ошибка при создании склада", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Склад успешно создан", http.StatusCreated)
}

func (c *WarehouseController) UpdateWarehouse(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateWarehouseDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.warehouseService.UpdateWarehouse(reqCtx, id, payload)
	if err != nil {
		c.logger.Error("Ошибка при обновлении склада", zap.Error(err), zap.Uint64("id", id))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Склад успешно обновлен", http.StatusOK)
}

// SetMainWarehouse атомарно переназначает главный склад.
func (c *WarehouseController) SetMainWarehouse(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.warehouseService.SetMain(reqCtx, id)
	if err != nil {
		c.logger.Error("Ошибка при назначении главного склада", zap.Error(err), zap.Uint64("id", id))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Главный склад успешно назначен", http.StatusOK)
}

func (c *WarehouseController) DeleteWarehouse(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.warehouseService.DeleteWarehouse(reqCtx, id); err != nil {
		c.logger.Error("Ошибка при удалении склада", zap.Error(err), zap.Uint64("id", id))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return ctx.NoContent(http.StatusNoContent)
}
