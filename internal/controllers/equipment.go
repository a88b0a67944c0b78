package controllers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventory-system/internal/dto"
	"inventory-system/internal/services"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/utils"
)

type EquipmentController struct {
	equipmentService services.EquipmentServiceInterface
	lifecycleService services.LifecycleServiceInterface
	importService    services.EquipmentImportServiceInterface
	logger           *zap.Logger
}

func NewEquipmentController(
	equipmentService services.EquipmentServiceInterface,
	lifecycleService services.LifecycleServiceInterface,
	importService services.EquipmentImportServiceInterface,
	logger *zap.Logger,
) *EquipmentController {
	return &EquipmentController{
		equipmentService: equipmentService,
		lifecycleService: lifecycleService,
		importService:    importService,
		logger:           logger,
	}
}

func parseIDParam(ctx echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil {
		return 0, apperrors.NewHttpError(http.StatusBadRequest, "Некорректный ID", apperrors.ErrBadRequest, nil)
	}
	return id, nil
}

func (c *EquipmentController) GetEquipments(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	filter := utils.ParseFilterFromQuery(ctx.QueryParams())

	equipments, total, err := c.equipmentService.GetEquipments(reqCtx, filter)
	if err != nil {
		c.logger.Error("Ошибка при получении списка оборудования", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, equipments, "Список оборудования успешно получен", http.StatusOK, total)
}

func (c *EquipmentController) FindEquipment(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipmentService.FindEquipment(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Оборудование успешно найдено", http.StatusOK)
}

// ScanEquipment - поиск по коду со стикера (инвентарный номер или uid).
func (c *EquipmentController) ScanEquipment(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	code := ctx.Param("code")

	res, err := c.equipmentService.ScanEquipment(reqCtx, code)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Оборудование успешно найдено", http.StatusOK)
}

func (c *EquipmentController) CreateEquipment(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	var payload dto.CreateEquipmentDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipmentService.CreateEquipment(reqCtx, payload)
	if err != nil {
		c.logger.Error("Ошибка при создании оборудования", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Оборудование успешно создано", http.StatusCreated)
}

func (c *EquipmentController) BulkCreateEquipment(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	var payload dto.BulkCreateEquipmentDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipmentService.BulkCreateEquipment(reqCtx, payload)
	if err != nil {
		c.logger.Error("Ошибка массового создания оборудования", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Партия оборудования успешно создана", http.StatusCreated)
}

func (c *EquipmentController) UpdateEquipment(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateEquipmentDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipmentService.UpdateEquipment(reqCtx, id, payload)
	if err != nil {
		c.logger.Error("Ошибка при обновлении оборудования", zap.Error(err), zap.Uint64("id", id))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Оборудование успешно обновлено", http.StatusOK)
}

func (c *EquipmentController) BulkUpdateInns(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	var payload dto.BulkEquipmentInnUpdateDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.equipmentService.BulkUpdateInns(reqCtx, payload); err != nil {
		c.logger.Error("Ошибка массового обновления инвентарных номеров", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, nil, "Инвентарные номера успешно обновлены", http.StatusOK)
}

// TransitionEquipment - единственная точка смены статуса оборудования.
func (c *EquipmentController) TransitionEquipment(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.TransitionEquipmentDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.lifecycleService.RequestTransition(reqCtx, id, payload)
	if err != nil {
		c.logger.Warn("Переход статуса отклонен", zap.Error(err), zap.Uint64("id", id), zap.String("target", payload.Status))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Статус оборудования успешно изменен", http.StatusOK)
}

// ForceInUse - административный перевод в эксплуатацию из любого статуса.
// Маршрут закрыт административным ключом.
func (c *EquipmentController) ForceInUse(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload struct {
		RoomID *uint64 `json:"room_id"`
	}
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных", err, nil), c.logger)
	}

	res, err := c.lifecycleService.ForceInUse(reqCtx, id, payload.RoomID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Оборудование принудительно переведено в эксплуатацию", http.StatusOK)
}

func (c *EquipmentController) DeactivateEquipment(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.equipmentService.DeactivateEquipment(reqCtx, id); err != nil {
		c.logger.Error("Ошибка при деактивации оборудования", zap.Error(err), zap.Uint64("id", id))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ImportEquipment принимает xlsx-ведомость и создает оборудование пакетно.
func (c *EquipmentController) ImportEquipment(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Файл не был передан", err, nil), c.logger)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusInternalServerError, "Ошибка обработки файла", err, nil), c.logger)
	}
	defer src.Close()

	tmpPath := filepath.Join(os.TempDir(), fmt.Sprintf("import-%d.xlsx", time.Now().UnixNano()))
	dst, err := os.Create(tmpPath)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusInternalServerError, "Ошибка обработки файла", err, nil), c.logger)
	}
	defer os.Remove(tmpPath)

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusInternalServerError, "Ошибка обработки файла", err, nil), c.logger)
	}
	dst.Close()

	summary, err := c.importService.ImportEquipment(reqCtx, tmpPath)
	if err != nil {
		c.logger.Error("Ошибка импорта ведомости", zap.Error(err), zap.String("file", fileHeader.Filename))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, summary, "Импорт завершен", http.StatusOK)
}
