package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
	"inventory-system/internal/repositories"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/types"
	"inventory-system/pkg/utils"
)

const mainWarehouseCacheKey = "warehouse:main"

type WarehouseServiceInterface interface {
	GetWarehouses(ctx context.Context, filter types.Filter) ([]dto.WarehouseDTO, uint64, error)
	FindWarehouse(ctx context.Context, id uint64) (*dto.WarehouseDTO, error)
	GetMain(ctx context.Context) (*dto.WarehouseDTO, error)
	CreateWarehouse(ctx context.Context, payload dto.CreateWarehouseDTO) (*dto.WarehouseDTO, error)
	UpdateWarehouse(ctx context.Context, id uint64, payload dto.UpdateWarehouseDTO) (*dto.WarehouseDTO, error)
	SetMain(ctx context.Context, id uint64) (*dto.WarehouseDTO, error)
	DeleteWarehouse(ctx context.Context, id uint64) error
}

type WarehouseService struct {
	pool          *pgxpool.Pool
	warehouseRepo repositories.WarehouseRepositoryInterface
	cacheRepo     repositories.CacheRepositoryInterface
	logger        *zap.Logger
	cacheTTL      time.Duration
}

func NewWarehouseService(
	pool *pgxpool.Pool,
	warehouseRepo repositories.WarehouseRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	logger *zap.Logger,
	cacheTTL time.Duration,
) WarehouseServiceInterface {
	return &WarehouseService{
		pool:          pool,
		warehouseRepo: warehouseRepo,
		cacheRepo:     cacheRepo,
		logger:        logger,
		cacheTTL:      cacheTTL,
	}
}

func warehouseToDTO(w *entities.Warehouse) *dto.WarehouseDTO {
	return &dto.WarehouseDTO{
		ID:          w.ID,
		Name:        w.Name,
		Address:     w.Address,
		Description: w.Description,
		IsMain:      w.IsMain,
		UID:         w.UID,
		CreatedAt:   utils.PtrTimeToString(w.CreatedAt),
		UpdatedAt:   utils.PtrTimeToString(w.UpdatedAt),
	}
}

func (s *WarehouseService) GetWarehouses(ctx context.Context, filter types.Filter) ([]dto.WarehouseDTO, uint64, error) {
	warehouses, total, err := s.warehouseRepo.GetWarehouses(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.WarehouseDTO, 0, len(warehouses))
	for i := range warehouses {
		result = append(result, *warehouseToDTO(&warehouses[i]))
	}
	return result, total, nil
}

func (s *WarehouseService) FindWarehouse(ctx context.Context, id uint64) (*dto.WarehouseDTO, error) {
	warehouse, err := s.warehouseRepo.FindWarehouse(ctx, id)
	if err != nil {
		return nil, err
	}
	return warehouseToDTO(warehouse), nil
}

// GetMain возвращает главный склад, сперва пробуя кеш. Отсутствие главного
// склада - видимая пользователю ошибка конфигурации, не no-op.
func (s *WarehouseService) GetMain(ctx context.Context) (*dto.WarehouseDTO, error) {
	if cached, err := s.cacheRepo.Get(ctx, mainWarehouseCacheKey); err == nil {
		var warehouse dto.WarehouseDTO
		if err := json.Unmarshal([]byte(cached), &warehouse); err == nil {
			return &warehouse, nil
		}
		s.logger.Warn("поврежденная запись главного склада в кеше", zap.String("key", mainWarehouseCacheKey))
	}

	warehouse, err := s.warehouseRepo.GetMain(ctx)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.ErrNoMainWarehouse
	}
	if err != nil {
		return nil, err
	}

	result := warehouseToDTO(warehouse)
	if raw, err := json.Marshal(result); err == nil {
		if err := s.cacheRepo.Set(ctx, mainWarehouseCacheKey, string(raw), s.cacheTTL); err != nil {
			s.logger.Warn("не удалось закешировать главный склад", zap.Error(err))
		}
	}
	return result, nil
}

func (s *WarehouseService) invalidateMainCache(ctx context.Context) {
	if err := s.cacheRepo.Del(ctx, mainWarehouseCacheKey); err != nil {
		s.logger.Warn("не удалось инвалидировать кеш главного склада", zap.Error(err))
	}
}

func (s *WarehouseService) CreateWarehouse(ctx context.Context, payload dto.CreateWarehouseDTO) (*dto.WarehouseDTO, error) {
	// Вставка всегда идет с is_main = false: частичный уникальный индекс
	// на warehouses проверяется на каждом операторе, и вставка второго
	// главного склада упала бы до снятия признака со старого. SetMain в той
	// же транзакции снимает признак и ставит новый.
	warehouse := entities.Warehouse{
		Name:        payload.Name,
		Address:     payload.Address,
		Description: payload.Description,
		IsMain:      false,
		UID:         uuid.NewString(),
	}

	var newID uint64
	err := repositories.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		var err error
		newID, err = s.warehouseRepo.CreateWarehouse(ctx, tx, warehouse)
		if err != nil {
			return err
		}
		if payload.IsMain {
			return s.warehouseRepo.SetMain(ctx, tx, newID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if payload.IsMain {
		s.invalidateMainCache(ctx)
	}
	return s.FindWarehouse(ctx, newID)
}

func (s *WarehouseService) UpdateWarehouse(ctx context.Context, id uint64, payload dto.UpdateWarehouseDTO) (*dto.WarehouseDTO, error) {
	current, err := s.warehouseRepo.FindWarehouse(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.Name != nil {
		current.Name = *payload.Name
	}
	if payload.Address != nil {
		current.Address = *payload.Address
	}
	if payload.Description != nil {
		current.Description = *payload.Description
	}

	err = repositories.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		return s.warehouseRepo.UpdateWarehouse(ctx, tx, id, *current)
	})
	if err != nil {
		return nil, err
	}

	if current.IsMain {
		s.invalidateMainCache(ctx)
	}
	return s.FindWarehouse(ctx, id)
}

// SetMain назначает склад главным. Флаг с предыдущего главного снимается
// в той же транзакции: два главных склада не наблюдаемы даже мгновение.
func (s *WarehouseService) SetMain(ctx context.Context, id uint64) (*dto.WarehouseDTO, error) {
	err := repositories.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		return s.warehouseRepo.SetMain(ctx, tx, id)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateMainCache(ctx)
	s.logger.Info("назначен главный склад", zap.Uint64("warehouse_id", id))
	return s.FindWarehouse(ctx, id)
}

// DeleteWarehouse удаляет склад. Главный склад удалить нельзя: сперва
// назначьте главным другой.
func (s *WarehouseService) DeleteWarehouse(ctx context.Context, id uint64) error {
	warehouse, err := s.warehouseRepo.FindWarehouse(ctx, id)
	if err != nil {
		return err
	}
	if warehouse.IsMain {
		return apperrors.NewInvalidInputError("нельзя удалить главный склад")
	}
	return s.warehouseRepo.DeleteWarehouse(ctx, id)
}
