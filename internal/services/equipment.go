package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
	"inventory-system/internal/repositories"
	"inventory-system/pkg/constants"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/types"
)

type EquipmentServiceInterface interface {
	GetEquipments(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error)
	FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentDTO, error)
	ScanEquipment(ctx context.Context, code string) (*dto.EquipmentDTO, error)
	CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error)
	BulkCreateEquipment(ctx context.Context, payload dto.BulkCreateEquipmentDTO) ([]dto.EquipmentDTO, error)
	UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error)
	BulkUpdateInns(ctx context.Context, payload dto.BulkEquipmentInnUpdateDTO) error
	DeactivateEquipment(ctx context.Context, id uint64) error
}

type EquipmentService struct {
	pool              *pgxpool.Pool
	equipmentRepo     repositories.EquipmentRepositoryInterface
	typeRepo          repositories.EquipmentTypeRepositoryInterface
	specificationRepo repositories.SpecificationRepositoryInterface
	warehouseService  WarehouseServiceInterface
	logger            *zap.Logger
}

func NewEquipmentService(
	pool *pgxpool.Pool,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	typeRepo repositories.EquipmentTypeRepositoryInterface,
	specificationRepo repositories.SpecificationRepositoryInterface,
	warehouseService WarehouseServiceInterface,
	logger *zap.Logger,
) EquipmentServiceInterface {
	return &EquipmentService{
		pool:              pool,
		equipmentRepo:     equipmentRepo,
		typeRepo:          typeRepo,
		specificationRepo: specificationRepo,
		warehouseService:  warehouseService,
		logger:            logger,
	}
}

func (s *EquipmentService) GetEquipments(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error) {
	return s.equipmentRepo.GetEquipments(ctx, filter)
}

func (s *EquipmentService) FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentDTO, error) {
	return s.equipmentRepo.FindEquipment(ctx, id)
}

// ScanEquipment ищет единицу по коду со стикера: сначала по инвентарному
// номеру, затем по uid.
func (s *EquipmentService) ScanEquipment(ctx context.Context, code string) (*dto.EquipmentDTO, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, apperrors.NewInvalidInputError("пустой код сканирования")
	}
	return s.equipmentRepo.FindByInnOrUID(ctx, code)
}

// prepareNewEquipment собирает заготовку новой единицы: тип обязателен,
// характеристики снимаются со спецификации, размещение - всегда главный
// склад, независимо от того, что прислал клиент.
func (s *EquipmentService) prepareNewEquipment(ctx context.Context, typeID uint64, specificationID *uint64, name, description, inn string) (*entities.Equipment, error) {
	if _, err := s.typeRepo.FindEquipmentType(ctx, typeID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewInvalidInputError("тип оборудования %d не найден", typeID)
		}
		return nil, err
	}

	var specs map[string]interface{}
	if specificationID != nil {
		specification, err := s.specificationRepo.FindSpecification(ctx, *specificationID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewInvalidInputError("спецификация %d не найдена", *specificationID)
			}
			return nil, err
		}
		if specification.TypeID != typeID {
			return nil, apperrors.NewInvalidInputError("спецификация %d относится к другому типу оборудования", *specificationID)
		}
		specs = specification.Specs
	}
	if specs == nil {
		specs = map[string]interface{}{}
	}

	mainWarehouse, err := s.warehouseService.GetMain(ctx)
	if err != nil {
		return nil, err
	}
	warehouseID := mainWarehouse.ID

	return &entities.Equipment{
		TypeID:      typeID,
		WarehouseID: &warehouseID,
		Name:        name,
		Description: description,
		Status:      constants.StatusInStock,
		Inn:         inn,
		UID:         uuid.NewString(),
		Specs:       specs,
		IsActive:    true,
	}, nil
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error) {
	var specificationID *uint64
	if payload.SpecificationID.Valid {
		specificationID = &payload.SpecificationID.Uint64
	}

	if payload.Inn != "" {
		taken, err := s.equipmentRepo.ExistingInns(ctx, []string{payload.Inn})
		if err != nil {
			return nil, err
		}
		if len(taken) > 0 {
			return nil, apperrors.NewInvalidInputError("инвентарный номер '%s' уже занят", payload.Inn)
		}
	}

	equipment, err := s.prepareNewEquipment(ctx, payload.TypeID, specificationID, payload.Name, payload.Description, payload.Inn)
	if err != nil {
		return nil, err
	}

	var newID uint64
	err = repositories.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		newID, err = s.equipmentRepo.CreateEquipment(ctx, tx, *equipment)
		return err
	})
	if err != nil {
		s.logger.Error("ошибка при создании оборудования", zap.Error(err))
		return nil, err
	}

	s.logger.Info("оборудование создано", zap.Uint64("id", newID), zap.String("name", equipment.Name))
	return s.equipmentRepo.FindEquipment(ctx, newID)
}

// BulkCreateEquipment создает партию одинаковых единиц. Батч атомарен:
// любая ошибка откатывает все созданное.
func (s *EquipmentService) BulkCreateEquipment(ctx context.Context, payload dto.BulkCreateEquipmentDTO) ([]dto.EquipmentDTO, error) {
	if err := s.validateBatchInns(ctx, payload.Inns, payload.Count); err != nil {
		return nil, err
	}

	var specificationID *uint64
	if payload.SpecificationID.Valid {
		specificationID = &payload.SpecificationID.Uint64
	}

	// Снимок характеристик берется один раз на весь батч.
	template, err := s.prepareNewEquipment(ctx, payload.TypeID, specificationID, payload.Name, "", "")
	if err != nil {
		return nil, err
	}

	ids := make([]uint64, 0, payload.Count)
	err = repositories.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		for i := 0; i < payload.Count; i++ {
			item := *template
			item.UID = uuid.NewString()
			if payload.Count > 1 {
				item.Name = fmt.Sprintf("%s #%d", payload.Name, i+1)
			}
			if len(payload.Inns) > 0 {
				item.Inn = payload.Inns[i]
			}

			newID, err := s.equipmentRepo.CreateEquipment(ctx, tx, item)
			if err != nil {
				return err
			}
			ids = append(ids, newID)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("ошибка массового создания оборудования", zap.Error(err), zap.Int("count", payload.Count))
		return nil, err
	}

	s.logger.Info("партия оборудования создана", zap.Int("count", len(ids)))

	result := make([]dto.EquipmentDTO, 0, len(ids))
	for _, id := range ids {
		item, err := s.equipmentRepo.FindEquipment(ctx, id)
		if err != nil {
			return nil, err
		}
		result = append(result, *item)
	}
	return result, nil
}

// validateBatchInns проверяет весь список номеров до записи: количество,
// дубли внутри батча и коллизии с существующими.
func (s *EquipmentService) validateBatchInns(ctx context.Context, inns []string, count int) error {
	if len(inns) == 0 {
		return nil
	}
	if len(inns) != count {
		return apperrors.NewInvalidInputError("количество инвентарных номеров (%d) не совпадает с количеством единиц (%d)", len(inns), count)
	}

	seen := make(map[string]bool, len(inns))
	for _, inn := range inns {
		if inn == "" {
			continue
		}
		if seen[inn] {
			return apperrors.NewInvalidInputError("инвентарный номер '%s' повторяется в батче", inn)
		}
		seen[inn] = true
	}

	taken, err := s.equipmentRepo.ExistingInns(ctx, inns)
	if err != nil {
		return err
	}
	if len(taken) > 0 {
		return apperrors.NewInvalidInputError("инвентарные номера уже заняты: %s", strings.Join(taken, ", "))
	}
	return nil
}

func (s *EquipmentService) UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error) {
	if payload.Inn != nil && *payload.Inn != "" {
		taken, err := s.equipmentRepo.InnsTakenByOthers(ctx, []dto.EquipmentInnPairDTO{{ID: id, Inn: *payload.Inn}})
		if err != nil {
			return nil, err
		}
		if len(taken) > 0 {
			return nil, apperrors.NewInvalidInputError("инвентарный номер '%s' уже занят", *payload.Inn)
		}
	}

	err := repositories.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		return s.equipmentRepo.UpdateEquipment(ctx, tx, id, payload)
	})
	if err != nil {
		return nil, err
	}

	return s.equipmentRepo.FindEquipment(ctx, id)
}

// BulkUpdateInns массово проставляет инвентарные номера. Атомарно: либо
// все пары применены, либо ни одна.
func (s *EquipmentService) BulkUpdateInns(ctx context.Context, payload dto.BulkEquipmentInnUpdateDTO) error {
	seen := make(map[string]bool, len(payload.EquipmentInns))
	for _, pair := range payload.EquipmentInns {
		if seen[pair.Inn] {
			return apperrors.NewInvalidInputError("инвентарный номер '%s' повторяется в запросе", pair.Inn)
		}
		seen[pair.Inn] = true
	}

	taken, err := s.equipmentRepo.InnsTakenByOthers(ctx, payload.EquipmentInns)
	if err != nil {
		return err
	}
	if len(taken) > 0 {
		return apperrors.NewInvalidInputError("инвентарные номера уже заняты: %s", strings.Join(taken, ", "))
	}

	return repositories.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		for _, pair := range payload.EquipmentInns {
			if err := s.equipmentRepo.UpdateInn(ctx, tx, pair.ID, pair.Inn); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeactivateEquipment скрывает единицу из списков. Физическое удаление
// не поддерживается: журналы должны остаться связными.
func (s *EquipmentService) DeactivateEquipment(ctx context.Context, id uint64) error {
	return s.equipmentRepo.DeactivateEquipment(ctx, id)
}
