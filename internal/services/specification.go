package services

import (
	"context"

	"go.uber.org/zap"

	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
	"inventory-system/internal/repositories"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/types"
	"inventory-system/pkg/utils"
)

type SpecificationServiceInterface interface {
	GetSpecifications(ctx context.Context, filter types.Filter) ([]dto.SpecificationDTO, uint64, error)
	GetByType(ctx context.Context, typeID uint64) ([]dto.SpecificationDTO, error)
	FindSpecification(ctx context.Context, id uint64) (*dto.SpecificationDTO, error)
	GetSpecKeys(ctx context.Context, typeID uint64) (*dto.SpecKeysDTO, error)
	CreateSpecification(ctx context.Context, payload dto.CreateSpecificationDTO) (*dto.SpecificationDTO, error)
	UpdateSpecification(ctx context.Context, id uint64, payload dto.UpdateSpecificationDTO) (*dto.SpecificationDTO, error)
	DeleteSpecification(ctx context.Context, id uint64) error
}

type SpecificationService struct {
	specificationRepo repositories.SpecificationRepositoryInterface
	typeRepo          repositories.EquipmentTypeRepositoryInterface
	logger            *zap.Logger
}

func NewSpecificationService(
	specificationRepo repositories.SpecificationRepositoryInterface,
	typeRepo repositories.EquipmentTypeRepositoryInterface,
	logger *zap.Logger,
) SpecificationServiceInterface {
	return &SpecificationService{
		specificationRepo: specificationRepo,
		typeRepo:          typeRepo,
		logger:            logger,
	}
}

// normalizeSpecs приводит характеристики к хранимому виду
// {ключ: {display, value}}. Ключи транслитерируются, уже нормализованные
// записи проходят без изменений.
func normalizeSpecs(raw map[string]interface{}) map[string]interface{} {
	normalized := make(map[string]interface{}, len(raw))
	for display, value := range raw {
		if nested, ok := value.(map[string]interface{}); ok {
			if _, hasDisplay := nested["display"]; hasDisplay {
				normalized[utils.TransliterateKey(display)] = nested
				continue
			}
		}
		normalized[utils.TransliterateKey(display)] = map[string]interface{}{
			"display": display,
			"value":   value,
		}
	}
	return normalized
}

func (s *SpecificationService) toDTO(ctx context.Context, spec *entities.EquipmentSpecification) *dto.SpecificationDTO {
	result := &dto.SpecificationDTO{
		ID:        spec.ID,
		TypeID:    spec.TypeID,
		Name:      spec.Name,
		Specs:     spec.Specs,
		CreatedAt: utils.PtrTimeToString(spec.CreatedAt),
		UpdatedAt: utils.PtrTimeToString(spec.UpdatedAt),
	}
	if equipmentType, err := s.typeRepo.FindEquipmentType(ctx, spec.TypeID); err == nil {
		result.TypeName = equipmentType.Name
	}
	return result
}

func (s *SpecificationService) GetSpecifications(ctx context.Context, filter types.Filter) ([]dto.SpecificationDTO, uint64, error) {
	specs, total, err := s.specificationRepo.GetSpecifications(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.SpecificationDTO, 0, len(specs))
	for i := range specs {
		result = append(result, *s.toDTO(ctx, &specs[i]))
	}
	return result, total, nil
}

func (s *SpecificationService) GetByType(ctx context.Context, typeID uint64) ([]dto.SpecificationDTO, error) {
	if _, err := s.typeRepo.FindEquipmentType(ctx, typeID); err != nil {
		return nil, err
	}

	specs, err := s.specificationRepo.GetByType(ctx, typeID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.SpecificationDTO, 0, len(specs))
	for i := range specs {
		result = append(result, *s.toDTO(ctx, &specs[i]))
	}
	return result, nil
}

func (s *SpecificationService) FindSpecification(ctx context.Context, id uint64) (*dto.SpecificationDTO, error) {
	spec, err := s.specificationRepo.FindSpecification(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toDTO(ctx, spec), nil
}

// GetSpecKeys собирает уникальные ключи характеристик по всем спецификациям
// типа - подсказки для формы создания новой спецификации.
func (s *SpecificationService) GetSpecKeys(ctx context.Context, typeID uint64) (*dto.SpecKeysDTO, error) {
	equipmentType, err := s.typeRepo.FindEquipmentType(ctx, typeID)
	if err != nil {
		return nil, err
	}

	specs, err := s.specificationRepo.GetByType(ctx, typeID)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	keys := make([]dto.SpecKeyDTO, 0)
	for _, spec := range specs {
		for key, value := range spec.Specs {
			if seen[key] {
				continue
			}
			seen[key] = true

			display := key
			if nested, ok := value.(map[string]interface{}); ok {
				if d, ok := nested["display"].(string); ok && d != "" {
					display = d
				}
			}
			keys = append(keys, dto.SpecKeyDTO{Key: key, Display: display})
		}
	}

	return &dto.SpecKeysDTO{
		TypeID:   equipmentType.ID,
		TypeName: equipmentType.Name,
		Keys:     keys,
	}, nil
}

func (s *SpecificationService) CreateSpecification(ctx context.Context, payload dto.CreateSpecificationDTO) (*dto.SpecificationDTO, error) {
	if _, err := s.typeRepo.FindEquipmentType(ctx, payload.TypeID); err != nil {
		return nil, apperrors.NewInvalidInputError("тип оборудования %d не найден", payload.TypeID)
	}

	newID, err := s.specificationRepo.CreateSpecification(ctx, entities.EquipmentSpecification{
		TypeID: payload.TypeID,
		Name:   payload.Name,
		Specs:  normalizeSpecs(payload.Specs),
	})
	if err != nil {
		s.logger.Error("ошибка создания спецификации", zap.Error(err))
		return nil, err
	}

	return s.FindSpecification(ctx, newID)
}

func (s *SpecificationService) UpdateSpecification(ctx context.Context, id uint64, payload dto.UpdateSpecificationDTO) (*dto.SpecificationDTO, error) {
	current, err := s.specificationRepo.FindSpecification(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.Name != nil {
		current.Name = *payload.Name
	}
	if payload.Specs != nil {
		current.Specs = normalizeSpecs(payload.Specs)
	}

	if err := s.specificationRepo.UpdateSpecification(ctx, id, *current); err != nil {
		return nil, err
	}
	return s.FindSpecification(ctx, id)
}

func (s *SpecificationService) DeleteSpecification(ctx context.Context, id uint64) error {
	return s.specificationRepo.DeleteSpecification(ctx, id)
}
