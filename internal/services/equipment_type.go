package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
	"inventory-system/internal/repositories"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/types"
	"inventory-system/pkg/utils"
)

type EquipmentTypeServiceInterface interface {
	GetEquipmentTypes(ctx context.Context, filter types.Filter) ([]dto.EquipmentTypeDTO, uint64, error)
	FindEquipmentType(ctx context.Context, id uint64) (*dto.EquipmentTypeDTO, error)
	CreateEquipmentType(ctx context.Context, payload dto.CreateEquipmentTypeDTO) (*dto.EquipmentTypeDTO, error)
	UpdateEquipmentType(ctx context.Context, id uint64, payload dto.UpdateEquipmentTypeDTO) (*dto.EquipmentTypeDTO, error)
	DeleteEquipmentType(ctx context.Context, id uint64) error
}

type EquipmentTypeService struct {
	typeRepo repositories.EquipmentTypeRepositoryInterface
	logger   *zap.Logger
}

func NewEquipmentTypeService(
	typeRepo repositories.EquipmentTypeRepositoryInterface,
	logger *zap.Logger,
) EquipmentTypeServiceInterface {
	return &EquipmentTypeService{typeRepo: typeRepo, logger: logger}
}

func equipmentTypeToDTO(t *entities.EquipmentType) *dto.EquipmentTypeDTO {
	return &dto.EquipmentTypeDTO{
		ID:        t.ID,
		Name:      t.Name,
		Slug:      t.Slug,
		CreatedAt: utils.PtrTimeToString(t.CreatedAt),
		UpdatedAt: utils.PtrTimeToString(t.UpdatedAt),
	}
}

func (s *EquipmentTypeService) GetEquipmentTypes(ctx context.Context, filter types.Filter) ([]dto.EquipmentTypeDTO, uint64, error) {
	equipmentTypes, total, err := s.typeRepo.GetEquipmentTypes(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.EquipmentTypeDTO, 0, len(equipmentTypes))
	for i := range equipmentTypes {
		result = append(result, *equipmentTypeToDTO(&equipmentTypes[i]))
	}
	return result, total, nil
}

func (s *EquipmentTypeService) FindEquipmentType(ctx context.Context, id uint64) (*dto.EquipmentTypeDTO, error) {
	equipmentType, err := s.typeRepo.FindEquipmentType(ctx, id)
	if err != nil {
		return nil, err
	}
	return equipmentTypeToDTO(equipmentType), nil
}

// ensureSlugFree проверяет уникальность slug, игнорируя собственную запись
// при обновлении (selfID = 0 при создании).
func (s *EquipmentTypeService) ensureSlugFree(ctx context.Context, slug string, selfID uint64) error {
	existing, err := s.typeRepo.FindBySlug(ctx, slug)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != selfID {
		return apperrors.NewInvalidInputError("тип оборудования с названием '%s' уже существует", slug)
	}
	return nil
}

func (s *EquipmentTypeService) CreateEquipmentType(ctx context.Context, payload dto.CreateEquipmentTypeDTO) (*dto.EquipmentTypeDTO, error) {
	slug := utils.GenerateSlugFromName(payload.Name)
	if err := s.ensureSlugFree(ctx, slug, 0); err != nil {
		return nil, err
	}

	newID, err := s.typeRepo.CreateEquipmentType(ctx, entities.EquipmentType{Name: payload.Name, Slug: slug})
	if err != nil {
		s.logger.Error("ошибка создания типа оборудования", zap.Error(err))
		return nil, err
	}

	return s.FindEquipmentType(ctx, newID)
}

func (s *EquipmentTypeService) UpdateEquipmentType(ctx context.Context, id uint64, payload dto.UpdateEquipmentTypeDTO) (*dto.EquipmentTypeDTO, error) {
	current, err := s.typeRepo.FindEquipmentType(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.Name != nil {
		current.Name = *payload.Name
		current.Slug = utils.GenerateSlugFromName(*payload.Name)
		if err := s.ensureSlugFree(ctx, current.Slug, id); err != nil {
			return nil, err
		}
	}

	if err := s.typeRepo.UpdateEquipmentType(ctx, id, *current); err != nil {
		return nil, err
	}
	return s.FindEquipmentType(ctx, id)
}

func (s *EquipmentTypeService) DeleteEquipmentType(ctx context.Context, id uint64) error {
	return s.typeRepo.DeleteEquipmentType(ctx, id)
}
