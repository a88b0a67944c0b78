package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"inventory-system/internal/dto"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/types"
	"inventory-system/pkg/utils"
)

// ImportSummary - итог разбора одного файла.
type ImportSummary struct {
	Created int      `json:"created"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors,omitempty"`
}

type EquipmentImportServiceInterface interface {
	ImportEquipment(ctx context.Context, filePath string) (*ImportSummary, error)
}

// EquipmentImportService загружает оборудование из xlsx-ведомостей.
// Шапка ищется по содержимому, а не по фиксированной строке: реальные
// ведомости начинаются с произвольного числа служебных строк.
type EquipmentImportService struct {
	equipmentService     EquipmentServiceInterface
	equipmentTypeService EquipmentTypeServiceInterface
	logger               *zap.Logger
}

func NewEquipmentImportService(
	equipmentService EquipmentServiceInterface,
	equipmentTypeService EquipmentTypeServiceInterface,
	logger *zap.Logger,
) EquipmentImportServiceInterface {
	return &EquipmentImportService{
		equipmentService:     equipmentService,
		equipmentTypeService: equipmentTypeService,
		logger:               logger,
	}
}

func (s *EquipmentImportService) ImportEquipment(ctx context.Context, filePath string) (*ImportSummary, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия файла: %w", err)
	}
	defer f.Close()

	var finalRows [][]string
	nameIdx, typeIdx, innIdx, descIdx := -1, -1, -1, -1
	headerFoundRow := -1

	for _, sheet := range f.GetSheetList() {
		rows, _ := f.GetRows(sheet)
		for rIdx, row := range rows {
			rowStr := strings.ToLower(strings.Join(row, "|"))

			hasName := strings.Contains(rowStr, "наименование") || strings.Contains(rowStr, "название")
			hasType := strings.Contains(rowStr, "тип")

			if hasName && hasType {
				for cIdx, colName := range row {
					cLower := strings.ToLower(strings.TrimSpace(colName))

					if strings.Contains(cLower, "наименование") || strings.Contains(cLower, "название") {
						nameIdx = cIdx
					}
					if strings.Contains(cLower, "тип") {
						typeIdx = cIdx
					}
					if strings.Contains(cLower, "инв") || strings.Contains(cLower, "инн") {
						innIdx = cIdx
					}
					if strings.Contains(cLower, "описание") || strings.Contains(cLower, "примечание") {
						descIdx = cIdx
					}
				}

				if nameIdx != -1 && typeIdx != -1 {
					finalRows = rows
					headerFoundRow = rIdx
					s.logger.Info("найдена шапка ведомости",
						zap.String("sheet", sheet), zap.Int("row", rIdx+1))
					break
				}
			}
		}
		if headerFoundRow != -1 {
			break
		}
	}

	if headerFoundRow == -1 {
		return nil, apperrors.NewInvalidInputError("не найдена шапка таблицы: нужны колонки 'Наименование' и 'Тип'")
	}

	// Типы создаются на лету и переиспользуются в пределах файла.
	typeIDs := map[string]uint64{}

	summary := &ImportSummary{}
	for i := headerFoundRow + 1; i < len(finalRows); i++ {
		row := finalRows[i]
		lineNum := i + 1

		name := safeCell(row, nameIdx)
		typeName := safeCell(row, typeIdx)
		if name == "" || isSummaryRow(name) {
			summary.Skipped++
			continue
		}
		if typeName == "" {
			summary.Errors = append(summary.Errors, fmt.Sprintf("строка %d: не указан тип", lineNum))
			continue
		}

		typeID, err := s.resolveType(ctx, typeName, typeIDs)
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("строка %d: %v", lineNum, err))
			continue
		}

		_, err = s.equipmentService.CreateEquipment(ctx, dto.CreateEquipmentDTO{
			TypeID:      typeID,
			Name:        name,
			Description: safeCell(row, descIdx),
			Inn:         safeCell(row, innIdx),
		})
		if err != nil {
			s.logger.Warn("строка ведомости не импортирована",
				zap.Int("line", lineNum), zap.String("name", name), zap.Error(err))
			summary.Errors = append(summary.Errors, fmt.Sprintf("строка %d [%s]: %v", lineNum, name, err))
			continue
		}
		summary.Created++
	}

	s.logger.Info("импорт ведомости завершен",
		zap.String("file", filePath),
		zap.Int("created", summary.Created),
		zap.Int("skipped", summary.Skipped),
		zap.Int("errors", len(summary.Errors)),
	)
	return summary, nil
}

func (s *EquipmentImportService) resolveType(ctx context.Context, typeName string, cache map[string]uint64) (uint64, error) {
	slug := utils.GenerateSlugFromName(typeName)
	if id, ok := cache[slug]; ok {
		return id, nil
	}

	created, err := s.equipmentTypeService.CreateEquipmentType(ctx, dto.CreateEquipmentTypeDTO{Name: typeName})
	if err != nil {
		// Тип уже существует - берем его.
		if apperrors.IsInvalidInputError(err) {
			existing, findErr := s.findTypeBySlug(ctx, slug)
			if findErr != nil {
				return 0, findErr
			}
			cache[slug] = existing
			return existing, nil
		}
		return 0, err
	}

	cache[slug] = created.ID
	return created.ID, nil
}

func (s *EquipmentImportService) findTypeBySlug(ctx context.Context, slug string) (uint64, error) {
	equipmentTypes, _, err := s.equipmentTypeService.GetEquipmentTypes(ctx, types.Filter{})
	if err != nil {
		return 0, err
	}
	for _, t := range equipmentTypes {
		if t.Slug == slug {
			return t.ID, nil
		}
	}
	return 0, apperrors.ErrNotFound
}

func safeCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isSummaryRow(val string) bool {
	v := strings.ToLower(strings.TrimSpace(val))
	return strings.Contains(v, "итого") || strings.Contains(v, "всего")
}
