package customvalidator

import (
	"regexp"

	"inventory-system/pkg/constants"

	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidations регистрирует кастомные правила валидации
// в переданном экземпляре валидатора.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("equipment_status", isEquipmentStatus); err != nil {
		return err
	}
	if err := v.RegisterValidation("repair_status", isRepairStatus); err != nil {
		return err
	}
	if err := v.RegisterValidation("inn_format", isInventoryTag); err != nil {
		return err
	}
	return nil
}

func isEquipmentStatus(fl validator.FieldLevel) bool {
	return constants.IsEquipmentStatus(fl.Field().String())
}

func isRepairStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case constants.RepairPending, constants.RepairInProgress,
		constants.RepairCompleted, constants.RepairFailed:
		return true
	}
	return false
}

// Инвентарный номер: буквы, цифры, дефис и подчеркивание.
var innRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func isInventoryTag(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	return innRegex.MatchString(s)
}
