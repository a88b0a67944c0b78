package entities

import "inventory-system/pkg/types"

// EquipmentSpecification - готовый набор характеристик для типа оборудования.
// Specs хранится в формате {key: {display, value}}, ключи транслитерированы.
type EquipmentSpecification struct {
	ID     uint64                 `json:"id"`
	TypeID uint64                 `json:"type_id"`
	Name   string                 `json:"name"`
	Specs  map[string]interface{} `json:"specs"`

	types.BaseEntity
}
