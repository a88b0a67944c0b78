package entities

import "inventory-system/pkg/types"

type EquipmentType struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`

	types.BaseEntity
}
