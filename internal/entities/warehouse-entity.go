package entities

import "inventory-system/pkg/types"

// Warehouse - склад. Главный склад (IsMain) единственный: назначение нового
// главного снимает флаг с предыдущего в той же транзакции.
type Warehouse struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Description string `json:"description"`
	IsMain      bool   `json:"is_main"`
	UID         string `json:"uid"`

	types.BaseEntity
}
