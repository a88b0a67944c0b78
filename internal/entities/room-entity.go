package entities

import "inventory-system/pkg/types"

type Room struct {
	ID        uint64 `json:"id"`
	Number    string `json:"number"`
	Name      string `json:"name"`
	IsSpecial bool   `json:"is_special"`

	types.BaseEntity
}
