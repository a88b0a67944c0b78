package dto

type RoomDTO struct {
	ID        uint64 `json:"id"`
	Number    string `json:"number"`
	Name      string `json:"name,omitempty"`
	IsSpecial bool   `json:"is_special"`
	CreatedAt string `json:"created_at"`
}
