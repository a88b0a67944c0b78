package types

type Filter struct {
	Search         string                 `json:"search"`
	Sort           map[string]string      `json:"sort"`
	Filter         map[string]interface{} `json:"filter"`
	Limit          int                    `json:"limit"`
	Offset         int                    `json:"offset"`
	Page           int                    `json:"page"`
	WithPagination bool                   `json:"withPagination"`
}

// http://localhost:8080/api/equipment?search=Dell&sort[created_at]=desc&filter[status]=in_stock&limit=10&offset=0
