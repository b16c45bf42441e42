package dto

type CreateScopeItemDTO struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description,omitempty"`
	Position    *int    `json:"position,omitempty"`
}

type UpdateScopeItemDTO struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Position    *int    `json:"position,omitempty"`
}
