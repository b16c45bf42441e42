package dto

import "github.com/google/uuid"

type CreateRequestDTO struct {
	Title       string `json:"title" binding:"required"`
	Content     string `json:"content" binding:"required"`
	Source      string `json:"source,omitempty"`
	AutoAnalyze *bool  `json:"auto_analyze,omitempty"` // default true
}

type UpdateRequestDTO struct {
	Title             *string    `json:"title,omitempty"`
	Content           *string    `json:"content,omitempty"`
	Source            *string    `json:"source,omitempty"`
	LinkedScopeItemID *uuid.UUID `json:"linked_scope_item_id,omitempty"`
}

type ClassifyRequestDTO struct {
	Classification string `json:"classification" binding:"required,oneof=in_scope out_of_scope clarification_needed"`
}

// RequestListFilter narrows the canonical list at read time; it never
// addresses a separate cache entry.
type RequestListFilter struct {
	Status         string `form:"status"`
	Classification string `form:"classification"`
	ActiveOnly     bool   `form:"active"`
}
