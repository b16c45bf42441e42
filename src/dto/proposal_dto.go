package dto

type CreateProposalDTO struct {
	Title          string   `json:"title" binding:"required"`
	Description    string   `json:"description" binding:"required"`
	Amount         float64  `json:"amount" binding:"required,gt=0"`
	EstimatedHours *float64 `json:"estimated_hours,omitempty" binding:"omitempty,gte=0"`
}

type ProposalFromRequestDTO struct {
	Amount         float64  `json:"amount" binding:"required,gt=0"`
	EstimatedHours *float64 `json:"estimated_hours,omitempty" binding:"omitempty,gte=0"`
}

type UpdateProposalDTO struct {
	Title          *string  `json:"title,omitempty"`
	Description    *string  `json:"description,omitempty"`
	Amount         *float64 `json:"amount,omitempty" binding:"omitempty,gt=0"`
	EstimatedHours *float64 `json:"estimated_hours,omitempty" binding:"omitempty,gte=0"`
	Status         *string  `json:"status,omitempty"`
}
