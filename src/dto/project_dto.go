package dto

type CreateProjectDTO struct {
	Name        string   `json:"name" binding:"required"`
	Description *string  `json:"description,omitempty"`
	HourlyRate  *float64 `json:"hourly_rate,omitempty" binding:"omitempty,gte=0"`
}

type UpdateProjectDTO struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Status      *string  `json:"status,omitempty"`
	HourlyRate  *float64 `json:"hourly_rate,omitempty" binding:"omitempty,gte=0"`
}
