package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProposalStatus string

const (
	ProposalStatusDraft    ProposalStatus = "draft"
	ProposalStatusSent     ProposalStatus = "sent"
	ProposalStatusAccepted ProposalStatus = "accepted"
	ProposalStatusDeclined ProposalStatus = "declined"
	ProposalStatusExpired  ProposalStatus = "expired"
)

type Proposal struct {
	ID              uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	ProjectID       uuid.UUID      `json:"project_id" gorm:"type:uuid;not null;index"`
	SourceRequestID *uuid.UUID     `json:"source_request_id" gorm:"type:uuid"` // back-reference only
	Title           string         `json:"title" gorm:"size:255;not null"`
	Description     string         `json:"description" gorm:"type:text;not null"`
	Status          ProposalStatus `json:"status" gorm:"type:proposal_status;default:'draft'"`
	Amount          float64        `json:"amount" gorm:"not null"`
	EstimatedHours  *float64       `json:"estimated_hours,omitempty"`
	SentAt          *time.Time     `json:"sent_at,omitempty"`
	RespondedAt     *time.Time     `json:"responded_at,omitempty"`
	CreatedAt       time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

func (p *Proposal) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
