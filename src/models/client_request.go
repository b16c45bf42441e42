package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type RequestSource string

const (
	RequestSourceEmail   RequestSource = "email"
	RequestSourceChat    RequestSource = "chat"
	RequestSourceCall    RequestSource = "call"
	RequestSourceMeeting RequestSource = "meeting"
	RequestSourceOther   RequestSource = "other"
)

type RequestStatus string

const (
	RequestStatusNew          RequestStatus = "new"
	RequestStatusAnalyzed     RequestStatus = "analyzed"
	RequestStatusAddressed    RequestStatus = "addressed"
	RequestStatusDeclined     RequestStatus = "declined"
	RequestStatusProposalSent RequestStatus = "proposal_sent"
)

// ScopeClassification is the triage verdict on a request. Pending is the
// explicit "not yet analyzed" member; business logic never treats
// classification as nullable.
type ScopeClassification string

const (
	ClassificationPending             ScopeClassification = "pending"
	ClassificationInScope             ScopeClassification = "in_scope"
	ClassificationOutOfScope          ScopeClassification = "out_of_scope"
	ClassificationClarificationNeeded ScopeClassification = "clarification_needed"
	ClassificationRevision            ScopeClassification = "revision"
)

// Active reports whether a request status still admits re-classification.
// Once addressed/declined/proposal_sent the classification is historical.
func (s RequestStatus) Active() bool {
	return s == RequestStatusNew || s == RequestStatusAnalyzed
}

type ClientRequest struct {
	ID                uuid.UUID           `json:"id" gorm:"type:uuid;primaryKey"`
	ProjectID         uuid.UUID           `json:"project_id" gorm:"type:uuid;not null;index"`
	LinkedScopeItemID *uuid.UUID          `json:"linked_scope_item_id" gorm:"type:uuid"`
	Title             string              `json:"title" gorm:"size:255;not null"`
	Content           string              `json:"content" gorm:"type:text;not null"`
	Source            RequestSource       `json:"source" gorm:"type:request_source;default:'email'"`
	Status            RequestStatus       `json:"status" gorm:"type:request_status;default:'new'"`
	Classification    ScopeClassification `json:"classification" gorm:"type:scope_classification;default:'pending'"`

	// Analysis artifacts, set by classification
	Confidence        *float64                    `json:"confidence,omitempty"`
	AnalysisReasoning string                      `json:"analysis_reasoning,omitempty" gorm:"type:text"`
	SuggestedAction   string                      `json:"suggested_action,omitempty" gorm:"type:text"`
	CreepIndicators   datatypes.JSONSlice[string] `json:"scope_creep_indicators,omitempty"`

	// Object key of an uploaded attachment, empty when none
	AttachmentKey string `json:"attachment_key,omitempty" gorm:"size:512"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (r *ClientRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
