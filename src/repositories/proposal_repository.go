package repositories

import (
	"github.com/google/uuid"
	"github.com/scopetrack/scopetrack-go/src/db"
	"github.com/scopetrack/scopetrack-go/src/models"
)

type ProposalRepo interface {
	Create(p *models.Proposal) error
	GetByID(projectID, id uuid.UUID) (models.Proposal, error)
	ListByProjectID(projectID uuid.UUID) ([]models.Proposal, error)
	Update(p *models.Proposal) error
	Delete(projectID, id uuid.UUID) error
}

type DBProposalRepo struct{}

func (r *DBProposalRepo) Create(p *models.Proposal) error {
	return db.DB.Create(p).Error
}

func (r *DBProposalRepo) GetByID(projectID, id uuid.UUID) (models.Proposal, error) {
	var proposal models.Proposal
	err := db.DB.First(&proposal, "id = ? AND project_id = ?", id, projectID).Error
	return proposal, err
}

func (r *DBProposalRepo) ListByProjectID(projectID uuid.UUID) ([]models.Proposal, error) {
	var proposals []models.Proposal
	err := db.DB.Where("project_id = ?", projectID).Order("created_at desc").Find(&proposals).Error
	return proposals, err
}

func (r *DBProposalRepo) Update(p *models.Proposal) error {
	return db.DB.Save(p).Error
}

func (r *DBProposalRepo) Delete(projectID, id uuid.UUID) error {
	return db.DB.Delete(&models.Proposal{}, "id = ? AND project_id = ?", id, projectID).Error
}
