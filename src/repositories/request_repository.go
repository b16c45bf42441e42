package repositories

import (
	"github.com/google/uuid"
	"github.com/scopetrack/scopetrack-go/src/db"
	"github.com/scopetrack/scopetrack-go/src/models"
)

type RequestRepo interface {
	Create(req *models.ClientRequest) error
	GetByID(projectID, id uuid.UUID) (models.ClientRequest, error)
	ListByProjectID(projectID uuid.UUID) ([]models.ClientRequest, error)
	Update(req *models.ClientRequest) error
	Delete(projectID, id uuid.UUID) error
}

type DBRequestRepo struct{}

func (r *DBRequestRepo) Create(req *models.ClientRequest) error {
	return db.DB.Create(req).Error
}

func (r *DBRequestRepo) GetByID(projectID, id uuid.UUID) (models.ClientRequest, error) {
	var req models.ClientRequest
	err := db.DB.First(&req, "id = ? AND project_id = ?", id, projectID).Error
	return req, err
}

func (r *DBRequestRepo) ListByProjectID(projectID uuid.UUID) ([]models.ClientRequest, error) {
	var reqs []models.ClientRequest
	err := db.DB.Where("project_id = ?", projectID).Order("created_at desc").Find(&reqs).Error
	return reqs, err
}

func (r *DBRequestRepo) Update(req *models.ClientRequest) error {
	return db.DB.Save(req).Error
}

func (r *DBRequestRepo) Delete(projectID, id uuid.UUID) error {
	return db.DB.Delete(&models.ClientRequest{}, "id = ? AND project_id = ?", id, projectID).Error
}
