package repositories

import (
	"github.com/google/uuid"
	"github.com/scopetrack/scopetrack-go/src/db"
	"github.com/scopetrack/scopetrack-go/src/models"
)

type ProjectRepo interface {
	Create(p *models.Project) error
	GetByID(id uuid.UUID) (models.Project, error)
	List() ([]models.Project, error)
	Update(p *models.Project) error
	Delete(id uuid.UUID) error
}

type DBProjectRepo struct{}

func (r *DBProjectRepo) Create(p *models.Project) error {
	return db.DB.Create(p).Error
}

func (r *DBProjectRepo) GetByID(id uuid.UUID) (models.Project, error) {
	var project models.Project
	err := db.DB.First(&project, "id = ?", id).Error
	return project, err
}

func (r *DBProjectRepo) List() ([]models.Project, error) {
	var projects []models.Project
	err := db.DB.Order("created_at desc").Find(&projects).Error
	return projects, err
}

func (r *DBProjectRepo) Update(p *models.Project) error {
	return db.DB.Save(p).Error
}

func (r *DBProjectRepo) Delete(id uuid.UUID) error {
	return db.DB.Delete(&models.Project{}, "id = ?", id).Error
}
