package repositories

import (
	"github.com/google/uuid"
	"github.com/scopetrack/scopetrack-go/src/db"
	"github.com/scopetrack/scopetrack-go/src/models"
)

type ScopeItemRepo interface {
	Create(item *models.ScopeItem) error
	GetByID(id uuid.UUID) (models.ScopeItem, error)
	ListByProjectID(projectID uuid.UUID) ([]models.ScopeItem, error)
	Update(item *models.ScopeItem) error
	Delete(id uuid.UUID) error
}

type DBScopeItemRepo struct{}

func (r *DBScopeItemRepo) Create(item *models.ScopeItem) error {
	return db.DB.Create(item).Error
}

func (r *DBScopeItemRepo) GetByID(id uuid.UUID) (models.ScopeItem, error) {
	var item models.ScopeItem
	err := db.DB.First(&item, "id = ?", id).Error
	return item, err
}

func (r *DBScopeItemRepo) ListByProjectID(projectID uuid.UUID) ([]models.ScopeItem, error) {
	var items []models.ScopeItem
	err := db.DB.Where("project_id = ?", projectID).Order("position asc").Find(&items).Error
	return items, err
}

func (r *DBScopeItemRepo) Update(item *models.ScopeItem) error {
	return db.DB.Save(item).Error
}

func (r *DBScopeItemRepo) Delete(id uuid.UUID) error {
	return db.DB.Delete(&models.ScopeItem{}, "id = ?", id).Error
}
