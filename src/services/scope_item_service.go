package services

import (
	"github.com/google/uuid"
	"github.com/scopetrack/scopetrack-go/src/dto"
	"github.com/scopetrack/scopetrack-go/src/models"
	"github.com/scopetrack/scopetrack-go/src/repositories"
)

type ScopeItemService struct {
	Repos *repositories.Repos
}

func NewScopeItemService(repos *repositories.Repos) *ScopeItemService {
	return &ScopeItemService{Repos: repos}
}

func (s *ScopeItemService) Create(projectID uuid.UUID, input dto.CreateScopeItemDTO) (models.ScopeItem, error) {
	if _, err := s.Repos.Project.GetByID(projectID); err != nil {
		return models.ScopeItem{}, err
	}

	item := models.ScopeItem{
		ProjectID: projectID,
		Title:     input.Title,
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.Position != nil {
		item.Position = *input.Position
	}
	return item, s.Repos.ScopeItem.Create(&item)
}

func (s *ScopeItemService) ListByProject(projectID uuid.UUID) ([]models.ScopeItem, error) {
	return s.Repos.ScopeItem.ListByProjectID(projectID)
}

func (s *ScopeItemService) Update(itemID uuid.UUID, input dto.UpdateScopeItemDTO) (models.ScopeItem, error) {
	item, err := s.Repos.ScopeItem.GetByID(itemID)
	if err != nil {
		return models.ScopeItem{}, err
	}

	if input.Title != nil {
		item.Title = *input.Title
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.Position != nil {
		item.Position = *input.Position
	}
	return item, s.Repos.ScopeItem.Update(&item)
}

func (s *ScopeItemService) Delete(itemID uuid.UUID) error {
	if _, err := s.Repos.ScopeItem.GetByID(itemID); err != nil {
		return err
	}
	return s.Repos.ScopeItem.Delete(itemID)
}
