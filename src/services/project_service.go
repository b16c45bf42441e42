package services

import (
	"github.com/google/uuid"
	"github.com/scopetrack/scopetrack-go/src/cache"
	"github.com/scopetrack/scopetrack-go/src/dto"
	"github.com/scopetrack/scopetrack-go/src/models"
	"github.com/scopetrack/scopetrack-go/src/repositories"
)

type ProjectService struct {
	Repos *repositories.Repos
	Cache *cache.Store
}

func NewProjectService(repos *repositories.Repos, store *cache.Store) *ProjectService {
	return &ProjectService{Repos: repos, Cache: store}
}

func (s *ProjectService) Create(input dto.CreateProjectDTO) (models.Project, error) {
	project := models.Project{
		Name:   input.Name,
		Status: models.ProjectStatusActive,
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.HourlyRate != nil {
		project.HourlyRate = *input.HourlyRate
	}
	return project, s.Repos.Project.Create(&project)
}

func (s *ProjectService) Get(projectID uuid.UUID) (models.Project, error) {
	key := cache.ProjectDetail(projectID)
	var cached models.Project
	if s.Cache.Get(key, &cached) {
		return cached, nil
	}

	project, err := s.Repos.Project.GetByID(projectID)
	if err != nil {
		return models.Project{}, err
	}
	s.Cache.Set(key, project)
	return project, nil
}

func (s *ProjectService) List() ([]models.Project, error) {
	return s.Repos.Project.List()
}

func (s *ProjectService) Update(projectID uuid.UUID, input dto.UpdateProjectDTO) (models.Project, error) {
	project, err := s.Repos.Project.GetByID(projectID)
	if err != nil {
		return models.Project{}, err
	}

	if input.Name != nil {
		project.Name = *input.Name
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.Status != nil {
		project.Status = models.ProjectStatus(*input.Status)
	}
	if input.HourlyRate != nil {
		project.HourlyRate = *input.HourlyRate
	}

	if err := s.Repos.Project.Update(&project); err != nil {
		return models.Project{}, err
	}
	s.Cache.Invalidate(cache.ProjectDetail(projectID), cache.Dashboard(projectID))
	return project, nil
}

func (s *ProjectService) Delete(projectID uuid.UUID) error {
	if _, err := s.Repos.Project.GetByID(projectID); err != nil {
		return err
	}
	if err := s.Repos.Project.Delete(projectID); err != nil {
		return err
	}
	s.Cache.Invalidate(
		cache.ProjectDetail(projectID),
		cache.RequestList(projectID),
		cache.ProposalList(projectID),
		cache.Dashboard(projectID),
	)
	return nil
}
