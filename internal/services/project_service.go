package services

import (
	"gorm.io/gorm"

	apperrors "expenses/internal/errors"
	"expenses/internal/models"
)

type projectService struct {
	db *gorm.DB
}

// NewProjectService creates a new ProjectServicer.
func NewProjectService(db *gorm.DB) ProjectServicer {
	return &projectService{db: db}
}

// ListProjects returns all projects in title order.
func (s *projectService) ListProjects() ([]models.Project, error) {
	var projects []models.Project
	if err := s.db.Order("title ASC").Find(&projects).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return projects, nil
}
