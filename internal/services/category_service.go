package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "expenses/internal/errors"
	"expenses/internal/models"
)

// categoryService handles category browsing.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// ListCategories returns root categories with their children preloaded.
func (s *categoryService) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.
		Where("parent_id IS NULL").
		Preload("Children").
		Order("name ASC").
		Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// GetCategoryByID retrieves a category with its parent and children.
func (s *categoryService) GetCategoryByID(id int64) (*models.Category, error) {
	var category models.Category
	if err := s.db.
		Preload("Parent").
		Preload("Children").
		First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}
