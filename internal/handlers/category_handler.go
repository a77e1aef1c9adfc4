package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"expenses/internal/services"
)

// CategoryHandler handles category browsing requests.
type CategoryHandler struct {
	categoryService services.CategoryServicer
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService services.CategoryServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// GetCategories returns the category tree: root categories with their
// children.
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": categories})
}

// GetCategoryByID returns a single category with its parent and children.
func (h *CategoryHandler) GetCategoryByID(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	category, err := h.categoryService.GetCategoryByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}
