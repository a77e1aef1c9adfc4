package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"expenses/internal/services"
)

// ProjectHandler handles project browsing requests.
type ProjectHandler struct {
	projectService services.ProjectServicer
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService services.ProjectServicer) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// GetProjects returns all projects in title order.
func (h *ProjectHandler) GetProjects(c *gin.Context) {
	projects, err := h.projectService.ListProjects()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": projects})
}
