package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtrivino/portfolio/internal/content"
)

// handleProjects renders the project grid for one filter button (HTMX swap).
func (s *site) handleProjects(c *gin.Context) {
	filter := c.DefaultQuery("filter", content.FilterAll)
	c.HTML(http.StatusOK, "projects.html", gin.H{
		"projects": content.FilterProjects(content.Projects, filter),
		"filter":   filter,
	})
}
