package handlers

import (
	"log"
	"net/http"

	"microgrid-planner/internal/api/models"
	"microgrid-planner/internal/data"
	"microgrid-planner/internal/generation"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the built-in turbine and load profile catalogs
type CatalogHandler struct{}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// ListTurbines handles GET /api/v1/turbines
func (h *CatalogHandler) ListTurbines(c *gin.Context) {
	turbines := generation.ListTurbines()
	log.Printf("[API] Returning %d turbines", len(turbines))
	c.JSON(http.StatusOK, gin.H{"turbines": turbines})
}

var profileDescriptions = map[string]string{
	"continuous": "Near-flat industrial demand with a mild daytime bump. Suited to around-the-clock operations.",
	"dayshift":   "Demand concentrated in working hours, low overnight. Suited to single-shift facilities.",
}

// ListProfiles handles GET /api/v1/profiles
func (h *CatalogHandler) ListProfiles(c *gin.Context) {
	names := data.ListLoadProfiles()
	profiles := make([]models.ProfileInfo, 0, len(names))
	for _, name := range names {
		profiles = append(profiles, models.ProfileInfo{
			Name:        name,
			Description: profileDescriptions[name],
		})
	}
	c.JSON(http.StatusOK, gin.H{"profiles": profiles})
}
