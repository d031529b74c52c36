package handlers

import (
	"net/http"

	"restaurant-menu-api/authz"
	"restaurant-menu-api/config"
	"restaurant-menu-api/middleware"
	"restaurant-menu-api/models"

	"github.com/gin-gonic/gin"
)

type CreateSectionRequest struct {
	Title     models.TranslatedString `json:"title"`
	MenuID    uint                    `json:"menu"`
	Published *bool                   `json:"published"`
}

type UpdateSectionRequest struct {
	Title     models.TranslatedString `json:"title"`
	Published *bool                   `json:"published"`
}

// ListSections lists the menu sections visible to the requester
func ListSections(c *gin.Context) {
	r := middleware.GetRequester(c)
	var sections []models.MenuSection
	authz.VisibleSections(config.DB, r).Order("id").Find(&sections)
	c.JSON(http.StatusOK, listResponse(len(sections), sections))
}

// GetSection retrieves one menu section under the visibility rules
func GetSection(c *gin.Context) {
	r := middleware.GetRequester(c)
	var section models.MenuSection
	if err := authz.VisibleSections(config.DB, r).First(&section, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu section not found"})
		return
	}
	c.JSON(http.StatusOK, section)
}

// CreateSection adds a section to a menu of a restaurant the requester staffs
func CreateSection(c *gin.Context) {
	r := middleware.GetRequester(c)

	var req CreateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var menu models.Menu
	menuFound := config.DB.First(&menu, req.MenuID).Error == nil
	if d := authz.DecideMenuTreeCreate(config.DB, r, menu.RestaurantID, menuFound); !d.Allowed() {
		denied(c, d)
		return
	}
	if len(req.Title) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Section title is required"})
		return
	}

	section := models.MenuSection{
		Title:     req.Title,
		MenuID:    req.MenuID,
		Published: true,
	}
	if req.Published != nil {
		section.Published = *req.Published
	}
	if err := config.DB.Create(&section).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create section"})
		return
	}
	c.JSON(http.StatusCreated, section)
}

// UpdateSection edits a section's title or published flag
func UpdateSection(c *gin.Context) {
	r := middleware.GetRequester(c)
	var section models.MenuSection
	if err := authz.VisibleSections(config.DB, r).First(&section, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu section not found"})
		return
	}
	if d := authz.DecideMenuTreeWrite(config.DB, r, section.RestaurantID(config.DB)); !d.Allowed() {
		denied(c, d)
		return
	}

	var req UpdateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Title != nil {
		section.Title = req.Title
	}
	if req.Published != nil {
		section.Published = *req.Published
	}
	if err := config.DB.Save(&section).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update section"})
		return
	}
	c.JSON(http.StatusOK, section)
}

// DeleteSection removes a section. Its courses survive with their section
// reference cleared.
func DeleteSection(c *gin.Context) {
	r := middleware.GetRequester(c)
	var section models.MenuSection
	if err := authz.VisibleSections(config.DB, r).First(&section, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu section not found"})
		return
	}
	if d := authz.DecideMenuTreeWrite(config.DB, r, section.RestaurantID(config.DB)); !d.Allowed() {
		denied(c, d)
		return
	}

	// Detach courses first: the section owns nothing, it only groups.
	config.DB.Model(&models.MenuCourse{}).
		Where("section_id = ?", section.ID).
		Update("section_id", nil)
	config.DB.Delete(&section)
	c.JSON(http.StatusOK, gin.H{"message": "Menu section deleted"})
}
