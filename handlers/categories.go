package handlers

import (
	"net/http"

	"restaurant-menu-api/authz"
	"restaurant-menu-api/config"
	"restaurant-menu-api/middleware"
	"restaurant-menu-api/models"

	"github.com/gin-gonic/gin"
)

type CategoryRequest struct {
	Name  models.TranslatedString `json:"name"`
	Stars *uint                   `json:"stars"`
}

// ListCategories returns all restaurant categories (public)
func ListCategories(c *gin.Context) {
	var categories []models.RestaurantCategory
	config.DB.Order("stars DESC, id").Find(&categories)
	c.JSON(http.StatusOK, listResponse(len(categories), categories))
}

// GetCategory returns one restaurant category (public)
func GetCategory(c *gin.Context) {
	var category models.RestaurantCategory
	if err := config.DB.First(&category, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}
	c.JSON(http.StatusOK, category)
}

// CreateCategory adds a restaurant category (staff/admin only)
func CreateCategory(c *gin.Context) {
	if d := authz.DecideAdminWrite(middleware.GetRequester(c)); !d.Allowed() {
		denied(c, d)
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Name) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category name is required"})
		return
	}
	category := models.RestaurantCategory{Name: req.Name}
	if req.Stars != nil {
		category.Stars = *req.Stars
	}
	if err := config.DB.Create(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}
	c.JSON(http.StatusCreated, category)
}

// UpdateCategory edits a restaurant category (staff/admin only)
func UpdateCategory(c *gin.Context) {
	if d := authz.DecideAdminWrite(middleware.GetRequester(c)); !d.Allowed() {
		denied(c, d)
		return
	}
	var category models.RestaurantCategory
	if err := config.DB.First(&category, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name != nil {
		category.Name = req.Name
	}
	if req.Stars != nil {
		category.Stars = *req.Stars
	}
	if err := config.DB.Save(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}
	c.JSON(http.StatusOK, category)
}

// DeleteCategory removes a restaurant category (staff/admin only)
func DeleteCategory(c *gin.Context) {
	if d := authz.DecideAdminWrite(middleware.GetRequester(c)); !d.Allowed() {
		denied(c, d)
		return
	}
	var category models.RestaurantCategory
	if err := config.DB.First(&category, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}
	config.DB.Delete(&category)
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}
