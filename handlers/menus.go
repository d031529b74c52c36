package handlers

import (
	"net/http"

	"restaurant-menu-api/authz"
	"restaurant-menu-api/config"
	"restaurant-menu-api/middleware"
	"restaurant-menu-api/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CreateMenuRequest struct {
	Title        models.TranslatedString `json:"title"`
	RestaurantID uint                    `json:"restaurant"`
	Published    bool                    `json:"published"`
}

type UpdateMenuRequest struct {
	Title     models.TranslatedString `json:"title"`
	Published *bool                   `json:"published"`
}

// ListMenus lists the menus visible to the requester
func ListMenus(c *gin.Context) {
	r := middleware.GetRequester(c)
	var menus []models.Menu
	authz.VisibleMenus(config.DB, r).Order("id").Find(&menus)
	c.JSON(http.StatusOK, listResponse(len(menus), menus))
}

// GetMenu retrieves one menu; unpublished menus of other restaurants read as
// not found
func GetMenu(c *gin.Context) {
	r := middleware.GetRequester(c)
	var menu models.Menu
	if err := authz.VisibleMenus(config.DB, r).First(&menu, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu not found"})
		return
	}
	c.JSON(http.StatusOK, menu)
}

// CreateMenu adds a menu to a restaurant the requester staffs. Publishing it
// here unpublishes every sibling menu of that restaurant.
func CreateMenu(c *gin.Context) {
	r := middleware.GetRequester(c)

	var req CreateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var restaurant models.Restaurant
	restaurantFound := config.DB.First(&restaurant, req.RestaurantID).Error == nil
	if d := authz.DecideMenuTreeCreate(config.DB, r, req.RestaurantID, restaurantFound); !d.Allowed() {
		denied(c, d)
		return
	}
	if len(req.Title) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Menu title is required"})
		return
	}

	menu := models.Menu{
		Title:        req.Title,
		RestaurantID: req.RestaurantID,
		Published:    req.Published,
	}
	if err := models.SaveMenu(config.DB, &menu); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create menu"})
		return
	}
	config.Log.Info("Menu created",
		zap.Uint("id", menu.ID), zap.Uint("restaurant", menu.RestaurantID),
		zap.Bool("published", menu.Published))
	c.JSON(http.StatusCreated, menu)
}

// UpdateMenu edits a menu's title or published flag. All saves go through
// the publication cascade so the single-published-menu rule holds.
func UpdateMenu(c *gin.Context) {
	r := middleware.GetRequester(c)
	var menu models.Menu
	if err := authz.VisibleMenus(config.DB, r).First(&menu, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu not found"})
		return
	}
	if d := authz.DecideMenuTreeWrite(config.DB, r, menu.RestaurantID); !d.Allowed() {
		denied(c, d)
		return
	}

	var req UpdateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Title != nil {
		menu.Title = req.Title
	}
	if req.Published != nil {
		menu.Published = *req.Published
	}
	if err := models.SaveMenu(config.DB, &menu); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update menu"})
		return
	}
	c.JSON(http.StatusOK, menu)
}

// DeleteMenu removes a menu with its sections and courses
func DeleteMenu(c *gin.Context) {
	r := middleware.GetRequester(c)
	var menu models.Menu
	if err := authz.VisibleMenus(config.DB, r).First(&menu, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu not found"})
		return
	}
	if d := authz.DecideMenuTreeWrite(config.DB, r, menu.RestaurantID); !d.Allowed() {
		denied(c, d)
		return
	}
	if err := config.DB.Select("Sections", "Courses").Delete(&menu).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete menu"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu deleted"})
}
