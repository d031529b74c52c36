package handlers

import (
	"fmt"
	"net/http"

	"restaurant-menu-api/config"
	"restaurant-menu-api/middleware"
	"restaurant-menu-api/models"

	"github.com/gin-gonic/gin"
)

// MyRestaurants lists the restaurants the requester owns
func MyRestaurants(c *gin.Context) {
	r := middleware.GetRequester(c)

	var restaurants []models.Restaurant
	config.DB.Preload("Category").
		Where("id IN (?)", models.OwnedRestaurantIDs(config.DB, r.User)).
		Order("id").
		Find(&restaurants)

	c.JSON(http.StatusOK, listResponse(len(restaurants), restaurants))
}

// MyProblems reports data-quality warnings for the requester's owned
// restaurants: a restaurant with no published menu, a published menu without
// a single published course, and published sections with no published
// courses. Owners only — workers get an empty list, not an error.
func MyProblems(c *gin.Context) {
	r := middleware.GetRequester(c)
	lang := config.Cfg.DefaultLanguage

	var restaurants []models.Restaurant
	config.DB.
		Where("id IN (?)", models.OwnedRestaurantIDs(config.DB, r.User)).
		Order("id").
		Find(&restaurants)

	problems := []string{}
	for _, restaurant := range restaurants {
		name := restaurant.Name.Localize(lang, lang)
		menu := restaurant.CurrentMenu(config.DB)
		if menu == nil {
			problems = append(problems, fmt.Sprintf("Restaurant %s has no published menu", name))
			continue
		}

		var published int64
		config.DB.Model(&models.MenuCourse{}).
			Where("menu_id = ? AND published = ?", menu.ID, true).
			Count(&published)
		if published == 0 {
			problems = append(problems, fmt.Sprintf("The menu of restaurant %s is empty", name))
			continue
		}

		var sections []models.MenuSection
		config.DB.Where("menu_id = ? AND published = ?", menu.ID, true).Order("id").Find(&sections)
		for _, section := range sections {
			var count int64
			config.DB.Model(&models.MenuCourse{}).
				Where("section_id = ? AND published = ?", section.ID, true).
				Count(&count)
			if count == 0 {
				problems = append(problems, fmt.Sprintf(
					"Section %s of restaurant %s is empty",
					section.Title.Localize(lang, lang), name))
			}
		}
	}

	c.JSON(http.StatusOK, listResponse(len(problems), problems))
}
