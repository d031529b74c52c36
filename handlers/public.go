package handlers

import (
	"net/http"

	"restaurant-menu-api/config"
	"restaurant-menu-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// The public projector assembles a restaurant with its published menu into
// one denormalized tree for unauthenticated diners. Language selection is a
// parameter threaded through pure projection functions; entity state is never
// mutated to pick a language.
//
// One asymmetry is intentional and must stay: sections are NOT filtered by
// their published flag here, only courses are. Hiding a section hides nothing
// as long as its courses are published.

func courseToJSON(course *models.MenuCourse, language string) gin.H {
	def := config.Cfg.DefaultLanguage
	return gin.H{
		"title":        course.Title.Localize(language, def),
		"composition":  course.Composition.Localize(language, def),
		"price":        course.Price,
		"cooking_time": course.CookingTime,
	}
}

func sectionToJSON(db *gorm.DB, section *models.MenuSection, language string) gin.H {
	def := config.Cfg.DefaultLanguage
	courses := []gin.H{}
	var rows []models.MenuCourse
	db.Where("section_id = ? AND published = ?", section.ID, true).Order("id").Find(&rows)
	for i := range rows {
		courses = append(courses, courseToJSON(&rows[i], language))
	}
	return gin.H{
		"title":   section.Title.Localize(language, def),
		"courses": courses,
	}
}

func menuToJSON(db *gorm.DB, menu *models.Menu, language string) gin.H {
	def := config.Cfg.DefaultLanguage

	sections := []gin.H{}
	var sectionRows []models.MenuSection
	db.Where("menu_id = ?", menu.ID).Order("id").Find(&sectionRows)
	for i := range sectionRows {
		sections = append(sections, sectionToJSON(db, &sectionRows[i], language))
	}

	// Courses outside any section get their own list next to the sections
	courses := []gin.H{}
	var courseRows []models.MenuCourse
	db.Where("menu_id = ? AND section_id IS NULL AND published = ?", menu.ID, true).
		Order("id").Find(&courseRows)
	for i := range courseRows {
		courses = append(courses, courseToJSON(&courseRows[i], language))
	}

	return gin.H{
		"title":    menu.Title.Localize(language, def),
		"sections": sections,
		"courses":  courses,
	}
}

func restaurantToJSON(db *gorm.DB, restaurant *models.Restaurant, language string) gin.H {
	def := config.Cfg.DefaultLanguage
	obj := gin.H{
		"id":          restaurant.ID,
		"name":        restaurant.Name.Localize(language, def),
		"description": restaurant.Description.Localize(language, def),
		"phone":       restaurant.Phone,
		"site":        restaurant.Site,
		"stars":       restaurant.Stars,
		"address": gin.H{
			"country":         restaurant.Country,
			"city":            restaurant.City,
			"street":          restaurant.Street,
			"building":        restaurant.Building,
			"address_details": restaurant.AddressDetails,
			"zip_code":        restaurant.ZipCode,
			"latitude":        restaurant.Latitude,
			"longitude":       restaurant.Longitude,
		},
	}
	if restaurant.Logo != "" {
		obj["logo"] = restaurant.Logo
	}
	if restaurant.Picture != "" {
		obj["picture"] = restaurant.Picture
	}
	if restaurant.CategoryID != nil {
		var category models.RestaurantCategory
		if err := db.First(&category, *restaurant.CategoryID).Error; err == nil {
			obj["category"] = gin.H{"name": category.Name.Localize(language, def)}
		}
	}
	if menu := restaurant.CurrentMenu(db); menu != nil {
		obj["menu"] = menuToJSON(db, menu, language)
	}
	return obj
}

// PublicRestaurant returns the public menu tree for one restaurant,
// translated to ?language= (default from config). No authentication.
func PublicRestaurant(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	language := c.DefaultQuery("language", config.Cfg.DefaultLanguage)
	c.JSON(http.StatusOK, restaurantToJSON(config.DB, &restaurant, language))
}
