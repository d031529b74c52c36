package handlers

import (
	"encoding/json"
	"net/http"

	"restaurant-menu-api/authz"
	"restaurant-menu-api/config"
	"restaurant-menu-api/middleware"
	"restaurant-menu-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type CreateCourseRequest struct {
	Title       models.TranslatedString `json:"title"`
	Composition models.TranslatedString `json:"composition"`
	MenuID      uint                    `json:"menu"`
	SectionID   *uint                   `json:"section"`
	Price       *float64                `json:"price"`
	Published   *bool                   `json:"published"`
	CookingTime *int64                  `json:"cooking_time"`
	Options     datatypes.JSON          `json:"options"`
}

// UpdateCourseRequest keeps the section reference as raw JSON so an explicit
// `"section": null` (detach) is distinguishable from the field being absent.
type UpdateCourseRequest struct {
	Title       models.TranslatedString `json:"title"`
	Composition models.TranslatedString `json:"composition"`
	Section     json.RawMessage         `json:"section"`
	Price       *float64                `json:"price"`
	Published   *bool                   `json:"published"`
	CookingTime *int64                  `json:"cooking_time"`
	Options     datatypes.JSON          `json:"options"`
}

// ListCourses lists the courses visible to the requester
func ListCourses(c *gin.Context) {
	r := middleware.GetRequester(c)
	var courses []models.MenuCourse
	authz.VisibleCourses(config.DB, r).Order("id").Find(&courses)
	c.JSON(http.StatusOK, listResponse(len(courses), courses))
}

// GetCourse retrieves one course under the visibility rules
func GetCourse(c *gin.Context) {
	r := middleware.GetRequester(c)
	var course models.MenuCourse
	if err := authz.VisibleCourses(config.DB, r).First(&course, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}
	c.JSON(http.StatusOK, course)
}

// CreateCourse adds a course to a menu of a restaurant the requester staffs.
// The section, when given, must belong to the same menu.
func CreateCourse(c *gin.Context) {
	r := middleware.GetRequester(c)

	var req CreateCourseRequest
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
	if len(req.Title) == 0 || req.Price == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Course title and price are required"})
		return
	}
	if req.SectionID != nil {
		var section models.MenuSection
		if err := config.DB.First(&section, *req.SectionID).Error; err != nil || section.MenuID != req.MenuID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Section does not belong to that menu"})
			return
		}
	}

	course := models.MenuCourse{
		Title:       req.Title,
		Composition: req.Composition,
		MenuID:      req.MenuID,
		SectionID:   req.SectionID,
		Price:       *req.Price,
		Published:   true,
		CookingTime: req.CookingTime,
		Options:     req.Options,
	}
	if req.Published != nil {
		course.Published = *req.Published
	}
	if err := config.DB.Create(&course).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create course"})
		return
	}
	c.JSON(http.StatusCreated, course)
}

// UpdateCourse edits a course
func UpdateCourse(c *gin.Context) {
	r := middleware.GetRequester(c)
	var course models.MenuCourse
	if err := authz.VisibleCourses(config.DB, r).First(&course, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}
	if d := authz.DecideMenuTreeWrite(config.DB, r, course.RestaurantID(config.DB)); !d.Allowed() {
		denied(c, d)
		return
	}

	var req UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Section) > 0 {
		if string(req.Section) == "null" {
			course.SectionID = nil
		} else {
			var sectionID uint
			if err := json.Unmarshal(req.Section, &sectionID); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Section must be an id or null"})
				return
			}
			var section models.MenuSection
			if err := config.DB.First(&section, sectionID).Error; err != nil || section.MenuID != course.MenuID {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Section does not belong to that menu"})
				return
			}
			course.SectionID = &sectionID
		}
	}
	if req.Title != nil {
		course.Title = req.Title
	}
	if req.Composition != nil {
		course.Composition = req.Composition
	}
	if req.Price != nil {
		course.Price = *req.Price
	}
	if req.Published != nil {
		course.Published = *req.Published
	}
	if req.CookingTime != nil {
		course.CookingTime = req.CookingTime
	}
	if req.Options != nil {
		course.Options = req.Options
	}
	if err := config.DB.Save(&course).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update course"})
		return
	}
	c.JSON(http.StatusOK, course)
}

// DeleteCourse removes a course
func DeleteCourse(c *gin.Context) {
	r := middleware.GetRequester(c)
	var course models.MenuCourse
	if err := authz.VisibleCourses(config.DB, r).First(&course, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}
	if d := authz.DecideMenuTreeWrite(config.DB, r, course.RestaurantID(config.DB)); !d.Allowed() {
		denied(c, d)
		return
	}
	config.DB.Delete(&course)
	c.JSON(http.StatusOK, gin.H{"message": "Course deleted"})
}
