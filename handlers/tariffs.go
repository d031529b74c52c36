package handlers

import (
	"net/http"

	"restaurant-menu-api/authz"
	"restaurant-menu-api/config"
	"restaurant-menu-api/middleware"
	"restaurant-menu-api/models"

	"github.com/gin-gonic/gin"
)

type TariffRequest struct {
	Name        models.TranslatedString `json:"name"`
	Description models.TranslatedString `json:"description"`
	MonthPrice  *int                    `json:"month_price"`
	YearPrice   *int                    `json:"year_price"`
}

// ListTariffs returns all tariffs (public)
func ListTariffs(c *gin.Context) {
	var tariffs []models.Tariff
	config.DB.Order("id").Find(&tariffs)
	c.JSON(http.StatusOK, listResponse(len(tariffs), tariffs))
}

// GetTariff returns one tariff (public)
func GetTariff(c *gin.Context) {
	var tariff models.Tariff
	if err := config.DB.First(&tariff, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tariff not found"})
		return
	}
	c.JSON(http.StatusOK, tariff)
}

// CreateTariff adds a tariff (staff/admin only)
func CreateTariff(c *gin.Context) {
	if d := authz.DecideAdminWrite(middleware.GetRequester(c)); !d.Allowed() {
		denied(c, d)
		return
	}
	var req TariffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Name) == 0 || req.MonthPrice == nil || req.YearPrice == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name, month_price and year_price are required"})
		return
	}
	tariff := models.Tariff{
		Name:        req.Name,
		Description: req.Description,
		MonthPrice:  *req.MonthPrice,
		YearPrice:   *req.YearPrice,
	}
	if err := config.DB.Create(&tariff).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tariff"})
		return
	}
	c.JSON(http.StatusCreated, tariff)
}

// UpdateTariff edits a tariff (staff/admin only)
func UpdateTariff(c *gin.Context) {
	if d := authz.DecideAdminWrite(middleware.GetRequester(c)); !d.Allowed() {
		denied(c, d)
		return
	}
	var tariff models.Tariff
	if err := config.DB.First(&tariff, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tariff not found"})
		return
	}
	var req TariffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name != nil {
		tariff.Name = req.Name
	}
	if req.Description != nil {
		tariff.Description = req.Description
	}
	if req.MonthPrice != nil {
		tariff.MonthPrice = *req.MonthPrice
	}
	if req.YearPrice != nil {
		tariff.YearPrice = *req.YearPrice
	}
	if err := config.DB.Save(&tariff).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tariff"})
		return
	}
	c.JSON(http.StatusOK, tariff)
}

// DeleteTariff removes a tariff (staff/admin only)
func DeleteTariff(c *gin.Context) {
	if d := authz.DecideAdminWrite(middleware.GetRequester(c)); !d.Allowed() {
		denied(c, d)
		return
	}
	var tariff models.Tariff
	if err := config.DB.First(&tariff, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tariff not found"})
		return
	}
	config.DB.Delete(&tariff)
	c.JSON(http.StatusOK, gin.H{"message": "Tariff deleted"})
}
