package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"restaurant-menu-api/authz"
	"restaurant-menu-api/config"
	"restaurant-menu-api/middleware"
	"restaurant-menu-api/models"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RestaurantRequest carries create/update payloads. Pointer fields
// distinguish "not sent" from zero values so PATCH-style updates work.
type RestaurantRequest struct {
	Name             models.TranslatedString `json:"name"`
	Description      models.TranslatedString `json:"description"`
	Slug             *string                 `json:"slug"`
	CategoryID       *uint                   `json:"category_id"`
	Stars            *uint                   `json:"stars"`
	Country          *string                 `json:"country"`
	City             *string                 `json:"city"`
	Street           *string                 `json:"street"`
	Building         *string                 `json:"building"`
	AddressDetails   *string                 `json:"address_details"`
	ZipCode          *string                 `json:"zip_code"`
	Longitude        *float64                `json:"longitude"`
	Latitude         *float64                `json:"latitude"`
	Phone            *string                 `json:"phone"`
	Site             *string                 `json:"site"`
	TwitterProfile   *string                 `json:"twitter_profile"`
	FacebookProfile  *string                 `json:"facebook_profile"`
	InstagramProfile *string                 `json:"instagram_profile"`
	AverageReceipt   *float64                `json:"average_receipt"`
	Logo             *string                 `json:"logo"`
	Picture          *string                 `json:"picture"`
}

func (req *RestaurantRequest) apply(restaurant *models.Restaurant) {
	if req.Name != nil {
		restaurant.Name = req.Name
	}
	if req.Description != nil {
		restaurant.Description = req.Description
	}
	if req.Slug != nil {
		restaurant.Slug = *req.Slug
	}
	if req.CategoryID != nil {
		restaurant.CategoryID = req.CategoryID
	}
	if req.Stars != nil {
		restaurant.Stars = *req.Stars
	}
	if req.Country != nil {
		restaurant.Country = *req.Country
	}
	if req.City != nil {
		restaurant.City = *req.City
	}
	if req.Street != nil {
		restaurant.Street = *req.Street
	}
	if req.Building != nil {
		restaurant.Building = *req.Building
	}
	if req.AddressDetails != nil {
		restaurant.AddressDetails = *req.AddressDetails
	}
	if req.ZipCode != nil {
		restaurant.ZipCode = *req.ZipCode
	}
	if req.Longitude != nil {
		restaurant.Longitude = req.Longitude
	}
	if req.Latitude != nil {
		restaurant.Latitude = req.Latitude
	}
	if req.Phone != nil {
		restaurant.Phone = *req.Phone
	}
	if req.Site != nil {
		restaurant.Site = *req.Site
	}
	if req.TwitterProfile != nil {
		restaurant.TwitterProfile = *req.TwitterProfile
	}
	if req.FacebookProfile != nil {
		restaurant.FacebookProfile = *req.FacebookProfile
	}
	if req.InstagramProfile != nil {
		restaurant.InstagramProfile = *req.InstagramProfile
	}
	if req.AverageReceipt != nil {
		restaurant.AverageReceipt = req.AverageReceipt
	}
	if req.Logo != nil {
		restaurant.Logo = *req.Logo
	}
	if req.Picture != nil {
		restaurant.Picture = *req.Picture
	}
}

// ListRestaurants returns all restaurants (restaurants are globally visible)
func ListRestaurants(c *gin.Context) {
	var restaurants []models.Restaurant
	query := config.DB.Preload("Category").Order("id")
	if category := c.Query("category"); category != "" {
		query = query.Where("category_id = ?", category)
	}
	query.Find(&restaurants)
	c.JSON(http.StatusOK, listResponse(len(restaurants), restaurants))
}

// GetRestaurant returns a single restaurant by id
func GetRestaurant(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.Preload("Category").First(&restaurant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	c.JSON(http.StatusOK, restaurant)
}

// GetRestaurantBySlug returns a single restaurant by its URL slug
func GetRestaurantBySlug(c *gin.Context) {
	var restaurant models.Restaurant
	err := config.DB.Preload("Category").
		Where("LOWER(slug) = LOWER(?)", c.Param("slug")).
		First(&restaurant).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	c.JSON(http.StatusOK, restaurant)
}

// CreateRestaurant lets any active user add a restaurant. The creator is
// granted an owner staff record in the same transaction — this is the only
// path by which ordinary users become owners.
func CreateRestaurant(c *gin.Context) {
	r := middleware.GetRequester(c)
	if d := authz.DecideRestaurantCreate(r); !d.Allowed() {
		denied(c, d)
		return
	}

	var req RestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Name) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Restaurant name is required"})
		return
	}

	var restaurant models.Restaurant
	req.apply(&restaurant)

	if err := models.CheckSlugFree(config.DB, restaurant.Slug, 0); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&restaurant).Error; err != nil {
			return err
		}
		if restaurant.Slug == "" {
			slug := models.DefaultSlug(restaurant.ID)
			// Someone may have claimed the literal id_<pk> slug already
			if err := models.CheckSlugFree(tx, slug, restaurant.ID); err != nil {
				return err
			}
			restaurant.Slug = slug
			if err := tx.Model(&restaurant).Update("slug", restaurant.Slug).Error; err != nil {
				return err
			}
		}
		staff := models.RestaurantStaff{
			UserID:       r.User.ID,
			RestaurantID: restaurant.ID,
			Position:     models.PositionOwner,
		}
		return tx.Create(&staff).Error
	})
	if err != nil {
		if errors.Is(err, models.ErrSlugTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create restaurant"})
		return
	}

	config.Log.Info("Restaurant created",
		zap.Uint("id", restaurant.ID), zap.Uint("owner", r.User.ID))
	c.JSON(http.StatusCreated, restaurant)
}

// UpdateRestaurant updates restaurant details (staff/admin or owner only)
func UpdateRestaurant(c *gin.Context) {
	r := middleware.GetRequester(c)
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	if d := authz.DecideRestaurantWrite(config.DB, r, restaurant.ID); !d.Allowed() {
		denied(c, d)
		return
	}

	var req RestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Slug != nil {
		if err := models.CheckSlugFree(config.DB, *req.Slug, restaurant.ID); err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
	}

	req.apply(&restaurant)
	if err := config.DB.Save(&restaurant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update restaurant"})
		return
	}
	c.JSON(http.StatusOK, restaurant)
}

// DeleteRestaurant removes a restaurant with its menus and staff records
func DeleteRestaurant(c *gin.Context) {
	r := middleware.GetRequester(c)
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	if d := authz.DecideRestaurantWrite(config.DB, r, restaurant.ID); !d.Allowed() {
		denied(c, d)
		return
	}

	// sqlite does not enforce the declared cascades, so the whole menu tree
	// is removed explicitly, bottom up, in one transaction.
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var menuIDs []uint
		if err := tx.Model(&models.Menu{}).
			Where("restaurant_id = ?", restaurant.ID).
			Pluck("id", &menuIDs).Error; err != nil {
			return err
		}
		if len(menuIDs) > 0 {
			if err := tx.Where("menu_id IN (?)", menuIDs).Delete(&models.MenuCourse{}).Error; err != nil {
				return err
			}
			if err := tx.Where("menu_id IN (?)", menuIDs).Delete(&models.MenuSection{}).Error; err != nil {
				return err
			}
			if err := tx.Where("restaurant_id = ?", restaurant.ID).Delete(&models.Menu{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("restaurant_id = ?", restaurant.ID).Delete(&models.RestaurantStaff{}).Error; err != nil {
			return err
		}
		return tx.Delete(&restaurant).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete restaurant"})
		return
	}
	config.Log.Info("Restaurant deleted", zap.Uint("id", restaurant.ID), zap.Uint("by", r.User.ID))
	c.JSON(http.StatusOK, gin.H{"message": "Restaurant deleted"})
}

// RestaurantQRCode renders a PNG QR code pointing at the restaurant's public
// menu page. No authentication: the target URL is public anyway.
func RestaurantQRCode(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	url := fmt.Sprintf("%s/api/v1/public/restaurants/%d/", config.Cfg.PublicBaseURL, restaurant.ID)
	png, err := qrcode.Encode(url, qrcode.Medium, 256)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render QR code"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="qrcode.png"`)
	c.Data(http.StatusOK, "image/png", png)
}
