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

type StaffRequest struct {
	RestaurantID uint                 `json:"restaurant"`
	UserID       uint                 `json:"user"`
	Position     models.StaffPosition `json:"position"`
}

func validPosition(p models.StaffPosition) bool {
	return p == models.PositionOwner || p == models.PositionWorker
}

// ListStaff lists the staff records visible to the requester, optionally
// narrowed by ?restaurant= and ?user=. The filters can only shrink the
// visible set, never widen it.
func ListStaff(c *gin.Context) {
	r := middleware.GetRequester(c)
	if d := authz.DecideStaffList(r); !d.Allowed() {
		denied(c, d)
		return
	}

	query := authz.VisibleStaff(config.DB, r).Order("id")
	if restaurant := c.Query("restaurant"); restaurant != "" {
		query = query.Where("restaurant_id = ?", restaurant)
	}
	if user := c.Query("user"); user != "" {
		query = query.Where("user_id = ?", user)
	}

	var staff []models.RestaurantStaff
	query.Find(&staff)
	c.JSON(http.StatusOK, listResponse(len(staff), staff))
}

// GetStaff retrieves one staff record. Records outside the requester's
// restaurants read as not found.
func GetStaff(c *gin.Context) {
	r := middleware.GetRequester(c)
	if d := authz.DecideStaffList(r); !d.Allowed() {
		denied(c, d)
		return
	}
	var staff models.RestaurantStaff
	if err := authz.VisibleStaff(config.DB, r).First(&staff, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Staff record not found"})
		return
	}
	c.JSON(http.StatusOK, staff)
}

// CreateStaff hires a user into a restaurant (owner of that restaurant or
// staff/admin). A missing or unknown restaurant in the payload is answered
// as forbidden, not as a validation error.
func CreateStaff(c *gin.Context) {
	r := middleware.GetRequester(c)

	var req StaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var restaurant models.Restaurant
	restaurantFound := config.DB.First(&restaurant, req.RestaurantID).Error == nil
	if d := authz.DecideStaffWrite(config.DB, r, req.RestaurantID, restaurantFound); !d.Allowed() {
		denied(c, d)
		return
	}

	if !validPosition(req.Position) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Position must be 'owner' or 'worker'"})
		return
	}
	var user models.User
	if err := config.DB.First(&user, req.UserID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown user"})
		return
	}
	var existing models.RestaurantStaff
	err := config.DB.
		Where("user_id = ? AND restaurant_id = ?", req.UserID, req.RestaurantID).
		First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "User already staffs this restaurant"})
		return
	}

	staff := models.RestaurantStaff{
		UserID:       req.UserID,
		RestaurantID: req.RestaurantID,
		Position:     req.Position,
	}
	if err := config.DB.Create(&staff).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create staff record"})
		return
	}
	config.Log.Info("Staff record created",
		zap.Uint("restaurant", staff.RestaurantID),
		zap.Uint("user", staff.UserID),
		zap.String("position", string(staff.Position)))
	c.JSON(http.StatusCreated, staff)
}

// UpdateStaff changes a colleague's position. Owners may promote workers to
// owner or demote other owners; there is deliberately no last-owner guard.
func UpdateStaff(c *gin.Context) {
	r := middleware.GetRequester(c)
	if d := authz.DecideStaffList(r); !d.Allowed() {
		denied(c, d)
		return
	}
	var staff models.RestaurantStaff
	if err := authz.VisibleStaff(config.DB, r).First(&staff, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Staff record not found"})
		return
	}
	if d := authz.DecideStaffWrite(config.DB, r, staff.RestaurantID, true); !d.Allowed() {
		denied(c, d)
		return
	}

	var req struct {
		Position models.StaffPosition `json:"position" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validPosition(req.Position) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Position must be 'owner' or 'worker'"})
		return
	}

	staff.Position = req.Position
	if err := config.DB.Save(&staff).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update staff record"})
		return
	}
	c.JSON(http.StatusOK, staff)
}

// DeleteStaff removes a user from a restaurant's staff
func DeleteStaff(c *gin.Context) {
	r := middleware.GetRequester(c)
	if d := authz.DecideStaffList(r); !d.Allowed() {
		denied(c, d)
		return
	}
	var staff models.RestaurantStaff
	if err := authz.VisibleStaff(config.DB, r).First(&staff, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Staff record not found"})
		return
	}
	if d := authz.DecideStaffWrite(config.DB, r, staff.RestaurantID, true); !d.Allowed() {
		denied(c, d)
		return
	}
	config.DB.Delete(&staff)
	c.JSON(http.StatusOK, gin.H{"message": "Staff record deleted"})
}
