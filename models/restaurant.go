package models

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// StaffPosition is the role a user holds at one restaurant
type StaffPosition string

const (
	PositionOwner  StaffPosition = "owner"
	PositionWorker StaffPosition = "worker"
)

// ErrSlugTaken means another restaurant already uses the slug (case-insensitive)
var ErrSlugTaken = errors.New("restaurant slug is already taken")

type RestaurantCategory struct {
	ID        uint             `json:"id" gorm:"primaryKey"`
	Name      TranslatedString `json:"name" gorm:"not null"`
	Stars     uint             `json:"stars" gorm:"default:0"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type Restaurant struct {
	ID          uint                `json:"id" gorm:"primaryKey"`
	Name        TranslatedString    `json:"name" gorm:"not null"`
	Description TranslatedString    `json:"description"`
	Slug        string              `json:"slug" gorm:"uniqueIndex"`
	CategoryID  *uint               `json:"category_id"`
	Category    *RestaurantCategory `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Stars       uint                `json:"stars" gorm:"default:0"`

	Country        string `json:"country"`
	City           string `json:"city"`
	Street         string `json:"street"`
	Building       string `json:"building"`
	AddressDetails string `json:"address_details"`
	ZipCode        string `json:"zip_code"`

	Longitude *float64 `json:"longitude"`
	Latitude  *float64 `json:"latitude"`

	Phone            string   `json:"phone"`
	Site             string   `json:"site"`
	TwitterProfile   string   `json:"twitter_profile"`
	FacebookProfile  string   `json:"facebook_profile"`
	InstagramProfile string   `json:"instagram_profile"`
	AverageReceipt   *float64 `json:"average_receipt"`

	Logo    string `json:"logo"`
	Picture string `json:"picture"`

	Menus []Menu            `json:"menus,omitempty" gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`
	Staff []RestaurantStaff `json:"staff,omitempty" gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RestaurantStaff links one user to one restaurant with a position. A user may
// hold staff records at any number of restaurants; a restaurant may have any
// number of owners.
type RestaurantStaff struct {
	ID           uint          `json:"id" gorm:"primaryKey"`
	UserID       uint          `json:"user" gorm:"not null;uniqueIndex:idx_user_restaurant"`
	RestaurantID uint          `json:"restaurant" gorm:"not null;uniqueIndex:idx_user_restaurant"`
	Position     StaffPosition `json:"position" gorm:"not null"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// ── Staffing queries ────────────────────────────────────────────────────────
//
// These answer "what may this user do at this restaurant". They are the single
// source of truth consulted by both visibility filtering and the authorization
// decisions. An anonymous or deactivated user holds no staff privileges no
// matter what rows exist for them.

// IsOwner reports whether user holds an owner position at the restaurant
func IsOwner(db *gorm.DB, user *User, restaurantID uint) bool {
	if user == nil || !user.IsActive {
		return false
	}
	var count int64
	db.Model(&RestaurantStaff{}).
		Where("user_id = ? AND restaurant_id = ? AND position = ?", user.ID, restaurantID, PositionOwner).
		Count(&count)
	return count > 0
}

// IsOwnerOrWorker reports whether user holds any position at the restaurant
func IsOwnerOrWorker(db *gorm.DB, user *User, restaurantID uint) bool {
	if user == nil || !user.IsActive {
		return false
	}
	var count int64
	db.Model(&RestaurantStaff{}).
		Where("user_id = ? AND restaurant_id = ?", user.ID, restaurantID).
		Count(&count)
	return count > 0
}

// StaffRestaurantIDs returns a subquery selecting the ids of every restaurant
// the user holds any position at. Meant to be embedded in visibility filters:
//
//	db.Where("restaurant_id IN (?)", models.StaffRestaurantIDs(db, user))
func StaffRestaurantIDs(db *gorm.DB, user *User) *gorm.DB {
	return db.Model(&RestaurantStaff{}).
		Select("restaurant_id").
		Where("user_id = ?", user.ID)
}

// OwnedRestaurantIDs is like StaffRestaurantIDs but restricted to ownership.
func OwnedRestaurantIDs(db *gorm.DB, user *User) *gorm.DB {
	return db.Model(&RestaurantStaff{}).
		Select("restaurant_id").
		Where("user_id = ? AND position = ?", user.ID, PositionOwner)
}

// HasAnyStaffRole reports whether the user staffs at least one restaurant.
func HasAnyStaffRole(db *gorm.DB, user *User) bool {
	if user == nil || !user.IsActive {
		return false
	}
	var count int64
	db.Model(&RestaurantStaff{}).Where("user_id = ?", user.ID).Count(&count)
	return count > 0
}

// ── Slug handling ───────────────────────────────────────────────────────────

// CheckSlugFree returns ErrSlugTaken when another restaurant already holds the
// slug, compared case-insensitively. excludeID skips the restaurant itself on
// update; pass 0 on create.
func CheckSlugFree(db *gorm.DB, slug string, excludeID uint) error {
	if slug == "" {
		return nil
	}
	var count int64
	q := db.Model(&Restaurant{}).Where("LOWER(slug) = LOWER(?)", slug)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	q.Count(&count)
	if count > 0 {
		return ErrSlugTaken
	}
	return nil
}

// DefaultSlug is assigned when a restaurant is created without a slug.
func DefaultSlug(id uint) string {
	return fmt.Sprintf("id_%d", id)
}

// CurrentMenu returns the restaurant's published menu, or nil when it has none.
func (r *Restaurant) CurrentMenu(db *gorm.DB) *Menu {
	var menu Menu
	err := db.Where("restaurant_id = ? AND published = ?", r.ID, true).
		Order("id").First(&menu).Error
	if err != nil {
		return nil
	}
	return &menu
}
