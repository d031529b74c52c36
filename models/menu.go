package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Menu struct {
	ID           uint             `json:"id" gorm:"primaryKey"`
	Title        TranslatedString `json:"title" gorm:"not null"`
	RestaurantID uint             `json:"restaurant" gorm:"not null"`
	Restaurant   *Restaurant      `json:"-" gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`
	Published    bool             `json:"published" gorm:"default:false"`

	Sections []MenuSection `json:"sections,omitempty" gorm:"foreignKey:MenuID;constraint:OnDelete:CASCADE"`
	Courses  []MenuCourse  `json:"courses,omitempty" gorm:"foreignKey:MenuID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type MenuSection struct {
	ID        uint             `json:"id" gorm:"primaryKey"`
	Title     TranslatedString `json:"title" gorm:"not null"`
	MenuID    uint             `json:"menu" gorm:"not null"`
	Menu      *Menu            `json:"-" gorm:"foreignKey:MenuID;constraint:OnDelete:CASCADE"`
	Published bool             `json:"published" gorm:"default:true"`

	Courses []MenuCourse `json:"courses,omitempty" gorm:"foreignKey:SectionID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type MenuCourse struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	Title       TranslatedString `json:"title" gorm:"not null"`
	Composition TranslatedString `json:"composition"`
	MenuID      uint             `json:"menu" gorm:"not null"`
	Menu        *Menu            `json:"-" gorm:"foreignKey:MenuID;constraint:OnDelete:CASCADE"`
	// A course may live outside any section; deleting the section detaches
	// the course instead of removing it.
	SectionID *uint        `json:"section"`
	Section   *MenuSection `json:"-" gorm:"foreignKey:SectionID;constraint:OnDelete:SET NULL"`

	Price     float64 `json:"price" gorm:"not null"`
	Published bool    `json:"published" gorm:"default:true"`
	// Cooking time in seconds
	CookingTime *int64         `json:"cooking_time"`
	Options     datatypes.JSON `json:"options,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ── Effective publication ───────────────────────────────────────────────────
//
// A menu entity is only truly public when its whole ownership chain is
// published: sections need their menu, courses need their menu and, when they
// sit in a section, that section too. A sectionless course needs just its own
// flag and the menu's.

// CheckPublished reports whether the menu itself is published.
func (m *Menu) CheckPublished() bool {
	return m.Published
}

// CheckPublished reports whether the section and its parent menu are published.
func (s *MenuSection) CheckPublished(db *gorm.DB) bool {
	if !s.Published {
		return false
	}
	var menu Menu
	if err := db.First(&menu, s.MenuID).Error; err != nil {
		return false
	}
	return menu.Published
}

// CheckPublished reports whether the course is effectively published.
func (c *MenuCourse) CheckPublished(db *gorm.DB) bool {
	if !c.Published {
		return false
	}
	var menu Menu
	if err := db.First(&menu, c.MenuID).Error; err != nil {
		return false
	}
	if !menu.Published {
		return false
	}
	if c.SectionID == nil {
		return true
	}
	var section MenuSection
	if err := db.First(&section, *c.SectionID).Error; err != nil {
		return false
	}
	return section.Published
}

// RestaurantID resolves the restaurant owning the section's menu. Returns 0
// when the chain is broken.
func (s *MenuSection) RestaurantID(db *gorm.DB) uint {
	var menu Menu
	if err := db.First(&menu, s.MenuID).Error; err != nil {
		return 0
	}
	return menu.RestaurantID
}

// RestaurantID resolves the restaurant owning the course's menu.
func (c *MenuCourse) RestaurantID(db *gorm.DB) uint {
	var menu Menu
	if err := db.First(&menu, c.MenuID).Error; err != nil {
		return 0
	}
	return menu.RestaurantID
}
