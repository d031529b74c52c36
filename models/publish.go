package models

import "gorm.io/gorm"

// SaveMenu persists a menu and enforces the single-published-menu rule: when
// the saved menu ends up published, every other menu of the same restaurant is
// unpublished in the same transaction. The sibling update is one bulk UPDATE,
// so re-publishing an already published menu is a no-op and a partially
// applied cascade cannot be observed.
//
// All menu create/update paths must go through here instead of calling Save
// directly, otherwise a restaurant can end up with two published menus.
func SaveMenu(db *gorm.DB, menu *Menu) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(menu).Error; err != nil {
			return err
		}
		if menu.Published && menu.RestaurantID != 0 {
			err := tx.Model(&Menu{}).
				Where("restaurant_id = ? AND id <> ?", menu.RestaurantID, menu.ID).
				Update("published", false).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
