package authz

import (
	"restaurant-menu-api/models"

	"gorm.io/gorm"
)

// Visibility queries. Every read of a menu-tree entity or staff record goes
// through one of these, so an object outside the returned set simply does not
// exist for the requester — retrieving it by id falls through to a 404.
//
// The rule shape is the same for menus, sections and courses:
//
//   - anonymous: only entities whose effective-published chain holds
//   - authenticated: the published set plus everything belonging to
//     restaurants the requester staffs, whatever the published flags say
//   - staff/admin: everything
//
// Restaurants, categories and tariffs are globally visible and need no scope.

func newSession(db *gorm.DB) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true})
}

func publishedMenuIDs(db *gorm.DB) *gorm.DB {
	return newSession(db).Model(&models.Menu{}).Select("id").Where("published = ?", true)
}

func staffedMenuIDs(db *gorm.DB, user *models.User) *gorm.DB {
	return newSession(db).Model(&models.Menu{}).Select("id").
		Where("restaurant_id IN (?)", models.StaffRestaurantIDs(newSession(db), user))
}

func publishedSectionIDs(db *gorm.DB) *gorm.DB {
	return newSession(db).Model(&models.MenuSection{}).Select("id").Where("published = ?", true)
}

// VisibleMenus returns the query over menus the requester may list/retrieve.
func VisibleMenus(db *gorm.DB, r Requester) *gorm.DB {
	q := db.Model(&models.Menu{})
	if r.Staff() {
		return q
	}
	if r.Active() {
		return q.Where("published = ? OR restaurant_id IN (?)",
			true, models.StaffRestaurantIDs(newSession(db), r.User))
	}
	return q.Where("published = ?", true)
}

// VisibleSections returns the query over menu sections the requester may see.
// The published side requires both the section's own flag and its menu's.
func VisibleSections(db *gorm.DB, r Requester) *gorm.DB {
	q := db.Model(&models.MenuSection{})
	if r.Staff() {
		return q
	}
	if r.Active() {
		return q.Where("(published = ? AND menu_id IN (?)) OR menu_id IN (?)",
			true, publishedMenuIDs(db), staffedMenuIDs(db, r.User))
	}
	return q.Where("published = ? AND menu_id IN (?)", true, publishedMenuIDs(db))
}

// VisibleCourses returns the query over courses the requester may see. The
// published side composes the full chain: the course's own flag, its menu's
// flag, and — only when the course sits in a section — that section's flag.
// A sectionless course needs just the first two.
func VisibleCourses(db *gorm.DB, r Requester) *gorm.DB {
	q := db.Model(&models.MenuCourse{})
	chain := "published = ? AND menu_id IN (?) AND (section_id IS NULL OR section_id IN (?))"
	if r.Staff() {
		return q
	}
	if r.Active() {
		return q.Where("("+chain+") OR menu_id IN (?)",
			true, publishedMenuIDs(db), publishedSectionIDs(db), staffedMenuIDs(db, r.User))
	}
	return q.Where(chain, true, publishedMenuIDs(db), publishedSectionIDs(db))
}

// VisibleStaff returns the query over staff records the requester may see:
// staff/admin see everything, anyone else sees only the records of
// restaurants they themselves staff — which includes their colleagues' rows.
// Anonymous requesters are rejected before the query is ever built.
func VisibleStaff(db *gorm.DB, r Requester) *gorm.DB {
	q := db.Model(&models.RestaurantStaff{})
	if r.Staff() {
		return q
	}
	if r.Active() {
		return q.Where("restaurant_id IN (?)", models.StaffRestaurantIDs(newSession(db), r.User))
	}
	// no rows for anonymous or deactivated accounts
	return q.Where("1 = 0")
}
