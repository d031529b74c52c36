package authz

import (
	"restaurant-menu-api/models"

	"gorm.io/gorm"
)

// Mutation rules, one explicit decision function per entity family. Reads are
// not decided here — they are governed by the visibility queries, so a handler
// that loaded its object through the right Visible* scope has already settled
// the read question.
//
// One carried-over contract: when a create payload names a parent that is
// missing or unknown (restaurant id for menus, menu id for sections and
// courses, restaurant id for staff records), the answer is Deny, not a
// validation error.

// DecideAdminWrite covers restaurant categories and tariffs: everybody reads,
// only staff/admin writes.
func DecideAdminWrite(r Requester) Decision {
	if !r.Authenticated() || !r.Active() {
		return NoAuth
	}
	if r.Staff() {
		return Allow
	}
	return Deny
}

// DecideRestaurantCreate allows any active, authenticated user to add a
// restaurant. The caller must grant the creator an owner staff record in the
// same transaction — this is the only way ordinary users become owners.
func DecideRestaurantCreate(r Requester) Decision {
	if !r.Authenticated() || !r.Active() {
		return NoAuth
	}
	return Allow
}

// DecideRestaurantWrite covers update/delete of a restaurant: staff/admin or
// a confirmed owner. A worker can touch the menu tree but not the restaurant
// record itself.
func DecideRestaurantWrite(db *gorm.DB, r Requester, restaurantID uint) Decision {
	if !r.Authenticated() || !r.Active() {
		return NoAuth
	}
	if r.Staff() {
		return Allow
	}
	if models.IsOwner(db, r.User, restaurantID) {
		return Allow
	}
	return Deny
}

// DecideMenuTreeCreate covers creating a menu, section or course under the
// restaurant resolved from the payload. parentFound is false when the payload
// named no parent or a nonexistent one.
func DecideMenuTreeCreate(db *gorm.DB, r Requester, restaurantID uint, parentFound bool) Decision {
	if !r.Authenticated() || !r.Active() {
		return NoAuth
	}
	if !parentFound {
		return Deny
	}
	if r.Staff() {
		return Allow
	}
	if models.IsOwnerOrWorker(db, r.User, restaurantID) {
		return Allow
	}
	return Deny
}

// DecideMenuTreeWrite covers update/delete of a menu, section or course the
// requester can already see: staff/admin or anybody staffing the owning
// restaurant.
func DecideMenuTreeWrite(db *gorm.DB, r Requester, restaurantID uint) Decision {
	if !r.Authenticated() || !r.Active() {
		return NoAuth
	}
	if r.Staff() {
		return Allow
	}
	if models.IsOwnerOrWorker(db, r.User, restaurantID) {
		return Allow
	}
	return Deny
}

// DecideStaffWrite covers create/update/delete of staff records: staff/admin
// or an owner of the restaurant in question. Workers see their colleagues'
// rows but may not manage them — not even their own.
func DecideStaffWrite(db *gorm.DB, r Requester, restaurantID uint, restaurantFound bool) Decision {
	if !r.Authenticated() || !r.Active() {
		return NoAuth
	}
	if !restaurantFound {
		return Deny
	}
	if r.Staff() {
		return Allow
	}
	if models.IsOwner(db, r.User, restaurantID) {
		return Allow
	}
	return Deny
}

// DecideStaffList covers listing staff records. Visibility does the actual
// narrowing; this only rules out anonymous and deactivated accounts.
func DecideStaffList(r Requester) Decision {
	if !r.Authenticated() || !r.Active() {
		return NoAuth
	}
	return Allow
}
