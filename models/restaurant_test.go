package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaffingQueries(t *testing.T) {
	db := setupTestDB(t)
	owner := User{Username: "owner", PasswordHash: "x", IsActive: true}
	worker := User{Username: "worker", PasswordHash: "x", IsActive: true}
	outsider := User{Username: "outsider", PasswordHash: "x", IsActive: true}
	require.NoError(t, db.Create(&owner).Error)
	require.NoError(t, db.Create(&worker).Error)
	require.NoError(t, db.Create(&outsider).Error)

	restaurant := Restaurant{Name: TranslatedString{"en": "Cafe"}, Slug: "cafe"}
	require.NoError(t, db.Create(&restaurant).Error)
	require.NoError(t, db.Create(&RestaurantStaff{
		UserID: owner.ID, RestaurantID: restaurant.ID, Position: PositionOwner,
	}).Error)
	require.NoError(t, db.Create(&RestaurantStaff{
		UserID: worker.ID, RestaurantID: restaurant.ID, Position: PositionWorker,
	}).Error)

	assert.True(t, IsOwner(db, &owner, restaurant.ID))
	assert.False(t, IsOwner(db, &worker, restaurant.ID))
	assert.False(t, IsOwner(db, &outsider, restaurant.ID))

	assert.True(t, IsOwnerOrWorker(db, &owner, restaurant.ID))
	assert.True(t, IsOwnerOrWorker(db, &worker, restaurant.ID))
	assert.False(t, IsOwnerOrWorker(db, &outsider, restaurant.ID))

	assert.True(t, HasAnyStaffRole(db, &worker))
	assert.False(t, HasAnyStaffRole(db, &outsider))
}

func TestDeactivatedUserLosesStaffPrivileges(t *testing.T) {
	db := setupTestDB(t)
	user := User{Username: "ghost", PasswordHash: "x", IsActive: true}
	require.NoError(t, db.Create(&user).Error)
	restaurant := Restaurant{Name: TranslatedString{"en": "Cafe"}, Slug: "cafe"}
	require.NoError(t, db.Create(&restaurant).Error)
	require.NoError(t, db.Create(&RestaurantStaff{
		UserID: user.ID, RestaurantID: restaurant.ID, Position: PositionOwner,
	}).Error)

	// The staff row stays, the privileges go
	user.IsActive = false
	require.NoError(t, db.Save(&user).Error)
	assert.False(t, IsOwner(db, &user, restaurant.ID))
	assert.False(t, IsOwnerOrWorker(db, &user, restaurant.ID))

	var count int64
	db.Model(&RestaurantStaff{}).Where("user_id = ?", user.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestStaffingQueriesNilUser(t *testing.T) {
	db := setupTestDB(t)
	assert.False(t, IsOwner(db, nil, 1))
	assert.False(t, IsOwnerOrWorker(db, nil, 1))
	assert.False(t, HasAnyStaffRole(db, nil))
}

func TestCheckSlugFree(t *testing.T) {
	db := setupTestDB(t)
	restaurant := Restaurant{Name: TranslatedString{"en": "Cafe"}, Slug: "My-Cafe"}
	require.NoError(t, db.Create(&restaurant).Error)

	// Collisions are case-insensitive
	assert.ErrorIs(t, CheckSlugFree(db, "my-cafe", 0), ErrSlugTaken)
	assert.ErrorIs(t, CheckSlugFree(db, "MY-CAFE", 0), ErrSlugTaken)
	assert.NoError(t, CheckSlugFree(db, "other-cafe", 0))

	// A restaurant never collides with itself
	assert.NoError(t, CheckSlugFree(db, "my-cafe", restaurant.ID))

	// Empty slugs are assigned later, never checked
	assert.NoError(t, CheckSlugFree(db, "", 0))
}

func TestCurrentMenu(t *testing.T) {
	db := setupTestDB(t)
	restaurant := Restaurant{Name: TranslatedString{"en": "Cafe"}, Slug: "cafe"}
	require.NoError(t, db.Create(&restaurant).Error)

	assert.Nil(t, restaurant.CurrentMenu(db))

	draft := Menu{Title: TranslatedString{"en": "Draft"}, RestaurantID: restaurant.ID}
	require.NoError(t, db.Create(&draft).Error)
	assert.Nil(t, restaurant.CurrentMenu(db))

	active := Menu{Title: TranslatedString{"en": "Active"}, RestaurantID: restaurant.ID, Published: true}
	require.NoError(t, db.Create(&active).Error)
	menu := restaurant.CurrentMenu(db)
	require.NotNil(t, menu)
	assert.Equal(t, active.ID, menu.ID)
}

func TestCoursePublishedChain(t *testing.T) {
	db := setupTestDB(t)
	restaurant := Restaurant{Name: TranslatedString{"en": "Cafe"}, Slug: "cafe"}
	require.NoError(t, db.Create(&restaurant).Error)
	menu := Menu{Title: TranslatedString{"en": "Menu"}, RestaurantID: restaurant.ID, Published: true}
	require.NoError(t, db.Create(&menu).Error)
	section := MenuSection{Title: TranslatedString{"en": "Soups"}, MenuID: menu.ID, Published: true}
	require.NoError(t, db.Create(&section).Error)

	inSection := MenuCourse{Title: TranslatedString{"en": "Borscht"}, MenuID: menu.ID, SectionID: &section.ID, Price: 7, Published: true}
	sectionless := MenuCourse{Title: TranslatedString{"en": "Bread"}, MenuID: menu.ID, Price: 2, Published: true}
	require.NoError(t, db.Create(&inSection).Error)
	require.NoError(t, db.Create(&sectionless).Error)

	assert.True(t, inSection.CheckPublished(db))
	// A course without a section needs only its own flag and the menu's
	assert.True(t, sectionless.CheckPublished(db))

	section.Published = false
	require.NoError(t, db.Save(&section).Error)
	assert.False(t, inSection.CheckPublished(db))
	assert.True(t, sectionless.CheckPublished(db))

	menu.Published = false
	require.NoError(t, db.Save(&menu).Error)
	assert.False(t, sectionless.CheckPublished(db))
}
