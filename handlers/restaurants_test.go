package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"restaurant-menu-api/config"
	"restaurant-menu-api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRestaurantGrantsOwnership(t *testing.T) {
	router := setupServer(t)
	user := createUser(t, "founder", false)

	// Anonymous creation is rejected
	w := doJSON(t, router, http.MethodPost, "/api/v1/restaurants", "", gin.H{
		"name": gin.H{"en": "New place"},
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/restaurants", loginAs(t, user), gin.H{
		"name": gin.H{"en": "New place", "ru": "Новое место"},
		"city": "Lisbon",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	id := uint(decodeBody(t, w)["id"].(float64))

	// The creator became the owner in the same transaction
	var staff models.RestaurantStaff
	require.NoError(t, config.DB.
		Where("restaurant_id = ? AND user_id = ?", id, user.ID).
		First(&staff).Error)
	assert.Equal(t, models.PositionOwner, staff.Position)

	// Blank slug got the id-based default
	var restaurant models.Restaurant
	require.NoError(t, config.DB.First(&restaurant, id).Error)
	assert.Equal(t, fmt.Sprintf("id_%d", id), restaurant.Slug)
}

func TestCreateRestaurantValidation(t *testing.T) {
	router := setupServer(t)
	user := createUser(t, "founder", false)
	token := loginAs(t, user)

	w := doJSON(t, router, http.MethodPost, "/api/v1/restaurants", token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/restaurants", token, gin.H{
		"name": gin.H{"en": "Taken"},
		"slug": "taken",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Slug collision is case-insensitive
	w = doJSON(t, router, http.MethodPost, "/api/v1/restaurants", token, gin.H{
		"name": gin.H{"en": "Another"},
		"slug": "TAKEN",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateRestaurantDefaultSlugConflict(t *testing.T) {
	router := setupServer(t)
	user := createUser(t, "founder", false)
	token := loginAs(t, user)

	// The first restaurant gets id 1; claim the slug the second one would
	// generate for itself
	w := doJSON(t, router, http.MethodPost, "/api/v1/restaurants", token, gin.H{
		"name": gin.H{"en": "Squatter"},
		"slug": "id_2",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/restaurants", token, gin.H{
		"name": gin.H{"en": "Unlucky"},
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// The rejected create rolled back entirely
	var restaurants, staff int64
	config.DB.Model(&models.Restaurant{}).Count(&restaurants)
	config.DB.Model(&models.RestaurantStaff{}).Count(&staff)
	assert.EqualValues(t, 1, restaurants)
	assert.EqualValues(t, 1, staff)
}

func TestUpdateRestaurantPermissions(t *testing.T) {
	router := setupServer(t)
	owner := createUser(t, "owner", false)
	worker := createUser(t, "worker", false)
	restaurant := seedRestaurant(t, "Trattoria", "trattoria", owner)
	addWorker(t, restaurant, worker)

	path := fmt.Sprintf("/api/v1/restaurants/%d", restaurant.ID)
	body := gin.H{"city": "Rome"}

	w := doJSON(t, router, http.MethodPatch, path, "", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Workers manage the menu tree, not the restaurant record
	w = doJSON(t, router, http.MethodPatch, path, loginAs(t, worker), body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, router, http.MethodPatch, path, loginAs(t, owner), body)
	require.Equal(t, http.StatusOK, w.Code)

	var reloaded models.Restaurant
	require.NoError(t, config.DB.First(&reloaded, restaurant.ID).Error)
	assert.Equal(t, "Rome", reloaded.City)

	// A partial update leaves the untouched fields alone
	assert.Equal(t, "trattoria", reloaded.Slug)
}

func TestRestaurantSlugChangeCollision(t *testing.T) {
	router := setupServer(t)
	owner := createUser(t, "owner", false)
	restaurant := seedRestaurant(t, "Trattoria", "trattoria", owner)
	seedRestaurant(t, "Bistro", "bistro", nil)
	token := loginAs(t, owner)

	path := fmt.Sprintf("/api/v1/restaurants/%d", restaurant.ID)

	w := doJSON(t, router, http.MethodPatch, path, token, gin.H{"slug": "Bistro"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Re-sending your own slug is not a collision
	w = doJSON(t, router, http.MethodPatch, path, token, gin.H{"slug": "trattoria"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetRestaurantBySlug(t *testing.T) {
	router := setupServer(t)
	seedRestaurant(t, "Trattoria", "trattoria", nil)

	w := doJSON(t, router, http.MethodGet, "/api/v1/restaurants/by_slug/TRATTORIA", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "trattoria", decodeBody(t, w)["slug"])

	w = doJSON(t, router, http.MethodGet, "/api/v1/restaurants/by_slug/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteRestaurantCascades(t *testing.T) {
	router := setupServer(t)
	owner := createUser(t, "owner", false)
	worker := createUser(t, "worker", false)
	restaurant := seedRestaurant(t, "Trattoria", "trattoria", owner)
	addWorker(t, restaurant, worker)

	menu := models.Menu{Title: models.TranslatedString{"en": "Menu"}, RestaurantID: restaurant.ID, Published: true}
	require.NoError(t, config.DB.Create(&menu).Error)
	section := models.MenuSection{Title: models.TranslatedString{"en": "Drinks"}, MenuID: menu.ID, Published: true}
	require.NoError(t, config.DB.Create(&section).Error)
	inSection := models.MenuCourse{Title: models.TranslatedString{"en": "Water"}, MenuID: menu.ID, SectionID: &section.ID, Price: 2, Published: true}
	loose := models.MenuCourse{Title: models.TranslatedString{"en": "Bread"}, MenuID: menu.ID, Price: 1, Published: true}
	require.NoError(t, config.DB.Create(&inSection).Error)
	require.NoError(t, config.DB.Create(&loose).Error)

	path := fmt.Sprintf("/api/v1/restaurants/%d", restaurant.ID)

	w := doJSON(t, router, http.MethodDelete, path, loginAs(t, worker), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, router, http.MethodDelete, path, loginAs(t, owner), nil)
	require.Equal(t, http.StatusOK, w.Code)

	// The whole tree goes: menus, their sections and courses, staff records
	var menus, sections, courses, staff int64
	config.DB.Model(&models.Menu{}).Where("restaurant_id = ?", restaurant.ID).Count(&menus)
	config.DB.Model(&models.MenuSection{}).Count(&sections)
	config.DB.Model(&models.MenuCourse{}).Count(&courses)
	config.DB.Model(&models.RestaurantStaff{}).Where("restaurant_id = ?", restaurant.ID).Count(&staff)
	assert.Zero(t, menus)
	assert.Zero(t, sections)
	assert.Zero(t, courses)
	assert.Zero(t, staff)
}

func TestRestaurantQRCode(t *testing.T) {
	router := setupServer(t)
	restaurant := seedRestaurant(t, "Trattoria", "trattoria", nil)

	w := doJSON(t, router, http.MethodGet,
		fmt.Sprintf("/api/v1/restaurants/%d/qrcode", restaurant.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Body.Bytes())

	w = doJSON(t, router, http.MethodGet, "/api/v1/restaurants/9999/qrcode", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMyRestaurantsAndProblems(t *testing.T) {
	router := setupServer(t)
	owner := createUser(t, "owner", false)
	worker := createUser(t, "worker", false)
	restaurant := seedRestaurant(t, "Trattoria", "trattoria", owner)
	addWorker(t, restaurant, worker)
	token := loginAs(t, owner)

	// my_restaurants lists owned restaurants only
	w := doJSON(t, router, http.MethodGet, "/api/v1/users/my_restaurants", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decodeBody(t, w)["count"])

	w = doJSON(t, router, http.MethodGet, "/api/v1/users/my_restaurants", loginAs(t, worker), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, decodeBody(t, w)["count"])

	// No published menu yet: my_problems flags it
	w = doJSON(t, router, http.MethodGet, "/api/v1/users/my_problems", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decodeBody(t, w)["count"])

	// Publish an empty menu: the problem changes but does not go away
	menu := models.Menu{Title: models.TranslatedString{"en": "Menu"}, RestaurantID: restaurant.ID, Published: true}
	require.NoError(t, config.DB.Create(&menu).Error)
	w = doJSON(t, router, http.MethodGet, "/api/v1/users/my_problems", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decodeBody(t, w)["count"])

	// A published course resolves it
	course := models.MenuCourse{Title: models.TranslatedString{"en": "Pasta"}, MenuID: menu.ID, Price: 10, Published: true}
	require.NoError(t, config.DB.Create(&course).Error)
	w = doJSON(t, router, http.MethodGet, "/api/v1/users/my_problems", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, decodeBody(t, w)["count"])
}
