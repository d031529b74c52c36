package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"restaurant-menu-api/config"
	"restaurant-menu-api/middleware"
	"restaurant-menu-api/models"
	"restaurant-menu-api/routes"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupServer wires a router against a fresh in-memory database. Handlers talk
// to the package-level config globals, so those are swapped per test.
func setupServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	config.Cfg = config.Settings{
		Port:            "8080",
		DatabasePath:    ":memory:",
		JWTSecret:       "test_secret",
		TokenTTL:        time.Hour,
		DefaultLanguage: "en",
		PublicBaseURL:   "http://localhost:8080",
		Env:             "dev",
	}
	config.Log = zap.NewNop()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// The in-memory database exists per connection; keep the pool at one.
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.AuthToken{},
		&models.RestaurantCategory{},
		&models.Restaurant{},
		&models.RestaurantStaff{},
		&models.Menu{},
		&models.MenuSection{},
		&models.MenuCourse{},
		&models.Tariff{},
	))
	config.DB = db

	router := gin.New()
	routes.SetupRoutes(router)
	return router
}

func createUser(t *testing.T, username string, isStaff bool) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		IsActive:     true,
		IsStaff:      isStaff,
	}
	require.NoError(t, config.DB.Create(user).Error)
	return user
}

// loginAs issues a bearer token the way Login does: a server-side AuthToken
// row plus a JWT carrying the row's key.
func loginAs(t *testing.T, user *models.User) string {
	t.Helper()
	row := models.AuthToken{Key: uuid.NewString(), UserID: user.ID}
	require.NoError(t, config.DB.Create(&row).Error)
	token, err := middleware.GenerateToken(user, row.Key)
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// seedRestaurant creates a restaurant with the given owner already staffed.
func seedRestaurant(t *testing.T, name, slug string, owner *models.User) *models.Restaurant {
	t.Helper()
	restaurant := &models.Restaurant{
		Name: models.TranslatedString{"en": name},
		Slug: slug,
	}
	require.NoError(t, config.DB.Create(restaurant).Error)
	if owner != nil {
		staff := models.RestaurantStaff{
			UserID:       owner.ID,
			RestaurantID: restaurant.ID,
			Position:     models.PositionOwner,
		}
		require.NoError(t, config.DB.Create(&staff).Error)
	}
	return restaurant
}

func addWorker(t *testing.T, restaurant *models.Restaurant, user *models.User) *models.RestaurantStaff {
	t.Helper()
	staff := &models.RestaurantStaff{
		UserID:       user.ID,
		RestaurantID: restaurant.ID,
		Position:     models.PositionWorker,
	}
	require.NoError(t, config.DB.Create(staff).Error)
	return staff
}
