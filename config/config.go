package config

import (
	"time"

	"restaurant-menu-api/models"

	"github.com/glebarez/sqlite"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Log is the application-wide logger, set up in Init before anything else runs.
var Log *zap.Logger

// Settings holds everything configurable from the environment or an optional
// config file (menu-api.yaml in the working directory).
type Settings struct {
	Port            string        `mapstructure:"port"`
	DatabasePath    string        `mapstructure:"database_path"`
	JWTSecret       string        `mapstructure:"jwt_secret"`
	TokenTTL        time.Duration `mapstructure:"token_ttl"`
	DefaultLanguage string        `mapstructure:"default_language"`
	PublicBaseURL   string        `mapstructure:"public_base_url"`
	Env             string        `mapstructure:"env"`
}

var Cfg Settings

// Init loads settings and the logger. Must be called before InitDB.
func Init() {
	v := viper.New()
	v.SetDefault("port", "8080")
	v.SetDefault("database_path", "menu_backend.db")
	v.SetDefault("jwt_secret", "menu_backend_super_secret_2024")
	v.SetDefault("token_ttl", 24*time.Hour)
	v.SetDefault("default_language", "en")
	v.SetDefault("public_base_url", "http://localhost:8080")
	v.SetDefault("env", "production")

	v.SetConfigName("menu-api")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			panic("failed to read config file: " + err.Error())
		}
	}
	if err := v.Unmarshal(&Cfg); err != nil {
		panic("failed to parse settings: " + err.Error())
	}

	var err error
	if Cfg.Env == "dev" {
		Log, err = zap.NewDevelopment()
	} else {
		Log, err = zap.NewProduction()
	}
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
}

// JWTSecret returns the token signing key.
func JWTSecret() []byte {
	return []byte(Cfg.JWTSecret)
}

func InitDB() {
	var err error
	DB, err = gorm.Open(sqlite.Open(Cfg.DatabasePath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		Log.Fatal("Failed to connect to database", zap.Error(err))
	}

	sqlDB, err := DB.DB()
	if err != nil {
		Log.Fatal("Failed to access underlying sql.DB", zap.Error(err))
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// Auto-migrate all models
	err = DB.AutoMigrate(
		&models.User{},
		&models.AuthToken{},
		&models.RestaurantCategory{},
		&models.Restaurant{},
		&models.RestaurantStaff{},
		&models.Menu{},
		&models.MenuSection{},
		&models.MenuCourse{},
		&models.Tariff{},
	)
	if err != nil {
		Log.Fatal("Failed to migrate database", zap.Error(err))
	}

	Log.Info("Database connected and migrated", zap.String("path", Cfg.DatabasePath))
}
