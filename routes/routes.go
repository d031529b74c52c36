package routes

import (
	"restaurant-menu-api/handlers"
	"restaurant-menu-api/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	v1 := r.Group("/api/v1")

	// ── Users ──────────────────────────────────────────────────────
	users := v1.Group("/users")
	{
		users.POST("/register", handlers.Register)
		users.POST("/login", handlers.Login)
		users.POST("/logout", middleware.AuthRequired(), handlers.Logout)
		users.GET("/my_restaurants", middleware.AuthRequired(), handlers.MyRestaurants)
		users.GET("/my_problems", middleware.AuthRequired(), handlers.MyProblems)
	}

	// ── Public menu view (no auth at all) ──────────────────────────
	v1.GET("/public/restaurants/:id", handlers.PublicRestaurant)

	// ── Restaurants ────────────────────────────────────────────────
	// Reads are open to everyone; mutation rights are decided per
	// request inside the handlers, so the whole group runs under
	// OptionalAuth rather than role middleware.
	restaurants := v1.Group("/restaurants", middleware.OptionalAuth())
	{
		restaurants.GET("", handlers.ListRestaurants)
		restaurants.GET("/:id", handlers.GetRestaurant)
		restaurants.GET("/by_slug/:slug", handlers.GetRestaurantBySlug)
		restaurants.GET("/:id/qrcode", handlers.RestaurantQRCode)
		restaurants.POST("", handlers.CreateRestaurant)
		restaurants.PUT("/:id", handlers.UpdateRestaurant)
		restaurants.PATCH("/:id", handlers.UpdateRestaurant)
		restaurants.DELETE("/:id", handlers.DeleteRestaurant)
	}

	// ── Restaurant categories ──────────────────────────────────────
	categories := v1.Group("/restaurant_categories", middleware.OptionalAuth())
	{
		categories.GET("", handlers.ListCategories)
		categories.GET("/:id", handlers.GetCategory)
		categories.POST("", handlers.CreateCategory)
		categories.PUT("/:id", handlers.UpdateCategory)
		categories.PATCH("/:id", handlers.UpdateCategory)
		categories.DELETE("/:id", handlers.DeleteCategory)
	}

	// ── Restaurant staff ───────────────────────────────────────────
	staff := v1.Group("/restaurant_staff", middleware.OptionalAuth())
	{
		staff.GET("", handlers.ListStaff)
		staff.GET("/:id", handlers.GetStaff)
		staff.POST("", handlers.CreateStaff)
		staff.PUT("/:id", handlers.UpdateStaff)
		staff.PATCH("/:id", handlers.UpdateStaff)
		staff.DELETE("/:id", handlers.DeleteStaff)
	}

	// ── Menus, sections, courses ───────────────────────────────────
	menus := v1.Group("/menu", middleware.OptionalAuth())
	{
		menus.GET("", handlers.ListMenus)
		menus.GET("/:id", handlers.GetMenu)
		menus.POST("", handlers.CreateMenu)
		menus.PUT("/:id", handlers.UpdateMenu)
		menus.PATCH("/:id", handlers.UpdateMenu)
		menus.DELETE("/:id", handlers.DeleteMenu)
	}

	sections := v1.Group("/menu_sections", middleware.OptionalAuth())
	{
		sections.GET("", handlers.ListSections)
		sections.GET("/:id", handlers.GetSection)
		sections.POST("", handlers.CreateSection)
		sections.PUT("/:id", handlers.UpdateSection)
		sections.PATCH("/:id", handlers.UpdateSection)
		sections.DELETE("/:id", handlers.DeleteSection)
	}

	courses := v1.Group("/menu_courses", middleware.OptionalAuth())
	{
		courses.GET("", handlers.ListCourses)
		courses.GET("/:id", handlers.GetCourse)
		courses.POST("", handlers.CreateCourse)
		courses.PUT("/:id", handlers.UpdateCourse)
		courses.PATCH("/:id", handlers.UpdateCourse)
		courses.DELETE("/:id", handlers.DeleteCourse)
	}

	// ── Tariffs ────────────────────────────────────────────────────
	tariffs := v1.Group("/tariffs", middleware.OptionalAuth())
	{
		tariffs.GET("", handlers.ListTariffs)
		tariffs.GET("/:id", handlers.GetTariff)
		tariffs.POST("", handlers.CreateTariff)
		tariffs.PUT("/:id", handlers.UpdateTariff)
		tariffs.PATCH("/:id", handlers.UpdateTariff)
		tariffs.DELETE("/:id", handlers.DeleteTariff)
	}
}
