package routes

import (
	"team-eats/handlers"
	"team-eats/middleware"
	"team-eats/models"
	"team-eats/rbac"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("")
	{
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)

		// State machine info (great for docs/Postman)
		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)

		// Restaurants & menus (any authenticated role can browse)
		auth.GET("/restaurants", handlers.ListRestaurants)
		auth.GET("/restaurants/countries", handlers.GetCountries)
		auth.GET("/restaurants/:id", handlers.GetRestaurant)
		auth.GET("/restaurants/:id/menu", handlers.GetMenu)
	}

	// ── Orders ─────────────────────────────────────────────────────
	orders := r.Group("/orders")
	orders.Use(middleware.AuthRequired())
	{
		orders.GET("", handlers.GetMyOrders)
		orders.POST("", middleware.PermissionRequired(rbac.CapCreateOrder), handlers.CreateOrder)
		orders.GET("/all-carts",
			middleware.RoleRequired(models.RoleAdmin, models.RoleManager), handlers.GetAllCarts)
		orders.GET("/:id", handlers.GetOrder)
		orders.POST("/:id/items", middleware.PermissionRequired(rbac.CapCreateOrder), handlers.AddItem)
		orders.DELETE("/:id/items/:itemId", middleware.PermissionRequired(rbac.CapCreateOrder), handlers.RemoveItem)
		orders.POST("/:id/checkout", middleware.PermissionRequired(rbac.CapCheckout), handlers.Checkout)
		orders.DELETE("/:id", middleware.PermissionRequired(rbac.CapCancelOrder), handlers.CancelOrder)
	}

	// ── Payment methods ────────────────────────────────────────────
	payments := r.Group("/payment-methods")
	payments.Use(middleware.AuthRequired())
	{
		payments.GET("", handlers.ListPaymentMethods)
		payments.POST("", middleware.PermissionRequired(rbac.CapUpdatePayment), handlers.CreatePaymentMethod)
		payments.POST("/setup-intent", middleware.PermissionRequired(rbac.CapUpdatePayment), handlers.CreateSetupIntent)
		payments.DELETE("/:id", middleware.PermissionRequired(rbac.CapUpdatePayment), handlers.DeletePaymentMethod)
	}

	// ── User management ────────────────────────────────────────────
	users := r.Group("/users")
	users.Use(middleware.AuthRequired(), middleware.PermissionRequired(rbac.CapManageUsers))
	{
		users.GET("", handlers.ListUsers)
		users.POST("", handlers.CreateUser)
		users.GET("/:id", handlers.GetUser)
		users.PATCH("/:id/role", handlers.UpdateUserRole)
	}
}
