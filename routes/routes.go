package routes

import (
	"menu-builder-api/handlers"
	"menu-builder-api/middleware"
	"menu-builder-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)

		// Published menus (no auth needed)
		public.GET("/published/:slug", handlers.GetPublishedMenu)
		public.GET("/published/:slug/preview", handlers.GetPublishedPreview)
		public.GET("/slugs/:slug/available", handlers.CheckSlug)

		// State machine info (great for docs/Postman)
		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)
	}

	// ── Menu editing routes ────────────────────────────────────────
	menus := r.Group("/api/menus")
	menus.Use(middleware.AuthRequired())
	{
		menus.POST("/", handlers.CreateMenu)
		menus.GET("/", handlers.ListMyMenus)
		menus.GET("/:menuId", handlers.GetMenu)
		menus.DELETE("/:menuId", handlers.DeleteMenu)

		// Preview & lifecycle
		menus.GET("/:menuId/preview", handlers.GetPreview)
		menus.GET("/:menuId/status", handlers.GetSaveStatus)
		menus.POST("/:menuId/publish", handlers.PublishMenu)
		menus.POST("/:menuId/discard/saved", handlers.DiscardToSaved)
		menus.POST("/:menuId/discard/published", handlers.DiscardToPublished)

		// Export / import
		menus.GET("/:menuId/export", handlers.ExportMenu)
		menus.POST("/:menuId/import", handlers.ImportMenu)

		// Sections
		menus.POST("/:menuId/sections", handlers.AddSection)
		menus.PUT("/:menuId/sections/reorder", handlers.ReorderSections)
		menus.PUT("/:menuId/sections/:sectionId", handlers.UpdateSection)
		menus.DELETE("/:menuId/sections/:sectionId", handlers.DeleteSection)

		// Items
		menus.POST("/:menuId/sections/:sectionId/items", handlers.AddItem)
		menus.PUT("/:menuId/sections/:sectionId/items/reorder", handlers.ReorderItems)
		menus.PUT("/:menuId/sections/:sectionId/items/:index", handlers.UpdateItem)
		menus.DELETE("/:menuId/sections/:sectionId/items/:index", handlers.DeleteItem)
		menus.POST("/:menuId/sections/:sectionId/items/:index/duplicate", handlers.DuplicateItem)

		// Columns
		menus.POST("/:menuId/sections/:sectionId/columns", handlers.AddColumn)
		menus.PUT("/:menuId/sections/:sectionId/columns/reorder", handlers.ReorderColumns)
		menus.PUT("/:menuId/sections/:sectionId/columns/rename", handlers.RenameColumn)
		menus.DELETE("/:menuId/sections/:sectionId/columns/:column", handlers.DeleteColumn)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/users", handlers.AdminGetAllUsers)
		admin.GET("/menus", handlers.AdminGetAllMenus)
		admin.GET("/published", handlers.AdminGetAllPublished)
	}
}
