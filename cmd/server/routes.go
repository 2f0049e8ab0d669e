package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pay-chain.backend/internal/interfaces/http/handlers"
	"pay-chain.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	profileHandler     *handlers.ProfileHandler
	sellerHandler      *handlers.SellerHandler
	adminHandler       *handlers.AdminHandler
	identityMiddleware gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Own profile routes (protected)
		profile := v1.Group("/profile")
		profile.Use(d.identityMiddleware)
		{
			profile.GET("", d.profileHandler.GetProfile)
			profile.POST("", d.profileHandler.CreateProfile)
			profile.PUT("", d.profileHandler.UpdateProfile)
			profile.PUT("/privacy", d.profileHandler.UpdatePrivacy)
			profile.PUT("/avatar", d.profileHandler.UploadAvatar)
			profile.GET("/search", d.profileHandler.SearchProfiles)
		}

		// Public profile view
		v1.GET("/users/:id", d.profileHandler.GetPublicProfile)

		// Seller routes
		sellers := v1.Group("/sellers")
		{
			sellers.GET("", d.sellerHandler.ListVerifiedSellers)
			sellers.POST("/apply", d.identityMiddleware, d.sellerHandler.Apply)
			sellers.GET("/application", d.identityMiddleware, d.sellerHandler.GetOwnApplication)
			sellers.PUT("/profile", d.identityMiddleware, d.sellerHandler.UpdateShopProfile)
			sellers.GET("/:id", d.profileHandler.GetSellerProfile)
		}

		// Admin routes (protected, admin only)
		admin := v1.Group("/admin")
		admin.Use(d.identityMiddleware, middleware.RequireRole("ADMIN"))
		{
			admin.GET("/users", d.adminHandler.ListUsers)
			admin.GET("/stats", d.adminHandler.GetStatistics)
			admin.GET("/seller-applications", d.adminHandler.ListApplications)
			admin.POST("/seller-applications/:id/review", d.adminHandler.ReviewApplication)
			admin.POST("/:id/suspension", d.adminHandler.ToggleSuspension)
			admin.PUT("/:id/role", d.adminHandler.UpdateRole)
		}
	}
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, x-user-id, x-user-email, x-user-username, x-user-role")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "profile-service",
			"version": "0.1.0",
		})
	})
}
