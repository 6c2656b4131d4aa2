package routes

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/quillstack/be-cms-platform/config"
	"github.com/quillstack/be-cms-platform/domain/auth"
	"github.com/quillstack/be-cms-platform/domain/author"
	"github.com/quillstack/be-cms-platform/domain/campaign"
	"github.com/quillstack/be-cms-platform/domain/category"
	"github.com/quillstack/be-cms-platform/domain/health"
	"github.com/quillstack/be-cms-platform/domain/media"
	"github.com/quillstack/be-cms-platform/domain/post"
	"github.com/quillstack/be-cms-platform/domain/product"
	"github.com/quillstack/be-cms-platform/domain/suggest"
	"github.com/quillstack/be-cms-platform/domain/tag"
	"github.com/quillstack/be-cms-platform/domain/team"
	"github.com/quillstack/be-cms-platform/domain/user"
	"github.com/quillstack/be-cms-platform/middleware"
)

func RegisterRoutes(e *echo.Echo) {
	loginLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		MaxRequests:   10,
		Window:        time.Minute,
		BlockDuration: 15 * time.Minute,
		DB:            config.DB.DB,
	})
	suggestLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		MaxRequests:   30,
		Window:        time.Minute,
		BlockDuration: 5 * time.Minute,
		DB:            config.DB.DB,
	})

	// Health probes
	e.GET("/health", health.HealthHandler)
	e.GET("/health/live", health.LivenessHandler)
	e.GET("/health/ready", health.ReadinessHandler)
	e.GET("/health/stats", health.StatsHandler, middleware.JWTMiddleware, middleware.RoleMiddleware(middleware.RoleAdmin))

	// Auth
	e.POST("/login", auth.LoginHandler, loginLimiter)
	e.POST("/logout", auth.LogoutHandler, middleware.JWTMiddleware)
	authGroup := e.Group("/auth", middleware.JWTMiddleware)
	authGroup.GET("/me", auth.MeHandler)
	authGroup.PUT("/change_password", auth.ChangePasswordHandler)

	// User management (admin-only)
	userGroup := e.Group("/users", middleware.JWTMiddleware, middleware.RoleMiddleware(middleware.RoleAdmin))
	userGroup.GET("", user.ListUsersHandler)
	userGroup.POST("", user.CreateUserHandler)
	userGroup.PUT("/:id/role", user.UpdateRoleHandler)
	userGroup.DELETE("/:id", user.DeleteUserHandler)

	// Public blog surface
	e.GET("/blog/:slug", post.GetPublicPostHandler)

	// Posts (editors and admins)
	postGroup := e.Group("/posts", middleware.JWTMiddleware, middleware.RoleMiddleware(middleware.RoleEditor))
	postGroup.GET("", post.ListPostsHandler)
	postGroup.POST("", post.CreatePostHandler)
	postGroup.GET("/:id", post.GetPostHandler)
	postGroup.PUT("/:id", post.UpdatePostHandler)
	postGroup.DELETE("/:id", post.DeletePostHandler)

	// Taxonomy
	categoryGroup := e.Group("/categories", middleware.JWTMiddleware, middleware.RoleMiddleware(middleware.RoleEditor))
	categoryGroup.GET("", category.ListCategoriesHandler)
	categoryGroup.POST("", category.CreateCategoryHandler)
	categoryGroup.DELETE("/:id", category.DeleteCategoryHandler)

	tagGroup := e.Group("/tags", middleware.JWTMiddleware, middleware.RoleMiddleware(middleware.RoleEditor))
	tagGroup.GET("", tag.ListTagsHandler)
	tagGroup.POST("", tag.CreateTagHandler)
	tagGroup.DELETE("/:id", tag.DeleteTagHandler)

	// Authors
	authorGroup := e.Group("/authors", middleware.JWTMiddleware, middleware.RoleMiddleware(middleware.RoleEditor))
	authorGroup.GET("", author.ListAuthorsHandler)
	authorGroup.POST("", author.CreateAuthorHandler)
	authorGroup.PUT("/:id", author.UpdateAuthorHandler)
	authorGroup.DELETE("/:id", author.DeleteAuthorHandler)

	// Products
	productGroup := e.Group("/products", middleware.JWTMiddleware, middleware.RoleMiddleware(middleware.RoleEditor))
	productGroup.GET("", product.ListProductsHandler)
	productGroup.GET("/:id", product.GetProductHandler)
	productGroup.POST("", product.CreateProductHandler)
	productGroup.PUT("/:id", product.UpdateProductHandler)
	productGroup.DELETE("/:id", product.DeleteProductHandler)

	// Team members (admin-only writes)
	e.GET("/team", team.ListMembersHandler)
	teamGroup := e.Group("/team", middleware.JWTMiddleware, middleware.RoleMiddleware(middleware.RoleAdmin))
	teamGroup.POST("", team.CreateMemberHandler)
	teamGroup.PUT("/:id", team.UpdateMemberHandler)
	teamGroup.DELETE("/:id", team.DeleteMemberHandler)

	// Campaigns (admin-only)
	campaignGroup := e.Group("/campaigns", middleware.JWTMiddleware, middleware.RoleMiddleware(middleware.RoleAdmin))
	campaignGroup.GET("", campaign.ListCampaignsHandler)
	campaignGroup.GET("/:id", campaign.GetCampaignHandler)
	campaignGroup.POST("", campaign.CreateCampaignHandler)
	campaignGroup.PUT("/:id", campaign.UpdateCampaignHandler)
	campaignGroup.DELETE("/:id", campaign.DeleteCampaignHandler)
	campaignGroup.POST("/:id/send", campaign.SendCampaignHandler)

	// Media uploads
	mediaGroup := e.Group("/media", middleware.JWTMiddleware, middleware.RoleMiddleware(middleware.RoleEditor))
	mediaGroup.POST("/images", media.UploadImageHandler)
	mediaGroup.DELETE("/images", media.DeleteImageHandler)

	// AI field suggestions
	e.POST("/suggest", suggest.SuggestHandler,
		middleware.JWTMiddleware, middleware.RoleMiddleware(middleware.RoleEditor), suggestLimiter)
}
