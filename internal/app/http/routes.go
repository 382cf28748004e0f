package routes

import (
	"time"

	adminapi "teranga-pro/internal/api/admin"
	annoncesapi "teranga-pro/internal/api/annonces"
	authapi "teranga-pro/internal/api/auth"
	"teranga-pro/internal/api/bictoryswebhook"
	"teranga-pro/internal/api/billing"
	catalogapi "teranga-pro/internal/api/catalog"
	moderationapi "teranga-pro/internal/api/moderation"
	prosapi "teranga-pro/internal/api/pros"
	"teranga-pro/internal/app/http/middleware"
	"teranga-pro/internal/domain/users"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.Engine) {
	// Webhook stays outside the sanitizer: the raw body is signed
	r.POST("/webhook/bictorys", bictoryswebhook.BictorysWebhook)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Catalog referentials, read-only
	r.GET("/jobs", catalogapi.ListJobs)
	r.GET("/jobs/:slug", catalogapi.GetJob)
	r.GET("/categories", catalogapi.ListCategories)
	r.GET("/locations", catalogapi.ListLocations)
	r.GET("/locations/tree", catalogapi.LocationTree)
	r.GET("/locations/:id", catalogapi.GetLocation)

	// Public directory. Optional auth so an owner browsing their own page
	// gets the owner view.
	r.GET("/pros", middleware.OptionalAuthMiddleware(), prosapi.SearchPros)
	r.GET("/pros/search", middleware.OptionalAuthMiddleware(), prosapi.SearchPros)
	r.GET("/pros/:slug", middleware.OptionalAuthMiddleware(), prosapi.GetProBySlug)
	r.GET("/annonces", middleware.OptionalAuthMiddleware(), annoncesapi.List)
	r.GET("/annonces/:slug", middleware.OptionalAuthMiddleware(), annoncesapi.Get)

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	// OTP endpoints are throttled per IP
	otpLimiter := middleware.NewRateLimiter(rate.Every(time.Minute), 5)
	public.POST("/register", otpLimiter.Middleware(), authapi.Register)
	public.POST("/login", authapi.Login)
	public.POST("/verify-whatsapp", otpLimiter.Middleware(), authapi.VerifyWhatsapp)
	public.POST("/resend-otp", otpLimiter.Middleware(), authapi.ResendOTP)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware(), middleware.SanitizeAndCleanInputMiddleware())

	auth.GET("/me", authapi.Me)
	auth.PATCH("/me", authapi.UpdateMe)
	auth.POST("/change-password", authapi.ChangePassword)

	auth.GET("/pros/me", prosapi.GetMyProfile)
	auth.PATCH("/pros/me", prosapi.UpdateMyProfile)
	auth.POST("/pros/me/publish", prosapi.Publish)
	auth.POST("/pros/me/unpublish", prosapi.Unpublish)
	auth.POST("/pros/me/media", prosapi.AddMedia)
	auth.DELETE("/pros/me/media/:id", prosapi.DeleteMedia)

	auth.GET("/favorites", prosapi.ListFavorites)
	auth.POST("/favorites/:id", prosapi.AddFavorite)
	auth.DELETE("/favorites/:id", prosapi.RemoveFavorite)

	auth.POST("/subscriptions/checkout", billing.CreateCheckout)
	auth.GET("/subscriptions/me", billing.MySubscription)
	auth.GET("/payments", billing.MyPayments)

	auth.POST("/annonces", annoncesapi.Create)
	auth.GET("/annonces/mine", annoncesapi.MyAnnonces)
	auth.PUT("/annonces/:id", annoncesapi.Update)
	auth.POST("/annonces/:id/archive", annoncesapi.Archive)

	auth.POST("/reports", moderationapi.CreateReport)
	auth.GET("/reports/mine", moderationapi.MyReports)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole(users.RoleAdmin), middleware.SanitizeAndCleanInputMiddleware())
	admin.GET("/dashboard", adminapi.Dashboard)
	admin.GET("/users", adminapi.ListUsers)
	admin.PATCH("/users/:id/active", adminapi.SetUserActive)
	admin.GET("/payments", adminapi.ListPayments)
	admin.PATCH("/pros/:id/published", prosapi.AdminSetPublished)
	admin.GET("/annonces", annoncesapi.AdminList)
	admin.POST("/annonces/:id/moderate", annoncesapi.AdminModerate)
	admin.GET("/reports", moderationapi.AdminListReports)
	admin.POST("/reports/:id/process", moderationapi.AdminProcessReport)
	admin.POST("/subscriptions/expire-sweep", billing.AdminExpireSweep)
}
