package routes

import (
	"time"

	adminapi "storybuilder-app/internal/api/admin"
	authapi "storybuilder-app/internal/api/auth"
	authorsapi "storybuilder-app/internal/api/authors"
	"storybuilder-app/internal/api/billing"
	"storybuilder-app/internal/api/characters"
	"storybuilder-app/internal/api/choices"
	"storybuilder-app/internal/api/plans"
	plotapi "storybuilder-app/internal/api/plot"
	"storybuilder-app/internal/api/scenes"
	"storybuilder-app/internal/api/stories"
	"storybuilder-app/internal/api/stripewebhook"
	"storybuilder-app/internal/api/worlds"
	"storybuilder-app/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.Engine) {
	// Stripe signs the raw body, so the webhook stays outside sanitization
	r.POST("/webhook", stripewebhook.StripeWebhook)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/choices", choices.GetChoices)

	// ✅ Input sanitization + rate limiting on public routes only
	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())
	public.Use(middleware.RateLimit(rate.Every(time.Second), 20))

	public.GET("/login", authapi.LoginEntry)
	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)
	public.GET("/plans", plans.ListPlans)
	public.GET("/verify", authapi.VerifyEmail)
	public.POST("/resend-verification", authapi.ResendVerification)
	public.POST("/request-password-reset", authapi.RequestPasswordReset)
	public.POST("/reset-password", authapi.ResetPassword)

	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.GET("/me", authorsapi.GetCurrentAuthor)
	auth.PUT("/me", authorsapi.UpdateProfile)
	auth.POST("/change-password", authapi.ChangePassword)

	auth.GET("/payments", billing.GetPaymentHistory)
	auth.POST("/create-checkout-session", billing.CreateCheckoutSession)
	auth.POST("/billing-portal", billing.CreateBillingPortal)

	// Stories
	auth.GET("/stories", stories.ListStories)
	auth.POST("/stories", middleware.RequireStoryQuota(), stories.CreateStory)
	auth.GET("/stories/:slug", stories.GetStory)
	auth.PUT("/stories/:slug", stories.UpdateStory)
	auth.DELETE("/stories/:slug", stories.DeleteStory)
	auth.PUT("/stories/:slug/word-count", stories.UpdateWordCount)

	// Plot (one per story) and its points
	auth.GET("/stories/:slug/plot", plotapi.GetPlot)
	auth.PUT("/stories/:slug/plot", plotapi.UpdatePlot)
	auth.GET("/stories/:slug/plot/points", plotapi.ListPlotPoints)
	auth.POST("/stories/:slug/plot/points", plotapi.CreatePlotPoint)
	auth.GET("/stories/:slug/plot/points/:order", plotapi.GetPlotPoint)
	auth.PUT("/stories/:slug/plot/points/:order", plotapi.UpdatePlotPoint)
	auth.DELETE("/stories/:slug/plot/points/:order", plotapi.DeletePlotPoint)
	auth.POST("/stories/:slug/plot/points/:order/up", plotapi.MovePlotPointUp)
	auth.POST("/stories/:slug/plot/points/:order/down", plotapi.MovePlotPointDown)

	// Scenes
	auth.GET("/stories/:slug/scenes", scenes.ListScenes)
	auth.POST("/stories/:slug/scenes", scenes.CreateScene)
	auth.GET("/stories/:slug/scenes/:order", scenes.GetScene)
	auth.PUT("/stories/:slug/scenes/:order", scenes.UpdateScene)
	auth.DELETE("/stories/:slug/scenes/:order", scenes.DeleteScene)
	auth.POST("/stories/:slug/scenes/:order/up", scenes.MoveSceneUp)
	auth.POST("/stories/:slug/scenes/:order/down", scenes.MoveSceneDown)
	auth.POST("/stories/:slug/scenes/:order/notes", scenes.AddSceneNote)
	auth.PUT("/stories/:slug/scenes/:order/characters", scenes.SetSceneCharacters)

	// Characters
	auth.GET("/stories/:slug/characters", characters.ListCharacters)
	auth.POST("/stories/:slug/characters", characters.CreateCharacter)
	auth.GET("/stories/:slug/characters/:cslug", characters.GetCharacter)
	auth.PUT("/stories/:slug/characters/:cslug", characters.UpdateCharacter)
	auth.DELETE("/stories/:slug/characters/:cslug", characters.DeleteCharacter)

	// Worlds and collections
	auth.GET("/worlds", worlds.ListWorlds)
	auth.POST("/worlds", worlds.CreateWorld)
	auth.GET("/worlds/:id", worlds.GetWorld)
	auth.PUT("/worlds/:id", worlds.UpdateWorld)
	auth.DELETE("/worlds/:id", worlds.DeleteWorld)
	auth.PUT("/worlds/:id/stories", worlds.SetWorldStories)

	auth.GET("/collections", worlds.ListCollections)
	auth.POST("/collections", worlds.CreateCollection)
	auth.GET("/collections/:id", worlds.GetCollection)
	auth.PUT("/collections/:id", worlds.UpdateCollection)
	auth.DELETE("/collections/:id", worlds.DeleteCollection)
	auth.PUT("/collections/:id/stories", worlds.SetCollectionStories)
	auth.PUT("/collections/:id/characters", worlds.SetCollectionCharacters)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.GET("/dashboard", adminapi.AdminDashboard)
	admin.GET("/authors", adminapi.ListAllAuthors)
	admin.GET("/payments", adminapi.ListAllPayments)
	admin.GET("/stats", adminapi.GetAdminStats)
	admin.GET("/author/:id", adminapi.GetAuthorDetails)
	admin.POST("/sync-plans", plans.SyncPlansFromStripe)
}
