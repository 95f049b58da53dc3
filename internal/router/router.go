package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/binaryhub/portal-api/internal/handler"
	"github.com/binaryhub/portal-api/internal/middleware"
	"github.com/binaryhub/portal-api/internal/service"
	"github.com/binaryhub/portal-api/pkg/config"
	"github.com/binaryhub/portal-api/pkg/logger"
	corsmiddleware "github.com/binaryhub/portal-api/pkg/middleware/cors"
	reqidmiddleware "github.com/binaryhub/portal-api/pkg/middleware/requestid"
	"github.com/binaryhub/portal-api/pkg/response"
)

// Dependencies bundles everything the router mounts.
type Dependencies struct {
	Config         *config.Config
	Logger         *zap.Logger
	AuthService    *service.AuthService
	MetricsService *service.MetricsService

	Auth          *handler.AuthHandler
	AdminAuth     *handler.AdminAuthHandler
	TeamMembers   *handler.TeamMemberHandler
	Mentors       *handler.MentorHandler
	Freelancers   *handler.FreelancerHandler
	Enrollments   *handler.EnrollmentHandler
	Notifications *handler.NotificationHandler
	Renewal       *handler.RenewalHandler
	Metrics       *handler.MetricsHandler

	UploadsDir        string
	UploadsPublicPath string
}

// New assembles the gin engine with all middleware and routes.
func New(deps Dependencies) *gin.Engine {
	if deps.Config.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(deps.Logger))
	r.Use(corsmiddleware.New(deps.Config.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(deps.MetricsService))

	if deps.UploadsDir != "" {
		r.Static(deps.UploadsPublicPath, deps.UploadsDir)
	}

	if deps.Metrics != nil {
		r.GET("/metrics", deps.Metrics.Expose)
	}
	if deps.Config.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	requireAuth := middleware.JWT(deps.AuthService)
	requireAdmin := middleware.RequireAdmin()

	api := r.Group(deps.Config.APIPrefix)

	api.GET("/health", func(c *gin.Context) {
		response.Message(c, "Server is running")
	})

	auth := api.Group("/auth")
	{
		auth.POST("/signup", deps.Auth.Signup)
		auth.POST("/signin", deps.Auth.Signin)
		auth.POST("/logout", deps.Auth.Logout)
		auth.GET("/me", requireAuth, deps.Auth.Me)
	}

	adminAuth := api.Group("/admin/auth")
	{
		adminAuth.POST("/signup", deps.AdminAuth.Signup)
		adminAuth.POST("/signin", deps.AdminAuth.Signin)
		adminAuth.POST("/logout", deps.AdminAuth.Logout)
		adminAuth.GET("/me", requireAuth, deps.AdminAuth.Me)
	}

	teamMembers := api.Group("/team-members")
	{
		teamMembers.GET("", deps.TeamMembers.List)
		teamMembers.GET("/:id", deps.TeamMembers.Get)
		teamMembers.POST("", requireAuth, requireAdmin, deps.TeamMembers.Create)
		teamMembers.PUT("/:id", requireAuth, requireAdmin, deps.TeamMembers.Update)
		teamMembers.DELETE("/:id", requireAuth, requireAdmin, deps.TeamMembers.Delete)
	}

	mentors := api.Group("/mentors")
	{
		mentors.GET("", deps.Mentors.List)
		mentors.GET("/:id", deps.Mentors.Get)
		mentors.POST("", requireAuth, requireAdmin, deps.Mentors.Create)
		mentors.PUT("/:id", requireAuth, requireAdmin, deps.Mentors.Update)
		mentors.DELETE("/:id", requireAuth, requireAdmin, deps.Mentors.Delete)
	}

	freelancers := api.Group("/freelancers")
	{
		freelancers.GET("", deps.Freelancers.List)
		freelancers.GET("/:id", deps.Freelancers.Get)
		freelancers.POST("", requireAuth, requireAdmin, deps.Freelancers.Create)
		freelancers.PUT("/:id", requireAuth, requireAdmin, deps.Freelancers.Update)
		freelancers.DELETE("/:id", requireAuth, requireAdmin, deps.Freelancers.Delete)
	}

	enrollments := api.Group("/enrollments", requireAuth)
	{
		enrollments.POST("", deps.Enrollments.Create)
		enrollments.GET("/my-courses", deps.Enrollments.MyCourses)
		enrollments.GET("", requireAdmin, deps.Enrollments.List)
		enrollments.GET("/export", requireAdmin, deps.Enrollments.Export)
		enrollments.GET("/user/:userId", requireAdmin, deps.Enrollments.ByUser)
		enrollments.GET("/:id", requireAdmin, deps.Enrollments.Get)
		enrollments.PATCH("/:id/status", requireAdmin, deps.Enrollments.UpdateStatus)
		enrollments.DELETE("/:id", requireAdmin, deps.Enrollments.Delete)
	}

	notifications := api.Group("/notifications", requireAuth)
	{
		notifications.GET("", deps.Notifications.List)
		notifications.GET("/unread-count", deps.Notifications.UnreadCount)
		notifications.PATCH("/read-all", deps.Notifications.MarkAllRead)
		notifications.PATCH("/:id/read", deps.Notifications.MarkRead)
		notifications.DELETE("/:id", deps.Notifications.Delete)
	}

	renewal := api.Group("/course-renewal")
	{
		renewal.POST("/check-renewals", deps.Renewal.CheckRenewals)
	}

	return r
}
