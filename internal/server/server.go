package server

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"anoa.com/freshwash/internal/config"
	"anoa.com/freshwash/internal/middleware"
	"anoa.com/freshwash/internal/modules/auth/token"
	"anoa.com/freshwash/pkg/storage"

	adminHttp "anoa.com/freshwash/internal/modules/admin/delivery/http"
	adminRepo "anoa.com/freshwash/internal/modules/admin/repository"
	adminService "anoa.com/freshwash/internal/modules/admin/service"

	auditHttp "anoa.com/freshwash/internal/modules/audit/delivery/http"
	auditRepo "anoa.com/freshwash/internal/modules/audit/repository"
	auditService "anoa.com/freshwash/internal/modules/audit/service"

	authHttp "anoa.com/freshwash/internal/modules/auth/delivery/http"
	authService "anoa.com/freshwash/internal/modules/auth/service"

	complaintHttp "anoa.com/freshwash/internal/modules/complaint/delivery/http"
	complaintRepo "anoa.com/freshwash/internal/modules/complaint/repository"
	complaintService "anoa.com/freshwash/internal/modules/complaint/service"

	healthHttp "anoa.com/freshwash/internal/modules/health/delivery/http"
	healthService "anoa.com/freshwash/internal/modules/health/service"

	memberHttp "anoa.com/freshwash/internal/modules/member/delivery/http"
	memberRepo "anoa.com/freshwash/internal/modules/member/repository"
	memberService "anoa.com/freshwash/internal/modules/member/service"

	notiHttp "anoa.com/freshwash/internal/modules/notification/delivery/http"
	notifRepo "anoa.com/freshwash/internal/modules/notification/repository"
	notifService "anoa.com/freshwash/internal/modules/notification/service"

	orderHttp "anoa.com/freshwash/internal/modules/order/delivery/http"
	orderRepo "anoa.com/freshwash/internal/modules/order/repository"
	orderService "anoa.com/freshwash/internal/modules/order/service"

	paymentHttp "anoa.com/freshwash/internal/modules/payment/delivery/http"
	paymentRepo "anoa.com/freshwash/internal/modules/payment/repository"
	paymentService "anoa.com/freshwash/internal/modules/payment/service"

	portfolioHttp "anoa.com/freshwash/internal/modules/portfolio/delivery/http"
	portfolioRepo "anoa.com/freshwash/internal/modules/portfolio/repository"
	portfolioService "anoa.com/freshwash/internal/modules/portfolio/service"

	profileHttp "anoa.com/freshwash/internal/modules/profile/delivery/http"
	profileRepo "anoa.com/freshwash/internal/modules/profile/repository"
	profileService "anoa.com/freshwash/internal/modules/profile/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Dependencies are the external resources the server is built on.
// Redis, ImageStorage and AuditTrail are optional.
type Dependencies struct {
	IdentityDB   *gorm.DB
	LaundryDB    *gorm.DB
	Redis        *redis.Client
	ImageStorage storage.ImageStorage
	AuditTrail   *slog.Logger
	Now          func() time.Time
}

type Server struct {
	engine *gin.Engine
}

func NewServer(cfg *config.Config, deps Dependencies) *Server {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	origins := splitOrigins(cfg.AllowedOrigins)

	// Identity store
	memberRepository := memberRepo.NewMemberRepository(deps.IdentityDB)
	auditSvc := auditService.NewAuditService(auditRepo.NewAuditRepository(deps.IdentityDB), deps.AuditTrail, now)
	auditHandler := auditHttp.NewAuditHandler(auditSvc)

	// Laundry store
	profileRepository := profileRepo.NewProfileRepository(deps.LaundryDB)

	memberSvc := memberService.NewMemberService(memberRepository, profileRepository, now)
	memberHandler := memberHttp.NewMemberHandler(memberSvc)

	codec := token.NewCodec(cfg.JWTSecret).WithClock(now)
	authSvc := authService.NewAuthService(memberRepository, memberSvc, codec, authService.Options{
		SessionTTL:   cfg.SessionTTL,
		AdminPasskey: cfg.AdminPasskey,
	})
	authHandler := authHttp.NewAuthHandler(authSvc)

	profileSvc := profileService.NewProfileService(profileRepository, memberRepository, deps.ImageStorage, now)
	profileHandler := profileHttp.NewProfileHandler(profileSvc)

	orderSvc := orderService.NewOrderService(orderRepo.NewOrderRepository(deps.LaundryDB), now)
	orderHandler := orderHttp.NewOrderHandler(orderSvc)

	// Notification Module
	notificationSvc := notifService.NewNotificationService(notifRepo.NewNotificationRepository(deps.LaundryDB), deps.Redis)
	notificationHandler := notiHttp.NewNotificationHandler(notificationSvc, originChecker(origins))

	complaintSvc := complaintService.NewComplaintService(complaintRepo.NewComplaintRepository(deps.LaundryDB), notificationSvc, now, nil)
	complaintHandler := complaintHttp.NewComplaintHandler(complaintSvc)

	paymentSvc := paymentService.NewPaymentService(paymentRepo.NewPaymentRepository(deps.LaundryDB), cfg.BusinessName, now)
	paymentHandler := paymentHttp.NewPaymentHandler(paymentSvc)

	portfolioSvc := portfolioService.NewPortfolioService(portfolioRepo.NewPortfolioRepository(deps.LaundryDB), profileRepository)
	portfolioHandler := portfolioHttp.NewPortfolioHandler(portfolioSvc)

	reportSvc := adminService.NewReportService(adminRepo.NewReportRepository(deps.IdentityDB, deps.LaundryDB), auditSvc, cfg.ReportQueryTimeout)
	adminHandler := adminHttp.NewAdminHandler(reportSvc)

	healthSvc := healthService.NewHealthService(map[string]*gorm.DB{
		"identity": deps.IdentityDB,
		"laundry":  deps.LaundryDB,
	}, 2*time.Second)
	healthHandler := healthHttp.NewHealthHandler(healthSvc)

	router := gin.New()

	setupCORS(router, origins)

	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/health"},
	}))
	router.Use(middleware.Audit(auditSvc))

	authMiddleware := middleware.NewAuthMiddleware(memberRepository, codec).WithClock(now)

	// Public routes (no auth required)
	router.GET("/health", healthHandler.Health)
	router.POST("/signup", authHandler.Signup)
	router.POST("/login", authHandler.Login)
	router.GET("/items", orderHandler.ListItems)

	// Protected routes
	protected := router.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.GET("/isAuth", authHandler.IsAuth)

		protected.POST("/order", orderHandler.PlaceOrder)
		protected.GET("/orders", orderHandler.ListOrders)

		protected.POST("/fileComplaint", complaintHandler.FileComplaint)
		protected.GET("/getComplaints", complaintHandler.GetComplaints)

		protected.POST("/payment/make", paymentHandler.MakePayment)
		protected.GET("/payment/get", paymentHandler.ListPayments)

		// Profile routes
		protected.GET("/profile/getProfile", profileHandler.GetProfile)
		protected.PUT("/profile/update-address", profileHandler.UpdateAddress)
		protected.PUT("/profile/update-phone", profileHandler.UpdatePhone)
		protected.POST("/profile/image", profileHandler.UploadImage)

		protected.GET("/portfolio/me", portfolioHandler.GetOwn)

		// Notification routes
		protected.GET("/notifications", notificationHandler.GetNotifications)
		protected.GET("/notifications/unread-count", notificationHandler.UnreadCount)
		protected.PUT("/notifications/:id/read", notificationHandler.MarkAsRead)
		protected.PUT("/notifications/read-all", notificationHandler.MarkAllAsRead)
		protected.GET("/notifications/ws", notificationHandler.HandleWebSocket)

		// Admin routes
		staff := protected.Group("")
		staff.Use(authMiddleware.RequireAdmin())
		{
			staff.PUT("/order/:id/status", orderHandler.UpdateStatus)
			staff.PUT("/:id/complaintstatus", complaintHandler.UpdateStatus)
			staff.DELETE("/complaints/:id", complaintHandler.DeleteComplaint)
			staff.GET("/portfolio/all", portfolioHandler.GetAll)
		}

		adminGroup := protected.Group("/admin")
		adminGroup.Use(authMiddleware.RequireAdmin())
		{
			adminGroup.POST("/addmember", memberHandler.AddMember)
			adminGroup.GET("/members", memberHandler.ListMembers)
			adminGroup.PATCH("/deletemember", memberHandler.DeleteMember)
			adminGroup.GET("/query", adminHandler.ListReports)
			adminGroup.POST("/query", adminHandler.RunReport)
			adminGroup.GET("/audit", auditHandler.List)
		}
	}

	return &Server{
		engine: router,
	}
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func splitOrigins(allowedOrigins string) []string {
	var origins []string
	for _, o := range strings.Split(allowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	return origins
}

func setupCORS(router *gin.Engine, origins []string) {
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}

// originChecker accepts WebSocket upgrades from the CORS origins and from
// clients that send no Origin header.
func originChecker(origins []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || slices.Contains(origins, origin)
	}
}
