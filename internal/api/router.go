package api

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ukk/facility-booking-backend/internal/auth"
	"github.com/ukk/facility-booking-backend/internal/dashboard"
	dashboardHttp "github.com/ukk/facility-booking-backend/internal/dashboard/http"
	"github.com/ukk/facility-booking-backend/internal/pkg/request"
	"github.com/ukk/facility-booking-backend/internal/report"
	reportHttp "github.com/ukk/facility-booking-backend/internal/report/http"
	"github.com/ukk/facility-booking-backend/internal/reservation"
	reservationHttp "github.com/ukk/facility-booking-backend/internal/reservation/http"
	"github.com/ukk/facility-booking-backend/internal/user"
	userHttp "github.com/ukk/facility-booking-backend/internal/user/http"
	"github.com/ukk/facility-booking-backend/internal/visitor"
	visitorHttp "github.com/ukk/facility-booking-backend/internal/visitor/http"
)

// Config carries the services and settings the router needs.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	IoTDeviceKey string

	UserService        user.Service
	ReservationService reservation.Service
	VisitorService     visitor.Service
	DashboardService   dashboard.Service
	ReportService      report.Service

	JWTManager *auth.JWTManager
	Revoker    auth.Revoker

	// HealthCheck reports whether backing stores are reachable. Nil means always healthy.
	HealthCheck func(*gin.Context) error
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	request.RegisterValidators()

	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(cors.New(corsConfig(cfg.IsProduction, cfg.ProdOrigins)))

	revoker := cfg.Revoker
	if revoker == nil {
		revoker = auth.NoopRevoker{}
	}

	// authMiddleware: Validates if the request contains a valid, unrevoked JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager, revoker)
	// adminMiddleware: Further checks if the authenticated user carries the admin role.
	adminMiddleware := auth.RequireAdmin()
	deviceMiddleware := visitorHttp.RequireDeviceKey(cfg.IoTDeviceKey)

	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager, revoker)
	reservationHandler := reservationHttp.NewHandler(cfg.ReservationService)
	visitorHandler := visitorHttp.NewHandler(cfg.VisitorService)
	dashboardHandler := dashboardHttp.NewHandler(cfg.DashboardService)
	reportHandler := reportHttp.NewHandler(cfg.ReportService)

	r.GET("/healthz", healthz(cfg.HealthCheck))

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware, adminMiddleware)
		reservationHttp.RegisterRoutes(v1, reservationHandler, authMiddleware, adminMiddleware)
		visitorHttp.RegisterRoutes(v1, visitorHandler, deviceMiddleware)
		dashboardHttp.RegisterRoutes(v1, dashboardHandler, authMiddleware)
		reportHttp.RegisterRoutes(v1, reportHandler, authMiddleware, adminMiddleware)
	}

	return r
}

func corsConfig(isProduction bool, prodOrigins string) cors.Config {
	config := cors.DefaultConfig()
	if isProduction {
		var origins []string
		for _, o := range strings.Split(prodOrigins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		config.AllowOrigins = origins
	} else {
		config.AllowAllOrigins = true
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", visitorHttp.DeviceKeyHeader}
	config.ExposeHeaders = []string{"Content-Disposition"}
	return config
}

func healthz(check func(*gin.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			if err := check(c); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
