package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ukk/facility-booking-backend/internal/api"
	"github.com/ukk/facility-booking-backend/internal/auth"
	"github.com/ukk/facility-booking-backend/internal/dashboard"
	"github.com/ukk/facility-booking-backend/internal/pkg/clock"
	"github.com/ukk/facility-booking-backend/internal/report"
	"github.com/ukk/facility-booking-backend/internal/reservation"
	"github.com/ukk/facility-booking-backend/internal/user"
	"github.com/ukk/facility-booking-backend/internal/visitor"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int

	SubmissionPolicy       string
	DefaultRejectionReason string
	IoTDeviceKey           string

	// Revoker defaults to auth.NoopRevoker when nil.
	Revoker auth.Revoker
	// Clock defaults to the system clock when nil.
	Clock clock.Clock
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router             *gin.Engine
	JWTManager         *auth.JWTManager
	UserService        user.Service
	ReservationService reservation.Service
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	clk := cfg.Clock
	if clk == nil {
		clk = clock.System()
	}
	revoker := cfg.Revoker
	if revoker == nil {
		revoker = auth.NoopRevoker{}
	}

	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasher(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Reservation Module
	reservationRepo := reservation.NewPgxRepository(cfg.DBPool)
	reservationService := reservation.NewService(reservationRepo, clk, reservation.Options{
		SubmissionPolicy:       cfg.SubmissionPolicy,
		DefaultRejectionReason: cfg.DefaultRejectionReason,
	})

	// Visitor Module
	visitorRepo := visitor.NewPgxRepository(cfg.DBPool)
	visitorService := visitor.NewService(visitorRepo, clk)

	// Read models
	dashboardService := dashboard.NewService(reservationService, visitorService, clk)
	reportService := report.NewService(reservationService, visitorService, clk)

	router := api.NewRouter(api.Config{
		IsProduction:       cfg.IsProduction,
		ProdOrigins:        cfg.ProdOrigins,
		IoTDeviceKey:       cfg.IoTDeviceKey,
		UserService:        userService,
		ReservationService: reservationService,
		VisitorService:     visitorService,
		DashboardService:   dashboardService,
		ReportService:      reportService,
		JWTManager:         jwtManager,
		Revoker:            revoker,
		HealthCheck: func(c *gin.Context) error {
			return cfg.DBPool.Ping(c.Request.Context())
		},
	})

	return &Container{
		Router:             router,
		JWTManager:         jwtManager,
		UserService:        userService,
		ReservationService: reservationService,
	}
}
