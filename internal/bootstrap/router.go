package bootstrap

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/atoolsera/agency-backend/config"
	httpapi "github.com/atoolsera/agency-backend/internal/api/http"
	httpmw "github.com/atoolsera/agency-backend/internal/api/http/middleware"
	assignhttp "github.com/atoolsera/agency-backend/internal/assignments/http"
	assignrepo "github.com/atoolsera/agency-backend/internal/assignments/repository"
	assignservice "github.com/atoolsera/agency-backend/internal/assignments/service"
	authdomain "github.com/atoolsera/agency-backend/internal/auth/domain"
	authhttp "github.com/atoolsera/agency-backend/internal/auth/http"
	authmw "github.com/atoolsera/agency-backend/internal/auth/middleware"
	authrepo "github.com/atoolsera/agency-backend/internal/auth/repository"
	authservice "github.com/atoolsera/agency-backend/internal/auth/service"
	"github.com/atoolsera/agency-backend/internal/auth/session"
	"github.com/atoolsera/agency-backend/internal/auth/token"
	"github.com/atoolsera/agency-backend/internal/careers"
	contenthttp "github.com/atoolsera/agency-backend/internal/content/http"
	contentrepo "github.com/atoolsera/agency-backend/internal/content/repository"
	contentservice "github.com/atoolsera/agency-backend/internal/content/service"
	dashhttp "github.com/atoolsera/agency-backend/internal/dashboard/http"
	dashservice "github.com/atoolsera/agency-backend/internal/dashboard/service"
	devhttp "github.com/atoolsera/agency-backend/internal/developers/http"
	devrepo "github.com/atoolsera/agency-backend/internal/developers/repository"
	devservice "github.com/atoolsera/agency-backend/internal/developers/service"
	"github.com/atoolsera/agency-backend/internal/forms"
	formshttp "github.com/atoolsera/agency-backend/internal/forms/http"
	intakehttp "github.com/atoolsera/agency-backend/internal/intake/http"
	intakerepo "github.com/atoolsera/agency-backend/internal/intake/repository"
	intakeservice "github.com/atoolsera/agency-backend/internal/intake/service"
	"github.com/atoolsera/agency-backend/internal/metrics"
)

const ServiceName = "agency-backend"

type RouterDeps struct {
	Config  *config.Config
	DB      *Databases
	Redis   *redis.Client
	Blobs   *BlobStores
	Catalog *careers.Catalog
	// Firebase verifies ID tokens when AUTH_PROVIDER=firebase.
	Firebase authmw.IDTokenVerifier
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	cfg := dep.Config

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpmw.RequestIDMiddleware())
	r.Use(metrics.Middleware())
	r.Use(cors.New(corsConfig(cfg.Server.AllowedOrigins)))

	var redisPing httpapi.Pinger
	if dep.Redis != nil {
		redisPing = httpapi.PingFunc(func(ctx context.Context) error { return dep.Redis.Ping(ctx).Err() })
	}
	healthHandler := httpapi.NewHealthHandler(ServiceName, cfg.App.Version, map[string]httpapi.Pinger{
		"db":    dep.DB.Pool,
		"redis": redisPing,
	})
	healthHandler.RegisterRoutes(r)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Stores
	userRepo := authrepo.NewUserRepository(dep.DB.SQL)
	roleRepo := authrepo.NewRoleRepository(dep.DB.SQL)
	intakeRepo := intakerepo.NewRepo(dep.DB.Pool)
	developerRepo := devrepo.NewRepo(dep.DB.Pool)
	assignmentRepo := assignrepo.NewRepo(dep.DB.Pool)
	contentRepo := contentrepo.NewRepo(dep.DB.Pool)

	// Services
	authService := authservice.NewAuthService(
		userRepo, roleRepo,
		session.NewStore(dep.Redis, cfg.Auth.SessionTTL),
		token.NewIssuer(cfg.Auth.JWTSecret),
	)
	intakeService := intakeservice.NewIntakeService(intakeRepo, dep.Catalog, dep.Blobs.Resumes)
	onboardingService := devservice.NewOnboardingService(developerRepo, dep.Blobs.Portfolio)
	assignmentService := assignservice.NewAssignmentService(assignmentRepo, developerRepo)
	dashboardService := dashservice.NewDashboardService(intakeRepo, assignmentRepo, developerRepo)
	contentService := contentservice.NewContentService(contentRepo)

	api := r.Group("/api/v1")

	switch cfg.Auth.Provider {
	case config.AuthProviderFirebase:
		api.Use(authmw.FirebaseAuthenticate(dep.Firebase, authService))
	default:
		api.Use(authmw.Authenticate(authService))
		authhttp.New(authService).Register(api.Group("/auth"))
	}

	limiter := httpmw.NewIPRateLimiter(cfg.RateLimit.IntakePerMinute, cfg.RateLimit.IntakeBurst)
	intakeHandler := intakehttp.New(intakeService, dep.Catalog, cfg.Storage.UploadMaxBytes)
	intakeHandler.RegisterPublic(api, limiter.Middleware())
	formshttp.New(forms.Default()).Register(api)
	contenthttp.New(contentService).Register(api)

	developer := api.Group("/developer", authmw.RequireAuthenticated(authdomain.RoleDeveloper))
	devhttp.New(onboardingService, cfg.Storage.UploadMaxBytes).Register(developer)
	dashboardHandler := dashhttp.New(dashboardService)
	dashboardHandler.RegisterDeveloper(developer)
	assignmentHandler := assignhttp.New(assignmentService)
	assignmentHandler.RegisterDeveloper(developer)

	admin := api.Group("/admin", authmw.RequireRole(authdomain.RoleAdmin))
	dashboardHandler.RegisterAdmin(admin)
	assignmentHandler.RegisterAdmin(admin)
	intakeHandler.RegisterAdmin(admin)

	return r
}

func corsConfig(origins []string) cors.Config {
	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", httpmw.RequestIDHeader},
		ExposeHeaders:    []string{httpmw.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}
