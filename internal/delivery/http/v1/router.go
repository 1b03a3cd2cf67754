package v1

import (
	"net/http"

	"portfolio-backend/config"
	"portfolio-backend/internal/delivery/http/middleware"
	"portfolio-backend/internal/delivery/http/response"
	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/usecase"
	"portfolio-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

type RouterDeps struct {
	ContactUC  domain.ContactUsecase
	LocationUC domain.LocationUsecase
	HealthUC   usecase.HealthUsecase
	Logger     *zap.Logger
	Config     *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.AllowedOrigins, deps.Config.IsProduction())) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.ErrorHandler(log))

	r.NoRoute(func(c *gin.Context) {
		_ = c.Error(apperror.NotFound("Route not found"))
	})

	api := r.Group("/api")

	// Swagger UI needs its inline scripts, so it sits outside the strict CSP.
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	public := api.Group("")
	public.Use(middleware.SecurityHeadersMiddleware(deps.Config.IsProduction()))
	{
		public.GET("/health", func(c *gin.Context) {
			response.Data(c, http.StatusOK, deps.HealthUC.Check(c.Request.Context()))
		})
		NewContactHandler(public, deps.ContactUC)
		NewLocationHandler(public, deps.LocationUC)
	}

	return r
}
