package server

import (
	"context"
	"net/http"
	"time"

	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/apikey"
	apikeydomain "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/apikey/domain"
	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/client"
	clientdomain "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/client/domain"
	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/config"
	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/mailtemplate"
	mailtemplatedomain "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/mailtemplate/domain"
	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/module"
	moduledomain "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/module/domain"
	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/notify"
	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/observability"
	obsmiddleware "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/observability/logger"
	obsmetrics "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/observability/metrics"
	obstracing "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/observability/tracing"
	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/providers/email"
	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/ratelimit"
	"github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/record"
	recorddomain "github.com/ayatiworkstechnologies/ayatiworks-backend-next-sub000/internal/record/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	client.Module,
	module.Module,
	record.Module,
	apikey.Module,
	mailtemplate.Module,
	email.Module,
	notify.Module,
	ratelimit.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine          *gin.Engine
	cfg             config.Config
	db              *gorm.DB
	genID           *snowflake.Node
	clientSvc       clientdomain.Service
	clientRepo      clientdomain.Repository
	moduleSvc       moduledomain.Service
	recordSvc       recorddomain.Service
	apiKeySvc       apikeydomain.Service
	mailTemplateSvc mailtemplatedomain.Service
	obsMetrics      *obsmetrics.Metrics
	publicLimiter   *ratelimit.PublicAPILimiter
	apiKeyLimiter   *rateLimiter
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	DB              *gorm.DB
	GenID           *snowflake.Node
	ClientSvc       clientdomain.Service
	ClientRepo      clientdomain.Repository
	ModuleSvc       moduledomain.Service
	RecordSvc       recorddomain.Service
	APIKeySvc       apikeydomain.Service
	MailTemplateSvc mailtemplatedomain.Service
	ObsMetrics      *obsmetrics.Metrics          `optional:"true"`
	PublicLimiter   *ratelimit.PublicAPILimiter  `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		db:              p.DB,
		genID:           p.GenID,
		clientSvc:       p.ClientSvc,
		clientRepo:      p.ClientRepo,
		moduleSvc:       p.ModuleSvc,
		recordSvc:       p.RecordSvc,
		apiKeySvc:       p.APIKeySvc,
		mailTemplateSvc: p.MailTemplateSvc,
		obsMetrics:      p.ObsMetrics,
		publicLimiter:   p.PublicLimiter,
		apiKeyLimiter:   newRateLimiter(5, 10*time.Minute),
	}

	svc.registerAdminRoutes()
	svc.registerPublicRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAdminRoutes() {
	api := s.engine.Group("/api")

	clients := api.Group("/clients")
	{
		clients.GET("", s.ListClients)
		clients.POST("", s.CreateClient)
		clients.GET("/:clientId", s.ClientContext(), s.GetClient)
		clients.PATCH("/:clientId", s.ClientContext(), s.UpdateClient)
		clients.DELETE("/:clientId", s.ClientContext(), s.DeleteClient)
	}

	scoped := api.Group("/clients/:clientId", s.ClientContext())
	{
		// Provisioning lives outside the /modules/:moduleId space so the
		// static segment never collides with the wildcard.
		scoped.POST("/leads", s.EnsureLeadsModule)

		modules := scoped.Group("/modules")
		{
			modules.GET("", s.ListModules)
			modules.POST("", s.CreateModule)
			modules.GET("/:moduleId", s.GetModule)
			modules.PATCH("/:moduleId", s.UpdateModule)
			modules.DELETE("/:moduleId", s.DeleteModule)
			modules.GET("/:moduleId/records-view", s.RecordsView)

			records := modules.Group("/:moduleId/records")
			{
				records.GET("", s.ListRecords)
				records.POST("", s.CreateRecord)
				records.GET("/:recordId", s.GetRecord)
				records.DELETE("/:recordId", s.DeleteRecord)
			}
		}

		apiKey := scoped.Group("/api-key")
		{
			apiKey.GET("", s.APIKeyStatus)
			apiKey.POST("/generate", s.GenerateAPIKey)
			apiKey.DELETE("", s.RevokeAPIKey)
		}

		templates := scoped.Group("/mail-templates")
		{
			templates.GET("", s.ListMailTemplates)
			templates.POST("", s.CreateMailTemplate)
			templates.GET("/:templateId", s.GetMailTemplate)
			templates.PATCH("/:templateId", s.UpdateMailTemplate)
			templates.DELETE("/:templateId", s.DeleteMailTemplate)
		}

		tester := scoped.Group("/api-tester")
		{
			tester.GET("/:moduleId/sample", s.APITesterSample)
			tester.POST("/:moduleId/run", s.APITesterRun)
		}
	}
}

func (s *Server) registerPublicRoutes() {
	public := s.engine.Group(
		"/api/v1/public/:clientSlug/:moduleSlug",
		s.APIKeyRequired(),
		s.PublicRateLimit(),
		s.PublicClientSlugCheck(),
	)
	{
		public.GET("/records", s.PublicListRecords)
		public.POST("/records", s.PublicCreateRecord)
	}
}
