package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/municipio/registro-eventos/docs"
	"github.com/municipio/registro-eventos/internal/api/handler"
	"github.com/municipio/registro-eventos/internal/api/middleware"
	"github.com/municipio/registro-eventos/internal/core/domain"
	"github.com/municipio/registro-eventos/internal/core/ports"
	"github.com/municipio/registro-eventos/internal/infrastructure/http/handlers"
)

// Services groups the use cases the router exposes.
type Services struct {
	Auth      ports.AuthService
	Vecinos   ports.VecinoService
	Eventos   ports.EventoService
	Registros ports.RegistroService
	Taxonomia ports.TaxonomiaService
	Usuarios  ports.UsuarioService
	Dashboard ports.DashboardService
	Audit     ports.AuditService
}

// RouterConfig carries everything NewRouter needs besides the services.
type RouterConfig struct {
	JWTSecret   string
	CORSOrigins []string
	Logger      zerolog.Logger
	// Dependencies pinged by /health/ready, keyed by name. Nil entries are skipped.
	Dependencies map[string]handlers.Pinger
}

var (
	allRoles   = domain.Roles
	adminOnly  = []string{domain.RoleAdmin}
	organizers = []string{domain.RoleAdmin, domain.RoleSubsecretaria}
	registrars = []string{domain.RoleAdmin, domain.RoleUser, domain.RoleSubsecretaria}
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(requestLogger(cfg.Logger))
	e.Use(echoprometheus.NewMiddleware("eventos"))

	// --- Ops (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(cfg.Dependencies)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(svc.Auth)
	vecinoHandler := handler.NewVecinoHandler(svc.Vecinos)
	eventoHandler := handler.NewEventoHandler(svc.Eventos)
	registroHandler := handler.NewRegistroHandler(svc.Registros)
	taxonomiaHandler := handler.NewTaxonomiaHandler(svc.Taxonomia)
	usuarioHandler := handler.NewUsuarioHandler(svc.Usuarios)
	dashboardHandler := handler.NewDashboardHandler(svc.Dashboard, svc.Audit)

	api := e.Group("/api")
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("", middleware.Auth(cfg.JWTSecret))
	read := middleware.RBAC(allRoles...)
	admin := middleware.RBAC(adminOnly...)
	organize := middleware.RBAC(organizers...)
	register := middleware.RBAC(registrars...)

	// --- Auth ---
	protected.GET("/auth/verify", authHandler.Verify)
	protected.PUT("/auth/password", authHandler.ChangePassword)

	// --- Vecinos ---
	vecinos := protected.Group("/vecinos")
	vecinos.GET("", vecinoHandler.List, read)
	vecinos.GET("/buscar", vecinoHandler.Search, read)
	vecinos.GET("/documento/:documento", vecinoHandler.GetByDocumento, read)
	vecinos.GET("/:id", vecinoHandler.Get, read)
	vecinos.GET("/:id/eventos", vecinoHandler.Eventos, read)
	vecinos.POST("", vecinoHandler.Create, admin)
	vecinos.PUT("/:id", vecinoHandler.Update, admin)
	vecinos.DELETE("/:id", vecinoHandler.Delete, admin)
	vecinos.PATCH("/:id/toggle-activo", vecinoHandler.ToggleActivo, admin)

	// --- Eventos ---
	eventos := protected.Group("/eventos")
	eventos.GET("", eventoHandler.List, read)
	eventos.GET("/:id", eventoHandler.Get, read)
	eventos.GET("/:id/vecinos", eventoHandler.Vecinos, read)
	eventos.POST("", eventoHandler.Create, organize)
	eventos.PUT("/:id", eventoHandler.Update, organize)
	eventos.PATCH("/:id/toggle-activo", eventoHandler.ToggleActivo, organize)
	eventos.DELETE("/:id", eventoHandler.Delete, admin)

	// --- Registros ---
	registros := protected.Group("/registros")
	registros.GET("", registroHandler.List, read)
	registros.GET("/:id", registroHandler.Get, read)
	registros.POST("", registroHandler.Create, register)
	registros.POST("/documento", registroHandler.CreateByDocumento, register)
	registros.PUT("/:id", registroHandler.Update, admin)
	registros.DELETE("/:id", registroHandler.Delete, admin)

	// --- Taxonomía ---
	subs := protected.Group("/subsecretarias")
	subs.GET("", taxonomiaHandler.ListSubsecretarias, read)
	subs.GET("/:id", taxonomiaHandler.GetSubsecretaria, read)
	subs.GET("/:id/eventos", taxonomiaHandler.SubsecretariaEventos, read)
	subs.POST("", taxonomiaHandler.CreateSubsecretaria, admin)
	subs.PUT("/:id", taxonomiaHandler.UpdateSubsecretaria, admin)
	subs.DELETE("/:id", taxonomiaHandler.DeleteSubsecretaria, admin)
	subs.PATCH("/:id/toggle-activo", taxonomiaHandler.ToggleSubsecretaria, admin)

	tipos := protected.Group("/tipos")
	tipos.GET("", taxonomiaHandler.ListTipos, read)
	tipos.GET("/:id", taxonomiaHandler.GetTipo, read)
	tipos.GET("/:id/subtipos", taxonomiaHandler.TipoSubtipos, read)
	tipos.POST("", taxonomiaHandler.CreateTipo, admin)
	tipos.PUT("/:id", taxonomiaHandler.UpdateTipo, admin)
	tipos.DELETE("/:id", taxonomiaHandler.DeleteTipo, admin)

	subtipos := protected.Group("/subtipos")
	subtipos.GET("", taxonomiaHandler.ListSubtipos, read)
	subtipos.GET("/:id", taxonomiaHandler.GetSubtipo, read)
	subtipos.POST("", taxonomiaHandler.CreateSubtipo, admin)
	subtipos.PUT("/:id", taxonomiaHandler.UpdateSubtipo, admin)
	subtipos.DELETE("/:id", taxonomiaHandler.DeleteSubtipo, admin)

	// --- Usuarios ---
	usuarios := protected.Group("/usuarios", admin)
	usuarios.GET("", usuarioHandler.List)
	usuarios.GET("/buscar", usuarioHandler.Search)
	usuarios.GET("/:id", usuarioHandler.Get)
	usuarios.POST("", usuarioHandler.Create)
	usuarios.PUT("/:id", usuarioHandler.Update)
	usuarios.DELETE("/:id", usuarioHandler.Delete)
	usuarios.PATCH("/:id/toggle-activo", usuarioHandler.ToggleActivo)

	// --- Dashboard / auditoría ---
	protected.GET("/dashboard/resumen", dashboardHandler.Resumen, read)
	protected.GET("/auditoria", dashboardHandler.Auditoria, admin)

	return e
}

// requestLogger writes one structured line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
