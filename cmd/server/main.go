package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/municipio/registro-eventos/internal/api"
	"github.com/municipio/registro-eventos/internal/core/domain"
	"github.com/municipio/registro-eventos/internal/core/ports"
	"github.com/municipio/registro-eventos/internal/core/service"
	mongodb "github.com/municipio/registro-eventos/internal/infrastructure/db/mongo"
	"github.com/municipio/registro-eventos/internal/infrastructure/db/mysql"
	"github.com/municipio/registro-eventos/internal/infrastructure/db/redis"
	"github.com/municipio/registro-eventos/internal/infrastructure/http/handlers"
	"github.com/municipio/registro-eventos/internal/infrastructure/queue"
	"github.com/municipio/registro-eventos/internal/pkg/config"
	"github.com/municipio/registro-eventos/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

//	@title						Registro de Eventos Municipales API
//	@version					1.0
//	@description				Gestión de vecinos, eventos y registros de asistencia.
//	@BasePath					/api
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
func main() {
	app := &cli.App{
		Name:  "registro-eventos",
		Usage: "Backend de registro de vecinos en eventos municipales",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "log-pretty",
				Usage: "human readable console logs (default in development)",
			},
		},
		Before: func(cCtx *cli.Context) error {
			cfg := config.Load()
			logger.Init(logger.Options{
				Level:   cfg.LogLevel,
				Pretty:  cCtx.Bool("log-pretty") || cfg.IsDevelopment(),
				Service: "registro-eventos",
			})
			cCtx.App.Metadata = map[string]any{"config": cfg}
			return nil
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "start the HTTP API",
				Action: serve,
			},
			{
				Name:  "migrate",
				Usage: "apply or revert the database schema",
				Subcommands: []*cli.Command{
					{
						Name:  "up",
						Usage: "apply every pending migration",
						Action: func(cCtx *cli.Context) error {
							return withMigrator(cCtx, func(m *mysql.Migrator) error { return m.Up() })
						},
					},
					{
						Name:  "down",
						Usage: "revert the last migrations",
						Flags: []cli.Flag{
							&cli.IntFlag{Name: "steps", Value: 1, Usage: "number of migrations to revert"},
						},
						Action: func(cCtx *cli.Context) error {
							steps := cCtx.Int("steps")
							return withMigrator(cCtx, func(m *mysql.Migrator) error { return m.Down(steps) })
						},
					},
				},
			},
			{
				Name:  "crear-admin",
				Usage: "create an administrator account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Value: "admin@municipio.gob.ar", Usage: "login email"},
					&cli.StringFlag{Name: "password", Value: "Admin123!", Usage: "initial password"},
					&cli.StringFlag{Name: "nombre", Value: "Administrador", Usage: "display name"},
				},
				Action: createAdmin,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func appConfig(cCtx *cli.Context) *config.Config {
	return cCtx.App.Metadata["config"].(*config.Config)
}

func mysqlConfig(cfg *config.Config) mysql.Config {
	return mysql.Config{
		Host:            cfg.DB.Host,
		Port:            strconv.Itoa(cfg.DB.Port),
		User:            cfg.DB.User,
		Password:        cfg.DB.Password,
		Database:        cfg.DB.Name,
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	}
}

func serve(cCtx *cli.Context) error {
	cfg := appConfig(cCtx)
	log := logger.Get()

	ctx, stop := signal.NotifyContext(cCtx.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := mysql.Connect(ctx, mysqlConfig(cfg))
	if err != nil {
		return err
	}
	defer db.Close()
	log.Info().Str("host", cfg.DB.Host).Str("database", cfg.DB.Name).Msg("mysql connected")

	deps := map[string]handlers.Pinger{"mysql": handlers.PingFunc(db.PingContext)}

	var guard ports.RegistrationGuard
	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer rdb.Close()
		deps["redis"] = handlers.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
		if cfg.RegistrationGuard == config.GuardRedis {
			guard = redis.NewRegistrationGuard(rdb)
		}
		log.Info().Str("addr", cfg.Redis.Addr).Str("registration_guard", cfg.RegistrationGuard).Msg("redis connected")
	}

	var (
		recorder   ports.AuditRecorder = service.NopAudit{}
		auditRepo  ports.AuditRepository
		dispatcher *queue.AuditDispatcher
	)
	if cfg.Mongo.URI != "" {
		client, mdb, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database, AppName: "registro-eventos"})
		if err != nil {
			return err
		}
		defer disconnectMongo(client, log)
		if err := mongodb.EnsureIndexes(ctx, mdb); err != nil {
			return err
		}
		deps["mongo"] = handlers.PingFunc(func(ctx context.Context) error { return client.Ping(ctx, nil) })

		auditRepo = mongodb.NewAuditRepository(mdb)
		dispatcher = queue.NewAuditDispatcher(cfg.AuditWorkers, auditRepo, logger.Component(log, "audit"))
		// Not the signal context: queued entries are drained after the server stops.
		dispatcher.Start(context.Background())
		recorder = dispatcher
		log.Info().Str("database", cfg.Mongo.Database).Int("workers", cfg.AuditWorkers).Msg("audit trail enabled")
	} else {
		log.Warn().Msg("MONGO_URI not set, audit trail disabled")
	}

	e := api.NewRouter(buildServices(cfg, db, guard, recorder, auditRepo, log), api.RouterConfig{
		JWTSecret:    cfg.JWTSecret,
		CORSOrigins:  cfg.CORSOrigins,
		Logger:       logger.Component(log, "http"),
		Dependencies: deps,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err = e.Shutdown(shutdownCtx)
	if dispatcher != nil {
		if derr := dispatcher.Stop(shutdownCtx); derr != nil && err == nil {
			err = derr
		}
	}
	return err
}

func buildServices(
	cfg *config.Config,
	db *sqlx.DB,
	guard ports.RegistrationGuard,
	rec ports.AuditRecorder,
	auditRepo ports.AuditRepository,
	log zerolog.Logger,
) api.Services {
	vecinos := mysql.NewVecinoRepository(db)
	eventos := mysql.NewEventoRepository(db)
	registros := mysql.NewRegistroRepository(db)
	usuarios := mysql.NewUsuarioRepository(db)
	subsecretarias := mysql.NewSubsecretariaRepository(db)
	tipos := mysql.NewTipoRepository(db)
	subtipos := mysql.NewSubtipoRepository(db)

	return api.Services{
		Auth:      service.NewAuthService(usuarios, cfg.JWTSecret, cfg.JWTExpiresIn),
		Vecinos:   service.NewVecinoService(vecinos, rec, logger.Component(log, "vecinos")),
		Eventos:   service.NewEventoService(eventos, subtipos, usuarios, rec, logger.Component(log, "eventos")),
		Registros: service.NewRegistroService(registros, vecinos, eventos, guard, rec, logger.Component(log, "registros")),
		Taxonomia: service.NewTaxonomiaService(subsecretarias, tipos, subtipos, eventos, rec, logger.Component(log, "taxonomia")),
		Usuarios:  service.NewUsuarioService(usuarios, rec, logger.Component(log, "usuarios")),
		Dashboard: service.NewDashboardService(mysql.NewDashboardRepository(db)),
		Audit:     service.NewAuditService(auditRepo),
	}
}

func disconnectMongo(client *mongo.Client, log zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		log.Error().Err(err).Msg("mongo disconnect")
	}
}

func withMigrator(cCtx *cli.Context, fn func(*mysql.Migrator) error) error {
	m, err := mysql.NewMigrator(mysqlConfig(appConfig(cCtx)), logger.Component(logger.Get(), "migrate"))
	if err != nil {
		return err
	}
	defer m.Close()
	return fn(m)
}

func createAdmin(cCtx *cli.Context) error {
	cfg := appConfig(cCtx)
	log := logger.Get()

	db, err := mysql.Connect(cCtx.Context, mysqlConfig(cfg))
	if err != nil {
		return err
	}
	defer db.Close()

	svc := service.NewUsuarioService(mysql.NewUsuarioRepository(db), service.NopAudit{}, logger.Component(log, "usuarios"))
	u, err := svc.Create(cCtx.Context, domain.Identity{Email: "cli", Rol: domain.RoleAdmin}, ports.UsuarioInput{
		Nombre:   cCtx.String("nombre"),
		Email:    cCtx.String("email"),
		Password: cCtx.String("password"),
		Rol:      domain.RoleAdmin,
	})
	if errors.Is(err, domain.ErrDuplicateEmail) {
		log.Warn().Str("email", cCtx.String("email")).Msg("admin already exists")
		return nil
	}
	if err != nil {
		return err
	}
	log.Info().Int64("usuario_id", u.ID).Str("email", u.Email).Msg("admin created")
	return nil
}
