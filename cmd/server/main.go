// @title                       Todo API
// @version                     1.0
// @description                 Personal todo service with bearer-token authentication and an admin role.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/todoapp/todo-api/internal/api"
	"github.com/todoapp/todo-api/internal/api/handler"
	"github.com/todoapp/todo-api/internal/core/auth"
	"github.com/todoapp/todo-api/internal/core/ports"
	"github.com/todoapp/todo-api/internal/core/service"
	"github.com/todoapp/todo-api/internal/infrastructure/db/mongo"
	"github.com/todoapp/todo-api/internal/infrastructure/db/redis"
	"github.com/todoapp/todo-api/internal/infrastructure/db/sqlstore"
	"github.com/todoapp/todo-api/internal/pkg/config"
	"github.com/todoapp/todo-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		// Init is a no-op when run already configured the logger.
		l := logger.Init(logger.Options{Pretty: true})
		l.Fatal().Err(err).Msg("server exited")
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "todo-api",
	})

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.close()

	var denylist ports.TokenDenylist
	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer rdb.Close()
		denylist = redis.NewDenylist(rdb)
		st.checks["redis"] = func(ctx context.Context) error { return redis.Ping(ctx, rdb) }
		log.Info().Str("addr", cfg.Redis.Addr).Msg("token revocation enabled")
	} else {
		log.Warn().Msg("REDIS_ADDR not set: logout cannot revoke tokens before they expire")
	}

	tokens, err := auth.NewTokenService(cfg.Auth.JWTSecret)
	if err != nil {
		return err
	}
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)

	authSvc := service.NewAuthService(st.users, hasher, tokens, denylist, service.AuthConfig{
		TokenTTL:            cfg.Auth.TokenTTL,
		AllowRoleSelfAssign: cfg.Auth.AllowRoleSelfAssign,
	}, logger.Component("auth"))
	if err := authSvc.EnsureAdmin(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
		return err
	}

	e := api.NewRouter(api.Deps{
		Auth:          authSvc,
		Todos:         service.NewTodoService(st.todos, logger.Component("todos")),
		Admin:         service.NewAdminService(st.todos, logger.Component("admin")),
		Users:         service.NewUserService(st.users, hasher, logger.Component("users")),
		Tokens:        tokens,
		Denylist:      denylist,
		Checks:        st.checks,
		Logger:        logger.Component("http"),
		SecureCookies: !cfg.IsDevelopment(),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.Store.Driver).Msg("server starting")
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
	return e.Shutdown(shutdownCtx)
}

type stores struct {
	users  ports.UserRepository
	todos  ports.TodoRepository
	checks map[string]handler.Check
	close  func()
}

func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*stores, error) {
	if cfg.Store.Driver == config.DriverMongo {
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		return &stores{
			users:  mongo.NewUserRepository(db),
			todos:  mongo.NewTodoRepository(db),
			checks: map[string]handler.Check{"mongodb": func(ctx context.Context) error { return mongo.Ping(ctx, db) }},
			close:  func() { _ = client.Disconnect(context.Background()) },
		}, nil
	}

	db, err := sqlstore.Open(sqlstore.Config{Driver: cfg.Store.Driver, DSN: cfg.Store.DSN}, logger.Component("gorm"))
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	log.Info().Str("driver", cfg.Store.Driver).Msg("database ready")

	return &stores{
		users:  sqlstore.NewUserRepository(db),
		todos:  sqlstore.NewTodoRepository(db),
		checks: map[string]handler.Check{"database": sqlDB.PingContext},
		close:  func() { _ = sqlstore.Close(db) },
	}, nil
}
