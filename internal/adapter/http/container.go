package http

import (
	"log/slog"
	"os"

	sqlitedb "todoapi/internal/adapter/database/sqlite"
	sqliterepo "todoapi/internal/adapter/database/sqlite/repository"

	pgdb "todoapi/internal/adapter/database/postgres"
	pgrepo "todoapi/internal/adapter/database/postgres/repository"

	"todoapi/internal/adapter/http/handler"
	"todoapi/internal/adapter/session"
	"todoapi/internal/core/port"
	"todoapi/internal/core/service"
	"todoapi/internal/core/telemetry"
	"todoapi/pkg/config"
)

type Container struct {
	AccountRepo port.AccountRepository
	TodoRepo    port.TodoRepository

	RegistrationSvc port.RegistrationService
	AuthSvc         port.AuthService
	TodoSvc         port.TodoService

	Sessions port.SessionStore

	AuthHandler *handler.AuthHandler
	TodoHandler *handler.TodoHandler

	close func()
}

// NewContainer wires the whole dependency graph. DATABASE_URL switches the
// persistence backend to Postgres, REDIS_URL moves sessions out of process.
func NewContainer(logger *config.LokiLogger, appConfig *config.AppConfig) (*Container, error) {
	probe := telemetry.NewOTELProbe(slog.Default())

	accountRepo, todoRepo, closeDB, err := buildRepositories(probe)

	if err != nil {
		return nil, err
	}

	sessions, err := buildSessionStore(appConfig)

	if err != nil {
		closeDB()
		return nil, err
	}

	registrationSvc := service.NewRegistrationService(accountRepo)
	authSvc := service.NewAuthService(accountRepo)
	todoSvc := service.NewTodoService(todoRepo, probe)

	authHandler := handler.NewAuthHandler(registrationSvc, authSvc, sessions, appConfig.SessionTTL)
	todoHandler := handler.NewTodoHandler(todoSvc, logger)

	return &Container{
		AccountRepo: accountRepo,
		TodoRepo:    todoRepo,

		RegistrationSvc: registrationSvc,
		AuthSvc:         authSvc,
		TodoSvc:         todoSvc,

		Sessions: sessions,

		AuthHandler: authHandler,
		TodoHandler: todoHandler,

		close: closeDB,
	}, nil
}

func (c *Container) Close() {
	if c.close != nil {
		c.close()
	}
}

func buildRepositories(probe port.Telemetry) (port.AccountRepository, port.TodoRepository, func(), error) {
	if os.Getenv("DATABASE_URL") != "" {
		db, err := pgdb.NewDB()

		if err != nil {
			return nil, nil, nil, err
		}

		slog.Info("Using postgres database")

		return pgrepo.NewAccountRepository(db), pgrepo.NewTodoRepository(db), db.Close, nil
	}

	db, err := sqlitedb.NewDB()

	if err != nil {
		return nil, nil, nil, err
	}

	slog.Info("Using sqlite database")

	return sqliterepo.NewAccountRepository(db, probe), sqliterepo.NewTodoRepository(db, probe), func() { db.Close() }, nil
}

func buildSessionStore(appConfig *config.AppConfig) (port.SessionStore, error) {
	if url := os.Getenv("REDIS_URL"); url != "" {
		slog.Info("Using redis session store")
		return session.NewRedisStore(url, appConfig.SessionTTL)
	}

	slog.Info("Using in-memory session store")

	return session.NewMemoryStore(appConfig.SessionTTL), nil
}
