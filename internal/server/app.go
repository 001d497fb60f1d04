// Package server initializes and runs the main application server.
// It opens the database and session store, runs migrations, wires the
// services, and starts the HTTP server with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/shopkeeper/internal/logging"
	"github.com/dmitrijs2005/shopkeeper/internal/server/config"
	"github.com/dmitrijs2005/shopkeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/shopkeeper/internal/server/repositories/carts"
	"github.com/dmitrijs2005/shopkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/shopkeeper/internal/server/services"
	"github.com/redis/go-redis/v9"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	userService    *services.UserService
	productService *services.ProductService
	cartService    *services.CartService
}

func NewApp(c *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	rm, err := repomanager.NewPostgresRepositoryManager(db)
	if err != nil {
		return nil, fmt.Errorf("repo manager init error: %w", err)
	}

	if err := rm.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: c.RedisAddr})
	cartRepo := carts.NewRedisRepository(redisClient)

	us := services.NewUserService(db, rm, c)
	ps := services.NewProductService(db, rm)
	cs := services.NewCartService(db, rm, cartRepo)

	return &App{
		config:         c,
		logger:         logger,
		db:             db,
		userService:    us,
		productService: ps,
		cartService:    cs,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s, err := httpapi.NewHTTPServer(
		app.config.EndpointAddr,
		app.logger,
		app.userService,
		app.productService,
		app.cartService,
		app.config.SecretKey,
	)

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	} else {

		if err := s.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	if app.config.RefreshSecretFallsBack() {
		app.logger.Warn(ctx, "REFRESH_TOKEN_SECRET is unset, falling back to JWT_SECRET; key separation is weakened")
	}

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
