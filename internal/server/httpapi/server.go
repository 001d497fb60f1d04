// Package httpapi exposes the server's HTTP surface: the auth endpoints,
// the product catalog, and the authenticated cart routes.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/shopkeeper/internal/logging"
	"github.com/dmitrijs2005/shopkeeper/internal/server/services"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// HTTPServer wires services into echo routes and owns the listener
// lifecycle.
type HTTPServer struct {
	address   string
	logger    logging.Logger
	users     *services.UserService
	products  *services.ProductService
	carts     *services.CartService
	jwtSecret []byte
}

// NewHTTPServer constructs an HTTPServer.
func NewHTTPServer(a string, l logging.Logger, us *services.UserService, ps *services.ProductService, cs *services.CartService, secretKey string) (*HTTPServer, error) {
	return &HTTPServer{
		address:   a,
		logger:    l.With("module", "http_server"),
		users:     us,
		products:  ps,
		carts:     cs,
		jwtSecret: []byte(secretKey),
	}, nil
}

func (s *HTTPServer) buildEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(s.requestLogger())

	e.GET("/", s.handleRoot)
	e.GET("/products", s.handleListProducts)

	authGroup := e.Group("/api/auth")
	authGroup.POST("/register", s.handleRegister)
	authGroup.POST("/login", s.handleLogin)
	authGroup.POST("/refresh", s.handleRefresh)
	authGroup.POST("/logout", s.handleLogout)

	cartGroup := e.Group("/cart", s.accessTokenMiddleware)
	cartGroup.POST("", s.handleAddCartItem)
	cartGroup.GET("", s.handleGetCart)
	cartGroup.DELETE("/:productId", s.handleRemoveCartItem)

	return e
}

// requestLogger reports every request through the structured logger.
func (s *HTTPServer) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.Info(c.Request().Context(), "request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency.String(),
			)
			return nil
		},
	})
}

// Run starts the HTTP server and shuts it down gracefully when ctx is
// cancelled.
func (s *HTTPServer) Run(ctx context.Context) error {
	e := s.buildEcho()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = e.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := e.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *HTTPServer) handleRoot(c echo.Context) error {
	return c.String(http.StatusOK, "Welcome to the shopkeeper storefront!")
}
