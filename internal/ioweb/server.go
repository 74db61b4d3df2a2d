// Package ioweb serves IPNI tables over a REST API.
package ioweb

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/ipnidb/internal/iometrics"
	"github.com/gnames/ipnidb/pkg/config"
	"github.com/gnames/ipnidb/pkg/lifecycle"
	"github.com/gnames/ipnidb/pkg/parserpool"
	"github.com/gnames/ipnidb/pkg/store"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// shutdownTimeout limits the time for finishing requests on exit.
const shutdownTimeout = 10 * time.Second

// Server is the REST API of ipnidb.
type Server struct {
	cfg      *config.Config
	store    store.Store
	importer lifecycle.Importer
	parser   parserpool.Pool

	// importMu lets only one import run at a time.
	importMu sync.Mutex

	echo *echo.Echo
}

// New creates a server with all routes registered.
func New(cfg *config.Config, st store.Store, imp lifecycle.Importer) *Server {
	s := &Server{
		cfg:      cfg,
		store:    st,
		importer: imp,
		parser:   parserpool.NewPool(cfg.JobsNumber, nomcode.Botanical),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.CORS())
	e.Use(iometrics.Middleware())
	e.Use(requestLogger())

	s.echo = e
	s.routes()
	return s
}

func (s *Server) routes() {
	e := s.echo

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, success("running"))
	})
	e.GET("/metrics", echo.WrapHandler(iometrics.Handler()))

	registerEntity(e, "/name", s.store.Names(), stringID, s.enrich)
	registerEntity(e, "/reference", s.store.References(), stringID, nil)
	registerEntity(e, "/taxon", s.store.Taxa(), stringID, nil)
	registerEntity(e, "/name_relation", s.store.NameRelations(), intID, nil)
	registerEntity(e, "/type_material", s.store.TypeMaterials(), intID, nil)

	e.GET("/name/:id/metadata", s.nameMetadata)
	e.GET("/name/find_similar", s.findSimilar)

	for path, col := range distinctRoutes {
		e.GET(path, s.distinct(col.table, col.column))
	}

	e.POST("/database/import", s.importData, middleware.BasicAuth(s.checkUser))
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves requests until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	defer s.parser.Close()

	addr := fmt.Sprintf(":%d", s.cfg.Server.Port)
	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting API server", "address", addr)
		errCh <- s.echo.Start(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Stopping API server")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.echo.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) checkUser(user, password string, _ echo.Context) (bool, error) {
	okUser := subtle.ConstantTimeCompare(
		[]byte(user), []byte(s.cfg.Server.User),
	) == 1
	okPass := subtle.ConstantTimeCompare(
		[]byte(password), []byte(s.cfg.Server.Password),
	) == 1
	return okUser && okPass, nil
}

// importData runs the import synchronously. It keeps going when the
// client disconnects, so a dropped connection does not roll back a
// nearly finished import.
func (s *Server) importData(c echo.Context) error {
	if !s.importMu.TryLock() {
		return ImportBusyError()
	}
	defer s.importMu.Unlock()

	ctx := context.WithoutCancel(c.Request().Context())
	rep, err := s.importer.Import(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, success(rep))
}

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency.String(),
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				slog.Warn("Request error", append(attrs, "error", v.Error)...)
				return nil
			}
			slog.Info("Request", attrs...)
			return nil
		},
	})
}
