// Package dashboard is the admin gateway: it serves the management views
// for a signed-in session and forwards mutations to the content API.
package dashboard

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"dsignme/internal/apiclient"
	"dsignme/internal/authgate"
	"dsignme/internal/logging"
)

// Server wraps the HTTP server of the admin gateway.
type Server struct {
	httpServer *http.Server
	logger     *logrus.Entry
}

func New(addr string, logger *logrus.Entry, client *apiclient.Client, gate *authgate.Gate, store *Store) (*Server, error) {
	logger = logging.OrDiscard(logger)
	router, err := buildRouter(logger, client, gate, store)
	if err != nil {
		return nil, err
	}
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}, nil
}

func (s *Server) ListenAndServe() error {
	s.logger.WithField("addr", s.httpServer.Addr).Info("admin gateway listening")
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func buildRouter(logger *logrus.Entry, client *apiclient.Client, gate *authgate.Gate, store *Store) (*gin.Engine, error) {
	if client == nil || gate == nil || store == nil {
		return nil, fmt.Errorf("dashboard: client, gate and store are required")
	}
	logger = logging.OrDiscard(logger)

	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})

	h := &handlers{client: client, gate: gate, store: store, logger: logger}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.POST("/login", h.login)
	router.POST("/logout", h.logout)

	dash := router.Group("/dashboard", gate.Middleware(), h.workspace)
	dash.GET("", h.stats)

	dash.GET("/categories", h.listCategories)
	dash.POST("/categories", h.createCategory)
	dash.POST("/categories/reload", h.reloadCategories)
	dash.PUT("/categories/:id", h.updateCategory)
	dash.DELETE("/categories/:id", h.deleteCategory)

	dash.GET("/projects", h.listProjects)
	dash.POST("/projects", h.createProject)
	dash.POST("/projects/reload", h.reloadProjects)
	dash.POST("/projects/upload", h.uploadFile)
	dash.PUT("/projects/:id", h.updateProject)
	dash.DELETE("/projects/:id", h.deleteProject)

	dash.GET("/servicesteps/:category", h.listSteps)
	dash.POST("/servicesteps/:category", h.createStep)
	dash.PUT("/servicesteps/:category/:id", h.updateStep)
	dash.DELETE("/servicesteps/:category/:id", h.deleteStep)

	dash.GET("/contacts", h.listContacts)
	dash.PATCH("/contacts/:id/status", h.setContactStatus)

	return router, nil
}

type handlers struct {
	client *apiclient.Client
	gate   *authgate.Gate
	store  *Store
	logger *logrus.Entry
}
