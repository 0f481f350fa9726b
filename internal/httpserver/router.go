package httpserver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"dsignme/internal/domain"
	tokenrepo "dsignme/internal/repository/token"
	contactsvc "dsignme/internal/service/contact"
	projectsvc "dsignme/internal/service/project"
	stepsvc "dsignme/internal/service/servicestep"
)

const (
	readTimeout   = 5 * time.Second
	uploadTimeout = 30 * time.Second
)

type CategoryService interface {
	List(ctx context.Context) ([]domain.Category, error)
	Create(ctx context.Context, name string) (*domain.Category, error)
	Update(ctx context.Context, id, name string) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
}

type ProjectService interface {
	ListAll(ctx context.Context) ([]domain.Project, error)
	ListByCategory(ctx context.Context, categoryName string) ([]domain.Project, error)
	Create(ctx context.Context, categoryName string, in projectsvc.Input) (*domain.Project, error)
	Update(ctx context.Context, categoryName, id string, in projectsvc.Input) (*domain.Project, error)
	Delete(ctx context.Context, categoryName, id string) error
}

type ServiceStepService interface {
	List(ctx context.Context, categoryName string) ([]domain.ServiceStep, error)
	Get(ctx context.Context, categoryName, id string) (*domain.ServiceStep, error)
	Create(ctx context.Context, categoryName string, in stepsvc.Input) (*domain.ServiceStep, error)
	Update(ctx context.Context, categoryName, id string, in stepsvc.Input) (*domain.ServiceStep, error)
	Delete(ctx context.Context, categoryName, id string) error
}

type FileService interface {
	Upload(ctx context.Context, kind, filename string, r io.Reader) (*domain.File, error)
	Get(ctx context.Context, id string) (*domain.File, []byte, error)
}

type ContactService interface {
	Submit(ctx context.Context, in contactsvc.Input) (*domain.Contact, error)
	List(ctx context.Context) ([]domain.Contact, error)
}

type AccountService interface {
	Register(ctx context.Context, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	ResetPassword(ctx context.Context, userID, email, newPassword string) error
}

type TokenValidator interface {
	Validate(ctx context.Context, token string) (*tokenrepo.Token, error)
}

// Deps are the services the router dispatches to.
type Deps struct {
	CategorySvc CategoryService
	ProjectSvc  ProjectService
	StepSvc     ServiceStepService
	FileSvc     FileService
	ContactSvc  ContactService
	AccountSvc  AccountService
	Tokens      TokenValidator
}

// Options tune the router's middleware.
type Options struct {
	// FileURLHost prefixes returned file URLs. Empty uses the request host.
	FileURLHost string
	CORSOrigins []string
	// RateLimit is a limiter rate such as "600-M". Empty disables limiting.
	RateLimit string
	// AllowRegistration opens POST /auth/register to anyone.
	AllowRegistration bool
}

// buildRouter wires routes for the API.
func buildRouter(logger *logrus.Entry, db *pgxpool.Pool, deps Deps, opts Options) (*gin.Engine, error) {
	if deps.CategorySvc == nil || deps.ProjectSvc == nil || deps.StepSvc == nil ||
		deps.FileSvc == nil || deps.ContactSvc == nil || deps.AccountSvc == nil || deps.Tokens == nil {
		return nil, fmt.Errorf("httpserver: all services are required")
	}

	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	if len(opts.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     opts.CORSOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	if opts.RateLimit != "" {
		rate, err := limiter.NewRateFromFormatted(opts.RateLimit)
		if err != nil {
			return nil, fmt.Errorf("parse rate limit %q: %w", opts.RateLimit, err)
		}
		router.Use(mgin.NewMiddleware(limiter.New(memory.NewStore(), rate)))
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})

	h := &handlers{deps: deps, logger: logger, fileURLHost: opts.FileURLHost, allowRegistration: opts.AllowRegistration}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.POST("/auth/verify", h.verifyToken)
	router.POST("/auth/register", h.register)
	router.POST("/auth/login", h.login)
	router.POST("/auth/reset-password", requireToken(deps.Tokens, logger), h.resetPassword)
	router.GET("/files/:id", h.getFile)
	router.POST("/contacts", h.submitContact)

	authed := router.Group("", requireToken(deps.Tokens, logger))
	authed.GET("/contacts", h.listContacts)

	projects := authed.Group("/projects")
	projects.GET("/", h.listAllProjects)
	projects.POST("/files", h.uploadFile)

	projects.GET("/categories", h.listCategories)
	projects.POST("/categories", h.createCategory)
	projects.PUT("/categories/:id", h.updateCategory)
	projects.DELETE("/categories/:id", h.deleteCategory)

	projects.GET("/:category", h.listProjects)
	projects.POST("/:category", h.createProject)
	projects.PUT("/:category/:id", h.updateProject)
	projects.DELETE("/:category/:id", h.deleteProject)

	steps := authed.Group("/servicesteps/:category/service-steps")
	steps.GET("", h.listSteps)
	steps.POST("", h.createStep)
	steps.GET("/:stepId", h.getStep)
	steps.PUT("/:stepId", h.updateStep)
	steps.DELETE("/:stepId", h.deleteStep)

	return router, nil
}

type handlers struct {
	deps              Deps
	logger            *logrus.Entry
	fileURLHost       string
	allowRegistration bool
}
