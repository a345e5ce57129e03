// Package api exposes the HTTP surface: a thin gin layer over the
// publication pipeline and the print article repository.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/varta-media/newsdesk/internal/config"
	"github.com/varta-media/newsdesk/internal/logger"
	"github.com/varta-media/newsdesk/internal/models"
	"github.com/varta-media/newsdesk/internal/pipeline"
)

const healthCheckTimeout = 2 * time.Second

// Publisher is the pipeline surface the create handler needs.
type Publisher interface {
	Publish(ctx context.Context, principal *models.Principal, req *pipeline.PublishRequest) (*pipeline.Result, error)
}

// ArticleReader serves the read/patch side of the newspaper endpoints.
type ArticleReader interface {
	Ping(ctx context.Context) error
	GetPrintArticleByID(ctx context.Context, id uuid.UUID) (*models.PrintArticle, error)
	ListPrintArticles(ctx context.Context, filter models.PrintArticleFilter) ([]models.PrintArticle, error)
	UpdatePrintArticle(ctx context.Context, id uuid.UUID, req *models.PrintArticleUpdateRequest) (*models.PrintArticle, error)
}

// Router holds the API dependencies
type Router struct {
	publisher   Publisher
	articles    ArticleReader
	redisClient *redis.Client
	cfg         *config.Config
	log         logger.Logger
}

// NewRouter creates a new API router
func NewRouter(publisher Publisher, articles ArticleReader, redisClient *redis.Client, cfg *config.Config, log logger.Logger) *Router {
	return &Router{
		publisher:   publisher,
		articles:    articles,
		redisClient: redisClient,
		cfg:         cfg,
		log:         log,
	}
}

// Engine builds the gin engine with middleware and routes.
func (r *Router) Engine() *gin.Engine {
	if !r.cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())

	engine.GET("/healthz", r.health)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := engine.Group("/api/v1")
	v1.Use(authRequired(r.cfg.Auth.JWTSecret))

	articles := v1.Group("/articles/newspaper")
	articles.POST("", r.createNewspaperArticle)
	articles.GET("", r.listNewspaperArticles)
	articles.GET("/:id", r.getNewspaperArticle)
	articles.PATCH("/:id", r.updateNewspaperArticle)

	return engine
}

// health reports liveness with best-effort dependency checks.
func (r *Router) health(c *gin.Context) {
	status := "healthy"
	checks := gin.H{}

	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	if err := r.articles.Ping(ctx); err != nil {
		status = "degraded"
		checks["database"] = err.Error()
	} else {
		checks["database"] = "ok"
	}

	if r.redisClient != nil {
		if err := r.redisClient.Ping(ctx).Err(); err != nil {
			status = "degraded"
			checks["redis"] = err.Error()
		} else {
			checks["redis"] = "ok"
		}
	}

	code := http.StatusOK
	if status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status":  status,
		"service": "newsdesk",
		"checks":  checks,
	})
}
