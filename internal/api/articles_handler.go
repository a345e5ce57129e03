package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/varta-media/newsdesk/internal/logger"
	"github.com/varta-media/newsdesk/internal/models"
	"github.com/varta-media/newsdesk/internal/pipeline"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// createNewspaperArticle runs a submission through the publication
// pipeline.
// POST /api/v1/articles/newspaper?forceAiRewriteEnabled=&tenantId=
//
// Work is asynchronous, so success is 202 Accepted.
func (r *Router) createNewspaperArticle(c *gin.Context) {
	ctx := c.Request.Context()

	var sub models.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request payload",
			"details": err.Error(),
		})
		return
	}

	req := &pipeline.PublishRequest{Submission: sub}

	if raw, ok := c.GetQuery("forceAiRewriteEnabled"); ok {
		force, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "forceAiRewriteEnabled must be true or false",
			})
			return
		}
		req.ForceAIRewrite = &force
	}

	if raw, ok := c.GetQuery("tenantId"); ok {
		tenantID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid tenantId format",
			})
			return
		}
		req.RequestedTenantID = &tenantID
	}

	result, err := r.publisher.Publish(ctx, principalFrom(c), req)
	if err != nil {
		r.writePipelineError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, result)
}

// listNewspaperArticles lists print articles, newest first.
// GET /api/v1/articles/newspaper?tenantId=&status=&date=&limit=&offset=
func (r *Router) listNewspaperArticles(c *gin.Context) {
	ctx := c.Request.Context()

	filter := models.PrintArticleFilter{Limit: defaultListLimit}

	if raw, ok := c.GetQuery("tenantId"); ok {
		tenantID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tenantId format"})
			return
		}
		filter.TenantID = &tenantID
	}
	if raw, ok := c.GetQuery("status"); ok {
		status := models.ArticleStatus(raw)
		filter.Status = &status
	}
	if raw, ok := c.GetQuery("date"); ok {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		filter.Date = &date
	}
	if raw := c.DefaultQuery("limit", ""); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			filter.Limit = min(limit, maxListLimit)
		}
	}
	if raw := c.DefaultQuery("offset", ""); raw != "" {
		if offset, err := strconv.Atoi(raw); err == nil && offset > 0 {
			filter.Offset = offset
		}
	}

	articles, err := r.articles.ListPrintArticles(ctx, filter)
	if err != nil {
		r.log.Error("Failed to list newspaper articles", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list newspaper articles",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"articles": articles,
		"count":    len(articles),
	})
}

// getNewspaperArticle retrieves one print article.
// GET /api/v1/articles/newspaper/:id
func (r *Router) getNewspaperArticle(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article ID format"})
		return
	}

	article, err := r.articles.GetPrintArticleByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
			return
		}
		r.log.Error("Failed to get newspaper article", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get article"})
		return
	}

	c.JSON(http.StatusOK, article)
}

// updateNewspaperArticle patches a print article.
// PATCH /api/v1/articles/newspaper/:id
func (r *Router) updateNewspaperArticle(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article ID format"})
		return
	}

	var req models.PrintArticleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request payload",
			"details": err.Error(),
		})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	article, err := r.articles.UpdatePrintArticle(ctx, id, &req)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
			return
		}
		r.log.Error("Failed to update newspaper article", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update article"})
		return
	}

	c.JSON(http.StatusOK, article)
}

// writePipelineError maps the pipeline error taxonomy to HTTP statuses:
// validation 400, missing principal 401, forbidden 403, unexpected 500.
func (r *Router) writePipelineError(c *gin.Context, err error) {
	switch models.KindOf(err) {
	case models.KindValidation:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case models.KindUnauthenticated:
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case models.KindForbidden:
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case models.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		r.log.Error("Publication pipeline failed", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Publication failed"})
	}
}
