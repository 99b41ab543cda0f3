package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/swellfound/standards/internal/domain"
)

// Version is reported by the health check.
var Version = "1.0.0"

// CatalogReader is the read side of the catalog.
type CatalogReader interface {
	Search(ctx context.Context, state domain.FilterState) ([]domain.Standard, error)
	Get(ctx context.Context, id string) (domain.Standard, error)
	Categories(ctx context.Context) ([]string, error)
	Invalidate(ctx context.Context) error
}

// Submitter creates user-proposed standards.
type Submitter interface {
	Submit(ctx context.Context, fields map[string]string) error
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	catalog     CatalogReader
	submissions Submitter
	logger      *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(catalog CatalogReader, submissions Submitter, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		catalog:     catalog,
		submissions: submissions,
		logger:      logger.Named("http"),
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "standards-catalog",
		"version": Version,
	})
}

// ListStandards filters the catalog.
// GET /api/v1/standards?q=&mode=search|browse&category=
func (h *Handler) ListStandards(c *gin.Context) {
	if h.catalog == nil {
		h.notConfigured(c)
		return
	}

	query := c.Query("q")
	mode := domain.ModeBrowseAll
	if strings.TrimSpace(query) != "" {
		mode = domain.ModeSearch
	}
	if raw := c.Query("mode"); raw != "" {
		parsed, err := domain.ParseFilterMode(raw)
		if err != nil {
			h.respondError(c, err)
			return
		}
		mode = parsed
	}

	state := domain.FilterState{Mode: mode}
	if mode == domain.ModeSearch {
		state = state.WithQuery(query)
	} else {
		state = state.WithCategory(c.Query("category"))
	}

	records, err := h.catalog.Search(c.Request.Context(), state)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"standards": records,
		"count":     len(records),
		"filter":    state,
	})
}

// GetStandard returns one record.
// GET /api/v1/standards/:id
func (h *Handler) GetStandard(c *gin.Context) {
	if h.catalog == nil {
		h.notConfigured(c)
		return
	}

	rec, err := h.catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// ListCategories returns the distinct type tags.
// GET /api/v1/categories
func (h *Handler) ListCategories(c *gin.Context) {
	if h.catalog == nil {
		h.notConfigured(c)
		return
	}

	categories, err := h.catalog.Categories(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// RefreshCatalog drops the cached catalog.
// POST /api/v1/standards/refresh
func (h *Handler) RefreshCatalog(c *gin.Context) {
	if h.catalog == nil {
		h.notConfigured(c)
		return
	}

	if err := h.catalog.Invalidate(c.Request.Context()); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateSubmission writes a user-proposed standard.
// POST /api/v1/submissions
func (h *Handler) CreateSubmission(c *gin.Context) {
	if h.submissions == nil {
		h.notConfigured(c)
		return
	}

	var fields map[string]string
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be a JSON object of string fields"})
		return
	}

	if err := h.submissions.Submit(c.Request.Context(), fields); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "submitted"})
}

func (h *Handler) notConfigured(c *gin.Context) {
	c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog service not configured"})
}

// respondError maps domain errors to HTTP status codes.
func (h *Handler) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrFetch),
		errors.Is(err, domain.ErrSchema),
		errors.Is(err, domain.ErrSubmit):
		status = http.StatusBadGateway
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
