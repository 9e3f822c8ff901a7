package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/smart-faq/internal/domain/faq"
)

// Handler wires the HTTP transport to the FAQ service.
type Handler struct {
	faqSvc faq.Service
	logger *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(faqSvc faq.Service, logger *slog.Logger) *Handler {
	return &Handler{
		faqSvc: faqSvc,
		logger: logger.With("component", "http.handler"),
	}
}

type ingestObjectRequest struct {
	Key string `json:"key" binding:"required"`
}

// Ask answers a question from the cache or by generating a new answer.
func (h *Handler) Ask(c *gin.Context) {
	var req faq.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, faq.CodeInvalidInput, "request body must be a JSON object with a question", err))
		return
	}

	resp, err := h.faqSvc.Answer(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Ingest embeds and stores a JSON array of question/answer pairs.
func (h *Handler) Ingest(c *gin.Context) {
	var items []faq.IngestItem
	if err := c.ShouldBindJSON(&items); err != nil || items == nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, faq.CodeInvalidInput, "request body must be a JSON array of {question, answer}", err))
		return
	}

	report, err := h.faqSvc.Ingest(c.Request.Context(), items)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// IngestObject ingests a corpus file stored in object storage.
func (h *Handler) IngestObject(c *gin.Context) {
	var req ingestObjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, faq.CodeInvalidInput, "key is required", err))
		return
	}

	report, err := h.faqSvc.IngestFromObject(c.Request.Context(), req.Key)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Records lists stored FAQ records.
func (h *Handler) Records(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, faq.CodeInvalidInput, "limit must be a non-negative integer", err))
			return
		}
		limit = parsed
	}

	records, err := h.faqSvc.Records(c.Request.Context(), limit)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

// Trending returns the most common questions.
func (h *Handler) Trending(c *gin.Context) {
	items, err := h.faqSvc.Trending(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": items})
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
