package tailor

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Nileshsri2022/mera-resume-analyzer/internal/llm"
	"github.com/Nileshsri2022/mera-resume-analyzer/internal/report"
	"github.com/Nileshsri2022/mera-resume-analyzer/internal/shared/server/respond"
	"github.com/Nileshsri2022/mera-resume-analyzer/internal/shared/storage/object"
	"github.com/Nileshsri2022/mera-resume-analyzer/internal/shared/telemetry"
	"github.com/Nileshsri2022/mera-resume-analyzer/internal/shared/util"
)

const tailoredFileName = "tailored_resume.pdf"

// Handler wires HTTP handlers to the tailoring service.
type Handler struct {
	Svc *Service
	// Store caches rendered PDFs by content hash. Nil disables caching.
	Store  object.ObjectStore
	Render func(markdown string) []byte
}

// NewHandler constructs a Handler rendering with report.TailoredResume.
func NewHandler(svc *Service, store object.ObjectStore) *Handler {
	return &Handler{Svc: svc, Store: store, Render: report.TailoredResume}
}

// RegisterRoutes attaches tailoring routes. limiters guard the LLM-backed route.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, limiters ...gin.HandlerFunc) {
	tailor := append(append([]gin.HandlerFunc{}, limiters...), h.tailor)
	rg.POST("/tailor", tailor...)
	rg.POST("/tailor/pdf", h.pdf)
}

func (h *Handler) tailor(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	md, err := h.Svc.Tailor(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, llm.ErrNotConfigured):
			respond.Error(c, http.StatusServiceUnavailable, "llm_not_configured", err.Error(), nil)
		case errors.Is(err, llm.ErrTimeout):
			respond.Error(c, http.StatusGatewayTimeout, "llm_timeout", "tailoring timed out", nil)
		default:
			respond.Error(c, http.StatusBadGateway, "tailor_failed", "Error tailoring resume: "+err.Error(), nil)
		}
		return
	}

	respond.OK(c, gin.H{"markdown": md})
}

type pdfRequest struct {
	Markdown string `json:"markdown"`
}

func (h *Handler) pdf(c *gin.Context) {
	var req pdfRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Markdown) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "markdown is required", nil)
		return
	}
	ctx := c.Request.Context()

	key, keyErr := object.Key("tailored", util.HashKey(req.Markdown)+".pdf")
	if h.Store != nil && keyErr == nil {
		if data, err := object.ReadAll(ctx, h.Store, key); err == nil && len(data) > 0 {
			respond.PDF(c, tailoredFileName, data)
			return
		}
	}

	data := h.Render(req.Markdown)
	if data == nil {
		respond.Error(c, http.StatusInternalServerError, "render_failed", "The tailored resume PDF could not be generated.", nil)
		return
	}

	if h.Store != nil && keyErr == nil {
		if _, err := h.Store.Put(ctx, key, "application/pdf", bytes.NewReader(data)); err != nil {
			telemetry.Warn("tailor.cache_write_failed", map[string]any{"key": key, "err": err})
		}
	}
	respond.PDF(c, tailoredFileName, data)
}
