package analyses

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Nileshsri2022/mera-resume-analyzer/internal/extract"
	"github.com/Nileshsri2022/mera-resume-analyzer/internal/shared/server/middleware"
	"github.com/Nileshsri2022/mera-resume-analyzer/internal/shared/server/respond"
	"github.com/Nileshsri2022/mera-resume-analyzer/internal/shared/storage/object"
	"github.com/Nileshsri2022/mera-resume-analyzer/internal/shared/telemetry"
)

// ReportRenderer turns a stored analysis into PDF bytes. It returns nil when rendering failed.
type ReportRenderer interface {
	RenderAnalysis(analysis Analysis) []byte
}

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc       *Service
	Extractor extract.TextExtractor
	Renderer  ReportRenderer
	// Store caches rendered reports. Nil disables caching.
	Store object.ObjectStore
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, extractor extract.TextExtractor, renderer ReportRenderer, store object.ObjectStore) *Handler {
	return &Handler{Svc: svc, Extractor: extractor, Renderer: renderer, Store: store}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, limiters ...gin.HandlerFunc) {
	create := append(append([]gin.HandlerFunc{}, limiters...), h.createAnalysis)
	rg.POST("/analyses", create...)
	rg.GET("/analyses", h.listAnalyses)
	rg.GET("/analyses/:id", h.getAnalysis)
	rg.GET("/analyses/:id/report", h.getReport)
	rg.GET("/analyses/:id/recommendations", h.getRecommendations)
}

func (h *Handler) createAnalysis(c *gin.Context) {
	req := Request{}

	upload, err := extract.ReadUpload(c, "file")
	switch {
	case err == nil:
		res, err := h.Extractor.Extract(c.Request.Context(), upload.Data, upload.MimeType, upload.FileName)
		if err != nil {
			extract.RespondExtractError(c, err)
			return
		}
		req.ResumeText = res.Text
	case errors.Is(err, extract.ErrNoUpload):
		req.ResumeText = c.PostForm("resumeText")
	default:
		extract.RespondUploadError(c, err)
		return
	}

	req.JobRole = strings.TrimSpace(c.PostForm("jobRole"))
	req.JobDescription = strings.TrimSpace(c.PostForm("jobDescription"))
	req.RequiredSkills = splitSkills(c.PostFormArray("requiredSkills"))
	req.Model = strings.TrimSpace(c.PostForm("model"))
	req.CandidateName = strings.TrimSpace(c.PostForm("candidateName"))

	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	analysis, err := h.Svc.Analyze(ctx, req)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store analysis", nil)
		return
	}

	c.Set(middleware.AnalysisIDKey, analysis.ID)
	c.Set(middleware.StatusTransitionKey, StatusPending+"->"+analysis.Status)
	if analysis.Result != nil {
		c.Set(middleware.ModelKey, analysis.Result.ModelUsed)
	}

	if analysis.Status == StatusFailed {
		details := gin.H{"analysisId": analysis.ID, "result": analysis.Result}
		switch analysis.ErrorCode {
		case ErrorCodeValidation:
			respond.Error(c, http.StatusBadRequest, "validation_error", analysis.ErrorMessage, details)
		case ErrorCodeLLMTimeout:
			respond.Error(c, http.StatusGatewayTimeout, "llm_timeout", analysis.ErrorMessage, details)
		default:
			respond.Error(c, http.StatusBadGateway, "analysis_failed", analysis.ErrorMessage, details)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, gin.H{
		"analysisId": analysis.ID,
		"status":     analysis.Status,
		"result":     analysis.Result,
	})
}

func (h *Handler) getAnalysis(c *gin.Context) {
	analysis, ok := h.load(c)
	if !ok {
		return
	}
	respond.OK(c, analysis)
}

func (h *Handler) listAnalyses(c *gin.Context) {
	limit := 20
	offset := 0

	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit < 0 {
		limit = 0
	}

	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	list, err := h.Svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list analyses", nil)
		return
	}

	resp := make([]gin.H, 0, len(list))
	for _, a := range list {
		item := gin.H{
			"analysisId":    a.ID,
			"candidateName": a.CandidateName,
			"jobRole":       a.JobRole,
			"status":        a.Status,
			"createdAt":     a.CreatedAt,
		}
		if a.Status == StatusCompleted && a.Result != nil {
			item["score"] = a.Result.Score
			item["atsScore"] = a.Result.ATSScore
			item["modelUsed"] = a.Result.ModelUsed
		}
		resp = append(resp, item)
	}

	respond.OK(c, resp)
}

func (h *Handler) getReport(c *gin.Context) {
	analysis, ok := h.load(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	fileName := "resume_analysis_" + analysis.ID + ".pdf"

	key, keyErr := object.Key("reports", analysis.ID+".pdf")
	if h.Store != nil && keyErr == nil {
		if data, err := object.ReadAll(ctx, h.Store, key); err == nil && len(data) > 0 {
			respond.PDF(c, fileName, data)
			return
		} else if err != nil && !errors.Is(err, object.ErrNotFound) {
			telemetry.Warn("report.cache_read_failed", map[string]any{"analysis_id": analysis.ID, "err": err})
		}
	}

	data := h.Renderer.RenderAnalysis(analysis)
	if data == nil {
		respond.Error(c, http.StatusInternalServerError, "report_unavailable", "The PDF report could not be generated.", nil)
		return
	}

	if h.Store != nil && keyErr == nil {
		h.cacheReport(ctx, analysis.ID, key, data)
	}
	respond.PDF(c, fileName, data)
}

func (h *Handler) cacheReport(ctx context.Context, analysisID, key string, data []byte) {
	if _, err := h.Store.Put(ctx, key, "application/pdf", bytes.NewReader(data)); err != nil {
		telemetry.Warn("report.cache_write_failed", map[string]any{"analysis_id": analysisID, "err": err})
	}
}

func (h *Handler) getRecommendations(c *gin.Context) {
	analysis, ok := h.load(c)
	if !ok {
		return
	}
	if analysis.Result == nil {
		respond.Error(c, http.StatusConflict, "analysis_incomplete", "analysis has no result yet", nil)
		return
	}
	respond.OK(c, analysis.Result.Recommendations())
}

func (h *Handler) load(c *gin.Context) (Analysis, bool) {
	analysisID := c.Param("id")
	if analysisID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "analysis id is required", nil)
		return Analysis{}, false
	}
	c.Set(middleware.AnalysisIDKey, analysisID)

	analysis, err := h.Svc.Get(c.Request.Context(), analysisID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "analysis not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch analysis", nil)
		}
		return Analysis{}, false
	}
	return analysis, true
}

// splitSkills accepts repeated fields and comma separated values.
func splitSkills(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if s := strings.TrimSpace(part); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
