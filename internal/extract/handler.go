package extract

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nileshsri2022/mera-resume-analyzer/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB

var (
	// ErrNoUpload is returned when the multipart field is missing.
	ErrNoUpload = errors.New("file is required")
	// ErrUploadTooLarge is returned when the body exceeds the upload cap.
	ErrUploadTooLarge = errors.New("file exceeds 10MB")
)

// Upload is a multipart file read into memory.
type Upload struct {
	Data     []byte
	FileName string
	MimeType string
}

// TextExtractor is the part of Extractor handlers depend on.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte, declaredMime string, fileName string) (Result, error)
}

// ReadUpload reads a multipart file field with the request body capped at 10MB.
func ReadUpload(c *gin.Context, field string) (Upload, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile(field)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return Upload{}, ErrUploadTooLarge
		}
		return Upload{}, ErrNoUpload
	}

	file, err := fileHeader.Open()
	if err != nil {
		return Upload{}, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return Upload{}, err
	}
	return Upload{
		Data:     data,
		FileName: fileHeader.Filename,
		MimeType: fileHeader.Header.Get("Content-Type"),
	}, nil
}

// Handler exposes text extraction over HTTP.
type Handler struct {
	Extractor TextExtractor
}

// NewHandler constructs a Handler.
func NewHandler(extractor TextExtractor) *Handler {
	return &Handler{Extractor: extractor}
}

// RegisterRoutes attaches extraction routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/extract", h.extract)
}

func (h *Handler) extract(c *gin.Context) {
	upload, err := ReadUpload(c, "file")
	if err != nil {
		RespondUploadError(c, err)
		return
	}

	res, err := h.Extractor.Extract(c.Request.Context(), upload.Data, upload.MimeType, upload.FileName)
	if err != nil {
		RespondExtractError(c, err)
		return
	}

	respond.OK(c, gin.H{
		"text":     res.Text,
		"method":   res.Method,
		"mimeType": res.MimeType,
		"fileName": upload.FileName,
	})
}

// RespondUploadError writes the error envelope for a ReadUpload failure.
func RespondUploadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUploadTooLarge):
		respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", err.Error(), nil)
	case errors.Is(err, ErrNoUpload):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
	}
}

// RespondExtractError writes the error envelope for an Extract failure.
func RespondExtractError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUnsupported):
		respond.Error(c, http.StatusUnsupportedMediaType, "unsupported_file_type", "Upload a PDF, DOCX or plain text resume.", nil)
	case errors.Is(err, ErrNoText):
		respond.Error(c, http.StatusUnprocessableEntity, "extraction_error", "Could not extract text from the file.", gin.H{"attempts": err.Error()})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		respond.Error(c, http.StatusRequestTimeout, "request_timeout", "extraction was cancelled", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to extract text", nil)
	}
}
