package extract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/Nileshsri2022/mera-resume-analyzer/internal/shared/metrics"
	"github.com/Nileshsri2022/mera-resume-analyzer/internal/shared/telemetry"
)

const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeText = "text/plain"
)

const (
	MethodPDFLayout    = "pdf_layout"
	MethodPDFPlain     = "pdf_plain"
	MethodPDFTextLayer = "pdf_text_layer"
	MethodOCR          = "ocr"
	MethodDOCX         = "docx"
	MethodDOCXConv     = "docx_docconv"
	MethodPlainText    = "plain_text"
)

var (
	// ErrNoText is returned when every extraction method came back empty.
	ErrNoText = errors.New("no text could be extracted")
	// ErrUnsupported is returned for file types outside PDF, DOCX and plain text.
	ErrUnsupported = errors.New("unsupported file type")
)

// OCR transcribes a scanned document into text.
type OCR interface {
	Transcribe(ctx context.Context, data []byte, mimeType string) (string, error)
}

// Result is the text pulled from a document and the method that produced it.
type Result struct {
	Text     string `json:"text"`
	Method   string `json:"method"`
	MimeType string `json:"mimeType"`
}

// Extractor runs the per-format fallback chain. OCR is optional.
type Extractor struct {
	OCR     OCR
	TempDir string
}

// New builds an Extractor. A nil ocr disables the OCR step.
func New(ocr OCR) *Extractor {
	return &Extractor{OCR: ocr}
}

type attempt struct {
	method string
	run    func(ctx context.Context) (string, error)
}

// Extract detects the document type and returns the first non-empty text from its chain.
func (e *Extractor) Extract(ctx context.Context, data []byte, declaredMime string, fileName string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if len(data) == 0 {
		return Result{}, fmt.Errorf("%w: empty file", ErrNoText)
	}

	mimeType := DetectMime(data, declaredMime, fileName)
	switch mimeType {
	case MimeText:
		text := strings.TrimSpace(string(data))
		metrics.ObserveExtraction(MethodPlainText, text != "")
		if text == "" {
			return Result{MimeType: mimeType}, fmt.Errorf("%w: %s: empty", ErrNoText, MethodPlainText)
		}
		return Result{Text: text, Method: MethodPlainText, MimeType: mimeType}, nil
	case MimePDF:
		var res Result
		err := e.withTempFile(data, ".pdf", func(path string) error {
			var err error
			res, err = e.run(ctx, mimeType, e.pdfAttempts(data, path))
			return err
		})
		return res, err
	case MimeDOCX:
		var res Result
		err := e.withTempFile(data, ".docx", func(path string) error {
			var err error
			res, err = e.run(ctx, mimeType, docxAttempts(data, path))
			return err
		})
		return res, err
	default:
		return Result{MimeType: mimeType}, fmt.Errorf("%w: %s", ErrUnsupported, mimeType)
	}
}

func (e *Extractor) run(ctx context.Context, mimeType string, attempts []attempt) (Result, error) {
	failures := make([]string, 0, len(attempts))
	for _, a := range attempts {
		if err := ctx.Err(); err != nil {
			return Result{MimeType: mimeType}, err
		}
		text, err := safeRun(ctx, a)
		text = strings.TrimSpace(text)
		ok := err == nil && text != ""
		metrics.ObserveExtraction(a.method, ok)

		fields := map[string]any{
			"method": a.method,
			"ok":     ok,
			"chars":  len(text),
		}
		if err != nil {
			fields["err"] = err
		}
		telemetry.Info("extract.attempt", fields)

		if ok {
			return Result{Text: text, Method: a.method, MimeType: mimeType}, nil
		}
		if err != nil {
			failures = append(failures, a.method+": "+err.Error())
		} else {
			failures = append(failures, a.method+": empty")
		}
	}
	return Result{MimeType: mimeType}, fmt.Errorf("%w: %s", ErrNoText, strings.Join(failures, "; "))
}

// safeRun converts a panic inside a parser library into an error.
func safeRun(ctx context.Context, a attempt) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return a.run(ctx)
}

func (e *Extractor) withTempFile(data []byte, ext string, fn func(path string) error) error {
	f, err := os.CreateTemp(e.TempDir, "resume-*"+ext)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	return fn(path)
}

// DetectMime sniffs the payload and falls back to the file extension, then the declared type.
func DetectMime(data []byte, declaredMime string, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))

	if len(data) > 0 {
		detected := mimetype.Detect(data)
		switch {
		case detected.Is(MimePDF):
			return MimePDF
		case detected.Is(MimeDOCX):
			return MimeDOCX
		case detected.Is("application/zip") && ext == ".docx":
			return MimeDOCX
		}
	}

	switch ext {
	case ".pdf":
		return MimePDF
	case ".docx":
		return MimeDOCX
	case ".txt", ".md":
		return MimeText
	}

	clean := strings.ToLower(strings.TrimSpace(strings.Split(declaredMime, ";")[0]))
	switch clean {
	case MimePDF, MimeDOCX, MimeText:
		return clean
	case "":
		if len(data) > 0 && strings.HasPrefix(mimetype.Detect(data).String(), MimeText) {
			return MimeText
		}
	}
	return clean
}
