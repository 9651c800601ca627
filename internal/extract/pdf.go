package extract

import (
	"context"
	"errors"
	"strings"

	"code.sajari.com/docconv"
	"github.com/ledongthuc/pdf"
)

// wordGap is the horizontal distance, in points, that separates two words on a row.
const wordGap = 1.5

// errUnpositioned means the row reader found text but no coordinates for it,
// which happens with Td-positioned content streams. Rows built from it are merged runs.
var errUnpositioned = errors.New("pdf_layout: text has no position data")

func (e *Extractor) pdfAttempts(data []byte, path string) []attempt {
	attempts := []attempt{
		{method: MethodPDFLayout, run: func(context.Context) (string, error) { return pdfLayoutText(path) }},
		{method: MethodPDFPlain, run: func(context.Context) (string, error) { return pdfPlainText(path) }},
		{method: MethodPDFTextLayer, run: func(context.Context) (string, error) { return convertPath(path) }},
	}
	if e.OCR != nil {
		attempts = append(attempts, attempt{
			method: MethodOCR,
			run: func(ctx context.Context) (string, error) {
				return e.OCR.Transcribe(ctx, data, MimePDF)
			},
		})
	}
	return attempts
}

// pdfLayoutText rebuilds each page row by row so multi-column resumes keep their line order.
func pdfLayoutText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var b strings.Builder
	words, positioned := 0, 0
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		for _, row := range rows {
			for _, w := range row.Content {
				if strings.TrimSpace(w.S) == "" {
					continue
				}
				words++
				if w.X != 0 || w.W != 0 {
					positioned++
				}
			}
			line := joinRow(row.Content)
			if strings.TrimSpace(line) == "" {
				continue
			}
			b.WriteString(line)
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	if words > 0 && positioned == 0 {
		return "", errUnpositioned
	}
	return b.String(), nil
}

func joinRow(words pdf.TextHorizontal) string {
	var b strings.Builder
	for i, w := range words {
		if i > 0 {
			prev := words[i-1]
			if w.X-(prev.X+prev.W) > wordGap && !strings.HasSuffix(prev.S, " ") && !strings.HasPrefix(w.S, " ") {
				b.WriteByte(' ')
			}
		}
		b.WriteString(w.S)
	}
	return b.String()
}

func pdfPlainText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var b strings.Builder
	fonts := make(map[string]*pdf.Font)
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		for _, name := range page.Fonts() {
			if _, ok := fonts[name]; !ok {
				font := page.Font(name)
				fonts[name] = &font
			}
		}
		text, err := page.GetPlainText(fonts)
		if err != nil {
			continue
		}
		b.WriteString(text)
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// convertPath runs docconv, which picks its converter from the file extension.
func convertPath(path string) (string, error) {
	res, err := docconv.ConvertPath(path)
	if err != nil {
		return "", err
	}
	if res == nil {
		return "", errors.New("docconv returned no response")
	}
	if res.Error != "" {
		return res.Body, errors.New(res.Error)
	}
	return res.Body, nil
}
