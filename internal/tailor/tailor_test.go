package tailor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nileshsri2022/mera-resume-analyzer/internal/llm"
	local "github.com/Nileshsri2022/mera-resume-analyzer/internal/shared/storage/object/local"
)

type fakeClient struct {
	reply string
	err   error
	calls [][]llm.Message
}

func (f *fakeClient) Generate(_ context.Context, messages []llm.Message) (string, error) {
	f.calls = append(f.calls, messages)
	return f.reply, f.err
}

func (f *fakeClient) Name() string { return llm.GeminiModelName }

func newService(client llm.Client) *Service {
	return &Service{LLM: llm.Resolver{Gemini: client}, Timeout: time.Second}
}

func TestTailorSendsResumeAndJob(t *testing.T) {
	client := &fakeClient{reply: "```markdown\n# Jane Doe\n- Go\n```"}
	md, err := newService(client).Tailor(context.Background(), Request{ResumeText: "my resume", JobDescription: "the job"})
	require.NoError(t, err)
	assert.Equal(t, "# Jane Doe\n- Go", md)

	require.Len(t, client.calls, 1)
	msgs := client.calls[0]
	assert.Equal(t, llm.RoleSystem, msgs[0].Role)
	assert.Contains(t, msgs[1].Content, "my resume")
	assert.Contains(t, msgs[1].Content, "the job")
}

func TestTailorValidation(t *testing.T) {
	client := &fakeClient{reply: "x"}
	svc := newService(client)

	_, err := svc.Tailor(context.Background(), Request{JobDescription: "job"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.Tailor(context.Background(), Request{ResumeText: "resume", JobDescription: " "})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, client.calls)
}

func TestTailorErrors(t *testing.T) {
	_, err := (&Service{}).Tailor(context.Background(), Request{ResumeText: "r", JobDescription: "j"})
	assert.ErrorIs(t, err, llm.ErrNotConfigured)

	_, err = newService(&fakeClient{err: errors.New("API Error: 500 - down")}).Tailor(context.Background(), Request{ResumeText: "r", JobDescription: "j"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API Error: 500")

	_, err = newService(&fakeClient{reply: "```\n```"}).Tailor(context.Background(), Request{ResumeText: "r", JobDescription: "j"})
	assert.ErrorIs(t, err, ErrEmptyOutput)
}

func TestStripFence(t *testing.T) {
	assert.Equal(t, "# A", stripFence("  # A \n"))
	assert.Equal(t, "# A", stripFence("```\n# A\n```"))
	assert.Equal(t, "# A", stripFence("```md\n# A"))
	assert.Equal(t, "", stripFence("```"))
}

func setupRouter(t *testing.T, client llm.Client) (*gin.Engine, *int) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	renders := 0
	h := NewHandler(newService(client), local.New(t.TempDir()))
	h.Render = func(md string) []byte {
		renders++
		return []byte("%PDF-1.3 " + md)
	}
	r := gin.New()
	h.RegisterRoutes(r.Group("/api/v1"))
	return r, &renders
}

func postJSON(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestTailorHandler(t *testing.T) {
	r, _ := setupRouter(t, &fakeClient{reply: "# Jane"})

	rec := postJSON(r, "/api/v1/tailor", Request{ResumeText: "resume", JobDescription: "job"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "# Jane", body["markdown"])

	rec = postJSON(r, "/api/v1/tailor", Request{ResumeText: "resume"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTailorHandlerUpstreamFailure(t *testing.T) {
	r, _ := setupRouter(t, &fakeClient{err: errors.New("API Error: 401 - bad key")})
	rec := postJSON(r, "/api/v1/tailor", Request{ResumeText: "resume", JobDescription: "job"})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "tailor_failed")
}

func TestTailorPDFIsCached(t *testing.T) {
	r, renders := setupRouter(t, &fakeClient{})

	for i := 0; i < 2; i++ {
		rec := postJSON(r, "/api/v1/tailor/pdf", pdfRequest{Markdown: "# Jane"})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
		assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))
	}
	assert.Equal(t, 1, *renders)

	rec := postJSON(r, "/api/v1/tailor/pdf", pdfRequest{Markdown: "  "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
