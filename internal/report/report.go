// Package report renders analysis results and tailored resumes as PDF documents.
package report

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/Nileshsri2022/mera-resume-analyzer/internal/analyses"
	"github.com/Nileshsri2022/mera-resume-analyzer/internal/shared/metrics"
	"github.com/Nileshsri2022/mera-resume-analyzer/internal/shared/telemetry"
)

const dateLayout = "January 02, 2006"

// Meta carries the report details that are not part of the analysis result.
type Meta struct {
	CandidateName string
	JobRole       string
	GeneratedAt   time.Time
}

type layout struct {
	name   string
	render func(*analyses.Result, Meta) ([]byte, error)
}

var layouts = []layout{
	{name: "rich", render: renderRich},
	{name: "simple", render: renderSimple},
}

// Generate renders result as a PDF. It tries the rich layout, then the simple
// one, and returns nil when the result is unusable or both layouts fail.
func Generate(result *analyses.Result, meta Meta) []byte {
	if result == nil || (result.Error != "" && result.FullResponse == "") {
		return nil
	}
	if meta.GeneratedAt.IsZero() {
		meta.GeneratedAt = time.Now()
	}
	for _, l := range layouts {
		data, err := safeRender(l, result, meta)
		metrics.ObserveRender(l.name, err == nil)
		if err == nil {
			return data
		}
		telemetry.Warn("report.render_failed", map[string]any{"renderer": l.name, "err": err})
	}
	telemetry.Error("report.unavailable", map[string]any{"model": result.ModelUsed})
	return nil
}

func safeRender(l layout, result *analyses.Result, meta Meta) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			data, err = nil, fmt.Errorf("%s renderer panic: %v", l.name, r)
		}
	}()
	data, err = l.render(result, meta)
	if err == nil && len(data) == 0 {
		err = fmt.Errorf("%s renderer produced no output", l.name)
	}
	return data, err
}

// Renderer adapts Generate to the analyses report interface.
type Renderer struct {
	Now func() time.Time
}

// RenderAnalysis renders a stored analysis.
func (r Renderer) RenderAnalysis(a analyses.Analysis) []byte {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	return Generate(a.Result, Meta{
		CandidateName: a.CandidateName,
		JobRole:       a.JobRole,
		GeneratedAt:   now(),
	})
}

func candidateName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "candidate") {
		return "Candidate_" + strconv.Itoa(1000+rand.IntN(9000))
	}
	return name
}

func targetRole(role string) string {
	if strings.TrimSpace(role) == "" {
		return "Not specified"
	}
	return role
}
