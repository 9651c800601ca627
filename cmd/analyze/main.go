package main

// Analyze a local resume and write the PDF report:
//   go run ./cmd/analyze -resume cv.pdf -role "Data Analyst" -out report.pdf

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Nileshsri2022/mera-resume-analyzer/internal/analyses"
	"github.com/Nileshsri2022/mera-resume-analyzer/internal/bootstrap"
	"github.com/Nileshsri2022/mera-resume-analyzer/internal/report"
	"github.com/Nileshsri2022/mera-resume-analyzer/internal/shared/config"
	"github.com/Nileshsri2022/mera-resume-analyzer/internal/shared/telemetry"
	"github.com/Nileshsri2022/mera-resume-analyzer/internal/tailor"
)

func main() {
	err := run(context.Background(), os.Args[1:], os.Stdout)
	telemetry.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	cfg := config.Load()

	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	resumePath := fs.String("resume", "", "Path to resume file (pdf, docx or txt)")
	jdPath := fs.String("jd", "", "Path to job description file (optional)")
	role := fs.String("role", "", "Target job role (optional)")
	skills := fs.String("skills", "", "Comma separated required skills (optional)")
	model := fs.String("model", "", "Model name; empty uses the configured default")
	name := fs.String("name", "", "Candidate name shown on the report")
	outPath := fs.String("out", "resume_analysis.pdf", "Path to write the PDF report")
	jsonPath := fs.String("json", "", "Path to write the parsed result as JSON (optional)")
	tailorPath := fs.String("tailor", "", "Path to write a resume tailored to -jd as PDF (optional)")
	logLevel := fs.String("log-level", "warn", "Log level")
	if err := fs.Parse(args); err != nil {
		return err
	}

	telemetry.Configure(*logLevel, "console")

	if strings.TrimSpace(*resumePath) == "" {
		return errors.New("resume path is required")
	}

	data, err := os.ReadFile(*resumePath)
	if err != nil {
		return fmt.Errorf("read resume: %w", err)
	}

	jobDescription := ""
	if strings.TrimSpace(*jdPath) != "" {
		jd, err := os.ReadFile(*jdPath)
		if err != nil {
			return fmt.Errorf("read job description: %w", err)
		}
		jobDescription = string(jd)
	}

	app, err := bootstrap.BuildCore(ctx, cfg)
	if err != nil {
		return err
	}

	extracted, err := app.Extractor.Extract(ctx, data, "", filepath.Base(*resumePath))
	if err != nil {
		return fmt.Errorf("extract resume text: %w", err)
	}

	svc := &analyses.Service{LLM: app.LLM, Timeout: cfg.LLMTimeout}
	result, err := svc.Evaluate(ctx, analyses.Request{
		ResumeText:     extracted.Text,
		JobRole:        *role,
		JobDescription: jobDescription,
		RequiredSkills: splitList(*skills),
		Model:          *model,
	})
	if err != nil {
		return errors.New(result.Error)
	}

	fmt.Fprintf(stdout, "Resume Score: %d/100\nATS Score: %d/100\nModel: %s\n", result.Score, result.ATSScore, result.ModelUsed)

	if *jsonPath != "" {
		payload, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		if err := os.WriteFile(*jsonPath, payload, 0o644); err != nil {
			return fmt.Errorf("write json: %w", err)
		}
	}

	pdf := report.Generate(&result, report.Meta{CandidateName: *name, JobRole: *role, GeneratedAt: time.Now()})
	if pdf == nil {
		return errors.New("the PDF report could not be generated")
	}
	if err := os.WriteFile(*outPath, pdf, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	fmt.Fprintf(stdout, "Report written to %s\n", *outPath)

	if *tailorPath != "" {
		tailorSvc := &tailor.Service{LLM: app.LLM, Timeout: cfg.LLMTimeout}
		md, err := tailorSvc.Tailor(ctx, tailor.Request{ResumeText: extracted.Text, JobDescription: jobDescription, Model: *model})
		if err != nil {
			return fmt.Errorf("Error tailoring resume: %w", err)
		}
		out := report.TailoredResume(md)
		if out == nil {
			return errors.New("the tailored resume PDF could not be generated")
		}
		if err := os.WriteFile(*tailorPath, out, 0o644); err != nil {
			return fmt.Errorf("write tailored resume: %w", err)
		}
		fmt.Fprintf(stdout, "Tailored resume written to %s\n", *tailorPath)
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}
