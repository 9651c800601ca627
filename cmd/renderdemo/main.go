package main

// Render the sample report and tailored resume without calling an LLM:
//   go run ./cmd/renderdemo -out ./out

import (
	"bytes"
	_ "embed"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Nileshsri2022/mera-resume-analyzer/internal/analyses"
	"github.com/Nileshsri2022/mera-resume-analyzer/internal/report"
)

var (
	//go:embed testdata/analysis.md
	sampleAnalysis string
	//go:embed testdata/tailored.md
	sampleTailored string
)

func main() {
	outDir := flag.String("out", "./out", "output directory")
	analysisPath := flag.String("analysis", "", "markdown analysis response to render instead of the sample")
	role := flag.String("role", "Backend Engineer", "target role shown on the report")
	flag.Parse()

	text := sampleAnalysis
	if *analysisPath != "" {
		data, err := os.ReadFile(*analysisPath)
		if err != nil {
			exitErr(fmt.Sprintf("read analysis: %v", err))
		}
		text = string(data)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		exitErr(fmt.Sprintf("create output dir: %v", err))
	}

	result := analyses.ParseResponse(text, "Sample Model")
	reportPDF := report.Generate(&result, report.Meta{CandidateName: "Jordan Lee", JobRole: *role, GeneratedAt: time.Now()})
	if err := writePDF(filepath.Join(*outDir, "sample_report.pdf"), reportPDF); err != nil {
		exitErr(err.Error())
	}

	if err := writePDF(filepath.Join(*outDir, "sample_tailored_resume.pdf"), report.TailoredResume(sampleTailored)); err != nil {
		exitErr(err.Error())
	}

	fmt.Printf("OK: score %d/100, ATS %d/100, wrote %s\n", result.Score, result.ATSScore, *outDir)
}

func writePDF(path string, data []byte) error {
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		return fmt.Errorf("render failed for %s", filepath.Base(path))
	}
	return os.WriteFile(path, data, 0o644)
}

func exitErr(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
