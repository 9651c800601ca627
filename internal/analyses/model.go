package analyses

import "time"

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

const (
	errorSentence      = "Unable to analyze resume due to an error."
	errorSuggestion    = "Try again with a different model or check your resume format."
	errorModelUsed     = "Error"
	errorResponseLabel = "Error: "
)

// Result is the parsed outcome of one analysis. It is not modified after creation.
type Result struct {
	Score        int      `json:"score"`
	ATSScore     int      `json:"atsScore"`
	Strengths    []string `json:"strengths"`
	Weaknesses   []string `json:"weaknesses"`
	Suggestions  []string `json:"suggestions"`
	FullResponse string   `json:"fullResponse"`
	ModelUsed    string   `json:"modelUsed"`
	Error        string   `json:"error,omitempty"`
}

// ErrorResult builds the result reported when an analysis could not complete.
func ErrorResult(msg string) Result {
	return Result{
		Score:        0,
		ATSScore:     0,
		Strengths:    []string{errorSentence},
		Weaknesses:   []string{errorSentence},
		Suggestions:  []string{errorSuggestion},
		FullResponse: errorResponseLabel + msg,
		ModelUsed:    errorModelUsed,
		Error:        msg,
	}
}

// Failed reports whether the result carries an error.
func (r Result) Failed() bool {
	return r.Error != ""
}

// CombinedScore weights the resume score at 60% and the ATS score at 40%.
func (r Result) CombinedScore() int {
	return int(0.6*float64(r.Score) + 0.4*float64(r.ATSScore))
}

// Analysis is the stored envelope around a Result.
type Analysis struct {
	ID             string     `json:"id"`
	CandidateName  string     `json:"candidateName"`
	JobRole        string     `json:"jobRole"`
	JobDescription string     `json:"jobDescription"`
	Provider       string     `json:"provider"`
	Model          string     `json:"model"`
	Status         string     `json:"status"`
	Result         *Result    `json:"result,omitempty"`
	ErrorCode      string     `json:"errorCode,omitempty"`
	ErrorMessage   string     `json:"errorMessage,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
}
