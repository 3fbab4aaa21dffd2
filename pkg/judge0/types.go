package judge0

import "context"

// Verdict descriptions returned by Judge0-compatible services.
const (
	VerdictAccepted          = "Accepted"
	VerdictWrongAnswer       = "Wrong Answer"
	VerdictCompilationError  = "Compilation Error"
	VerdictTimeLimitExceeded = "Time Limit Exceeded"
	VerdictRuntimeError      = "Runtime Error"
)

// EvaluationRequest describes one test-case execution to be run by the judge.
type EvaluationRequest struct {
	SourceCode     string
	LanguageID     int
	Stdin          string
	ExpectedOutput string
}

// EvaluationResult carries the judge's verdict plus resource metrics for one run.
type EvaluationResult struct {
	Verdict string
	Stdout  string
	Time    float64 // seconds
	Memory  int     // kilobytes
}

// Evaluator abstracts the remote execution sandbox.
type Evaluator interface {
	Evaluate(ctx context.Context, req EvaluationRequest) (EvaluationResult, error)
}
