package judge0

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	judgeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "psg",
		Subsystem: "judge",
		Name:      "evaluation_duration_seconds",
		Help:      "Duration of judge evaluation requests",
	}, []string{"verdict"})

	judgeFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "psg",
		Subsystem: "judge",
		Name:      "evaluation_failures_total",
		Help:      "Number of failed judge evaluation requests",
	})
)

// Config defines configuration options for the Judge0 client.
type Config struct {
	BaseURL string
	APIKey  string
	APIHost string
	Timeout time.Duration
	Logger  zerolog.Logger
}

// Client talks to a Judge0-compatible execution service over HTTP. Each
// Evaluate call runs one test case synchronously (wait=true); there is no
// retrying here, callers decide what a failed call means.
type Client struct {
	httpClient *http.Client
	cfg        Config
	tracer     trace.Tracer
	logger     zerolog.Logger
}

// NewClient builds a judge client from the provided configuration.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("judge base url is required")
	}

	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
		tracer:     otel.Tracer("github.com/sainanduk/problemsolving-go/pkg/judge0"),
		logger:     logger,
	}, nil
}

type submissionPayload struct {
	SourceCode     string `json:"source_code"`
	LanguageID     int    `json:"language_id"`
	Stdin          string `json:"stdin"`
	ExpectedOutput string `json:"expected_output"`
}

type submissionResponse struct {
	Status struct {
		ID          int    `json:"id"`
		Description string `json:"description"`
	} `json:"status"`
	Stdout *string `json:"stdout"`
	Time   *string `json:"time"`
	Memory *int    `json:"memory"`
}

// Evaluate submits one execution to the judge and waits for its verdict.
func (c *Client) Evaluate(parent context.Context, req EvaluationRequest) (EvaluationResult, error) {
	ctx, span := c.tracer.Start(parent, "judge0.evaluate", trace.WithAttributes(
		attribute.Int("language_id", req.LanguageID),
	))
	defer span.End()

	body, err := json.Marshal(submissionPayload{
		SourceCode:     req.SourceCode,
		LanguageID:     req.LanguageID,
		Stdin:          req.Stdin,
		ExpectedOutput: req.ExpectedOutput,
	})
	if err != nil {
		return EvaluationResult{}, fmt.Errorf("encode judge payload: %w", err)
	}

	url := c.cfg.BaseURL + "/submissions?base64_encoded=false&wait=true"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return EvaluationResult{}, fmt.Errorf("build judge request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		httpReq.Header.Set("X-RapidAPI-Key", c.cfg.APIKey)
		httpReq.Header.Set("X-RapidAPI-Host", c.cfg.APIHost)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		judgeFailures.Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return EvaluationResult{}, fmt.Errorf("judge call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		judgeFailures.Inc()
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		err := fmt.Errorf("judge returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return EvaluationResult{}, err
	}

	var decoded submissionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		judgeFailures.Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return EvaluationResult{}, fmt.Errorf("decode judge response: %w", err)
	}

	result := EvaluationResult{Verdict: decoded.Status.Description}
	if decoded.Stdout != nil {
		result.Stdout = *decoded.Stdout
	}
	if decoded.Time != nil {
		// Judge0 reports execution time as a decimal string in seconds.
		if parsed, parseErr := strconv.ParseFloat(strings.TrimSpace(*decoded.Time), 64); parseErr == nil {
			result.Time = parsed
		}
	}
	if decoded.Memory != nil {
		result.Memory = *decoded.Memory
	}

	judgeDuration.WithLabelValues(result.Verdict).Observe(time.Since(start).Seconds())
	span.SetAttributes(attribute.String("verdict", result.Verdict))

	c.logger.Debug().
		Str("verdict", result.Verdict).
		Float64("time_s", result.Time).
		Int("memory_kb", result.Memory).
		Msg("judge evaluation completed")

	return result, nil
}
