package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/meditwin/backend/internal/azure"
	"github.com/meditwin/backend/pkg/model"
	"github.com/openai/openai-go/v3"
	"go.uber.org/zap"
)

// ErrMalformedAIResponse indicates the completion API answered but its output
// contained no usable JSON object. Unlike quota exhaustion there is no safe
// local substitute, so callers surface this as a failure.
var ErrMalformedAIResponse = errors.New("AI response was not in expected JSON format")

const quotaFallbackNote = "Generated using fallback due to API quota limit"

// rawTextPromptLimit caps how much report text is embedded in the prompt.
const rawTextPromptLimit = 3000

// CompletionClient is the AI summarization collaborator
type CompletionClient interface {
	Complete(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion) (string, error)
}

// AnalysisService produces the full explanation of a stored document:
// trend comparison, severity assessment, and an AI narrative with the
// deterministic fallback substituted on quota exhaustion.
type AnalysisService struct {
	repo     DocumentRepository
	ai       CompletionClient
	trends   *TrendComparator
	severity *SeverityAssessor
	fallback *FallbackGenerator
	logger   *zap.Logger
}

// NewAnalysisService creates a new AnalysisService
func NewAnalysisService(repo DocumentRepository, ai CompletionClient, logger *zap.Logger) *AnalysisService {
	return &AnalysisService{
		repo:     repo,
		ai:       ai,
		trends:   NewTrendComparator(logger),
		severity: NewSeverityAssessor(logger),
		fallback: NewFallbackGenerator(),
		logger:   logger,
	}
}

// Explain runs the analysis pipeline for one stored document. Trend lookup
// failures degrade to "no previous report" rather than failing the request;
// quota exhaustion on the AI call degrades to the fallback narrative with a
// note; a malformed AI response is a hard error.
func (as *AnalysisService) Explain(ctx context.Context, userID, documentID string) (*model.AnalysisResult, error) {
	doc, err := as.repo.GetByID(ctx, userID, documentID)
	if err != nil {
		return nil, err
	}

	if doc.RawText == "" {
		return nil, fmt.Errorf("no text found in document %s", documentID)
	}

	as.logger.Info("analyzing document",
		zap.String("document_id", documentID),
		zap.String("filename", doc.Filename),
		zap.Int("metric_count", len(doc.Metrics)),
	)

	trends := model.TrendComparison{Changes: map[string]model.MetricChange{}}
	history, err := as.repo.ListRecent(ctx, userID, 10)
	if err != nil {
		as.logger.Warn("trend history lookup failed, continuing without trends", zap.Error(err))
	} else {
		trends = as.trends.Compare(documentID, history, doc.Metrics)
	}

	severity := as.severity.Assess(doc.Metrics)

	result := &model.AnalysisResult{
		DocumentID: documentID,
		Filename:   doc.Filename,
		Metrics:    doc.Metrics,
		Trends:     trends,
		Severity:   severity,
	}

	prompt := buildAnalysisPrompt(doc.RawText, doc.Metrics)
	response, err := as.ai.Complete(ctx, []openai.ChatCompletionMessageParamUnion{
		openai.UserMessage(prompt),
	})
	if err != nil {
		if azure.IsQuotaError(err) {
			as.logger.Warn("AI quota exhausted, using fallback narrative", zap.Error(err))
			result.AIAnalysis = as.fallback.Generate(doc.Metrics)
			result.Note = quotaFallbackNote
			return result, nil
		}

		return nil, fmt.Errorf("AI service error: %w", err)
	}

	analysis, err := as.parseAnalysis(response, doc.Metrics)
	if err != nil {
		return nil, err
	}

	result.AIAnalysis = analysis

	return result, nil
}

// parseAnalysis extracts the JSON object from the AI's free-text response and
// back-fills any missing required field with a locally computed default.
func (as *AnalysisService) parseAnalysis(response string, metrics model.MetricSet) (model.Analysis, error) {
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end == -1 || end < start {
		as.logger.Error("no JSON object in AI response",
			zap.String("response_preview", preview(response, 500)),
		)
		return model.Analysis{}, ErrMalformedAIResponse
	}

	var analysis model.Analysis
	if err := json.Unmarshal([]byte(response[start:end+1]), &analysis); err != nil {
		as.logger.Error("failed to parse AI response JSON",
			zap.Error(err),
			zap.String("response_preview", preview(response, 500)),
		)
		return model.Analysis{}, fmt.Errorf("failed to parse AI response: %w", err)
	}

	if analysis.Summary == "" {
		as.logger.Warn("AI response missing summary, adding default")
		analysis.Summary = "Analysis completed. Please review the findings below."
	}
	if len(analysis.DoctorQuestions) == 0 {
		as.logger.Warn("AI response missing doctor questions, adding defaults")
		analysis.DoctorQuestions = defaultDoctorQuestions(metrics)
	}
	if analysis.KeyFindings == nil {
		analysis.KeyFindings = []string{}
	}
	if analysis.Recommendations == nil {
		analysis.Recommendations = []string{}
	}

	return analysis, nil
}

// defaultDoctorQuestions derives value-specific questions from whichever
// metrics are present, falling back to a generic trio.
func defaultDoctorQuestions(metrics model.MetricSet) []string {
	var questions []string
	if hba1c, ok := metrics[model.MetricHbA1c]; ok {
		questions = append(questions,
			fmt.Sprintf("My HbA1c is %s - what does this mean for my diabetes risk?", hba1c),
			fmt.Sprintf("Should I start medication or can lifestyle changes help control my HbA1c of %s?", hba1c),
		)
	}
	if glucose, ok := metrics[model.MetricGlucose]; ok {
		questions = append(questions,
			fmt.Sprintf("My fasting glucose is %s - what dietary changes would help most?", glucose),
		)
	}

	if len(questions) == 0 {
		return []string{
			"What do these results mean for my overall health?",
			"Should I make any lifestyle changes based on these findings?",
			"How often should I retest these values?",
		}
	}

	if len(questions) > 5 {
		questions = questions[:5]
	}

	return questions
}

// buildAnalysisPrompt renders the summarization prompt from raw report text
// and the extracted metrics block.
func buildAnalysisPrompt(rawText string, metrics model.MetricSet) string {
	metricsSummary := "No metrics extracted yet"
	if len(metrics) > 0 {
		var lines []string
		for _, key := range []string{
			model.MetricHbA1c, model.MetricGlucose, model.MetricBloodPressure,
			model.MetricCholesterol, model.MetricHemoglobin, model.MetricCreatinine,
		} {
			if value, ok := metrics[key]; ok {
				lines = append(lines, fmt.Sprintf("- %s: %s", strings.ToUpper(key), value))
			}
		}
		metricsSummary = strings.Join(lines, "\n")
	}

	return fmt.Sprintf(`Analyze this medical lab report. You MUST provide ALL 5 fields in your response.


REPORT TEXT:
%s

EXTRACTED VALUES:
%s

Create a JSON response with these REQUIRED fields:

1. "summary": Brief overview in 2-3 sentences
2. "keyFindings": Array of 4 findings about specific test values
3. "doctorQuestions": Array of exactly 5 questions the patient should ask their doctor. Each question MUST start with the patient's actual value (e.g., "My HbA1c is 6.8%%..."). Make them specific and actionable.
4. "recommendations": Array of exactly 5 action steps
5. "criticalAlerts": null (or array if urgent)

CRITICAL: You MUST include doctorQuestions field with 5 specific questions that reference the actual test values.

Example doctorQuestions format:
[
  "My HbA1c is 6.8%% which indicates prediabetes - should I start medication now or try lifestyle changes first?",
  "My fasting glucose is 128 mg/dL - what specific dietary changes would help bring this down to under 100?",
  "Should I be monitoring my blood sugar at home? If so, how often and what target numbers should I aim for?",
  "My blood pressure is 135/85 mmHg - is this related to my blood sugar issues?",
  "How soon should I have another HbA1c test to check if my changes are working?"
]

Return ONLY this JSON (no markdown, no code blocks):
{"summary":"...","keyFindings":["..."],"doctorQuestions":["..."],"recommendations":["..."],"criticalAlerts":null}`,
		preview(rawText, rawTextPromptLimit), metricsSummary)
}

func preview(s string, limit int) string {
	if len(s) <= limit {
		return s
	}

	return s[:limit]
}
