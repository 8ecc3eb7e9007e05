package service

import (
	"fmt"
	"strings"

	"github.com/meditwin/backend/pkg/model"
)

var genericDoctorQuestions = []string{
	"How soon should I have a follow-up test to monitor my progress?",
	"What lifestyle modifications would you recommend based on these results?",
	"Are there any medications I should consider given these values?",
	"Should I be tracking any other health metrics at home?",
	"What are realistic targets for me to aim for in the next 3-6 months?",
}

var genericRecommendations = []string{
	"Maintain a healthy weight through balanced diet and regular activity",
	"Stay up to date with routine health screenings",
	"Limit alcohol intake and avoid smoking",
}

// FallbackGenerator produces a deterministic analysis narrative from metric
// values alone. It is the substitute for the AI collaborator when that call
// cannot be made, and its output shape matches the AI path exactly so
// consumers cannot tell the two apart.
type FallbackGenerator struct{}

// NewFallbackGenerator creates a new FallbackGenerator
func NewFallbackGenerator() *FallbackGenerator {
	return &FallbackGenerator{}
}

// Generate builds the narrative purely from thresholded metric values.
// DoctorQuestions always holds exactly 5 entries and Recommendations at
// least 5, padded from fixed generic pools with duplicates skipped.
func (fg *FallbackGenerator) Generate(metrics model.MetricSet) model.Analysis {
	hba1c, hasHbA1c := parsedPercent(metrics, model.MetricHbA1c)
	glucose, hasGlucose := parsedLeadingInt(metrics, model.MetricGlucose)

	var findings []string
	if hasHbA1c {
		switch {
		case hba1c >= 6.5:
			findings = append(findings, fmt.Sprintf("HbA1c of %s indicates diabetes", metrics[model.MetricHbA1c]))
		case hba1c >= 5.7:
			findings = append(findings, fmt.Sprintf("HbA1c of %s indicates prediabetes", metrics[model.MetricHbA1c]))
		default:
			findings = append(findings, fmt.Sprintf("HbA1c of %s is in normal range", metrics[model.MetricHbA1c]))
		}
	}
	if hasGlucose {
		switch {
		case glucose >= 126:
			findings = append(findings, fmt.Sprintf("fasting glucose of %s is elevated (diabetes range)", metrics[model.MetricGlucose]))
		case glucose >= 100:
			findings = append(findings, fmt.Sprintf("fasting glucose of %s is elevated (prediabetes range)", metrics[model.MetricGlucose]))
		}
	}

	summaryBody := "multiple health markers"
	if len(findings) > 0 {
		summaryBody = strings.Join(findings, ", ")
	}
	summaryTail := "Review the key findings below with your doctor."
	if len(findings) > 1 {
		summaryTail = "Several values are outside normal ranges and need attention."
	}
	summary := fmt.Sprintf("Your lab results show %s. %s", summaryBody, summaryTail)

	var keyFindings []string
	if hasHbA1c {
		status := "normal"
		if hba1c >= 5.7 {
			status = "elevated"
		}
		keyFindings = append(keyFindings, fmt.Sprintf("HbA1c is %s - %s (normal range: 4.0-5.6%%)", metrics[model.MetricHbA1c], status))
	}
	if hasGlucose {
		status := "normal"
		if glucose >= 100 {
			status = "elevated"
		}
		keyFindings = append(keyFindings, fmt.Sprintf("Fasting glucose is %s - %s (normal range: 70-100 mg/dL)", metrics[model.MetricGlucose], status))
	}
	if bp, ok := metrics[model.MetricBloodPressure]; ok {
		keyFindings = append(keyFindings, fmt.Sprintf("Blood pressure is %s (target: 120/80 mmHg or below)", bp))
	}
	if chol, ok := metrics[model.MetricCholesterol]; ok {
		keyFindings = append(keyFindings, fmt.Sprintf("Total cholesterol is %s (recommended: below 200 mg/dL)", chol))
	}

	var questions []string
	if hasHbA1c && hba1c >= 5.7 {
		condition := "prediabetes"
		if hba1c >= 6.5 {
			condition = "diabetes"
		}
		questions = append(questions,
			fmt.Sprintf("My HbA1c is %s which indicates %s - should I start medication or can lifestyle changes help?", metrics[model.MetricHbA1c], condition),
			fmt.Sprintf("What specific dietary changes would be most effective to lower my HbA1c from %s?", metrics[model.MetricHbA1c]),
		)
	}
	if hasGlucose && glucose >= 100 {
		questions = append(questions,
			fmt.Sprintf("My fasting glucose is %s - how often should I monitor my blood sugar at home?", metrics[model.MetricGlucose]),
			fmt.Sprintf("Should I be concerned about my glucose level of %s? What are my next steps?", metrics[model.MetricGlucose]),
		)
	}
	if bp, ok := metrics[model.MetricBloodPressure]; ok {
		questions = append(questions, fmt.Sprintf("My blood pressure is %s - is this related to my blood sugar levels?", bp))
	}
	questions = padUnique(questions, genericDoctorQuestions, 5)
	if len(questions) > 5 {
		questions = questions[:5]
	}

	var recommendations []string
	if hasHbA1c || hasGlucose {
		recommendations = append(recommendations,
			"Follow a balanced diet low in refined carbohydrates and added sugars",
			"Engage in at least 150 minutes of moderate exercise per week",
			"Monitor blood glucose levels as recommended by your doctor",
		)
	}
	recommendations = append(recommendations,
		"Schedule a follow-up appointment to discuss these results in detail",
		"Keep a log of your diet, exercise, and any symptoms to share with your doctor",
	)
	recommendations = padUnique(recommendations, genericRecommendations, 5)

	var critical []string
	if hasHbA1c && hba1c >= 9.0 {
		critical = append(critical, "HbA1c is critically high - contact your doctor immediately")
	}
	if hasGlucose && glucose >= 200 {
		critical = append(critical, "Fasting glucose is dangerously high - seek medical attention today")
	}

	return model.Analysis{
		Summary:         summary,
		KeyFindings:     keyFindings,
		DoctorQuestions: questions,
		Recommendations: recommendations,
		CriticalAlerts:  critical,
	}
}

// padUnique appends entries from pool, skipping ones already present, until
// items has at least want entries or the pool is exhausted.
func padUnique(items, pool []string, want int) []string {
	for _, candidate := range pool {
		if len(items) >= want {
			break
		}

		duplicate := false
		for _, existing := range items {
			if existing == candidate {
				duplicate = true
				break
			}
		}
		if !duplicate {
			items = append(items, candidate)
		}
	}

	return items
}

func parsedPercent(metrics model.MetricSet, key string) (float64, bool) {
	display, ok := metrics[key]
	if !ok {
		return 0, false
	}

	value, err := parsePercent(display)
	if err != nil {
		return 0, false
	}

	return value, true
}

func parsedLeadingInt(metrics model.MetricSet, key string) (int, bool) {
	display, ok := metrics[key]
	if !ok {
		return 0, false
	}

	value, err := parseLeadingInt(display)
	if err != nil {
		return 0, false
	}

	return value, true
}
