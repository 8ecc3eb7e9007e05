package service

import (
	"testing"

	"github.com/meditwin/backend/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackGenerator_EmptyMetrics(t *testing.T) {
	generator := NewFallbackGenerator()

	analysis := generator.Generate(model.MetricSet{})

	assert.Equal(t, "Your lab results show multiple health markers. Review the key findings below with your doctor.", analysis.Summary)
	assert.Empty(t, analysis.KeyFindings)
	require.Len(t, analysis.DoctorQuestions, 5)
	assert.Equal(t, genericDoctorQuestions, analysis.DoctorQuestions)
	assert.GreaterOrEqual(t, len(analysis.Recommendations), 5)
	assert.Nil(t, analysis.CriticalAlerts)
}

func TestFallbackGenerator_DiabetesMetrics(t *testing.T) {
	generator := NewFallbackGenerator()

	analysis := generator.Generate(model.MetricSet{
		"hba1c":          "6.8%",
		"glucose":        "128 mg/dL",
		"blood_pressure": "135/85 mmHg",
		"cholesterol":    "210 mg/dL",
	})

	assert.Equal(t,
		"Your lab results show HbA1c of 6.8% indicates diabetes, fasting glucose of 128 mg/dL is elevated (diabetes range). Several values are outside normal ranges and need attention.",
		analysis.Summary)

	require.Len(t, analysis.KeyFindings, 4)
	assert.Equal(t, "HbA1c is 6.8% - elevated (normal range: 4.0-5.6%)", analysis.KeyFindings[0])
	assert.Equal(t, "Fasting glucose is 128 mg/dL - elevated (normal range: 70-100 mg/dL)", analysis.KeyFindings[1])
	assert.Equal(t, "Blood pressure is 135/85 mmHg (target: 120/80 mmHg or below)", analysis.KeyFindings[2])
	assert.Equal(t, "Total cholesterol is 210 mg/dL (recommended: below 200 mg/dL)", analysis.KeyFindings[3])

	require.Len(t, analysis.DoctorQuestions, 5)
	assert.Equal(t, "My HbA1c is 6.8% which indicates diabetes - should I start medication or can lifestyle changes help?", analysis.DoctorQuestions[0])
	assert.Equal(t, "What specific dietary changes would be most effective to lower my HbA1c from 6.8%?", analysis.DoctorQuestions[1])
	assert.Equal(t, "My fasting glucose is 128 mg/dL - how often should I monitor my blood sugar at home?", analysis.DoctorQuestions[2])
	assert.Equal(t, "Should I be concerned about my glucose level of 128 mg/dL? What are my next steps?", analysis.DoctorQuestions[3])
	assert.Equal(t, "My blood pressure is 135/85 mmHg - is this related to my blood sugar levels?", analysis.DoctorQuestions[4])

	assert.GreaterOrEqual(t, len(analysis.Recommendations), 5)
	assert.Equal(t, "Follow a balanced diet low in refined carbohydrates and added sugars", analysis.Recommendations[0])
	assert.Nil(t, analysis.CriticalAlerts)
}

func TestFallbackGenerator_PrediabetesWording(t *testing.T) {
	generator := NewFallbackGenerator()

	analysis := generator.Generate(model.MetricSet{"hba1c": "5.9%"})

	assert.Contains(t, analysis.Summary, "HbA1c of 5.9% indicates prediabetes")
	assert.Contains(t, analysis.DoctorQuestions[0], "which indicates prediabetes")
}

func TestFallbackGenerator_NormalHbA1cAsksNoSpecificQuestions(t *testing.T) {
	generator := NewFallbackGenerator()

	analysis := generator.Generate(model.MetricSet{"hba1c": "5.2%"})

	assert.Contains(t, analysis.Summary, "HbA1c of 5.2% is in normal range")
	assert.Equal(t, "HbA1c is 5.2% - normal (normal range: 4.0-5.6%)", analysis.KeyFindings[0])
	require.Len(t, analysis.DoctorQuestions, 5)
	assert.Equal(t, genericDoctorQuestions, analysis.DoctorQuestions)
}

func TestFallbackGenerator_CriticalAlerts(t *testing.T) {
	generator := NewFallbackGenerator()

	analysis := generator.Generate(model.MetricSet{
		"hba1c":   "9.5%",
		"glucose": "210 mg/dL",
	})

	require.Len(t, analysis.CriticalAlerts, 2)
	assert.Equal(t, "HbA1c is critically high - contact your doctor immediately", analysis.CriticalAlerts[0])
	assert.Equal(t, "Fasting glucose is dangerously high - seek medical attention today", analysis.CriticalAlerts[1])
}

func TestFallbackGenerator_RecommendationsPaddedWithoutDiabetesSignal(t *testing.T) {
	generator := NewFallbackGenerator()

	analysis := generator.Generate(model.MetricSet{"cholesterol": "210 mg/dL"})

	assert.GreaterOrEqual(t, len(analysis.Recommendations), 5)
	assert.Equal(t, "Schedule a follow-up appointment to discuss these results in detail", analysis.Recommendations[0])
}
