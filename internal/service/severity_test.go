package service

import (
	"testing"

	"github.com/meditwin/backend/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSeverityAssessor_HbA1cBands(t *testing.T) {
	assessor := NewSeverityAssessor(zap.NewNop())

	tests := []struct {
		value    string
		expected model.SeverityLevel
		alert    bool
	}{
		{"5.6%", model.SeverityNormal, false},
		{"5.7%", model.SeverityElevated, false},
		{"6.49%", model.SeverityElevated, false},
		{"6.5%", model.SeverityWarning, true},
		{"8.9%", model.SeverityWarning, true},
		{"9.0%", model.SeverityCritical, true},
		{"12.1%", model.SeverityCritical, true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			result := assessor.Assess(model.MetricSet{"hba1c": tt.value})
			require.Contains(t, result.Severity, "hba1c")
			assert.Equal(t, tt.expected, result.Severity["hba1c"].Level)
			if tt.alert {
				assert.NotEmpty(t, result.CriticalAlerts)
			} else {
				assert.Nil(t, result.CriticalAlerts)
			}
		})
	}
}

func TestSeverityAssessor_GlucoseBands(t *testing.T) {
	assessor := NewSeverityAssessor(zap.NewNop())

	tests := []struct {
		value    string
		expected model.SeverityLevel
	}{
		{"95 mg/dL", model.SeverityNormal},
		{"100 mg/dL", model.SeverityElevated},
		{"126 mg/dL", model.SeverityWarning},
		{"200 mg/dL", model.SeverityCritical},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			result := assessor.Assess(model.MetricSet{"glucose": tt.value})
			assert.Equal(t, tt.expected, result.Severity["glucose"].Level)
		})
	}
}

func TestSeverityAssessor_BloodPressureBands(t *testing.T) {
	assessor := NewSeverityAssessor(zap.NewNop())

	tests := []struct {
		value    string
		expected model.SeverityLevel
	}{
		{"118/76 mmHg", model.SeverityNormal},
		{"132/78 mmHg", model.SeverityElevated},
		{"120/80 mmHg", model.SeverityElevated},
		{"142/88 mmHg", model.SeverityWarning},
		{"120/92 mmHg", model.SeverityWarning},
		{"185/110 mmHg", model.SeverityCritical},
		{"150/122 mmHg", model.SeverityCritical},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			result := assessor.Assess(model.MetricSet{"blood_pressure": tt.value})
			assert.Equal(t, tt.expected, result.Severity["blood_pressure"].Level)
		})
	}
}

func TestSeverityAssessor_CholesterolBands(t *testing.T) {
	assessor := NewSeverityAssessor(zap.NewNop())

	tests := []struct {
		value    string
		expected model.SeverityLevel
	}{
		{"180 mg/dL", model.SeverityNormal},
		{"200 mg/dL", model.SeverityElevated},
		{"240 mg/dL", model.SeverityWarning},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			result := assessor.Assess(model.MetricSet{"cholesterol": tt.value})
			assert.Equal(t, tt.expected, result.Severity["cholesterol"].Level)
		})
	}
}

func TestSeverityAssessor_AlertOrderAndFlags(t *testing.T) {
	assessor := NewSeverityAssessor(zap.NewNop())

	result := assessor.Assess(model.MetricSet{
		"hba1c":          "9.5%",
		"glucose":        "210 mg/dL",
		"blood_pressure": "145/92 mmHg",
		"cholesterol":    "250 mg/dL",
	})

	require.Len(t, result.CriticalAlerts, 4)
	assert.Equal(t, "URGENT: HbA1c 9.5% is critically high - contact your doctor immediately", result.CriticalAlerts[0])
	assert.Equal(t, "URGENT: Fasting glucose 210 mg/dL is dangerously high - seek medical attention today", result.CriticalAlerts[1])
	assert.Equal(t, "WARNING: Blood pressure 145/92 mmHg indicates Stage 2 hypertension", result.CriticalAlerts[2])
	assert.Equal(t, "WARNING: Total cholesterol 250 mg/dL is high - increases heart disease risk", result.CriticalAlerts[3])
	assert.True(t, result.HasCritical)
	assert.True(t, result.HasWarning)
}

func TestSeverityAssessor_CleanResultHasNilAlerts(t *testing.T) {
	assessor := NewSeverityAssessor(zap.NewNop())

	result := assessor.Assess(model.MetricSet{
		"hba1c":   "5.2%",
		"glucose": "88 mg/dL",
	})

	assert.Nil(t, result.CriticalAlerts)
	assert.False(t, result.HasCritical)
	assert.False(t, result.HasWarning)
	assert.Len(t, result.Severity, 2)
}

func TestSeverityAssessor_EmptyMetrics(t *testing.T) {
	assessor := NewSeverityAssessor(zap.NewNop())

	result := assessor.Assess(model.MetricSet{})

	assert.Empty(t, result.Severity)
	assert.Nil(t, result.CriticalAlerts)
	assert.False(t, result.HasCritical)
	assert.False(t, result.HasWarning)
}

func TestSeverityAssessor_UnparseableValueSkipped(t *testing.T) {
	assessor := NewSeverityAssessor(zap.NewNop())

	result := assessor.Assess(model.MetricSet{
		"hba1c":   "not-a-number%",
		"glucose": "110 mg/dL",
	})

	assert.NotContains(t, result.Severity, "hba1c")
	assert.Contains(t, result.Severity, "glucose")
}

func TestSeverityAssessor_HemoglobinAndCreatinineIgnored(t *testing.T) {
	assessor := NewSeverityAssessor(zap.NewNop())

	// Only the four banded metrics carry thresholds; the rest pass through
	// unassessed.
	result := assessor.Assess(model.MetricSet{
		"hemoglobin": "13.5 g/dL",
		"creatinine": "1.2 mg/dL",
	})

	assert.Empty(t, result.Severity)
}
