package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/meditwin/backend/pkg/model"
	"go.uber.org/zap"
)

// SeverityAssessor bands extracted metric values against clinical reference
// thresholds. Assessment is computed fresh per request and never persisted.
type SeverityAssessor struct {
	logger *zap.Logger
}

// NewSeverityAssessor creates a new SeverityAssessor
func NewSeverityAssessor(logger *zap.Logger) *SeverityAssessor {
	return &SeverityAssessor{logger: logger}
}

// Assess evaluates each present metric independently against its threshold
// ladder, highest band first. Alert strings accumulate in evaluation order
// hba1c, glucose, blood_pressure, cholesterol. CriticalAlerts is nil when no
// metric banded at WARNING or above. A value that fails to parse is skipped
// without aborting the rest of the assessment.
func (sa *SeverityAssessor) Assess(metrics model.MetricSet) model.SeverityAssessment {
	severity := map[string]model.SeverityRecord{}
	var alerts []string

	if display, ok := metrics[model.MetricHbA1c]; ok {
		if value, err := parsePercent(display); err == nil {
			record, alert := assessHbA1c(value, display)
			severity[model.MetricHbA1c] = record
			if alert != "" {
				alerts = append(alerts, alert)
			}
		} else {
			sa.logger.Warn("skipping unparseable hba1c", zap.String("value", display))
		}
	}

	if display, ok := metrics[model.MetricGlucose]; ok {
		if value, err := parseLeadingInt(display); err == nil {
			record, alert := assessGlucose(value, display)
			severity[model.MetricGlucose] = record
			if alert != "" {
				alerts = append(alerts, alert)
			}
		} else {
			sa.logger.Warn("skipping unparseable glucose", zap.String("value", display))
		}
	}

	if display, ok := metrics[model.MetricBloodPressure]; ok {
		if systolic, diastolic, err := parseBloodPressure(display); err == nil {
			record, alert := assessBloodPressure(systolic, diastolic, display)
			severity[model.MetricBloodPressure] = record
			if alert != "" {
				alerts = append(alerts, alert)
			}
		} else {
			sa.logger.Warn("skipping unparseable blood pressure", zap.String("value", display))
		}
	}

	if display, ok := metrics[model.MetricCholesterol]; ok {
		if value, err := parseLeadingInt(display); err == nil {
			record, alert := assessCholesterol(value, display)
			severity[model.MetricCholesterol] = record
			if alert != "" {
				alerts = append(alerts, alert)
			}
		} else {
			sa.logger.Warn("skipping unparseable cholesterol", zap.String("value", display))
		}
	}

	hasCritical := false
	hasWarning := false
	for _, record := range severity {
		if record.Level == model.SeverityCritical {
			hasCritical = true
		}
		if record.Level == model.SeverityCritical || record.Level == model.SeverityWarning {
			hasWarning = true
		}
	}

	return model.SeverityAssessment{
		Severity:       severity,
		CriticalAlerts: alerts,
		HasCritical:    hasCritical,
		HasWarning:     hasWarning,
	}
}

func assessHbA1c(value float64, display string) (model.SeverityRecord, string) {
	switch {
	case value >= 9.0:
		return model.SeverityRecord{
			Level:   model.SeverityCritical,
			Color:   "red",
			Label:   "CRITICALLY HIGH",
			Message: fmt.Sprintf("Your HbA1c of %s is critically high", display),
		}, fmt.Sprintf("URGENT: HbA1c %s is critically high - contact your doctor immediately", display)
	case value >= 6.5:
		return model.SeverityRecord{
			Level:   model.SeverityWarning,
			Color:   "yellow",
			Label:   "DIABETES RANGE",
			Message: fmt.Sprintf("HbA1c %s indicates diabetes", display),
		}, fmt.Sprintf("WARNING: HbA1c %s is in diabetes range - discuss treatment with your doctor", display)
	case value >= 5.7:
		return model.SeverityRecord{
			Level:   model.SeverityElevated,
			Color:   "yellow",
			Label:   "PREDIABETES",
			Message: fmt.Sprintf("HbA1c %s indicates prediabetes", display),
		}, ""
	default:
		return model.SeverityRecord{
			Level:   model.SeverityNormal,
			Color:   "green",
			Label:   "NORMAL",
			Message: fmt.Sprintf("HbA1c %s is in normal range", display),
		}, ""
	}
}

func assessGlucose(value int, display string) (model.SeverityRecord, string) {
	switch {
	case value >= 200:
		return model.SeverityRecord{
			Level:   model.SeverityCritical,
			Color:   "red",
			Label:   "DANGEROUSLY HIGH",
			Message: fmt.Sprintf("Glucose %s is dangerously high", display),
		}, fmt.Sprintf("URGENT: Fasting glucose %s is dangerously high - seek medical attention today", display)
	case value >= 126:
		return model.SeverityRecord{
			Level:   model.SeverityWarning,
			Color:   "red",
			Label:   "DIABETES RANGE",
			Message: fmt.Sprintf("Glucose %s is in diabetes range", display),
		}, fmt.Sprintf("WARNING: Fasting glucose %s indicates diabetes", display)
	case value >= 100:
		return model.SeverityRecord{
			Level:   model.SeverityElevated,
			Color:   "yellow",
			Label:   "ELEVATED",
			Message: fmt.Sprintf("Glucose %s is elevated", display),
		}, ""
	default:
		return model.SeverityRecord{
			Level:   model.SeverityNormal,
			Color:   "green",
			Label:   "NORMAL",
			Message: fmt.Sprintf("Glucose %s is in normal range", display),
		}, ""
	}
}

func assessBloodPressure(systolic, diastolic int, display string) (model.SeverityRecord, string) {
	switch {
	case systolic >= 180 || diastolic >= 120:
		return model.SeverityRecord{
			Level:   model.SeverityCritical,
			Color:   "red",
			Label:   "HYPERTENSIVE CRISIS",
			Message: fmt.Sprintf("BP %s is critically high", display),
		}, fmt.Sprintf("URGENT: Blood pressure %s requires immediate medical attention", display)
	case systolic >= 140 || diastolic >= 90:
		return model.SeverityRecord{
			Level:   model.SeverityWarning,
			Color:   "red",
			Label:   "HYPERTENSION",
			Message: fmt.Sprintf("BP %s indicates hypertension", display),
		}, fmt.Sprintf("WARNING: Blood pressure %s indicates Stage 2 hypertension", display)
	case systolic >= 130 || diastolic >= 80:
		return model.SeverityRecord{
			Level:   model.SeverityElevated,
			Color:   "yellow",
			Label:   "ELEVATED",
			Message: fmt.Sprintf("BP %s is elevated", display),
		}, ""
	default:
		return model.SeverityRecord{
			Level:   model.SeverityNormal,
			Color:   "green",
			Label:   "NORMAL",
			Message: fmt.Sprintf("BP %s is normal", display),
		}, ""
	}
}

func assessCholesterol(value int, display string) (model.SeverityRecord, string) {
	switch {
	case value >= 240:
		return model.SeverityRecord{
			Level:   model.SeverityWarning,
			Color:   "red",
			Label:   "HIGH",
			Message: fmt.Sprintf("Cholesterol %s is high", display),
		}, fmt.Sprintf("WARNING: Total cholesterol %s is high - increases heart disease risk", display)
	case value >= 200:
		return model.SeverityRecord{
			Level:   model.SeverityElevated,
			Color:   "yellow",
			Label:   "BORDERLINE HIGH",
			Message: fmt.Sprintf("Cholesterol %s is borderline high", display),
		}, ""
	default:
		return model.SeverityRecord{
			Level:   model.SeverityNormal,
			Color:   "green",
			Label:   "DESIRABLE",
			Message: fmt.Sprintf("Cholesterol %s is desirable", display),
		}, ""
	}
}

// parsePercent reads the numeric part of a display string like "6.8%".
func parsePercent(display string) (float64, error) {
	trimmed := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(display), "%"))

	return strconv.ParseFloat(trimmed, 64)
}

// parseLeadingInt reads the leading integer of a display string like
// "128 mg/dL".
func parseLeadingInt(display string) (int, error) {
	fields := strings.Fields(display)
	if len(fields) == 0 {
		return 0, fmt.Errorf("empty value")
	}

	return strconv.Atoi(fields[0])
}

// parseBloodPressure reads systolic and diastolic from a display string like
// "135/85 mmHg".
func parseBloodPressure(display string) (int, int, error) {
	parts := strings.SplitN(display, "/", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected systolic/diastolic in %q", display)
	}

	systolic, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, err
	}

	diastolicFields := strings.Fields(parts[1])
	if len(diastolicFields) == 0 {
		return 0, 0, fmt.Errorf("missing diastolic in %q", display)
	}

	diastolic, err := strconv.Atoi(diastolicFields[0])
	if err != nil {
		return 0, 0, err
	}

	return systolic, diastolic, nil
}
