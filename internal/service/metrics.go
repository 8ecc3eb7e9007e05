package service

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/meditwin/backend/pkg/model"
	"go.uber.org/zap"
)

// hba1cPatterns are tried in order, first match wins. The leading pattern
// handles the parenthesized form "HbA1c (Glycated Hemoglobin) 6.8%" so the
// percentage is not swallowed by the bare form below it.
var hba1cPatterns = []*regexp.Regexp{
	regexp.MustCompile(`HBA1C[:\s]*\(.*?\)\s*(\d+\.?\d*)\s*%`),
	regexp.MustCompile(`HBA1C[:\s]*(\d+\.?\d*)\s*%`),
	regexp.MustCompile(`HBA1C[:\s]*(\d+\.?\d*)`),
	regexp.MustCompile(`GLYCATED\s+HEMOGLOBIN[:\s]*(\d+\.?\d*)\s*%`),
	regexp.MustCompile(`A1C[:\s]*(\d+\.?\d*)\s*%`),
	regexp.MustCompile(`HEMOGLOBIN\s+A1C[:\s]*(\d+\.?\d*)`),
}

// glucosePatterns cover fasting, random and general readings. Fasting forms
// come first so "Fasting Blood Glucose: 128" is not matched as plain glucose.
var glucosePatterns = []*regexp.Regexp{
	regexp.MustCompile(`FASTING\s+BLOOD\s+GLUCOSE\s+(\d+)\s+MG[/\s]*DL`),
	regexp.MustCompile(`FASTING\s+(?:BLOOD\s+)?GLUCOSE[:\s]*(\d+)\s*(?:MG/DL|MGDL)?`),
	regexp.MustCompile(`FBS[:\s]*(\d+)\s*(?:MG/DL|MGDL)?`),
	regexp.MustCompile(`FBG[:\s]*(\d+)\s*(?:MG/DL|MGDL)?`),
	regexp.MustCompile(`RANDOM\s+(?:BLOOD\s+)?GLUCOSE[:\s]*(\d+)\s*(?:MG/DL|MGDL)?`),
	regexp.MustCompile(`RBS[:\s]*(\d+)\s*(?:MG/DL|MGDL)?`),
	regexp.MustCompile(`BLOOD\s+GLUCOSE[:\s]*(\d+)\s*(?:MG/DL|MGDL)?`),
	regexp.MustCompile(`GLUCOSE[:\s]*(\d+)\s*(?:MG/DL|MGDL)?`),
	regexp.MustCompile(`BLOOD\s+SUGAR[:\s]*(\d+)\s*(?:MG/DL|MGDL)?`),
}

var bpPattern = regexp.MustCompile(`(?:BLOOD\s+PRESSURE|BP)[:\s]*(\d{2,3})/(\d{2,3})\s*(?:MMHG|MM HG)?`)

var cholesterolPatterns = []*regexp.Regexp{
	regexp.MustCompile(`TOTAL\s+CHOLESTEROL[:\s]*(\d+)\s*(?:MG/DL|MGDL)?`),
	regexp.MustCompile(`CHOLESTEROL[:\s]*(\d+)\s*(?:MG/DL|MGDL)?`),
}

var hemoglobinPatterns = []*regexp.Regexp{
	regexp.MustCompile(`HEMOGLOBIN[:\s]*(\d+\.?\d*)\s*(?:G/DL|GDL|GM/DL)?`),
	regexp.MustCompile(`HB[:\s]*(\d+\.?\d*)\s*(?:G/DL|GDL)?`),
}

var creatininePattern = regexp.MustCompile(`CREATININE[:\s]*(\d+\.?\d*)\s*(?:MG/DL|MGDL)?`)

// MetricExtractor pulls structured lab values out of free-form report text
type MetricExtractor struct {
	logger *zap.Logger
}

// NewMetricExtractor creates a new MetricExtractor
func NewMetricExtractor(logger *zap.Logger) *MetricExtractor {
	return &MetricExtractor{logger: logger}
}

// Extract scans text for known lab metrics and returns them as display
// strings keyed by metric name. Matching is case-insensitive and the first
// matching pattern for each metric wins.
func (me *MetricExtractor) Extract(text string) model.MetricSet {
	upper := strings.ToUpper(text)
	metrics := model.MetricSet{}

	if raw, ok := firstMatch(hba1cPatterns, upper); ok {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			me.logger.Warn("unparseable hba1c value", zap.String("raw", raw))
		} else {
			metrics[model.MetricHbA1c] = formatDecimal(value) + "%"
		}
	}

	if raw, ok := firstMatch(glucosePatterns, upper); ok {
		value, err := strconv.Atoi(raw)
		if err != nil {
			me.logger.Warn("unparseable glucose value", zap.String("raw", raw))
		} else {
			metrics[model.MetricGlucose] = strconv.Itoa(value) + " mg/dL"
		}
	}

	if m := bpPattern.FindStringSubmatch(upper); m != nil {
		metrics[model.MetricBloodPressure] = m[1] + "/" + m[2] + " mmHg"
	}

	if raw, ok := firstMatch(cholesterolPatterns, upper); ok {
		metrics[model.MetricCholesterol] = raw + " mg/dL"
	}

	if raw, ok := firstMatch(hemoglobinPatterns, upper); ok {
		metrics[model.MetricHemoglobin] = raw + " g/dL"
	}

	if m := creatininePattern.FindStringSubmatch(upper); m != nil {
		metrics[model.MetricCreatinine] = m[1] + " mg/dL"
	}

	return metrics
}

func firstMatch(patterns []*regexp.Regexp, text string) (string, bool) {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return m[1], true
		}
	}

	return "", false
}

// formatDecimal renders a float without trailing zeros, except that whole
// numbers keep a single decimal place so 7 displays as "7.0".
func formatDecimal(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}

	return strconv.FormatFloat(v, 'f', -1, 64)
}
