package service

import (
	"math"

	"github.com/meditwin/backend/pkg/model"
	"go.uber.org/zap"
)

// Noise thresholds below which a change counts as stable rather than a trend.
const (
	hba1cStableBand       = 0.1
	glucoseStableBand     = 5
	bpStableBand          = 5
	cholesterolStableBand = 10
)

// TrendComparator compares a document's metrics against the user's nearest
// earlier report.
type TrendComparator struct {
	logger *zap.Logger
}

// NewTrendComparator creates a new TrendComparator
func NewTrendComparator(logger *zap.Logger) *TrendComparator {
	return &TrendComparator{logger: logger}
}

// Compare locates targetID in history (sorted by upload time descending, at
// most the 10 most recent documents) and compares current against the next
// entry, the nearest earlier report. The history slice is never mutated.
// Returns HasPreviousReport=false when the target is absent, is the oldest
// entry, or its predecessor carries no metrics at all.
func (tc *TrendComparator) Compare(targetID string, history []model.MetricHistoryEntry, current model.MetricSet) model.TrendComparison {
	comparison := model.TrendComparison{Changes: map[string]model.MetricChange{}}

	targetIndex := -1
	for i, entry := range history {
		if entry.ID == targetID {
			targetIndex = i
			break
		}
	}

	if targetIndex == -1 || targetIndex >= len(history)-1 {
		tc.logger.Debug("no previous report for comparison", zap.String("document_id", targetID))
		return comparison
	}

	previous := history[targetIndex+1]
	if len(previous.Metrics) == 0 {
		tc.logger.Debug("previous report has no metrics", zap.String("document_id", targetID))
		return comparison
	}

	comparison.HasPreviousReport = true
	previousDate := previous.UploadDate
	comparison.PreviousDate = &previousDate

	if curr, prev, ok := pairedFloats(current, previous.Metrics, model.MetricHbA1c, parsePercent); ok {
		change := round1(curr - prev)
		comparison.Changes[model.MetricHbA1c] = model.MetricChange{
			Current:       current[model.MetricHbA1c],
			Previous:      previous.Metrics[model.MetricHbA1c],
			Change:        change,
			ChangePercent: percentChange(curr-prev, prev),
			Direction:     direction(change, hba1cStableBand),
			Arrow:         arrow(change, hba1cStableBand),
			IsImproving:   change < -hba1cStableBand,
		}
	}

	if curr, prev, ok := pairedInts(current, previous.Metrics, model.MetricGlucose); ok {
		change := float64(curr - prev)
		comparison.Changes[model.MetricGlucose] = model.MetricChange{
			Current:       current[model.MetricGlucose],
			Previous:      previous.Metrics[model.MetricGlucose],
			Change:        change,
			ChangePercent: percentChange(change, float64(prev)),
			Direction:     direction(change, glucoseStableBand),
			Arrow:         arrow(change, glucoseStableBand),
			IsImproving:   change < -glucoseStableBand,
		}
	}

	if curr, prev, ok := pairedSystolics(current, previous.Metrics); ok {
		change := float64(curr - prev)
		comparison.Changes[model.MetricBloodPressure] = model.MetricChange{
			Current:     current[model.MetricBloodPressure],
			Previous:    previous.Metrics[model.MetricBloodPressure],
			Change:      change,
			Direction:   direction(change, bpStableBand),
			Arrow:       arrow(change, bpStableBand),
			IsImproving: change < -bpStableBand,
		}
	}

	if curr, prev, ok := pairedInts(current, previous.Metrics, model.MetricCholesterol); ok {
		change := float64(curr - prev)
		comparison.Changes[model.MetricCholesterol] = model.MetricChange{
			Current:     current[model.MetricCholesterol],
			Previous:    previous.Metrics[model.MetricCholesterol],
			Change:      change,
			Direction:   direction(change, cholesterolStableBand),
			Arrow:       arrow(change, cholesterolStableBand),
			IsImproving: change < -cholesterolStableBand,
		}
	}

	tc.logger.Debug("trend comparison complete",
		zap.String("document_id", targetID),
		zap.Int("metrics_compared", len(comparison.Changes)),
	)

	return comparison
}

func pairedFloats(current, previous model.MetricSet, key string, parse func(string) (float64, error)) (float64, float64, bool) {
	currDisplay, currOK := current[key]
	prevDisplay, prevOK := previous[key]
	if !currOK || !prevOK {
		return 0, 0, false
	}

	curr, err := parse(currDisplay)
	if err != nil {
		return 0, 0, false
	}
	prev, err := parse(prevDisplay)
	if err != nil {
		return 0, 0, false
	}

	return curr, prev, true
}

func pairedInts(current, previous model.MetricSet, key string) (int, int, bool) {
	currDisplay, currOK := current[key]
	prevDisplay, prevOK := previous[key]
	if !currOK || !prevOK {
		return 0, 0, false
	}

	curr, err := parseLeadingInt(currDisplay)
	if err != nil {
		return 0, 0, false
	}
	prev, err := parseLeadingInt(prevDisplay)
	if err != nil {
		return 0, 0, false
	}

	return curr, prev, true
}

func pairedSystolics(current, previous model.MetricSet) (int, int, bool) {
	currDisplay, currOK := current[model.MetricBloodPressure]
	prevDisplay, prevOK := previous[model.MetricBloodPressure]
	if !currOK || !prevOK {
		return 0, 0, false
	}

	currSys, _, err := parseBloodPressure(currDisplay)
	if err != nil {
		return 0, 0, false
	}
	prevSys, _, err := parseBloodPressure(prevDisplay)
	if err != nil {
		return 0, 0, false
	}

	return currSys, prevSys, true
}

// percentChange returns change relative to previous in percent, rounded to
// one decimal, 0 when previous is not positive.
func percentChange(change, previous float64) *float64 {
	percent := 0.0
	if previous > 0 {
		percent = round1(change / previous * 100)
	}

	return &percent
}

func direction(change, stableBand float64) model.TrendDirection {
	switch {
	case change > stableBand:
		return model.TrendUp
	case change < -stableBand:
		return model.TrendDown
	default:
		return model.TrendStable
	}
}

func arrow(change, stableBand float64) string {
	switch {
	case change > stableBand:
		return "↑"
	case change < -stableBand:
		return "↓"
	default:
		return "→"
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
