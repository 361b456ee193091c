package impact

import "math"

// Hotspot thresholds. Both must clear the bar: very high fan-in or fan-out
// alone does not make a hotspot.
const (
	hotspotFanIn  = 5
	hotspotFanOut = 5
)

// ScoreComplexity derives the hotspot metrics from fan-in, fan-out and the
// cyclomatic figure.
func ScoreComplexity(fanIn, fanOut, cyclomatic int) ComplexityMetrics {
	isHotspot := fanIn >= hotspotFanIn && fanOut >= hotspotFanOut

	raw := float64(fanIn*3 + fanOut*2 + cyclomatic*2)
	if isHotspot {
		raw *= 1.5
	}
	score := int(math.Round(raw))
	if score > 100 {
		score = 100
	}

	return ComplexityMetrics{
		FanIn:                fanIn,
		FanOut:               fanOut,
		CyclomaticComplexity: cyclomatic,
		IsHotspot:            isHotspot,
		HotspotScore:         score,
	}
}

// ScoreRisk computes the composite risk score. Weights: direct callers count
// double, transitive-only callers single, hotspot status adds a flat 15,
// each circular dependency adds 10, and every 5 points of cyclomatic
// complexity adds 1. Clamped to [0,100].
func ScoreRisk(directCallers, totalAffected int, isHotspot bool, cycleCount, cyclomatic int) int {
	score := directCallers * 2
	score += totalAffected - directCallers
	if isHotspot {
		score += 15
	}
	score += cycleCount * 10
	score += cyclomatic / 5

	if score > 100 {
		score = 100
	}
	return score
}

// ClassifyRisk maps a risk score onto the four bands.
func ClassifyRisk(score int) RiskLevel {
	switch {
	case score < 10:
		return RiskLow
	case score < 30:
		return RiskMedium
	case score < 60:
		return RiskHigh
	default:
		return RiskCritical
	}
}
