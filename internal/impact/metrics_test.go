package impact

import "testing"

func TestHotspotBoundary(t *testing.T) {
	tests := []struct {
		name    string
		fanIn   int
		fanOut  int
		hotspot bool
	}{
		{"both at threshold", 5, 5, true},
		{"fanIn below", 4, 10, false},
		{"fanOut below", 10, 4, false},
		{"both below", 4, 4, false},
		{"both above", 12, 9, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ScoreComplexity(tt.fanIn, tt.fanOut, 1)
			if m.IsHotspot != tt.hotspot {
				t.Errorf("fanIn=%d fanOut=%d: isHotspot=%v, want %v",
					tt.fanIn, tt.fanOut, m.IsHotspot, tt.hotspot)
			}
		})
	}
}

func TestHotspotScore(t *testing.T) {
	// Non-hotspot: 2*3 + 3*2 + 4*2 = 20, no multiplier.
	m := ScoreComplexity(2, 3, 4)
	if m.HotspotScore != 20 {
		t.Errorf("hotspotScore: got %d, want 20", m.HotspotScore)
	}

	// Hotspot: (5*3 + 5*2 + 4*2) * 1.5 = 49.5, rounds to 50.
	m = ScoreComplexity(5, 5, 4)
	if m.HotspotScore != 50 {
		t.Errorf("hotspot hotspotScore: got %d, want 50", m.HotspotScore)
	}

	// Clamp at 100.
	m = ScoreComplexity(30, 30, 30)
	if m.HotspotScore != 100 {
		t.Errorf("clamped hotspotScore: got %d, want 100", m.HotspotScore)
	}
}

func TestRiskScoreCycleWeight(t *testing.T) {
	// Adding one cycle increases the score by exactly 10 before the clamp.
	without := ScoreRisk(3, 8, false, 0, 7)
	with := ScoreRisk(3, 8, false, 1, 7)
	if with-without != 10 {
		t.Errorf("one cycle should add 10: got %d -> %d", without, with)
	}
}

func TestRiskScoreComposition(t *testing.T) {
	// 4 direct callers, 10 affected, hotspot, 2 cycles, cyclomatic 12:
	// 4*2 + (10-4) + 15 + 2*10 + 12/5 = 8+6+15+20+2 = 51
	got := ScoreRisk(4, 10, true, 2, 12)
	if got != 51 {
		t.Errorf("riskScore: got %d, want 51", got)
	}
}

func TestRiskScoreClamp(t *testing.T) {
	if got := ScoreRisk(50, 200, true, 5, 100); got != 100 {
		t.Errorf("riskScore must clamp to 100, got %d", got)
	}
}

func TestClassifyRisk(t *testing.T) {
	tests := []struct {
		score int
		want  RiskLevel
	}{
		{0, RiskLow},
		{9, RiskLow},
		{10, RiskMedium},
		{29, RiskMedium},
		{30, RiskHigh},
		{59, RiskHigh},
		{60, RiskCritical},
		{100, RiskCritical},
	}

	for _, tt := range tests {
		if got := ClassifyRisk(tt.score); got != tt.want {
			t.Errorf("ClassifyRisk(%d): got %s, want %s", tt.score, got, tt.want)
		}
	}
}
