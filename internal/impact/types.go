// Package impact computes change-impact analysis for a function: who is
// affected transitively, how complex and entangled the function is, and how
// risky a change to it would be.
package impact

// Location points at a function definition.
type Location struct {
	File string `json:"file"`
	Line int    `json:"line"`
}

// ComplexityMetrics captures the structural metrics behind the risk score.
type ComplexityMetrics struct {
	FanIn                int  `json:"fanIn"`
	FanOut               int  `json:"fanOut"`
	CyclomaticComplexity int  `json:"cyclomaticComplexity"`
	IsHotspot            bool `json:"isHotspot"`
	HotspotScore         int  `json:"hotspotScore"`
}

// RiskLevel is the four-band classification of a risk score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// SuggestionType classifies an advisory message.
type SuggestionType string

const (
	SuggestionWarning  SuggestionType = "warning"
	SuggestionInfo     SuggestionType = "info"
	SuggestionRefactor SuggestionType = "refactor"
)

// SmartSuggestion is one ranked advisory message. Severity runs 1 (lowest)
// to 5 and defines presentation order, descending.
type SmartSuggestion struct {
	Type     SuggestionType `json:"type"`
	Message  string         `json:"message"`
	Severity int            `json:"severity"`
}

// ImpactResult is the complete output of one impact query.
type ImpactResult struct {
	FunctionName         string            `json:"functionName"`
	Location             Location          `json:"location"`
	DirectCallers        []string          `json:"directCallers"`
	TransitiveCallers    map[int][]string  `json:"transitiveCallers"`
	TotalAffected        int               `json:"totalAffected"`
	Complexity           ComplexityMetrics `json:"complexity"`
	CircularDependencies [][]string        `json:"circularDependencies"`
	RiskScore            int               `json:"riskScore"`
	RiskLevel            RiskLevel         `json:"riskLevel"`
	Suggestions          []SmartSuggestion `json:"suggestions"`
	Limitations          []string          `json:"limitations,omitempty"`
}
