package impact

import (
	"fmt"
	"sort"
	"strings"
)

// GenerateSuggestions turns the computed metrics into ranked advisory
// messages. Rules fire in a fixed order (caller breadth, cycles, fan-out,
// hotspot, complexity); the stable sort by descending severity preserves
// that order among ties.
func GenerateSuggestions(functionName string, callerCount, fanOut, cyclomatic int, isHotspot bool, cycles [][]string) []SmartSuggestion {
	suggestions := make([]SmartSuggestion, 0)

	switch {
	case callerCount >= 15:
		suggestions = append(suggestions, SmartSuggestion{
			Type:     SuggestionWarning,
			Message:  fmt.Sprintf("%s has %d direct callers; any signature or behavior change has a very wide blast radius", functionName, callerCount),
			Severity: 4,
		})
	case callerCount >= 10:
		suggestions = append(suggestions, SmartSuggestion{
			Type:     SuggestionWarning,
			Message:  fmt.Sprintf("%s has %d direct callers; coordinate changes with dependent code", functionName, callerCount),
			Severity: 3,
		})
	case callerCount >= 5:
		suggestions = append(suggestions, SmartSuggestion{
			Type:     SuggestionWarning,
			Message:  fmt.Sprintf("%s has %d direct callers; verify all call sites after changing it", functionName, callerCount),
			Severity: 2,
		})
	}

	for _, cycle := range cycles {
		suggestions = append(suggestions, SmartSuggestion{
			Type:     SuggestionWarning,
			Message:  fmt.Sprintf("circular dependency detected: %s", strings.Join(cycle, " -> ")),
			Severity: 5,
		})
	}

	switch {
	case fanOut >= 20:
		suggestions = append(suggestions, SmartSuggestion{
			Type:     SuggestionRefactor,
			Message:  fmt.Sprintf("%s calls %d different functions; split it into smaller units", functionName, fanOut),
			Severity: 4,
		})
	case fanOut >= 15:
		suggestions = append(suggestions, SmartSuggestion{
			Type:     SuggestionRefactor,
			Message:  fmt.Sprintf("%s calls %d different functions; consider extracting responsibilities", functionName, fanOut),
			Severity: 3,
		})
	case fanOut >= 10:
		suggestions = append(suggestions, SmartSuggestion{
			Type:     SuggestionInfo,
			Message:  fmt.Sprintf("%s calls %d different functions; watch its dependency count", functionName, fanOut),
			Severity: 2,
		})
	}

	if isHotspot {
		suggestions = append(suggestions, SmartSuggestion{
			Type:     SuggestionWarning,
			Message:  fmt.Sprintf("%s is a hotspot (high fan-in and fan-out); changes here ripple in both directions", functionName),
			Severity: 5,
		})
	}

	if cyclomatic >= 15 {
		suggestions = append(suggestions, SmartSuggestion{
			Type:     SuggestionRefactor,
			Message:  fmt.Sprintf("%s has cyclomatic complexity %d; break up its branching logic", functionName, cyclomatic),
			Severity: 3,
		})
	} else if cyclomatic >= 10 {
		suggestions = append(suggestions, SmartSuggestion{
			Type:     SuggestionInfo,
			Message:  fmt.Sprintf("%s has cyclomatic complexity %d; keep an eye on its branching", functionName, cyclomatic),
			Severity: 2,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Severity > suggestions[j].Severity
	})

	return suggestions
}
