package errors

import (
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// FunctionNotFound indicates the target function is absent from the call index
	FunctionNotFound ErrorCode = "FUNCTION_NOT_FOUND"
	// NoSourceFiles indicates the project scan produced no parseable files
	NoSourceFiles ErrorCode = "NO_SOURCE_FILES"
	// ParseFailed indicates a source file could not be parsed
	ParseFailed ErrorCode = "PARSE_FAILED"
	// UnsupportedLanguage indicates a file extension with no registered grammar
	UnsupportedLanguage ErrorCode = "UNSUPPORTED_LANGUAGE"
	// IndexMissing indicates a SCIP index was configured but not found
	IndexMissing ErrorCode = "INDEX_MISSING"
	// CacheError indicates the call-index cache could not be read or written
	CacheError ErrorCode = "CACHE_ERROR"
	// InvalidParameter indicates an invalid query parameter (depth, direction, ...)
	InvalidParameter ErrorCode = "INVALID_PARAMETER"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixActionType represents the type of fix action
type FixActionType string

const (
	// RunCommand suggests running a command
	RunCommand FixActionType = "run-command"
	// OpenDocs suggests opening documentation
	OpenDocs FixActionType = "open-docs"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Type        FixActionType `json:"type"`
	Command     string        `json:"command,omitempty"`
	Safe        bool          `json:"safe,omitempty"`
	Description string        `json:"description,omitempty"`
	URL         string        `json:"url,omitempty"`
}

// Drilldown represents a suggested follow-up query
type Drilldown struct {
	Label string `json:"label"`
	Query string `json:"query"`
}

// AnalysisError represents a cgraph error with code, message, and suggestions
type AnalysisError struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	Details        interface{} `json:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	Drilldowns     []Drilldown `json:"drilldowns,omitempty"`
	cause          error       // Underlying error (not exported to JSON)
}

// New creates a new AnalysisError
func New(code ErrorCode, message string, cause error) *AnalysisError {
	return &AnalysisError{
		Code:           code,
		Message:        message,
		cause:          cause,
		SuggestedFixes: GetSuggestedFixes(code),
	}
}

// Error implements the error interface
func (e *AnalysisError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AnalysisError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *AnalysisError) WithDetails(details interface{}) *AnalysisError {
	e.Details = details
	return e
}

// WithDrilldowns adds follow-up queries to the error
func (e *AnalysisError) WithDrilldowns(drilldowns []Drilldown) *AnalysisError {
	e.Drilldowns = drilldowns
	return e
}

// NewFunctionNotFound creates a FunctionNotFound error carrying the searched
// scope and file count for diagnostics.
func NewFunctionNotFound(name, scope string, fileCount int) *AnalysisError {
	e := New(FunctionNotFound,
		fmt.Sprintf("function %q not found in %s (%d files scanned)", name, scope, fileCount),
		nil)
	e.Details = map[string]interface{}{
		"function":  name,
		"scope":     scope,
		"fileCount": fileCount,
	}
	return e
}

// ErrorActions maps error codes to suggested fix actions
var ErrorActions = map[ErrorCode][]FixAction{
	FunctionNotFound: {
		{
			Type:        RunCommand,
			Command:     "cgraph functions --prefix=<name>",
			Safe:        true,
			Description: "List indexed functions matching a prefix",
		},
	},
	NoSourceFiles: {
		{
			Type:        RunCommand,
			Command:     "cgraph init",
			Safe:        true,
			Description: "Create a config with the correct source root and languages",
		},
	},
	IndexMissing: {
		{
			Type:        RunCommand,
			Command:     "scip print --index=.scip/index.scip",
			Safe:        true,
			Description: "Verify the SCIP index exists and is valid",
		},
	},
	CacheError: {
		{
			Type:        RunCommand,
			Command:     "rm -rf .cgraph/cache.db",
			Safe:        true,
			Description: "Remove the call-index cache; it will be rebuilt on the next run",
		},
	},
}

// GetSuggestedFixes returns suggested fixes for an error code
func GetSuggestedFixes(code ErrorCode) []FixAction {
	if fixes, ok := ErrorActions[code]; ok {
		return fixes
	}
	return nil
}
