package errors

import (
	"encoding/json"
)

// ErrorResponse represents the JSON structure of a Report.
// It provides a flat, serializable representation without exposing the
// wrapped error chain.
type ErrorResponse struct {
	// Category is the failed operation category.
	Category string `json:"category"`

	// Reason is the human-readable failure description.
	Reason string `json:"reason"`

	// Function is the originating function.
	Function string `json:"function"`

	// File is the originating source file.
	File string `json:"file"`

	// Line is the originating source line.
	Line int `json:"line"`

	// Context contains optional metadata about the failure.
	// Omitted from JSON if empty.
	Context map[string]interface{} `json:"context,omitempty"`
}

// ToJSON converts any error to an ErrorResponse suitable for JSON serialization.
// Returns nil if err is nil.
//
// For Report instances, extracts category, reason, call site and context.
// For other errors, the category is empty and the reason is the error message.
//
// The wrapped error chain is intentionally excluded. Causes from the OS layer
// routinely embed absolute paths and platform details.
func ToJSON(err error) *ErrorResponse {
	if err == nil {
		return nil
	}

	var r Report
	if !As(err, &r) {
		return &ErrorResponse{Reason: err.Error()}
	}

	site := r.Site()
	return &ErrorResponse{
		Category: string(r.Category()),
		Reason:   r.Reason(),
		Function: site.Function,
		File:     site.File,
		Line:     site.Line,
		Context:  r.Context(),
	}
}

// MarshalJSON implements json.Marshaler for report.
//
// Example:
//
//	err := errors.Here(errors.CategoryDelete, "file is locked")
//	data, _ := json.Marshal(err)
//	// {"category":"Delete","reason":"file is locked","function":"main.main",...}
func (r *report) MarshalJSON() ([]byte, error) {
	response := &ErrorResponse{
		Category: string(r.category),
		Reason:   r.reason,
		Function: r.site.Function,
		File:     r.site.File,
		Line:     r.site.Line,
		Context:  r.context,
	}
	data, err := json.Marshal(response)
	if err != nil {
		// Context values are caller-supplied and may not be marshalable.
		return nil, &report{
			category: r.category,
			reason:   "failed to marshal error report",
			site:     Caller(0),
			cause:    err,
		}
	}
	return data, nil
}
