package errors

// Report extends the standard error interface with structured information
// describing a failed file operation.
//
// Report provides the operation category, a human-readable reason, the call
// site that produced the failure, contextual metadata, and compatibility with
// standard library error handling (errors.Is, errors.As, errors.Unwrap).
type Report interface {
	error

	// Category returns the kind of file operation that failed.
	Category() Category

	// Reason returns the human-readable failure description.
	Reason() string

	// Site returns the call site where the failure was reported.
	Site() CallSite

	// Context returns attached metadata as a read-only map.
	// Returns nil if no context has been attached.
	Context() map[string]interface{}

	// Format renders the multi-line diagnostic text for display.
	Format() string

	// Unwrap returns the wrapped error for errors.Is and errors.As compatibility.
	// Returns nil if this report does not wrap another error.
	Unwrap() error
}
