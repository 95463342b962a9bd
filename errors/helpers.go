package errors

import (
	stderrors "errors"
)

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around the standard library errors.Is.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience wrapper around the standard library errors.As.
//
// Example:
//
//	var report Report
//	if errors.As(err, &report) {
//	    category := report.Category()
//	}
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// GetCategory extracts the Category from the outermost Report in err's chain.
// The boolean is false if err is nil or carries no Report.
//
// Example:
//
//	if c, ok := errors.GetCategory(err); ok && c == errors.CategoryRead {
//	    // Handle read failure
//	}
func GetCategory(err error) (Category, bool) {
	if err == nil {
		return "", false
	}

	var r Report
	if stderrors.As(err, &r) {
		return r.Category(), true
	}
	return "", false
}

// IsCategory reports whether err carries a Report of the given category.
func IsCategory(err error, category Category) bool {
	c, ok := GetCategory(err)
	return ok && c == category
}

// Format renders the diagnostic text of the outermost Report in err's chain.
// Errors without a Report are rendered as plain err.Error() text.
// Returns an empty string if err is nil.
func Format(err error) string {
	if err == nil {
		return ""
	}

	var r Report
	if stderrors.As(err, &r) {
		return r.Format()
	}
	return err.Error()
}
