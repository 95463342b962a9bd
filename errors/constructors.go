package errors

import "fmt"

// New creates a new Report with the given category, reason and call site.
// All three are required; there are no defaults.
//
// New panics if category is not one of the defined categories or if
// site.Line is negative. Both indicate a programming error at the call site.
//
// Example:
//
//	err := errors.New(errors.CategoryDelete, "file is locked", errors.Caller(0))
func New(category Category, reason string, site CallSite) Report {
	mustValid(category, site)
	return &report{
		category: category,
		reason:   reason,
		site:     site,
		context:  nil,
		cause:    nil,
	}
}

// Newf creates a new Report with a formatted reason.
//
// Example:
//
//	err := errors.Newf(errors.CategoryMove, errors.Caller(0), "cannot move %s into itself", dir)
func Newf(category Category, site CallSite, format string, args ...interface{}) Report {
	return New(category, fmt.Sprintf(format, args...), site)
}

// Here creates a new Report whose call site is the caller of Here.
//
// Example:
//
//	return errors.Here(errors.CategoryRead, "Error during read file.")
func Here(category Category, reason string) Report {
	return New(category, reason, Caller(1))
}

func mustValid(category Category, site CallSite) {
	if !category.Valid() {
		panic(fmt.Sprintf("errors: invalid category %q", string(category)))
	}
	if site.Line < 0 {
		panic(fmt.Sprintf("errors: negative line number %d", site.Line))
	}
}
