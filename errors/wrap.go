package errors

import "fmt"

// Wrap wraps an error in a Report while preserving the original error.
// The wrapped error is accessible via Unwrap() and compatible with errors.Is and errors.As.
//
// Returns nil if err is nil.
//
// Example:
//
//	if err := filesystem.Remove(path); err != nil {
//	    return errors.Wrap(err, errors.CategoryDelete, "failed to delete file", errors.Caller(0))
//	}
func Wrap(err error, category Category, reason string, site CallSite) Report {
	if err == nil {
		return nil
	}

	mustValid(category, site)
	return &report{
		category: category,
		reason:   reason,
		site:     site,
		context:  nil,
		cause:    err,
	}
}

// Wrapf wraps an error with a formatted reason.
//
// Returns nil if err is nil.
func Wrapf(err error, category Category, site CallSite, format string, args ...interface{}) Report {
	if err == nil {
		return nil
	}

	return Wrap(err, category, fmt.Sprintf(format, args...), site)
}

// WrapHere wraps an error in a Report whose call site is the caller of WrapHere.
//
// Returns nil if err is nil.
//
// Example:
//
//	f, err := filesystem.Open(name)
//	if err != nil {
//	    return errors.WrapHere(err, errors.CategoryRead, "Error during read file.")
//	}
func WrapHere(err error, category Category, reason string) Report {
	if err == nil {
		return nil
	}

	return Wrap(err, category, reason, Caller(1))
}

// WrapWithContext wraps an error and attaches context metadata in a single operation.
// The context map is copied to prevent external mutation.
//
// Returns nil if err is nil.
func WrapWithContext(err error, category Category, reason string, site CallSite, ctx map[string]interface{}) Report {
	if err == nil {
		return nil
	}

	mustValid(category, site)

	var contextCopy map[string]interface{}
	if ctx != nil {
		contextCopy = make(map[string]interface{}, len(ctx))
		for k, v := range ctx {
			contextCopy[k] = v
		}
	}

	return &report{
		category: category,
		reason:   reason,
		site:     site,
		context:  contextCopy,
		cause:    err,
	}
}
