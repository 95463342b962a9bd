package errors

import "errors"

// WithContext adds a single context field to an error.
// Returns a new Report with the context field added.
// Existing context fields are preserved.
//
// If err is not a Report, it is converted to a CategoryRead Report that wraps
// err and records the caller of WithContext as its call site. If err wraps a
// Report, the result keeps that Report's category, reason and site and wraps
// err itself.
// Returns nil if err is nil.
//
// Example:
//
//	err := errors.Here(errors.CategoryWrite, "write failed")
//	err = errors.WithContext(err, "path", "Documents/karma.txt")
func WithContext(err error, key string, value interface{}) Report {
	if err == nil {
		return nil
	}

	base := toReport(err, Caller(1))

	newContext := make(map[string]interface{}, len(base.context)+1)
	for k, v := range base.context {
		newContext[k] = v
	}
	newContext[key] = value

	return base.with(newContext, base.cause)
}

// WithContextMap adds multiple context fields to an error.
// Returns a new Report with the context fields merged.
// Existing context fields are preserved; new fields override existing ones with the same key.
//
// Conversion of non-Report errors follows WithContext.
// Returns nil if err is nil.
//
// Example:
//
//	err = errors.WithContextMap(err, map[string]interface{}{
//	    "offset": 40,
//	    "length": 10,
//	})
func WithContextMap(err error, ctx map[string]interface{}) Report {
	if err == nil {
		return nil
	}

	base := toReport(err, Caller(1))

	newContext := make(map[string]interface{}, len(base.context)+len(ctx))
	for k, v := range base.context {
		newContext[k] = v
	}
	for k, v := range ctx {
		newContext[k] = v
	}

	return base.with(newContext, base.cause)
}

// toReport returns err as a *report, converting foreign errors with site as
// the call site. A Report wrapped by another error keeps its classification
// and context, and the outer error becomes the cause so its text survives.
func toReport(err error, site CallSite) *report {
	switch r := err.(type) {
	case *report:
		return r
	case Report:
		return &report{
			category: r.Category(),
			reason:   r.Reason(),
			site:     r.Site(),
			context:  r.Context(),
			cause:    r.Unwrap(),
		}
	}

	var inner Report
	if errors.As(err, &inner) {
		return &report{
			category: inner.Category(),
			reason:   inner.Reason(),
			site:     inner.Site(),
			context:  inner.Context(),
			cause:    err,
		}
	}

	return &report{
		category: CategoryRead,
		reason:   err.Error(),
		site:     site,
		context:  nil,
		cause:    err,
	}
}
