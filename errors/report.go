package errors

import "fmt"

// report is the concrete implementation of Report.
// It is private to enforce construction through package functions.
type report struct {
	category Category
	reason   string
	site     CallSite
	context  map[string]interface{}
	cause    error
}

// Error returns the string representation of the report.
// Format: "[Category] reason" or "[Category] reason: cause" if cause is present.
func (r *report) Error() string {
	if r.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", r.category, r.reason, r.cause)
	}
	return fmt.Sprintf("[%s] %s", r.category, r.reason)
}

// Category returns the failed operation category.
func (r *report) Category() Category {
	return r.category
}

// Reason returns the failure reason.
func (r *report) Reason() string {
	return r.reason
}

// Site returns the originating call site.
func (r *report) Site() CallSite {
	return r.site
}

// Context returns a copy of the context map.
// Returns nil if no context has been attached.
func (r *report) Context() map[string]interface{} {
	if r.context == nil {
		return nil
	}
	ctx := make(map[string]interface{}, len(r.context))
	for k, v := range r.context {
		ctx[k] = v
	}
	return ctx
}

// Format renders the diagnostic template.
func (r *report) Format() string {
	return render(r.category, r.reason, r.site)
}

// Unwrap returns the wrapped error for standard library compatibility.
func (r *report) Unwrap() error {
	return r.cause
}

// with returns a copy of r carrying ctx and cause.
func (r *report) with(ctx map[string]interface{}, cause error) *report {
	return &report{
		category: r.category,
		reason:   r.reason,
		site:     r.site,
		context:  ctx,
		cause:    cause,
	}
}
