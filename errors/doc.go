// Package errors provides structured reports for failed file operations.
//
// A Report records which kind of file operation failed (its Category), a
// human-readable reason, and the call site that produced the failure. Reports
// are immutable and remain compatible with the standard library errors package
// (errors.Is, errors.As, errors.Unwrap).
//
// # Quick Start
//
// Creating reports:
//
//	// Call site captured automatically
//	err := errors.Here(errors.CategoryRead, "Error during read file.")
//
//	// Call site supplied explicitly
//	err := errors.New(errors.CategoryWrite, "disk full", errors.CallSite{
//	    Function: "save",
//	    File:     "store.go",
//	    Line:     42,
//	})
//
// Wrapping errors:
//
//	f, err := filesystem.Open(name)
//	if err != nil {
//	    return errors.WrapHere(err, errors.CategoryRead, "Error during read file.")
//	}
//
// Adding context:
//
//	err = errors.WithContext(err, "path", name)
//
// Displaying a report:
//
//	var report errors.Report
//	if errors.As(err, &report) {
//	    fmt.Fprint(os.Stderr, report.Format())
//	}
//
// # Categories
//
// The category set is closed: Read, Write, Rename, Move and Delete. Callers
// should branch on Category() or GetCategory, never on formatted text.
//
// # Formatting
//
// Format renders the fixed multi-line diagnostic template. It is pure: it
// never logs or prints. Whether the text is logged is up to the caller.
//
// # JSON Serialization
//
// Reports marshal to a flat object with category, reason, call site and
// context. The wrapped cause is excluded.
package errors
