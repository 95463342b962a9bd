package errors

import (
	"fmt"
	"runtime"
	"strings"
)

const unknownSite = "unknown"

// CallSite identifies the source location where a failure was reported.
type CallSite struct {
	// Function is the package-qualified function name (e.g. "bounded.(*Reader).ReadBytes").
	Function string

	// File is the source file path as recorded by the compiler.
	File string

	// Line is the source line number. It is never negative.
	Line int
}

// Caller captures the call site of the function that invoked Caller.
// The skip argument is the number of additional stack frames to ascend:
// Caller(0) describes the line calling Caller, Caller(1) its caller, and so on.
//
// If the frame cannot be resolved, Function and File are "unknown" and Line is 0.
func Caller(skip int) CallSite {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return CallSite{Function: unknownSite, File: unknownSite}
	}

	fn := unknownSite
	if f := runtime.FuncForPC(pc); f != nil {
		fn = shortFuncName(f.Name())
	}
	return CallSite{Function: fn, File: file, Line: line}
}

// String returns "function (file:line)".
func (s CallSite) String() string {
	return fmt.Sprintf("%s (%s:%d)", s.Function, s.File, s.Line)
}

// shortFuncName strips the import path from a fully qualified function name,
// leaving "pkg.Func" or "pkg.(*Type).Method".
func shortFuncName(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return name
}
