// Package bounded reads an exact byte window from a file.
//
// A Reader opens the named file through a core.ReadFS, measures it, checks
// the requested window against the real size and reads exactly that window.
// The handle is released on every exit path.
//
// Three outcomes are possible:
//
//   - (text, true, nil): the window was in bounds and decoded as UTF-8.
//   - ("", false, nil): the window extends past the end of the file. This is
//     an expected outcome, not an error.
//   - ("", false, err): the file could not be opened or read, the window was
//     negative, or the bytes were not valid UTF-8 under DecodeStrict. err is
//     an errors.Report of category Read.
//
// Usage:
//
//	r := bounded.New(billy.NewLocal(billy.WithRoot(dir)))
//	text, ok, err := r.ReadBytes("Documents/karma.txt", 10, 37)
//	if err != nil {
//	    fmt.Fprint(os.Stderr, errors.Format(err))
//	}
package bounded
