// Package fileops manages files inside a fixed set of application
// directories on top of any core.FS provider.
//
// A Manager writes, reads, renames, moves, copies and deletes files in the
// Documents, Inbox, Library and Temp directories. Every failure is an
// errors.Report categorized by the operation that failed:
//
//	m := fileops.New(billy.NewLocal(billy.WithRoot(dir)))
//	if err := m.WriteFile(fileops.Documents, "karma.txt", text); err != nil {
//	    fmt.Fprint(os.Stderr, errors.Format(err))
//	}
//
// Bounded reads go through the bounded package:
//
//	text, ok, err := m.ReadBytes(fileops.Documents, "karma.txt", 10, 37)
package fileops
