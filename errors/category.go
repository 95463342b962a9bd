package errors

// Category identifies the kind of file operation that failed.
// Categories are string-based for debuggability and natural JSON serialization.
type Category string

const (
	// CategoryRead indicates a file could not be opened or read.
	CategoryRead Category = "Read"

	// CategoryWrite indicates a file could not be created or written.
	CategoryWrite Category = "Write"

	// CategoryRename indicates a file could not be renamed in place.
	CategoryRename Category = "Rename"

	// CategoryMove indicates a file could not be moved between directories.
	CategoryMove Category = "Move"

	// CategoryDelete indicates a file could not be removed.
	CategoryDelete Category = "Delete"
)

// Categories returns every valid category in declaration order.
func Categories() []Category {
	return []Category{
		CategoryRead,
		CategoryWrite,
		CategoryRename,
		CategoryMove,
		CategoryDelete,
	}
}

// Valid reports whether c is one of the defined categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryRead, CategoryWrite, CategoryRename, CategoryMove, CategoryDelete:
		return true
	default:
		return false
	}
}

// String returns the category name.
func (c Category) String() string {
	return string(c)
}
