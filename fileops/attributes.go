package fileops

import (
	"io/fs"
	"strings"
	"time"

	json "github.com/json-iterator/go"
)

// Attributes describes a file managed by a Manager.
type Attributes struct {
	path    string
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func newAttributes(path string, info fs.FileInfo) *Attributes {
	return &Attributes{
		path:    path,
		name:    info.Name(),
		size:    info.Size(),
		mode:    info.Mode(),
		modTime: info.ModTime(),
		isDir:   info.IsDir(),
	}
}

// Path returns the path of the file below the filesystem root.
func (a *Attributes) Path() string {
	return a.path
}

// Name returns the base name of the file.
func (a *Attributes) Name() string {
	return a.name
}

// Size returns the size in bytes.
func (a *Attributes) Size() int64 {
	return a.size
}

// Mode returns the file mode bits.
func (a *Attributes) Mode() fs.FileMode {
	return a.mode
}

// ModTime returns the modification time.
func (a *Attributes) ModTime() time.Time {
	return a.modTime
}

// IsDir reports whether the path is a directory.
func (a *Attributes) IsDir() bool {
	return a.isDir
}

// ToMap returns a map representation of the attributes.
func (a *Attributes) ToMap() (map[string]any, error) {
	var m map[string]any
	if err := json.NewDecoder(strings.NewReader(a.String())).Decode(&m); err != nil {
		return m, err
	}
	return m, nil
}

// String returns the attributes as a JSON object.
func (a *Attributes) String() string {
	s := make(map[string]any)
	s["path"] = a.path
	s["name"] = a.name
	s["size"] = a.size
	s["mode"] = a.mode.String()
	s["mod_time"] = a.modTime.UTC().Format(time.RFC3339Nano)
	s["is_dir"] = a.isDir

	out, err := json.ConfigCompatibleWithStandardLibrary.MarshalToString(s)
	if err != nil {
		return "{}"
	}
	return out
}
