package fileops

// DefaultWindow is the number of bytes File.Read reads.
const DefaultWindow = 48

// File tracks a single named file as it moves between directories.
type File struct {
	m    *Manager
	name string
	dir  Directory
}

// File returns a handle for name in dir. Nothing is read or created.
func (m *Manager) File(name string, dir Directory) *File {
	return &File{m: m, name: name, dir: dir}
}

// Name returns the file name.
func (f *File) Name() string { return f.name }

// Dir returns the directory the file is currently in.
func (f *File) Dir() Directory { return f.dir }

// Path returns the path of the file below the filesystem root.
func (f *File) Path() string { return f.m.Path(f.dir, f.name) }

// Write replaces the file content.
func (f *File) Write(content string) error {
	return f.m.WriteFile(f.dir, f.name, content)
}

// Read reads DefaultWindow bytes starting at offset. See Manager.ReadBytes.
func (f *File) Read(offset int64) (string, bool, error) {
	return f.m.ReadBytes(f.dir, f.name, DefaultWindow, offset)
}

// MoveTo moves the file to dir and tracks it there.
func (f *File) MoveTo(dir Directory) error {
	if err := f.m.MoveFile(f.name, f.dir, dir); err != nil {
		return err
	}
	f.dir = dir
	return nil
}

// Delete removes the file.
func (f *File) Delete() error {
	return f.m.DeleteFile(f.dir, f.name)
}
