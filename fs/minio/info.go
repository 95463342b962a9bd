package minio

import (
	"io/fs"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
)

const (
	objectMode = fs.FileMode(0o644)
	prefixMode = fs.ModeDir | 0o755
)

// objectInfo describes an object or a virtual directory.
type objectInfo struct {
	name    string
	size    int64
	modTime time.Time
	mode    fs.FileMode
}

func fileInfo(name string, obj minio.ObjectInfo) *objectInfo {
	return &objectInfo{
		name:    path.Base(name),
		size:    obj.Size,
		modTime: obj.LastModified,
		mode:    objectMode,
	}
}

func dirInfo(name string) *objectInfo {
	return &objectInfo{name: path.Base(name), mode: prefixMode}
}

func (i *objectInfo) Name() string       { return i.name }
func (i *objectInfo) Size() int64        { return i.size }
func (i *objectInfo) Mode() fs.FileMode  { return i.mode }
func (i *objectInfo) ModTime() time.Time { return i.modTime }
func (i *objectInfo) IsDir() bool        { return i.mode.IsDir() }
func (i *objectInfo) Sys() any           { return nil }

// listEntry turns one non-recursive listing result below prefix into a
// directory entry. Common prefixes come back with a trailing slash. The
// prefix marker object itself yields ok == false.
func listEntry(prefix string, obj minio.ObjectInfo) (fs.DirEntry, bool) {
	rel := obj.Key[len(prefix):]
	if rel == "" || rel == "/" {
		return nil, false
	}
	if rel[len(rel)-1] == '/' {
		return fs.FileInfoToDirEntry(dirInfo(rel[:len(rel)-1])), true
	}
	return fs.FileInfoToDirEntry(fileInfo(rel, obj)), true
}

var _ fs.FileInfo = (*objectInfo)(nil)
