package minio

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"path"
	"time"

	"github.com/minio/minio-go/v7"

	"github.com/jmgilman/go/fsops/fs/core"
)

// objectReader is a read handle over a single object. Reads stream from the
// server; Seek and ReadAt issue ranged requests through minio.Object.
type objectReader struct {
	obj    *minio.Object
	info   minio.ObjectInfo
	name   string
	closed bool
}

// openObject fetches the metadata of key and returns a handle positioned at
// the start of the object. A missing key fails here rather than on the
// first Read.
func openObject(ctx context.Context, r *RemoteFS, key, name string) (*objectReader, error) {
	obj, err := r.client.GetObject(ctx, r.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, pathErr("open", name, err)
	}
	info, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		return nil, pathErr("open", name, err)
	}
	return &objectReader{obj: obj, info: info, name: name}, nil
}

func (f *objectReader) Read(p []byte) (int, error) {
	if f.closed {
		return 0, pathErr("read", f.name, fs.ErrClosed)
	}
	n, err := f.obj.Read(p)
	if err != nil && err != io.EOF {
		return n, pathErr("read", f.name, err)
	}
	return n, err
}

// ReadAt does not move the read position. Short reads end with io.EOF.
func (f *objectReader) ReadAt(p []byte, off int64) (int, error) {
	if f.closed {
		return 0, pathErr("readat", f.name, fs.ErrClosed)
	}
	if off < 0 {
		return 0, pathErr("readat", f.name, fs.ErrInvalid)
	}
	if off >= f.info.Size {
		return 0, io.EOF
	}
	n, err := f.obj.ReadAt(p, off)
	if err != nil && err != io.EOF {
		return n, pathErr("readat", f.name, err)
	}
	return n, err
}

func (f *objectReader) Seek(offset int64, whence int) (int64, error) {
	if f.closed {
		return 0, pathErr("seek", f.name, fs.ErrClosed)
	}
	pos, err := f.obj.Seek(offset, whence)
	if err != nil {
		return pos, pathErr("seek", f.name, fs.ErrInvalid)
	}
	return pos, nil
}

func (f *objectReader) Stat() (fs.FileInfo, error) {
	return fileInfo(f.name, f.info), nil
}

func (f *objectReader) Name() string {
	return f.name
}

func (f *objectReader) Write(_ []byte) (int, error) {
	return 0, pathErr("write", f.name, fs.ErrInvalid)
}

// Close is idempotent.
func (f *objectReader) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	return f.obj.Close()
}

// objectWriter is a write handle. Small payloads are buffered and uploaded
// in one request on Sync or Close. Once the buffer would exceed the part
// threshold the handle switches to a streaming upload fed through a pipe.
type objectWriter struct {
	fs      *RemoteFS
	key     string
	name    string
	buf     *bytes.Buffer
	pipe    *io.PipeWriter
	done    chan error
	written int64
	closed  bool
}

func newObjectWriter(r *RemoteFS, key, name string) *objectWriter {
	return &objectWriter{fs: r, key: key, name: name, buf: new(bytes.Buffer)}
}

func (f *objectWriter) Write(p []byte) (int, error) {
	if f.closed {
		return 0, pathErr("write", f.name, fs.ErrClosed)
	}

	var (
		n   int
		err error
	)
	switch {
	case f.pipe != nil:
		n, err = f.pipe.Write(p)
	case f.fs.client == nil || int64(f.buf.Len()+len(p)) <= f.fs.partThreshold:
		n, err = f.buf.Write(p)
	default:
		n, err = f.stream(p)
	}
	f.written += int64(n)
	return n, pathErr("write", f.name, err)
}

// stream starts the background upload, flushes the buffered prefix into it
// and then writes p.
//
//nolint:contextcheck // io.Writer has no context; the upload follows the filesystem context
func (f *objectWriter) stream(p []byte) (int, error) {
	pr, pw := io.Pipe()
	f.pipe = pw
	f.done = make(chan error, 1)

	go func() {
		_, err := f.fs.client.PutObject(f.fs.ctx, f.fs.bucket, f.key, pr, -1, putOptions())
		_ = pr.CloseWithError(err)
		f.done <- err
		close(f.done)
	}()

	if f.buf.Len() > 0 {
		if _, err := pw.Write(f.buf.Bytes()); err != nil {
			return 0, err
		}
	}
	f.buf = nil
	return pw.Write(p)
}

// Sync uploads the buffered content. A streaming handle has nothing to
// flush until Close.
func (f *objectWriter) Sync() error {
	if f.closed || f.pipe != nil {
		return nil
	}
	return f.upload()
}

func (f *objectWriter) upload() error {
	_, err := f.fs.client.PutObject(f.fs.ctx, f.fs.bucket, f.key,
		bytes.NewReader(f.buf.Bytes()), int64(f.buf.Len()), putOptions())
	return pathErr("sync", f.name, err)
}

// Close completes the upload. It is idempotent.
func (f *objectWriter) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true

	if f.pipe == nil {
		return f.upload()
	}
	_ = f.pipe.Close()
	return pathErr("close", f.name, <-f.done)
}

// Stat reports the bytes written so far.
func (f *objectWriter) Stat() (fs.FileInfo, error) {
	return &objectInfo{name: path.Base(f.name), size: f.written, modTime: time.Now(), mode: objectMode}, nil
}

func (f *objectWriter) Read(_ []byte) (int, error) {
	return 0, pathErr("read", f.name, fs.ErrInvalid)
}

func (f *objectWriter) Name() string {
	return f.name
}

func putOptions() minio.PutObjectOptions {
	return minio.PutObjectOptions{ContentType: "application/octet-stream"}
}

var (
	_ core.File   = (*objectReader)(nil)
	_ io.Seeker   = (*objectReader)(nil)
	_ io.ReaderAt = (*objectReader)(nil)
	_ core.File   = (*objectWriter)(nil)
	_ core.Syncer = (*objectWriter)(nil)
)
