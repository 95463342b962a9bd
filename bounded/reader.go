package bounded

import (
	"bytes"
	stderrors "errors"
	"io"
	"io/fs"
	"log/slog"

	"github.com/jmgilman/go/fsops/errors"
	"github.com/jmgilman/go/fsops/fs/core"
)

// ReasonReadFailed is the reason carried by every report ReadBytes returns.
const ReasonReadFailed = "Error during read file."

var (
	// ErrInvalidRange is wrapped when length or offset is negative.
	ErrInvalidRange = stderrors.New("negative length or offset")

	// ErrInvalidUTF8 is wrapped when the window is not valid UTF-8 and the
	// policy is DecodeStrict.
	ErrInvalidUTF8 = stderrors.New("window is not valid UTF-8")
)

// Reader performs bounded reads against a filesystem.
// A Reader is safe for concurrent use if its filesystem is.
type Reader struct {
	fsys   core.ReadFS
	policy DecodePolicy
	logger *slog.Logger
}

// Option configures a Reader.
type Option func(*Reader)

// WithDecodePolicy sets how invalid UTF-8 is handled. Defaults to DecodeStrict.
func WithDecodePolicy(p DecodePolicy) Option {
	return func(r *Reader) {
		r.policy = p
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Reader) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates a Reader over fsys.
func New(fsys core.ReadFS, opts ...Option) *Reader {
	r := &Reader{
		fsys:   fsys,
		policy: DecodeStrict,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ReadBytes reads length bytes starting at offset from fsys using a Reader
// with default options.
func ReadBytes(fsys core.ReadFS, name string, length, offset int64) (string, bool, error) {
	return New(fsys).ReadBytes(name, length, offset)
}

// Policy returns the decode policy in effect.
func (r *Reader) Policy() DecodePolicy {
	return r.policy
}

// ReadBytes reads exactly length bytes of name starting at offset and
// decodes them as UTF-8.
//
// It returns ok == false with a nil error when the window extends past the
// end of the file. A zero length at any offset up to the file size yields
// ("", true, nil). All errors are errors.Report values of category Read.
func (r *Reader) ReadBytes(name string, length, offset int64) (text string, ok bool, err error) {
	log := r.logger.With("path", name, "length", length, "offset", offset)

	f, err := r.fsys.Open(name)
	if err != nil {
		return "", false, r.report(errors.WrapHere(err, errors.CategoryRead, ReasonReadFailed), name, length, offset)
	}
	defer func() {
		cerr := f.Close()
		if cerr == nil {
			return
		}
		log.Warn("failed to close file", "error", cerr)
		if err == nil {
			text, ok = "", false
			err = r.report(errors.WrapHere(cerr, errors.CategoryRead, ReasonReadFailed), name, length, offset)
		}
	}()

	src, total, err := measure(f)
	if err != nil {
		return "", false, r.report(errors.WrapHere(err, errors.CategoryRead, ReasonReadFailed), name, length, offset)
	}

	if length < 0 || offset < 0 {
		return "", false, r.report(errors.WrapHere(ErrInvalidRange, errors.CategoryRead, ReasonReadFailed), name, length, offset)
	}
	// offset+length may overflow, so compare against the remaining bytes.
	if offset > total || length > total-offset {
		log.Debug("cannot read out of bounds", "size", total)
		return "", false, nil
	}

	buf, err := readWindow(src, length, offset)
	if err != nil {
		return "", false, r.report(errors.WrapHere(err, errors.CategoryRead, ReasonReadFailed), name, length, offset)
	}

	text, err = Decode(buf, r.policy)
	if err != nil {
		return "", false, r.report(errors.WrapHere(err, errors.CategoryRead, ReasonReadFailed), name, length, offset)
	}

	log.Debug("finished reading file")
	return text, true, nil
}

func (r *Reader) report(err errors.Report, name string, length, offset int64) errors.Report {
	return errors.WithContextMap(err, map[string]interface{}{
		"path":   name,
		"length": length,
		"offset": offset,
	})
}

// measure returns the total size of f and the source to read the window
// from. Files that cannot stat are read in full; the window is then served
// from the buffered copy, so the consumed cursor never matters.
func measure(f fs.File) (fs.File, int64, error) {
	info, err := f.Stat()
	if err == nil && info.Mode().IsRegular() {
		return f, info.Size(), nil
	}
	if err == nil && info.IsDir() {
		return nil, 0, &fs.PathError{Op: "read", Path: info.Name(), Err: stderrors.New("is a directory")}
	}

	data, rerr := io.ReadAll(f)
	if rerr != nil {
		return nil, 0, rerr
	}
	return &buffered{Reader: bytes.NewReader(data), file: f}, int64(len(data)), nil
}

// readWindow positions src at offset and reads exactly length bytes.
func readWindow(src fs.File, length, offset int64) ([]byte, error) {
	buf := make([]byte, length)

	switch s := src.(type) {
	case io.Seeker:
		if _, err := s.Seek(offset, io.SeekStart); err != nil {
			return nil, err
		}
		if _, err := io.ReadFull(src, buf); err != nil {
			return nil, err
		}
	case io.ReaderAt:
		if _, err := io.ReadFull(io.NewSectionReader(s, offset, length), buf); err != nil {
			return nil, err
		}
	default:
		if _, err := io.CopyN(io.Discard, src, offset); err != nil {
			return nil, err
		}
		if _, err := io.ReadFull(src, buf); err != nil {
			return nil, err
		}
	}
	return buf, nil
}

// buffered serves reads from an in-memory copy of a file. Close is a no-op;
// the underlying file is closed by ReadBytes.
type buffered struct {
	*bytes.Reader
	file fs.File
}

func (b *buffered) Stat() (fs.FileInfo, error) { return b.file.Stat() }
func (b *buffered) Close() error               { return nil }
