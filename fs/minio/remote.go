package minio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"golang.org/x/sync/errgroup"

	"github.com/jmgilman/go/fsops/fs/core"
)

// RemoteFS implements core.FS on top of an S3-compatible bucket.
type RemoteFS struct {
	ctx               context.Context
	client            *minio.Client
	bucket            string
	keys              keyspace
	partThreshold     int64
	renameConcurrency int
}

// New connects a RemoteFS to the bucket described by cfg. The bucket is not
// created and no request is made until the first operation.
func New(cfg Config) (*RemoteFS, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg = cfg.withDefaults()

	client := cfg.Client
	if client == nil {
		var err error
		client, err = minio.New(cfg.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
			Secure: cfg.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create minio client: %w", err)
		}
	}

	return &RemoteFS{
		ctx:               context.Background(),
		client:            client,
		bucket:            cfg.Bucket,
		keys:              newKeyspace(cfg.Prefix),
		partThreshold:     cfg.PartThreshold,
		renameConcurrency: cfg.RenameConcurrency,
	}, nil
}

// WithContext returns a shallow copy whose requests use ctx.
func (r *RemoteFS) WithContext(ctx context.Context) *RemoteFS {
	c := *r
	c.ctx = ctx
	return &c
}

// Prefix returns the key prefix every name is resolved below.
func (r *RemoteFS) Prefix() string {
	return string(r.keys)
}

// Type returns core.FSTypeRemote.
func (r *RemoteFS) Type() core.FSType {
	return core.FSTypeRemote
}

// Open returns a streaming read handle supporting Seek and ReadAt.
func (r *RemoteFS) Open(name string) (fs.File, error) {
	return openObject(r.ctx, r, r.keys.key(name), name)
}

// Stat describes an object, or a virtual directory when name is a prefix of
// at least one key.
func (r *RemoteFS) Stat(name string) (fs.FileInfo, error) {
	if cleanKey(name) == "" {
		return dirInfo("."), nil
	}

	key := r.keys.key(name)

	obj, err := r.client.StatObject(r.ctx, r.bucket, key, minio.StatObjectOptions{})
	if err == nil {
		return fileInfo(name, obj), nil
	}
	if terr := translate(err); !errors.Is(terr, fs.ErrNotExist) {
		return nil, pathErr("stat", name, terr)
	}

	found, err := r.hasPrefix(r.keys.dir(name))
	if err != nil {
		return nil, pathErr("stat", name, err)
	}
	if !found {
		return nil, pathErr("stat", name, fs.ErrNotExist)
	}
	return dirInfo(name), nil
}

// hasPrefix reports whether any key starts with prefix.
func (r *RemoteFS) hasPrefix(prefix string) (bool, error) {
	ctx, cancel := context.WithCancel(r.ctx)
	defer cancel()

	for obj := range r.client.ListObjects(ctx, r.bucket, minio.ListObjectsOptions{Prefix: prefix, MaxKeys: 1}) {
		if obj.Err != nil {
			return false, obj.Err
		}
		return true, nil
	}
	return false, nil
}

// ReadDir lists the immediate children of name sorted by name. A prefix
// without keys does not exist, except for the root.
func (r *RemoteFS) ReadDir(name string) ([]fs.DirEntry, error) {
	prefix := r.keys.dir(name)

	var entries []fs.DirEntry
	for obj := range r.client.ListObjects(r.ctx, r.bucket, minio.ListObjectsOptions{Prefix: prefix}) {
		if obj.Err != nil {
			return nil, pathErr("readdir", name, obj.Err)
		}
		if entry, ok := listEntry(prefix, obj); ok {
			entries = append(entries, entry)
		}
	}

	if len(entries) == 0 && cleanKey(name) != "" {
		return nil, pathErr("readdir", name, fs.ErrNotExist)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	return entries, nil
}

// ReadFile downloads the whole object.
func (r *RemoteFS) ReadFile(name string) ([]byte, error) {
	f, err := openObject(r.ctx, r, r.keys.key(name), name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	buf := make([]byte, f.info.Size)
	if _, err := io.ReadFull(f.obj, buf); err != nil {
		return nil, pathErr("readfile", name, err)
	}
	return buf, nil
}

// Exists reports whether name is an object or a non-empty prefix.
func (r *RemoteFS) Exists(name string) (bool, error) {
	_, err := r.Stat(name)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

// Readable reports whether name is an object the credentials can fetch.
func (r *RemoteFS) Readable(name string) (bool, error) {
	_, err := r.client.StatObject(r.ctx, r.bucket, r.keys.key(name), minio.StatObjectOptions{})
	return accessResult(err)
}

// Writable reports whether name is an existing object. Object storage has
// no per-object write bits; bucket policy failures surface on upload.
func (r *RemoteFS) Writable(name string) (bool, error) {
	return r.Readable(name)
}

func accessResult(err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	err = translate(err)
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return false, nil
	}
	return false, err
}

// Create returns a write handle. The object is replaced when the handle is
// closed.
func (r *RemoteFS) Create(name string) (core.File, error) {
	return newObjectWriter(r, r.keys.key(name), name), nil
}

// OpenFile accepts O_RDONLY, or O_WRONLY combined with O_CREATE and
// O_TRUNC. O_RDWR, O_APPEND, O_EXCL and O_SYNC have no object storage
// equivalent and fail with core.ErrUnsupported.
func (r *RemoteFS) OpenFile(name string, flag int, _ fs.FileMode) (core.File, error) {
	for _, f := range []struct {
		bit  int
		name string
	}{
		{os.O_RDWR, "O_RDWR"},
		{os.O_APPEND, "O_APPEND"},
		{os.O_EXCL, "O_EXCL"},
		{os.O_SYNC, "O_SYNC"},
	} {
		if flag&f.bit != 0 {
			return nil, core.Unsupported("open", name, f.name)
		}
	}

	key := r.keys.key(name)
	if flag&(os.O_WRONLY|os.O_CREATE|os.O_TRUNC) != 0 {
		return newObjectWriter(r, key, name), nil
	}
	return openObject(r.ctx, r, key, name)
}

// WriteFile uploads data, replacing any existing object.
func (r *RemoteFS) WriteFile(name string, data []byte, _ fs.FileMode) error {
	f := newObjectWriter(r, r.keys.key(name), name)
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Mkdir succeeds without a request. Directories come into being with their
// first object.
func (r *RemoteFS) Mkdir(_ string, _ fs.FileMode) error {
	return nil
}

// MkdirAll succeeds without a request.
func (r *RemoteFS) MkdirAll(_ string, _ fs.FileMode) error {
	return nil
}

// Remove deletes a single object. Deleting a missing key succeeds.
func (r *RemoteFS) Remove(name string) error {
	err := r.client.RemoveObject(r.ctx, r.bucket, r.keys.key(name), minio.RemoveObjectOptions{})
	return pathErr("remove", name, err)
}

// RemoveAll deletes every key below name in batches.
func (r *RemoteFS) RemoveAll(name string) error {
	prefix := r.keys.dir(name)
	ctx, cancel := context.WithCancel(r.ctx)
	defer cancel()

	var listErr error
	victims := make(chan minio.ObjectInfo, 100)
	go func() {
		defer close(victims)
		for obj := range r.client.ListObjects(ctx, r.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
			if obj.Err != nil {
				listErr = obj.Err
				return
			}
			select {
			case victims <- obj:
			case <-ctx.Done():
				return
			}
		}
	}()

	var firstErr error
	for res := range r.client.RemoveObjects(ctx, r.bucket, victims, minio.RemoveObjectsOptions{}) {
		if res.Err != nil && firstErr == nil {
			firstErr = res.Err
		}
	}
	if listErr != nil {
		return pathErr("removeall", name, listErr)
	}
	return pathErr("removeall", name, firstErr)
}

// Rename copies oldpath to newpath and deletes the source. A directory is
// copied object by object with bounded parallelism before the originals are
// removed in one batch.
//
// Rename is not atomic. A failed copy leaves the source intact and may
// leave partial copies; a failed delete leaves both.
func (r *RemoteFS) Rename(oldpath, newpath string) error {
	info, err := r.Stat(oldpath)
	if err != nil {
		return err
	}

	if !info.IsDir() {
		if err := r.copyObject(r.ctx, r.keys.key(oldpath), r.keys.key(newpath)); err != nil {
			return pathErr("rename", oldpath, err)
		}
		return pathErr("rename", oldpath,
			r.client.RemoveObject(r.ctx, r.bucket, r.keys.key(oldpath), minio.RemoveObjectOptions{}))
	}

	copied, err := r.copyPrefix(r.keys.dir(oldpath), r.keys.dir(newpath))
	if err != nil {
		return pathErr("rename", oldpath, err)
	}

	victims := make(chan minio.ObjectInfo, len(copied))
	for _, key := range copied {
		victims <- minio.ObjectInfo{Key: key}
	}
	close(victims)

	for res := range r.client.RemoveObjects(r.ctx, r.bucket, victims, minio.RemoveObjectsOptions{}) {
		if res.Err != nil {
			return pathErr("rename", oldpath, res.Err)
		}
	}
	return nil
}

func (r *RemoteFS) copyObject(ctx context.Context, from, to string) error {
	_, err := r.client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: r.bucket, Object: to},
		minio.CopySrcOptions{Bucket: r.bucket, Object: from},
	)
	return err
}

// copyPrefix copies every key below from to the same relative key below to
// and returns the source keys that were copied.
func (r *RemoteFS) copyPrefix(from, to string) ([]string, error) {
	eg, ctx := errgroup.WithContext(r.ctx)
	eg.SetLimit(r.renameConcurrency)

	var (
		mu     sync.Mutex
		copied []string
	)
	for obj := range r.client.ListObjects(ctx, r.bucket, minio.ListObjectsOptions{Prefix: from, Recursive: true}) {
		if obj.Err != nil {
			_ = eg.Wait()
			return nil, obj.Err
		}
		key := obj.Key
		eg.Go(func() error {
			if err := r.copyObject(ctx, key, to+strings.TrimPrefix(key, from)); err != nil {
				return fmt.Errorf("copy %s: %w", key, err)
			}
			mu.Lock()
			copied = append(copied, key)
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return copied, nil
}

// Walk visits root and everything below it in lexical order.
func (r *RemoteFS) Walk(root string, walkFn fs.WalkDirFunc) error {
	info, err := r.Stat(root)
	if err != nil {
		return walkFn(root, nil, err)
	}
	err = r.walk(root, fs.FileInfoToDirEntry(info), walkFn)
	if errors.Is(err, fs.SkipDir) || errors.Is(err, fs.SkipAll) {
		return nil
	}
	return err
}

func (r *RemoteFS) walk(name string, d fs.DirEntry, walkFn fs.WalkDirFunc) error {
	if err := walkFn(name, d, nil); err != nil || !d.IsDir() {
		if errors.Is(err, fs.SkipDir) && d.IsDir() {
			return nil
		}
		return err
	}

	entries, err := r.ReadDir(name)
	if err != nil {
		err = walkFn(name, d, err)
		if errors.Is(err, fs.SkipDir) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if err := r.walk(path.Join(name, entry.Name()), entry, walkFn); err != nil {
			if errors.Is(err, fs.SkipDir) && !entry.IsDir() {
				return nil
			}
			return err
		}
	}
	return nil
}

// Chroot returns a RemoteFS whose keys live below dir. The prefix does not
// need to exist yet.
func (r *RemoteFS) Chroot(dir string) (core.FS, error) {
	c := *r
	c.keys = r.keys.sub(dir)
	return &c, nil
}

var (
	_ core.FS       = (*RemoteFS)(nil)
	_ core.AccessFS = (*RemoteFS)(nil)
)
