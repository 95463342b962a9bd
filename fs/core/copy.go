package core

import (
	"io"
	"io/fs"
	"path"
)

// CopyFile copies the file at from in src to the path to in dst, creating
// missing parent directories in dst. The source permission bits are
// preserved. An existing destination is truncated.
//
// Source and destination may be the same filesystem.
//
//	err := core.CopyFile(local, local, "Documents/karma.txt", "Library/karma.txt1")
func CopyFile(src ReadFS, dst WriteFS, from, to string) (err error) {
	in, err := src.Open(from)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := in.Close(); err == nil {
			err = cerr
		}
	}()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	if info.IsDir() {
		return Unsupported("copy", from, "source is a directory")
	}

	if dir := path.Dir(to); dir != "." && dir != "" && dir != "/" {
		if err := dst.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	out, err := dst.OpenFile(to, writeFlags, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// CopyTree copies every regular file below srcRoot in src into dst,
// preserving the relative directory structure. Use "." to copy everything.
//
// src may be any fs.FS, typically an embed.FS.
func CopyTree(src fs.FS, dst WriteFS, srcRoot string) error {
	return fs.WalkDir(src, srcRoot, func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		data, err := fs.ReadFile(src, filePath)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}

		dstPath := filePath
		if srcRoot != "." && srcRoot != "" {
			rel, relErr := relPath(srcRoot, filePath)
			if relErr != nil {
				return relErr
			}
			dstPath = rel
		}

		if dir := path.Dir(dstPath); dir != "." && dir != "" {
			if err := dst.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		return dst.WriteFile(dstPath, data, info.Mode().Perm())
	})
}

func relPath(root, p string) (string, error) {
	root = path.Clean(root)
	p = path.Clean(p)
	if len(p) <= len(root) || p[:len(root)] != root || p[len(root)] != '/' {
		return "", &fs.PathError{Op: "copy", Path: p, Err: fs.ErrInvalid}
	}
	return p[len(root)+1:], nil
}
