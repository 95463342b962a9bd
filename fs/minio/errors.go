package minio

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/minio/minio-go/v7"
)

// translate maps S3 error responses onto io/fs sentinels so callers can
// use errors.Is regardless of the provider.
func translate(err error) error {
	if err == nil {
		return nil
	}
	for _, sentinel := range []error{fs.ErrNotExist, fs.ErrPermission, fs.ErrClosed, fs.ErrInvalid} {
		if errors.Is(err, sentinel) {
			return err
		}
	}

	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return fs.ErrNotExist
	case "AccessDenied":
		return fs.ErrPermission
	}
	return fmt.Errorf("minio: %w", err)
}

// pathErr records the failing operation and file name around a translated
// error. A nil error stays nil.
func pathErr(op, name string, err error) error {
	if err == nil {
		return nil
	}
	return &fs.PathError{Op: op, Path: name, Err: translate(err)}
}
