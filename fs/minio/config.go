// Package minio provides an S3-compatible object storage provider for the
// file manager, built on minio-go.
//
// Directories are virtual: a directory exists while at least one object key
// starts with its prefix. Mkdir and MkdirAll therefore succeed without
// writing anything, and Rename is a copy followed by a delete.
package minio

import (
	"errors"
	"fmt"

	"github.com/minio/minio-go/v7"
)

const (
	defaultPartThreshold     = 5 << 20
	defaultRenameConcurrency = 10
)

// Config holds the connection settings of a RemoteFS.
type Config struct {
	// Endpoint is the server address, e.g. "localhost:9000".
	Endpoint string

	// Bucket holds every object the filesystem manages. It must exist.
	Bucket string

	// AccessKey and SecretKey authenticate against Endpoint.
	AccessKey string
	SecretKey string

	// UseSSL selects HTTPS.
	UseSSL bool

	// Prefix namespaces every key, e.g. "users/ana". Optional.
	Prefix string

	// Client replaces Endpoint and the credentials when set.
	Client *minio.Client

	// PartThreshold is the number of bytes a write handle buffers before it
	// switches to a streaming upload. Defaults to 5 MiB.
	PartThreshold int64

	// RenameConcurrency bounds parallel copies when a directory is renamed.
	// Defaults to 10.
	RenameConcurrency int
}

// Validate reports the first missing setting. A Client makes the endpoint
// and credentials optional; the bucket is always required.
func (c Config) Validate() error {
	switch {
	case c.Bucket == "":
		return errors.New("bucket is required")
	case c.PartThreshold < 0:
		return fmt.Errorf("part threshold must not be negative, got %d", c.PartThreshold)
	case c.RenameConcurrency < 0:
		return fmt.Errorf("rename concurrency must not be negative, got %d", c.RenameConcurrency)
	}
	if c.Client != nil {
		return nil
	}

	switch {
	case c.Endpoint == "":
		return errors.New("endpoint is required when no client is given")
	case c.AccessKey == "":
		return errors.New("access key is required when no client is given")
	case c.SecretKey == "":
		return errors.New("secret key is required when no client is given")
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.PartThreshold == 0 {
		c.PartThreshold = defaultPartThreshold
	}
	if c.RenameConcurrency == 0 {
		c.RenameConcurrency = defaultRenameConcurrency
	}
	return c
}
