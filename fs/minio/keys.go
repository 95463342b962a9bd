package minio

import (
	"path"
	"strings"
)

// keyspace maps slash-separated file names onto object keys below a fixed
// prefix. The zero value is the bucket root.
type keyspace string

func newKeyspace(prefix string) keyspace {
	return keyspace(cleanKey(prefix))
}

// cleanKey normalizes name into a relative object key. Backslashes become
// slashes and ".." cannot climb above the root. The root itself is "".
func cleanKey(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	return strings.TrimPrefix(path.Clean("/"+name), "/")
}

// key returns the object key for name.
func (k keyspace) key(name string) string {
	rel := cleanKey(name)
	switch {
	case k == "":
		return rel
	case rel == "":
		return string(k)
	default:
		return string(k) + "/" + rel
	}
}

// dir returns the listing prefix for the directory name. The root of an
// unprefixed keyspace lists with "".
func (k keyspace) dir(name string) string {
	key := k.key(name)
	if key == "" {
		return ""
	}
	return key + "/"
}

// sub returns the keyspace rooted at name.
func (k keyspace) sub(name string) keyspace {
	return keyspace(k.key(name))
}
