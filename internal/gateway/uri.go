package gateway

import (
	"fmt"
	"strings"
)

// Artifact URI schemes understood by the stores of this package.
const (
	schemeFile   = "file://"
	schemeMemory = "mem://"
	schemeGCS    = "gs://"
	schemeS3     = "s3://"
)

// ParseObjectURI splits a bucket URI such as gs://bucket/path/to/object into
// bucket and object key.
func ParseObjectURI(uri, scheme string) (bucket, key string, err error) {
	if !strings.HasPrefix(uri, scheme) {
		return "", "", fmt.Errorf("invalid URI %s: expected %s scheme", uri, scheme)
	}
	parts := strings.SplitN(strings.TrimPrefix(uri, scheme), "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid URI %s: no object path", uri)
	}
	return parts[0], parts[1], nil
}

// objectKey joins a store prefix and a run-scoped artifact name.
func objectKey(prefix, name string) string {
	prefix = strings.Trim(prefix, "/")
	name = strings.TrimLeft(name, "/")
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}

func validArtifactName(name string) error {
	if name == "" {
		return fmt.Errorf("artifact name is required")
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return fmt.Errorf("artifact name %q escapes the store", name)
		}
	}
	return nil
}
