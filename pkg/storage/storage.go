// Package storage addresses uploaded files (blog images, avatars) by key inside a
// bucket and exposes them through public URLs.
package storage

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/url"
	"path/filepath"
	"strings"
)

// ErrEmptyKey is returned when an operation is given an empty object key.
var ErrEmptyKey = errors.New("object key cannot be empty")

// Store is one bucket of public objects.
type Store interface {
	// Put uploads the object, replacing any object stored under the same key.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error

	// Delete removes the object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// PublicURL returns the URL under which key is publicly readable.
	PublicURL(key string) string

	// KeyFromURL reverses PublicURL. ok is false when the URL does not
	// point into this bucket.
	KeyFromURL(rawURL string) (key string, ok bool)
}

// ContentTypeFor guesses the content type of key from its extension.
func ContentTypeFor(key string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(key))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// publicURL joins base, bucket and key path-style.
func publicURL(base, bucket, key string) string {
	return strings.TrimRight(base, "/") + "/" + bucket + "/" + strings.TrimLeft(key, "/")
}

// keyFromURL extracts everything after the "/<bucket>/" path segment.
func keyFromURL(bucket, rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Path == "" {
		return "", false
	}
	segments := strings.Split(strings.TrimPrefix(u.Path, "/"), "/")
	for i, seg := range segments {
		if seg == bucket && i+1 < len(segments) {
			key := strings.Join(segments[i+1:], "/")
			if key == "" {
				return "", false
			}
			return key, true
		}
	}
	return "", false
}
