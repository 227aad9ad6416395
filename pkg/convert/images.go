package convert

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/yaklabco/md2docx/pkg/fsutil"
)

// Image source errors. Both are absorbed into placeholder text.
var (
	// ErrRemoteImage indicates a network image source; nothing is fetched.
	ErrRemoteImage = errors.New("remote image not fetched")

	// ErrDataURI indicates a malformed data URI.
	ErrDataURI = errors.New("invalid data URI")
)

// placeholderFormat is the text shown in place of an image that could not be embedded.
const placeholderFormat = "[Image not found: %s]"

// imageLoader returns the bytes of an image source.
type imageLoader func(src string) ([]byte, error)

// newImageLoader resolves relative sources against baseDir.
func newImageLoader(ctx context.Context, baseDir string) imageLoader {
	return func(src string) ([]byte, error) {
		return loadImage(ctx, baseDir, src)
	}
}

func loadImage(ctx context.Context, baseDir, src string) ([]byte, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, fmt.Errorf("%w: empty image source", fsutil.ErrNotFound)
	}

	if strings.HasPrefix(src, "data:") {
		return decodeDataURI(src)
	}

	// A one-letter scheme is a Windows drive letter.
	if u, err := url.Parse(src); err == nil && len(u.Scheme) > 1 {
		if u.Scheme != "file" {
			return nil, fmt.Errorf("%w: %s", ErrRemoteImage, src)
		}
		src = u.Path
	}

	path := filepath.FromSlash(src)
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}

	data, _, err := fsutil.ReadFile(ctx, path)
	if errors.Is(err, fsutil.ErrNotFound) {
		// Markdown sources often percent-encode spaces.
		if unescaped, uerr := url.PathUnescape(path); uerr == nil && unescaped != path {
			data, _, err = fsutil.ReadFile(ctx, unescaped)
		}
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// decodeDataURI returns the payload of a "data:[<mediatype>][;base64],<data>" URI.
func decodeDataURI(uri string) ([]byte, error) {
	header, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok {
		return nil, fmt.Errorf("%w: missing payload", ErrDataURI)
	}

	if strings.HasSuffix(header, ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDataURI, err)
		}
		return data, nil
	}

	data, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataURI, err)
	}
	return []byte(data), nil
}

// placeholder returns the text shown for alt, or for src when alt is empty.
func placeholder(alt, src string) string {
	label := strings.TrimSpace(alt)
	if label == "" {
		label = src
	}
	return fmt.Sprintf(placeholderFormat, label)
}
