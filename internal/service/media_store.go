package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrMediaStore 表示媒体存储调用失败。
var ErrMediaStore = errors.New("media store operation failed")

// StoredObject describes a persisted media object.
type StoredObject struct {
	URL      string
	ObjectID string
}

// MediaStore is the port to the external image hosting backend.
// The catalog only keeps object ids; the store owns the bytes.
type MediaStore interface {
	Store(ctx context.Context, data []byte, namespace string) (StoredObject, error)
	Remove(ctx context.Context, objectID string) error
}

// DiskMediaStore keeps media on the local filesystem and serves it from a
// static URL path.
type DiskMediaStore struct {
	dir     string
	urlPath string
}

// NewDiskMediaStore creates a DiskMediaStore rooted at dir, publicly reachable
// under urlPath.
func NewDiskMediaStore(dir, urlPath string) *DiskMediaStore {
	return &DiskMediaStore{
		dir:     strings.TrimSpace(dir),
		urlPath: strings.TrimRight(strings.TrimSpace(urlPath), "/"),
	}
}

// Store writes the image bytes under a namespaced, uuid-based file name.
func (s *DiskMediaStore) Store(ctx context.Context, data []byte, namespace string) (StoredObject, error) {
	if err := ctx.Err(); err != nil {
		return StoredObject{}, fmt.Errorf("%w: %v", ErrMediaStore, err)
	}
	if len(data) == 0 {
		return StoredObject{}, fmt.Errorf("%w: empty payload", ErrMediaStore)
	}

	namespace = sanitizeNamespace(namespace)
	targetDir := filepath.Join(s.dir, filepath.FromSlash(namespace))
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return StoredObject{}, fmt.Errorf("%w: %v", ErrMediaStore, err)
	}

	// 生成唯一文件名
	name := fmt.Sprintf("%s-%s%s", time.Now().Format("20060102"), uuid.New().String(), detectExt(data))
	if err := os.WriteFile(filepath.Join(targetDir, name), data, 0o644); err != nil {
		return StoredObject{}, fmt.Errorf("%w: %v", ErrMediaStore, err)
	}

	objectID := path.Join(namespace, name)
	return StoredObject{
		URL:      s.urlPath + "/" + objectID,
		ObjectID: objectID,
	}, nil
}

// Remove deletes a stored object. Removing an object that is already gone is
// treated as success so the call stays retryable.
func (s *DiskMediaStore) Remove(ctx context.Context, objectID string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrMediaStore, err)
	}

	cleaned := sanitizeNamespace(objectID)
	if cleaned == "" {
		return fmt.Errorf("%w: empty object id", ErrMediaStore)
	}

	err := os.Remove(filepath.Join(s.dir, filepath.FromSlash(cleaned)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: %v", ErrMediaStore, err)
	}
	return nil
}

// sanitizeNamespace 过滤路径穿越字符，仅保留安全的相对路径段。
func sanitizeNamespace(raw string) string {
	segments := strings.Split(strings.Trim(path.Clean("/"+strings.TrimSpace(raw)), "/"), "/")
	kept := segments[:0]
	for _, segment := range segments {
		if segment == "" || segment == "." || segment == ".." {
			continue
		}
		kept = append(kept, segment)
	}
	return strings.Join(kept, "/")
}

func detectExt(data []byte) string {
	switch {
	case len(data) >= 8 && string(data[:8]) == "\x89PNG\r\n\x1a\n":
		return ".png"
	case len(data) >= 3 && data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF:
		return ".jpg"
	case len(data) >= 6 && (string(data[:6]) == "GIF87a" || string(data[:6]) == "GIF89a"):
		return ".gif"
	case len(data) >= 12 && string(data[:4]) == "RIFF" && string(data[8:12]) == "WEBP":
		return ".webp"
	default:
		return ".img"
	}
}
