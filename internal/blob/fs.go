package blob

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"slabstock/internal/pkg/errs"
)

// FilesystemStore maps keys to files under a root directory, with a JSON
// sidecar per blob for the content type. Good enough for a single-node dev
// setup; production uses the S3 driver.
type FilesystemStore struct {
	root string
}

func NewFilesystem(root string) (*FilesystemStore, error) {
	if root == "" {
		root = "./blobdata"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errs.Wrap(err, "failed to create blob root")
	}
	return &FilesystemStore{root: root}, nil
}

func (s *FilesystemStore) Driver() Driver { return DriverFilesystem }

type fsMeta struct {
	ContentType string    `json:"content_type,omitempty"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
}

func (s *FilesystemStore) pathFor(key string) (string, error) {
	if strings.TrimSpace(key) == "" || strings.Contains(key, "..") || strings.HasPrefix(key, "/") {
		return "", errs.New("invalid blob key: " + key)
	}
	return filepath.Join(s.root, filepath.FromSlash(key)), nil
}

func (s *FilesystemStore) Put(_ context.Context, key string, r io.Reader, opts PutOptions) (Info, error) {
	path, err := s.pathFor(key)
	if err != nil {
		return Info{}, err
	}
	if _, err = os.Stat(path); err == nil {
		return Info{}, errs.Mark(errs.New("key "+key), ErrAlreadyExists)
	}
	if err = os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Info{}, err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return Info{}, err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	size, err := io.Copy(tmp, r)
	if err != nil {
		_ = tmp.Close()
		return Info{}, err
	}
	if err = tmp.Close(); err != nil {
		return Info{}, err
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return Info{}, err
	}

	now := time.Now().UTC()
	meta := fsMeta{ContentType: opts.ContentType, Size: size, CreatedAt: now}
	raw, _ := json.Marshal(meta)
	if err = os.WriteFile(path+".meta", raw, 0o644); err != nil {
		return Info{}, err
	}
	return Info{Key: key, Size: size, ContentType: opts.ContentType, LastModified: now}, nil
}

func (s *FilesystemStore) Get(ctx context.Context, key string) (Info, io.ReadCloser, error) {
	info, err := s.Head(ctx, key)
	if err != nil {
		return Info{}, nil, err
	}
	path, err := s.pathFor(key)
	if err != nil {
		return Info{}, nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return Info{}, nil, ErrNotFound
	}
	return info, f, nil
}

func (s *FilesystemStore) Head(_ context.Context, key string) (Info, error) {
	path, err := s.pathFor(key)
	if err != nil {
		return Info{}, err
	}
	st, err := os.Stat(path)
	if err != nil {
		return Info{}, ErrNotFound
	}

	info := Info{Key: key, Size: st.Size(), LastModified: st.ModTime().UTC()}
	if raw, rerr := os.ReadFile(path + ".meta"); rerr == nil {
		var meta fsMeta
		if json.Unmarshal(raw, &meta) == nil {
			info.ContentType = meta.ContentType
		}
	}
	return info, nil
}

func (s *FilesystemStore) Delete(_ context.Context, key string) (bool, error) {
	path, err := s.pathFor(key)
	if err != nil {
		return false, err
	}
	if _, err = os.Stat(path); err != nil {
		return false, nil
	}
	if err = os.Remove(path); err != nil {
		return false, err
	}
	_ = os.Remove(path + ".meta")
	return true, nil
}

func (s *FilesystemStore) PresignURL(_ context.Context, _ string, _ time.Duration) (string, error) {
	return "", ErrUnsupported
}
