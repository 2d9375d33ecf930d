package blob

import (
	"context"
	"io"
	"time"

	"slabstock/internal/pkg/errs"
)

// Driver identifies a concrete blob storage backend.
type Driver string

const (
	DriverMemory     Driver = "memory" // in-process, tests
	DriverFilesystem Driver = "fs"     // local filesystem, dev
	DriverS3         Driver = "s3"     // S3 / MinIO compatible
)

type PutOptions struct {
	ContentType string
}

type Info struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
}

// Store holds lot photo payloads. Keys are opaque to callers; the photo
// repository persists them alongside the photo row.
type Store interface {
	// Put stores a new blob at key. Fails if the key already exists.
	Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Info, error)
	Get(ctx context.Context, key string) (Info, io.ReadCloser, error)
	Head(ctx context.Context, key string) (Info, error)
	// Delete removes a blob. Returns false when the key did not exist.
	Delete(ctx context.Context, key string) (bool, error)
	// PresignURL returns a time-limited GET URL for the key. Drivers without
	// presigning return ErrUnsupported.
	PresignURL(ctx context.Context, key string, expiry time.Duration) (string, error)
	Driver() Driver
}

var (
	ErrNotFound      = errs.New("blob not found")
	ErrAlreadyExists = errs.New("blob already exists")
	ErrUnsupported   = errs.New("operation not supported by blob driver")
)
