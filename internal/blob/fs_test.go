//go:build unit

package blob

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilesystemStore(t *testing.T) {
	ctx := context.Background()

	newStore := func(t *testing.T) *FilesystemStore {
		t.Helper()
		s, err := NewFilesystem(filepath.Join(t.TempDir(), "blobs"))
		require.NoError(t, err)
		return s
	}

	t.Run("put then get round-trips through the filesystem", func(t *testing.T) {
		s := newStore(t)
		payload := []byte("slab face photo")

		info, err := s.Put(ctx, "lots/a/1", bytes.NewReader(payload), PutOptions{ContentType: "image/jpeg"})
		require.NoError(t, err)
		assert.Equal(t, int64(len(payload)), info.Size)

		got, rc, err := s.Get(ctx, "lots/a/1")
		require.NoError(t, err)
		defer func() { _ = rc.Close() }()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, payload, data)
		assert.Equal(t, "image/jpeg", got.ContentType, "content type survives via the sidecar")
	})

	t.Run("put is create-only", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Put(ctx, "k", bytes.NewReader([]byte("a")), PutOptions{})
		require.NoError(t, err)

		_, err = s.Put(ctx, "k", bytes.NewReader([]byte("b")), PutOptions{})
		assert.ErrorIs(t, err, ErrAlreadyExists)
	})

	t.Run("path traversal keys are rejected", func(t *testing.T) {
		s := newStore(t)
		for _, key := range []string{"", "  ", "../outside", "a/../../etc/passwd", "/absolute"} {
			_, err := s.Put(ctx, key, bytes.NewReader([]byte("x")), PutOptions{})
			assert.Error(t, err, "key %q", key)
		}
	})

	t.Run("delete removes blob and sidecar", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Put(ctx, "lots/a/1", bytes.NewReader([]byte("x")), PutOptions{ContentType: "image/png"})
		require.NoError(t, err)

		ok, err := s.Delete(ctx, "lots/a/1")
		require.NoError(t, err)
		assert.True(t, ok)

		_, err = s.Head(ctx, "lots/a/1")
		assert.ErrorIs(t, err, ErrNotFound)

		ok, err = s.Delete(ctx, "lots/a/1")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("no presigning", func(t *testing.T) {
		s := newStore(t)
		_, err := s.PresignURL(ctx, "k", time.Minute)
		assert.ErrorIs(t, err, ErrUnsupported)
	})
}
