package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemStorage(t *testing.T) *FileStorage {
	t.Helper()
	s, err := newFileStorage(afero.NewMemMapFs(), "/data/storage")
	require.NoError(t, err)
	return s
}

func TestFileStorage_SaveOpenDelete(t *testing.T) {
	s := newMemStorage(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "house.jpg", strings.NewReader("jpeg-bytes")))

	f, err := s.Open("house.jpg")
	require.NoError(t, err)
	b, err := io.ReadAll(f)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.Equal(t, "jpeg-bytes", string(b))

	require.NoError(t, s.Delete(ctx, "house.jpg"))
	_, err = s.Open("house.jpg")
	assert.Error(t, err)

	assert.NoError(t, s.Delete(ctx, "house.jpg"), "deleting a missing file is a no-op")
	assert.NoError(t, s.Delete(ctx, ""), "empty name is a no-op")
}

func TestFileStorage_SaveOverwrites(t *testing.T) {
	s := newMemStorage(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "a.png", strings.NewReader("first version")))
	require.NoError(t, s.Save(ctx, "a.png", strings.NewReader("v2")))

	f, err := s.Open("a.png")
	require.NoError(t, err)
	defer f.Close()
	b, _ := io.ReadAll(f)
	assert.Equal(t, "v2", string(b))
}

func TestFileStorage_RejectsPathTraversal(t *testing.T) {
	s := newMemStorage(t)

	for _, name := range []string{"../etc/passwd", "sub/dir.jpg", ".hidden", ""} {
		err := s.Save(context.Background(), name, strings.NewReader("x"))
		assert.ErrorIs(t, err, ErrInvalidName, "name %q", name)
	}
}

func TestFileStorage_CanceledContext(t *testing.T) {
	s := newMemStorage(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Save(ctx, "a.jpg", strings.NewReader("x"))

	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileStorage_HTTPFileSystem(t *testing.T) {
	s := newMemStorage(t)
	require.NoError(t, s.Save(context.Background(), "served.jpg", strings.NewReader("img")))

	f, err := s.HTTPFileSystem().Open("/served.jpg")
	require.NoError(t, err)
	defer f.Close()
	b, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "img", string(b))
}
