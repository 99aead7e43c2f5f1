// Package storage は民宿画像ファイルの保存を提供します。
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// ErrInvalidName は保存先を外れるファイル名が指定されたことを表します。
var ErrInvalidName = errors.New("storage: invalid file name")

// FileStorage はディレクトリ配下に画像を保存します。保存したファイルは /storage/<name> で配信されます。
type FileStorage struct {
	fs  afero.Fs
	dir string
}

// NewFileStorage はOSのファイルシステム上の dir を保存先とするFileStorageを生成します。
func NewFileStorage(dir string) (*FileStorage, error) {
	return newFileStorage(afero.NewOsFs(), dir)
}

func newFileStorage(fs afero.Fs, dir string) (*FileStorage, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &FileStorage{fs: fs, dir: dir}, nil
}

// Dir は保存先ディレクトリです。
func (s *FileStorage) Dir() string {
	return s.dir
}

// HTTPFileSystem は保存先をginの StaticFS で配信するための http.FileSystem を返します。
func (s *FileStorage) HTTPFileSystem() http.FileSystem {
	return afero.NewHttpFs(s.fs).Dir(s.dir)
}

// Save は r の内容を name で保存します。同名のファイルは上書きします。
func (s *FileStorage) Save(ctx context.Context, name string, r io.Reader) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := s.fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = s.fs.Remove(path)
		return fmt.Errorf("write %s: %w", name, err)
	}
	return f.Close()
}

// Open は保存済みファイルを開きます。
func (s *FileStorage) Open(name string) (afero.File, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, err
	}
	return s.fs.Open(path)
}

// Delete はファイルを削除します。存在しない場合は何もしません。
func (s *FileStorage) Delete(ctx context.Context, name string) error {
	if name == "" {
		return nil
	}
	path, err := s.path(name)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", name, err)
	}
	return nil
}

func (s *FileStorage) path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", ErrInvalidName
	}
	return filepath.Join(s.dir, name), nil
}
