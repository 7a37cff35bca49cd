// AngelaMos | 2026
// local.go

package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

type Local struct {
	dir string
}

func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve upload dir: %w", err)
	}

	return &Local{dir: abs}, nil
}

func (l *Local) Save(
	ctx context.Context,
	name string,
	r io.Reader,
	size int64,
) (string, error) {
	path, err := l.resolve(name)
	if err != nil {
		return "", err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}

	written, err := io.Copy(f, r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		//nolint:errcheck // cleanup of the partial write
		_ = os.Remove(path)
		return "", fmt.Errorf("write file: %w", err)
	}

	if size >= 0 && written != size {
		//nolint:errcheck // cleanup of the partial write
		_ = os.Remove(path)
		return "", fmt.Errorf("write file: short write: %d of %d bytes", written, size)
	}

	return path, nil
}

func (l *Local) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	if err := l.contains(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("open file: %w", err)
	}
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	return f, nil
}

func (l *Local) Remove(ctx context.Context, path string) error {
	if err := l.contains(path); err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove file: %w", err)
	}

	return nil
}

func (l *Local) resolve(name string) (string, error) {
	path := filepath.Join(l.dir, filepath.Base(name))
	if err := l.contains(path); err != nil {
		return "", err
	}
	return path, nil
}

// contains rejects any path outside the upload dir so stored paths can
// never be used to reach arbitrary files.
func (l *Local) contains(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if abs != l.dir && !strings.HasPrefix(abs, l.dir+string(filepath.Separator)) {
		return fmt.Errorf("path %q escapes upload dir", path)
	}

	return nil
}
