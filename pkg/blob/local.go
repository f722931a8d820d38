package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path"
	"path/filepath"
)

// LocalStore keeps objects as files under a base directory.
type LocalStore struct {
	baseDir string
}

// NewLocalStore creates baseDir when missing.
func NewLocalStore(baseDir string) (*LocalStore, error) {
	if baseDir == "" {
		return nil, ErrInvalidConfig
	}
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("blob: create base directory: %w", err)
	}
	return &LocalStore{baseDir: abs}, nil
}

func (s *LocalStore) path(key string) (string, string, error) {
	key, err := CleanKey(key)
	if err != nil {
		return "", "", err
	}
	return key, filepath.Join(s.baseDir, filepath.FromSlash(key)), nil
}

// Put writes r to a temporary file next to the target and renames it into
// place, so readers never observe a partial object.
func (s *LocalStore) Put(ctx context.Context, key string, r io.Reader, contentType string) (Object, error) {
	if r == nil {
		return Object{}, ErrNilReader
	}
	key, target, err := s.path(key)
	if err != nil {
		return Object{}, err
	}
	if err := ctx.Err(); err != nil {
		return Object{}, err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return Object{}, fmt.Errorf("blob: create directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".upload-*")
	if err != nil {
		return Object{}, fmt.Errorf("blob: create file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	size, err := io.Copy(tmp, ctxReader{ctx: ctx, r: r})
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return Object{}, fmt.Errorf("blob: write %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return Object{}, fmt.Errorf("blob: write %s: %w", key, err)
	}

	if contentType == "" {
		contentType = contentTypeOf(key)
	}
	return Object{Key: key, Size: size, ContentType: contentType}, nil
}

func (s *LocalStore) Get(ctx context.Context, key string) (Object, io.ReadCloser, error) {
	key, target, err := s.path(key)
	if err != nil {
		return Object{}, nil, err
	}
	if err := ctx.Err(); err != nil {
		return Object{}, nil, err
	}
	f, err := os.Open(target)
	if err != nil {
		return Object{}, nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return Object{}, nil, err
	}
	if info.IsDir() {
		_ = f.Close()
		return Object{}, nil, &os.PathError{Op: "open", Path: target, Err: os.ErrNotExist}
	}
	return Object{Key: key, Size: info.Size(), ContentType: contentTypeOf(key)}, f, nil
}

// Delete removes the object. Deleting a missing object is not an error.
func (s *LocalStore) Delete(ctx context.Context, key string) error {
	_, target, err := s.path(key)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func contentTypeOf(key string) string {
	if ct := mime.TypeByExtension(path.Ext(key)); ct != "" {
		return ct
	}
	return DefaultContentType
}

// ctxReader stops copying once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
