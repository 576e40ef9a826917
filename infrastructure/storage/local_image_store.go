// Package storage provides the local-directory image store backing recipe
// uploads. Files keep their client extension but get server-generated names;
// orphaned files from failed recipe saves are never cleaned up.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cookbook-backend/application/ports"
	pkgerrors "cookbook-backend/pkg/errors"
)

// LocalImageStore implements ports.ImageStore on a fixed local directory
type LocalImageStore struct {
	dir    string
	logger *zap.Logger
}

// NewLocalImageStore creates the store, making the directory if needed
func NewLocalImageStore(dir string, logger *zap.Logger) (*LocalImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create image directory: %w", err)
	}
	return &LocalImageStore{dir: dir, logger: logger}, nil
}

var _ ports.ImageStore = (*LocalImageStore)(nil)

// Store writes the uploaded bytes under a generated name and returns it
func (s *LocalImageStore) Store(ctx context.Context, originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	name := uuid.New().String() + ext

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", pkgerrors.NewInternalError("create image file").WithCause(err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", pkgerrors.NewInternalError("write image file").WithCause(err)
	}

	s.logger.Debug("Stored uploaded image",
		zap.String("filename", name),
		zap.String("originalName", originalName),
	)
	return name, nil
}
