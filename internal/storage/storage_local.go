package storage

import (
	"io"
	"os"
	"path/filepath"

	"github.com/Xunop/book-faker/internal/log"
	"github.com/Xunop/book-faker/internal/util"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// LocalStorage writes files into a directory and never overwrites one.
type LocalStorage struct {
	// Path to the storage directory
	Path string
}

var _ Storage = (*LocalStorage)(nil)

func NewLocalStorage(path string) *LocalStorage {
	return &LocalStorage{Path: path}
}

func (s *LocalStorage) Save(name string, data []byte) (string, error) {
	if name == "" || filepath.Base(name) != name {
		return "", errors.Errorf("invalid file name %q", name)
	}
	if err := os.MkdirAll(s.Path, os.ModePerm); err != nil {
		return "", errors.Wrapf(err, "failed to create directory %s", s.Path)
	}

	filePath := util.GenerateNewFileName(filepath.Join(s.Path, name))
	// O_EXCL catches a file created between the name check and now.
	f, err := os.OpenFile(filePath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", errors.Wrapf(err, "failed to create file %s", filePath)
	}
	if err := writeAndClose(f, data); err != nil {
		return "", errors.Wrapf(err, "failed to write file %s", filePath)
	}

	log.Debug("Stored file", zap.String("path", filePath), zap.Int("size", len(data)))
	return filePath, nil
}

// writeAndClose reports a failed Close too, since that is where a full disk
// often shows up.
func writeAndClose(w io.WriteCloser, data []byte) error {
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
