package catalog

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/travigo/coruna-bus/pkg/ctdf"
)

type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (s *FileStore) Describe() string {
	return s.Path
}

func (s *FileStore) Load(ctx context.Context) (*ctdf.Catalog, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn().Err(err).Str("path", s.Path).Msg("Could not read catalog snapshot")
		}
		return nil, nil
	}

	catalog, err := Decode(data)
	if err != nil {
		log.Warn().Err(err).Str("path", s.Path).Msg("Ignoring invalid catalog snapshot")
		return nil, nil
	}

	return catalog, nil
}

// Save replaces the snapshot atomically through a temporary file in the same directory
func (s *FileStore) Save(ctx context.Context, catalog *ctdf.Catalog) error {
	data, err := Encode(catalog)
	if err != nil {
		return err
	}

	directory := filepath.Dir(s.Path)
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return err
	}

	temporary, err := os.CreateTemp(directory, ".catalog-*.json")
	if err != nil {
		return err
	}
	temporaryPath := temporary.Name()

	_, err = temporary.Write(data)
	if closeErr := temporary.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Chmod(temporaryPath, 0o644)
	}
	if err == nil {
		err = os.Rename(temporaryPath, s.Path)
	}
	if err != nil {
		os.Remove(temporaryPath)
		return err
	}

	return nil
}
