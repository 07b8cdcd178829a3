package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store persists uploaded images on the local file system, one subdirectory
// per category ("house", "apartment").
type Store struct {
	baseDir string
}

func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Save writes the file under a collision-free name and returns the stored
// reference (category-relative path).
func (s *Store) Save(data []byte, originalName, category string) (string, error) {
	dir := filepath.Join(s.baseDir, category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create image dir: %w", err)
	}

	name := uuid.New().String() + strings.ToLower(filepath.Ext(originalName))
	stored := filepath.Join(category, name)
	if err := os.WriteFile(filepath.Join(s.baseDir, stored), data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return stored, nil
}

// Delete removes a stored file. Missing references are not an error.
func (s *Store) Delete(storedName string) error {
	if storedName == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.baseDir, storedName))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
