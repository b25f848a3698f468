package localfs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/mehedihasanwd/easy-cart-api-v2/internal/domain"
)

// Store keeps uploaded blobs on the local filesystem under a single
// directory, served back at /uploads/<key>.
type Store struct {
	dir string
}

func New(dir string) *Store { return &Store{dir: dir} }

func extFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".bin"
	}
}

func (s *Store) Put(data []byte, contentType string) (*domain.StoredObject, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty upload")
	}
	key := uuid.New().String() + extFor(contentType)
	if err := os.WriteFile(filepath.Join(s.dir, key), data, 0644); err != nil {
		return nil, fmt.Errorf("write upload %s: %w", key, err)
	}
	return &domain.StoredObject{Key: key, URL: "/uploads/" + key}, nil
}

func (s *Store) Delete(key string) error {
	if key == "" {
		return nil
	}
	if err := os.Remove(filepath.Join(s.dir, key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
